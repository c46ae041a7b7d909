package highlight

import (
	"path/filepath"
	"strings"
)

// Flags enable optional highlight classes for a profile.
type Flags uint8

const (
	// HighlightNumbers enables number literals.
	HighlightNumbers Flags = 1 << iota
	// HighlightStrings enables quoted strings.
	HighlightStrings
)

// SecondaryMarker suffixes a keyword that belongs to the secondary class.
const SecondaryMarker = "|"

// Keyword is one keyword list entry.
type Keyword struct {
	Text      string
	Secondary bool
}

// ParseKeyword parses a keyword definition, honoring the secondary marker.
func ParseKeyword(def string) Keyword {
	if strings.HasSuffix(def, SecondaryMarker) {
		return Keyword{Text: strings.TrimSuffix(def, SecondaryMarker), Secondary: true}
	}
	return Keyword{Text: def}
}

// Profile is the static description of a language.
// Once selected for a document it is not modified.
type Profile struct {
	// Name is shown in the status bar.
	Name string

	// Patterns select the profile by file name. Patterns starting with "."
	// match the extension exactly; others match anywhere in the base name.
	Patterns []string

	Keywords []Keyword

	LineComment string
	BlockStart  string
	BlockEnd    string

	Flags Flags
}

// NewProfile creates a profile with numbers and strings enabled.
func NewProfile(name string, patterns ...string) *Profile {
	return &Profile{
		Name:     name,
		Patterns: patterns,
		Flags:    HighlightNumbers | HighlightStrings,
	}
}

// AddKeywords adds keyword definitions. A trailing "|" marks the secondary class.
func (p *Profile) AddKeywords(defs ...string) *Profile {
	for _, d := range defs {
		if kw := ParseKeyword(d); kw.Text != "" {
			p.Keywords = append(p.Keywords, kw)
		}
	}
	return p
}

// AddTypes adds secondary class keywords.
func (p *Profile) AddTypes(words ...string) *Profile {
	for _, w := range words {
		if w != "" {
			p.Keywords = append(p.Keywords, Keyword{Text: w, Secondary: true})
		}
	}
	return p
}

// SetComments sets the comment markers. Empty markers disable that form.
func (p *Profile) SetComments(line, blockStart, blockEnd string) *Profile {
	p.LineComment = line
	p.BlockStart = blockStart
	p.BlockEnd = blockEnd
	return p
}

// Has reports whether all of f are enabled.
func (p *Profile) Has(f Flags) bool {
	return p.Flags&f == f
}

// Matches reports whether the profile applies to filename.
func (p *Profile) Matches(filename string) bool {
	if filename == "" {
		return false
	}
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	for _, pat := range p.Patterns {
		if pat == "" {
			continue
		}
		if strings.HasPrefix(pat, ".") {
			if ext == pat {
				return true
			}
		} else if strings.Contains(base, pat) {
			return true
		}
	}
	return false
}

func (p *Profile) hasBlockComments() bool {
	return p.BlockStart != "" && p.BlockEnd != ""
}

// CProfile returns the C/C++ profile.
func CProfile() *Profile {
	return NewProfile("C/C++", ".c", ".h", ".cpp", ".hpp").
		SetComments("//", "/*", "*/").
		AddKeywords(
			"switch", "if", "while", "for", "break", "continue", "return", "else",
			"#include", "#define", "struct", "union", "typedef", "static", "enum",
			"class", "case", "const").
		AddKeywords(
			"int|", "long|", "double|", "float|", "char|", "unsigned|", "signed|",
			"void|")
}

// GoProfile returns the Go profile.
func GoProfile() *Profile {
	return NewProfile("Go", ".go").
		SetComments("//", "/*", "*/").
		AddKeywords(
			"if", "else", "for", "range", "switch", "case", "default",
			"break", "continue", "return", "goto", "fallthrough", "select",
			"func", "var", "const", "type", "struct", "interface", "map", "chan",
			"package", "import", "defer", "go", "true", "false", "nil", "iota").
		AddTypes(
			"int", "int8", "int16", "int32", "int64",
			"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
			"float32", "float64", "complex64", "complex128",
			"bool", "byte", "rune", "string", "error", "any")
}

// PythonProfile returns the Python profile.
func PythonProfile() *Profile {
	return NewProfile("Python", ".py", ".pyw", ".pyi").
		SetComments("#", "", "").
		AddKeywords(
			"if", "elif", "else", "for", "while", "break", "continue",
			"return", "try", "except", "finally", "raise", "with", "as",
			"def", "class", "lambda", "async", "await",
			"import", "from", "global", "nonlocal", "pass", "yield",
			"assert", "del", "in", "is", "not", "and", "or",
			"True", "False", "None").
		AddTypes(
			"int", "float", "str", "bool", "list", "dict", "set", "tuple",
			"bytes", "bytearray", "complex", "frozenset", "object")
}

// JavaScriptProfile returns the JavaScript/TypeScript profile.
func JavaScriptProfile() *Profile {
	return NewProfile("JavaScript", ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs").
		SetComments("//", "/*", "*/").
		AddKeywords(
			"if", "else", "for", "while", "do", "switch", "case", "default",
			"break", "continue", "return", "throw", "try", "catch", "finally",
			"function", "var", "let", "const", "class", "extends", "async", "await",
			"import", "export", "from", "new", "delete", "typeof", "instanceof",
			"this", "super", "static", "yield", "true", "false", "null", "undefined").
		AddTypes(
			"type", "interface", "enum", "namespace", "number", "string",
			"boolean", "void", "any", "unknown", "never")
}

// RustProfile returns the Rust profile.
func RustProfile() *Profile {
	return NewProfile("Rust", ".rs").
		SetComments("//", "/*", "*/").
		AddKeywords(
			"if", "else", "match", "for", "while", "loop", "break", "continue",
			"return", "fn", "let", "mut", "const", "static", "struct", "enum",
			"trait", "impl", "type", "mod", "use", "crate", "super", "self",
			"Self", "pub", "where", "as", "async", "await", "dyn", "move", "ref",
			"unsafe", "extern", "true", "false").
		AddTypes(
			"i8", "i16", "i32", "i64", "i128", "isize",
			"u8", "u16", "u32", "u64", "u128", "usize",
			"f32", "f64", "bool", "char", "str", "String",
			"Vec", "Box", "Option", "Result")
}
