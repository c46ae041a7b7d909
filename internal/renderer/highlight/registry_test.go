package highlight

import (
	"errors"
	"strings"
	"testing"
)

func TestRegistrySelect(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		file string
		want string
	}{
		{"main.c", "C/C++"},
		{"x/y/z.hpp", "C/C++"},
		{"main.go", "Go"},
		{"app.tsx", "JavaScript"},
		{"lib.rs", "Rust"},
		{"tool.py", "Python"},
		{"notes.txt", ""},
		{"", ""},
	}
	for _, tt := range tests {
		got := ""
		if p := r.Select(tt.file); p != nil {
			got = p.Name
		}
		if got != tt.want {
			t.Errorf("Select(%q) = %q, want %q", tt.file, got, tt.want)
		}
	}
}

func TestRegistryLaterWins(t *testing.T) {
	r := DefaultRegistry()
	r.Register(NewProfile("Custom C", ".c"))
	if p := r.Select("a.c"); p == nil || p.Name != "Custom C" {
		t.Errorf("Select after override = %v", p)
	}
}

func TestLoadProfiles(t *testing.T) {
	src := `
profiles:
  - name: Lua
    extensions: [".lua"]
    keywords: [if, then, end, "local|"]
    types: [nil]
    line_comment: "--"
    block_comment:
      start: "--[["
      end: "]]"
    numbers: false
`
	profiles, err := LoadProfiles(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadProfiles: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("got %d profiles, want 1", len(profiles))
	}
	p := profiles[0]
	if p.Name != "Lua" || !p.Matches("init.lua") {
		t.Errorf("unexpected profile %+v", p)
	}
	if p.Has(HighlightNumbers) {
		t.Error("numbers should be disabled")
	}
	if !p.Has(HighlightStrings) {
		t.Error("strings should default to enabled")
	}
	if p.BlockStart != "--[[" || p.BlockEnd != "]]" {
		t.Errorf("block markers = %q %q", p.BlockStart, p.BlockEnd)
	}
	secondary := 0
	for _, kw := range p.Keywords {
		if kw.Secondary {
			secondary++
		}
	}
	if secondary != 2 {
		t.Errorf("secondary = %d, want 2", secondary)
	}
}

func TestLoadProfilesEmpty(t *testing.T) {
	profiles, err := LoadProfiles(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadProfiles empty: %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("got %d profiles", len(profiles))
	}
}

func TestLoadProfilesInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing name", "profiles:\n  - extensions: [\".x\"]\n"},
		{"missing extensions", "profiles:\n  - name: X\n"},
		{"half block", "profiles:\n  - name: X\n    extensions: [\".x\"]\n    block_comment: {start: \"(*\"}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadProfiles(strings.NewReader(tt.src))
			if !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("err = %v, want ErrInvalidProfile", err)
			}
		})
	}

	if _, err := LoadProfiles(strings.NewReader("profiles:\n  - bogus: 1\n")); err == nil {
		t.Error("unknown field accepted")
	}
}

func TestFileType(t *testing.T) {
	if got := FileType("a.c", CProfile()); got != "C/C++" {
		t.Errorf("FileType with profile = %q", got)
	}
	if got := FileType("", nil); got != NoFileType {
		t.Errorf("FileType empty = %q", got)
	}
	if got := FileType("script.lua", nil); got != "Lua" {
		t.Errorf("FileType lua = %q, want Lua", got)
	}
	if got := FileType("noext-zzz", nil); got != NoFileType {
		t.Errorf("FileType unknown = %q", got)
	}
}

func TestThemeColor(t *testing.T) {
	th := DefaultTheme()
	if got := th.Color(TagNormal); got != ColorDefault {
		t.Errorf("normal = %d", got)
	}
	if got := th.Color(TagComment); got != 35 {
		t.Errorf("comment = %d", got)
	}
	if got := th.Color(Tag(200)); got != 37 {
		t.Errorf("unknown tag = %d", got)
	}

	th2 := th.With(TagComment, 90)
	if th2.Color(TagComment) != 90 || th.Color(TagComment) != 35 {
		t.Error("With should copy")
	}
	if th.With(TagComment, 5).Color(TagComment) != 35 {
		t.Error("invalid color should be ignored")
	}
}
