package highlight

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrInvalidProfile indicates a profile definition is unusable.
var ErrInvalidProfile = errors.New("highlight: invalid profile")

// Registry holds the profiles available for selection.
// Later registrations take precedence over earlier ones.
type Registry struct {
	profiles []*Profile
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry returns a registry with the built-in profiles.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterBuiltinProfiles(r)
	return r
}

// RegisterBuiltinProfiles registers all built-in profiles.
func RegisterBuiltinProfiles(r *Registry) {
	r.Register(CProfile())
	r.Register(GoProfile())
	r.Register(PythonProfile())
	r.Register(JavaScriptProfile())
	r.Register(RustProfile())
}

// Register adds a profile.
func (r *Registry) Register(p *Profile) {
	r.profiles = append(r.profiles, p)
}

// Select returns the profile for filename, or nil if none matches.
func (r *Registry) Select(filename string) *Profile {
	for i := len(r.profiles) - 1; i >= 0; i-- {
		if r.profiles[i].Matches(filename) {
			return r.profiles[i]
		}
	}
	return nil
}

// profileDef is the YAML form of a profile.
type profileDef struct {
	Name         string   `yaml:"name"`
	Extensions   []string `yaml:"extensions"`
	Keywords     []string `yaml:"keywords"`
	Types        []string `yaml:"types"`
	LineComment  string   `yaml:"line_comment"`
	BlockComment struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"block_comment"`
	Numbers *bool `yaml:"numbers"`
	Strings *bool `yaml:"strings"`
}

type profilesFile struct {
	Profiles []profileDef `yaml:"profiles"`
}

// LoadProfiles reads profile definitions from YAML:
//
//	profiles:
//	  - name: SQL
//	    extensions: [".sql"]
//	    keywords: [select, from, where]
//	    types: [int, text]
//	    line_comment: "--"
//	    block_comment: {start: "/*", end: "*/"}
//
// The line comment marker is checked before the block comment start, so a
// block start that begins with the line marker never opens a comment.
func LoadProfiles(r io.Reader) ([]*Profile, error) {
	var f profilesFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("highlight: decode profiles: %w", err)
	}

	out := make([]*Profile, 0, len(f.Profiles))
	for i, def := range f.Profiles {
		p, err := def.profile()
		if err != nil {
			return nil, fmt.Errorf("profile %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (d profileDef) profile() (*Profile, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidProfile)
	}
	if len(d.Extensions) == 0 {
		return nil, fmt.Errorf("%w: %s has no extensions", ErrInvalidProfile, d.Name)
	}
	if (d.BlockComment.Start == "") != (d.BlockComment.End == "") {
		return nil, fmt.Errorf("%w: %s needs both block comment markers", ErrInvalidProfile, d.Name)
	}

	p := NewProfile(d.Name, d.Extensions...).
		SetComments(d.LineComment, d.BlockComment.Start, d.BlockComment.End).
		AddKeywords(d.Keywords...).
		AddTypes(d.Types...)
	if d.Numbers != nil && !*d.Numbers {
		p.Flags &^= HighlightNumbers
	}
	if d.Strings != nil && !*d.Strings {
		p.Flags &^= HighlightStrings
	}
	return p, nil
}
