package highlight

// ColorDefault is the SGR foreground code for the terminal default color.
const ColorDefault = 39

// Theme maps highlight tags to SGR foreground color codes.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Colors maps tags to SGR codes. TagNormal is never looked up.
	Colors map[Tag]int

	// Fallback is used for tags missing from Colors.
	Fallback int
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() *Theme {
	return &Theme{
		Name: "default",
		Colors: map[Tag]int{
			TagComment:          35,
			TagString:           36,
			TagNumber:           33,
			TagMatch:            34,
			TagKeyword:          31,
			TagKeywordSecondary: 32,
		},
		Fallback: 37,
	}
}

// Color returns the SGR code for tag. Normal cells use ColorDefault.
func (t *Theme) Color(tag Tag) int {
	if tag == TagNormal {
		return ColorDefault
	}
	if c, ok := t.Colors[tag]; ok {
		return c
	}
	return t.Fallback
}

// With returns a copy of the theme with tag set to color.
// Codes outside the SGR foreground ranges are ignored.
func (t *Theme) With(tag Tag, color int) *Theme {
	cp := &Theme{Name: t.Name, Fallback: t.Fallback, Colors: make(map[Tag]int, len(t.Colors)+1)}
	for k, v := range t.Colors {
		cp.Colors[k] = v
	}
	if ValidColor(color) {
		cp.Colors[tag] = color
	}
	return cp
}

// ValidColor reports whether c is a standard or bright SGR foreground code.
func ValidColor(c int) bool {
	return (c >= 30 && c <= 37) || (c >= 90 && c <= 97)
}
