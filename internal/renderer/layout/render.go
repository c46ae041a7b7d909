// Package layout converts raw line bytes into display cells.
//
// Every stored byte occupies exactly one display cell except tabs, which
// expand to the next tab stop, and control bytes, which are shown in caret
// notation. Render and DisplayColumn share CellWidth so the cursor column
// always lines up with the glyph it sits on.
package layout

const (
	caret       = '^'
	caretSuffix = '?'
)

// IsCaretControl reports whether b is rendered as "^" plus a letter.
// Tab is in this range but is expanded separately.
func IsCaretControl(b byte) bool {
	return b <= 26 && b != '\t'
}

// IsCaretUnknown reports whether b is rendered as "^?".
func IsCaretUnknown(b byte) bool {
	return b >= 28 && b <= 31
}

// CellWidth returns the number of display cells b occupies when it starts
// at display column col.
func CellWidth(b byte, col int) int {
	switch {
	case b == '\t':
		return TabStopOffset(col)
	case IsCaretControl(b), IsCaretUnknown(b):
		return 2
	default:
		return 1
	}
}

// Render expands raw into its display form.
func Render(raw []byte) []byte {
	out := make([]byte, 0, len(raw)+8)
	for _, b := range raw {
		switch {
		case b == '\t':
			for n := TabStopOffset(len(out)); n > 0; n-- {
				out = append(out, ' ')
			}
		case IsCaretControl(b):
			out = append(out, caret, '@'+b)
		case IsCaretUnknown(b):
			out = append(out, caret, caretSuffix)
		default:
			out = append(out, b)
		}
	}
	return out
}

// Width returns the display width of raw.
func Width(raw []byte) int {
	return DisplayColumn(raw, len(raw))
}

// DisplayColumn returns the display column of the byte at offset.
// Offsets past the end are clamped to the line length.
func DisplayColumn(raw []byte, offset int) int {
	if offset > len(raw) {
		offset = len(raw)
	}
	col := 0
	for i := 0; i < offset; i++ {
		col += CellWidth(raw[i], col)
	}
	return col
}
