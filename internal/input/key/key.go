package key

import "fmt"

// Key represents a keyboard key.
// For literal bytes, use KeyRune and set the Rune field in Event.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Special keys
	KeyEscape
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// KeyRune is used for literal input bytes.
	// The byte value is stored in Event.Rune.
	KeyRune
)

// Byte values with a fixed meaning.
const (
	ByteEscape    = 0x1b
	ByteEnter     = '\r'
	ByteBackspace = 0x7f
)

var keyNames = map[Key]string{
	KeyNone:     "None",
	KeyEscape:   "Escape",
	KeyDelete:   "Delete",
	KeyHome:     "Home",
	KeyEnd:      "End",
	KeyPageUp:   "PageUp",
	KeyPageDown: "PageDown",
	KeyUp:       "Up",
	KeyDown:     "Down",
	KeyLeft:     "Left",
	KeyRight:    "Right",
	KeyRune:     "Rune",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", k)
}

// Ctrl returns the byte produced by holding Ctrl with c.
func Ctrl(c byte) rune {
	return rune(c & 0x1f)
}
