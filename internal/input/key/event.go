package key

import (
	"fmt"
	"time"
)

// Event represents a single decoded key.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the byte value for KeyRune events.
	Rune rune

	// Timestamp is when the event was decoded.
	Timestamp time.Time
}

// NewRuneEvent creates a key event for a literal byte.
func NewRuneEvent(b byte) Event {
	return Event{
		Key:       KeyRune,
		Rune:      rune(b),
		Timestamp: time.Now(),
	}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key) Event {
	return Event{
		Key:       key,
		Timestamp: time.Now(),
	}
}

// Is reports whether the event is the literal byte r.
func (e Event) Is(r rune) bool {
	return e.Key == KeyRune && e.Rune == r
}

// IsCtrl reports whether the event is a control byte (below 0x20 or DEL).
func (e Event) IsCtrl() bool {
	return e.Key == KeyRune && (e.Rune < 0x20 || e.Rune == ByteBackspace)
}

// IsPrintableASCII reports whether the event is a printable ASCII byte.
func (e Event) IsPrintableASCII() bool {
	return e.Key == KeyRune && !e.IsCtrl() && e.Rune < 0x80
}

// Byte returns the literal byte of a KeyRune event.
func (e Event) Byte() byte {
	return byte(e.Rune)
}

// String returns a readable description of the event.
func (e Event) String() string {
	if e.Key != KeyRune {
		return e.Key.String()
	}
	switch {
	case e.Rune < 0x20:
		return fmt.Sprintf("Ctrl+%c", rune(e.Rune+'@'))
	case e.Rune == ByteBackspace:
		return "Backspace"
	case e.Rune < 0x7f:
		return string(e.Rune)
	default:
		return fmt.Sprintf("0x%02x", e.Rune)
	}
}
