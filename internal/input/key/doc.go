// Package key decodes raw terminal input bytes into key events.
//
// The terminal delivers plain bytes. Printable characters and control
// combinations (Ctrl+letter is the letter's value masked to 0x1f) are
// passed through as KeyRune events carrying the byte value. Arrow keys,
// paging keys, Home, End and Delete arrive as escape sequences, which the
// Decoder folds into a single special-key event.
//
// A lone ESC is indistinguishable from the start of a sequence until the
// following bytes either arrive or fail to arrive within a short timeout.
// The Decoder never waits longer than that timeout per byte, and anything
// it does not recognize becomes a bare KeyEscape.
package key
