// Package cursor provides the editing cursor and its movement rules.
//
// A Cursor is a (line, byte offset) pair. The line may equal the line
// count, which denotes the virtual position past the last line. Every
// move leaves the cursor valid: the offset never exceeds the length of
// the line it is on, and is zero on the virtual line.
//
// The display column is never stored. DisplayColumn derives it from the
// raw line bytes with the same width rules used for rendering.
package cursor
