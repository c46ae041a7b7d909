// Package renderer composes screen frames for the editor.
//
// Every refresh produces one complete frame in a single buffer: the
// visible text rows, a status bar and a message row, followed by cursor
// placement. The caller writes the frame to the terminal in one call, so
// the terminal never shows a half-drawn screen.
//
// Subpackages:
//
//	layout     - raw bytes to display cells (tabs, control characters)
//	highlight  - per-cell syntax classes and color theme
//	viewport   - scroll window that keeps the cursor visible
//	statusline - status bar and message text
//	backend    - terminal device (tty and in-memory)
package renderer
