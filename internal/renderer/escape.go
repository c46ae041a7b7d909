package renderer

import "github.com/charmbracelet/x/ansi"

// Output control sequences.
var (
	seqClearLine   = ansi.EraseLineRight
	seqClearScreen = ansi.EraseEntireScreen
	seqCursorHome  = ansi.CursorHomePosition
	seqCursorShow  = ansi.ShowCursor
	seqCursorHide  = ansi.HideCursor
	seqInvertVideo = ansi.SGR(ansi.ReverseAttr)
	seqNormalVideo = ansi.ResetStyle
	seqResetColor  = ansi.SGR(ansi.DefaultForegroundColorAttr)
)

// cursorTo moves the cursor to a zero-based screen position.
func cursorTo(row, col int) string {
	return ansi.CursorPosition(col+1, row+1)
}

// setColor selects a foreground SGR color code.
func setColor(code int) string {
	return ansi.SGR(code)
}

// ClearScreen returns the sequence that blanks the screen and homes the
// cursor, used when leaving the editor.
func ClearScreen() []byte {
	return []byte(seqClearScreen + seqCursorHome)
}
