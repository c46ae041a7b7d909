// Package dispatcher maps decoded key events to line store edits and
// cursor movement.
//
// # Key Bindings
//
//	Enter                split the line at the cursor
//	Backspace, Ctrl-H    move left, then delete forward
//	Delete               delete forward, joining lines at end of line
//	Arrows               move, wrapping at line boundaries for left/right
//	Home, End            start or end of line
//	PageUp, PageDown     move by one screen of rows
//	Ctrl-S               save           (returned as CommandSave)
//	Ctrl-F               find           (returned as CommandFind)
//	Ctrl-Q               quit           (returned as CommandQuit)
//	Ctrl-L, Escape       ignored
//	anything else        inserted literally
//
// Save, find and quit are session actions. The dispatcher only reports
// them in Result.Command; the caller owns prompts and file I/O.
//
// # Quit Confirmation
//
// With unsaved changes, Ctrl-Q must be pressed Config.QuitConfirmations
// more times in a row before CommandQuit is returned. Each intermediate
// press yields CommandQuitPending and a warning message. Any other key
// resets the count.
//
// # Bounds
//
// Movement past the document edges is clamped and deletes at the true end
// of the document are ignored. Neither is reported as an error.
package dispatcher
