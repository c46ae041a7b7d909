package dispatcher

import (
	"fmt"

	"github.com/dshills/kestrel/internal/engine/cursor"
	"github.com/dshills/kestrel/internal/input/key"
)

// Document is the line store the dispatcher edits.
type Document interface {
	cursor.Lines
	Modified() bool
	InsertLine(at int, text []byte) error
	InsertByte(line, offset int, ch byte) error
	DeleteByte(line, offset int) error
	SplitLine(line, offset int) error
	JoinWithNext(line int) error
}

// Command is a session-level action requested by a key.
type Command uint8

const (
	// CommandNone means the key was handled entirely by the dispatcher.
	CommandNone Command = iota
	// CommandSave requests a save.
	CommandSave
	// CommandFind requests an incremental search.
	CommandFind
	// CommandQuit requests the session to end.
	CommandQuit
	// CommandQuitPending means a quit was refused pending confirmation.
	CommandQuitPending
)

// String returns a string representation of the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandSave:
		return "save"
	case CommandFind:
		return "find"
	case CommandQuit:
		return "quit"
	case CommandQuitPending:
		return "quit-pending"
	default:
		return "unknown"
	}
}

// QuitWarning is the message shown when one more Ctrl-Q is needed.
const QuitWarning = "WARNING -- File unsaved, changes will be lost. Press Ctrl-Q again to force quit"

// Control bytes bound to commands.
var (
	keyQuit    = key.Ctrl('q')
	keySave    = key.Ctrl('s')
	keyFind    = key.Ctrl('f')
	keyRefresh = key.Ctrl('l')
	keyCtrlH   = key.Ctrl('h')
)

// Result describes the effect of one dispatched key.
type Result struct {
	// Command is the session action requested, if any.
	Command Command
	// Message is a status message to display, if any.
	Message string
	// Edited is true if the document changed.
	Edited bool
	// Moved is true if the cursor changed.
	Moved bool
}

// Dispatcher applies key events to a document and cursor.
type Dispatcher struct {
	doc    Document
	cur    cursor.Cursor
	config Config

	// quitPresses counts consecutive refused quits.
	quitPresses int
}

// New creates a dispatcher editing doc with the cursor at the origin.
func New(doc Document, config Config) *Dispatcher {
	if config.PageRows < 1 {
		config.PageRows = DefaultPageRows
	}
	if config.QuitConfirmations < 0 {
		config.QuitConfirmations = 0
	}
	return &Dispatcher{doc: doc, config: config}
}

// NewWithDefaults creates a dispatcher with default configuration.
func NewWithDefaults(doc Document) *Dispatcher {
	return New(doc, DefaultConfig())
}

// Config returns the current configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

// SetPageRows sets the PageUp/PageDown distance, normally the number of
// visible text rows.
func (d *Dispatcher) SetPageRows(rows int) {
	if rows > 0 {
		d.config.PageRows = rows
	}
}

// SetQuitConfirmations sets the number of extra quit presses required.
func (d *Dispatcher) SetQuitConfirmations(n int) {
	if n >= 0 {
		d.config.QuitConfirmations = n
	}
}

// SetDocument replaces the document and resets the cursor.
func (d *Dispatcher) SetDocument(doc Document) {
	d.doc = doc
	d.cur = cursor.Cursor{}
	d.quitPresses = 0
}

// Cursor returns the cursor position.
func (d *Dispatcher) Cursor() cursor.Cursor {
	return d.cur
}

// SetCursor moves the cursor, clamped to the document.
func (d *Dispatcher) SetCursor(c cursor.Cursor) {
	d.cur = c.Clamp(d.doc)
}

// Dispatch applies one key event.
func (d *Dispatcher) Dispatch(ev key.Event) Result {
	if ev.Is(keyQuit) {
		return d.quit()
	}
	d.quitPresses = 0

	before := d.cur
	var res Result

	switch ev.Key {
	case key.KeyEscape:
	case key.KeyUp:
		d.cur = d.cur.Up(d.doc)
	case key.KeyDown:
		d.cur = d.cur.Down(d.doc)
	case key.KeyLeft:
		d.cur = d.cur.Left(d.doc)
	case key.KeyRight:
		d.cur = d.cur.Right(d.doc)
	case key.KeyHome:
		d.cur = d.cur.Home()
	case key.KeyEnd:
		d.cur = d.cur.End(d.doc)
	case key.KeyPageUp:
		d.cur = d.cur.PageUp(d.doc, d.config.PageRows)
	case key.KeyPageDown:
		d.cur = d.cur.PageDown(d.doc, d.config.PageRows)
	case key.KeyDelete:
		res.Edited = d.deleteForward()
	case key.KeyRune:
		res = d.dispatchByte(ev.Byte())
	}

	res.Moved = d.cur != before
	return res
}

func (d *Dispatcher) dispatchByte(b byte) Result {
	switch rune(b) {
	case key.ByteEnter:
		return Result{Edited: d.insertNewline()}
	case key.ByteBackspace, keyCtrlH:
		return Result{Edited: d.backspace()}
	case keySave:
		return Result{Command: CommandSave}
	case keyFind:
		return Result{Command: CommandFind}
	case keyRefresh, key.ByteEscape:
		return Result{}
	}
	return Result{Edited: d.insertByte(b)}
}

func (d *Dispatcher) quit() Result {
	if !d.doc.Modified() || d.quitPresses >= d.config.QuitConfirmations {
		d.quitPresses = 0
		return Result{Command: CommandQuit}
	}
	d.quitPresses++
	msg := QuitWarning
	if remaining := d.config.QuitConfirmations - d.quitPresses + 1; remaining > 1 {
		msg = fmt.Sprintf("WARNING -- File unsaved, changes will be lost. Press Ctrl-Q %d more times to force quit", remaining)
	}
	return Result{Command: CommandQuitPending, Message: msg}
}

// belowLastLine reports whether the cursor is on the virtual line past the
// end of the document.
func (d *Dispatcher) belowLastLine() bool {
	return d.cur.Line >= d.doc.LineCount()
}

func (d *Dispatcher) insertByte(b byte) bool {
	var err error
	if d.belowLastLine() {
		err = d.doc.InsertLine(d.doc.LineCount(), []byte{b})
		d.cur.Line = d.doc.LineCount() - 1
	} else {
		err = d.doc.InsertByte(d.cur.Line, d.cur.Offset, b)
	}
	if err != nil {
		return false
	}
	d.cur.Offset++
	return true
}

func (d *Dispatcher) insertNewline() bool {
	var err error
	if d.belowLastLine() {
		err = d.doc.InsertLine(d.doc.LineCount(), nil)
	} else {
		err = d.doc.SplitLine(d.cur.Line, d.cur.Offset)
	}
	if err != nil {
		return false
	}
	d.cur.Line++
	d.cur.Offset = 0
	return true
}

// deleteForward removes the byte under the cursor, or joins with the next
// line at end of line.
func (d *Dispatcher) deleteForward() bool {
	if d.belowLastLine() {
		return false
	}
	if d.cur.Offset < d.doc.LineLen(d.cur.Line) {
		return d.doc.DeleteByte(d.cur.Line, d.cur.Offset) == nil
	}
	if d.cur.Line == d.doc.LineCount()-1 {
		return false
	}
	return d.doc.JoinWithNext(d.cur.Line) == nil
}

func (d *Dispatcher) backspace() bool {
	if d.cur.Line == 0 && d.cur.Offset == 0 {
		return false
	}
	d.cur = d.cur.Left(d.doc)
	return d.deleteForward()
}
