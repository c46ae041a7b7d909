package cursor

import (
	"fmt"

	"github.com/dshills/kestrel/internal/renderer/layout"
)

// Lines is the read access the cursor needs from a line store.
type Lines interface {
	LineCount() int
	LineLen(i int) int
}

// RawLines additionally exposes raw line bytes.
type RawLines interface {
	Lines
	Raw(i int) []byte
}

// Cursor is an insertion point.
type Cursor struct {
	Line   int
	Offset int
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor(%d:%d)", c.Line, c.Offset)
}

// lineLen returns the length of the cursor's line, or 0 on the virtual line.
func lineLen(ls Lines, line int) int {
	if line >= ls.LineCount() {
		return 0
	}
	return ls.LineLen(line)
}

// Clamp returns c moved to the nearest valid position.
func (c Cursor) Clamp(ls Lines) Cursor {
	n := ls.LineCount()
	if c.Line < 0 {
		c.Line = 0
	}
	if c.Line > n {
		c.Line = n
	}
	if c.Offset < 0 {
		c.Offset = 0
	}
	if limit := lineLen(ls, c.Line); c.Offset > limit {
		c.Offset = limit
	}
	return c
}

// Left moves one byte left, wrapping to the end of the previous line.
func (c Cursor) Left(ls Lines) Cursor {
	switch {
	case c.Offset > 0:
		c.Offset--
	case c.Line > 0:
		c.Line--
		c.Offset = lineLen(ls, c.Line)
	}
	return c
}

// Right moves one byte right, wrapping to the start of the next line.
// It never moves past the virtual line.
func (c Cursor) Right(ls Lines) Cursor {
	n := ls.LineCount()
	if c.Line >= n {
		return c
	}
	if c.Offset < ls.LineLen(c.Line) {
		c.Offset++
	} else {
		c.Line++
		c.Offset = 0
	}
	return c
}

// Up moves to the previous line and clamps the offset.
func (c Cursor) Up(ls Lines) Cursor {
	if c.Line > 0 {
		c.Line--
	}
	return c.Clamp(ls)
}

// Down moves to the next line, up to the virtual line, and clamps the offset.
func (c Cursor) Down(ls Lines) Cursor {
	if c.Line < ls.LineCount() {
		c.Line++
	}
	return c.Clamp(ls)
}

// Home moves to the start of the line.
func (c Cursor) Home() Cursor {
	c.Offset = 0
	return c
}

// End moves to the end of the line.
func (c Cursor) End(ls Lines) Cursor {
	c.Offset = lineLen(ls, c.Line)
	return c
}

// PageUp moves up by rows lines, stopping at the first line.
func (c Cursor) PageUp(ls Lines, rows int) Cursor {
	if rows < 1 {
		rows = 1
	}
	c.Line -= rows
	if c.Line < 0 {
		c.Line = 0
	}
	return c.Clamp(ls)
}

// PageDown moves down by rows lines, stopping at the last real line.
func (c Cursor) PageDown(ls Lines, rows int) Cursor {
	if rows < 1 {
		rows = 1
	}
	last := ls.LineCount() - 1
	if last < 0 {
		last = 0
	}
	if c.Line < last {
		c.Line += rows
		if c.Line > last {
			c.Line = last
		}
	}
	return c.Clamp(ls)
}

// DisplayColumn returns the rendered column of the cursor.
func (c Cursor) DisplayColumn(ls RawLines) int {
	if c.Line < 0 || c.Line >= ls.LineCount() {
		return 0
	}
	return layout.DisplayColumn(ls.Raw(c.Line), c.Offset)
}
