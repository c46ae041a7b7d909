package renderer

import (
	"bytes"

	"github.com/dshills/kestrel/internal/renderer/highlight"
	"github.com/dshills/kestrel/internal/renderer/viewport"
)

// Filler is drawn on rows past the end of the document.
const Filler = "---"

// DefaultBanner is shown on an empty document.
var DefaultBanner = []string{
	"",
	"   kestrel",
	"   a small terminal text editor",
	"",
}

// Lines provides the rendered document.
type Lines interface {
	LineCount() int
	Display(i int) []byte
	Tags(i int) []highlight.Tag
}

// Frame is everything needed to draw one screen.
type Frame struct {
	Lines    Lines
	Viewport *viewport.Viewport

	// Cursor position in document line and display column.
	CursorLine int
	CursorCol  int

	// StatusBar is the unstyled status bar text.
	StatusBar string

	// Message is the visible status message, or "".
	Message string
}

// Compositor builds frames.
type Compositor struct {
	theme *highlight.Theme
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithTheme sets the color theme.
func WithTheme(t *highlight.Theme) Option {
	return func(c *Compositor) {
		if t != nil {
			c.theme = t
		}
	}
}

// New creates a compositor.
func New(opts ...Option) *Compositor {
	c := &Compositor{
		theme: highlight.DefaultTheme(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTheme replaces the color theme.
func (c *Compositor) SetTheme(t *highlight.Theme) {
	if t != nil {
		c.theme = t
	}
}

// Compose renders f into a single output buffer.
func (c *Compositor) Compose(f Frame) []byte {
	vp := f.Viewport
	rows, cols := vp.Height(), vp.Width()
	top, left := vp.TopLine(), vp.LeftColumn()
	n := f.Lines.LineCount()

	var b bytes.Buffer
	b.Grow((rows + 2) * (cols + 16))

	b.WriteString(seqCursorHide)
	b.WriteString(seqCursorHome)

	for y := 0; y < rows; y++ {
		b.WriteString(seqClearLine)
		line := top + y
		switch {
		case n == 0 && y < len(DefaultBanner):
			writeClipped(&b, Filler+DefaultBanner[y], cols)
		case line < n:
			c.drawLine(&b, f.Lines.Display(line), f.Lines.Tags(line), left, cols)
		default:
			writeClipped(&b, Filler, cols)
		}
		b.WriteString("\r\n")
	}

	b.WriteString(seqInvertVideo)
	writeClipped(&b, f.StatusBar, cols)
	b.WriteString(seqNormalVideo)
	b.WriteString("\r\n")

	b.WriteString(seqClearLine)
	writeClipped(&b, f.Message, cols)

	b.WriteString(cursorTo(vp.BufferToScreen(f.CursorLine, f.CursorCol)))
	b.WriteString(seqCursorShow)
	return b.Bytes()
}

// drawLine writes display[left:left+width] and switches color only when
// the color changes between cells.
func (c *Compositor) drawLine(b *bytes.Buffer, display []byte, tags []highlight.Tag, left, width int) {
	start := min(left, len(display))
	end := min(left+width, len(display))

	current := -1
	for i := start; i < end; i++ {
		if tags[i] == highlight.TagNormal {
			if current != -1 {
				b.WriteString(seqResetColor)
				current = -1
			}
			b.WriteByte(display[i])
			continue
		}
		color := c.theme.Color(tags[i])
		if color != current {
			b.WriteString(setColor(color))
			current = color
		}
		b.WriteByte(display[i])
	}
	b.WriteString(seqResetColor)
}

func writeClipped(b *bytes.Buffer, s string, width int) {
	if len(s) > width {
		s = s[:max(width, 0)]
	}
	b.WriteString(s)
}
