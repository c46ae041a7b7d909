package buffer

import (
	"github.com/dshills/kestrel/internal/renderer/highlight"
	"github.com/dshills/kestrel/internal/renderer/layout"
)

// Line is one document line and its derived display state.
type Line struct {
	raw     []byte
	display []byte
	tags    []highlight.Tag

	// openComment reports whether the line ends inside a block comment.
	openComment bool
}

func newLine(text []byte) *Line {
	raw := make([]byte, len(text))
	copy(raw, text)
	return &Line{raw: raw}
}

// Raw returns the raw bytes. The slice must not be modified.
func (l *Line) Raw() []byte { return l.raw }

// Display returns the rendered bytes. The slice must not be modified.
func (l *Line) Display() []byte { return l.display }

// Tags returns one highlight tag per display byte.
func (l *Line) Tags() []highlight.Tag { return l.tags }

// Len returns the raw length in bytes.
func (l *Line) Len() int { return len(l.raw) }

// OpenComment reports whether the line ends inside a block comment.
func (l *Line) OpenComment() bool { return l.openComment }

// String returns the raw text.
func (l *Line) String() string { return string(l.raw) }

// render rebuilds the display form and resets tags to normal.
func (l *Line) render() {
	l.display = layout.Render(l.raw)
	if cap(l.tags) >= len(l.display) {
		l.tags = l.tags[:len(l.display)]
	} else {
		l.tags = make([]highlight.Tag, len(l.display))
	}
	highlight.Fill(l.tags, 0, len(l.tags), highlight.TagNormal)
}
