package buffer

import (
	"bytes"
	"errors"

	"github.com/dshills/kestrel/internal/renderer/highlight"
)

// Errors returned by buffer operations. A failed operation leaves the
// buffer unchanged.
var (
	ErrLineOutOfRange   = errors.New("line out of range")
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrInvalidByte      = errors.New("newline not allowed in line text")
)

// Buffer is the ordered line store of one document.
type Buffer struct {
	lines   []*Line
	profile *highlight.Profile

	// dirty counts mutations since the last load or save.
	dirty int

	// lastCascade is the number of lines highlighted by the last update.
	lastCascade int

	match *matchOverlay
	seed  [][]byte
}

// New creates a buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{}
	for _, opt := range opts {
		opt(b)
	}
	if b.seed != nil {
		b.Load(b.seed)
		b.seed = nil
	}
	return b
}

// Load replaces the content with lines and marks the buffer clean.
func (b *Buffer) Load(lines [][]byte) {
	b.match = nil
	b.lines = make([]*Line, 0, len(lines))
	for _, text := range lines {
		b.lines = append(b.lines, newLine(stripNewlines(text)))
	}
	b.rehighlightAll()
	b.dirty = 0
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns line i, or nil when i is out of range.
func (b *Buffer) Line(i int) *Line {
	if i < 0 || i >= len(b.lines) {
		return nil
	}
	return b.lines[i]
}

// LineLen returns the raw length of line i, or 0 when i is out of range.
func (b *Buffer) LineLen(i int) int {
	if l := b.Line(i); l != nil {
		return l.Len()
	}
	return 0
}

// Raw returns the raw bytes of line i, or nil when i is out of range.
// The slice must not be modified.
func (b *Buffer) Raw(i int) []byte {
	if l := b.Line(i); l != nil {
		return l.raw
	}
	return nil
}

// Display returns the rendered bytes of line i, or nil when i is out of
// range.
func (b *Buffer) Display(i int) []byte {
	if l := b.Line(i); l != nil {
		return l.display
	}
	return nil
}

// Tags returns the highlight tags of line i, or nil when i is out of range.
func (b *Buffer) Tags(i int) []highlight.Tag {
	if l := b.Line(i); l != nil {
		return l.tags
	}
	return nil
}

// Lines returns a copy of every line's raw text.
func (b *Buffer) Lines() [][]byte {
	out := make([][]byte, len(b.lines))
	for i, l := range b.lines {
		out[i] = bytes.Clone(l.raw)
	}
	return out
}

// Bytes returns the document joined with "\n", with a trailing newline
// after every line.
func (b *Buffer) Bytes() []byte {
	var buf bytes.Buffer
	for _, l := range b.lines {
		buf.Write(l.raw)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Dirty returns the number of mutations since the last load or save.
func (b *Buffer) Dirty() int {
	return b.dirty
}

// Modified reports whether there are unsaved mutations.
func (b *Buffer) Modified() bool {
	return b.dirty > 0
}

// MarkClean resets the dirty counter.
func (b *Buffer) MarkClean() {
	b.dirty = 0
}

// Profile returns the syntax profile, which may be nil.
func (b *Buffer) Profile() *highlight.Profile {
	return b.profile
}

// SetProfile changes the syntax profile and re-highlights every line.
func (b *Buffer) SetProfile(p *highlight.Profile) {
	b.profile = p
	b.match = nil
	b.rehighlightAll()
}

// LastCascade returns how many lines the last mutation highlighted.
func (b *Buffer) LastCascade() int {
	return b.lastCascade
}

func (b *Buffer) validLine(i int) bool {
	return i >= 0 && i < len(b.lines)
}

func stripNewlines(text []byte) []byte {
	if bytes.IndexByte(text, '\n') < 0 {
		return text
	}
	return bytes.ReplaceAll(text, []byte{'\n'}, nil)
}
