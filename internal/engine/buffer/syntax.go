package buffer

import (
	"slices"

	"github.com/dshills/kestrel/internal/renderer/highlight"
)

// update re-renders line i and highlights it, cascading forward.
func (b *Buffer) update(i int) {
	b.lines[i].render()
	b.cascade(i)
}

// cascade highlights line i and keeps going while a line's terminal
// comment state differs from its previous value. It visits at most
// LineCount-i lines.
func (b *Buffer) cascade(i int) {
	n := 0
	for ; i < len(b.lines); i++ {
		l := b.lines[i]
		openIn := i > 0 && b.lines[i-1].openComment
		open := highlight.Highlight(b.profile, l.display, l.tags, openIn)
		n++
		changed := open != l.openComment
		l.openComment = open
		if !changed {
			break
		}
	}
	b.lastCascade = n
}

func (b *Buffer) rehighlightAll() {
	open := false
	for _, l := range b.lines {
		l.render()
		open = highlight.Highlight(b.profile, l.display, l.tags, open)
		l.openComment = open
	}
	b.lastCascade = len(b.lines)
}

type matchOverlay struct {
	line  int
	saved []highlight.Tag
}

// SetMatch tags n display cells of line starting at col as a search
// match. The previous overlay, if any, is cleared first.
func (b *Buffer) SetMatch(line, col, n int) {
	b.ClearMatch()
	if !b.validLine(line) || n <= 0 {
		return
	}
	l := b.lines[line]
	b.match = &matchOverlay{line: line, saved: slices.Clone(l.tags)}
	highlight.Fill(l.tags, col, col+n, highlight.TagMatch)
}

// ClearMatch restores the tags saved by SetMatch.
func (b *Buffer) ClearMatch() {
	m := b.match
	if m == nil {
		return
	}
	b.match = nil
	if !b.validLine(m.line) {
		return
	}
	if l := b.lines[m.line]; len(l.tags) == len(m.saved) {
		copy(l.tags, m.saved)
	}
}
