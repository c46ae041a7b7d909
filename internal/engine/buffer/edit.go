package buffer

import (
	"bytes"
	"slices"
)

// InsertLine inserts text as a new line at index at. at may equal
// LineCount to append.
func (b *Buffer) InsertLine(at int, text []byte) error {
	if at < 0 || at > len(b.lines) {
		return ErrLineOutOfRange
	}
	if bytes.IndexByte(text, '\n') >= 0 {
		return ErrInvalidByte
	}
	b.ClearMatch()

	l := newLine(text)
	// The line that used to sit at `at` was highlighted against the
	// predecessor's flag; starting from that value keeps the cascade exact.
	if at > 0 {
		l.openComment = b.lines[at-1].openComment
	}
	b.lines = slices.Insert(b.lines, at, l)
	b.update(at)
	b.dirty++
	return nil
}

// DeleteLine removes line at.
func (b *Buffer) DeleteLine(at int) error {
	if !b.validLine(at) {
		return ErrLineOutOfRange
	}
	b.ClearMatch()

	b.lines = slices.Delete(b.lines, at, at+1)
	b.lastCascade = 0
	if at < len(b.lines) {
		// The next line now follows a different predecessor.
		b.cascade(at)
	}
	b.dirty++
	return nil
}

// InsertByte inserts ch into line before offset. offset may equal the
// line length to append.
func (b *Buffer) InsertByte(line, offset int, ch byte) error {
	if !b.validLine(line) {
		return ErrLineOutOfRange
	}
	l := b.lines[line]
	if offset < 0 || offset > len(l.raw) {
		return ErrOffsetOutOfRange
	}
	if ch == '\n' {
		return ErrInvalidByte
	}
	b.ClearMatch()

	l.raw = slices.Insert(l.raw, offset, ch)
	b.update(line)
	b.dirty++
	return nil
}

// DeleteByte removes the byte at offset from line.
func (b *Buffer) DeleteByte(line, offset int) error {
	if !b.validLine(line) {
		return ErrLineOutOfRange
	}
	l := b.lines[line]
	if offset < 0 || offset >= len(l.raw) {
		return ErrOffsetOutOfRange
	}
	b.ClearMatch()

	l.raw = slices.Delete(l.raw, offset, offset+1)
	b.update(line)
	b.dirty++
	return nil
}

// AppendText appends text to the end of line.
func (b *Buffer) AppendText(line int, text []byte) error {
	if !b.validLine(line) {
		return ErrLineOutOfRange
	}
	if bytes.IndexByte(text, '\n') >= 0 {
		return ErrInvalidByte
	}
	b.ClearMatch()

	l := b.lines[line]
	l.raw = append(l.raw, text...)
	b.update(line)
	b.dirty++
	return nil
}

// SplitLine truncates line at offset and inserts the remainder as a new
// line directly below it.
func (b *Buffer) SplitLine(line, offset int) error {
	if !b.validLine(line) {
		return ErrLineOutOfRange
	}
	l := b.lines[line]
	if offset < 0 || offset > len(l.raw) {
		return ErrOffsetOutOfRange
	}
	b.ClearMatch()

	rest := bytes.Clone(l.raw[offset:])
	l.raw = l.raw[:offset]
	b.update(line)
	b.dirty++
	return b.InsertLine(line+1, rest)
}

// JoinWithNext appends the next line's text to line and deletes the next
// line. It fails on the last line.
func (b *Buffer) JoinWithNext(line int) error {
	if !b.validLine(line) || !b.validLine(line+1) {
		return ErrLineOutOfRange
	}
	next := bytes.Clone(b.lines[line+1].raw)
	if err := b.DeleteLine(line + 1); err != nil {
		return err
	}
	return b.AppendText(line, next)
}
