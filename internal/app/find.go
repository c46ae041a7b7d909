package app

import (
	"bytes"
	"context"

	"github.com/dshills/kestrel/internal/engine/cursor"
	"github.com/dshills/kestrel/internal/input/key"
	"github.com/dshills/kestrel/internal/renderer/layout"
)

// FindPrompt is the search prompt format.
const FindPrompt = "SEARCH : %s (Use Esc/Enter/ArrowKeys)"

// finder is the state of one incremental search.
type finder struct {
	lastMatch int
	direction int
}

func newFinder() *finder {
	return &finder{lastMatch: -1, direction: 1}
}

// Find runs an incremental search. Escape returns the cursor and viewport
// to where they were.
func (s *Session) Find(ctx context.Context) error {
	savedCursor := s.disp.Cursor()
	savedView := s.view.Save()

	f := newFinder()
	_, ok, err := s.Prompt(ctx, FindPrompt, func(query string, ev key.Event) {
		s.findStep(f, query, ev)
	})
	if err != nil {
		return err
	}
	if !ok {
		s.disp.SetCursor(savedCursor)
		s.view.Restore(savedView)
	}
	return nil
}

// findStep restores the previous match highlight, then searches for query
// starting after the last match in the current direction. Arrow keys step
// between matches; any other key restarts from the top.
func (s *Session) findStep(f *finder, query string, ev key.Event) {
	s.buf.ClearMatch()

	if ev.Is(key.ByteEnter) || ev.Key == key.KeyEscape {
		return
	}
	switch ev.Key {
	case key.KeyRight, key.KeyDown:
		f.direction = 1
	case key.KeyLeft, key.KeyUp:
		f.direction = -1
	default:
		f.lastMatch = -1
		f.direction = 1
	}
	if query == "" {
		return
	}

	n := s.buf.LineCount()
	needle := []byte(query)
	current := f.lastMatch
	for i := 0; i < n; i++ {
		current += f.direction
		switch {
		case current < 0:
			current = n - 1
		case current >= n:
			current = 0
		}

		raw := s.buf.Raw(current)
		idx := bytes.Index(raw, needle)
		if idx < 0 {
			continue
		}
		f.lastMatch = current
		s.disp.SetCursor(cursor.Cursor{Line: current, Offset: idx})
		s.view.CenterOn(current)
		s.buf.SetMatch(current, layout.DisplayColumn(raw, idx), len(needle))
		return
	}
}
