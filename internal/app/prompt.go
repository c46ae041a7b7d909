package app

import (
	"context"

	"github.com/dshills/kestrel/internal/input/key"
)

// PromptObserver is called after every key read by Prompt, with the input
// as it stands after that key.
type PromptObserver func(input string, ev key.Event)

// Prompt reads one line of input on the message row. format must contain
// a single %s, replaced by the input so far. It returns the input and true
// on Enter with non-empty input, or false when cancelled with Escape.
func (s *Session) Prompt(ctx context.Context, format string, observe PromptObserver) (string, bool, error) {
	if observe == nil {
		observe = func(string, key.Event) {}
	}

	var input []byte
	for {
		s.SetStatus(format, string(input))
		ev, err := s.nextKey(ctx)
		if err != nil {
			return "", false, err
		}

		switch {
		case ev.Is(key.ByteEnter) && len(input) > 0:
			s.SetStatus("")
			observe(string(input), ev)
			return string(input), true, nil
		case ev.Key == key.KeyEscape:
			s.SetStatus("")
			observe(string(input), ev)
			return "", false, nil
		case ev.Is(key.ByteBackspace), ev.Is(key.Ctrl('h')), ev.Key == key.KeyDelete:
			if len(input) > 0 {
				input = input[:len(input)-1]
			}
		case ev.IsPrintableASCII():
			input = append(input, ev.Byte())
		}
		observe(string(input), ev)
	}
}
