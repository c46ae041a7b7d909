package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
)

// Save prompts and messages.
const (
	SaveAsPrompt     = "Save as : %s  (Cancel = Esc)"
	SavedMessage     = "FILE SAVED. %d bytes written."
	SaveFailed       = "SAVE FAILED. I/O error: %v"
	SaveAbortMessage = "Save aborted"
)

// Save writes the buffer to its file, prompting for a name first when it
// has none. Failures are reported on the status line and leave the buffer
// untouched; only terminal errors are returned.
func (s *Session) Save(ctx context.Context) error {
	if s.filename == "" {
		name, ok, err := s.Prompt(ctx, SaveAsPrompt, nil)
		if err != nil {
			return err
		}
		if !ok {
			s.SetStatus(SaveAbortMessage)
			return nil
		}
		s.setFilename(name)
	}

	n, err := WriteLines(s.filename, s.buf.Lines())
	if err != nil {
		s.log.Error("save failed", "path", s.filename, "error", err)
		s.SetStatus(SaveFailed, ioCause(err))
		return nil
	}

	s.buf.MarkClean()
	if info, err := os.Stat(s.filename); err == nil {
		s.saved = info
	}
	s.log.Info("saved file", "path", s.filename, "bytes", n)
	s.SetStatus(SavedMessage, n)
	return nil
}

// ioCause strips path context from err, leaving the system error text.
func ioCause(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	var le *os.LinkError
	if errors.As(err, &le) {
		return le.Err
	}
	return err
}
