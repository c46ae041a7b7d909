// Package app provides the editing session that ties the editor together.
package app

import (
	"errors"
	"strings"
)

var (
	// ErrQuit is returned by Run when the user quits.
	ErrQuit = errors.New("quit requested")

	// ErrNoFilename is returned when saving a buffer that has no file name.
	ErrNoFilename = errors.New("no file name")
)

// terminalTarget names the device in errors from the backend.
const terminalTarget = "terminal"

// OperationError reports a failed session operation on a file or on the
// terminal.
type OperationError struct {
	Op     string // open, read, save, init, write, ...
	Target string // file path, or "terminal"
	Err    error
}

func (e *OperationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Target != "" {
		b.WriteByte(' ')
		b.WriteString(e.Target)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *OperationError) Unwrap() error { return e.Err }

func fileError(op, path string, err error) error {
	return &OperationError{Op: op, Target: path, Err: err}
}

func terminalError(op string, err error) error {
	return &OperationError{Op: op, Target: terminalTarget, Err: err}
}
