// Package backend provides the terminal device the editor draws on.
//
// A Backend delivers raw input bytes with a bounded wait, accepts whole
// frames as single writes, and reports the grid size. Terminal talks to
// the controlling tty; Memory is an in-process stand-in for tests.
package backend

import (
	"errors"
	"time"
)

// Errors returned by backends.
var (
	// ErrNotStarted indicates Init has not been called.
	ErrNotStarted = errors.New("backend: not started")

	// ErrInputClosed indicates no more input will ever arrive.
	ErrInputClosed = errors.New("backend: input closed")

	// ErrSizeUnavailable indicates the grid size could not be determined.
	ErrSizeUnavailable = errors.New("backend: window size unavailable")
)

// Backend is the terminal device.
type Backend interface {
	// Init puts the device into raw mode and starts input delivery.
	Init() error

	// Shutdown restores the original device mode.
	Shutdown() error

	// Size returns the grid dimensions as positive integers.
	Size() (rows, cols int, err error)

	// ReadByte waits at most timeout for one input byte. ok is false if
	// nothing arrived.
	ReadByte(timeout time.Duration) (b byte, ok bool, err error)

	// Write sends output bytes to the device.
	Write(p []byte) (int, error)

	// OnResize registers a callback invoked when the grid size changes.
	// The callback may run on another goroutine.
	OnResize(callback func())
}
