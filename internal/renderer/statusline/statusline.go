// Package statusline provides the status bar and message row text.
package statusline

import (
	"fmt"
	"strings"
	"time"
)

// DefaultMessageTimeout is how long a status message stays visible.
const DefaultMessageTimeout = 5 * time.Second

// NoName is shown for a buffer without a file name.
const NoName = "[NO NAME]"

// StatusLine holds the display state for the two bottom screen rows.
type StatusLine struct {
	// Display state
	filename   string
	modified   bool
	line       int // Current line (1-indexed for display)
	totalLines int
	fileType   string

	// Message display
	message     string
	messageTime time.Time
	timeout     time.Duration
}

// New creates a status line whose messages expire after timeout.
func New(timeout time.Duration) *StatusLine {
	if timeout <= 0 {
		timeout = DefaultMessageTimeout
	}
	return &StatusLine{timeout: timeout}
}

// SetFilename updates the displayed filename.
func (s *StatusLine) SetFilename(filename string) { s.filename = filename }

// SetModified updates the modified indicator.
func (s *StatusLine) SetModified(modified bool) { s.modified = modified }

// SetFileType updates the file type label.
func (s *StatusLine) SetFileType(ft string) { s.fileType = ft }

// SetPosition updates the cursor line (0-indexed) and line count.
func (s *StatusLine) SetPosition(line, total int) {
	s.line = line + 1
	s.totalLines = total
}

// SetTimeout changes the message lifetime.
func (s *StatusLine) SetTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

// SetMessage sets the transient message at time now.
func (s *StatusLine) SetMessage(msg string, now time.Time) {
	s.message = msg
	s.messageTime = now
}

// MessageVisible reports whether the message is shown at time now.
func (s *StatusLine) MessageVisible(now time.Time) bool {
	return s.message != "" && now.Sub(s.messageTime) < s.timeout
}

// Bar returns the status bar text for the given width, without styling.
// The left part is truncated to fit; the right part is shown only when
// it fits completely.
func (s *StatusLine) Bar(width int) string {
	name := s.filename
	if name == "" {
		name = NoName
	}
	if len(name) > 20 {
		name = name[:20]
	}
	mod := ""
	if s.modified {
		mod = "(+)"
	}
	left := fmt.Sprintf("%s%s -- %d lines", name, mod, s.totalLines)
	right := fmt.Sprintf("%s | %d/%d", s.fileType, s.line, s.totalLines)

	if len(left) > width {
		left = left[:width]
	}
	var b strings.Builder
	b.WriteString(left)
	n := len(left)
	for n < width-len(right) {
		b.WriteByte(' ')
		n++
	}
	if len(right) == width-n {
		b.WriteString(right)
	}
	return b.String()
}

// MessageLine returns the message text clipped to width, or "" when the
// message has expired at time now.
func (s *StatusLine) MessageLine(width int, now time.Time) string {
	if !s.MessageVisible(now) {
		return ""
	}
	msg := s.message
	if len(msg) > width {
		msg = msg[:max(width, 0)]
	}
	return msg
}
