package backend

import (
	"bytes"
	"fmt"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// maxReportLen bounds the bytes read while waiting for a position report.
const maxReportLen = 32

// sizeQuery is the fallback size probe: move to the bottom-right corner,
// then ask the terminal where the cursor ended up.
var sizeQuery = ansi.CursorForward(999) + ansi.CursorDown(999) + ansi.RequestCursorPositionReport

// QuerySize determines the grid size through the cursor position report
// protocol, for devices that cannot report their size directly.
func QuerySize(dev interface {
	ReadByte(timeout time.Duration) (byte, bool, error)
	Write(p []byte) (int, error)
}, timeout time.Duration) (rows, cols int, err error) {
	if _, err := dev.Write([]byte(sizeQuery)); err != nil {
		return 0, 0, fmt.Errorf("write size query: %w", err)
	}

	var buf bytes.Buffer
	for buf.Len() < maxReportLen {
		b, ok, err := dev.ReadByte(timeout)
		if err != nil {
			return 0, 0, err
		}
		if !ok {
			break
		}
		buf.WriteByte(b)
		if b == 'R' {
			break
		}
	}
	return ParseCursorReport(buf.Bytes())
}

// ParseCursorReport parses "ESC [ rows ; cols R".
func ParseCursorReport(report []byte) (rows, cols int, err error) {
	if len(report) < 2 || report[0] != 0x1b || report[1] != '[' {
		return 0, 0, fmt.Errorf("%w: bad report %q", ErrSizeUnavailable, report)
	}
	if _, err := fmt.Sscanf(string(report[2:]), "%d;%dR", &rows, &cols); err != nil {
		return 0, 0, fmt.Errorf("%w: bad report %q", ErrSizeUnavailable, report)
	}
	if rows <= 0 || cols <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrSizeUnavailable, rows, cols)
	}
	return rows, cols, nil
}
