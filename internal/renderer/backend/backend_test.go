package backend

import (
	"errors"
	"testing"
	"time"
)

var (
	_ Backend = (*Terminal)(nil)
	_ Backend = (*Memory)(nil)
)

func TestParseCursorReport(t *testing.T) {
	tests := []struct {
		in         string
		rows, cols int
		ok         bool
	}{
		{"\x1b[24;80R", 24, 80, true},
		{"\x1b[1;1R", 1, 1, true},
		{"\x1b[0;80R", 0, 0, false},
		{"24;80R", 0, 0, false},
		{"\x1b[24R", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		rows, cols, err := ParseCursorReport([]byte(tt.in))
		if tt.ok {
			if err != nil || rows != tt.rows || cols != tt.cols {
				t.Errorf("ParseCursorReport(%q) = %d, %d, %v", tt.in, rows, cols, err)
			}
			continue
		}
		if !errors.Is(err, ErrSizeUnavailable) {
			t.Errorf("ParseCursorReport(%q) err = %v, want ErrSizeUnavailable", tt.in, err)
		}
	}
}

func TestQuerySize(t *testing.T) {
	m := NewMemory(0, 0)
	m.FeedString("\x1b[33;101Rextra")

	rows, cols, err := QuerySize(m, time.Millisecond)
	if err != nil {
		t.Fatalf("QuerySize: %v", err)
	}
	if rows != 33 || cols != 101 {
		t.Errorf("size = %dx%d, want 33x101", rows, cols)
	}
	if got := m.Output(); got != "\x1b[999C\x1b[999B\x1b[6n" {
		t.Errorf("query written = %q", got)
	}
	if m.Pending() != len("extra") {
		t.Errorf("probe consumed past the report: %d pending", m.Pending())
	}
}

func TestQuerySizeNoReply(t *testing.T) {
	m := NewMemory(0, 0)
	m.Gap()
	if _, _, err := QuerySize(m, time.Millisecond); !errors.Is(err, ErrSizeUnavailable) {
		t.Errorf("err = %v, want ErrSizeUnavailable", err)
	}
}

func TestMemoryScript(t *testing.T) {
	m := NewMemory(24, 80)
	m.Feed('a')
	m.Gap()
	m.FeedString("b")

	if b, ok, err := m.ReadByte(0); b != 'a' || !ok || err != nil {
		t.Errorf("first read = %q %v %v", b, ok, err)
	}
	if _, ok, err := m.ReadByte(0); ok || err != nil {
		t.Errorf("gap read = %v %v", ok, err)
	}
	if b, ok, _ := m.ReadByte(0); b != 'b' || !ok {
		t.Errorf("third read = %q %v", b, ok)
	}
	if _, _, err := m.ReadByte(0); !errors.Is(err, ErrInputClosed) {
		t.Errorf("exhausted err = %v", err)
	}
}

func TestMemoryFramesAndResize(t *testing.T) {
	m := NewMemory(24, 80)
	fired := 0
	m.OnResize(func() { fired++ })

	m.Write([]byte("one"))
	m.Write([]byte("two"))
	if len(m.Frames()) != 2 || string(m.LastFrame()) != "two" || m.Output() != "onetwo" {
		t.Errorf("frames = %q", m.Frames())
	}

	m.Resize(10, 40)
	rows, cols, _ := m.Size()
	if rows != 10 || cols != 40 || fired != 1 {
		t.Errorf("after resize %dx%d fired=%d", rows, cols, fired)
	}

	m.SetSizeError(ErrSizeUnavailable)
	if _, _, err := m.Size(); !errors.Is(err, ErrSizeUnavailable) {
		t.Errorf("Size err = %v", err)
	}
}
