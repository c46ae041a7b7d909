package backend

import (
	"bytes"
	"sync"
	"time"
)

// gap marks a read that reports no input.
const gap = -1

// Memory is an in-memory Backend. Input is scripted, output is captured.
// When the script is exhausted ReadByte returns ErrInputClosed.
type Memory struct {
	mu sync.Mutex

	rows, cols int
	sizeErr    error

	input  []int
	frames [][]byte
	out    bytes.Buffer

	resizeHandler func()
	started       bool
	stopped       bool
}

// NewMemory creates a memory backend with the given grid size.
func NewMemory(rows, cols int) *Memory {
	return &Memory{rows: rows, cols: cols}
}

// Init marks the backend started.
func (m *Memory) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
	return nil
}

// Shutdown marks the backend stopped.
func (m *Memory) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	return nil
}

// Started reports whether Init was called.
func (m *Memory) Started() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

// Stopped reports whether Shutdown was called.
func (m *Memory) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// Feed appends input bytes.
func (m *Memory) Feed(p ...byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range p {
		m.input = append(m.input, int(b))
	}
}

// FeedString appends the bytes of s.
func (m *Memory) FeedString(s string) {
	m.Feed([]byte(s)...)
}

// Gap appends a read that reports no input.
func (m *Memory) Gap() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.input = append(m.input, gap)
}

// Pending returns the number of scripted reads not yet consumed.
func (m *Memory) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.input)
}

// ReadByte pops the next scripted byte.
func (m *Memory) ReadByte(time.Duration) (byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.input) == 0 {
		return 0, false, ErrInputClosed
	}
	v := m.input[0]
	m.input = m.input[1:]
	if v == gap {
		return 0, false, nil
	}
	return byte(v), true, nil
}

// Write records p as one frame.
func (m *Memory) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames = append(m.frames, bytes.Clone(p))
	m.out.Write(p)
	return len(p), nil
}

// Frames returns every write in order.
func (m *Memory) Frames() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.frames))
	copy(out, m.frames)
	return out
}

// LastFrame returns the most recent write.
func (m *Memory) LastFrame() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.frames) == 0 {
		return nil
	}
	return m.frames[len(m.frames)-1]
}

// Output returns all written bytes.
func (m *Memory) Output() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.out.String()
}

// Size returns the configured grid size.
func (m *Memory) Size() (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sizeErr != nil {
		return 0, 0, m.sizeErr
	}
	return m.rows, m.cols, nil
}

// SetSizeError makes Size fail with err.
func (m *Memory) SetSizeError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sizeErr = err
}

// Resize changes the grid size and fires the resize callback.
func (m *Memory) Resize(rows, cols int) {
	m.mu.Lock()
	m.rows, m.cols = rows, cols
	cb := m.resizeHandler
	m.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// OnResize registers the resize callback.
func (m *Memory) OnResize(callback func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resizeHandler = callback
}
