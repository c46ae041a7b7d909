package backend

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Terminal implements Backend on the controlling tty.
type Terminal struct {
	tty           tcell.Tty
	resizeHandler func()
	mu            sync.Mutex

	input chan byte
	errc  chan error
	done  chan struct{}

	// queryTimeout bounds each byte of the fallback size probe.
	queryTimeout time.Duration
}

// NewTerminal creates a terminal backend on /dev/tty.
func NewTerminal() (*Terminal, error) {
	tty, err := tcell.NewDevTty()
	if err != nil {
		return nil, err
	}
	return newTerminal(tty), nil
}

func newTerminal(tty tcell.Tty) *Terminal {
	return &Terminal{
		tty:          tty,
		input:        make(chan byte, 1024),
		errc:         make(chan error, 1),
		queryTimeout: time.Second,
	}
}

// Init enters raw mode and starts the reader.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.tty.Start(); err != nil {
		return err
	}
	t.done = make(chan struct{})
	t.tty.NotifyResize(t.notifyResize)
	go t.pump(t.done)
	return nil
}

// Shutdown stops the reader and restores the original tty mode.
func (t *Terminal) Shutdown() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done == nil {
		return nil
	}
	close(t.done)
	t.done = nil
	t.tty.NotifyResize(nil)
	_ = t.tty.Drain()
	err := t.tty.Stop()
	if cerr := t.tty.Close(); err == nil {
		err = cerr
	}
	return err
}

func (t *Terminal) notifyResize() {
	t.mu.Lock()
	cb := t.resizeHandler
	t.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// OnResize registers the resize callback.
func (t *Terminal) OnResize(callback func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.resizeHandler = callback
}

// pump moves tty bytes onto the input channel. Reads block in raw mode,
// so a dedicated goroutine is what lets ReadByte time out.
func (t *Terminal) pump(done <-chan struct{}) {
	buf := make([]byte, 256)
	for {
		n, err := t.tty.Read(buf)
		for _, b := range buf[:n] {
			select {
			case t.input <- b:
			case <-done:
				return
			}
		}
		if err != nil {
			select {
			case <-done:
			case t.errc <- err:
			}
			return
		}
	}
}

// ReadByte returns the next input byte, waiting at most timeout.
func (t *Terminal) ReadByte(timeout time.Duration) (byte, bool, error) {
	select {
	case b := <-t.input:
		return b, true, nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case b := <-t.input:
		return b, true, nil
	case err := <-t.errc:
		return 0, false, err
	case <-timer.C:
		return 0, false, nil
	}
}

// Write sends p to the tty.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.tty.Write(p)
}

// Size returns the tty grid size, falling back to the cursor position
// probe when the device reports nothing usable.
func (t *Terminal) Size() (int, int, error) {
	ws, err := t.tty.WindowSize()
	if err == nil && ws.Width > 0 && ws.Height > 0 {
		return ws.Height, ws.Width, nil
	}
	return QuerySize(t, t.queryTimeout)
}
