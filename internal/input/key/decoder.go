package key

import (
	"context"
	"time"
)

// DefaultTimeout is the per-byte wait used while decoding.
const DefaultTimeout = 100 * time.Millisecond

// Source delivers raw input bytes. ReadByte waits at most timeout; ok is
// false when nothing arrived, which is not an error.
type Source interface {
	ReadByte(timeout time.Duration) (b byte, ok bool, err error)
}

// Decoder turns a byte Source into key events.
type Decoder struct {
	src     Source
	timeout time.Duration
	now     func() time.Time
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithTimeout sets the per-byte wait.
func WithTimeout(d time.Duration) DecoderOption {
	return func(dec *Decoder) {
		if d > 0 {
			dec.timeout = d
		}
	}
}

// WithClock sets the clock used for event timestamps.
func WithClock(now func() time.Time) DecoderOption {
	return func(dec *Decoder) {
		dec.now = now
	}
}

// NewDecoder creates a decoder reading from src.
func NewDecoder(src Source, opts ...DecoderOption) *Decoder {
	d := &Decoder{
		src:     src,
		timeout: DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Timeout returns the per-byte wait.
func (d *Decoder) Timeout() time.Duration {
	return d.timeout
}

// SetTimeout changes the per-byte wait.
func (d *Decoder) SetTimeout(t time.Duration) {
	if t > 0 {
		d.timeout = t
	}
}

// Next blocks until an event is decoded, the source fails, or ctx is done.
func (d *Decoder) Next(ctx context.Context) (Event, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Event{}, err
		}
		ev, ok, err := d.Poll()
		if err != nil {
			return Event{}, err
		}
		if ok {
			return ev, nil
		}
	}
}

// Poll makes one decode attempt. ok is false when no input arrived
// within the timeout.
func (d *Decoder) Poll() (ev Event, ok bool, err error) {
	b, ok, err := d.src.ReadByte(d.timeout)
	if err != nil || !ok {
		return Event{}, false, err
	}
	if b != ByteEscape {
		return d.stamp(Event{Key: KeyRune, Rune: rune(b)}), true, nil
	}
	k, err := d.escape()
	if err != nil {
		return Event{}, false, err
	}
	return d.stamp(Event{Key: k}), true, nil
}

// escape decodes the bytes after ESC. Missing or unknown bytes yield
// KeyEscape.
func (d *Decoder) escape() (Key, error) {
	b1, ok, err := d.src.ReadByte(d.timeout)
	if err != nil || !ok {
		return KeyEscape, err
	}
	b2, ok, err := d.src.ReadByte(d.timeout)
	if err != nil || !ok {
		return KeyEscape, err
	}

	switch b1 {
	case '[':
		if b2 >= '0' && b2 <= '9' {
			b3, ok, err := d.src.ReadByte(d.timeout)
			if err != nil || !ok || b3 != '~' {
				return KeyEscape, err
			}
			return tildeKey(b2), nil
		}
		switch b2 {
		case 'A':
			return KeyUp, nil
		case 'B':
			return KeyDown, nil
		case 'C':
			return KeyRight, nil
		case 'D':
			return KeyLeft, nil
		case 'H':
			return KeyHome, nil
		case 'F':
			return KeyEnd, nil
		}
	case 'O':
		switch b2 {
		case 'H':
			return KeyHome, nil
		case 'F':
			return KeyEnd, nil
		}
	}
	return KeyEscape, nil
}

// tildeKey maps the digit of an ESC [ n ~ sequence.
func tildeKey(digit byte) Key {
	switch digit {
	case '1', '7':
		return KeyHome
	case '3':
		return KeyDelete
	case '4', '8':
		return KeyEnd
	case '5':
		return KeyPageUp
	case '6':
		return KeyPageDown
	default:
		return KeyEscape
	}
}

func (d *Decoder) stamp(ev Event) Event {
	ev.Timestamp = d.now()
	return ev
}
