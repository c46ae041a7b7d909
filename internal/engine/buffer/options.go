package buffer

import "github.com/dshills/kestrel/internal/renderer/highlight"

// Option configures a Buffer.
type Option func(*Buffer)

// WithProfile sets the syntax profile used for highlighting.
func WithProfile(p *highlight.Profile) Option {
	return func(b *Buffer) {
		b.profile = p
	}
}

// WithLines seeds the buffer with content. The buffer starts clean.
func WithLines(lines [][]byte) Option {
	return func(b *Buffer) {
		b.seed = lines
	}
}
