package dispatcher

// DefaultPageRows is used for PageUp and PageDown until the caller sets the
// visible height.
const DefaultPageRows = 24

// Config holds dispatcher configuration options.
type Config struct {
	// QuitConfirmations is the number of extra Ctrl-Q presses required to
	// quit with unsaved changes. Zero quits immediately.
	QuitConfirmations int

	// PageRows is the distance moved by PageUp and PageDown.
	PageRows int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		QuitConfirmations: 1,
		PageRows:          DefaultPageRows,
	}
}

// WithQuitConfirmations returns a copy of the config with the quit
// confirmation count set.
func (c Config) WithQuitConfirmations(n int) Config {
	if n >= 0 {
		c.QuitConfirmations = n
	}
	return c
}

// WithPageRows returns a copy of the config with the page distance set.
func (c Config) WithPageRows(rows int) Config {
	if rows > 0 {
		c.PageRows = rows
	}
	return c
}
