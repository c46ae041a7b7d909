package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/kestrel/internal/renderer/highlight"
)

// Default values.
const (
	DefaultQuitConfirmations = 1
	DefaultStatusTimeout     = 5 * time.Second
	DefaultEscapeTimeout     = 100 * time.Millisecond
	DefaultLogLevel          = "info"

	// MaxQuitConfirmations bounds editor.quit_confirmations.
	MaxQuitConfirmations = 10
	// MaxEscapeTimeout bounds input.escape_timeout.
	MaxEscapeTimeout = 5 * time.Second
)

// Config is the resolved editor configuration.
type Config struct {
	Editor EditorConfig `toml:"editor"`
	Input  InputConfig  `toml:"input"`
	Log    LogConfig    `toml:"log"`
	Syntax SyntaxConfig `toml:"syntax"`
	Theme  ThemeConfig  `toml:"theme"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

// EditorConfig holds [editor] settings.
type EditorConfig struct {
	// QuitConfirmations is the number of extra Ctrl-Q presses required
	// to quit with unsaved changes.
	QuitConfirmations int      `toml:"quit_confirmations"`
	StatusTimeout     Duration `toml:"status_timeout"`
}

// InputConfig holds [input] settings.
type InputConfig struct {
	EscapeTimeout Duration `toml:"escape_timeout"`
}

// LogConfig holds [log] settings.
type LogConfig struct {
	Level string `toml:"level"`
	// Path is the log file. Empty discards logs.
	Path string `toml:"path"`
}

// SyntaxConfig holds [syntax] settings.
type SyntaxConfig struct {
	// Profiles is a YAML file of additional highlight profiles.
	Profiles string `toml:"profiles"`
}

// ThemeConfig holds [theme] color overrides. Zero keeps the default color.
type ThemeConfig struct {
	Comment          int `toml:"comment"`
	String           int `toml:"string"`
	Number           int `toml:"number"`
	Match            int `toml:"match"`
	Keyword          int `toml:"keyword"`
	KeywordSecondary int `toml:"keyword_secondary"`
}

// Duration is a time.Duration written as a Go duration string ("100ms").
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDuration, b)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			QuitConfirmations: DefaultQuitConfirmations,
			StatusTimeout:     Duration(DefaultStatusTimeout),
		},
		Input: InputConfig{
			EscapeTimeout: Duration(DefaultEscapeTimeout),
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/kestrel/config.toml, or the
// platform equivalent. It returns "" when no config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "kestrel", "config.toml")
}

// Load reads the configuration at path over the defaults and applies
// KESTREL_ environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := cfg.decode(path, data); err != nil {
				return nil, err
			}
			cfg.Path = path
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.Log.Path = ExpandHome(cfg.Log.Path)
	cfg.Syntax.Profiles = ExpandHome(cfg.Syntax.Profiles)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults without touching the
// environment. name is used in error messages.
func Parse(name string, data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(name, data); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(path string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		pe := &ParseError{Path: path, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		var se *toml.StrictMissingError
		if errors.As(err, &se) && len(se.Errors) > 0 {
			pe.Message = "unknown key " + strings.Join(se.Errors[0].Key(), ".")
			pe.Line, pe.Column = se.Errors[0].Position()
		}
		return pe
	}
	return nil
}

// Validate checks every setting against its allowed range.
func (c *Config) Validate() error {
	var errs []error
	if c.Editor.QuitConfirmations < 0 || c.Editor.QuitConfirmations > MaxQuitConfirmations {
		errs = append(errs, &ValidationError{
			Key:     "editor.quit_confirmations",
			Message: fmt.Sprintf("must be between 0 and %d", MaxQuitConfirmations),
		})
	}
	if c.Editor.StatusTimeout <= 0 {
		errs = append(errs, &ValidationError{Key: "editor.status_timeout", Message: "must be positive"})
	}
	if c.Input.EscapeTimeout <= 0 || c.Input.EscapeTimeout.Std() > MaxEscapeTimeout {
		errs = append(errs, &ValidationError{
			Key:     "input.escape_timeout",
			Message: fmt.Sprintf("must be positive and at most %s", MaxEscapeTimeout),
		})
	}
	if !validLevel(c.Log.Level) {
		errs = append(errs, &ValidationError{
			Key:     "log.level",
			Message: fmt.Sprintf("unknown level %q", c.Log.Level),
		})
	}
	for _, tc := range c.Theme.colors() {
		if tc.color != 0 && !highlight.ValidColor(tc.color) {
			errs = append(errs, &ValidationError{
				Key:     "theme." + tc.key,
				Message: fmt.Sprintf("color %d is not an SGR foreground code", tc.color),
			})
		}
	}
	return errors.Join(errs...)
}

func validLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

type themeColor struct {
	key   string
	tag   highlight.Tag
	color int
}

func (t ThemeConfig) colors() []themeColor {
	return []themeColor{
		{"comment", highlight.TagComment, t.Comment},
		{"string", highlight.TagString, t.String},
		{"number", highlight.TagNumber, t.Number},
		{"match", highlight.TagMatch, t.Match},
		{"keyword", highlight.TagKeyword, t.Keyword},
		{"keyword_secondary", highlight.TagKeywordSecondary, t.KeywordSecondary},
	}
}

// HighlightTheme returns the default theme with the configured overrides.
func (c *Config) HighlightTheme() *highlight.Theme {
	th := highlight.DefaultTheme()
	for _, tc := range c.Theme.colors() {
		if tc.color != 0 {
			th = th.With(tc.tag, tc.color)
		}
	}
	return th
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
