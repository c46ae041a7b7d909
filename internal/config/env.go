package config

import (
	"fmt"
	"time"
)

// EnvPrefix is the prefix shared by every environment override.
const EnvPrefix = "KESTREL_"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envBinding maps one environment variable onto a Config field.
type envBinding struct {
	name  string
	apply func(c *Config, value string) error
}

var envBindings = []envBinding{
	{"LOG_LEVEL", func(c *Config, v string) error { c.Log.Level = v; return nil }},
	{"LOG_PATH", func(c *Config, v string) error { c.Log.Path = v; return nil }},
	{"SYNTAX_PROFILES", func(c *Config, v string) error { c.Syntax.Profiles = v; return nil }},
	{"ESCAPE_TIMEOUT", func(c *Config, v string) error { return setDuration(&c.Input.EscapeTimeout, v) }},
	{"STATUS_TIMEOUT", func(c *Config, v string) error { return setDuration(&c.Editor.StatusTimeout, v) }},
}

// EnvVars returns the names of all recognized environment variables.
func EnvVars() []string {
	names := make([]string, len(envBindings))
	for i, b := range envBindings {
		names[i] = EnvPrefix + b.name
	}
	return names
}

// ApplyEnv overrides c with any KESTREL_ variables found by lookup.
// Empty values are ignored.
func ApplyEnv(c *Config, lookup LookupFunc) error {
	for _, b := range envBindings {
		v, ok := lookup(EnvPrefix + b.name)
		if !ok || v == "" {
			continue
		}
		if err := b.apply(c, v); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, b.name, err)
		}
	}
	return nil
}

func setDuration(d *Duration, v string) error {
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDuration, v)
	}
	*d = Duration(parsed)
	return nil
}
