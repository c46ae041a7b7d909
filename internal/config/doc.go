// Package config provides the configuration system for Kestrel.
//
// Configuration is resolved in three layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← KESTREL_*
//	├─────────────────────────────┤
//	│  2. User Settings           │  ← ~/.config/kestrel/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Command line flags are applied by the caller after Load returns.
//
// # File Format
//
//	[editor]
//	quit_confirmations = 1
//	status_timeout = "5s"
//
//	[input]
//	escape_timeout = "100ms"
//
//	[log]
//	level = "info"
//	path = "~/.local/state/kestrel/kestrel.log"
//
//	[syntax]
//	profiles = "~/.config/kestrel/syntax.yaml"
//
//	[theme]
//	comment = 35
//	keyword = 31
//
// A missing file is not an error: Load returns the defaults.
package config
