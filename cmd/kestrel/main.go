// Package main is the entry point for the Kestrel editor.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/kestrel/internal/app"
	"github.com/dshills/kestrel/internal/config"
	"github.com/dshills/kestrel/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Flags
var (
	configPath string
	logLevel   string
	logFile    string
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kestrel [file]",
		Short: "Kestrel - a small terminal text editor",
		Long: `Kestrel edits one file in the terminal.

Keys:
  Ctrl-S  save
  Ctrl-F  find (arrows step between matches, Esc cancels)
  Ctrl-Q  quit

Configuration is read from ~/.config/kestrel/config.toml unless --config
is given. KESTREL_* environment variables override the file.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) > 0 {
				file = args[0]
			}
			code := run(cmd.Context(), file)
			if code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "path to configuration file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	return cmd
}

func run(ctx context.Context, file string) int {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: kestrel must be run in a terminal")
		return 1
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger := app.NewLogger(app.LoggerConfig{
		Level: app.ParseLogLevel(cfg.Log.Level),
		Path:  cfg.Log.Path,
	})
	defer logger.Close()

	tty, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open terminal: %v\n", err)
		return 1
	}

	session, err := app.New(app.Options{
		Config: cfg,
		Logger: logger,
		Watch:  true,
		Reload: loadConfig,
	}, tty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer session.Close()

	if file != "" {
		if err := session.Open(file); err != nil {
			_ = session.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	err = session.Run(ctx)
	if errors.Is(err, app.ErrQuit) {
		return 0
	}
	_ = session.Close()
	if errors.Is(err, context.Canceled) {
		return 0
	}
	logger.Error("session ended", "error", err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

// loadConfig reads the config file and applies command-line overrides.
// It is also used when the file is reloaded, so flags keep precedence.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFile != "" {
		cfg.Log.Path = config.ExpandHome(logFile)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
