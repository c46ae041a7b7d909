package app

import (
	"os"

	"github.com/dshills/kestrel/internal/config"
	"github.com/dshills/kestrel/internal/watcher"
)

// Config reload messages.
const (
	ConfigReloadedMessage = "Config reloaded"
	ConfigReloadFailed    = "Config reload failed: %v"
)

func (s *Session) startWatcher() {
	w, err := watcher.New()
	if err != nil {
		s.log.Warn("file watching disabled", "error", err)
		return
	}
	s.watcher = w
	if s.cfg.Path != "" {
		if err := w.Add(s.cfg.Path); err != nil {
			s.log.Warn("cannot watch config", "path", s.cfg.Path, "error", err)
		}
	}
}

// pollWatcher drains watcher events and reacts to them on the session
// goroutine.
func (s *Session) pollWatcher() {
	if s.watcher == nil {
		return
	}
	for _, ev := range s.watcher.Poll() {
		if !ev.Op.Modified() {
			continue
		}
		switch {
		case s.cfg.Path != "" && sameFile(ev.Path, s.cfg.Path):
			s.reloadConfig()
		case s.filename != "" && sameFile(ev.Path, s.filename):
			s.fileChanged()
		}
	}
}

// fileChanged reports an external modification of the open file. Writes
// matching our last save are ignored.
func (s *Session) fileChanged() {
	info, err := os.Stat(s.filename)
	if err != nil {
		return
	}
	if s.saved != nil && info.Size() == s.saved.Size() && info.ModTime().Equal(s.saved.ModTime()) {
		return
	}
	s.saved = info
	s.log.Info("file changed on disk", "path", s.filename)
	s.SetStatus(FileChangedMessage)
}

// reloadConfig re-reads the config file and applies the settings that can
// change at runtime.
func (s *Session) reloadConfig() {
	cfg, err := s.reload(s.cfg.Path)
	if err != nil {
		s.log.Warn("config reload failed", "path", s.cfg.Path, "error", err)
		s.SetStatus(ConfigReloadFailed, err)
		return
	}
	cfg.Path = s.cfg.Path
	s.applyConfig(cfg)
	s.log.Info("config reloaded", "path", cfg.Path, "log_level", cfg.Log.Level)
	s.SetStatus(ConfigReloadedMessage)
}

// applyConfig installs the theme, timeouts and quit policy from cfg.
func (s *Session) applyConfig(cfg *config.Config) {
	s.cfg = cfg
	s.comp.SetTheme(cfg.HighlightTheme())
	s.status.SetTimeout(cfg.Editor.StatusTimeout.Std())
	s.decoder.SetTimeout(cfg.Input.EscapeTimeout.Std())
	s.disp.SetQuitConfirmations(cfg.Editor.QuitConfirmations)
	s.log.SetLevel(ParseLogLevel(cfg.Log.Level))
	s.needsRedraw = true
}

func sameFile(a, b string) bool {
	if a == b {
		return true
	}
	ia, err := os.Stat(a)
	if err != nil {
		return false
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ia, ib)
}
