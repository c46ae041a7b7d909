package app

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/dshills/kestrel/internal/config"
	"github.com/dshills/kestrel/internal/dispatcher"
	"github.com/dshills/kestrel/internal/engine/buffer"
	"github.com/dshills/kestrel/internal/input/key"
	"github.com/dshills/kestrel/internal/renderer"
	"github.com/dshills/kestrel/internal/renderer/backend"
	"github.com/dshills/kestrel/internal/renderer/highlight"
	"github.com/dshills/kestrel/internal/renderer/statusline"
	"github.com/dshills/kestrel/internal/renderer/viewport"
	"github.com/dshills/kestrel/internal/watcher"
)

// Status messages.
const (
	HelpMessage        = "HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = search"
	FileChangedMessage = "File changed on disk"
)

// reservedRows is the number of screen rows used by the status bar and
// the message line.
const reservedRows = 2

// Options configures a Session.
type Options struct {
	// Config supplies timeouts, theme and syntax profiles. Nil uses
	// config.Default().
	Config *config.Config

	// Logger receives diagnostics. Nil discards them.
	Logger *Logger

	// Registry supplies syntax profiles. Nil uses the built-in profiles
	// plus any file named by Config.Syntax.Profiles.
	Registry *highlight.Registry

	// Watch enables external change detection for the open file and the
	// config file.
	Watch bool

	// Clock returns the current time. Nil uses time.Now.
	Clock func() time.Time

	// Reload re-reads the config file when it changes on disk. It should
	// apply the same overrides as the initial load. Nil uses config.Load.
	Reload func(path string) (*config.Config, error)
}

// Session is one editing session: a single document on a single terminal.
// All state is owned by the goroutine calling Run.
type Session struct {
	backend backend.Backend
	cfg     *config.Config
	log     *Logger
	now     func() time.Time
	reload  func(path string) (*config.Config, error)

	buf      *buffer.Buffer
	disp     *dispatcher.Dispatcher
	view     *viewport.Viewport
	decoder  *key.Decoder
	comp     *renderer.Compositor
	status   *statusline.StatusLine
	registry *highlight.Registry
	watcher  *watcher.Watcher

	filename string

	// saved is the file state after our last save, used to tell our own
	// writes apart from external ones.
	saved os.FileInfo

	resized      atomic.Bool
	needsRedraw  bool
	messageShown bool
	closed       bool
}

// New creates a session on be. The backend is initialized and its size is
// queried; failure there is fatal.
func New(opts Options, be backend.Backend) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = NullLogger()
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	reload := opts.Reload
	if reload == nil {
		reload = config.Load
	}

	registry := opts.Registry
	if registry == nil {
		var err error
		registry, err = loadRegistry(cfg.Syntax.Profiles)
		if err != nil {
			return nil, err
		}
	}

	s := &Session{
		backend:  be,
		cfg:      cfg,
		log:      log.WithComponent("session"),
		now:      now,
		reload:   reload,
		buf:      buffer.New(),
		comp:     renderer.New(renderer.WithTheme(cfg.HighlightTheme())),
		status:   statusline.New(cfg.Editor.StatusTimeout.Std()),
		registry: registry,
	}
	s.decoder = key.NewDecoder(be,
		key.WithTimeout(cfg.Input.EscapeTimeout.Std()),
		key.WithClock(now),
	)
	s.disp = dispatcher.New(s.buf, dispatcher.DefaultConfig().
		WithQuitConfirmations(cfg.Editor.QuitConfirmations))

	if err := be.Init(); err != nil {
		return nil, terminalError("init", err)
	}
	rows, cols, err := be.Size()
	if err != nil {
		_ = be.Shutdown()
		return nil, terminalError("query size", err)
	}
	s.view = viewport.NewViewport(cols, rows-reservedRows)
	s.disp.SetPageRows(s.view.Height())
	be.OnResize(func() { s.resized.Store(true) })

	if opts.Watch {
		s.startWatcher()
	}

	s.needsRedraw = true
	s.log.Info("session started", "rows", rows, "cols", cols, "escape_timeout", s.decoder.Timeout())
	return s, nil
}

func loadRegistry(profilesPath string) (*highlight.Registry, error) {
	r := highlight.DefaultRegistry()
	if profilesPath == "" {
		return r, nil
	}
	f, err := os.Open(profilesPath)
	if err != nil {
		return nil, fileError("load profiles", profilesPath, err)
	}
	defer f.Close()

	profiles, err := highlight.LoadProfiles(f)
	if err != nil {
		return nil, fileError("load profiles", profilesPath, err)
	}
	for _, p := range profiles {
		r.Register(p)
	}
	return r, nil
}

// Open loads path into the buffer. A file that does not exist yet opens
// as an empty document bound to that name.
func (s *Session) Open(path string) error {
	lines, err := ReadLines(path)
	if err != nil {
		return err
	}
	s.buf.Load(lines)
	s.disp.SetDocument(s.buf)
	s.setFilename(path)
	s.saved = nil
	s.needsRedraw = true
	s.log.Info("opened file", "path", path, "lines", len(lines))
	return nil
}

// setFilename binds the buffer to path and re-selects the syntax profile.
func (s *Session) setFilename(path string) {
	if s.watcher != nil && s.filename != "" && s.filename != s.cfg.Path {
		_ = s.watcher.Remove(s.filename)
	}
	s.filename = path
	s.buf.SetProfile(s.registry.Select(path))
	if s.watcher != nil && path != "" {
		if err := s.watcher.Add(path); err != nil {
			s.log.Warn("cannot watch file", "path", path, "error", err)
		}
	}
}

// Filename returns the current file name, or "".
func (s *Session) Filename() string {
	return s.filename
}

// Buffer returns the line store.
func (s *Session) Buffer() *buffer.Buffer {
	return s.buf
}

// Dispatcher returns the key dispatcher.
func (s *Session) Dispatcher() *dispatcher.Dispatcher {
	return s.disp
}

// Viewport returns the viewport.
func (s *Session) Viewport() *viewport.Viewport {
	return s.view
}

// SetStatus sets the transient status message.
func (s *Session) SetStatus(format string, args ...any) {
	s.status.SetMessage(fmt.Sprintf(format, args...), s.now())
	s.needsRedraw = true
}

// Run processes keys until quit, a fatal error, or ctx is done. A normal
// quit returns ErrQuit.
func (s *Session) Run(ctx context.Context) error {
	s.SetStatus(HelpMessage)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.pollWatcher()
		s.checkResize()
		if s.shouldRefresh() {
			if err := s.Refresh(); err != nil {
				return err
			}
		}

		ev, ok, err := s.decoder.Poll()
		if err != nil {
			return terminalError("read", err)
		}
		if !ok {
			continue
		}
		if err := s.handleKey(ctx, ev); err != nil {
			return err
		}
		s.needsRedraw = true
	}
}

func (s *Session) handleKey(ctx context.Context, ev key.Event) error {
	res := s.disp.Dispatch(ev)
	if res.Message != "" {
		s.SetStatus("%s", res.Message)
	}

	switch res.Command {
	case dispatcher.CommandQuit:
		s.log.Info("quit", "modified", s.buf.Modified())
		return ErrQuit
	case dispatcher.CommandSave:
		return s.Save(ctx)
	case dispatcher.CommandFind:
		return s.Find(ctx)
	}
	return nil
}

// shouldRefresh reports whether the screen is stale, including a status
// message that has just expired.
func (s *Session) shouldRefresh() bool {
	return s.needsRedraw || s.status.MessageVisible(s.now()) != s.messageShown
}

// Refresh scrolls the viewport to the cursor and writes one frame.
func (s *Session) Refresh() error {
	cur := s.disp.Cursor()
	col := cur.DisplayColumn(s.buf)
	s.view.Scroll(cur.Line, col)

	s.status.SetFilename(s.filename)
	s.status.SetModified(s.buf.Modified())
	s.status.SetFileType(highlight.FileType(s.filename, s.buf.Profile()))
	s.status.SetPosition(cur.Line, s.buf.LineCount())

	now := s.now()
	frame := renderer.Frame{
		Lines:      s.buf,
		Viewport:   s.view,
		CursorLine: cur.Line,
		CursorCol:  col,
		StatusBar:  s.status.Bar(s.view.Width()),
		Message:    s.status.MessageLine(s.view.Width(), now),
	}
	if _, err := s.backend.Write(s.comp.Compose(frame)); err != nil {
		return terminalError("write", err)
	}
	s.needsRedraw = false
	s.messageShown = s.status.MessageVisible(now)
	return nil
}

func (s *Session) checkResize() {
	if !s.resized.Swap(false) {
		return
	}
	rows, cols, err := s.backend.Size()
	if err != nil {
		s.log.Warn("resize: size query failed", "error", err)
		return
	}
	s.view.Resize(cols, rows-reservedRows)
	s.disp.SetPageRows(s.view.Height())
	s.needsRedraw = true
	s.log.Debug("resized", "rows", rows, "cols", cols)
}

// nextKey blocks for one key while keeping the screen current. It is used
// by nested loops such as prompts.
func (s *Session) nextKey(ctx context.Context) (key.Event, error) {
	for {
		if err := ctx.Err(); err != nil {
			return key.Event{}, err
		}
		s.checkResize()
		if s.shouldRefresh() {
			if err := s.Refresh(); err != nil {
				return key.Event{}, err
			}
		}
		ev, ok, err := s.decoder.Poll()
		if err != nil {
			return key.Event{}, terminalError("read", err)
		}
		if ok {
			return ev, nil
		}
	}
}

// Close stops the watcher, clears the screen and restores the terminal.
// It is safe to call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	_, _ = s.backend.Write(renderer.ClearScreen())
	if err := s.backend.Shutdown(); err != nil {
		return terminalError("shutdown", err)
	}
	s.log.Info("session closed")
	return nil
}
