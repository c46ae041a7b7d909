package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/kestrel/internal/config"
	"github.com/dshills/kestrel/internal/engine/buffer"
	"github.com/dshills/kestrel/internal/engine/cursor"
	"github.com/dshills/kestrel/internal/input/key"
	"github.com/dshills/kestrel/internal/renderer/backend"
	"github.com/dshills/kestrel/internal/renderer/highlight"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSession(t *testing.T, rows, cols int) (*Session, *backend.Memory, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	mem := backend.NewMemory(rows, cols)
	s, err := New(Options{Clock: clock.Now}, mem)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, mem, clock
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func feedCtrl(mem *backend.Memory, c byte) {
	mem.Feed(byte(key.Ctrl(c)))
}

// feedEscape queues a bare ESC: the decoder sees nothing after it.
func feedEscape(mem *backend.Memory) {
	mem.Feed(key.ByteEscape)
	mem.Gap()
}

// statusMessage returns the status message while it is visible.
func statusMessage(s *Session) string {
	return s.status.MessageLine(1024, s.now())
}

func hasMatch(b *buffer.Buffer) bool {
	for i := 0; i < b.LineCount(); i++ {
		for _, tag := range b.Tags(i) {
			if tag == highlight.TagMatch {
				return true
			}
		}
	}
	return false
}

func run(t *testing.T, s *Session) error {
	t.Helper()
	return s.Run(context.Background())
}

func TestNewInitializesBackend(t *testing.T) {
	s, mem, _ := newTestSession(t, 24, 80)

	assert.True(t, mem.Started())
	assert.Equal(t, 80, s.Viewport().Width())
	assert.Equal(t, 22, s.Viewport().Height())
	assert.Equal(t, 22, s.Dispatcher().Config().PageRows)
}

func TestNewSizeFailure(t *testing.T) {
	mem := backend.NewMemory(24, 80)
	mem.SetSizeError(backend.ErrSizeUnavailable)

	_, err := New(Options{}, mem)

	var opErr *OperationError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "query size", opErr.Op)
	assert.ErrorIs(t, err, backend.ErrSizeUnavailable)
	assert.True(t, mem.Stopped())
}

func TestRunQuitClean(t *testing.T) {
	s, mem, _ := newTestSession(t, 10, 60)
	feedCtrl(mem, 'q')

	err := run(t, s)

	assert.ErrorIs(t, err, ErrQuit)
	require.NotEmpty(t, mem.Frames())
	first := string(mem.Frames()[0])
	assert.Contains(t, first, HelpMessage)
	assert.Contains(t, first, "[NO NAME] -- 0 lines")
	assert.Contains(t, first, "---")
}

func TestRunInputClosed(t *testing.T) {
	s, _, _ := newTestSession(t, 10, 60)

	err := run(t, s)

	assert.ErrorIs(t, err, backend.ErrInputClosed)
	assert.NotErrorIs(t, err, ErrQuit)
}

func TestRunContextCancelled(t *testing.T) {
	s, _, _ := newTestSession(t, 10, 60)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
}

func TestOpenAndEdit(t *testing.T) {
	path := writeFile(t, "main.c", "int x;\r\nreturn 0;\n")
	t.Chdir(filepath.Dir(path))
	s, mem, _ := newTestSession(t, 10, 100)
	require.NoError(t, s.Open("main.c"))

	assert.Equal(t, 2, s.Buffer().LineCount())
	assert.Equal(t, "int x;", string(s.Buffer().Raw(0)))
	assert.Equal(t, "C/C++", s.Buffer().Profile().Name)

	mem.FeedString("// ")
	feedCtrl(mem, 'q')
	feedCtrl(mem, 'q')

	require.ErrorIs(t, run(t, s), ErrQuit)
	assert.Equal(t, "// int x;", string(s.Buffer().Raw(0)))
	assert.Contains(t, mem.Output(), "main.c(+) -- 2 lines")
	assert.Contains(t, mem.Output(), "C/C++ | 1/2")
	assert.Contains(t, mem.Output(), "Press Ctrl-Q again to force quit")
}

func TestStatusBarPosition(t *testing.T) {
	path := writeFile(t, "two.txt", "first\nsecond\n")
	s, mem, _ := newTestSession(t, 10, 100)
	require.NoError(t, s.Open(path))

	require.NoError(t, s.Refresh())
	assert.Contains(t, string(mem.LastFrame()), "| 1/2")

	s.Dispatcher().Dispatch(key.NewSpecialEvent(key.KeyDown))
	require.NoError(t, s.Refresh())
	assert.Contains(t, string(mem.LastFrame()), "| 2/2")
}

func TestStatusBarTruncatesName(t *testing.T) {
	path := writeFile(t, "long-file-name-for-status.txt", "x\n")
	s, mem, _ := newTestSession(t, 10, 100)
	require.NoError(t, s.Open(path))

	require.NoError(t, s.Refresh())
	assert.Contains(t, string(mem.LastFrame()), path[:20]+" -- 1 lines")
}

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.py")
	s, _, _ := newTestSession(t, 10, 60)

	require.NoError(t, s.Open(path))

	assert.Equal(t, 0, s.Buffer().LineCount())
	assert.Equal(t, path, s.Filename())
	assert.Equal(t, "Python", s.Buffer().Profile().Name)
}

func TestSave(t *testing.T) {
	path := writeFile(t, "notes.txt", "hello\n")
	s, mem, _ := newTestSession(t, 10, 60)
	require.NoError(t, s.Open(path))

	mem.Feed(key.ByteEnter)
	mem.FeedString("world")
	feedCtrl(mem, 's')
	feedCtrl(mem, 'q')

	require.ErrorIs(t, run(t, s), ErrQuit)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\nworldhello\n", string(data))
	assert.False(t, s.Buffer().Modified())
	assert.Contains(t, mem.Output(), "FILE SAVED. 12 bytes written.")
}

func TestSaveAs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.go")
	s, mem, _ := newTestSession(t, 10, 120)

	mem.FeedString("hi")
	feedCtrl(mem, 's')
	mem.FeedString(path)
	mem.Feed(key.ByteEnter)
	feedCtrl(mem, 'q')

	require.ErrorIs(t, run(t, s), ErrQuit)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(data))
	assert.Equal(t, path, s.Filename())
	assert.Equal(t, "Go", s.Buffer().Profile().Name)
	assert.Contains(t, mem.Output(), "Save as : "+path[:10])
}

func TestSaveAsCancelled(t *testing.T) {
	s, mem, _ := newTestSession(t, 10, 60)

	mem.FeedString("x")
	feedCtrl(mem, 's')
	mem.FeedString("name")
	feedEscape(mem)
	feedCtrl(mem, 'q')
	feedCtrl(mem, 'q')

	require.ErrorIs(t, run(t, s), ErrQuit)

	assert.Empty(t, s.Filename())
	assert.True(t, s.Buffer().Modified())
	assert.Contains(t, mem.Output(), SaveAbortMessage)
}

func TestSaveFailureKeepsBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "file.txt")
	s, mem, _ := newTestSession(t, 10, 80)
	require.NoError(t, s.Open(path))

	mem.FeedString("data")
	feedCtrl(mem, 's')
	feedCtrl(mem, 'q')
	feedCtrl(mem, 'q')

	require.ErrorIs(t, run(t, s), ErrQuit)

	assert.True(t, s.Buffer().Modified())
	assert.Equal(t, "data", string(s.Buffer().Raw(0)))
	assert.Contains(t, mem.Output(), "SAVE FAILED. I/O error: no such file or directory")
}

func TestPrompt(t *testing.T) {
	s, mem, _ := newTestSession(t, 10, 60)
	mem.Feed(key.ByteEnter) // ignored while empty
	mem.FeedString("ab")
	mem.Feed(key.ByteBackspace)
	mem.FeedString("c")
	mem.Feed(0x01) // control bytes are not added
	mem.Feed(key.ByteEnter)

	var seen []string
	got, ok, err := s.Prompt(context.Background(), "Name: %s", func(input string, ev key.Event) {
		seen = append(seen, input)
	})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ac", got)
	assert.Equal(t, []string{"", "a", "ab", "a", "ac", "ac", "ac"}, seen)
	assert.Empty(t, statusMessage(s))
	assert.Contains(t, mem.Output(), "Name: ab")
}

func TestPromptCancel(t *testing.T) {
	s, mem, _ := newTestSession(t, 10, 60)
	mem.FeedString("abc")
	feedEscape(mem)

	got, ok, err := s.Prompt(context.Background(), "Name: %s", nil)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestPromptKeepsPercentLiteral(t *testing.T) {
	s, mem, _ := newTestSession(t, 10, 60)
	mem.FeedString("100%d")
	mem.Feed(key.ByteEnter)

	got, ok, err := s.Prompt(context.Background(), "Q: %s", nil)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "100%d", got)
	assert.Contains(t, mem.Output(), "Q: 100%d")
}

func findDoc(t *testing.T) (*Session, *backend.Memory) {
	t.Helper()
	path := writeFile(t, "words.txt", "alpha\nbeta\n\tgamma beta\n")
	s, mem, _ := newTestSession(t, 10, 60)
	require.NoError(t, s.Open(path))
	return s, mem
}

func TestFindAccept(t *testing.T) {
	s, mem := findDoc(t)
	feedCtrl(mem, 'f')
	mem.FeedString("beta")
	mem.Feed(key.ByteEnter)
	feedCtrl(mem, 'q')

	require.ErrorIs(t, run(t, s), ErrQuit)

	assert.Equal(t, cursor.Cursor{Line: 1, Offset: 0}, s.Dispatcher().Cursor())
	assert.False(t, hasMatch(s.Buffer()))
	assert.Contains(t, mem.Output(), "SEARCH : beta (Use Esc/Enter/ArrowKeys)")
}

func TestFindNextWithArrow(t *testing.T) {
	s, mem := findDoc(t)
	feedCtrl(mem, 'f')
	mem.FeedString("beta")
	mem.FeedString("\x1b[B")
	mem.Feed(key.ByteEnter)
	feedCtrl(mem, 'q')

	require.ErrorIs(t, run(t, s), ErrQuit)

	assert.Equal(t, cursor.Cursor{Line: 2, Offset: 7}, s.Dispatcher().Cursor())
}

func TestFindPreviousWraps(t *testing.T) {
	s, mem := findDoc(t)
	feedCtrl(mem, 'f')
	mem.FeedString("beta")
	mem.FeedString("\x1b[A")
	mem.Feed(key.ByteEnter)
	feedCtrl(mem, 'q')

	require.ErrorIs(t, run(t, s), ErrQuit)

	assert.Equal(t, cursor.Cursor{Line: 2, Offset: 7}, s.Dispatcher().Cursor())
}

func TestFindEscapeRestores(t *testing.T) {
	s, mem := findDoc(t)
	mem.FeedString("\x1b[C") // move to (0,1)
	feedCtrl(mem, 'f')
	mem.FeedString("gamma")
	feedEscape(mem)
	feedCtrl(mem, 'q')

	require.ErrorIs(t, run(t, s), ErrQuit)

	assert.Equal(t, cursor.Cursor{Line: 0, Offset: 1}, s.Dispatcher().Cursor())
	assert.Equal(t, 0, s.Viewport().TopLine())
}

func TestFindStepHighlightsMatch(t *testing.T) {
	s, _ := findDoc(t)
	f := newFinder()

	s.findStep(f, "beta", key.NewRuneEvent('a'))

	tags := s.Buffer().Tags(1)
	for i := 0; i < 4; i++ {
		assert.Equal(t, highlight.TagMatch, tags[i])
	}
	assert.Equal(t, 1, f.lastMatch)

	// The tab renders as four cells, so the match starts at column 10.
	s.findStep(f, "beta", key.NewSpecialEvent(key.KeyDown))
	assert.NotEqual(t, highlight.TagMatch, s.Buffer().Tags(1)[0])
	tags = s.Buffer().Tags(2)
	assert.Equal(t, highlight.TagMatch, tags[10])
	assert.Equal(t, highlight.TagMatch, tags[13])
	assert.NotEqual(t, highlight.TagMatch, tags[9])

	s.findStep(f, "beta", key.NewRuneEvent(key.ByteEnter))
	assert.False(t, hasMatch(s.Buffer()))
}

func TestFindStepNoMatch(t *testing.T) {
	s, _ := findDoc(t)
	f := newFinder()

	s.findStep(f, "zeta", key.NewRuneEvent('a'))

	assert.Equal(t, -1, f.lastMatch)
	assert.False(t, hasMatch(s.Buffer()))
	assert.Equal(t, cursor.Cursor{}, s.Dispatcher().Cursor())
}

func TestFindCentersViewport(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 100; i++ {
		b.WriteString("line\n")
	}
	b.WriteString("needle\n")
	path := writeFile(t, "long.txt", b.String())
	s, _, _ := newTestSession(t, 12, 40)
	require.NoError(t, s.Open(path))

	s.findStep(newFinder(), "needle", key.NewRuneEvent('e'))

	assert.Equal(t, 100, s.Dispatcher().Cursor().Line)
	assert.Equal(t, 100-s.Viewport().Height()/2, s.Viewport().TopLine())
}

func TestViewportFollowsCursor(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString("x\n")
	}
	path := writeFile(t, "long.txt", b.String())
	s, mem, _ := newTestSession(t, 12, 40)
	require.NoError(t, s.Open(path))

	for i := 0; i < 30; i++ {
		mem.FeedString("\x1b[B")
	}
	feedCtrl(mem, 'q')
	require.ErrorIs(t, run(t, s), ErrQuit)

	line := s.Dispatcher().Cursor().Line
	top := s.Viewport().TopLine()
	assert.Equal(t, 30, line)
	assert.True(t, top <= line && line < top+s.Viewport().Height())
}

func TestResize(t *testing.T) {
	s, mem, _ := newTestSession(t, 10, 40)
	mem.Resize(30, 100)
	feedCtrl(mem, 'q')

	require.ErrorIs(t, run(t, s), ErrQuit)

	assert.Equal(t, 100, s.Viewport().Width())
	assert.Equal(t, 28, s.Viewport().Height())
	assert.Equal(t, 28, s.Dispatcher().Config().PageRows)
}

func TestMessageExpiry(t *testing.T) {
	s, mem, clock := newTestSession(t, 10, 60)
	s.SetStatus("hello %d", 42)
	require.NoError(t, s.Refresh())
	assert.Contains(t, string(mem.LastFrame()), "hello 42")
	assert.False(t, s.shouldRefresh())

	clock.Advance(6 * time.Second)
	assert.True(t, s.shouldRefresh())
	require.NoError(t, s.Refresh())
	assert.NotContains(t, string(mem.LastFrame()), "hello 42")
	assert.False(t, s.shouldRefresh())
}

func TestRefreshIsSingleWrite(t *testing.T) {
	s, mem, _ := newTestSession(t, 10, 60)
	before := len(mem.Frames())

	require.NoError(t, s.Refresh())

	assert.Len(t, mem.Frames(), before+1)
}

func TestClose(t *testing.T) {
	s, mem, _ := newTestSession(t, 10, 60)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.True(t, mem.Stopped())
	assert.True(t, strings.HasSuffix(mem.Output(), "\x1b[2J\x1b[H"))
}

func TestSyntaxProfilesFromConfig(t *testing.T) {
	profiles := writeFile(t, "syntax.yaml", `profiles:
  - name: Lua
    extensions: [".lua"]
    keywords: [local, end]
    line_comment: "--"
`)
	cfg := config.Default()
	cfg.Syntax.Profiles = profiles

	s, err := New(Options{Config: cfg}, backend.NewMemory(10, 40))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Open(filepath.Join(t.TempDir(), "init.lua")))
	assert.Equal(t, "Lua", s.Buffer().Profile().Name)
}

func TestSyntaxProfilesMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Syntax.Profiles = filepath.Join(t.TempDir(), "nope.yaml")

	_, err := New(Options{Config: cfg}, backend.NewMemory(10, 40))

	var opErr *OperationError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "load profiles", opErr.Op)
}

func TestApplyConfig(t *testing.T) {
	s, mem, _ := newTestSession(t, 10, 60)
	cfg := config.Default()
	cfg.Theme.Comment = 92
	cfg.Editor.QuitConfirmations = 4
	cfg.Input.EscapeTimeout = config.Duration(20 * time.Millisecond)

	require.NoError(t, s.Open(writeFile(t, "a.c", "// note\n")))
	s.applyConfig(cfg)

	require.NoError(t, s.Refresh())
	assert.Contains(t, string(mem.LastFrame()), "\x1b[92m// note")
	assert.Equal(t, 4, s.Dispatcher().Config().QuitConfirmations)
	assert.Equal(t, 20*time.Millisecond, s.decoder.Timeout())
}

func TestFileChangedIgnoresOwnSave(t *testing.T) {
	path := writeFile(t, "a.txt", "one\n")
	s, _, _ := newTestSession(t, 10, 60)
	require.NoError(t, s.Open(path))

	require.NoError(t, s.Save(context.Background()))
	s.fileChanged()
	assert.Contains(t, statusMessage(s), "FILE SAVED")

	require.NoError(t, os.WriteFile(path, []byte("changed elsewhere\n"), 0o644))
	future := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, future, future))
	s.fileChanged()
	assert.Equal(t, FileChangedMessage, statusMessage(s))
}

func TestWatcherReportsExternalChange(t *testing.T) {
	path := writeFile(t, "a.txt", "one\n")
	mem := backend.NewMemory(10, 60)
	s, err := New(Options{Watch: true}, mem)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Open(path))

	require.NoError(t, os.WriteFile(path, []byte("two\n"), 0o644))

	require.Eventually(t, func() bool {
		s.pollWatcher()
		return statusMessage(s) == FileChangedMessage
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherReloadsConfig(t *testing.T) {
	for _, name := range config.EnvVars() {
		t.Setenv(name, "")
	}
	path := writeFile(t, "config.toml", "[theme]\ncomment = 35\n")
	cfg, err := config.Load(path)
	require.NoError(t, err)

	s, err := New(Options{Config: cfg, Watch: true}, backend.NewMemory(10, 60))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, os.WriteFile(path, []byte("[theme]\ncomment = 94\n"), 0o644))

	require.Eventually(t, func() bool {
		s.pollWatcher()
		return s.cfg.Theme.Comment == 94
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, ConfigReloadedMessage, statusMessage(s))
}

func TestReloadKeepsOverrides(t *testing.T) {
	for _, name := range config.EnvVars() {
		t.Setenv(name, "")
	}
	path := writeFile(t, "config.toml", "[log]\nlevel = \"info\"\n")
	override := func(p string) (*config.Config, error) {
		cfg, err := config.Load(p)
		if err != nil {
			return nil, err
		}
		cfg.Log.Level = "error"
		return cfg, nil
	}
	cfg, err := override(path)
	require.NoError(t, err)

	var logs strings.Builder
	logger := NewLogger(LoggerConfig{Level: LogLevelError, Output: &logs})
	s, err := New(Options{Config: cfg, Logger: logger, Reload: override}, backend.NewMemory(10, 60))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n[theme]\ncomment = 94\n"), 0o644))
	s.reloadConfig()

	assert.Equal(t, ConfigReloadedMessage, statusMessage(s))
	assert.Equal(t, 94, s.cfg.Theme.Comment)
	assert.Equal(t, "error", s.cfg.Log.Level)
	assert.False(t, logger.Enabled(LogLevelWarn))
}

func TestReloadDefaultsToConfigLoad(t *testing.T) {
	for _, name := range config.EnvVars() {
		t.Setenv(name, "")
	}
	path := writeFile(t, "config.toml", "[log]\nlevel = \"error\"\n")
	cfg, err := config.Load(path)
	require.NoError(t, err)

	logger := NewLogger(LoggerConfig{Level: LogLevelError, Output: &strings.Builder{}})
	s, err := New(Options{Config: cfg, Logger: logger}, backend.NewMemory(10, 60))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0o644))
	s.reloadConfig()

	assert.True(t, logger.Enabled(LogLevelDebug))
}
