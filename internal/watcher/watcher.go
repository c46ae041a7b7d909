// Package watcher reports external changes to individual files.
//
// fsnotify watches are placed on the parent directory of each file, so a
// watch survives a temp file being renamed over the original. Events for
// other names in the directory are discarded.
//
// The watcher never calls back into its owner. Pending events are collected
// with Poll, which the editor loop calls once per iteration.
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed   = errors.New("watcher is closed")
	ErrAlreadyWatching = errors.New("path is already being watched")
	ErrNotWatching     = errors.New("path is not being watched")
	ErrPathNotExist    = errors.New("path does not exist")
)

// DefaultBufferSize is the number of undrained events kept before new ones
// are dropped.
const DefaultBufferSize = 64

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates a file was created, including by rename onto its name.
	OpCreate Op = 1 << iota
	// OpWrite indicates a file was written to.
	OpWrite
	// OpRemove indicates a file was removed.
	OpRemove
	// OpRename indicates a file was renamed away.
	OpRename
	// OpChmod indicates file permissions were changed.
	OpChmod
)

// String returns a human-readable representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	case OpChmod:
		return "CHMOD"
	default:
		return "UNKNOWN"
	}
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Modified reports whether the content at the path may have changed.
func (op Op) Modified() bool {
	return op&(OpCreate|OpWrite) != 0
}

// Event is a change to one watched file.
type Event struct {
	// Path is the absolute path of the watched file.
	Path string
	// Op is the union of the operations seen since the last Poll.
	Op Op
	// Timestamp is when the most recent operation arrived.
	Timestamp time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithBufferSize sets the event buffer size.
func WithBufferSize(n int) Option {
	return func(w *Watcher) {
		if n > 0 {
			w.bufSize = n
		}
	}
}

// Watcher watches a set of files through their parent directories.
type Watcher struct {
	mu sync.Mutex

	fsw     *fsnotify.Watcher
	bufSize int

	// files maps absolute file paths to their watched directory.
	files map[string]string
	// dirs counts the watched files in each directory.
	dirs map[string]int

	events chan Event

	dropped   int64
	lastError atomic.Value

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// New creates a watcher and starts its event loop.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		bufSize: DefaultBufferSize,
		files:   make(map[string]string),
		dirs:    make(map[string]int),
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.events = make(chan Event, w.bufSize)

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Add starts watching path. The file itself need not exist yet, but its
// directory must.
func (w *Watcher) Add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, ok := w.files[absPath]; ok {
		return ErrAlreadyWatching
	}

	dir := filepath.Dir(absPath)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return ErrPathNotExist
		}
		return err
	}

	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[absPath] = dir
	return nil
}

// Remove stops watching path.
func (w *Watcher) Remove(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir, ok := w.files[absPath]
	if !ok {
		return ErrNotWatching
	}

	delete(w.files, absPath)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		return w.fsw.Remove(dir)
	}
	return nil
}

// IsWatching returns true if path is being watched.
func (w *Watcher) IsWatching(path string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[absPath]
	return ok
}

// Poll drains pending events without blocking. Events for the same path
// are merged into one, in order of first arrival.
func (w *Watcher) Poll() []Event {
	var out []Event
	index := make(map[string]int)
	for {
		select {
		case ev, ok := <-w.events:
			if !ok {
				return out
			}
			if i, seen := index[ev.Path]; seen {
				out[i].Op |= ev.Op
				out[i].Timestamp = ev.Timestamp
				continue
			}
			index[ev.Path] = len(out)
			out = append(out, ev)
		default:
			return out
		}
	}
}

// LastError returns the most recent error reported by fsnotify, or nil.
func (w *Watcher) LastError() error {
	if err, ok := w.lastError.Load().(error); ok {
		return err
	}
	return nil
}

// Dropped returns the number of events discarded because the buffer was full.
func (w *Watcher) Dropped() int64 {
	return atomic.LoadInt64(&w.dropped)
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()
	close(w.events)

	return w.fsw.Close()
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.lastError.Store(err)
		}
	}
}

func (w *Watcher) handleFSEvent(fsEvent fsnotify.Event) {
	op := convertOp(fsEvent.Op)
	if op == 0 {
		return
	}

	name, err := filepath.Abs(fsEvent.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	_, watched := w.files[name]
	w.mu.Unlock()
	if !watched {
		return
	}

	select {
	case w.events <- Event{Path: name, Op: op, Timestamp: time.Now()}:
	default:
		atomic.AddInt64(&w.dropped, 1)
	}
}

func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	if fsOp.Has(fsnotify.Chmod) {
		op |= OpChmod
	}
	return op
}
