package prefabs

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	settleWindow = 120 * time.Millisecond
	flushEvery   = 40 * time.Millisecond
)

// Watcher reports edited prefab and script files by base name. A file is
// reported once it has been quiet for a short window, so an editor's
// multi-step save yields a single reload.
type Watcher struct {
	fs     *fsnotify.Watcher
	Events chan string
	Errors chan error

	stopOnce sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}
	return &Watcher{
		fs:     fs,
		Events: make(chan string, 16),
		Errors: make(chan error, 1),
	}, nil
}

func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() { err = w.fs.Close() })
	return err
}

// Run forwards settled edits until ctx is done or the watcher is closed.
// Events and Errors are closed on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.Events)
	defer close(w.Errors)
	defer w.Close()

	ticker := time.NewTicker(flushEvery)
	defer ticker.Stop()
	pending := newDebouncer(settleWindow)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if reloadable(ev) {
				pending.touch(filepath.Base(ev.Name), time.Now())
			}
		case now := <-ticker.C:
			for _, name := range pending.due(now) {
				select {
				case w.Events <- name:
				default:
					// game is not draining; a later save resends
				}
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			select {
			case w.Errors <- err:
			default:
			}
		}
	}
}

func reloadable(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return IsSpecFile(ev.Name) || IsScriptFile(ev.Name)
}

// debouncer holds names until they have gone quiet for the window.
type debouncer struct {
	window time.Duration
	last   map[string]time.Time
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{window: window, last: make(map[string]time.Time)}
}

func (d *debouncer) touch(name string, now time.Time) {
	d.last[name] = now
}

// due removes and returns, sorted, the names quiet since now-window.
func (d *debouncer) due(now time.Time) []string {
	var out []string
	for name, t := range d.last {
		if now.Sub(t) >= d.window {
			out = append(out, name)
			delete(d.last, name)
		}
	}
	slices.Sort(out)
	return out
}

func IsSpecFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func IsScriptFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tengo")
}
