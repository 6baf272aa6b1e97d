package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce coalesces the burst of events an editor produces
// when saving a file.
const DefaultWatchDebounce = 200 * time.Millisecond

// ErrRosterRemoved is reported when the watched roster file is deleted.
var ErrRosterRemoved = errors.New("watched roster file was removed")

// RosterWatcher re-imports a roster file whenever it changes and rebuilds
// the chart, which in turn notifies the chart's subscribers.
type RosterWatcher struct {
	path     string
	debounce time.Duration
	imports  ImportService
	chart    ChartService
	opts     ImportOptions
	onError  func(error)
}

// WatcherOption configures a RosterWatcher.
type WatcherOption func(*RosterWatcher)

// WithDebounce sets the quiet period before a change is processed.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *RosterWatcher) { w.debounce = d }
}

// WithWatchErrorHandler sets the callback for import and watch errors.
// Errors never stop the watcher.
func WithWatchErrorHandler(fn func(error)) WatcherOption {
	return func(w *RosterWatcher) { w.onError = fn }
}

// WithWatchImportOptions sets the options used for each re-import.
func WithWatchImportOptions(opts ImportOptions) WatcherOption {
	return func(w *RosterWatcher) { w.opts = opts }
}

func NewRosterWatcher(path string, imports ImportService, chart ChartService, opts ...WatcherOption) (*RosterWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving roster path: %w", err)
	}
	w := &RosterWatcher{
		path:     abs,
		debounce: DefaultWatchDebounce,
		imports:  imports,
		chart:    chart,
		opts:     ImportOptions{Mode: ImportReplace},
		onError:  func(error) {},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *RosterWatcher) Path() string { return w.path }

// Run watches until ctx is cancelled. The containing directory is watched
// rather than the file so atomic rename-on-save is seen.
func (w *RosterWatcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
		wg    sync.WaitGroup
	)
	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil && timer.Stop() {
			wg.Done()
		}
		wg.Add(1)
		timer = time.AfterFunc(w.debounce, func() {
			defer wg.Done()
			if ctx.Err() == nil {
				w.reload(ctx)
			}
		})
	}
	defer func() {
		mu.Lock()
		if timer != nil && timer.Stop() {
			wg.Done()
		}
		mu.Unlock()
		wg.Wait()
	}()

	target := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != target {
				continue
			}
			switch {
			case ev.Op&fsnotify.Remove != 0:
				w.onError(ErrRosterRemoved)
			case ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
				trigger()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.onError(err)
		}
	}
}

func (w *RosterWatcher) reload(ctx context.Context) {
	if _, err := w.imports.ImportFile(ctx, w.path, w.opts); err != nil {
		w.onError(fmt.Errorf("re-importing roster: %w", err))
		return
	}
	if _, err := w.chart.Rebuild(ctx); err != nil {
		w.onError(fmt.Errorf("rebuilding chart: %w", err))
	}
}
