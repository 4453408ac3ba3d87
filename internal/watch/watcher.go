package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	ferrors "git.home.luguber.info/inful/gameshelf/internal/foundation/errors"
	"git.home.luguber.info/inful/gameshelf/internal/logfields"
)

// RebuildFunc runs one rebuild.
type RebuildFunc func(ctx context.Context) error

// Options configures a Watcher.
type Options struct {
	Root     string
	Debounce time.Duration
	Interval time.Duration // 0 disables periodic rebuilds
	// IgnoreDirs are directory names never watched (node_modules, .git).
	IgnoreDirs []string
	// IgnoreFiles are root-relative files whose changes never trigger a rebuild, such as the
	// generated index.
	IgnoreFiles []string
}

// Watcher triggers rebuilds from filesystem events and an optional interval.
type Watcher struct {
	opts        Options
	rebuild     RebuildFunc
	ignoreDirs  map[string]struct{}
	ignoreFiles map[string]struct{}
	requests    chan struct{}
	ready       chan struct{}
}

// New creates a Watcher.
func New(opts Options, rebuild RebuildFunc) *Watcher {
	opts.Root = filepath.Clean(opts.Root)
	w := &Watcher{
		opts:        opts,
		rebuild:     rebuild,
		ignoreDirs:  make(map[string]struct{}),
		ignoreFiles: make(map[string]struct{}),
		requests:    make(chan struct{}, 1),
		ready:       make(chan struct{}),
	}
	for _, d := range opts.IgnoreDirs {
		w.ignoreDirs[d] = struct{}{}
	}
	for _, f := range opts.IgnoreFiles {
		w.ignoreFiles[filepath.Join(opts.Root, filepath.FromSlash(f))] = struct{}{}
	}
	return w
}

// Ready is closed once every directory is being watched.
func (w *Watcher) Ready() <-chan struct{} { return w.ready }

// Request asks for a rebuild without blocking. Requests made while one is already pending
// are merged into it.
func (w *Watcher) Request() {
	select {
	case w.requests <- struct{}{}:
	default:
	}
}

// Run watches until ctx is canceled. A rebuild in progress finishes before Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to create filesystem watcher").Fatal().Build()
	}
	defer func() { _ = fsw.Close() }()
	if err := w.addDirsRecursive(fsw, w.opts.Root); err != nil {
		return err
	}

	deb := NewDebouncer(w.opts.Debounce, w.Request)
	defer deb.Stop()

	if w.opts.Interval > 0 {
		sched, err := NewScheduler()
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to create scheduler").Fatal().Build()
		}
		if _, err := sched.ScheduleEvery("periodic-rebuild", w.opts.Interval, w.Request); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid watch interval").Fatal().Build()
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Warn("Scheduler shutdown failed", logfields.Error(err))
			}
		}()
	}

	workCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go w.worker(workCtx, done)
	defer func() {
		cancel()
		<-done
	}()

	close(w.ready)
	slog.Info("Watching for changes", logfields.Path(w.opts.Root))
	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping watcher")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, ev, deb.Trigger)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// worker runs one rebuild per request until ctx is canceled.
func (w *Watcher) worker(ctx context.Context, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.requests:
			if ctx.Err() != nil {
				return
			}
			slog.Info("Change detected; rebuilding")
			if err := w.rebuild(ctx); err != nil {
				slog.Warn("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

// handleEvent triggers a rebuild for relevant events and starts watching new directories.
func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if w.shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.addDirsRecursive(fsw, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func (w *Watcher) addDirsRecursive(fsw *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.opts.Root {
			if _, skip := w.ignoreDirs[d.Name()]; skip || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
		}
		if err := fsw.Add(path); err != nil {
			slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
	if err != nil {
		return ferrors.FileSystemError(err, "failed to watch content root").WithContext("path", root).Build()
	}
	return nil
}

// shouldIgnoreEvent returns true for filesystem events that should not trigger rebuilds.
func (w *Watcher) shouldIgnoreEvent(path string) bool {
	if _, ok := w.ignoreFiles[path]; ok {
		return true
	}
	for dir := filepath.Dir(path); len(dir) >= len(w.opts.Root) && dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
		if _, ok := w.ignoreDirs[filepath.Base(dir)]; ok && dir != w.opts.Root {
			return true
		}
	}

	base := filepath.Base(path)

	// hidden files, including the pipeline's own temporary files
	if strings.HasPrefix(base, ".") {
		return true
	}

	// editor temp/swap files
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	return base == "Thumbs.db"
}
