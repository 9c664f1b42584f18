// Package watch rebuilds a source tree whenever its files change.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/domeafavour/hello-ast/internal/build"
	"github.com/domeafavour/hello-ast/internal/errors"
	"github.com/domeafavour/hello-ast/internal/logfields"
)

// Rebuilder runs one build of srcDir into outDir.
type Rebuilder interface {
	Build(ctx context.Context, srcDir, outDir string) (*build.Result, error)
}

// Options configures a Watcher.
type Options struct {
	Debounce     time.Duration
	RebuildEvery time.Duration // zero disables periodic rebuilds
	Logger       *slog.Logger
	// OnBuild, when set, is called after every build.
	OnBuild func(*build.Result, error)
}

// Watcher rebuilds on file changes and, optionally, on a fixed interval.
type Watcher struct {
	builder Rebuilder
	src     string
	out     string
	opts    Options
}

// New returns a Watcher for srcDir writing to outDir.
func New(builder Rebuilder, srcDir, outDir string, opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Watcher{builder: builder, src: srcDir, out: outDir, opts: opts}
}

// Run performs an initial build and then rebuilds until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	absSrc, err := filepath.Abs(w.src)
	if err != nil {
		return errors.ReadFailed(w.src, err)
	}
	absOut, err := filepath.Abs(w.out)
	if err != nil {
		return errors.WriteFailed(w.out, err)
	}
	if within(absSrc, absOut) {
		// Source inside the output tree: nothing to exclude.
		absOut = ""
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.InternalError("failed to create file watcher", err)
	}
	defer func() { _ = watcher.Close() }()
	addDirsRecursive(w.opts.Logger, watcher, absSrc, absOut)

	rebuildReq := make(chan struct{}, 1)
	trigger, stopDebounce := debouncer(w.opts.Debounce, rebuildReq)
	defer stopDebounce()

	if w.opts.RebuildEvery > 0 {
		sched, err := NewScheduler(w.opts.Logger)
		if err != nil {
			return err
		}
		if err := sched.Every(w.opts.RebuildEvery, func() { request(rebuildReq) }); err != nil {
			return err
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				w.opts.Logger.Warn("Scheduler shutdown failed", logfields.Error(err))
			}
		}()
	}

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.rebuildLoop(loopCtx, rebuildReq)
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	request(rebuildReq)
	w.opts.Logger.Info("Watching for changes", logfields.Path(absSrc))

	for {
		select {
		case <-ctx.Done():
			w.opts.Logger.Info("Stopping watcher")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(watcher, ev, absOut, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.opts.Logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// rebuildLoop serializes builds. Requests arriving during a build collapse
// into the single buffered slot of rebuildReq.
func (w *Watcher) rebuildLoop(ctx context.Context, rebuildReq <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			res, err := w.builder.Build(ctx, w.src, w.out)
			switch {
			case err != nil:
				w.opts.Logger.Warn("Rebuild failed", logfields.Error(err))
			case res != nil && res.Failed > 0:
				w.opts.Logger.Warn("Rebuild finished with failures", slog.Int("failed", res.Failed))
			}
			if w.opts.OnBuild != nil {
				w.opts.OnBuild(res, err)
			}
		}
	}
}

func (w *Watcher) handleEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, absOut string, trigger func()) {
	if shouldIgnoreEvent(ev.Name) || within(ev.Name, absOut) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			addDirsRecursive(w.opts.Logger, watcher, ev.Name, absOut)
			trigger()
			return
		}
	}
	if !build.IsSource(ev.Name) {
		return
	}
	w.opts.Logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

// debouncer returns a trigger that requests a rebuild once no further call
// has happened for d, and a stop function cancelling any pending request.
func debouncer(d time.Duration, rebuildReq chan<- struct{}) (trigger func(), stop func()) {
	var mu sync.Mutex
	var timer *time.Timer

	trigger = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() { request(rebuildReq) })
	}
	stop = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return trigger, stop
}

func request(rebuildReq chan<- struct{}) {
	select {
	case rebuildReq <- struct{}{}:
	default:
	}
}

func addDirsRecursive(logger *slog.Logger, w *fsnotify.Watcher, root, skip string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(d.Name(), ".") || within(path, skip)) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

func within(path, dir string) bool {
	if dir == "" {
		return false
	}
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// shouldIgnoreEvent reports hidden, editor swap and OS metadata files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	case base == "Thumbs.db":
		return true
	}
	return false
}
