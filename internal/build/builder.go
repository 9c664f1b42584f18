package build

import (
	"bytes"
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/domeafavour/hello-ast/internal/cache"
	"github.com/domeafavour/hello-ast/internal/docmodel"
	"github.com/domeafavour/hello-ast/internal/errors"
	"github.com/domeafavour/hello-ast/internal/logfields"
	"github.com/domeafavour/hello-ast/internal/metrics"
	"github.com/domeafavour/hello-ast/internal/render"
)

// Status is the overall outcome of a build.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Options configures a Builder. Zero values fall back to JSON output, one
// worker per CPU, no cache and no metrics.
type Options struct {
	Formats  []render.Format
	Workers  int
	Doc      docmodel.Options
	Cache    cache.Store
	Recorder metrics.Recorder
	Logger   *slog.Logger
}

// Result summarizes a build.
type Result struct {
	Status   Status
	Files    int
	Compiled int
	Cached   int
	Failed   int
	Errors   []FileError
	Duration time.Duration
}

// FileError is a failure for one source file.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string { return e.Path + ": " + e.Err.Error() }
func (e FileError) Unwrap() error { return e.Err }

// Builder compiles source trees.
type Builder struct {
	opts Options
}

// New returns a Builder with defaults applied to opts.
func New(opts Options) *Builder {
	if len(opts.Formats) == 0 {
		opts.Formats = []render.Format{render.FormatJSON}
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Cache == nil {
		opts.Cache = cache.NoopStore{}
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Doc.Compile.Recorder == nil {
		opts.Doc.Compile.Recorder = opts.Recorder
	}
	if opts.Doc.Compile.Logger == nil {
		opts.Doc.Compile.Logger = opts.Logger
	}
	return &Builder{opts: opts}
}

type outcome int

const (
	outcomeCompiled outcome = iota
	outcomeCached
	outcomeFailed
)

// Build compiles every markdown file under srcDir into outDir. Per-file
// failures are collected in the Result; the returned error is reserved for
// problems with the tree itself or cancellation.
func (b *Builder) Build(ctx context.Context, srcDir, outDir string) (*Result, error) {
	start := time.Now()
	logger := b.opts.Logger

	files, err := collectSources(srcDir)
	if err != nil {
		return nil, err
	}

	res := &Result{Files: len(files)}
	var mu sync.Mutex
	jobs := make(chan string)
	var wg sync.WaitGroup

	for range min(b.opts.Workers, max(len(files), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rel := range jobs {
				out, err := b.buildFile(ctx, srcDir, outDir, rel)

				mu.Lock()
				switch out {
				case outcomeCompiled:
					res.Compiled++
				case outcomeCached:
					res.Cached++
				case outcomeFailed:
					res.Failed++
					res.Errors = append(res.Errors, FileError{Path: rel, Err: err})
				}
				mu.Unlock()
			}
		}()
	}

	cancelled := false
feed:
	for _, rel := range files {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		select {
		case <-ctx.Done():
			cancelled = true
			break feed
		case jobs <- rel:
		}
	}
	close(jobs)
	wg.Wait()

	sort.Slice(res.Errors, func(i, j int) bool { return res.Errors[i].Path < res.Errors[j].Path })
	res.Duration = time.Since(start)
	b.opts.Recorder.ObserveBuildDuration(res.Duration)

	switch {
	case cancelled:
		res.Status = StatusCancelled
	case res.Failed > 0:
		res.Status = StatusFailed
	default:
		res.Status = StatusSuccess
	}

	logger.Info("Build finished",
		slog.String("status", string(res.Status)),
		slog.Int("files", res.Files),
		slog.Int("compiled", res.Compiled),
		slog.Int("cached", res.Cached),
		slog.Int("failed", res.Failed),
		logfields.DurationMS(float64(res.Duration.Milliseconds())))

	if cancelled {
		return res, ctx.Err()
	}
	return res, nil
}

// buildFile writes every configured format for one source file. Cache
// lookups come first so a file whose outputs are all cached is never
// compiled.
func (b *Builder) buildFile(ctx context.Context, srcDir, outDir, rel string) (outcome, error) {
	logger := b.opts.Logger.With(logfields.File(rel))

	doc, err := docmodel.LoadFile(filepath.Join(srcDir, rel), b.opts.Doc)
	if err != nil {
		logger.Warn("Failed to load document", logfields.Error(err))
		return outcomeFailed, err
	}

	outputs := make(map[render.Format][]byte, len(b.opts.Formats))
	for _, f := range b.opts.Formats {
		data, hit, err := b.opts.Cache.Get(ctx, doc.Fingerprint, b.cacheKey(f))
		if err != nil {
			logger.Warn("Cache lookup failed", logfields.Format(string(f)), logfields.Error(err))
		}
		b.opts.Recorder.IncCacheResult(hit)
		if hit {
			outputs[f] = data
		}
	}

	result := outcomeCached
	if len(outputs) < len(b.opts.Formats) {
		result = outcomeCompiled
		if err := doc.Compile(b.opts.Doc.Compile); err != nil {
			logger.Warn("Failed to compile document", logfields.Error(err))
			return outcomeFailed, err
		}
		for _, f := range b.opts.Formats {
			if _, ok := outputs[f]; ok {
				continue
			}
			data, err := b.renderFormat(doc, f)
			if err != nil {
				return outcomeFailed, err
			}
			outputs[f] = data
			if err := b.opts.Cache.Put(ctx, doc.Fingerprint, b.cacheKey(f), data); err != nil {
				logger.Warn("Cache store failed", logfields.Format(string(f)), logfields.Error(err))
			}
		}
	} else {
		b.opts.Recorder.IncCompileOutcome(metrics.OutcomeCached)
	}

	for _, f := range b.opts.Formats {
		dest := filepath.Join(outDir, strings.TrimSuffix(rel, filepath.Ext(rel))+f.Ext())
		if err := writeFile(dest, outputs[f]); err != nil {
			logger.Warn("Failed to write output", logfields.Path(dest), logfields.Error(err))
			return outcomeFailed, err
		}
	}

	logger.Debug("Built document", logfields.CacheHit(result == outcomeCached))
	return result, nil
}

func (b *Builder) renderFormat(doc *docmodel.Doc, f render.Format) ([]byte, error) {
	start := time.Now()
	var buf bytes.Buffer
	err := render.Write(&buf, f, doc.Document)
	b.opts.Recorder.ObserveStageDuration(metrics.StageRender, time.Since(start))
	if err != nil {
		b.opts.Recorder.IncStageResult(metrics.StageRender, metrics.ResultFailed)
		return nil, err
	}
	b.opts.Recorder.IncStageResult(metrics.StageRender, metrics.ResultSuccess)
	return buf.Bytes(), nil
}

func (b *Builder) cacheKey(f render.Format) string {
	return cache.Key(string(f), b.opts.Doc.Compile.Raw)
}

// collectSources returns the markdown files under root as sorted relative
// paths. Hidden directories are skipped.
func collectSources(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.ReadFailed(root, err)
	}
	if !info.IsDir() {
		return nil, errors.ValidationFailed("source", "not a directory").WithContext("path", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSource(path) {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.ReadFailed(root, err)
	}
	sort.Strings(files)
	return files, nil
}

// IsSource reports whether path names a markdown source file.
func IsSource(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return (ext == ".md" || ext == ".markdown") && !strings.HasPrefix(filepath.Base(path), ".")
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.WriteFailed(path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WriteFailed(path, err)
	}
	return nil
}
