package commands

import (
	"fmt"
	"time"

	"github.com/domeafavour/hello-ast/internal/build"
	"github.com/domeafavour/hello-ast/internal/config"
	"github.com/domeafavour/hello-ast/internal/docmodel"
	"github.com/domeafavour/hello-ast/internal/errors"
	"github.com/domeafavour/hello-ast/internal/logfields"
	"github.com/domeafavour/hello-ast/internal/markdown"
	"github.com/domeafavour/hello-ast/internal/metrics"
)

// BuildFlags are shared by 'build' and 'watch'.
type BuildFlags struct {
	Source  string   `arg:"" optional:"" default:"." help:"Source directory" type:"path"`
	Output  string   `short:"o" help:"Output directory; defaults to output.directory" type:"path"`
	Format  []string `short:"f" help:"Output formats, repeatable; defaults to output.format"`
	Workers int      `help:"Parallel compile workers (0 = one per CPU)"`
	Raw     bool     `help:"Skip normalization of adjacent text nodes"`
	NoCache bool     `name:"no-cache" help:"Disable the compile cache"`
}

// newBuilder wires a Builder from flags and configuration. The returned
// close function releases the cache.
func (f *BuildFlags) newBuilder(g *Global, cfg *config.Config, rec metrics.Recorder) (*build.Builder, func(), error) {
	formats, err := parseFormats(f.Format, cfg.Output.Format)
	if err != nil {
		return nil, nil, err
	}

	store, err := openCache(cfg, f.NoCache)
	if err != nil {
		g.Logger.Warn("Cache unavailable; continuing without it", logfields.Error(err))
		store, err = openCache(cfg, true)
		if err != nil {
			return nil, nil, err
		}
	}

	b := build.New(build.Options{
		Formats: formats,
		Workers: f.Workers,
		Doc: docmodel.Options{
			Unicode: cfg.Compile.Unicode,
			Compile: markdown.Options{Raw: f.Raw || !cfg.Compile.NormalizeEnabled()},
		},
		Cache:    store,
		Recorder: rec,
		Logger:   g.Logger,
	})
	closeFn := func() {
		if err := store.Close(); err != nil {
			g.Logger.Warn("Failed to close cache", logfields.Error(err))
		}
	}
	return b, closeFn, nil
}

func (f *BuildFlags) outputDir(cfg *config.Config) string {
	return orDefault(f.Output, cfg.Output.Directory)
}

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	BuildFlags
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.Settings()
	if err != nil {
		return err
	}

	builder, closeCache, err := b.newBuilder(g, cfg, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	defer closeCache()

	res, err := builder.Build(g.Ctx, b.Source, b.outputDir(cfg))
	if err != nil {
		return err
	}

	fmt.Fprintf(g.Out, "Built %d file(s): %d compiled, %d cached, %d failed in %s\n",
		res.Files, res.Compiled, res.Cached, res.Failed, res.Duration.Round(time.Millisecond))
	for _, fe := range res.Errors {
		fmt.Fprintf(g.Out, "  %s\n", fe.Error())
	}

	if res.Failed > 0 {
		return errors.New(errors.CategoryValidation, errors.SeverityError, "build finished with failures").
			WithContext("failed", res.Failed)
	}
	return nil
}
