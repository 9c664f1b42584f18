package commands

import (
	"time"

	"github.com/domeafavour/hello-ast/internal/metrics"
	"github.com/domeafavour/hello-ast/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	BuildFlags
	Debounce     time.Duration `help:"Quiet period before rebuilding; defaults to watch.debounce"`
	RebuildEvery time.Duration `name:"rebuild-every" help:"Also rebuild on this interval; defaults to watch.rebuild_every"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.Settings()
	if err != nil {
		return err
	}

	builder, closeCache, err := w.newBuilder(g, cfg, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	defer closeCache()

	debounce := cfg.Watch.Debounce
	if w.Debounce > 0 {
		debounce = w.Debounce
	}
	every := cfg.Watch.RebuildEvery
	if w.RebuildEvery > 0 {
		every = w.RebuildEvery
	}

	return watch.New(builder, w.Source, w.outputDir(cfg), watch.Options{
		Debounce:     debounce,
		RebuildEvery: every,
		Logger:       g.Logger,
	}).Run(g.Ctx)
}
