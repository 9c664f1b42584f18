package commands

import (
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/domeafavour/hello-ast/internal/logfields"
	"github.com/domeafavour/hello-ast/internal/metrics"
	"github.com/domeafavour/hello-ast/internal/render"
	"github.com/domeafavour/hello-ast/internal/server/handlers"
	"github.com/domeafavour/hello-ast/internal/server/httpserver"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr      string `short:"a" help:"Listen address; defaults to server.addr"`
	NoMetrics bool   `name:"no-metrics" help:"Do not expose /metrics"`
	NoCache   bool   `name:"no-cache" help:"Disable the compile cache"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.Settings()
	if err != nil {
		return err
	}

	format, err := render.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	store, err := openCache(cfg, s.NoCache)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			g.Logger.Warn("Failed to close cache", logfields.Error(err))
		}
	}()

	opts := httpserver.Options{
		Addr:   orDefault(s.Addr, cfg.Server.Addr),
		Logger: g.Logger,
		Compile: handlers.CompileOptions{
			DefaultFormat: format,
			Raw:           !cfg.Compile.NormalizeEnabled(),
			Unicode:       cfg.Compile.Unicode,
			Cache:         store,
			Logger:        g.Logger,
		},
	}
	if cfg.Server.MetricsEnabled() && !s.NoMetrics {
		reg := prom.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		opts.Registry = reg
		opts.Compile.Recorder = metrics.NewPrometheusRecorder(reg)
	}

	return httpserver.New(opts).Run(g.Ctx)
}
