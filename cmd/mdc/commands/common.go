package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/domeafavour/hello-ast/internal/cache"
	"github.com/domeafavour/hello-ast/internal/config"
	"github.com/domeafavour/hello-ast/internal/errors"
	"github.com/domeafavour/hello-ast/internal/render"
)

// Global carries process-wide state into every command.
type Global struct {
	Ctx    context.Context
	Logger *slog.Logger
	In     io.Reader
	Out    io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"mdc.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Compile CompileCmd `cmd:"" help:"Compile a markdown file (or stdin) to JSON, YAML, HTML or text"`
	Tokens  TokensCmd  `cmd:"" help:"Print the token stream of a markdown file (or stdin)"`
	Build   BuildCmd   `cmd:"" help:"Compile every markdown file in a directory"`
	Watch   WatchCmd   `cmd:"" help:"Build a directory and rebuild on changes"`
	Serve   ServeCmd   `cmd:"" help:"Serve the compile API over HTTP"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`

	cfg    *config.Config
	cfgErr error
}

// AfterApply runs after flag parsing: it loads the configuration and sets
// up logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	c.cfg, c.cfgErr = loadConfig(c.Config)
	slog.SetDefault(NewLogger(os.Stderr, c.cfg.Logging, c.Verbose))
	return nil
}

// Settings returns the loaded configuration, loading it on first use.
func (c *CLI) Settings() (*config.Config, error) {
	if c.cfg == nil {
		c.cfg, c.cfgErr = loadConfig(c.Config)
	}
	return c.cfg, c.cfgErr
}

// loadConfig falls back to defaults when the file does not exist. Any other
// failure is returned alongside the defaults.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Default(), err
	}
	return cfg, nil
}

// NewLogger builds the process logger. verbose forces debug level.
func NewLogger(w io.Writer, lc config.LoggingConfig, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch config.NormalizeLogLevel(string(lc.Level)) {
	case config.LogLevelDebug:
		level = slog.LevelDebug
	case config.LogLevelWarn:
		level = slog.LevelWarn
	case config.LogLevelError:
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if config.NormalizeLogFormat(string(lc.Format)) == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// parseFormats resolves --format values, falling back to the configured one.
func parseFormats(values []string, fallback string) ([]render.Format, error) {
	if len(values) == 0 {
		values = []string{fallback}
	}
	formats := make([]render.Format, 0, len(values))
	seen := map[render.Format]bool{}
	for _, v := range values {
		f, err := render.ParseFormat(v)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// openCache returns the configured cache, or a NoopStore when caching is off.
func openCache(cfg *config.Config, disabled bool) (cache.Store, error) {
	if disabled || !cfg.Cache.Enabled {
		return cache.NoopStore{}, nil
	}
	return cache.NewSQLiteStore(cfg.Cache.Path)
}

// readInput reads path, or stdin when path is empty or "-".
func readInput(g *Global, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(g.In)
		if err != nil {
			return nil, errors.ReadFailed("<stdin>", err)
		}
		return data, nil
	}
	// #nosec G304 -- the path is supplied by the user on the command line.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ReadFailed(path, err)
	}
	return data, nil
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
