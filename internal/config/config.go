package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/domeafavour/hello-ast/internal/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "mdc.yaml"

// Config is the mdc configuration file.
type Config struct {
	Compile CompileConfig `yaml:"compile"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Cache   CacheConfig   `yaml:"cache"`
	Server  ServerConfig  `yaml:"server"`
	Watch   WatchConfig   `yaml:"watch"`
}

// CompileConfig controls the markdown pipeline.
type CompileConfig struct {
	Normalize *bool       `yaml:"normalize,omitempty"` // nil means true
	Unicode   UnicodeForm `yaml:"unicode,omitempty"`
}

// NormalizeEnabled reports whether adjacent text nodes are merged.
func (c CompileConfig) NormalizeEnabled() bool {
	return c.Normalize == nil || *c.Normalize
}

type OutputConfig struct {
	Format    string `yaml:"format"`
	Directory string `yaml:"directory"`
}

type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// CacheConfig configures the compiled output cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Metrics *bool  `yaml:"metrics,omitempty"` // nil means true
}

// MetricsEnabled reports whether /metrics is served.
func (s ServerConfig) MetricsEnabled() bool {
	return s.Metrics == nil || *s.Metrics
}

// WatchConfig configures watch mode. A zero RebuildEvery disables the
// periodic full rebuild.
type WatchConfig struct {
	Debounce     time.Duration `yaml:"debounce"`
	RebuildEvery time.Duration `yaml:"rebuild_every"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads, expands and validates the configuration file at path.
// Variables from .env and .env.local are loaded first without overriding
// the existing environment.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ReadFailed(path, err)
	}

	return Parse(data)
}

// Parse decodes configuration content after environment expansion.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to parse configuration")
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	cfg.Compile.Unicode = NormalizeUnicodeForm(string(cfg.Compile.Unicode))
	if cfg.Output.Format == "" {
		cfg.Output.Format = "json"
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = "./out"
	}
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = ".mdc/cache.db"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 300 * time.Millisecond
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if !validOutputFormat(c.Output.Format) {
		return errors.ConfigInvalid("output.format", fmt.Sprintf("unknown format %q", c.Output.Format))
	}
	if c.Watch.Debounce < 0 {
		return errors.ConfigInvalid("watch.debounce", "must not be negative")
	}
	if c.Watch.RebuildEvery < 0 {
		return errors.ConfigInvalid("watch.rebuild_every", "must not be negative")
	}
	if c.Watch.RebuildEvery > 0 && c.Watch.RebuildEvery < time.Second {
		return errors.ConfigInvalid("watch.rebuild_every", "must be at least 1s")
	}
	return nil
}

func validOutputFormat(f string) bool {
	switch f {
	case "json", "yaml", "html", "text":
		return true
	}
	return false
}

// Init writes a default configuration file to path.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.CategoryConfig, errors.SeverityError,
			"configuration file already exists (use --force to overwrite)").
			WithContext("path", path)
	}

	cfg := Default()
	normalize, metrics := true, true
	cfg.Compile.Normalize = &normalize
	cfg.Server.Metrics = &metrics

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.InternalError("failed to marshal configuration", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WriteFailed(path, err)
	}
	return nil
}

// loadEnvFiles loads .env then .env.local. godotenv.Load never overrides
// variables already present, so the first file to define a key wins.
func loadEnvFiles() {
	for _, p := range []string{".env", ".env.local"} {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			fmt.Fprintf(os.Stderr, "Note: could not load %s: %v\n", p, err)
		}
	}
}
