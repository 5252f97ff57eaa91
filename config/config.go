// Package config loads the YAML file that configures the decoding pipeline.
//
//	time_scale: 1000000
//	chunk_count: 4
//	max_chunk_items: 0
//	data_dir: place-data
//	datasets: [2022]
//	log_level: info
//
// time_scale is required. Everything else has a default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/placecloud/attribute"
	"github.com/arloliu/placecloud/errs"
)

// Defaults.
const (
	DefaultChunkCount = 1
	DefaultDataDir    = "place-data"
	DefaultLogLevel   = "info"
)

// Config is the pipeline configuration.
type Config struct {
	// TimeScale divides event time to produce the vertical position axis.
	TimeScale float64 `yaml:"time_scale"`
	// ChunkCount is the number of render batches per dataset.
	ChunkCount int `yaml:"chunk_count"`
	// MaxChunkItems, when positive, derives the chunk count per dataset so
	// non-final batches hold at most this many events. It overrides ChunkCount.
	// The last batch takes the remainder and can exceed the bound: 99 events
	// with a bound of 10 give nine batches of 9 and a last batch of 18.
	MaxChunkItems int `yaml:"max_chunk_items"`
	// DataDir is the directory holding the dataset archives.
	DataDir string `yaml:"data_dir"`
	// Datasets are the dataset names to load.
	Datasets []string `yaml:"datasets"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns a Config with every optional field set. TimeScale is left
// zero and must be supplied.
func Default() Config {
	return Config{
		ChunkCount: DefaultChunkCount,
		DataDir:    DefaultDataDir,
		LogLevel:   DefaultLogLevel,
	}
}

// Load reads and validates the config file at path.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Read decodes the config file at path without validating it, so callers can
// apply overrides first.
func Read(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Decode(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes and validates YAML config data.
func Parse(data []byte) (Config, error) {
	cfg, err := Decode(data)
	if err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Decode applies YAML config data over Default without validating.
// Unknown keys are rejected.
func Decode(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if err := attribute.ValidateTimeScale(c.TimeScale); err != nil {
		return fmt.Errorf("%w: time_scale: %w", errs.ErrInvalidConfig, err)
	}
	if c.ChunkCount < 1 {
		return fmt.Errorf("%w: chunk_count must be at least 1, got %d", errs.ErrInvalidConfig, c.ChunkCount)
	}
	if c.MaxChunkItems < 0 {
		return fmt.Errorf("%w: max_chunk_items must not be negative, got %d", errs.ErrInvalidConfig, c.MaxChunkItems)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}

	return nil
}

// Level returns the configured slog level.
func (c Config) Level() slog.Level {
	level, _ := ParseLevel(c.LogLevel)
	return level
}

// ParseLevel maps a level name to a slog.Level. The empty string means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}
