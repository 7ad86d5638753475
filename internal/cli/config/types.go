// Package config loads trialtrim configuration from file, environment
// variables, and CLI flags.
package config

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/trialtrim/internal/sampler"
)

// SampleConfig configures the run-sampling pre-pass for a job. A job
// without a sample block is projection-only.
type SampleConfig struct {
	// KeyColumn is the zero-based index of the trial-number column.
	KeyColumn int `koanf:"key_column"`
	// MinRun is the minimum run length worth keeping (default 5).
	MinRun int `koanf:"min_run"`
	// KeepOffsets are the run positions that survive (default [0, 3]).
	KeepOffsets []int `koanf:"keep_offsets"`
}

// Job is one input/output file pair from the config file.
type Job struct {
	Name    string        `koanf:"name"`
	Input   string        `koanf:"input"`
	Output  string        `koanf:"output"` // resolved relative to output_dir
	Columns []int         `koanf:"columns"`
	Sample  *SampleConfig `koanf:"sample"`
}

// SamplerConfig converts the job's sample block to a sampler config with
// defaults applied. Nil when the job is projection-only.
func (j *Job) SamplerConfig() *sampler.Config {
	if j.Sample == nil {
		return nil
	}
	cfg := sampler.Config{
		KeyColumn:   j.Sample.KeyColumn,
		MinRun:      j.Sample.MinRun,
		KeepOffsets: j.Sample.KeepOffsets,
	}
	if cfg.MinRun == 0 {
		cfg.MinRun = sampler.DefaultMinRun
	}
	if cfg.KeepOffsets == nil {
		cfg.KeepOffsets = sampler.DefaultKeepOffsets()
	}
	return &cfg
}

// Config holds all CLI configuration options.
type Config struct {
	// OutputDir is where batch job outputs land.
	OutputDir string `koanf:"output_dir"`
	// OutputFormat selects the renderer mode (auto|text|markdown|json).
	OutputFormat string `koanf:"output"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
	// FullHTML switches the cell cleaner to the full HTML-to-markdown
	// conversion.
	FullHTML bool `koanf:"full_html"`
	// Jobs are the batch entries from the config file.
	Jobs []Job `koanf:"jobs"`

	// ProjectRoot is the directory relative paths resolve against. Set by
	// the loader, never read from the file.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultOutputDir = "output"
	DefaultOutput    = "auto" // auto-detect: TTY=text, piped=markdown
)

// loggerKey stores the logger in a command context.
type loggerKey struct{}

// WithLogger returns a context carrying the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the context, or a discard logger.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
