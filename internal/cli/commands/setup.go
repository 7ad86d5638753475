// Package commands implements the trialtrim subcommands.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/trialtrim/internal/cli/config"
	"github.com/leapstack-labs/trialtrim/internal/cli/output"
	"github.com/leapstack-labs/trialtrim/internal/pipeline"
	"github.com/leapstack-labs/trialtrim/internal/textclean"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext assembles the shared dependencies from the command's
// context and streams.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	mode := output.Mode(cfg.OutputFormat)
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

// getConfig returns the current configuration, falling back to defaults
// when no loader has run (e.g. in tests that build commands directly).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		OutputDir:    config.DefaultOutputDir,
		OutputFormat: config.DefaultOutput,
	}
}

// cleaner builds the cell cleaner from the active config.
func (cc *CommandContext) cleaner() textclean.Cleaner {
	return textclean.Cleaner{FullHTML: cc.Cfg.FullHTML}
}

// describeError turns pipeline errors into the human diagnostics the tool
// reports: missing input and empty input get friendly one-liners, anything
// else surfaces with its underlying description.
func describeError(inputPath string, err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Sprintf("file %q not found", inputPath)
	case errors.Is(err, pipeline.ErrEmptyInput):
		return fmt.Sprintf("file %q is empty", inputPath)
	default:
		return err.Error()
	}
}

// parseColumns parses a comma-separated list of non-negative column
// indices, preserving order and duplicates.
func parseColumns(spec string) ([]int, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("no column indices given")
	}
	parts := strings.Split(spec, ",")
	indices := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid column index %q", p)
		}
		if n < 0 {
			return nil, fmt.Errorf("column index %d is negative", n)
		}
		indices = append(indices, n)
	}
	return indices, nil
}
