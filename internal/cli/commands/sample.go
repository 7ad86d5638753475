package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/trialtrim/internal/pipeline"
	"github.com/leapstack-labs/trialtrim/internal/sampler"
)

// NewSampleCommand creates the sample command.
func NewSampleCommand() *cobra.Command {
	var (
		columnsSpec string
		keyColumn   int
		minRun      int
		keepOffsets []int
	)

	cmd := &cobra.Command{
		Use:   "sample <input.csv> <output.csv>",
		Short: "Collapse repeated-trial runs, then keep selected columns",
		Long: `Read a task export logged per frame, collapse each block of consecutive
rows sharing the same trial number down to representative samples, then
project and clean the listed columns.

A block only counts when the trial-number cell holds nothing but decimal
digits; rows with empty or non-numeric trial cells are dropped outright.
Blocks shorter than --min-run are dropped whole, longer blocks keep the
rows at the --keep offsets (first and fourth by default).`,
		Example: `  # Trial number lives in column AZ (index 51)
  trialtrim sample task.csv trimmed.csv --columns 5,11,51,57 --key-column 51

  # Keep only the first row of runs of at least 10
  trialtrim sample task.csv trimmed.csv -c 5,51 --key-column 51 --min-run 10 --keep 0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			columns, err := parseColumns(columnsSpec)
			if err != nil {
				return err
			}
			if keyColumn < 0 {
				return fmt.Errorf("key column index %d is negative", keyColumn)
			}
			if minRun < 1 {
				return fmt.Errorf("minimum run length must be at least 1")
			}
			sc := sampler.Config{
				KeyColumn:   keyColumn,
				MinRun:      minRun,
				KeepOffsets: keepOffsets,
			}
			return runSample(cmd, args[0], args[1], columns, sc)
		},
	}

	cmd.Flags().StringVarP(&columnsSpec, "columns", "c", "", "Comma-separated zero-based column indices to keep, in output order")
	cmd.Flags().IntVar(&keyColumn, "key-column", 0, "Zero-based index of the trial-number column")
	cmd.Flags().IntVar(&minRun, "min-run", sampler.DefaultMinRun, "Minimum run length worth keeping")
	cmd.Flags().IntSliceVar(&keepOffsets, "keep", sampler.DefaultKeepOffsets(), "Run offsets to keep, in increasing order")
	_ = cmd.MarkFlagRequired("columns")
	_ = cmd.MarkFlagRequired("key-column")

	return cmd
}

func runSample(cmd *cobra.Command, inputPath, outputPath string, columns []int, sc sampler.Config) error {
	cc := NewCommandContext(cmd)

	res, err := pipeline.ProcessFile(pipeline.Config{
		Columns:  columns,
		Sampling: &sc,
		Cleaner:  cc.cleaner(),
		Logger:   cc.Logger,
	}, inputPath, outputPath)
	if err != nil {
		return fmt.Errorf("%s", describeError(inputPath, err))
	}

	return reportResult(cc, outputPath, res)
}
