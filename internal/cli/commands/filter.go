package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/trialtrim/internal/cli/output"
	"github.com/leapstack-labs/trialtrim/internal/pipeline"
)

// NewFilterCommand creates the filter command.
func NewFilterCommand() *cobra.Command {
	var columnsSpec string

	cmd := &cobra.Command{
		Use:   "filter <input.csv> <output.csv>",
		Short: "Keep selected columns and clean cell text",
		Long: `Read a CSV export, keep only the listed column indices (zero-based, in the
given order), clean every cell (HTML tags to markdown, NFC normalization,
control characters stripped), and write the result.

Indices out of range for a given row are skipped silently; duplicate
indices produce duplicate output columns.`,
		Example: `  # Keep the questionnaire columns F, L, M and AC
  trialtrim filter export.csv cleaned.csv --columns 5,11,12,28`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			columns, err := parseColumns(columnsSpec)
			if err != nil {
				return err
			}
			return runFilter(cmd, args[0], args[1], columns)
		},
	}

	cmd.Flags().StringVarP(&columnsSpec, "columns", "c", "", "Comma-separated zero-based column indices to keep, in output order")
	_ = cmd.MarkFlagRequired("columns")

	return cmd
}

func runFilter(cmd *cobra.Command, inputPath, outputPath string, columns []int) error {
	cc := NewCommandContext(cmd)

	res, err := pipeline.ProcessFile(pipeline.Config{
		Columns: columns,
		Cleaner: cc.cleaner(),
		Logger:  cc.Logger,
	}, inputPath, outputPath)
	if err != nil {
		return fmt.Errorf("%s", describeError(inputPath, err))
	}

	return reportResult(cc, outputPath, res)
}

// reportResult renders a per-file success summary in the active mode.
func reportResult(cc *CommandContext, outputPath string, res *pipeline.Result) error {
	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(map[string]any{
			"output":       outputPath,
			"rows_read":    res.RowsRead,
			"rows_kept":    res.RowsKept,
			"columns_kept": res.ColumnsKept,
		})
	case output.ModeMarkdown:
		r.Println(fmt.Sprintf("Wrote **%s** (%d of %d rows, %d columns)",
			outputPath, res.RowsKept, res.RowsRead, res.ColumnsKept))
	default:
		r.Success(fmt.Sprintf("Wrote %s (%d of %d rows, %d columns)",
			outputPath, res.RowsKept, res.RowsRead, res.ColumnsKept))
	}
	return nil
}
