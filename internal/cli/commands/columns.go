package commands

import (
	"fmt"

	gptable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/trialtrim/internal/cli/output"
	"github.com/leapstack-labs/trialtrim/internal/pipeline"
	"github.com/leapstack-labs/trialtrim/internal/table"
	"github.com/leapstack-labs/trialtrim/internal/textclean"
)

// previewCellLimit truncates long cells in the preview so wide free-text
// columns don't wreck the table layout.
const previewCellLimit = 40

// NewColumnsCommand creates the columns command.
func NewColumnsCommand() *cobra.Command {
	var preview int

	cmd := &cobra.Command{
		Use:   "columns <input.csv>",
		Short: "List a file's columns with their indices and letters",
		Long: `Show every header column of a CSV export alongside its zero-based index
and spreadsheet-style letter. Experiment platforms document their export
layouts by letter ("the trial number is in AZ"), so this is the quickest
way to build a --columns list.`,
		Example: `  trialtrim columns export.csv

  # Also show the first three data rows
  trialtrim columns export.csv --preview 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumns(cmd, args[0], preview)
		},
	}

	cmd.Flags().IntVar(&preview, "preview", 0, "Show the first N data rows per column")

	return cmd
}

type columnInfo struct {
	Index   int      `json:"index"`
	Letter  string   `json:"letter"`
	Name    string   `json:"name"`
	Preview []string `json:"preview,omitempty"`
}

func runColumns(cmd *cobra.Command, inputPath string, preview int) error {
	cc := NewCommandContext(cmd)

	tbl, err := pipeline.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("%s", describeError(inputPath, err))
	}

	infos := make([]columnInfo, len(tbl.Header))
	for i, name := range tbl.Header {
		infos[i] = columnInfo{Index: i, Letter: table.Letter(i), Name: name}
		for j := 0; j < preview && j < len(tbl.Rows); j++ {
			cell, _ := tbl.Rows[j].Cell(i)
			infos[i].Preview = append(infos[i].Preview, truncateCell(textclean.Clean(cell)))
		}
	}

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(map[string]any{"file": inputPath, "columns": infos})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Columns of "+inputPath))
		r.Println("")
		for _, info := range infos {
			line := fmt.Sprintf("- `%s` (%d): %s", info.Letter, info.Index, info.Name)
			for _, p := range info.Preview {
				line += fmt.Sprintf(" | %q", p)
			}
			r.Println(line)
		}
	default:
		renderColumnsTable(r, infos, preview)
	}
	return nil
}

func renderColumnsTable(r *output.Renderer, infos []columnInfo, preview int) {
	t := gptable.NewWriter()
	t.SetStyle(gptable.StyleLight)

	header := gptable.Row{"#", "Letter", "Name"}
	for j := 0; j < preview; j++ {
		header = append(header, fmt.Sprintf("Row %d", j+1))
	}
	t.AppendHeader(header)

	for _, info := range infos {
		row := gptable.Row{info.Index, info.Letter, info.Name}
		for _, p := range info.Preview {
			row = append(row, p)
		}
		t.AppendRow(row)
	}

	r.Println(t.Render())
	r.Muted(fmt.Sprintf("(%d columns)", len(infos)))
}

func truncateCell(s string) string {
	runes := []rune(s)
	if len(runes) <= previewCellLimit {
		return s
	}
	return string(runes[:previewCellLimit-1]) + "…"
}
