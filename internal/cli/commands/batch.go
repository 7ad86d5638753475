package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	gptable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/trialtrim/internal/cli/config"
	"github.com/leapstack-labs/trialtrim/internal/cli/output"
	"github.com/leapstack-labs/trialtrim/internal/pipeline"
)

// JobResult is the outcome of one batch job.
type JobResult struct {
	Name     string `json:"name"`
	Input    string `json:"input"`
	Output   string `json:"output,omitempty"`
	RowsRead int    `json:"rows_read"`
	RowsKept int    `json:"rows_kept"`
	Error    string `json:"error,omitempty"`
}

// BatchReport is the JSON shape of a whole batch run.
type BatchReport struct {
	RunID  string      `json:"run_id"`
	Jobs   []JobResult `json:"jobs"`
	Failed int         `json:"failed"`
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run every job from the config file",
		Long: `Process every job listed in trialtrim.yaml, strictly in order. A failing
job is reported and the batch moves on to the next one; the command exits
non-zero if any job failed.`,
		Example: `  # Run all configured jobs
  trialtrim run

  # Same, with a JSON report
  trialtrim run --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd)
		},
	}
}

func runBatch(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)

	if len(cc.Cfg.Jobs) == 0 {
		cc.Renderer.Muted("No jobs configured. Add a jobs list to trialtrim.yaml.")
		return nil
	}

	runID := uuid.NewString()
	cc.Logger.Info("starting batch", "run_id", runID, "jobs", len(cc.Cfg.Jobs))

	report := BatchReport{RunID: runID}
	for i := range cc.Cfg.Jobs {
		report.Jobs = append(report.Jobs, runJob(cc, &cc.Cfg.Jobs[i]))
		if report.Jobs[i].Error != "" {
			report.Failed++
		}
	}

	if err := renderBatchReport(cc.Renderer, &report); err != nil {
		return err
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", report.Failed, len(report.Jobs))
	}
	return nil
}

// runJob executes one job. Errors are captured in the result, never
// returned, so one broken export does not stop the rest of the batch.
func runJob(cc *CommandContext, job *config.Job) JobResult {
	result := JobResult{
		Name:  jobDisplayName(job),
		Input: job.Input,
	}

	if dir := filepath.Dir(job.Output); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			result.Error = fmt.Sprintf("create output directory: %v", err)
			return result
		}
	}

	res, err := pipeline.ProcessFile(pipeline.Config{
		Columns:  job.Columns,
		Sampling: job.SamplerConfig(),
		Cleaner:  cc.cleaner(),
		Logger:   cc.Logger.With("job", result.Name),
	}, job.Input, job.Output)
	if err != nil {
		result.Error = describeError(job.Input, err)
		cc.Logger.Error("job failed", "job", result.Name, "error", err)
		return result
	}

	result.Output = job.Output
	result.RowsRead = res.RowsRead
	result.RowsKept = res.RowsKept
	return result
}

func jobDisplayName(job *config.Job) string {
	if job.Name != "" {
		return job.Name
	}
	return filepath.Base(job.Input)
}

func renderBatchReport(r *output.Renderer, report *BatchReport) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(report)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Batch run"))
		r.Println("")
		for _, j := range report.Jobs {
			if j.Error != "" {
				r.Println(fmt.Sprintf("- **%s**: FAILED: %s", j.Name, j.Error))
				continue
			}
			r.Println(fmt.Sprintf("- **%s**: %d of %d rows -> %s", j.Name, j.RowsKept, j.RowsRead, j.Output))
		}
		r.Println("")
		r.Println(output.FormatKeyValue("Run ID", report.RunID))
		r.Println(output.FormatKeyValue("Failed", report.Failed))
	default:
		renderBatchTable(r, report)
	}
	return nil
}

func renderBatchTable(r *output.Renderer, report *BatchReport) {
	t := gptable.NewWriter()
	t.SetStyle(gptable.StyleLight)
	t.AppendHeader(gptable.Row{"Job", "Rows", "Kept", "Output"})

	for _, j := range report.Jobs {
		if j.Error != "" {
			t.AppendRow(gptable.Row{j.Name, "-", "-", "FAILED: " + j.Error})
			continue
		}
		t.AppendRow(gptable.Row{j.Name, j.RowsRead, j.RowsKept, j.Output})
	}

	r.Println(t.Render())
	if report.Failed > 0 {
		r.Errorf("%d of %d jobs failed", report.Failed, len(report.Jobs))
	} else {
		r.Success(fmt.Sprintf("%d jobs completed (run %s)", len(report.Jobs), report.RunID))
	}
}
