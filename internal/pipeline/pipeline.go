// Package pipeline runs the per-file transform: read a CSV export into
// memory, collapse repeated-trial runs when sampling is configured, project
// the configured columns, clean every kept cell, and write the result.
//
// Processing is strictly sequential and whole-file: there is no streaming
// and no shared state between invocations beyond the filesystem.
package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/leapstack-labs/trialtrim/internal/sampler"
	"github.com/leapstack-labs/trialtrim/internal/table"
	"github.com/leapstack-labs/trialtrim/internal/textclean"
)

// Config describes one file transform.
type Config struct {
	// Columns are the zero-based indices to keep, in output order.
	Columns []int
	// Sampling enables the run-sampling pre-pass when non-nil. The header
	// row is never sampled.
	Sampling *sampler.Config
	// Cleaner normalizes every projected data cell. The zero value is the
	// default pipeline.
	Cleaner textclean.Cleaner
	// Logger receives debug progress. Nil discards.
	Logger *slog.Logger
}

// Result summarizes one completed transform.
type Result struct {
	// RowsRead is the number of data rows in the input (header excluded).
	RowsRead int
	// RowsKept is the number of data rows written.
	RowsKept int
	// ColumnsKept is the width of the projected header.
	ColumnsKept int
}

// ProcessFile transforms the CSV at inputPath and writes the result to
// outputPath. When the input cannot be opened or holds no rows, no output
// file is created; a failure mid-write may leave a truncated output behind.
func ProcessFile(cfg Config, inputPath, outputPath string) (*Result, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tbl, err := ReadFile(inputPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("read input", "path", inputPath, "data_rows", len(tbl.Rows))

	rows := tbl.Rows
	if cfg.Sampling != nil {
		before := len(rows)
		rows = sampler.Sample(rows, *cfg.Sampling)
		logger.Debug("sampled runs",
			"key_column", cfg.Sampling.KeyColumn,
			"kept", len(rows),
			"dropped", before-len(rows))
	}

	out := table.Table{
		Header: table.Project(tbl.Header, cfg.Columns),
		Rows:   make([]table.Row, 0, len(rows)),
	}
	for _, r := range rows {
		projected := table.Project(r, cfg.Columns)
		for i, cell := range projected {
			projected[i] = cfg.Cleaner.Clean(cell)
		}
		out.Rows = append(out.Rows, projected)
	}

	if err := writeFile(outputPath, out); err != nil {
		return nil, err
	}
	logger.Debug("wrote output", "path", outputPath, "rows", len(out.Rows))

	return &Result{
		RowsRead:    len(tbl.Rows),
		RowsKept:    len(out.Rows),
		ColumnsKept: len(out.Header),
	}, nil
}

// ReadFile loads a whole CSV file. Rows may have differing lengths; the
// first record is the header. Returns ErrEmptyInput (wrapped) when the
// file holds no records at all.
func ReadFile(path string) (table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table.Table{}, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	tbl, err := readTable(f)
	if err != nil {
		return table.Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	return tbl, nil
}

func readTable(r io.Reader) (table.Table, error) {
	cr := csv.NewReader(r)
	// Exports pad or truncate trailing cells per row; keep ragged rows
	// and let projection and sampling handle the short ones.
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return table.Table{}, err
	}
	if len(records) == 0 {
		return table.Table{}, ErrEmptyInput
	}

	tbl := table.Table{Header: records[0]}
	if len(records) > 1 {
		tbl.Rows = make([]table.Row, 0, len(records)-1)
		for _, rec := range records[1:] {
			tbl.Rows = append(tbl.Rows, table.Row(rec))
		}
	}
	return tbl, nil
}

func writeFile(path string, tbl table.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	w := csv.NewWriter(f)
	writeErr := w.Write(tbl.Header)
	for _, row := range tbl.Rows {
		if writeErr != nil {
			break
		}
		writeErr = w.Write(row)
	}
	if writeErr == nil {
		w.Flush()
		writeErr = w.Error()
	}

	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("write %s: %w", path, writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", path, closeErr)
	}
	return nil
}
