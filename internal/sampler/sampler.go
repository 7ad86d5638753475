// Package sampler collapses runs of repeated-trial rows.
//
// Task exports log one row per frame, so a single trial shows up as a long
// block of consecutive rows sharing the same trial number. Sampling keeps a
// couple of representative rows per block and discards the rest, along with
// noise rows whose trial-number cell holds anything but digits.
package sampler

import "github.com/leapstack-labs/trialtrim/internal/table"

// Default sampling parameters for the exports this tool was built around.
const (
	DefaultMinRun = 5
)

// DefaultKeepOffsets returns the run offsets kept by default: the first
// and fourth row of each surviving run.
func DefaultKeepOffsets() []int {
	return []int{0, 3}
}

// Config controls run detection and which rows survive.
type Config struct {
	// KeyColumn is the zero-based index of the trial-number column.
	KeyColumn int
	// MinRun is the minimum run length worth keeping. Shorter runs are
	// dropped whole.
	MinRun int
	// KeepOffsets are the positions inside a kept run that survive, in
	// increasing order. Offsets past the end of a particular run are
	// skipped.
	KeepOffsets []int
}

// DefaultConfig returns the standard sampling for the given key column:
// runs of at least five rows keep offsets 0 and 3.
func DefaultConfig(keyColumn int) Config {
	return Config{
		KeyColumn:   keyColumn,
		MinRun:      DefaultMinRun,
		KeepOffsets: DefaultKeepOffsets(),
	}
}

// Sample scans rows once, left to right, and returns the kept subset in
// original order.
//
// A row whose key cell is absent, empty, or not entirely decimal digits is
// dropped on its own; it never joins a run, even when neighbours carry the
// same value. A row with an all-digit key starts a run covering every
// consecutive row whose key cell is present and exactly equal; a row that
// is too short to have the key cell breaks the run. Runs of at least
// cfg.MinRun rows keep the rows at cfg.KeepOffsets, everything else is
// dropped.
func Sample(rows []table.Row, cfg Config) []table.Row {
	var kept []table.Row
	i := 0
	for i < len(rows) {
		key, ok := rows[i].Cell(cfg.KeyColumn)
		if !ok || !allDigits(key) {
			i++
			continue
		}

		j := i + 1
		for j < len(rows) {
			v, ok := rows[j].Cell(cfg.KeyColumn)
			if !ok || v != key {
				break
			}
			j++
		}

		if j-i >= cfg.MinRun {
			for _, off := range cfg.KeepOffsets {
				if off >= 0 && i+off < j {
					kept = append(kept, rows[i+off])
				}
			}
		}
		i = j
	}
	return kept
}

// allDigits reports whether s is non-empty and contains only ASCII decimal
// digits.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
