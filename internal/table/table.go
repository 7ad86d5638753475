// Package table holds the positional row model shared by the projection
// and sampling passes. Cells are addressed by index only; nothing at this
// layer knows about column names.
package table

// Row is a single CSV record. Rows in the same file may have different
// lengths, so every access goes through Cell.
type Row []string

// Cell returns the value at index i and whether the row is long enough to
// have one.
func (r Row) Cell(i int) (string, bool) {
	if i < 0 || i >= len(r) {
		return "", false
	}
	return r[i], true
}

// Table is an ordered set of rows. The header is kept apart because it is
// exempt from sampling and always written first.
type Table struct {
	Header Row
	Rows   []Row
}

// Project keeps the cells of r at the given indices, in the given order.
// Indices out of range for this particular row are skipped, not padded, so
// the result may be shorter than len(indices). Duplicate indices produce
// duplicate cells.
func Project(r Row, indices []int) Row {
	out := make(Row, 0, len(indices))
	for _, i := range indices {
		if cell, ok := r.Cell(i); ok {
			out = append(out, cell)
		}
	}
	return out
}

// Letter converts a zero-based column index to its spreadsheet-style
// letter: 0 -> A, 25 -> Z, 26 -> AA, 51 -> AZ. Experiment platforms
// document their export layouts by these letters, so the CLI shows them
// next to raw indices.
func Letter(i int) string {
	if i < 0 {
		return ""
	}
	var buf []byte
	for i >= 0 {
		buf = append([]byte{byte('A' + i%26)}, buf...)
		i = i/26 - 1
	}
	return string(buf)
}
