package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/trialtrim/internal/sampler"
	"github.com/leapstack-labs/trialtrim/internal/testutil"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessFile_ProjectionOnly(t *testing.T) {
	in := writeInput(t, "A,B,C,D\na1,b1,c1,d1\na2,b2,c2,d2\n")
	out := filepath.Join(t.TempDir(), "out.csv")

	res, err := ProcessFile(Config{Columns: []int{2, 0, 2}}, in, out)
	require.NoError(t, err)
	assert.Equal(t, 2, res.RowsRead)
	assert.Equal(t, 2, res.RowsKept)
	assert.Equal(t, 3, res.ColumnsKept)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "C,A,C\nc1,a1,c1\nc2,a2,c2\n", string(data))
}

func TestProcessFile_CleansCells(t *testing.T) {
	in := writeInput(t, "text\n<b>hi</b> <div>there</div>\n")
	out := filepath.Join(t.TempDir(), "out.csv")

	_, err := ProcessFile(Config{Columns: []int{0}}, in, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "text\n**hi** there\n", string(data))
}

func TestProcessFile_HeaderNotCleaned(t *testing.T) {
	// Cleaning applies to data cells only; header cells pass through.
	in := writeInput(t, "<name>\nx\n")
	out := filepath.Join(t.TempDir(), "out.csv")

	_, err := ProcessFile(Config{Columns: []int{0}}, in, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "<name>\nx\n", string(data))
}

func TestProcessFile_WithSampling(t *testing.T) {
	in := writeInput(t, "id,trial\n"+
		"r0,3\nr1,3\nr2,3\nr3,3\nr4,3\nr5,3\n"+
		"r6,7\n")
	out := filepath.Join(t.TempDir(), "out.csv")

	cfg := Config{Columns: []int{0, 1}, Logger: testutil.NewTestLogger(t)}
	sc := sampler.DefaultConfig(1)
	cfg.Sampling = &sc

	res, err := ProcessFile(cfg, in, out)
	require.NoError(t, err)
	assert.Equal(t, 7, res.RowsRead)
	assert.Equal(t, 2, res.RowsKept)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "id,trial\nr0,3\nr3,3\n", string(data))
}

func TestProcessFile_ShortRowsTolerated(t *testing.T) {
	in := writeInput(t, "A,B,C\nfull,row,here\nshort\n")
	out := filepath.Join(t.TempDir(), "out.csv")

	_, err := ProcessFile(Config{Columns: []int{0, 2}}, in, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "A,C\nfull,here\nshort\n", string(data))
}

func TestProcessFile_InputMissing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.csv")

	_, err := ProcessFile(Config{Columns: []int{0}}, filepath.Join(dir, "nope.csv"), out)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no output file may be created")
}

func TestProcessFile_EmptyInput(t *testing.T) {
	in := writeInput(t, "")
	out := filepath.Join(t.TempDir(), "out.csv")

	_, err := ProcessFile(Config{Columns: []int{0}}, in, out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no output file may be created")
}

func TestProcessFile_HeaderOnly(t *testing.T) {
	in := writeInput(t, "A,B\n")
	out := filepath.Join(t.TempDir(), "out.csv")

	res, err := ProcessFile(Config{Columns: []int{1}}, in, out)
	require.NoError(t, err)
	assert.Equal(t, 0, res.RowsRead)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "B\n", string(data))
}

func TestReadFile_QuotedCells(t *testing.T) {
	in := writeInput(t, "A,B\n\"a,comma\",\"line\nbreak\"\n")

	tbl, err := ReadFile(in)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "a,comma", tbl.Rows[0][0])
	assert.Equal(t, "line\nbreak", tbl.Rows[0][1])
}
