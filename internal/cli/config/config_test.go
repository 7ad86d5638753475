package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "trialtrim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(ResetConfig)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err, "explicit config file must exist")

	// No config file at all: defaults apply.
	t.Chdir(t.TempDir())
	cfg, err = LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.Jobs)
	assert.Equal(t, filepath.Join(cfg.ProjectRoot, "output"), cfg.OutputDir)
}

func TestLoadConfig_FromFile(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	path := writeConfig(t, dir, `
output_dir: cleaned
jobs:
  - name: task-e3jl
    input: raw/task.csv
    output: task_output.csv
    columns: [5, 11, 12, 51]
    sample:
      key_column: 51
  - name: questionnaire
    input: raw/questionnaire.csv
    output: questionnaire_output.csv
    columns: [5, 11]
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	require.Len(t, cfg.Jobs, 2)

	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(dir, "cleaned"), cfg.OutputDir)

	task := cfg.Jobs[0]
	assert.Equal(t, filepath.Join(dir, "raw", "task.csv"), task.Input)
	assert.Equal(t, filepath.Join(dir, "cleaned", "task_output.csv"), task.Output)
	assert.Equal(t, []int{5, 11, 12, 51}, task.Columns)

	sc := task.SamplerConfig()
	require.NotNil(t, sc)
	assert.Equal(t, 51, sc.KeyColumn)
	assert.Equal(t, 5, sc.MinRun, "min_run defaults when omitted")
	assert.Equal(t, []int{0, 3}, sc.KeepOffsets, "keep_offsets default when omitted")

	assert.Nil(t, cfg.Jobs[1].SamplerConfig(), "job without sample block is projection-only")
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	path := writeConfig(t, dir, "output_dir: from_file\n")

	t.Setenv("TRIALTRIM_OUTPUT_DIR", "from_env")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "from_env"), cfg.OutputDir)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	path := writeConfig(t, dir, "output_dir: from_file\n")

	t.Setenv("TRIALTRIM_OUTPUT_DIR", "from_env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output-dir", "", "")
	require.NoError(t, flags.Set("output-dir", "from_flag"))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "from_flag"), cfg.OutputDir)
}

func TestLoadConfig_UnchangedFlagsIgnored(t *testing.T) {
	t.Cleanup(ResetConfig)
	dir := t.TempDir()
	path := writeConfig(t, dir, "output_dir: from_file\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output-dir", "flag_default", "")

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "from_file"), cfg.OutputDir)
}

func TestLoadConfig_UpwardSearch(t *testing.T) {
	t.Cleanup(ResetConfig)
	root := t.TempDir()
	writeConfig(t, root, "output_dir: found\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "found"), cfg.OutputDir)
}

func TestValidate_JobErrors(t *testing.T) {
	tests := []struct {
		name string
		job  Job
		want string
	}{
		{"missing input", Job{Output: "o.csv", Columns: []int{0}}, "input is required"},
		{"missing output", Job{Input: "i.csv", Columns: []int{0}}, "output is required"},
		{"no columns", Job{Input: "i.csv", Output: "o.csv"}, "at least one column"},
		{"negative column", Job{Input: "i.csv", Output: "o.csv", Columns: []int{-2}}, "negative"},
		{
			"negative key column",
			Job{Input: "i.csv", Output: "o.csv", Columns: []int{0}, Sample: &SampleConfig{KeyColumn: -1}},
			"key_column",
		},
		{
			"unsorted offsets",
			Job{Input: "i.csv", Output: "o.csv", Columns: []int{0}, Sample: &SampleConfig{KeepOffsets: []int{3, 0}}},
			"strictly increasing",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Jobs: []Job{tt.job}}
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_DuplicateJobNames(t *testing.T) {
	cfg := Config{Jobs: []Job{
		{Name: "x", Input: "a.csv", Output: "a_out.csv", Columns: []int{0}},
		{Name: "x", Input: "b.csv", Output: "b_out.csv", Columns: []int{0}},
	}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate job name")
}

func TestValidate_OutputFormat(t *testing.T) {
	cfg := Config{OutputFormat: "xml"}
	require.Error(t, cfg.Validate())
	cfg.OutputFormat = "json"
	require.NoError(t, cfg.Validate())
}
