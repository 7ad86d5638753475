package config

import "fmt"

// Validate checks the loaded configuration. Jobs are only validated
// structurally; input files are checked when a job actually runs, so a
// config with not-yet-downloaded exports still loads.
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case "", "auto", "text", "markdown", "json":
	default:
		return fmt.Errorf("invalid output format %q (want auto, text, markdown, or json)", c.OutputFormat)
	}

	seen := make(map[string]bool, len(c.Jobs))
	for i := range c.Jobs {
		if err := c.Jobs[i].validate(); err != nil {
			return fmt.Errorf("job %s: %w", jobLabel(&c.Jobs[i], i), err)
		}
		if name := c.Jobs[i].Name; name != "" {
			if seen[name] {
				return fmt.Errorf("duplicate job name %q", name)
			}
			seen[name] = true
		}
	}
	return nil
}

func (j *Job) validate() error {
	if j.Input == "" {
		return fmt.Errorf("input is required")
	}
	if j.Output == "" {
		return fmt.Errorf("output is required")
	}
	if len(j.Columns) == 0 {
		return fmt.Errorf("at least one column index is required")
	}
	for _, c := range j.Columns {
		if c < 0 {
			return fmt.Errorf("column index %d is negative", c)
		}
	}
	if j.Sample != nil {
		if j.Sample.KeyColumn < 0 {
			return fmt.Errorf("sample.key_column %d is negative", j.Sample.KeyColumn)
		}
		if j.Sample.MinRun < 0 {
			return fmt.Errorf("sample.min_run %d is negative", j.Sample.MinRun)
		}
		prev := -1
		for _, off := range j.Sample.KeepOffsets {
			if off < 0 {
				return fmt.Errorf("sample.keep_offsets entry %d is negative", off)
			}
			if off <= prev {
				return fmt.Errorf("sample.keep_offsets must be strictly increasing")
			}
			prev = off
		}
	}
	return nil
}

func jobLabel(j *Job, index int) string {
	if j.Name != "" {
		return j.Name
	}
	return fmt.Sprintf("#%d", index+1)
}
