package pipeline

import "errors"

// ErrEmptyInput reports a CSV file with no rows at all, not even a header.
var ErrEmptyInput = errors.New("file is empty")
