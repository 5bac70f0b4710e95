package annotation

import "fmt"

// FormatError reports that the outer structure of an input stream was not
// recognized. It is fatal for the one stream being parsed only.
type FormatError struct {
	Format string // parser short name, e.g. "xunit"
	Reason string
	Err    error // underlying decode error, if any
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s input: %s: %v", e.Format, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s input: %s", e.Format, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
