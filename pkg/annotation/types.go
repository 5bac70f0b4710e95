// Package annotation defines the normalized finding model shared by every
// octocheck parser: an immutable, comparable Annotation, its Level, the
// worst-wins Status rollup, and a deduplicating Set.
package annotation

import "fmt"

// Level is the GitHub annotation level of a finding.
type Level string

const (
	LevelNotice  Level = "notice"
	LevelWarning Level = "warning"
	LevelFailure Level = "failure"
)

// rank orders levels for display; it is not part of identity.
func (l Level) rank() int {
	switch l {
	case LevelFailure:
		return 0
	case LevelWarning:
		return 1
	default:
		return 2
	}
}

// Annotation is one finding anchored to a file region.
//
// Annotations are plain comparable values: two annotations are equal iff every
// field is equal, which makes the struct usable directly as a map key for
// deduplication. Optional fields use their zero value as the "absent" marker.
// Columns are only meaningful when StartLine == EndLine, and valid columns are
// positive, so 0 never collides with a real value.
type Annotation struct {
	Path        string
	StartLine   int
	EndLine     int
	Level       Level
	Message     string
	StartColumn int
	EndColumn   int
	Title       string
	RawDetails  string
}

// Option sets an optional field during construction.
type Option func(*Annotation)

// WithColumns sets the column range.
func WithColumns(start, end int) Option {
	return func(a *Annotation) {
		a.StartColumn = start
		a.EndColumn = end
	}
}

// WithTitle sets the short heading shown above the message.
func WithTitle(title string) Option {
	return func(a *Annotation) { a.Title = title }
}

// WithRawDetails sets the verbatim long-form text.
func WithRawDetails(details string) Option {
	return func(a *Annotation) { a.RawDetails = details }
}

// New builds an annotation from the required fields plus options.
func New(path string, startLine, endLine int, level Level, message string, opts ...Option) Annotation {
	a := Annotation{
		Path:      path,
		StartLine: startLine,
		EndLine:   endLine,
		Level:     level,
		Message:   message,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// WithPath returns a copy of a anchored at path.
func (a Annotation) WithPath(path string) Annotation {
	a.Path = path
	return a
}

// HasColumns reports whether a carries a column range.
func (a Annotation) HasColumns() bool {
	return a.StartColumn > 0 || a.EndColumn > 0
}

// Location formats the anchor as path:line or path:line:col.
func (a Annotation) Location() string {
	if a.StartColumn > 0 {
		return fmt.Sprintf("%s:%d:%d", a.Path, a.StartLine, a.StartColumn)
	}
	return fmt.Sprintf("%s:%d", a.Path, a.StartLine)
}

func (a Annotation) String() string {
	return fmt.Sprintf("%s %s: %s", a.Location(), a.Level, a.Message)
}
