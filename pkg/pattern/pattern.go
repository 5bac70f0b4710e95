// Package pattern defines the semantic data types octocheck previews render.
// Patterns are pure data; renderers decide presentation.
package pattern

// PatternType identifies the kind of visualization pattern.
type PatternType string

const (
	PatternTypeSummary     PatternType = "summary"
	PatternTypeLeaderboard PatternType = "leaderboard"
	PatternTypeFindings    PatternType = "findings"
)

// Pattern is the interface all visualization patterns implement.
type Pattern interface {
	Type() PatternType
}

// Kind drives coloring and icons.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)
