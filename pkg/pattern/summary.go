package pattern

// Summary represents the overall outcome and counts.
type Summary struct {
	Label   string
	Status  string // SUCCESS, NEUTRAL or FAILURE
	Metrics []SummaryItem
}

// SummaryItem is a single metric in a summary.
type SummaryItem struct {
	Label string // e.g., "Failures", "Warnings", "Files"
	Value string // formatted value
	Kind  Kind
}

func (s *Summary) Type() PatternType { return PatternTypeSummary }
