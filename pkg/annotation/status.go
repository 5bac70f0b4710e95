package annotation

import "strings"

// Status is the coarse outcome of a parser run. Values are totally ordered;
// the overall check status is the worst status seen.
type Status int

const (
	StatusSuccess Status = iota + 1
	StatusNeutral
	StatusFailure
)

// Worst returns the more severe of the statuses. It is commutative and
// associative, so the fold order does not matter.
func Worst(statuses ...Status) Status {
	worst := StatusSuccess
	for _, s := range statuses {
		if s > worst {
			worst = s
		}
	}
	return worst
}

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusNeutral:
		return "NEUTRAL"
	case StatusFailure:
		return "FAILURE"
	default:
		return "UNKNOWN"
	}
}

// Conclusion is the GitHub check-run conclusion for s.
func (s Status) Conclusion() string {
	return strings.ToLower(s.String())
}
