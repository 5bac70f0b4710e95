package parser

import (
	"github.com/dkoosis/octocheck/pkg/cargo"
	"github.com/dkoosis/octocheck/pkg/pep8"
	"github.com/dkoosis/octocheck/pkg/sarif"
	"github.com/dkoosis/octocheck/pkg/xunit"
)

// Format describes one registered input format.
type Format struct {
	// Name is the stable short identifier used by flags, env and config.
	Name string
	// Label is the display name used in summaries.
	Label string
	// New returns a fresh parser instance.
	New func() Parser
}

// formats is ordered; aggregation runs formats in this order.
var formats = []Format{
	{Name: cargo.Name, Label: cargo.Label, New: func() Parser { return cargo.New() }},
	{Name: pep8.Name, Label: pep8.Label, New: func() Parser { return pep8.New() }},
	{Name: xunit.Name, Label: xunit.Label, New: func() Parser { return xunit.New() }},
	{Name: sarif.Name, Label: sarif.Label, New: func() Parser { return sarif.New() }},
}

// Formats returns every registered format in registry order.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// Lookup finds a format by its short name.
func Lookup(name string) (Format, bool) {
	for _, f := range formats {
		if f.Name == name {
			return f, true
		}
	}
	return Format{}, false
}

// Names returns the short names in registry order.
func Names() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.Name
	}
	return names
}
