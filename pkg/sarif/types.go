package sarif

import "encoding/json"

// document is the subset of a SARIF 2.1.0 log the parser reads.
// See: https://docs.oasis-open.org/sarif/sarif/v2.1.0/sarif-v2.1.0.html
type document struct {
	Version *string `json:"version"`
	Runs    []run   `json:"runs"`
}

// run keeps its tool and results raw so that one ill-typed result, or an
// odd tool block, only costs that record.
type run struct {
	Tool    json.RawMessage   `json:"tool"`
	Results []json.RawMessage `json:"results"`
}

type tool struct {
	Driver driver `json:"driver"`
}

type driver struct {
	Name string `json:"name"`
}

type result struct {
	RuleID    string     `json:"ruleId"`
	Level     string     `json:"level"` // "error", "warning", "note", "none"; absent means warning
	Message   message    `json:"message"`
	Locations []location `json:"locations"`
}

type message struct {
	Text     string `json:"text"`
	Markdown string `json:"markdown"`
}

type location struct {
	PhysicalLocation *physicalLocation `json:"physicalLocation"`
}

type physicalLocation struct {
	ArtifactLocation artifactLocation `json:"artifactLocation"`
	Region           region           `json:"region"`
}

type artifactLocation struct {
	URI string `json:"uri"`
}

type region struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}
