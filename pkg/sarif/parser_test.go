package sarif

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/octocheck/pkg/annotation"
)

const golangci = `{
  "version": "2.1.0",
  "$schema": "https://json.schemastore.org/sarif-2.1.0.json",
  "runs": [{
    "tool": {"driver": {"name": "golangci-lint"}},
    "results": [
      {"ruleId": "errcheck", "level": "error",
       "message": {"text": "Error return value is not checked"},
       "locations": [{"physicalLocation": {"artifactLocation": {"uri": "internal/handler.go"},
                      "region": {"startLine": 45, "startColumn": 12, "endColumn": 20}}}]},
      {"ruleId": "govet",
       "message": {"text": "printf: wrong type"},
       "locations": [{"physicalLocation": {"artifactLocation": {"uri": "file:///src/pkg/api%20v2/client.go"},
                      "region": {"startLine": 23, "endLine": 25, "startColumn": 8}}}]},
      {"ruleId": "godot", "level": "note",
       "message": {"text": "Comment should end in a period"},
       "locations": [{"physicalLocation": {"artifactLocation": {"uri": "main.go"}, "region": {"startLine": 1}}}]}
    ]
  }]
}`

func TestParse_Levels(t *testing.T) {
	p := New()
	require.NoError(t, p.Parse(strings.NewReader(golangci)))

	want := annotation.NewSet(
		annotation.New("internal/handler.go", 45, 45, annotation.LevelFailure, "Error return value is not checked",
			annotation.WithColumns(12, 20), annotation.WithTitle("golangci-lint: errcheck")),
		annotation.New("/src/pkg/api v2/client.go", 23, 25, annotation.LevelWarning, "printf: wrong type",
			annotation.WithTitle("golangci-lint: govet")),
		annotation.New("main.go", 1, 1, annotation.LevelNotice, "Comment should end in a period",
			annotation.WithTitle("golangci-lint: godot")),
	)
	assert.True(t, want.Equal(p.Annotations()), "got %v", p.Annotations().Slice())
	assert.Equal(t, annotation.StatusFailure, p.Status())
	assert.Zero(t, p.Skipped())
}

func TestParse_NotesOnlyIsNeutral(t *testing.T) {
	doc := `{"version":"2.1.0","runs":[{"tool":{"driver":{"name":"x"}},"results":[
	  {"level":"none","message":{"text":"fyi"},"locations":[{"physicalLocation":{"artifactLocation":{"uri":"a.go"},"region":{"startLine":2,"startColumn":3}}}]}
	]}]}`
	p := New()
	require.NoError(t, p.Parse(strings.NewReader(doc)))
	assert.Equal(t, annotation.StatusNeutral, p.Status())
	require.Equal(t, 1, p.Annotations().Len())
	got := p.Annotations().Slice()[0]
	assert.Equal(t, 3, got.StartColumn)
	assert.Equal(t, 3, got.EndColumn)
	assert.Empty(t, got.Title)
}

func TestParse_SkipsUnlocatedResults(t *testing.T) {
	doc := `{"version":"2.1.0","runs":[{"results":[
	  {"level":"error","message":{"text":"no location"}},
	  {"level":"error","message":{"text":"logical only"},"locations":[{}]},
	  {"level":"error","message":{"text":"no line"},"locations":[{"physicalLocation":{"artifactLocation":{"uri":"a.go"}}}]},
	  {"level":"error","message":{},"locations":[{"physicalLocation":{"artifactLocation":{"uri":"a.go"},"region":{"startLine":1}}}]},
	  {"level":"error","message":{"markdown":"**md** only"},"locations":[{"physicalLocation":{"artifactLocation":{"uri":"b.go"},"region":{"startLine":4}}}]}
	]}]}`
	p := New()
	require.NoError(t, p.Parse(strings.NewReader(doc)))
	assert.Equal(t, 4, p.Skipped())
	require.Equal(t, 1, p.Annotations().Len())
	assert.Equal(t, "**md** only", p.Annotations().Slice()[0].Message)
	assert.Equal(t, annotation.StatusFailure, p.Status(), "skipped errors still fail the run")
}

func TestParse_EmptyRuns(t *testing.T) {
	p := New()
	require.NoError(t, p.Parse(strings.NewReader(`{"version":"2.1.0","runs":[]}`)))
	assert.Equal(t, annotation.StatusSuccess, p.Status())
	assert.Zero(t, p.Annotations().Len())
}

func TestParse_FormatErrors(t *testing.T) {
	for name, input := range map[string]string{
		"empty":      "",
		"not json":   "src/a.py:1:1: E1 x",
		"no version": `{"runs":[]}`,
		"truncated":  `{"version":"2.1.0","runs":[`,
	} {
		t.Run(name, func(t *testing.T) {
			err := New().Parse(strings.NewReader(input))
			var fe *annotation.FormatError
			require.True(t, errors.As(err, &fe), "got %v", err)
			assert.Equal(t, Name, fe.Format)
		})
	}
}

func TestParse_IllTypedResultIsSkipped(t *testing.T) {
	doc := `{"version":"2.1.0","runs":[{"tool":{"driver":{"name":"semgrep"}},"results":[
	  {"ruleId":"r1","level":"error","message":{"text":"bad type"},
	   "locations":[{"physicalLocation":{"artifactLocation":{"uri":"a.go"},"region":{"startLine":"3"}}}]},
	  {"ruleId":"r2","level":"warning","message":{"text":"fine"},
	   "locations":[{"physicalLocation":{"artifactLocation":{"uri":"b.go"},"region":{"startLine":4}}}]}
	]},{"tool":"not an object","results":[
	  {"level":"warning","message":{"text":"no tool"},
	   "locations":[{"physicalLocation":{"artifactLocation":{"uri":"c.go"},"region":{"startLine":1}}}]}
	]}]}`

	p := New()
	require.NoError(t, p.Parse(strings.NewReader(doc)))
	assert.Equal(t, 1, p.Skipped())

	anns := p.Annotations().Slice()
	require.Len(t, anns, 2)
	assert.Equal(t, "b.go", anns[0].Path)
	assert.Equal(t, "semgrep: r2", anns[0].Title)
	assert.Equal(t, "c.go", anns[1].Path)
	assert.Equal(t, "", anns[1].Title)
	assert.Equal(t, annotation.StatusFailure, p.Status())
}
