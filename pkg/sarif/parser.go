// Package sarif parses SARIF 2.1.0 logs, as written by golangci-lint,
// clippy-sarif, semgrep and most code scanners.
package sarif

import (
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strings"

	"github.com/dkoosis/octocheck/pkg/annotation"
)

const (
	// Name is the short identifier used for CLI and config dispatch.
	Name = "sarif"
	// Label is the human-readable format name.
	Label = "SARIF"
)

// Parser turns located SARIF results into annotations.
type Parser struct {
	annotation.Collector
	skipped int
}

// New returns an empty parser.
func New() *Parser {
	return &Parser{}
}

// Parse consumes one SARIF log. A stream that is not a JSON object with a
// version field is a *annotation.FormatError.
func (p *Parser) Parse(r io.Reader) error {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &annotation.FormatError{Format: Name, Reason: "empty input"}
		}
		return &annotation.FormatError{Format: Name, Reason: "malformed JSON", Err: err}
	}
	if doc.Version == nil {
		return &annotation.FormatError{Format: Name, Reason: "missing version"}
	}

	for _, run := range doc.Runs {
		name := toolName(run.Tool)
		for _, raw := range run.Results {
			var res result
			if err := json.Unmarshal(raw, &res); err != nil {
				p.skipped++
				continue
			}
			p.addResult(name, res)
		}
	}
	return nil
}

// toolName reads tool.driver.name, or "" when the tool block is absent or
// not shaped as expected.
func toolName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var t tool
	if err := json.Unmarshal(raw, &t); err != nil {
		return ""
	}
	return t.Driver.Name
}

// Skipped reports how many results failed to decode or had no usable
// location or message.
func (p *Parser) Skipped() int {
	return p.skipped
}

func (p *Parser) addResult(toolName string, res result) {
	level, status := classify(res.Level)
	p.Raise(status)

	text := res.Message.Text
	if text == "" {
		text = res.Message.Markdown
	}
	if text == "" || len(res.Locations) == 0 || res.Locations[0].PhysicalLocation == nil {
		p.skipped++
		return
	}

	loc := res.Locations[0].PhysicalLocation
	path := artifactPath(loc.ArtifactLocation.URI)
	start := loc.Region.StartLine
	if path == "" || start <= 0 {
		p.skipped++
		return
	}
	end := loc.Region.EndLine
	if end < start {
		end = start
	}

	var opts []annotation.Option
	if start == end && loc.Region.StartColumn > 0 {
		endCol := loc.Region.EndColumn
		if endCol < loc.Region.StartColumn {
			endCol = loc.Region.StartColumn
		}
		opts = append(opts, annotation.WithColumns(loc.Region.StartColumn, endCol))
	}
	if title := ruleTitle(toolName, res.RuleID); title != "" {
		opts = append(opts, annotation.WithTitle(title))
	}
	p.Add(annotation.New(path, start, end, level, text, opts...))
}

// classify maps a SARIF level to an annotation level and the status it
// implies. Errors and warnings fail the run; notes are neutral.
func classify(level string) (annotation.Level, annotation.Status) {
	switch level {
	case "error":
		return annotation.LevelFailure, annotation.StatusFailure
	case "", "warning":
		return annotation.LevelWarning, annotation.StatusFailure
	default:
		return annotation.LevelNotice, annotation.StatusNeutral
	}
}

// artifactPath turns a SARIF artifact URI into a file path. Relative URIs
// are returned unchanged apart from percent-decoding.
func artifactPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		if u, err := url.Parse(uri); err == nil {
			return u.Path
		}
		return strings.TrimPrefix(uri, "file://")
	}
	if p, err := url.PathUnescape(uri); err == nil {
		return p
	}
	return uri
}

func ruleTitle(toolName, ruleID string) string {
	switch {
	case toolName != "" && ruleID != "":
		return toolName + ": " + ruleID
	case ruleID != "":
		return ruleID
	default:
		return ""
	}
}
