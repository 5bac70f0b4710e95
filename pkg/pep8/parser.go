// Package pep8 parses line-oriented style-checker output
// (pycodestyle, flake8 and anything else printing path:line:col: message).
package pep8

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dkoosis/octocheck/internal/linescan"
	"github.com/dkoosis/octocheck/pkg/annotation"
)

const (
	// Name is the short identifier used for CLI and config dispatch.
	Name = "pep8"
	// Label is the human-readable format name.
	Label = "PEP8"
)

// maxLine bounds one finding line. Longer lines are skipped.
const maxLine = 1024 * 1024

// Parser turns style-checker lines into annotations.
// Each parseable line is a finding, so any finding fails the check.
type Parser struct {
	annotation.Collector
	skipped int
}

// New returns an empty parser.
func New() *Parser {
	return &Parser{}
}

// Parse consumes one stream. Lines that are not findings, or are too long
// to be one, are skipped.
func (p *Parser) Parse(r io.Reader) error {
	oversized, err := linescan.Each(r, maxLine, func(raw []byte) {
		line := string(raw)
		if strings.TrimSpace(line) == "" {
			return
		}
		ann, ok := parseLine(line)
		if !ok {
			p.skipped++
			return
		}
		p.Add(ann)
		p.Raise(annotation.StatusFailure)
	})
	p.skipped += oversized
	if err != nil {
		return fmt.Errorf("reading %s output: %w", Name, err)
	}
	return nil
}

// Skipped returns how many non-empty lines were not findings.
func (p *Parser) Skipped() int {
	return p.skipped
}

// parseLine splits path:line:column:message. The message keeps any colons it
// contains.
func parseLine(line string) (annotation.Annotation, bool) {
	parts := strings.SplitN(line, ":", 4)
	if len(parts) < 4 {
		return annotation.Annotation{}, false
	}
	lineNo, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || lineNo <= 0 {
		return annotation.Annotation{}, false
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || col <= 0 {
		return annotation.Annotation{}, false
	}
	message := strings.TrimSpace(parts[3])
	if message == "" {
		return annotation.Annotation{}, false
	}

	level := annotation.LevelWarning
	if strings.HasPrefix(message, "E") {
		level = annotation.LevelFailure
	}
	return annotation.New(parts[0], lineNo, lineNo, level, message,
		annotation.WithColumns(col, col)), true
}
