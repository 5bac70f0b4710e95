package xunit

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dkoosis/octocheck/pkg/annotation"
)

const (
	// Name is the short identifier used for CLI and config dispatch.
	Name = "xunit"
	// Label is the human-readable format name.
	Label = "xUnit"

	// MaxDetails caps the raw details copied from a failure body.
	MaxDetails = 64 * 1024
)

// Parser turns test-case errors and failures into failure annotations.
type Parser struct {
	annotation.Collector
	skipped int
}

// New returns an empty parser.
func New() *Parser {
	return &Parser{}
}

// Parse consumes one XML document. The root must be <testsuites> or
// <testsuite>; anything else is a *annotation.FormatError.
func (p *Parser) Parse(r io.Reader) error {
	dec := xml.NewDecoder(r)
	start, err := rootElement(dec)
	if err != nil {
		return err
	}

	switch start.Name.Local {
	case rootSuites:
		var doc suites
		if err := dec.DecodeElement(&doc, &start); err != nil {
			return formatError("malformed document", err)
		}
		for _, s := range doc.Suites {
			p.addSuite(s)
		}
	case rootSuite:
		var s suite
		if err := dec.DecodeElement(&s, &start); err != nil {
			return formatError("malformed document", err)
		}
		p.addSuite(s)
	default:
		return formatError("unexpected root element <"+start.Name.Local+">", nil)
	}
	return nil
}

// Skipped returns how many error/failure entries could not be anchored.
func (p *Parser) Skipped() int {
	return p.skipped
}

// rootElement advances to the first start element.
func rootElement(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return xml.StartElement{}, formatError("no root element", nil)
		}
		if err != nil {
			return xml.StartElement{}, formatError("not an XML document", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start, nil
		}
	}
}

func formatError(reason string, err error) error {
	return &annotation.FormatError{Format: Name, Reason: reason, Err: err}
}

func (p *Parser) addSuite(s suite) {
	for _, tc := range s.Cases {
		for _, res := range tc.Errors {
			p.addResult(tc, res)
		}
		for _, res := range tc.Failures {
			p.addResult(tc, res)
		}
	}
}

// addResult records one error or failure. The location comes from the
// enclosing test case, the text from the result itself.
func (p *Parser) addResult(tc testCase, res result) {
	p.Raise(annotation.StatusFailure)

	message := res.Message
	if message == "" {
		message = res.Type
	}
	if message == "" || tc.File == "" || tc.Line == "" {
		p.skipped++
		return
	}
	line, err := strconv.Atoi(strings.TrimSpace(tc.Line))
	if err != nil || line <= 0 {
		p.skipped++
		return
	}

	var opts []annotation.Option
	if res.Text != "" {
		opts = append(opts, annotation.WithRawDetails(truncate(res.Text, MaxDetails)))
	}
	p.Add(annotation.New(tc.File, line, line, annotation.LevelFailure, message, opts...))
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
