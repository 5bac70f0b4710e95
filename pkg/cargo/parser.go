package cargo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dkoosis/octocheck/internal/linescan"
	"github.com/dkoosis/octocheck/pkg/annotation"
)

const (
	// Name is the short identifier used for CLI and config dispatch.
	Name = "cargo"
	// Label is the human-readable format name.
	Label = "Cargo JSON"
)

// maxLine bounds one NDJSON record. Rendered diagnostics and explanations
// make for long lines; anything longer is skipped.
const maxLine = 8 * 1024 * 1024

// Parser unfolds compiler diagnostics, including every nested child
// message, into independent location-anchored annotations.
type Parser struct {
	annotation.Collector
	malformed int
}

// New returns an empty parser.
func New() *Parser {
	return &Parser{}
}

// Parse consumes one NDJSON stream. Lines that are not JSON, not compiler
// messages, or longer than maxLine are skipped.
func (p *Parser) Parse(r io.Reader) error {
	oversized, err := linescan.Each(r, maxLine, func(line []byte) {
		if len(bytes.TrimSpace(line)) == 0 {
			return
		}
		var rec record
		if err := json.Unmarshal(line, &rec); err != nil {
			p.malformed++
			return
		}
		if rec.Reason != reasonCompilerMessage || rec.Message == nil {
			return
		}
		p.walk(rec.Message, nil)
	})
	p.malformed += oversized
	if err != nil {
		return fmt.Errorf("reading %s output: %w", Name, err)
	}
	return nil
}

// Skipped returns how many lines failed to decode as JSON or were too long.
func (p *Parser) Skipped() int {
	return p.malformed
}

// walk emits annotations for msg and then recurses into its children. A
// child anchors its title to the primary span of its parent.
func (p *Parser) walk(msg, parent *message) {
	if msg.Level == nil {
		return
	}
	level := p.classify(*msg.Level)
	details := rawDetails(msg)

	anchor := msg
	if parent != nil {
		anchor = parent
	}
	title := str(msg.Message)
	if ref := primaryRef(anchor); ref != "" {
		if title == "" {
			title = ref
		} else {
			title = ref + ": " + title
		}
	}

	for _, sp := range msg.Spans {
		if ann, ok := spanAnnotation(sp, level, title, details); ok {
			p.Add(ann)
		}
	}

	for i := range msg.Children {
		p.walk(&msg.Children[i], msg)
	}
}

// classify maps a rustc level to an annotation level and folds the status.
// Notes, help and failure-notes leave the status alone.
func (p *Parser) classify(level string) annotation.Level {
	switch {
	case strings.Contains(level, "error"):
		p.Raise(annotation.StatusFailure)
		return annotation.LevelFailure
	case strings.Contains(level, "warning"):
		p.Raise(annotation.StatusFailure)
		return annotation.LevelWarning
	default:
		return annotation.LevelNotice
	}
}

// rawDetails builds the long-form text: rendered output, then the error code
// and its explanation.
func rawDetails(msg *message) string {
	var sb strings.Builder
	if rendered := str(msg.Rendered); rendered != "" {
		sb.WriteString(rendered)
		sb.WriteString("\n")
	}
	if msg.Code != nil {
		if c := str(msg.Code.Code); c != "" {
			fmt.Fprintf(&sb, "Error code %s\n", c)
		}
		sb.WriteString(str(msg.Code.Explanation))
	}
	return sb.String()
}

// primarySpan returns the first span flagged primary, or nil.
func primarySpan(msg *message) *span {
	for i := range msg.Spans {
		if msg.Spans[i].IsPrimary {
			return &msg.Spans[i]
		}
	}
	return nil
}

// primaryRef formats the primary location as file#line, or "" when there is
// no usable primary span.
func primaryRef(msg *message) string {
	sp := primarySpan(msg)
	if sp == nil {
		return ""
	}
	file, line := str(sp.FileName), num(sp.LineStart)
	if file == "" || line <= 0 {
		return ""
	}
	return fmt.Sprintf("%s#%d", file, line)
}

// spanAnnotation converts one span. Spans without a file, a start line, or
// any explainable text are dropped.
func spanAnnotation(sp span, level annotation.Level, title, details string) (annotation.Annotation, bool) {
	file := str(sp.FileName)
	if file == "" || sp.LineStart == nil || *sp.LineStart <= 0 {
		return annotation.Annotation{}, false
	}
	start := *sp.LineStart
	end := start
	if sp.LineEnd != nil && *sp.LineEnd >= start {
		end = *sp.LineEnd
	}

	label := str(sp.Label)
	if label == "" {
		switch {
		case str(sp.SuggestedReplacement) != "":
			label = "Suggested replacement: " + *sp.SuggestedReplacement
		case title != "":
			label = title
		default:
			return annotation.Annotation{}, false
		}
	}

	var opts []annotation.Option
	if start == end {
		if colStart, colEnd := num(sp.ColumnStart), num(sp.ColumnEnd); colStart > 0 || colEnd > 0 {
			opts = append(opts, annotation.WithColumns(max(colStart, 0), max(colEnd, 0)))
		}
	}
	if details != "" {
		opts = append(opts, annotation.WithRawDetails(details))
	}
	if title != "" {
		opts = append(opts, annotation.WithTitle(title))
	}
	return annotation.New(file, start, end, level, label, opts...), true
}
