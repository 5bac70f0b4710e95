// Package check turns parser output into a GitHub check run: it expands the
// configured glob patterns, parses every match, merges the findings, and
// submits them in batches.
package check

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"

	"github.com/dkoosis/octocheck/pkg/annotation"
	"github.com/dkoosis/octocheck/pkg/parser"
)

// Expander resolves one glob pattern to file paths.
type Expander func(pattern string) ([]string, error)

// GlobFiles expands pattern with support for recursive "**" segments and
// keeps only regular files. Matches come back in lexical order.
func GlobFiles(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	files := matches[:0]
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, m)
	}
	return files, nil
}

// Input pairs a format with the patterns configured for it.
type Input struct {
	Format   parser.Format
	Patterns []string
}

// FormatTotal counts what one format contributed.
type FormatTotal struct {
	Format      parser.Format
	Files       int
	Annotations int
}

// FileInfo describes one successfully parsed file.
type FileInfo struct {
	Format      parser.Format
	Path        string
	Annotations int
	Status      annotation.Status
}

func (fi FileInfo) String() string {
	return fmt.Sprintf("%s file %s: %d annotations, status %s",
		fi.Format.Label, fi.Path, fi.Annotations, fi.Status)
}

// Failure records a file or pattern that could not be processed.
type Failure struct {
	Format parser.Format
	Path   string
	Err    error
}

func (f Failure) String() string {
	return fmt.Sprintf("%s file %s: %v", f.Format.Label, f.Path, f.Err)
}

// Result is the merged outcome of a run.
type Result struct {
	Status       annotation.Status
	Annotations  annotation.Set
	FormatTotals []FormatTotal
	Files        []FileInfo
	Failures     []Failure

	// Sources maps each annotation to the label of the first format that
	// reported it.
	Sources map[annotation.Annotation]string
}

// Aggregator runs parsers over the files matched by each input.
type Aggregator struct {
	Expand Expander
	Log    logrus.FieldLogger
}

// NewAggregator returns an aggregator that globs the local filesystem.
func NewAggregator(log logrus.FieldLogger) *Aggregator {
	return &Aggregator{Expand: GlobFiles, Log: log}
}

// Run parses every file matched by inputs, in input order then match order.
// A file that fails to parse is recorded in Failures and contributes
// nothing. Run only returns an error when no expander is configured.
func (a *Aggregator) Run(inputs []Input) (*Result, error) {
	if a.Expand == nil {
		return nil, errors.New("check: aggregator has no expander")
	}
	log := a.Log
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	res := &Result{
		Status:      annotation.StatusSuccess,
		Annotations: annotation.NewSet(),
		Sources:     make(map[annotation.Annotation]string),
	}

	for _, in := range inputs {
		flog := log.WithField("format", in.Format.Name)
		total := FormatTotal{Format: in.Format}
		seen := make(map[string]bool)

		for _, pattern := range in.Patterns {
			pattern = strings.TrimSpace(pattern)
			if pattern == "" {
				continue
			}
			paths, err := a.Expand(pattern)
			if err != nil {
				flog.WithError(err).Warn("expanding pattern")
				res.Failures = append(res.Failures, Failure{Format: in.Format, Path: pattern, Err: err})
				continue
			}
			if len(paths) == 0 {
				flog.WithField("pattern", pattern).Debug("pattern matched no files")
			}

			for _, path := range paths {
				if seen[path] {
					continue
				}
				seen[path] = true

				p := in.Format.New()
				if err := parser.ParseFile(p, path, flog); err != nil {
					flog.WithField("file", path).WithError(err).Warn("skipping file")
					res.Failures = append(res.Failures, Failure{Format: in.Format, Path: path, Err: err})
					continue
				}

				set := p.Annotations()
				status := p.Status()
				for _, ann := range set.Slice() {
					if res.Annotations.Add(ann) {
						res.Sources[ann] = in.Format.Label
					}
				}
				res.Status = annotation.Worst(res.Status, status)

				info := FileInfo{Format: in.Format, Path: path, Annotations: set.Len(), Status: status}
				res.Files = append(res.Files, info)
				total.Files++
				total.Annotations += set.Len()
				flog.WithField("file", path).Info(info.String())
			}
		}

		if total.Files > 0 {
			res.FormatTotals = append(res.FormatTotals, total)
		}
	}
	return res, nil
}

// Output is the check-run output derived from a result.
type Output struct {
	Title   string
	Summary string
	Text    string
}

// Output builds the title, summary and text shown on the check run.
func (r *Result) Output(title string) Output {
	var text strings.Builder
	for _, t := range r.FormatTotals {
		fmt.Fprintf(&text, "%d %s files parsed, %d %s annotations.\n\n",
			t.Files, t.Format.Label, t.Annotations, t.Format.Label)
	}
	if len(r.Failures) > 0 {
		fmt.Fprintf(&text, "%d input(s) could not be parsed:\n\n", len(r.Failures))
		for _, f := range r.Failures {
			fmt.Fprintf(&text, "- %s\n", f)
		}
	}
	return Output{
		Title:   title,
		Summary: fmt.Sprintf("%d files parsed, %d annotations in total.", len(r.Files), r.Annotations.Len()),
		Text:    text.String(),
	}
}

// FilesOf returns the parsed files of one format, in result order.
func (r *Result) FilesOf(format string) []FileInfo {
	var out []FileInfo
	for _, f := range r.Files {
		if f.Format.Name == format {
			out = append(out, f)
		}
	}
	return out
}
