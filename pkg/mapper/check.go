// Package mapper converts aggregated check results to visualization patterns.
package mapper

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/octocheck/pkg/annotation"
	"github.com/dkoosis/octocheck/pkg/check"
	"github.com/dkoosis/octocheck/pkg/pattern"
)

// topFiles bounds the leaderboard.
const topFiles = 10

// heading capitalizes a level name. Casers are stateful, so each call gets
// its own.
func heading(l annotation.Level) string {
	return cases.Title(language.English).String(string(l))
}

// FromCheck converts a result into patterns.
// Returns: Summary + Leaderboard (if >1 file) + Findings per annotated file.
func FromCheck(res *check.Result) []pattern.Pattern {
	anns := res.Annotations.Slice()
	byFile := groupByPath(anns)

	patterns := []pattern.Pattern{summary(res, anns, len(byFile))}
	if lb := leaderboard(byFile); lb != nil {
		patterns = append(patterns, lb)
	}
	for _, g := range byFile {
		patterns = append(patterns, findings(g, res.Sources))
	}
	return patterns
}

type fileGroup struct {
	path string
	anns []annotation.Annotation
}

// groupByPath keeps the Slice order, which is path-major.
func groupByPath(anns []annotation.Annotation) []fileGroup {
	var groups []fileGroup
	for _, a := range anns {
		if n := len(groups); n > 0 && groups[n-1].path == a.Path {
			groups[n-1].anns = append(groups[n-1].anns, a)
			continue
		}
		groups = append(groups, fileGroup{path: a.Path, anns: []annotation.Annotation{a}})
	}
	return groups
}

func summary(res *check.Result, anns []annotation.Annotation, files int) *pattern.Summary {
	counts := map[annotation.Level]int{}
	for _, a := range anns {
		counts[a.Level]++
	}

	var metrics []pattern.SummaryItem
	for _, lvl := range []annotation.Level{annotation.LevelFailure, annotation.LevelWarning, annotation.LevelNotice} {
		if n := counts[lvl]; n > 0 {
			metrics = append(metrics, pattern.SummaryItem{
				Label: heading(lvl) + "s",
				Value: strconv.Itoa(n),
				Kind:  kindOf(lvl),
			})
		}
	}
	for _, t := range res.FormatTotals {
		metrics = append(metrics, pattern.SummaryItem{
			Label: t.Format.Label + " files",
			Value: strconv.Itoa(t.Files),
			Kind:  pattern.KindInfo,
		})
	}
	if n := len(res.Failures); n > 0 {
		metrics = append(metrics, pattern.SummaryItem{
			Label: "Unreadable inputs",
			Value: strconv.Itoa(n),
			Kind:  pattern.KindError,
		})
	}
	if len(metrics) == 0 {
		metrics = append(metrics, pattern.SummaryItem{Label: "Annotations", Value: "0", Kind: pattern.KindSuccess})
	}

	return &pattern.Summary{
		Label:   fmt.Sprintf("%d annotations in %d files", len(anns), files),
		Status:  res.Status.String(),
		Metrics: metrics,
	}
}

func leaderboard(groups []fileGroup) *pattern.Leaderboard {
	if len(groups) <= 1 {
		return nil
	}
	ranked := make([]fileGroup, len(groups))
	copy(ranked, groups)
	sort.SliceStable(ranked, func(i, j int) bool {
		return len(ranked[i].anns) > len(ranked[j].anns)
	})
	if len(ranked) > topFiles {
		ranked = ranked[:topFiles]
	}

	items := make([]pattern.LeaderboardItem, len(ranked))
	for i, g := range ranked {
		name := filepath.Base(g.path)
		if dir := filepath.Dir(g.path); dir != "." {
			name = filepath.Join(filepath.Base(dir), name)
		}
		items[i] = pattern.LeaderboardItem{
			Name:    name,
			Metric:  fmt.Sprintf("%d annotations", len(g.anns)),
			Value:   float64(len(g.anns)),
			Rank:    i + 1,
			Context: g.path,
		}
	}
	return &pattern.Leaderboard{
		Label:      "Files with Most Annotations",
		MetricName: "Annotations",
		Items:      items,
		TotalCount: len(groups),
		ShowRank:   true,
	}
}

func findings(g fileGroup, sources map[annotation.Annotation]string) *pattern.Findings {
	// Slice order is by line within a path; show failures first.
	sorted := make([]annotation.Annotation, len(g.anns))
	copy(sorted, g.anns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return levelPriority(sorted[i].Level) < levelPriority(sorted[j].Level)
	})

	items := make([]pattern.Finding, len(sorted))
	for i, a := range sorted {
		loc := strconv.Itoa(a.StartLine)
		if a.HasColumns() {
			loc = fmt.Sprintf("%d:%d", a.StartLine, a.StartColumn)
		} else if a.EndLine != a.StartLine {
			loc = fmt.Sprintf("%d-%d", a.StartLine, a.EndLine)
		}
		items[i] = pattern.Finding{
			Kind:     kindOf(a.Level),
			Level:    heading(a.Level),
			Location: loc,
			Message:  a.Message,
			Title:    a.Title,
			Source:   sources[a],
		}
	}
	return &pattern.Findings{Label: g.path, Items: items}
}

func kindOf(l annotation.Level) pattern.Kind {
	switch l {
	case annotation.LevelFailure:
		return pattern.KindError
	case annotation.LevelWarning:
		return pattern.KindWarning
	default:
		return pattern.KindInfo
	}
}

func levelPriority(l annotation.Level) int {
	switch l {
	case annotation.LevelFailure:
		return 0
	case annotation.LevelWarning:
		return 1
	default:
		return 2
	}
}
