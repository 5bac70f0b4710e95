package check

import (
	"strings"

	"github.com/dkoosis/octocheck/pkg/annotation"
)

// MaxBatch is the most annotations GitHub accepts in one check-run request.
const MaxBatch = 50

// PathRewrite maps local paths to repository-relative ones. Strip is removed
// once from the front of a path when present, then Add is prepended.
type PathRewrite struct {
	Strip string
	Add   string
}

// Apply rewrites one path.
func (r PathRewrite) Apply(path string) string {
	if r.Strip != "" {
		path = strings.TrimPrefix(path, r.Strip)
	}
	return r.Add + path
}

// Batch splits set into chunks of at most size annotations, in Slice order,
// rewriting each path. An empty set yields no batches. A size below one is
// treated as MaxBatch.
func Batch(set annotation.Set, size int, rewrite PathRewrite) [][]annotation.Annotation {
	if size < 1 {
		size = MaxBatch
	}
	all := set.Slice()
	var batches [][]annotation.Annotation
	for start := 0; start < len(all); start += size {
		end := min(start+size, len(all))
		chunk := make([]annotation.Annotation, 0, end-start)
		for _, a := range all[start:end] {
			chunk = append(chunk, a.WithPath(rewrite.Apply(a.Path)))
		}
		batches = append(batches, chunk)
	}
	return batches
}
