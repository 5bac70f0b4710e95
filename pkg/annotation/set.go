package annotation

import "sort"

// Set is an unordered, deduplicated collection of annotations.
// The zero value is not usable; call NewSet.
type Set struct {
	items map[Annotation]struct{}
}

// NewSet returns a set holding anns.
func NewSet(anns ...Annotation) Set {
	s := Set{items: make(map[Annotation]struct{}, len(anns))}
	for _, a := range anns {
		s.items[a] = struct{}{}
	}
	return s
}

// Add inserts a. It reports whether a was new.
func (s Set) Add(a Annotation) bool {
	if _, ok := s.items[a]; ok {
		return false
	}
	s.items[a] = struct{}{}
	return true
}

// Union adds every member of other to s.
func (s Set) Union(other Set) {
	for a := range other.items {
		s.items[a] = struct{}{}
	}
}

// Contains reports whether a is a member.
func (s Set) Contains(a Annotation) bool {
	_, ok := s.items[a]
	return ok
}

// Len returns the number of distinct annotations.
func (s Set) Len() int {
	return len(s.items)
}

// Equal reports whether both sets hold the same annotations.
func (s Set) Equal(other Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for a := range s.items {
		if !other.Contains(a) {
			return false
		}
	}
	return true
}

// Slice returns the members in a deterministic order: by path, position,
// level severity, then message and the remaining fields.
func (s Set) Slice() []Annotation {
	out := make([]Annotation, 0, len(s.items))
	for a := range s.items {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

func less(a, b Annotation) bool {
	switch {
	case a.Path != b.Path:
		return a.Path < b.Path
	case a.StartLine != b.StartLine:
		return a.StartLine < b.StartLine
	case a.StartColumn != b.StartColumn:
		return a.StartColumn < b.StartColumn
	case a.EndLine != b.EndLine:
		return a.EndLine < b.EndLine
	case a.EndColumn != b.EndColumn:
		return a.EndColumn < b.EndColumn
	case a.Level != b.Level:
		return a.Level.rank() < b.Level.rank()
	case a.Message != b.Message:
		return a.Message < b.Message
	case a.Title != b.Title:
		return a.Title < b.Title
	default:
		return a.RawDetails < b.RawDetails
	}
}
