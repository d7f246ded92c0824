package region

import (
	"cmp"
	"slices"
)

// Span is an inclusive run of row or column indices.
type Span struct {
	Lo int
	Hi int
}

// Len returns the number of indices in the run.
func (s Span) Len() int { return s.Hi - s.Lo + 1 }

// ColumnSpan returns the columns covered by the box.
func (b BoundingBox) ColumnSpan() Span { return Span{Lo: b.Left, Hi: b.Right} }

// RowSpan returns the rows covered by the box.
func (b BoundingBox) RowSpan() Span { return Span{Lo: b.Top, Hi: b.Bottom} }

// MergeSpans returns the union of the runs as ascending runs that neither
// overlap nor touch. The input is not modified.
func MergeSpans(spans []Span) []Span {
	sorted := slices.Clone(spans)
	slices.SortFunc(sorted, func(a, b Span) int { return cmp.Compare(a.Lo, b.Lo) })

	out := make([]Span, 0, len(sorted))
	for _, s := range sorted {
		if n := len(out); n > 0 && s.Lo <= out[n-1].Hi+1 {
			out[n-1].Hi = max(out[n-1].Hi, s.Hi)
			continue
		}
		out = append(out, s)
	}
	return out
}

// CoveredLen returns the number of indices in runs produced by MergeSpans.
func CoveredLen(spans []Span) int {
	n := 0
	for _, s := range spans {
		n += s.Len()
	}
	return n
}

// SharedLen returns the number of indices two merged run lists have in
// common.
func SharedLen(a, b []Span) int {
	n := 0
	for i, j := 0, 0; i < len(a) && j < len(b); {
		n += max(0, min(a[i].Hi, b[j].Hi)-max(a[i].Lo, b[j].Lo)+1)
		if a[i].Hi < b[j].Hi {
			i++
		} else {
			j++
		}
	}
	return n
}
