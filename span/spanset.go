package span

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// SpanSet is an ordered sequence of spans that are pairwise disjoint and
// not adjacent: adjacent or overlapping spans are merged at construction
// time (spec.md §3). It caches the convex-hull bounding span.
type SpanSet[T constraints.Ordered] struct {
	spans  []Span[T]
	bounds Span[T]
}

// NewSpanSet builds a SpanSet from an arbitrary (possibly unsorted,
// possibly overlapping) slice of spans, sorting, merging overlaps and
// adjacent spans, and caching the bounding span. An empty input yields an
// empty, valid SpanSet (zero spans, no bounds).
func NewSpanSet[T constraints.Ordered](spans []Span[T]) SpanSet[T] {
	if len(spans) == 0 {
		return SpanSet[T]{}
	}
	sorted := make([]Span[T], len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Lower != sorted[j].Lower {
			return sorted[i].Lower < sorted[j].Lower
		}
		return sorted[i].LowerInc && !sorted[j].LowerInc
	})

	merged := make([]Span[T], 0, len(sorted))
	cur := sorted[0]
	for _, s := range sorted[1:] {
		if cur.Overlaps(s) || cur.Adjacent(s) {
			cur = mergeTwo(cur, s)
			continue
		}
		merged = append(merged, cur)
		cur = s
	}
	merged = append(merged, cur)

	ss := SpanSet[T]{spans: merged}
	ss.bounds = Span[T]{
		Lower: merged[0].Lower, LowerInc: merged[0].LowerInc,
		Upper: merged[len(merged)-1].Upper, UpperInc: merged[len(merged)-1].UpperInc,
	}
	return ss
}

func mergeTwo[T constraints.Ordered](a, b Span[T]) Span[T] {
	lower, lowerInc := a.Lower, a.LowerInc
	if b.Lower < lower || (b.Lower == lower && b.LowerInc) {
		lower, lowerInc = b.Lower, b.LowerInc || a.LowerInc && a.Lower == b.Lower
	}
	upper, upperInc := a.Upper, a.UpperInc
	if b.Upper > upper || (b.Upper == upper && b.UpperInc) {
		upper, upperInc = b.Upper, b.UpperInc
	} else if b.Upper == upper {
		upperInc = upperInc || b.UpperInc
	}
	return Span[T]{Lower: lower, Upper: upper, LowerInc: lowerInc, UpperInc: upperInc}
}

// Spans returns the set's canonical (sorted, disjoint, non-adjacent) spans.
// Callers must not mutate the returned slice.
func (ss SpanSet[T]) Spans() []Span[T] { return ss.spans }

// Len returns the number of disjoint spans.
func (ss SpanSet[T]) Len() int { return len(ss.spans) }

// IsEmpty reports whether the set has no spans.
func (ss SpanSet[T]) IsEmpty() bool { return len(ss.spans) == 0 }

// Bounds returns the convex-hull bounding span, and false if the set is
// empty.
func (ss SpanSet[T]) Bounds() (Span[T], bool) {
	if ss.IsEmpty() {
		return Span[T]{}, false
	}
	return ss.bounds, true
}

// Find reports whether v is contained by any span in the set, using binary
// search over the sorted spans: O(log n).
func (ss SpanSet[T]) Find(v T) bool {
	i := sort.Search(len(ss.spans), func(i int) bool {
		return ss.spans[i].Upper > v || (ss.spans[i].Upper == v && ss.spans[i].UpperInc)
	})
	if i == len(ss.spans) {
		return false
	}
	return ss.spans[i].ContainsElement(v)
}

// ContainsElement is an alias of Find, named to mirror Span.ContainsElement.
func (ss SpanSet[T]) ContainsElement(v T) bool { return ss.Find(v) }

// Union returns the spanset union of ss and other. The result may decompose
// into multiple disjoint spans even when ss and other are each a single
// span, if they don't overlap or touch.
func (ss SpanSet[T]) Union(other SpanSet[T]) SpanSet[T] {
	all := make([]Span[T], 0, len(ss.spans)+len(other.spans))
	all = append(all, ss.spans...)
	all = append(all, other.spans...)
	return NewSpanSet(all)
}

// UnionSpan unions ss with a single span.
func (ss SpanSet[T]) UnionSpan(s Span[T]) SpanSet[T] {
	return ss.Union(NewSpanSet([]Span[T]{s}))
}

// Intersection returns the spanset intersection of ss and other.
func (ss SpanSet[T]) Intersection(other SpanSet[T]) SpanSet[T] {
	var out []Span[T]
	i, j := 0, 0
	for i < len(ss.spans) && j < len(other.spans) {
		a, b := ss.spans[i], other.spans[j]
		if inter, ok := a.Intersection(b); ok {
			out = append(out, inter)
		}
		if a.Upper < b.Upper || (a.Upper == b.Upper && !a.UpperInc && b.UpperInc) {
			i++
		} else {
			j++
		}
	}
	return NewSpanSet(out)
}

// Difference returns ss minus other, always as a SpanSet (possibly empty).
func (ss SpanSet[T]) Difference(other SpanSet[T]) SpanSet[T] {
	var out []Span[T]
	for _, a := range ss.spans {
		remaining := []Span[T]{a}
		for _, b := range other.spans {
			var next []Span[T]
			for _, r := range remaining {
				next = append(next, subtractOne(r, b)...)
			}
			remaining = next
		}
		out = append(out, remaining...)
	}
	return NewSpanSet(out)
}

func subtractOne[T constraints.Ordered](a, b Span[T]) []Span[T] {
	if !a.Overlaps(b) {
		return []Span[T]{a}
	}
	var out []Span[T]
	// left remainder: [a.Lower, b.Lower)
	if a.Lower < b.Lower || (a.Lower == b.Lower && a.LowerInc && !b.LowerInc) {
		if left, err := Make(a.Lower, b.Lower, a.LowerInc, !b.LowerInc); err == nil {
			out = append(out, left)
		}
	}
	// right remainder: (b.Upper, a.Upper]
	if a.Upper > b.Upper || (a.Upper == b.Upper && a.UpperInc && !b.UpperInc) {
		if right, err := Make(b.Upper, a.Upper, !b.UpperInc, a.UpperInc); err == nil {
			out = append(out, right)
		}
	}
	return out
}

// Contains reports whether every value of other is contained in ss.
func (ss SpanSet[T]) Contains(other SpanSet[T]) bool {
	return other.Difference(ss).IsEmpty()
}

// Overlaps reports whether ss and other share at least one value.
func (ss SpanSet[T]) Overlaps(other SpanSet[T]) bool {
	return !ss.Intersection(other).IsEmpty()
}
