package attributed

import "fmt"

// Range is a span of character offsets [Loc, Loc+Len).
type Range struct {
	Loc, Len int
}

// Rg is shorthand for Range{Loc: loc, Len: n}.
func Rg(loc, n int) Range {
	return Range{Loc: loc, Len: n}
}

// End returns the offset one past the last character of r.
func (r Range) End() int {
	return r.Loc + r.Len
}

// IsEmpty reports whether r covers no characters.
func (r Range) IsEmpty() bool {
	return r.Len <= 0
}

// Contains reports whether offset i lies inside r.
func (r Range) Contains(i int) bool {
	return i >= r.Loc && i < r.End()
}

// Intersect returns the overlap of r and s. Disjoint ranges produce an
// empty range located at the larger start.
func (r Range) Intersect(s Range) Range {
	lo := max(r.Loc, s.Loc)
	hi := min(r.End(), s.End())
	if hi < lo {
		return Range{Loc: lo}
	}
	return Range{Loc: lo, Len: hi - lo}
}

// Clamp limits r to [0, n).
func (r Range) Clamp(n int) Range {
	lo := min(max(r.Loc, 0), n)
	hi := min(max(r.End(), lo), n)
	return Range{Loc: lo, Len: hi - lo}
}

func (r Range) String() string {
	return fmt.Sprintf("{%d, %d}", r.Loc, r.Len)
}
