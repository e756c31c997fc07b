// Package attributed implements an attributed string: text plus keyed
// attribute values over character ranges.
//
// Offsets are rune offsets. Attributes are stored as a sequence of runs,
// each covering a number of runes with one attribute set. Runs are kept
// normalized: no empty runs and no two neighbouring runs with equal
// attribute sets.
package attributed

import (
	"strconv"
	"strings"
)

// run is a contiguous range of runes sharing one attribute set.
type run struct {
	n     int
	attrs Attributes
}

// String is a mutable attributed string.
type String struct {
	text []rune
	runs []run
	gen  uint64
}

// New returns a String holding s with attrs applied to all of it.
func New(s string, attrs Attributes) *String {
	as := &String{}
	as.Replace(Range{}, s, attrs)
	return as
}

// Len returns the length in runes.
func (s *String) Len() int {
	if s == nil {
		return 0
	}
	return len(s.text)
}

// Generation changes whenever the text or its attributes are mutated.
// Layout caches compare it to decide when to recompute.
func (s *String) Generation() uint64 {
	if s == nil {
		return 0
	}
	return s.gen
}

// FullRange returns {0, Len()}.
func (s *String) FullRange() Range {
	return Range{Len: s.Len()}
}

// String returns the plain text.
func (s *String) String() string {
	if s == nil {
		return ""
	}
	return string(s.text)
}

// Substring returns the text in r. r is clamped to the string.
func (s *String) Substring(r Range) string {
	r = r.Clamp(s.Len())
	return string(s.text[r.Loc:r.End()])
}

// RuneAt returns the rune at offset i.
func (s *String) RuneAt(i int) (rune, bool) {
	if i < 0 || i >= s.Len() {
		return 0, false
	}
	return s.text[i], true
}

// runAt returns the index of the run containing offset i and the offset
// at which that run starts.
func (s *String) runAt(i int) (int, int) {
	start := 0
	for ri, r := range s.runs {
		if i < start+r.n {
			return ri, start
		}
		start += r.n
	}
	return -1, start
}

// Attributes returns a copy of the attributes at offset i along with the
// range of the run holding them. Out of range offsets return nil.
func (s *String) Attributes(i int) (Attributes, Range) {
	if i < 0 || i >= s.Len() {
		return nil, Range{Loc: i}
	}
	ri, start := s.runAt(i)
	r := s.runs[ri]
	return r.attrs.Copy(), Range{Loc: start, Len: r.n}
}

// Attribute returns the value of k at offset i.
func (s *String) Attribute(k Key, i int) (any, bool) {
	v, _, ok := s.AttributeRange(k, i)
	return v, ok
}

// AttributeRange returns the value of k at offset i and the longest
// range around i over which k keeps an equal value.
func (s *String) AttributeRange(k Key, i int) (any, Range, bool) {
	if i < 0 || i >= s.Len() {
		return nil, Range{Loc: i}, false
	}
	ri, start := s.runAt(i)
	v := s.runs[ri].attrs[k]

	lo := start
	for j := ri - 1; j >= 0 && ValuesEqual(s.runs[j].attrs[k], v); j-- {
		lo -= s.runs[j].n
	}
	hi := start + s.runs[ri].n
	for j := ri + 1; j < len(s.runs) && ValuesEqual(s.runs[j].attrs[k], v); j++ {
		hi += s.runs[j].n
	}
	return v, Range{Loc: lo, Len: hi - lo}, v != nil
}

// EnumerateAttribute calls fn for each maximal subrange of in over which
// k has an equal value, including subranges where k is absent (v is then
// nil). With reverse set, subranges are visited from the end. fn returns
// false to stop.
func (s *String) EnumerateAttribute(k Key, in Range, reverse bool, fn func(v any, r Range) bool) {
	in = in.Clamp(s.Len())
	if in.IsEmpty() {
		return
	}
	type seg struct {
		v any
		r Range
	}
	var segs []seg
	start := 0
	for _, r := range s.runs {
		rr := Range{Loc: start, Len: r.n}.Intersect(in)
		start += r.n
		if rr.IsEmpty() {
			continue
		}
		v := r.attrs[k]
		if n := len(segs); n > 0 && ValuesEqual(segs[n-1].v, v) {
			segs[n-1].r.Len += rr.Len
			continue
		}
		segs = append(segs, seg{v: v, r: rr})
	}
	if reverse {
		for i := len(segs) - 1; i >= 0; i-- {
			if !fn(segs[i].v, segs[i].r) {
				return
			}
		}
		return
	}
	for _, sg := range segs {
		if !fn(sg.v, sg.r) {
			return
		}
	}
}

// split ensures a run boundary at offset i and returns the index of the
// run starting there (len(s.runs) when i is the end).
func (s *String) split(i int) int {
	start := 0
	for ri, r := range s.runs {
		if i == start {
			return ri
		}
		if i < start+r.n {
			head := run{n: i - start, attrs: r.attrs}
			tail := run{n: r.n - head.n, attrs: r.attrs.Copy()}
			s.runs = append(s.runs[:ri], append([]run{head, tail}, s.runs[ri+1:]...)...)
			return ri + 1
		}
		start += r.n
	}
	return len(s.runs)
}

// mutate applies fn to the attribute set of every run inside r.
func (s *String) mutate(r Range, fn func(a Attributes)) {
	r = r.Clamp(s.Len())
	if r.IsEmpty() {
		return
	}
	lo := s.split(r.Loc)
	hi := s.split(r.End())
	for i := lo; i < hi; i++ {
		a := s.runs[i].attrs.Copy()
		fn(a)
		s.runs[i].attrs = a
	}
	s.normalize()
}

// AddAttribute sets k to v over r. A nil v removes k.
func (s *String) AddAttribute(k Key, v any, r Range) {
	s.mutate(r, func(a Attributes) {
		if v == nil {
			delete(a, k)
			return
		}
		a[k] = v
	})
}

// AddAttributes merges attrs into every run over r.
func (s *String) AddAttributes(attrs Attributes, r Range) {
	s.mutate(r, func(a Attributes) {
		for k, v := range attrs {
			if v == nil {
				delete(a, k)
				continue
			}
			a[k] = v
		}
	})
}

// RemoveAttribute deletes k over r.
func (s *String) RemoveAttribute(k Key, r Range) {
	s.AddAttribute(k, nil, r)
}

// SetAttributes replaces the attribute set over r with attrs.
func (s *String) SetAttributes(attrs Attributes, r Range) {
	s.mutate(r, func(a Attributes) {
		for k := range a {
			delete(a, k)
		}
		for k, v := range attrs {
			if v != nil {
				a[k] = v
			}
		}
	})
}

// Replace substitutes the text in r with text carrying attrs. A nil
// attrs inherits the attributes of the first replaced character, or of
// the character before r when r is empty.
func (s *String) Replace(r Range, text string, attrs Attributes) {
	r = r.Clamp(s.Len())
	if attrs == nil {
		switch {
		case r.Loc < s.Len():
			attrs, _ = s.Attributes(r.Loc)
		case r.Loc > 0:
			attrs, _ = s.Attributes(r.Loc - 1)
		}
	}

	lo := s.split(r.Loc)
	hi := s.split(r.End())
	s.runs = append(s.runs[:lo], s.runs[hi:]...)

	ins := []rune(text)
	tail := append([]rune{}, s.text[r.End():]...)
	s.text = append(append(s.text[:r.Loc], ins...), tail...)

	if len(ins) > 0 {
		nr := run{n: len(ins), attrs: attrs.Copy()}
		s.runs = append(s.runs[:lo], append([]run{nr}, s.runs[lo:]...)...)
	}
	s.normalize()
}

// ReplaceString is Replace with inherited attributes.
func (s *String) ReplaceString(r Range, text string) {
	s.Replace(r, text, nil)
}

// Copy returns a deep copy of s.
func (s *String) Copy() *String {
	c := &String{
		text: append([]rune{}, s.text...),
		runs: make([]run, len(s.runs)),
	}
	for i, r := range s.runs {
		c.runs[i] = run{n: r.n, attrs: r.attrs.Copy()}
	}
	return c
}

// Equal reports whether s and t have the same text and attributes.
func (s *String) Equal(t *String) bool {
	if s.String() != t.String() || len(s.runs) != len(t.runs) {
		return false
	}
	for i := range s.runs {
		if s.runs[i].n != t.runs[i].n || !s.runs[i].attrs.Equal(t.runs[i].attrs) {
			return false
		}
	}
	return true
}

// Append adds text with attrs to the end of s.
func (s *String) Append(text string, attrs Attributes) {
	s.Replace(Range{Loc: s.Len()}, text, attrs)
}

// Index returns the offset of the first occurrence of r at or after
// from, or -1.
func (s *String) Index(r rune, from int) int {
	for i := max(from, 0); i < s.Len(); i++ {
		if s.text[i] == r {
			return i
		}
	}
	return -1
}

// ParagraphRange returns the range of the paragraph containing offset
// i, including its terminating newline.
func (s *String) ParagraphRange(i int) Range {
	n := s.Len()
	i = min(max(i, 0), n)
	lo := i
	for lo > 0 && s.text[lo-1] != '\n' {
		lo--
	}
	hi := i
	for hi < n && s.text[hi] != '\n' {
		hi++
	}
	if hi < n {
		hi++
	}
	return Range{Loc: lo, Len: hi - lo}
}

func (s *String) normalize() {
	s.gen++
	out := s.runs[:0]
	for _, r := range s.runs {
		if r.n <= 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].attrs.Equal(r.attrs) {
			out[n-1].n += r.n
			continue
		}
		out = append(out, r)
	}
	s.runs = out
}

// Dump renders the runs for debugging and tests: one line per run with
// its text and sorted keys.
func (s *String) Dump() string {
	var sb strings.Builder
	start := 0
	for _, r := range s.runs {
		sb.WriteString(Range{Loc: start, Len: r.n}.String())
		sb.WriteString(" ")
		sb.WriteString(strconv.Quote(string(s.text[start : start+r.n])))
		for _, k := range r.attrs.Keys() {
			sb.WriteString(" ")
			sb.WriteString(string(k))
		}
		sb.WriteString("\n")
		start += r.n
	}
	return sb.String()
}
