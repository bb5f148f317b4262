package alphamap

import (
	"fmt"
	"math"
)

// Char is an application-facing character code (a 32-bit code point).
type Char uint32

// Index is the dense alphabet label assigned to an admitted code point.
// Downstream trie structures use Index values as edge labels, so the type
// is deliberately narrower than Char.
type Index uint16

const (
	// Terminator is the reserved "no character" code. It always maps to
	// index 0 and back, independent of the defined ranges.
	Terminator Char = 0

	// InvalidChar is the sentinel reported for an index outside the
	// alphabet. The numeric value matches existing persisted consumers.
	InvalidChar Char = math.MaxUint32

	// InvalidIndex is the sentinel reported for a code point outside the
	// alphabet. It is never assigned to a real code point.
	InvalidIndex Index = math.MaxUint16
)

// Range is an inclusive interval of code points. Ranges are the unit of
// alphabet definition: each range contributes End-Begin+1 consecutive
// indices, in the order the range was added.
type Range struct {
	Begin Char
	End   Char
}

// Contains reports whether c lies within the range.
func (r Range) Contains(c Char) bool {
	return r.Begin <= c && c <= r.End
}

// width returns the number of code points the range spans. The result is
// signed so that decoded-but-invalid ranges (End < Begin) behave like the
// raw arithmetic they were encoded with instead of wrapping.
func (r Range) width() int64 {
	return int64(r.End) - int64(r.Begin) + 1
}

// String renders the range in the textual definition form.
func (r Range) String() string {
	return fmt.Sprintf("[%X,%X]", uint32(r.Begin), uint32(r.End))
}

// Map assigns dense alphabet indices to the code points covered by an
// ordered list of ranges. Indices pack the ranges back to back, in the
// order they were added, starting at 1; index 0 and code point 0 are the
// reserved terminator.
//
// The range list is append-only and deliberately unvalidated beyond
// Begin <= End: ranges are not sorted, merged, or checked for overlap,
// because the add order is what defines the index assignment. Persisted
// maps encode that order, so a map must replay it exactly. When ranges
// overlap, the earliest added range containing a code point decides its
// index, while later ranges still occupy their full index span.
//
// A Map is not safe for concurrent use; callers sharing one across
// goroutines must synchronize externally. All conversions are pure and
// never block.
type Map struct {
	ranges []Range
}

// New creates an empty map. A map with no ranges still converts the
// terminator in both directions.
func New() *Map {
	return &Map{}
}

// AddRange appends the inclusive range [begin, end] to the alphabet.
// It returns an *InvalidRangeError if begin > end, leaving the map
// untouched. Overlap with previously added ranges is not checked.
func (m *Map) AddRange(begin, end Char) error {
	if begin > end {
		return &InvalidRangeError{Begin: begin, End: end}
	}
	m.appendRange(begin, end)
	return nil
}

// appendRange appends without validation. The binary decoder uses it
// directly: decoded pairs are trusted as written.
func (m *Map) appendRange(begin, end Char) {
	m.ranges = append(m.ranges, Range{Begin: begin, End: end})
}

// ToIndex converts a code point to its alphabet index. The terminator
// converts to 0. A code point not covered by any range, or whose packed
// position exceeds the Index space, reports (InvalidIndex, false).
func (m *Map) ToIndex(c Char) (Index, bool) {
	if c == Terminator {
		return 0, true
	}
	base := int64(1)
	for _, r := range m.ranges {
		if !r.Contains(c) {
			base += r.width()
			continue
		}
		ix := base + int64(c) - int64(r.Begin)
		if ix <= 0 || ix >= int64(InvalidIndex) {
			return InvalidIndex, false
		}
		return Index(ix), true
	}
	return InvalidIndex, false
}

// ToChar converts an alphabet index back to its code point. Index 0
// converts to the terminator. An index beyond the packed alphabet
// reports (InvalidChar, false). ToChar is the exact inverse of ToIndex
// for every code point covered by a range.
func (m *Map) ToChar(i Index) (Char, bool) {
	if i == 0 {
		return Terminator, true
	}
	if i == InvalidIndex {
		return InvalidChar, false
	}
	base := int64(1)
	target := int64(i)
	for _, r := range m.ranges {
		if base+r.width()-1 < target {
			base += r.width()
			continue
		}
		c := int64(r.Begin) + (target - base)
		if c < 0 || c > math.MaxUint32 {
			return InvalidChar, false
		}
		return Char(c), true
	}
	return InvalidChar, false
}

// Contains reports whether some range covers c. The terminator is not
// part of any alphabet unless a range explicitly includes code point 0.
func (m *Map) Contains(c Char) bool {
	for _, r := range m.ranges {
		if r.Contains(c) {
			return true
		}
	}
	return false
}

// RangeCount returns the number of ranges in add order.
func (m *Map) RangeCount() int {
	return len(m.ranges)
}

// AlphabetSize returns the total number of indices the ranges occupy,
// i.e. the packed width of the alphabet excluding the terminator slot.
// Overlapping ranges count their full span each.
func (m *Map) AlphabetSize() int {
	var n int64
	for _, r := range m.ranges {
		n += r.width()
	}
	if n < 0 {
		return 0
	}
	return int(n)
}

// Ranges returns a copy of the range list in add order.
func (m *Map) Ranges() []Range {
	out := make([]Range, len(m.ranges))
	copy(out, m.ranges)
	return out
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	c := &Map{ranges: make([]Range, len(m.ranges))}
	copy(c.ranges, m.ranges)
	return c
}
