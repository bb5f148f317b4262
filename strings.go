package alphamap

import (
	"strings"
	"unicode/utf8"
)

// charStrLen returns the logical length of a 0-terminated code point
// sequence: the prefix before the first terminator, or the whole slice
// when no terminator is present.
func charStrLen(cs []Char) int {
	for i, c := range cs {
		if c == Terminator {
			return i
		}
	}
	return len(cs)
}

func indexStrLen(is []Index) int {
	for i, ix := range is {
		if ix == 0 {
			return i
		}
	}
	return len(is)
}

// ToIndexString converts a 0-terminated code point sequence to a freshly
// allocated, 0-terminated index sequence of the same logical length. The
// single allocation is n+1 elements, n being the logical length. Code
// points outside the alphabet convert to InvalidIndex; the conversion
// itself never fails.
func (m *Map) ToIndexString(cs []Char) []Index {
	n := charStrLen(cs)
	out := make([]Index, n+1)
	for i := 0; i < n; i++ {
		out[i], _ = m.ToIndex(cs[i])
	}
	// out[n] is already the zero terminator.
	return out
}

// ToCharString converts a 0-terminated index sequence to a freshly
// allocated, 0-terminated code point sequence of the same logical
// length. Indices outside the alphabet convert to InvalidChar; the
// conversion itself never fails.
func (m *Map) ToCharString(is []Index) []Char {
	n := indexStrLen(is)
	out := make([]Char, n+1)
	for i := 0; i < n; i++ {
		out[i], _ = m.ToChar(is[i])
	}
	return out
}

// Chars converts a UTF-8 string to a 0-terminated code point sequence.
func Chars(s string) []Char {
	out := make([]Char, 0, utf8.RuneCountInString(s)+1)
	for _, r := range s {
		out = append(out, Char(r))
	}
	return append(out, Terminator)
}

// String converts a 0-terminated code point sequence back to a UTF-8
// string. Conversion stops at the terminator; values that are not valid
// Unicode code points (including InvalidChar) render as U+FFFD.
func String(cs []Char) string {
	var sb strings.Builder
	for _, c := range cs {
		if c == Terminator {
			break
		}
		r := rune(c)
		if !utf8.ValidRune(r) {
			r = utf8.RuneError
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
