package charclass

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ava12/lagrum/internal/bitset"
)

// Range is an inclusive range of codepoints.
type Range struct {
	Low, High rune
}

// Set is a set of codepoints. ASCII codepoints are kept in a bitmap, others in a bitset.
// A set must not be modified once it is used by a grammar.
type Set struct {
	ascii [2]uint64
	rest  *bitset.Set
}

func New(ranges ...Range) *Set {
	s := &Set{rest: bitset.New()}
	for _, r := range ranges {
		s.AddRange(r.Low, r.High)
	}
	return s
}

// Of returns a set containing listed codepoints.
func Of(runes ...rune) *Set {
	return New().Add(runes...)
}

func (s *Set) Add(runes ...rune) *Set {
	for _, r := range runes {
		s.AddRange(r, r)
	}
	return s
}

// AddRange adds codepoints from low to high inclusive.
func (s *Set) AddRange(low, high rune) *Set {
	for ; low <= high && low < utf8.RuneSelf; low++ {
		s.ascii[low>>6] |= 1 << (low & 63)
	}
	if low <= high {
		s.rest.AddRange(int(low), int(high))
	}
	return s
}

func (s *Set) Union(t *Set) *Set {
	s.ascii[0] |= t.ascii[0]
	s.ascii[1] |= t.ascii[1]
	s.rest.Union(t.rest)
	return s
}

func (s *Set) Contains(r rune) bool {
	if r < 0 {
		return false
	}
	if r < utf8.RuneSelf {
		return s.ascii[r>>6]&(1<<(r&63)) != 0
	}
	return s.rest.Contains(int(r))
}

func (s *Set) IsEmpty() bool {
	return s.ascii[0] == 0 && s.ascii[1] == 0 && s.rest.IsEmpty()
}

func (s *Set) Len() int {
	return len(s.Runes())
}

// Overlaps reports whether s and t have a common codepoint.
func (s *Set) Overlaps(t *Set) bool {
	return s.ascii[0]&t.ascii[0] != 0 || s.ascii[1]&t.ascii[1] != 0 || s.rest.Overlaps(t.rest)
}

// Runes returns set members in ascending order.
func (s *Set) Runes() []rune {
	var result []rune
	for r := rune(0); r < utf8.RuneSelf; r++ {
		if s.Contains(r) {
			result = append(result, r)
		}
	}
	for _, item := range s.rest.ToSlice() {
		result = append(result, rune(item))
	}
	return result
}

// Ranges returns set members as ascending list of ranges.
func (s *Set) Ranges() []Range {
	var result []Range
	for _, r := range s.Runes() {
		l := len(result)
		if l > 0 && result[l-1].High == r-1 {
			result[l-1].High = r
		} else {
			result = append(result, Range{r, r})
		}
	}
	return result
}

// String returns set contents in grammar description notation without brackets, e.g. `a-z\-_`.
func (s *Set) String() string {
	var sb strings.Builder
	for _, r := range s.Ranges() {
		sb.WriteString(EscapeRune(r.Low))
		switch {
		case r.High == r.Low:
		case r.High == r.Low+1:
			sb.WriteString(EscapeRune(r.High))
		default:
			sb.WriteByte('-')
			sb.WriteString(EscapeRune(r.High))
		}
	}
	return sb.String()
}

// EscapeRune returns r as it should be written inside a character class.
func EscapeRune(r rune) string {
	switch r {
	case '\\', ']', '[', '-', '^':
		return `\` + string(r)
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	}

	switch {
	case r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0):
		return `\x` + pad(strconv.FormatInt(int64(r), 16), 2)
	case r > 0xffff:
		return `\U` + pad(strconv.FormatInt(int64(r), 16), 8)
	case r > 0x7f && !isPrintable(r):
		return `\u` + pad(strconv.FormatInt(int64(r), 16), 4)
	}
	return string(r)
}

func isPrintable(r rune) bool {
	return strconv.IsPrint(r) && r != 0xad
}

func pad(s string, l int) string {
	return strings.Repeat("0", l-len(s)) + s
}
