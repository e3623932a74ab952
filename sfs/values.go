package sfs

import (
	"fmt"
	"strconv"

	"github.com/ava12/lagrum/segment"
	"github.com/ava12/lagrum/tree"
)

// Date is a recognized calendar date. Values are not validated beyond surface patterns.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Section is a section number with optional letter suffix, e.g. "3 a".
type Section struct {
	Number int    `json:"number"`
	Letter string `json:"letter,omitempty"`
}

func (s Section) String() string {
	if s.Letter == "" {
		return strconv.Itoa(s.Number)
	}
	return strconv.Itoa(s.Number) + " " + s.Letter
}

// SectionRef is a reference to a section, its piece and sentence. Zero Piece or Sentence means not specified.
type SectionRef struct {
	Section
	Piece    int `json:"piece,omitempty"`
	Sentence int `json:"sentence,omitempty"`
}

func (r SectionRef) String() string {
	result := r.Section.String() + " §"
	if r.Piece > 0 {
		result += " " + strconv.Itoa(r.Piece) + " st."
	}
	if r.Sentence > 0 {
		result += " " + strconv.Itoa(r.Sentence) + " men."
	}
	return result
}

// SectionRange is a range of sections, e.g. "3-5 §§".
type SectionRange struct {
	From Section `json:"from"`
	To   Section `json:"to"`
}

func (r SectionRange) String() string {
	return r.From.String() + "-" + r.To.String() + " §§"
}

// Number is a statute number, e.g. "1994:1000".
type Number struct {
	Year   int `json:"year"`
	Serial int `json:"serial"`
}

func (n Number) String() string {
	return strconv.Itoa(n.Year) + ":" + strconv.Itoa(n.Serial)
}

var monthNames = []string{
	"januari", "februari", "mars", "april", "maj", "juni",
	"juli", "augusti", "september", "oktober", "november", "december",
}

var ordinalWords = []string{
	"första", "andra", "tredje", "fjärde", "femte",
	"sjätte", "sjunde", "åttonde", "nionde", "tionde",
}

// Values returns decoders for entity rules.
func Values() segment.Values {
	return segment.Values{
		NumberRule:        decodeInt,
		LongYearRule:      decodeInt,
		ShortYearRule:     decodeInt,
		YearRule:          decodeYear,
		ISODateRule:       decodeISODate,
		TextualDateRule:   decodeTextualDate,
		OrdinalRule:       decodeOrdinal,
		SectionRefRule:    decodeSectionRef,
		SectionRangeRule:  decodeSectionRange,
		SFSNumberRule:     decodeNumber,
		MonthNumberRule:   decodeInt,
		MonthNameRule:     decodeMonthName,
		SectionNumberRule: decodeSection,
	}
}

// Decode returns structured value of n using Values. Returns false if n has no value.
func Decode(n *tree.Node) (any, bool) {
	f := Values()[n.Rule]
	if f == nil {
		return nil, false
	}
	return f(n)
}

func decodeInt(n *tree.Node) (any, bool) {
	i, e := strconv.Atoi(n.Text)
	return i, e == nil
}

func childInt(n *tree.Node, rule string) (int, bool) {
	c := tree.Child(n, rule)
	if c == nil {
		return 0, false
	}

	i, e := strconv.Atoi(c.Text)
	return i, e == nil
}

func decodeYear(n *tree.Node) (any, bool) {
	c := tree.Child(n, LongYearRule, ShortYearRule)
	if c == nil {
		return nil, false
	}
	return decodeInt(c)
}

func decodeISODate(n *tree.Node) (any, bool) {
	year, hasYear := childInt(n, LongYearRule)
	month, hasMonth := childInt(n, MonthNumberRule)
	digits := tree.FindAll(n, tree.IsA("digit"))
	if !hasYear || !hasMonth || len(digits) != 2 {
		return nil, false
	}

	day, e := strconv.Atoi(digits[0].Text + digits[1].Text)
	if e != nil {
		return nil, false
	}
	return Date{year, month, day}, true
}

func indexOf(list []string, s string) int {
	for i, item := range list {
		if item == s {
			return i
		}
	}
	return -1
}

func decodeMonthName(n *tree.Node) (any, bool) {
	i := indexOf(monthNames, n.Text)
	return i + 1, i >= 0
}

func decodeTextualDate(n *tree.Node) (any, bool) {
	day, hasDay := childInt(n, NumberRule)
	year, hasYear := childInt(n, LongYearRule)
	month := tree.Child(n, MonthNameRule)
	if !hasDay || !hasYear || month == nil {
		return nil, false
	}

	m := indexOf(monthNames, month.Text) + 1
	if m == 0 {
		return nil, false
	}
	return Date{year, m, day}, true
}

func decodeOrdinal(n *tree.Node) (any, bool) {
	if i := indexOf(ordinalWords, n.Text); i >= 0 {
		return i + 1, true
	}
	return decodeInt(n)
}

func section(n *tree.Node) (Section, bool) {
	number, has := childInt(n, NumberRule)
	if !has {
		return Section{}, false
	}

	result := Section{Number: number}
	if letter := tree.Child(n, "SectionLetter"); letter != nil {
		result.Letter = letter.Text
	}
	return result, true
}

func decodeSection(n *tree.Node) (any, bool) {
	s, has := section(n)
	return s, has
}

func ordinalOf(n *tree.Node) int {
	o := tree.Child(n, OrdinalRule)
	if o == nil {
		return 0
	}

	v, _ := decodeOrdinal(o)
	i, _ := v.(int)
	return i
}

func decodeSectionRef(n *tree.Node) (any, bool) {
	s, has := section(tree.Child(n, SectionNumberRule))
	if !has {
		return nil, false
	}

	result := SectionRef{Section: s}
	if piece := tree.Child(n, "PieceRef"); piece != nil {
		result.Piece = ordinalOf(piece)
	}
	if sentence := tree.Child(n, "SentenceRef"); sentence != nil {
		result.Sentence = ordinalOf(sentence)
	}
	return result, true
}

func decodeSectionRange(n *tree.Node) (any, bool) {
	numbers := tree.FindAll(n, tree.IsA(SectionNumberRule))
	if len(numbers) != 2 {
		return nil, false
	}

	from, hasFrom := section(numbers[0])
	to, hasTo := section(numbers[1])
	if !hasFrom || !hasTo {
		return nil, false
	}
	return SectionRange{from, to}, true
}

func decodeNumber(n *tree.Node) (any, bool) {
	year, hasYear := childInt(n, LongYearRule)
	serial, hasSerial := childInt(n, NumberRule)
	if !hasYear || !hasSerial {
		return nil, false
	}
	return Number{year, serial}, true
}
