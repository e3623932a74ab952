package charclass

import (
	"testing"

	. "github.com/ava12/lagrum/internal/test"
)

func TestCategoriesAreDisjoint(t *testing.T) {
	sets := []*Set{WordSet, DigitSet, PunctuationSet, WhitespaceSet}
	for i, s := range sets {
		for j := i + 1; j < len(sets); j++ {
			Assert(t, !s.Overlaps(sets[j]), "%s overlaps %s", Category(i+1), Category(j+1))
		}
	}
}

func TestInventoryIsAnnotated(t *testing.T) {
	seen := map[rune]bool{}
	for _, e := range Inventory {
		Assert(t, e.Note != "", "U+%04X has no note", e.Rune)
		Assert(t, !seen[e.Rune], "U+%04X listed twice", e.Rune)
		Assert(t, e.Category != Other, "U+%04X listed as other", e.Rune)
		seen[e.Rune] = true
		Expect(t, Classify(e.Rune) == e.Category, e.Category, Classify(e.Rune))
	}
}

func TestClassify(t *testing.T) {
	samples := map[rune]Category{
		'a':    Word,
		'Ö':    Word,
		'é':    Word,
		'ﬁ':    Word,
		'7':    Digit,
		'§':    Punctuation,
		'–':    Punctuation,
		'”':    Punctuation,
		0xad:   Punctuation,
		'\n':   Whitespace,
		0xa0:   Whitespace,
		0x8f:   Other,
		0x96:   Other,
		0xfffd: Other,
		'Ж':    Other,
		-1:     Other,
	}

	for r, c := range samples {
		Expect(t, Classify(r) == c, c, Classify(r))
	}
}

func TestNamed(t *testing.T) {
	for _, name := range Names() {
		s, has := Named(name)
		Assert(t, has && !s.IsEmpty(), "expecting predefined set %q", name)
	}
	_, has := Named("other")
	ExpectBool(t, false, has)
}

func TestSetString(t *testing.T) {
	samples := []struct {
		set      *Set
		expected string
	}{
		{New(Range{'a', 'z'}), "a-z"},
		{Of('a', 'b'), "ab"},
		{Of('-', ']', '\\', '^'), `\-\\-\^`},
		{Of('\t', 0x96, 0x2013), `\t\x96–`},
		{Of(0xad), `\u00ad`},
		{New(), ""},
	}

	for _, s := range samples {
		ExpectString(t, s.expected, s.set.String())
	}
}

func TestSetUnion(t *testing.T) {
	s := Of('a').Union(Of(0x2013, 'z'))
	ExpectInt(t, 3, s.Len())
	ExpectBool(t, true, s.Contains(0x2013))
	ExpectBool(t, false, s.Contains('b'))
	ExpectInt(t, 3, len(s.Ranges()))
}
