/*
Package charclass holds the codepoint sets used to classify statute text.

Statutes were digitized from historical sources using various single-byte encodings
(Windows-1252, ISO 8859-1, DOS code pages, Mac Roman). After decoding, the text contains
typographic symbols, ligatures, and other artifacts of those encodings. Each category
is built from a few contiguous ranges plus an inventory of individual codepoints;
every inventory entry carries a note telling why the codepoint is there.

Categories are disjoint. A codepoint that belongs to none of them is classified as Other;
this includes C1 control codes (U+0080-U+009F) which appear when Windows-1252 text
has been decoded as ISO 8859-1, and U+FFFD produced for undecodable bytes.
*/
package charclass

// Category is a class of codepoints.
type Category int

const (
	Other Category = iota
	Word
	Digit
	Punctuation
	Whitespace
)

var categoryNames = []string{"other", "word", "digit", "punctuation", "whitespace"}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// Entry describes a codepoint added to a category outside of its base ranges.
type Entry struct {
	Rune     rune
	Category Category
	Note     string
}

var baseRanges = map[Category][]Range{
	Word: {
		{'A', 'Z'}, {'a', 'z'},
		{0xc0, 0xd6}, {0xd8, 0xf6}, {0xf8, 0xff},
	},
	Digit: {
		{'0', '9'},
	},
	Punctuation: {
		{'!', '/'}, {':', '@'}, {'[', '`'}, {'{', '~'},
	},
	Whitespace: {
		{'\t', '\r'}, {' ', ' '},
	},
}

// Inventory lists codepoints added to categories individually.
var Inventory = []Entry{
	{0x0152, Word, "capital ligature OE, Windows-1252 0x8C"},
	{0x0153, Word, "small ligature oe, Windows-1252 0x9C"},
	{0x0160, Word, "capital S with caron, Windows-1252 0x8A"},
	{0x0161, Word, "small s with caron, Windows-1252 0x9A"},
	{0x017d, Word, "capital Z with caron, Windows-1252 0x8E"},
	{0x017e, Word, "small z with caron, Windows-1252 0x9E"},
	{0x0178, Word, "capital Y with diaeresis, Windows-1252 0x9F"},
	{0x0192, Word, "small f with hook, Windows-1252 0x83, OCR output for italic f"},
	{0x00aa, Word, "feminine ordinal indicator, part of abbreviations"},
	{0x00ba, Word, "masculine ordinal indicator, part of abbreviations"},
	{0x00b5, Word, "micro sign, used as a letter in unit names"},
	{0xfb01, Word, "ligature fi, produced by PDF text extraction"},
	{0xfb02, Word, "ligature fl, produced by PDF text extraction"},

	{0x00a7, Punctuation, "section sign"},
	{0x00b6, Punctuation, "pilcrow"},
	{0x00ab, Punctuation, "left guillemet, used as opening quote"},
	{0x00bb, Punctuation, "right guillemet, Swedish quotes use it on both sides"},
	{0x2018, Punctuation, "left single quote, Windows-1252 0x91"},
	{0x2019, Punctuation, "right single quote, Windows-1252 0x92"},
	{0x201a, Punctuation, "single low quote, Windows-1252 0x82"},
	{0x201c, Punctuation, "left double quote, Windows-1252 0x93"},
	{0x201d, Punctuation, "right double quote, Windows-1252 0x94, Swedish quotes use it on both sides"},
	{0x201e, Punctuation, "double low quote, Windows-1252 0x84"},
	{0x2039, Punctuation, "single left angle quote, Windows-1252 0x8B"},
	{0x203a, Punctuation, "single right angle quote, Windows-1252 0x9B"},
	{0x2013, Punctuation, "en dash, Windows-1252 0x96, used for ranges and in dates"},
	{0x2014, Punctuation, "em dash, Windows-1252 0x97, used for ranges and in dates"},
	{0x2026, Punctuation, "ellipsis, Windows-1252 0x85"},
	{0x2022, Punctuation, "bullet, Windows-1252 0x95, list items"},
	{0x2020, Punctuation, "dagger, Windows-1252 0x86, footnote marker"},
	{0x2021, Punctuation, "double dagger, Windows-1252 0x87, footnote marker"},
	{0x2030, Punctuation, "per mille sign, Windows-1252 0x89"},
	{0x2122, Punctuation, "trade mark sign, Windows-1252 0x99"},
	{0x02c6, Punctuation, "modifier circumflex, Windows-1252 0x88"},
	{0x02dc, Punctuation, "small tilde, Windows-1252 0x98"},
	{0x20ac, Punctuation, "euro sign, Windows-1252 0x80"},
	{0x00a2, Punctuation, "cent sign"},
	{0x00a3, Punctuation, "pound sign"},
	{0x00a4, Punctuation, "currency sign, ISO 8859-1 placeholder for local currency"},
	{0x00a5, Punctuation, "yen sign"},
	{0x00a1, Punctuation, "inverted exclamation mark"},
	{0x00bf, Punctuation, "inverted question mark"},
	{0x00a6, Punctuation, "broken bar"},
	{0x00a8, Punctuation, "diaeresis, stray from decomposed letters"},
	{0x00a9, Punctuation, "copyright sign"},
	{0x00ac, Punctuation, "not sign"},
	{0x00ad, Punctuation, "soft hyphen, left over from hyphenated print layout"},
	{0x00ae, Punctuation, "registered sign"},
	{0x00af, Punctuation, "macron"},
	{0x00b0, Punctuation, "degree sign"},
	{0x00b1, Punctuation, "plus-minus sign"},
	{0x00b2, Punctuation, "superscript two, footnote marker"},
	{0x00b3, Punctuation, "superscript three, footnote marker"},
	{0x00b9, Punctuation, "superscript one, footnote marker"},
	{0x00b4, Punctuation, "acute accent, erroneously used instead of an apostrophe in some documents"},
	{0x00b7, Punctuation, "middle dot"},
	{0x00b8, Punctuation, "cedilla"},
	{0x00bc, Punctuation, "vulgar fraction one quarter"},
	{0x00bd, Punctuation, "vulgar fraction one half"},
	{0x00be, Punctuation, "vulgar fraction three quarters"},
	{0x00d7, Punctuation, "multiplication sign"},
	{0x00f7, Punctuation, "division sign"},

	{0x00a0, Whitespace, "no-break space, Windows-1252 and ISO 8859-1 0xA0"},
	{0x2002, Whitespace, "en space, produced by PDF text extraction"},
	{0x2003, Whitespace, "em space, produced by PDF text extraction"},
	{0x2009, Whitespace, "thin space, used between number groups"},
	{0x200b, Whitespace, "zero width space, produced by PDF text extraction"},
	{0x2028, Whitespace, "line separator"},
}

var (
	WordSet        = build(Word)
	DigitSet       = build(Digit)
	PunctuationSet = build(Punctuation)
	WhitespaceSet  = build(Whitespace)
)

var named = map[string]*Set{
	Word.String():        WordSet,
	Digit.String():       DigitSet,
	Punctuation.String(): PunctuationSet,
	Whitespace.String():  WhitespaceSet,
}

func build(c Category) *Set {
	s := New(baseRanges[c]...)
	for _, e := range Inventory {
		if e.Category == c {
			s.Add(e.Rune)
		}
	}
	return s
}

// Named returns predefined set by category name ("word", "digit", "punctuation", "whitespace").
// Grammar descriptions refer to these sets as [:name:].
// Returned set must not be modified.
func Named(name string) (*Set, bool) {
	s, has := named[name]
	return s, has
}

// Names returns names of predefined sets in category order.
func Names() []string {
	return categoryNames[Word:]
}

// Classify returns the category of r.
func Classify(r rune) Category {
	switch {
	case WordSet.Contains(r):
		return Word
	case DigitSet.Contains(r):
		return Digit
	case PunctuationSet.Contains(r):
		return Punctuation
	case WhitespaceSet.Contains(r):
		return Whitespace
	}
	return Other
}

// Lookup returns inventory entry for r, false if r is not listed individually.
func Lookup(r rune) (Entry, bool) {
	for _, e := range Inventory {
		if e.Rune == r {
			return e, true
		}
	}
	return Entry{}, false
}
