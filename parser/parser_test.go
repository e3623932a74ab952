package parser

import (
	"sync"
	"testing"

	"github.com/ava12/lagrum/grammar"
	"github.com/ava12/lagrum/internal/test"
	"github.com/ava12/lagrum/langdef"
)

type matchSample struct {
	input    string
	pos      int
	expected string
}

func newTestParser(t *testing.T, desc string) *Parser {
	t.Helper()
	g, e := langdef.ParseString("grammar", desc)
	test.Assert(t, e == nil, "grammar error: %v", e)
	return New(g)
}

// testMatchSamples checks match trees, empty expected tree means no match.
func testMatchSamples(t *testing.T, desc, rule string, samples []matchSample) {
	t.Helper()
	p := newTestParser(t, desc)
	for i, s := range samples {
		n, ok := p.Match(rule, s.input, s.pos)
		if s.expected == "" {
			test.Assert(t, !ok && n == nil, "sample #%d: expecting no match, got %v", i, n)
			continue
		}

		test.Assert(t, ok, "sample #%d: expecting %s, got no match", i, s.expected)
		test.ExpectString(t, s.expected, n.String())
	}
}

func TestLiteral(t *testing.T) {
	testMatchSamples(t, `s ::= "ab"`, "s", []matchSample{
		{"ab", 0, `s("ab")`},
		{"abc", 0, `s("ab")`},
		{"xab", 1, `s("ab")`},
		{"a", 0, ""},
		{"", 0, ""},
		{"ba", 0, ""},
	})
}

func TestEmptyLiteral(t *testing.T) {
	testMatchSamples(t, `s ::= ""`, "s", []matchSample{
		{"", 0, `s("")`},
		{"a", 1, `s("")`},
	})
}

func TestClassRun(t *testing.T) {
	testMatchSamples(t, `w ::= [a-zåäö]+`, "w", []matchSample{
		{"abc1", 0, `w("abc")`},
		{"smärta", 0, `w("smärta")`},
		{"1abc", 0, ""},
		{"", 0, ""},
	})

	testMatchSamples(t, `d ::= [0-9]{2}`, "d", []matchSample{
		{"123", 0, `d("12")`},
		{"1", 0, ""},
		{"1a", 0, ""},
	})

	testMatchSamples(t, `d ::= [0-9]?`, "d", []matchSample{
		{"12", 0, `d("1")`},
		{"a", 0, `d("")`},
	})
}

func TestNegatedClass(t *testing.T) {
	p := newTestParser(t, `o ::= [^[:word:][:digit:][:punctuation:][:whitespace:]]`)
	samples := []struct {
		input, text string
	}{
		{"\x8fdef", "\x8f"},
		{"☃ ", "☃"},
		{"\xff\xfe", "\xff"},
		{"\U0001F600x", "\U0001F600"},
	}
	for _, s := range samples {
		n, ok := p.Match("o", s.input, 0)
		test.Assert(t, ok, "%q: expecting match", s.input)
		test.ExpectString(t, s.text, n.Text)
	}

	for _, input := range []string{"a", "7", ".", " ", ""} {
		_, ok := p.Match("o", input, 0)
		test.Assert(t, !ok, "%q: expecting no match", input)
	}
}

func TestInvalidBytesDoNotMatchPositiveClass(t *testing.T) {
	p := newTestParser(t, `s ::= [\ufffd]`)
	n, ok := p.Match("s", "\ufffd", 0)
	test.Assert(t, ok, "expecting match for U+FFFD")
	test.ExpectInt(t, 3, n.Len())

	_, ok = p.Match("s", "\xff", 0)
	test.Assert(t, !ok, "expecting no match for invalid byte")
}

func TestOrderedChoice(t *testing.T) {
	desc := "s ::= A / B\nA ::= 'st'\nB ::= 'stycket'"
	testMatchSamples(t, desc, "s", []matchSample{
		{"stycket", 0, `s(A("st"))`},
		{"st.", 0, `s(A("st"))`},
	})

	desc = "s ::= B / A\nA ::= 'st'\nB ::= 'stycket'"
	testMatchSamples(t, desc, "s", []matchSample{
		{"stycket", 0, `s(B("stycket"))`},
		{"st.", 0, `s(A("st"))`},
	})
}

func TestSequence(t *testing.T) {
	desc := "date ::= year, '-', month\nyear ::= [0-9]{4}\nmonth ::= '01' / '02'"
	testMatchSamples(t, desc, "date", []matchSample{
		{"1994-02", 0, `date(year("1994") month("02"))`},
		{"x1994-01x", 1, `date(year("1994") month("01"))`},
		{"1994-03", 0, ""},
		{"1994-", 0, ""},
		{"94-01", 0, ""},
	})
}

func TestFailedAlternativeLeavesNoChildren(t *testing.T) {
	desc := "s ::= a, b, 'x' / a, c\na ::= 'a'\nb ::= 'b'\nc ::= 'b'"
	testMatchSamples(t, desc, "s", []matchSample{
		{"abx", 0, `s(a("a") b("b"))`},
		{"aby", 0, `s(a("a") c("b"))`},
	})
}

func TestNotPredicate(t *testing.T) {
	desc := "s ::= \"st\", \".\"?, !letter\nletter ::= [a-zåäö]"
	testMatchSamples(t, desc, "s", []matchSample{
		{"st", 0, `s("st")`},
		{"st.", 0, `s("st.")`},
		{"st 2", 0, `s("st")`},
		{"st,", 0, `s("st")`},
		{"stadgan", 0, ""},
		{"st.a", 0, ""},
	})

	testMatchSamples(t, "s ::= !a, [a-z]+\na ::= 'a'", "s", []matchSample{
		{"bcd", 0, `s("bcd")`},
		{"abc", 0, ""},
		{"", 0, ""},
	})
}

func TestRepeat(t *testing.T) {
	testMatchSamples(t, `r ::= ('a', 'b')*, 'a'`, "r", []matchSample{
		{"ababa", 0, `r("ababa")`},
		{"a", 0, `r("a")`},
		{"abab", 0, ""},
	})

	testMatchSamples(t, `r ::= 'ab'{2,3}`, "r", []matchSample{
		{"abababab", 0, `r("ababab")`},
		{"abab", 0, `r("abab")`},
		{"ab", 0, ""},
	})

	testMatchSamples(t, "r ::= item+\nitem ::= [a-z], [0-9]", "r", []matchSample{
		{"a1b2c", 0, `r(item("a1") item("b2"))`},
		{"a", 0, ""},
	})
}

func TestRepeatIsGreedyAndPossessive(t *testing.T) {
	testMatchSamples(t, `r ::= 'a'*, 'a'`, "r", []matchSample{
		{"aaa", 0, ""},
	})
	testMatchSamples(t, `r ::= [a]*, 'a'`, "r", []matchSample{
		{"aaa", 0, ""},
	})
}

func TestRepeatOfEmptyMatchTerminates(t *testing.T) {
	desc := "r ::= e*, 'x'\ne ::= 'y'?"
	testMatchSamples(t, desc, "r", []matchSample{
		{"x", 0, `r("x")`},
		{"yyx", 0, `r(e("y") e("y"))`},
	})

	desc = "r ::= e{2}, 'x'\ne ::= 'y'?"
	testMatchSamples(t, desc, "r", []matchSample{
		{"x", 0, `r(e(""))`},
		{"yx", 0, `r(e("y") e(""))`},
	})
}

func TestMatchBounds(t *testing.T) {
	p := newTestParser(t, `s ::= 'a'?`)
	_, ok := p.Match("s", "a", -1)
	test.Assert(t, !ok, "expecting no match for negative position")
	_, ok = p.Match("s", "a", 2)
	test.Assert(t, !ok, "expecting no match for position past the end")
	_, ok = p.Match("unknown", "a", 0)
	test.Assert(t, !ok, "expecting no match for unknown rule")

	n, ok := p.Match("s", "a", 1)
	test.Assert(t, ok, "expecting empty match at the end")
	test.ExpectInt(t, 1, n.Start)
	test.ExpectInt(t, 1, n.End)
}

func TestMatchAll(t *testing.T) {
	p := newTestParser(t, `s ::= [0-9]{1,2}`)
	n, ok := p.MatchAll("s", "12")
	test.Assert(t, ok, "expecting match")
	test.ExpectString(t, "12", n.Text)

	for _, input := range []string{"123", "1a", ""} {
		_, ok = p.MatchAll("s", input)
		test.Assert(t, !ok, "%q: expecting no match", input)
	}
}

func TestMemo(t *testing.T) {
	p := newTestParser(t, "s ::= a, 'x' / a, 'y'\na ::= [a]+")
	c := p.NewContext("aaay")
	n, ok := c.Match("s", 0)
	test.Assert(t, ok, "expecting match")
	test.ExpectString(t, `s(a("aaa"))`, n.String())

	stats := c.Stats()
	test.ExpectInt(t, 2, stats.Evaluations)
	test.ExpectInt(t, 1, stats.MemoHits)
	test.ExpectInt(t, 2, stats.MemoEntries)

	again, _ := c.Match("s", 0)
	test.Assert(t, again == n, "expecting memoized node")
	test.ExpectInt(t, 2, c.Stats().MemoHits)

	c.Reset()
	test.ExpectInt(t, 0, c.Stats().MemoEntries)
}

func TestReentryYieldsNoMatch(t *testing.T) {
	g := grammar.New([]grammar.Rule{{
		Name: "s",
		Expr: &grammar.Choice{Alts: []grammar.Expr{
			&grammar.Seq{Items: []grammar.Expr{&grammar.Ref{Name: "s"}, &grammar.Literal{Text: "x"}}},
			&grammar.Literal{Text: "y"},
		}},
	}})

	n, ok := New(g).Match("s", "yx", 0)
	test.Assert(t, ok, "expecting match")
	test.ExpectString(t, `s("y")`, n.String())
}

func TestConcurrentContexts(t *testing.T) {
	p := newTestParser(t, "s ::= w+\nw ::= [a-z]+, ' '?")
	inputs := []string{"a b c", "foo bar", "x", "lorem ipsum dolor"}
	var wg sync.WaitGroup
	results := make([]string, len(inputs))
	for i, input := range inputs {
		wg.Add(1)
		go func(i int, input string) {
			defer wg.Done()
			n, ok := p.Match("s", input, 0)
			if ok {
				results[i] = n.Text
			}
		}(i, input)
	}
	wg.Wait()

	for i, input := range inputs {
		test.ExpectString(t, input, results[i])
	}
}
