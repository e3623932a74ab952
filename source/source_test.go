package source

import (
	"testing"

	. "github.com/ava12/lagrum/internal/test"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
			{-1, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{1, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{7, 4, 2},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{9, 4, 4},
			{5, 3, 2},
			{0, 1, 1},
			{16, 5, 1},
		},
		"§ 1\nåäö x": {
			{2, 1, 2},
			{5, 2, 1},
			{11, 2, 4},
			{12, 2, 5},
		},
	}

	for text, results := range samples {
		s := FromString("", text)
		for _, res := range results {
			l, c := s.LineCol(res.pos)
			if l != res.line || c != res.col {
				t.Errorf("sample %q: expected %v, got line: %d, col: %d", text, res, l, c)
			}
		}
	}
}

func TestSourcePos(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{0, 1, 2},
			{0, 2, 1},
		},
		"hello\nworld\n": {
			{0, 1, 1},
			{1, 1, 2},
			{6, 2, 1},
			{7, 2, 2},
			{12, 2, 10},
			{12, 3, 1},
			{12, 4, 1},
		},
	}

	for text, results := range samples {
		s := FromString("", text)
		for _, res := range results {
			p := s.Pos(res.line, res.col)
			if p != res.pos {
				t.Errorf("sample %q: expected %v, got pos: %d", text, res, p)
			}
		}
	}
}

func TestNewPos(t *testing.T) {
	s := FromString("foo.peg", "a\nbc")
	p := NewPos(s, 3)
	ExpectString(t, "foo.peg", p.SourceName())
	ExpectInt(t, 2, p.Line())
	ExpectInt(t, 2, p.Col())
	ExpectInt(t, 3, p.Pos())

	p = NewPos(nil, 3)
	ExpectString(t, "", p.SourceName())
	ExpectInt(t, 0, p.Line())
}

func sourceChain(q *Queue) []string {
	var res []string
	for {
		content, pos := q.ContentPos()
		if pos < len(content) {
			res = append(res, content[pos:])
			q.Skip(len(content) - pos)
		}
		if !q.NextSource() {
			return res
		}
	}
}

func expectChain(t *testing.T, expected, got []string) {
	ExpectInt(t, len(expected), len(got))
	for i := range expected {
		ExpectString(t, expected[i], got[i])
	}
}

func src(content string) *Source {
	return FromString(content, content)
}

func TestQueueOrder(t *testing.T) {
	q := NewQueue()
	ExpectBool(t, true, q.IsEmpty())
	q.Append(src("foo")).Append(src("bar")).Append(src("")).Append(src("baz"))
	ExpectString(t, "foo", q.Source().Name())
	expectChain(t, []string{"foo", "bar", "baz"}, sourceChain(q))
	ExpectBool(t, true, q.IsEmpty())
	Assert(t, q.Source() == nil, "expecting nil source after the last one")
}

func TestQueueSkip(t *testing.T) {
	q := NewQueue().Append(src("hello")).Append(src("world"))
	q.Skip(3)
	content, pos := q.ContentPos()
	ExpectString(t, "lo", content[pos:])
	ExpectBool(t, false, q.IsEmpty())

	q.Skip(10)
	ExpectInt(t, 5, q.Pos())
	ExpectBool(t, false, q.IsEmpty())
	expectChain(t, []string{"world"}, sourceChain(q))
}

func TestQueueEmptyFirstSource(t *testing.T) {
	q := NewQueue().Append(src(""))
	ExpectString(t, "", q.Source().Name())
	q.Append(src("x"))
	ExpectString(t, "x", q.Source().Name())
	line, col := q.SourcePos().Line(), q.SourcePos().Col()
	ExpectInt(t, 1, line)
	ExpectInt(t, 1, col)
}
