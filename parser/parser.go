// Package parser implements packrat PEG matcher.
package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/ava12/lagrum/grammar"
	"github.com/ava12/lagrum/tree"
)

// Parser matches grammar rules against text.
// Parser is immutable and safe for concurrent use, matching state lives in Context.
type Parser struct {
	grammar *grammar.Grammar
}

// New creates a parser for g. g must be valid (see langdef.Build).
func New(g *grammar.Grammar) *Parser {
	return &Parser{grammar: g}
}

func (p *Parser) Grammar() *grammar.Grammar {
	return p.grammar
}

// Match matches named rule against input starting exactly at byte offset pos.
// Returns match tree root and true on success, nil and false on no match.
func (p *Parser) Match(rule, input string, pos int) (*tree.Node, bool) {
	return p.NewContext(input).Match(rule, pos)
}

// MatchAll is like Match, but succeeds only if the rule matches the whole input.
func (p *Parser) MatchAll(rule, input string) (*tree.Node, bool) {
	n, ok := p.Match(rule, input, 0)
	if !ok || n.End != len(input) {
		return nil, false
	}
	return n, true
}

// Stats contains matching counters.
type Stats struct {
	// Evaluations is the number of rule evaluations not served from memo.
	Evaluations int

	// MemoHits is the number of rule evaluations served from memo.
	MemoHits int

	// MemoEntries is the number of memoized (rule, position) pairs.
	MemoEntries int
}

type memoKey struct {
	rule, pos int
}

// Context holds input text and packrat memo for a single input.
// Context is not safe for concurrent use.
type Context struct {
	parser *Parser
	input  string
	memo   map[memoKey]*tree.Node
	stats  Stats
}

func (p *Parser) NewContext(input string) *Context {
	return &Context{
		parser: p,
		input:  input,
		memo:   make(map[memoKey]*tree.Node),
	}
}

func (c *Context) Input() string {
	return c.input
}

func (c *Context) Stats() Stats {
	result := c.stats
	result.MemoEntries = len(c.memo)
	return result
}

// Reset drops memoized results.
func (c *Context) Reset() {
	clear(c.memo)
}

// Match matches named rule starting exactly at byte offset pos.
// Unknown rule name or pos outside input yields no match.
func (c *Context) Match(rule string, pos int) (*tree.Node, bool) {
	index := c.parser.grammar.Index(rule)
	if index < 0 || pos < 0 || pos > len(c.input) {
		return nil, false
	}

	n := c.matchRule(index, pos)
	return n, n != nil
}

// matchRule evaluates the rule once per position, the memo entry is nil while evaluation is in progress,
// so re-entering the same (rule, pos) pair yields no match.
func (c *Context) matchRule(index, pos int) *tree.Node {
	key := memoKey{index, pos}
	if n, has := c.memo[key]; has {
		c.stats.MemoHits++
		return n
	}

	c.memo[key] = nil
	c.stats.Evaluations++
	rule := c.parser.grammar.RuleAt(index)
	var children []*tree.Node
	end, ok := c.eval(rule.Expr, pos, &children)
	if !ok {
		return nil
	}

	n := &tree.Node{
		Rule:     rule.Name,
		Start:    pos,
		End:      end,
		Text:     c.input[pos:end],
		Children: children,
	}
	c.memo[key] = n
	return n
}

// eval returns end position of match; matched named rules are appended to children.
// children are restored on failure.
func (c *Context) eval(e grammar.Expr, pos int, children *[]*tree.Node) (int, bool) {
	switch x := e.(type) {
	case *grammar.Literal:
		if strings.HasPrefix(c.input[pos:], x.Text) {
			return pos + len(x.Text), true
		}
		return pos, false

	case *grammar.Class:
		return c.evalClass(x, pos)

	case *grammar.Ref:
		n := c.matchRule(x.Index, pos)
		if n == nil {
			return pos, false
		}
		*children = append(*children, n)
		return n.End, true

	case *grammar.Seq:
		mark := len(*children)
		end := pos
		for _, item := range x.Items {
			var ok bool
			end, ok = c.eval(item, end, children)
			if !ok {
				*children = (*children)[:mark]
				return pos, false
			}
		}
		return end, true

	case *grammar.Choice:
		for _, alt := range x.Alts {
			end, ok := c.eval(alt, pos, children)
			if ok {
				return end, true
			}
		}
		return pos, false

	case *grammar.Repeat:
		return c.evalRepeat(x, pos, children)

	case *grammar.Not:
		mark := len(*children)
		_, ok := c.eval(x.Inner, pos, children)
		*children = (*children)[:mark]
		return pos, !ok
	}

	return pos, false
}

func (c *Context) evalClass(x *grammar.Class, pos int) (int, bool) {
	end := pos
	count := 0
	for x.Max == grammar.Unbounded || count < x.Max {
		r, size := utf8.DecodeRuneInString(c.input[end:])
		if size == 0 {
			break
		}

		in := !(r == utf8.RuneError && size == 1) && x.Set.Contains(r)
		if in == x.Negated {
			break
		}

		end += size
		count++
	}

	if count < x.Min {
		return pos, false
	}
	return end, true
}

func (c *Context) evalRepeat(x *grammar.Repeat, pos int, children *[]*tree.Node) (int, bool) {
	mark := len(*children)
	end := pos
	count := 0
	for x.Max == grammar.Unbounded || count < x.Max {
		iterMark := len(*children)
		next, ok := c.eval(x.Inner, end, children)
		if !ok {
			break
		}

		if next == end {
			if count >= x.Min {
				*children = (*children)[:iterMark]
			}
			count = max(count+1, x.Min)
			break
		}

		end = next
		count++
	}

	if count < x.Min {
		*children = (*children)[:mark]
		return pos, false
	}
	return end, true
}
