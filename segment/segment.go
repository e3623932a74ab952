/*
Package segment splits text into classified spans and extracts entities.

Segmenter repeatedly matches the start rule at the cursor and emits a span for each match.
The span category is the name of the rule the start rule delegated to, so with the rule

	token ::= whitespace / word / number / punctuation / other

each span gets one of the five category names. Every byte of the input belongs to exactly one span:
if the start rule fails or matches empty text, a single codepoint is emitted as "other".
Invalid UTF-8 bytes are emitted one byte per span.
*/
package segment

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ava12/lagrum"
	"github.com/ava12/lagrum/grammar"
	"github.com/ava12/lagrum/parser"
	"github.com/ava12/lagrum/tree"
)

// OtherCategory is the category of unclassifiable codepoints.
const OtherCategory = "other"

// Error codes used by segment:
const (
	// UnknownRuleError indicates a rule name not defined in grammar.
	UnknownRuleError = lagrum.SegmentErrors + iota
)

func unknownRuleError(name string) *lagrum.Error {
	return lagrum.FormatError(UnknownRuleError, "unknown rule %q", name)
}

// Span is a classified part of the input. Line and Col are 1-based, Col is counted in runes.
type Span struct {
	Category string `json:"category"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Text     string `json:"text"`
	Value    any    `json:"value,omitempty"`
	Line     int    `json:"line"`
	Col      int    `json:"col"`
}

// ValueFunc converts a match node to structured value. Returns false if n has no value.
type ValueFunc func(n *tree.Node) (any, bool)

// Values maps rule names to value decoders.
type Values map[string]ValueFunc

type Option func(s *Segmenter)

// WithRule sets the rule matched at each position, grammar start rule is used by default.
func WithRule(name string) Option {
	return func(s *Segmenter) {
		s.rule = name
	}
}

// WithValues adds value decoders used to fill Span.Value and Entity.Value.
func WithValues(vs Values) Option {
	return func(s *Segmenter) {
		for name, f := range vs {
			s.values[name] = f
		}
	}
}

// WithBreakable sets categories of spans that an extracted entity may end inside of.
// Default categories are "punctuation" and "whitespace", so "5 §." yields entity "5 §".
func WithBreakable(categories ...string) Option {
	return func(s *Segmenter) {
		s.breakable = make(map[string]bool, len(categories))
		for _, c := range categories {
			s.breakable[c] = true
		}
	}
}

// Segmenter is immutable and safe for concurrent use.
type Segmenter struct {
	parser    *parser.Parser
	rule      string
	values    Values
	breakable map[string]bool
}

// New creates a segmenter for g. Returns lagrum.Error if the rule set with WithRule is not defined.
func New(g *grammar.Grammar, opts ...Option) (*Segmenter, error) {
	s := &Segmenter{
		parser:    parser.New(g),
		rule:      g.Start(),
		values:    make(Values),
		breakable: map[string]bool{"punctuation": true, "whitespace": true},
	}
	for _, opt := range opts {
		opt(s)
	}

	if g.Index(s.rule) < 0 {
		return nil, unknownRuleError(s.rule)
	}
	return s, nil
}

func (s *Segmenter) Rule() string {
	return s.rule
}

func (s *Segmenter) Parser() *parser.Parser {
	return s.parser
}

// Segment splits input into spans. Concatenated span texts are equal to input.
func Segment(g *grammar.Grammar, input string) []Span {
	s, _ := New(g)
	return s.Segment(input)
}

// Segment splits input into spans. Concatenated span texts are equal to input.
func (s *Segmenter) Segment(input string) []Span {
	spans, _ := s.segment(context.Background(), s.parser.NewContext(input))
	return spans
}

// SegmentContext is like Segment, but stops and returns ctx error when ctx is done.
func (s *Segmenter) SegmentContext(ctx context.Context, input string) ([]Span, error) {
	return s.segment(ctx, s.parser.NewContext(input))
}

// SegmentStats is like SegmentContext, but also returns matching counters.
func (s *Segmenter) SegmentStats(ctx context.Context, input string) ([]Span, parser.Stats, error) {
	pc := s.parser.NewContext(input)
	spans, e := s.segment(ctx, pc)
	return spans, pc.Stats(), e
}

const checkInterval = 1024

func (s *Segmenter) segment(ctx context.Context, pc *parser.Context) ([]Span, error) {
	input := pc.Input()
	var spans []Span
	pos := 0
	line, col := 1, 1
	for pos < len(input) {
		if len(spans)%checkInterval == 0 {
			if e := ctx.Err(); e != nil {
				return nil, e
			}
		}

		span := s.matchSpan(pc, pos)
		span.Line, span.Col = line, col
		line, col = advance(line, col, span.Text)
		spans = append(spans, span)
		pos = span.End
	}
	return spans, nil
}

// advance returns line and column following text that starts at line and col.
// Columns are counted in runes, an invalid byte counts as one rune.
func advance(line, col int, text string) (int, int) {
	nl := strings.LastIndexByte(text, '\n')
	if nl < 0 {
		return line, col + utf8.RuneCountInString(text)
	}
	return line + strings.Count(text, "\n"), utf8.RuneCountInString(text[nl+1:]) + 1
}

func (s *Segmenter) matchSpan(pc *parser.Context, pos int) Span {
	input := pc.Input()
	n, ok := pc.Match(s.rule, pos)
	if !ok || n.End == pos {
		_, size := utf8.DecodeRuneInString(input[pos:])
		return Span{
			Category: OtherCategory,
			Start:    pos,
			End:      pos + size,
			Text:     input[pos : pos+size],
		}
	}

	category := n
	if len(n.Children) > 0 {
		category = n.Children[0]
	}
	span := Span{
		Category: category.Rule,
		Start:    n.Start,
		End:      n.End,
		Text:     n.Text,
	}
	span.Value, _ = s.value(category)
	return span
}

func (s *Segmenter) value(n *tree.Node) (any, bool) {
	f := s.values[n.Rule]
	if f == nil {
		return nil, false
	}
	return f(n)
}
