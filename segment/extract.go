package segment

import (
	"context"
	"sort"

	"github.com/ava12/lagrum/grammar"
	"github.com/ava12/lagrum/parser"
	"github.com/ava12/lagrum/tree"
)

// Entity is a match of a named rule found by Extract.
type Entity struct {
	Rule  string     `json:"rule"`
	Start int        `json:"start"`
	End   int        `json:"end"`
	Text  string     `json:"text"`
	Value any        `json:"value,omitempty"`
	Line  int        `json:"line"`
	Col   int        `json:"col"`
	Node  *tree.Node `json:"-"`
}

// Extract finds non-overlapping matches of rule in input using grammar start rule for segmentation.
func Extract(g *grammar.Grammar, input, rule string) ([]Entity, error) {
	s, e := New(g)
	if e != nil {
		return nil, e
	}
	return s.Extract(input, rule)
}

// Extract finds non-overlapping matches of rule in input.
// Rule is tried at each span start, a match is accepted if it is not empty and ends at a span boundary
// or inside a breakable span (see WithBreakable). Scanning continues after the accepted match.
// Returns lagrum.Error if rule is not defined.
func (s *Segmenter) Extract(input, rule string) ([]Entity, error) {
	if s.parser.Grammar().Index(rule) < 0 {
		return nil, unknownRuleError(rule)
	}

	pc := s.parser.NewContext(input)
	spans, _ := s.segment(context.Background(), pc)
	return s.extract(pc, spans, rule), nil
}

// ExtractSpans is like Extract, but reuses spans returned by Segment for the same input.
func (s *Segmenter) ExtractSpans(input string, spans []Span, rule string) ([]Entity, error) {
	if s.parser.Grammar().Index(rule) < 0 {
		return nil, unknownRuleError(rule)
	}
	return s.extract(s.parser.NewContext(input), spans, rule), nil
}

func (s *Segmenter) extract(pc *parser.Context, spans []Span, rule string) []Entity {
	var result []Entity
	for i := 0; i < len(spans); {
		n, ok := pc.Match(rule, spans[i].Start)
		if !ok || n.End == n.Start || !s.acceptsEnd(spans, n.End) {
			i++
			continue
		}

		entity := Entity{
			Rule:  n.Rule,
			Start: n.Start,
			End:   n.End,
			Text:  n.Text,
			Line:  spans[i].Line,
			Col:   spans[i].Col,
			Node:  n,
		}
		entity.Value, _ = s.value(n)
		result = append(result, entity)
		i = spanIndex(spans, n.End)
	}
	return result
}

// spanIndex returns index of the first span starting at or after pos.
func spanIndex(spans []Span, pos int) int {
	return sort.Search(len(spans), func(i int) bool {
		return spans[i].Start >= pos
	})
}

func (s *Segmenter) acceptsEnd(spans []Span, end int) bool {
	i := sort.Search(len(spans), func(i int) bool {
		return spans[i].End >= end
	})
	if i == len(spans) {
		return false
	}
	return spans[i].End == end || s.breakable[spans[i].Category]
}
