package langdef

import (
	"github.com/ava12/lagrum/grammar"
	"github.com/ava12/lagrum/internal/bitset"
	"github.com/ava12/lagrum/internal/queue"
)

func findUndefinedRules(g *grammar.Grammar, e error) error {
	if e != nil {
		return e
	}

	names := g.Undefined()
	if len(names) > 0 {
		return undefinedRuleError(names)
	}
	return nil
}

type ruleGraph struct {
	g        *grammar.Grammar
	nullable []bool
	leftRefs []*bitset.Set
}

func newRuleGraph(g *grammar.Grammar) *ruleGraph {
	rg := &ruleGraph{
		g:        g,
		nullable: make([]bool, g.Len()),
		leftRefs: make([]*bitset.Set, g.Len()),
	}
	rg.findNullable()
	for i := range rg.leftRefs {
		rg.leftRefs[i] = bitset.New()
		rg.collectLeftRefs(g.RuleAt(i).Expr, rg.leftRefs[i])
	}
	return rg
}

func (rg *ruleGraph) findNullable() {
	for changed := true; changed; {
		changed = false
		for i := range rg.nullable {
			if !rg.nullable[i] && rg.isNullable(rg.g.RuleAt(i).Expr) {
				rg.nullable[i] = true
				changed = true
			}
		}
	}
}

func (rg *ruleGraph) isNullable(e grammar.Expr) bool {
	switch x := e.(type) {
	case *grammar.Literal:
		return x.Text == ""
	case *grammar.Class:
		return x.Min == 0
	case *grammar.Ref:
		return x.Index >= 0 && rg.nullable[x.Index]
	case *grammar.Seq:
		for _, item := range x.Items {
			if !rg.isNullable(item) {
				return false
			}
		}
		return true
	case *grammar.Choice:
		for _, alt := range x.Alts {
			if rg.isNullable(alt) {
				return true
			}
		}
		return false
	case *grammar.Repeat:
		return x.Min == 0 || rg.isNullable(x.Inner)
	case *grammar.Not:
		return true
	}
	return false
}

// collectLeftRefs adds indexes of rules that can be invoked at the start position of e.
func (rg *ruleGraph) collectLeftRefs(e grammar.Expr, refs *bitset.Set) {
	switch x := e.(type) {
	case *grammar.Ref:
		if x.Index >= 0 {
			refs.Add(x.Index)
		}
	case *grammar.Seq:
		for _, item := range x.Items {
			rg.collectLeftRefs(item, refs)
			if !rg.isNullable(item) {
				break
			}
		}
	case *grammar.Choice:
		for _, alt := range x.Alts {
			rg.collectLeftRefs(alt, refs)
		}
	case *grammar.Repeat:
		rg.collectLeftRefs(x.Inner, refs)
	case *grammar.Not:
		rg.collectLeftRefs(x.Inner, refs)
	}
}

func (rg *ruleGraph) isLeftRecursive(index int) bool {
	visited := bitset.New()
	q := queue.New(rg.leftRefs[index].ToSlice()...)
	for !q.IsEmpty() {
		i, _ := q.First()
		if i == index {
			return true
		}
		if visited.Contains(i) {
			continue
		}

		visited.Add(i)
		for _, next := range rg.leftRefs[i].ToSlice() {
			q.Append(next)
		}
	}
	return false
}

func findLeftRecursions(g *grammar.Grammar, e error) error {
	if e != nil {
		return e
	}

	rg := newRuleGraph(g)
	var names []string
	for i := 0; i < g.Len(); i++ {
		if rg.isLeftRecursive(i) {
			names = append(names, g.RuleAt(i).Name)
		}
	}

	if len(names) > 0 {
		return leftRecursionError(names)
	}
	return nil
}

// Nullable returns names of rules that can match empty string.
func Nullable(g *grammar.Grammar) []string {
	rg := newRuleGraph(g)
	var names []string
	for i, n := range rg.nullable {
		if n {
			names = append(names, g.RuleAt(i).Name)
		}
	}
	return names
}
