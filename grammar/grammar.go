// Package grammar defines rules and parsing expressions used by parser.
// Grammars are normally created by langdef and are immutable afterwards.
package grammar

import (
	"strings"
)

// Unbounded is the Max value of quantifiers without upper limit.
const Unbounded = -1

// Rule is a named parsing expression.
type Rule struct {
	Name string
	Expr Expr
}

// Grammar is an ordered list of rules. The first rule is the start one.
// Grammar is safe for concurrent use.
type Grammar struct {
	rules []Rule
	index map[string]int
}

// New creates a grammar and resolves rule references by name.
// Each reference to undefined rule gets index -1, see Undefined.
// Rule names must be unique.
func New(rules []Rule) *Grammar {
	g := &Grammar{rules: make([]Rule, len(rules)), index: make(map[string]int, len(rules))}
	copy(g.rules, rules)
	for i, r := range g.rules {
		g.index[r.Name] = i
	}
	for i := range g.rules {
		g.rules[i].Expr = g.resolve(g.rules[i].Expr)
	}
	return g
}

func (g *Grammar) resolve(e Expr) Expr {
	switch x := e.(type) {
	case *Ref:
		index, has := g.index[x.Name]
		if !has {
			index = -1
		}
		return &Ref{Name: x.Name, Index: index}
	case *Seq:
		items := make([]Expr, len(x.Items))
		for i, item := range x.Items {
			items[i] = g.resolve(item)
		}
		return &Seq{Items: items}
	case *Choice:
		alts := make([]Expr, len(x.Alts))
		for i, alt := range x.Alts {
			alts[i] = g.resolve(alt)
		}
		return &Choice{Alts: alts}
	case *Repeat:
		return &Repeat{Inner: g.resolve(x.Inner), Min: x.Min, Max: x.Max}
	case *Not:
		return &Not{Inner: g.resolve(x.Inner)}
	}
	return e
}

// Start returns the name of the start rule or empty string for empty grammar.
func (g *Grammar) Start() string {
	if len(g.rules) == 0 {
		return ""
	}
	return g.rules[0].Name
}

func (g *Grammar) Len() int {
	return len(g.rules)
}

// RuleAt returns i-th rule.
func (g *Grammar) RuleAt(i int) Rule {
	return g.rules[i]
}

// Index returns index of named rule or -1.
func (g *Grammar) Index(name string) int {
	i, has := g.index[name]
	if !has {
		return -1
	}
	return i
}

func (g *Grammar) Rule(name string) (Rule, bool) {
	i, has := g.index[name]
	if !has {
		return Rule{}, false
	}
	return g.rules[i], true
}

// Names returns rule names in definition order.
func (g *Grammar) Names() []string {
	result := make([]string, len(g.rules))
	for i, r := range g.rules {
		result[i] = r.Name
	}
	return result
}

// Undefined returns names of referenced but undefined rules in order of first reference.
func (g *Grammar) Undefined() []string {
	var result []string
	seen := make(map[string]bool)
	for _, r := range g.rules {
		Walk(r.Expr, func(e Expr) {
			ref, is := e.(*Ref)
			if is && ref.Index < 0 && !seen[ref.Name] {
				seen[ref.Name] = true
				result = append(result, ref.Name)
			}
		})
	}
	return result
}

// String returns grammar description that langdef can parse back.
func (g *Grammar) String() string {
	width := 0
	for _, r := range g.rules {
		width = max(width, len(r.Name))
	}

	var sb strings.Builder
	for _, r := range g.rules {
		sb.WriteString(r.Name)
		sb.WriteString(strings.Repeat(" ", width-len(r.Name)))
		sb.WriteString(" ::= ")
		sb.WriteString(r.Expr.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Walk calls f for e and all its subexpressions, parents first.
func Walk(e Expr, f func(Expr)) {
	f(e)
	switch x := e.(type) {
	case *Seq:
		for _, item := range x.Items {
			Walk(item, f)
		}
	case *Choice:
		for _, alt := range x.Alts {
			Walk(alt, f)
		}
	case *Repeat:
		Walk(x.Inner, f)
	case *Not:
		Walk(x.Inner, f)
	}
}
