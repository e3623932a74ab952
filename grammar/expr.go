package grammar

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/ava12/lagrum/charclass"
)

// Expr is a parsing expression: *Literal, *Class, *Ref, *Seq, *Choice, *Repeat, or *Not.
type Expr interface {
	// String returns expression in grammar description notation.
	String() string
	isExpr()
}

// Literal matches exact text.
type Literal struct {
	Text string
}

// Class matches a run of Min to Max codepoints belonging to Set (or not belonging if Negated).
type Class struct {
	Set      *charclass.Set
	Negated  bool
	Min, Max int

	// Names lists predefined sets ([:name:]) included in Set, used for printing only.
	Names []string
}

// Ref matches the rule named Name. Index is the rule index in grammar, -1 if the rule is undefined.
type Ref struct {
	Name  string
	Index int
}

// Seq matches all items one after another.
type Seq struct {
	Items []Expr
}

// Choice tries alternatives left to right and commits to the first one that matches.
type Choice struct {
	Alts []Expr
}

// Repeat matches Inner greedily, at least Min and at most Max times.
type Repeat struct {
	Inner    Expr
	Min, Max int
}

// Not succeeds without consuming input if Inner does not match at the current position.
type Not struct {
	Inner Expr
}

func (*Literal) isExpr() {}
func (*Class) isExpr()   {}
func (*Ref) isExpr()     {}
func (*Seq) isExpr()     {}
func (*Choice) isExpr()  {}
func (*Repeat) isExpr()  {}
func (*Not) isExpr()     {}

func (e *Literal) String() string {
	return QuoteLiteral(e.Text)
}

func (e *Class) String() string {
	return e.ClassString() + quantifier(e.Min, e.Max)
}

// ClassString returns bracketed class without quantifier.
func (e *Class) ClassString() string {
	var sb strings.Builder
	sb.WriteByte('[')
	if e.Negated {
		sb.WriteByte('^')
	}

	set := e.Set
	if len(e.Names) > 0 {
		for _, name := range e.Names {
			sb.WriteString("[:" + name + ":]")
		}
		set = subtractNamed(set, e.Names)
	}
	sb.WriteString(set.String())
	sb.WriteByte(']')
	return sb.String()
}

func subtractNamed(s *charclass.Set, names []string) *charclass.Set {
	result := charclass.New()
	for _, r := range s.Runes() {
		found := false
		for _, name := range names {
			ns, _ := charclass.Named(name)
			if ns != nil && ns.Contains(r) {
				found = true
				break
			}
		}
		if !found {
			result.Add(r)
		}
	}
	return result
}

func (e *Ref) String() string {
	return e.Name
}

func (e *Seq) String() string {
	parts := make([]string, len(e.Items))
	for i, item := range e.Items {
		_, isChoice := item.(*Choice)
		parts[i] = item.String()
		if isChoice {
			parts[i] = "(" + parts[i] + ")"
		}
	}
	return strings.Join(parts, ", ")
}

func (e *Choice) String() string {
	parts := make([]string, len(e.Alts))
	for i, alt := range e.Alts {
		parts[i] = alt.String()
	}
	return strings.Join(parts, " / ")
}

func (e *Repeat) String() string {
	inner := e.Inner.String()
	switch e.Inner.(type) {
	case *Literal, *Ref:
	default:
		inner = "(" + inner + ")"
	}
	return inner + quantifier(e.Min, e.Max)
}

func (e *Not) String() string {
	switch e.Inner.(type) {
	case *Seq, *Choice:
		return "!(" + e.Inner.String() + ")"
	}
	return "!" + e.Inner.String()
}

func quantifier(low, high int) string {
	switch {
	case low == 1 && high == 1:
		return ""
	case low == 0 && high == 1:
		return "?"
	case low == 1 && high == Unbounded:
		return "+"
	case low == 0 && high == Unbounded:
		return "*"
	case low == high:
		return "{" + strconv.Itoa(low) + "}"
	case high == Unbounded:
		return "{" + strconv.Itoa(low) + ",}"
	}
	return "{" + strconv.Itoa(low) + "," + strconv.Itoa(high) + "}"
}

// QuoteLiteral returns text as double-quoted literal.
func QuoteLiteral(text string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range text {
		switch r {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '-', '[', ']', '^':
			sb.WriteRune(r)
		default:
			sb.WriteString(charclass.EscapeRune(r))
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

type jsonExpr struct {
	Type  string      `json:"type"`
	Text  string      `json:"text,omitempty"`
	Class string      `json:"class,omitempty"`
	Name  string      `json:"name,omitempty"`
	Min   *int        `json:"min,omitempty"`
	Max   *int        `json:"max,omitempty"`
	Items []*jsonExpr `json:"items,omitempty"`
	Inner *jsonExpr   `json:"inner,omitempty"`
}

func toJSON(e Expr) *jsonExpr {
	switch x := e.(type) {
	case *Literal:
		return &jsonExpr{Type: "literal", Text: x.Text}
	case *Class:
		return &jsonExpr{Type: "class", Class: x.ClassString(), Min: &x.Min, Max: &x.Max}
	case *Ref:
		return &jsonExpr{Type: "ref", Name: x.Name}
	case *Seq:
		result := &jsonExpr{Type: "seq"}
		for _, item := range x.Items {
			result.Items = append(result.Items, toJSON(item))
		}
		return result
	case *Choice:
		result := &jsonExpr{Type: "choice"}
		for _, alt := range x.Alts {
			result.Items = append(result.Items, toJSON(alt))
		}
		return result
	case *Repeat:
		return &jsonExpr{Type: "repeat", Inner: toJSON(x.Inner), Min: &x.Min, Max: &x.Max}
	case *Not:
		return &jsonExpr{Type: "not", Inner: toJSON(x.Inner)}
	}
	return nil
}

// MarshalJSON encodes grammar as {"start": name, "rules": [{"name": name, "expr": {...}}, ...]}.
func (g *Grammar) MarshalJSON() ([]byte, error) {
	type jsonRule struct {
		Name string    `json:"name"`
		Expr *jsonExpr `json:"expr"`
	}
	rules := make([]jsonRule, len(g.rules))
	for i, r := range g.rules {
		rules[i] = jsonRule{r.Name, toJSON(r.Expr)}
	}
	return json.Marshal(struct {
		Start string     `json:"start"`
		Rules []jsonRule `json:"rules"`
	}{g.Start(), rules})
}
