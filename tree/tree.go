// Package tree defines match tree nodes produced by parser and functions for tree traversal.
package tree

import (
	"strconv"
	"strings"
)

// Node is a successful rule match.
// Children contains one node per matched reference to a named rule, in input order.
// Nodes may be shared between trees by the packrat memo and must not be modified.
type Node struct {
	Rule     string
	Start    int
	End      int
	Text     string
	Children []*Node
}

// Len returns matched length in bytes.
func (n *Node) Len() int {
	return n.End - n.Start
}

func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// String returns compact tree notation, e.g. `Date(Year("1994") Month("01"))`.
// Leaf nodes are written with quoted text.
func (n *Node) String() string {
	var sb strings.Builder
	n.writeTo(&sb)
	return sb.String()
}

func (n *Node) writeTo(sb *strings.Builder) {
	sb.WriteString(n.Rule)
	sb.WriteByte('(')
	if n.IsLeaf() {
		sb.WriteString(strconv.Quote(n.Text))
	} else {
		for i, c := range n.Children {
			if i > 0 {
				sb.WriteByte(' ')
			}
			c.writeTo(sb)
		}
	}
	sb.WriteByte(')')
}

// Child returns the first direct child matching one of rule names or nil.
func Child(n *Node, rules ...string) *Node {
	if n == nil {
		return nil
	}

	f := IsA(rules...)
	for _, c := range n.Children {
		if f(c) {
			return c
		}
	}
	return nil
}

// NthChild returns i-th direct child or nil. Negative index counts from the end, -1 is the last child.
func NthChild(n *Node, i int) *Node {
	if n == nil {
		return nil
	}

	if i < 0 {
		i += len(n.Children)
	}
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

const AllLevels = -1

// NumOfChildren returns the number of descendants up to levels deep, 0 means direct children only.
func NumOfChildren(n *Node, levels int) int {
	if n == nil {
		return 0
	}

	i := len(n.Children)
	if levels != 0 {
		for _, c := range n.Children {
			i += NumOfChildren(c, levels-1)
		}
	}
	return i
}

// NodeVisitor is called for each visited node.
// Returns false walkChildren to skip node children and false walkSiblings to skip remaining siblings.
type NodeVisitor func(n *Node, level int) (walkChildren, walkSiblings bool)

type WalkMode int

const (
	WalkLtr WalkMode = 0
	WalkRtl WalkMode = 1
)

// Walk visits n and its descendants depth-first, parents first.
func Walk(n *Node, mode WalkMode, visitor NodeVisitor) {
	if n != nil {
		visitNode(n, 0, visitor, (mode&WalkRtl) != 0)
	}
}

func visitNode(n *Node, level int, v NodeVisitor, rtl bool) (visitSiblings bool) {
	vc, vs := v(n, level)
	if !vc {
		return vs
	}

	l := len(n.Children)
	for i := 0; i < l; i++ {
		c := n.Children[i]
		if rtl {
			c = n.Children[l-i-1]
		}
		if !visitNode(c, level+1, v, rtl) {
			break
		}
	}
	return vs
}

type NodeFilter func(n *Node) bool

func IsNot(f NodeFilter) NodeFilter {
	return func(n *Node) bool {
		return !f(n)
	}
}

func IsAny(fs ...NodeFilter) NodeFilter {
	return func(n *Node) bool {
		for _, f := range fs {
			if f(n) {
				return true
			}
		}
		return false
	}
}

// IsA returns filter accepting nodes of listed rules. Empty list accepts any node.
func IsA(rules ...string) NodeFilter {
	return func(n *Node) bool {
		if len(rules) == 0 {
			return true
		}
		for _, r := range rules {
			if n.Rule == r {
				return true
			}
		}
		return false
	}
}

// IsALiteral returns filter accepting nodes with exact matched text.
func IsALiteral(texts ...string) NodeFilter {
	return func(n *Node) bool {
		for _, t := range texts {
			if n.Text == t {
				return true
			}
		}
		return false
	}
}

// Find returns the first node accepted by f in depth-first order, including n itself, or nil.
func Find(n *Node, f NodeFilter) *Node {
	var result *Node
	Walk(n, WalkLtr, func(c *Node, _ int) (bool, bool) {
		if result != nil {
			return false, false
		}
		if f(c) {
			result = c
			return false, false
		}
		return true, true
	})
	return result
}

// FindAll returns all nodes accepted by f in depth-first order.
// Descendants of accepted nodes are not examined.
func FindAll(n *Node, f NodeFilter) []*Node {
	var result []*Node
	Walk(n, WalkLtr, func(c *Node, _ int) (bool, bool) {
		if f(c) {
			result = append(result, c)
			return false, true
		}
		return true, true
	})
	return result
}

// Leaves returns leaf nodes in input order.
func Leaves(n *Node) []*Node {
	return FindAll(n, (*Node).IsLeaf)
}
