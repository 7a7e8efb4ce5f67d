package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/robinvdvleuten/ptaledger/ast"
)

// Node is a matched rule in a parse tree.
type Node struct {
	Rule     Rule
	Span     ast.Span
	Pos      ast.FilePosition
	Text     string // matched source text
	Children []*Node
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the children of that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the first node matching rule in pre-order, including n itself.
func (n *Node) Find(rule Rule) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Rule == rule {
			found = c
			return false
		}
		return true
	})
	return found
}

// Child returns the first direct child matching rule, or nil.
func (n *Node) Child(rule Rule) *Node {
	for _, c := range n.Children {
		if c.Rule == rule {
			return c
		}
	}
	return nil
}

func (n *Node) String() string {
	return fmt.Sprintf("%s@%s", n.Rule, n.Pos)
}

// Fprint writes an indented view of the tree rooted at n. Whitespace nodes
// are left out unless withWhitespace is set.
func Fprint(w io.Writer, n *Node, withWhitespace bool) error {
	return fprint(w, n, 0, withWhitespace)
}

func fprint(w io.Writer, n *Node, depth int, withWhitespace bool) error {
	if n.Rule == RuleWhitespace && !withWhitespace {
		return nil
	}
	indent := strings.Repeat("  ", depth)
	var err error
	if len(n.Children) == 0 {
		_, err = fmt.Fprintf(w, "%s%s %s %q\n", indent, n.Rule, n.Pos, n.Text)
	} else {
		_, err = fmt.Fprintf(w, "%s%s %s\n", indent, n.Rule, n.Pos)
	}
	if err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := fprint(w, c, depth+1, withWhitespace); err != nil {
			return err
		}
	}
	return nil
}
