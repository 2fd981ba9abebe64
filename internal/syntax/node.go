// Package syntax defines the lossless concrete syntax tree the purge passes
// operate on.
//
// Every byte of the parsed source belongs to exactly one leaf: either as the
// leaf's token text or as part of its leading trivia (whitespace and
// comments). Printing a tree is therefore just concatenating its leaves, and
// an unmodified tree prints back to the original source byte-for-byte.
package syntax

import "strings"

// Node is a single node of the tree. Nodes are immutable by convention:
// rewrites build new nodes with With / WithLeading and share every untouched
// subtree with the input tree.
type Node struct {
	Kind     Kind
	Field    string // field name under the parent ("key", "value", ...)
	Named    bool   // false for punctuation and keywords
	Leading  string // trivia before the token (leaves only)
	Text     string // token text (leaves only)
	Start    int    // byte offset in the parsed source, -1 when synthesized
	Children []*Node
}

// IsLeaf reports whether the node is a token.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// FullText returns the source text of the node including leading trivia.
func (n *Node) FullText() string {
	var b strings.Builder

	n.write(&b)

	return b.String()
}

// Prefix returns the first size bytes of FullText, or all of it when the
// node is shorter. Only the leading leaves are visited.
func (n *Node) Prefix(size int) string {
	var b strings.Builder

	n.writePrefix(&b, size)

	return b.String()
}

func (n *Node) writePrefix(b *strings.Builder, size int) {
	if b.Len() >= size {
		return
	}

	if !n.IsLeaf() {
		for _, c := range n.Children {
			c.writePrefix(b, size)
		}

		return
	}

	for _, part := range []string{n.Leading, n.Text} {
		if rest := size - b.Len(); len(part) > rest {
			part = part[:rest]
		}

		b.WriteString(part)
	}
}

// SourceText returns the source text of the node without the trivia that
// precedes its first token.
func (n *Node) SourceText() string {
	return strings.TrimPrefix(n.FullText(), n.LeadingTrivia())
}

func (n *Node) write(b *strings.Builder) {
	if n.IsLeaf() {
		b.WriteString(n.Leading)
		b.WriteString(n.Text)

		return
	}

	for _, c := range n.Children {
		c.write(b)
	}
}

// FirstLeaf returns the first token of the node.
func (n *Node) FirstLeaf() *Node {
	for !n.IsLeaf() {
		n = n.Children[0]
	}

	return n
}

// LeadingTrivia returns the trivia before the first token of the node.
func (n *Node) LeadingTrivia() string {
	return n.FirstLeaf().Leading
}

// ChildByField returns the first child stored under the given field name.
func (n *Node) ChildByField(field string) *Node {
	for _, c := range n.Children {
		if c.Field == field {
			return c
		}
	}

	return nil
}

// NamedChildren returns the children that are not punctuation or keywords.
func (n *Node) NamedChildren() []*Node {
	named := make([]*Node, 0, len(n.Children))

	for _, c := range n.Children {
		if c.Named {
			named = append(named, c)
		}
	}

	return named
}

// With returns a shallow copy of the node holding the given children.
func (n *Node) With(children []*Node) *Node {
	cp := *n
	cp.Children = children

	return &cp
}

// WithField returns a shallow copy of the node stored under field.
func (n *Node) WithField(field string) *Node {
	cp := *n
	cp.Field = field

	return &cp
}

// WithLeading returns a copy of the node whose first token carries the given
// trivia. Only the nodes on the path to the first token are copied.
func (n *Node) WithLeading(trivia string) *Node {
	if n.IsLeaf() {
		cp := *n
		cp.Leading = trivia

		return &cp
	}

	children := make([]*Node, len(n.Children))
	copy(children, n.Children)
	children[0] = children[0].WithLeading(trivia)

	return n.With(children)
}

// Replace returns a copy of the node where the direct child old is swapped
// for repl. The node itself is returned when old is not one of its children.
func (n *Node) Replace(old, repl *Node) *Node {
	for i, c := range n.Children {
		if c != old {
			continue
		}

		children := make([]*Node, len(n.Children))
		copy(children, n.Children)
		children[i] = repl

		return n.With(children)
	}

	return n
}

// Inspect traverses the tree in document order, calling fn for every node.
// Children are skipped when fn returns false.
func Inspect(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	for _, c := range n.Children {
		Inspect(c, fn)
	}
}
