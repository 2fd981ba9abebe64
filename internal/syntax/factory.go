package syntax

// Factory centralizes node creation for rewrite passes. Every node it builds
// is marked as synthesized (Start == -1).
type Factory struct{}

// NewFactory returns a new Factory.
func NewFactory() *Factory { return &Factory{} }

// Token creates a named leaf.
func (f *Factory) Token(kind Kind, text, leading string) *Node {
	return &Node{Kind: kind, Named: true, Text: text, Leading: leading, Start: -1}
}

// Punct creates an anonymous leaf (punctuation or keyword) whose kind is its
// text.
func (f *Factory) Punct(text, leading string) *Node {
	return &Node{Kind: Kind(text), Text: text, Leading: leading, Start: -1}
}

// Branch creates a named inner node.
func (f *Factory) Branch(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Named: true, Start: -1, Children: children}
}

// Field stores n under the given field name of its future parent.
func (f *Factory) Field(field string, n *Node) *Node {
	return n.WithField(field)
}

// --- JavaScript shapes ---

// Identifier creates an identifier token.
func (f *Factory) Identifier(name, leading string) *Node {
	return f.Token(KindIdentifier, name, leading)
}

// StringLiteral creates a string literal token holding value.
func (f *Factory) StringLiteral(value string, quote byte, leading string) *Node {
	return f.Token(KindString, QuoteString(value, quote), leading)
}

// Member creates `object.property`.
func (f *Factory) Member(object *Node, property string) *Node {
	return f.Branch(KindMemberExpression,
		f.Field("object", object),
		f.Punct(".", ""),
		f.Field("property", f.Token(KindPropertyIdentifier, property, "")),
	)
}

// Call creates `callee(args...)` with ", " between arguments.
func (f *Factory) Call(callee *Node, args ...*Node) *Node {
	children := []*Node{f.Punct("(", "")}

	for i, arg := range args {
		if i > 0 {
			children = append(children, f.Punct(",", ""), arg.WithLeading(" "))
			continue
		}

		children = append(children, arg)
	}

	children = append(children, f.Punct(")", ""))

	return f.Branch(KindCallExpression,
		f.Field("function", callee),
		f.Field("arguments", f.Branch(KindArguments, children...)),
	)
}
