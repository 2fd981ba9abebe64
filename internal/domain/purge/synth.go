package purge

import (
	"errors"
	"fmt"
	"strings"

	"vuexpurge.dev/pkg/vuexpurge/internal/syntax"
)

// ErrUnexpectedArgument is returned when an extracted name is not a string
// literal. It aborts the whole transformation.
var ErrUnexpectedArgument = errors.New("unexpected helper argument")

// ArgumentError locates an argument that aborted a transformation.
type ArgumentError struct {
	Kind   syntax.Kind
	Offset int // byte offset in the parsed source, -1 if unknown
	Text   string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%v: %s %q at offset %d", ErrUnexpectedArgument, e.Kind, e.Text, e.Offset)
}

func (e *ArgumentError) Unwrap() error { return ErrUnexpectedArgument }

const defaultIndentUnit = "  "

// layout decides the trivia of synthesized methods from the spread they
// replace.
type layout struct {
	first     string // leading trivia of the first method
	separator string // leading trivia of the following methods
	indent    string // indentation of the method lines
	unit      string // one indentation level
	multiline bool
}

func newLayout(spread, pair *syntax.Node) layout {
	leading := spread.LeadingTrivia()
	if !strings.Contains(leading, "\n") {
		return layout{first: leading, separator: " ", unit: defaultIndentUnit}
	}

	indent := indentOf(leading)
	unit := defaultIndentUnit

	if outer := indentOf(pair.LeadingTrivia()); len(indent) > len(outer) && strings.HasPrefix(indent, outer) {
		unit = indent[len(outer):]
	}

	return layout{
		first:     leading,
		separator: "\n" + indent,
		indent:    indent,
		unit:      unit,
		multiline: true,
	}
}

// indentOf returns the whitespace after the last line break of trivia.
func indentOf(trivia string) string {
	i := strings.LastIndexByte(trivia, '\n')
	if i < 0 {
		return ""
	}

	line := trivia[i+1:]
	if strings.TrimLeft(line, " \t") != "" {
		return ""
	}

	return line
}

// synthesizer builds the methods replacing one mapped spread.
type synthesizer struct {
	env    env
	layout layout
}

func (s synthesizer) methods(ext Extraction) ([]*syntax.Node, error) {
	out := make([]*syntax.Node, 0, len(ext.Names))

	for i, mapping := range ext.Names {
		leading := s.layout.separator
		if i == 0 {
			leading = s.layout.first
		}

		m, err := s.method(ext.Namespace, mapping, leading)
		if err != nil {
			return nil, err
		}

		out = append(out, m)
	}

	return out, nil
}

func (s synthesizer) method(namespace string, mapping Mapping, leading string) (*syntax.Node, error) {
	target := mapping.Target

	name, ok := syntax.StringValue(target)
	if !ok {
		return nil, &ArgumentError{Kind: target.Kind, Offset: target.Start, Text: target.SourceText()}
	}

	qualified := name
	if namespace != "" {
		qualified = namespace + "/" + name
	}

	quote, _ := syntax.QuoteChar(target)

	key := s.methodKey(mapping, name, quote)

	children := []*syntax.Node{
		factory.Field("name", key.WithLeading(leading)),
		factory.Field("parameters", factory.Branch(syntax.KindFormalParameters,
			factory.Punct("(", ""),
			PayloadParameter(s.env.dialect.Typed()),
			factory.Punct(")", ""),
		)),
	}

	if s.env.flavor.Returns {
		if ret := ReturnType(s.env.dialect.Typed()); ret != nil {
			children = append(children, factory.Field("return_type", ret))
		}
	}

	children = append(children, factory.Field("body", s.body(qualified, quote)))

	return factory.Branch(syntax.KindMethodDefinition, children...), nil
}

// methodKey reuses the key of an object-form mapping, otherwise it names the
// method after the store entry, quoting names that are not identifiers.
func (s synthesizer) methodKey(mapping Mapping, name string, quote byte) *syntax.Node {
	if mapping.Method != nil {
		return mapping.Method
	}

	if syntax.IsIdentifierName(name) {
		return factory.Token(syntax.KindPropertyIdentifier, name, "")
	}

	return factory.StringLiteral(name, quote, "")
}

// body builds `{ return this.$store.dispatch(q, payload) }` or
// `{ this.$store.commit(q, payload) }`.
func (s synthesizer) body(qualified string, quote byte) *syntax.Node {
	store := factory.Member(factory.Member(factory.Token(syntax.KindThis, "this", ""), "$store"), s.env.flavor.StoreMethod)
	call := factory.Call(store,
		factory.StringLiteral(qualified, quote, ""),
		factory.Identifier(PayloadName, ""),
	)

	stmtLeading, closeLeading := " ", " "
	if s.layout.multiline {
		stmtLeading = "\n" + s.layout.indent + s.layout.unit
		closeLeading = "\n" + s.layout.indent
	}

	var stmt *syntax.Node
	if s.env.flavor.Returns {
		stmt = factory.Branch(syntax.KindReturnStatement,
			factory.Punct("return", stmtLeading),
			call.WithLeading(" "),
		)
	} else {
		stmt = factory.Branch(syntax.KindExpressionStatement, call.WithLeading(stmtLeading))
	}

	if s.env.semicolons {
		stmt = stmt.With(append(stmt.Children, factory.Punct(";", "")))
	}

	return factory.Branch(syntax.KindStatementBlock,
		factory.Punct("{", " "),
		stmt,
		factory.Punct("}", closeLeading),
	)
}
