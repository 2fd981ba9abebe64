package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
	"vuexpurge.dev/pkg/vuexpurge/internal/syntax"
)

// ErrSyntax is wrapped by SyntaxError.
var ErrSyntax = errors.New("syntax error")

// ErrUnsupportedLanguage is returned for languages without a grammar.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// SyntaxError reports the first error node of a parsed script.
type SyntaxError struct {
	Offset int // byte offset in the parsed content
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at offset %d", ErrSyntax, e.Offset)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// ScriptFileAdapter encapsulates tree-sitter parsing so the domain layer only
// deals with the lossless syntax tree.
type ScriptFileAdapter interface {
	// Parse builds a lossless tree of a JavaScript, TypeScript or TSX script.
	// Scripts with syntax errors are rejected with a *SyntaxError.
	Parse(ctx context.Context, content []byte, lang m.Language) (*syntax.Node, error)

	// Regions returns the script ranges of a file: the whole file for plain
	// scripts, every <script> block body for Vue components.
	Regions(ctx context.Context, content []byte, lang m.Language) ([]m.Region, error)
}

// LocalScriptFileAdapter provides a ScriptFileAdapter backed by the
// tree-sitter grammars.
type LocalScriptFileAdapter struct{}

// NewLocalScriptFileAdapter constructs a LocalScriptFileAdapter.
func NewLocalScriptFileAdapter() *LocalScriptFileAdapter {
	return &LocalScriptFileAdapter{}
}

func grammar(lang m.Language) (*sitter.Language, error) {
	switch lang {
	case m.LanguageJavaScript:
		return javascript.GetLanguage(), nil
	case m.LanguageTypeScript:
		return typescript.GetLanguage(), nil
	case m.LanguageTSX:
		return tsx.GetLanguage(), nil
	case m.LanguageVue:
		return html.GetLanguage(), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
}

func parseTree(ctx context.Context, content []byte, lang m.Language) (*sitter.Tree, error) {
	language, err := grammar(lang)
	if err != nil {
		return nil, err
	}

	// A parser per call keeps the adapter safe for concurrent use.
	parser := sitter.NewParser()
	parser.SetLanguage(language)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}

	return tree, nil
}

// Parse builds the lossless tree of a script.
func (a *LocalScriptFileAdapter) Parse(ctx context.Context, content []byte, lang m.Language) (*syntax.Node, error) {
	if lang == m.LanguageVue {
		return nil, fmt.Errorf("%w: parse the script regions of a vue file", ErrUnsupportedLanguage)
	}

	tree, err := parseTree(ctx, content, lang)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter returned nil root node")
	}

	if root.HasError() {
		return nil, &SyntaxError{Offset: firstError(root)}
	}

	return convertTree(root, content), nil
}

// firstError returns the offset of the first error or missing node.
func firstError(n *sitter.Node) int {
	if syntax.Kind(n.Type()) == syntax.KindError || n.IsMissing() {
		return int(n.StartByte())
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() {
			continue
		}

		return firstError(child)
	}

	return int(n.StartByte())
}

// converter mirrors a tree-sitter tree into a syntax tree. Comments are not
// emitted as nodes: the bytes between two emitted tokens, comments included,
// become the leading trivia of the second one.
type converter struct {
	src    []byte
	cursor int
}

func convertTree(root *sitter.Node, src []byte) *syntax.Node {
	c := &converter{src: src}

	var children []*syntax.Node
	if program := c.convert(root, ""); program != nil {
		children = program.Children
	}

	children = append(children, &syntax.Node{
		Kind:    syntax.KindEOF,
		Named:   true,
		Leading: string(src[c.cursor:]),
		Start:   len(src),
	})

	return &syntax.Node{
		Kind:     syntax.Kind(root.Type()),
		Named:    true,
		Start:    0,
		Children: children,
	}
}

func (c *converter) convert(n *sitter.Node, field string) *syntax.Node {
	if n == nil || n.IsMissing() {
		return nil
	}

	kind := syntax.Kind(n.Type())
	if kind == syntax.KindComment {
		return nil
	}

	if n.ChildCount() == 0 || syntax.IsAtomic(kind) {
		return c.leaf(n, kind, field)
	}

	children := make([]*syntax.Node, 0, n.ChildCount())

	for i := 0; i < int(n.ChildCount()); i++ {
		if child := c.convert(n.Child(i), n.FieldNameForChild(i)); child != nil {
			children = append(children, child)
		}
	}

	if len(children) == 0 {
		return nil
	}

	return &syntax.Node{
		Kind:     kind,
		Field:    field,
		Named:    n.IsNamed(),
		Start:    int(n.StartByte()),
		Children: children,
	}
}

func (c *converter) leaf(n *sitter.Node, kind syntax.Kind, field string) *syntax.Node {
	start, end := int(n.StartByte()), int(n.EndByte())
	if start < c.cursor {
		start = c.cursor
	}

	if end < start {
		end = start
	}

	leaf := &syntax.Node{
		Kind:    kind,
		Field:   field,
		Named:   n.IsNamed(),
		Leading: string(c.src[c.cursor:start]),
		Text:    string(c.src[start:end]),
		Start:   start,
	}
	c.cursor = end

	return leaf
}

// Regions returns the script ranges of a file.
func (a *LocalScriptFileAdapter) Regions(ctx context.Context, content []byte, lang m.Language) ([]m.Region, error) {
	if lang != m.LanguageVue {
		if _, err := grammar(lang); err != nil {
			return nil, err
		}

		return []m.Region{{Start: 0, End: len(content), Language: lang}}, nil
	}

	tree, err := parseTree(ctx, content, lang)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var regions []m.Region

	walk(tree.RootNode(), func(n *sitter.Node) bool {
		if n.Type() != string(syntax.KindScriptElement) {
			return true
		}

		if region, ok := scriptRegion(n, content); ok {
			regions = append(regions, region)
		}

		return false
	})

	return regions, nil
}

func walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), fn)
	}
}

// scriptRegion extracts the body of a <script> element. Whitespace before the
// first token stays outside the region so the body text starts with its first
// comment or statement.
func scriptRegion(n *sitter.Node, content []byte) (m.Region, bool) {
	var (
		lang string
		body *sitter.Node
	)

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)

		switch syntax.Kind(child.Type()) {
		case syntax.KindStartTag:
			lang = attribute(child, content, "lang")
		case syntax.KindRawText:
			body = child
		}
	}

	if body == nil {
		return m.Region{}, false
	}

	start, end := int(body.StartByte()), int(body.EndByte())
	for start < end && strings.ContainsRune(" \t\r\n", rune(content[start])) {
		start++
	}

	if start == end {
		return m.Region{}, false
	}

	return m.Region{Start: start, End: end, Language: m.ScriptLanguage(lang)}, true
}

// attribute returns the value of the named attribute of a start tag.
func attribute(tag *sitter.Node, content []byte, name string) string {
	for i := 0; i < int(tag.ChildCount()); i++ {
		attr := tag.Child(i)
		if syntax.Kind(attr.Type()) != syntax.KindAttribute {
			continue
		}

		var key, value string

		for j := 0; j < int(attr.ChildCount()); j++ {
			part := attr.Child(j)

			switch syntax.Kind(part.Type()) {
			case syntax.KindAttributeName:
				key = part.Content(content)
			case syntax.KindAttributeValue:
				value = part.Content(content)
			case syntax.KindQuotedAttributeValue:
				value = strings.Trim(part.Content(content), `"'`)
			}
		}

		if strings.EqualFold(key, name) {
			return value
		}
	}

	return ""
}
