package purge

import "vuexpurge.dev/pkg/vuexpurge/internal/syntax"

// Marker opts a whole file into untyped generated signatures when it is the
// very first text of the tree.
const Marker = "// [vuex-map-purge]: js"

// Dialect is the shape of generated method signatures.
type Dialect int

const (
	// DialectTyped emits TypeScript parameter and return annotations.
	DialectTyped Dialect = iota
	// DialectDynamic emits plain JavaScript signatures.
	DialectDynamic
)

// Typed reports whether signatures carry type annotations.
func (d Dialect) Typed() bool {
	return d == DialectTyped
}

func (d Dialect) String() string {
	if d == DialectDynamic {
		return "js"
	}

	return "ts"
}

// DetectDialect inspects the start of the root, leading trivia included.
func DetectDialect(root *syntax.Node) Dialect {
	if root != nil && root.Prefix(len(Marker)) == Marker {
		return DialectDynamic
	}

	return DialectTyped
}

// statementKinds are the statements whose terminator reveals whether the
// file uses semicolons.
var statementKinds = map[syntax.Kind]bool{
	syntax.KindExpressionStatement: true,
	syntax.KindReturnStatement:     true,
	syntax.KindLexicalDeclaration:  true,
	syntax.KindVariableDeclaration: true,
	syntax.KindImportStatement:     true,
}

// DetectSemicolons reports whether the file terminates statements with
// semicolons. Files without any such statement default to semicolons.
func DetectSemicolons(root *syntax.Node) bool {
	with, without := 0, 0

	syntax.Inspect(root, func(n *syntax.Node) bool {
		if !statementKinds[n.Kind] || n.IsLeaf() {
			return true
		}

		if n.Children[len(n.Children)-1].Kind == syntax.KindSemicolon {
			with++
		} else {
			without++
		}

		return true
	})

	return with >= without
}
