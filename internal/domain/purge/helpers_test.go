package purge_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"vuexpurge.dev/pkg/vuexpurge/internal/adapter"
	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
	"vuexpurge.dev/pkg/vuexpurge/internal/syntax"
)

func parse(t *testing.T, src string, lang m.Language) *syntax.Node {
	t.Helper()

	root, err := adapter.NewLocalScriptFileAdapter().Parse(context.Background(), []byte(src), lang)
	require.NoError(t, err)
	require.Equal(t, src, root.FullText(), "parsed tree must print back verbatim")

	return root
}

// find returns the first node of the given kind in document order.
func find(root *syntax.Node, kind syntax.Kind) *syntax.Node {
	var found *syntax.Node

	syntax.Inspect(root, func(n *syntax.Node) bool {
		if found != nil {
			return false
		}

		if n.Kind == kind {
			found = n
			return false
		}

		return true
	})

	return found
}
