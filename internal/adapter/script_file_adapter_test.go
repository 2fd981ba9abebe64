package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
	"vuexpurge.dev/pkg/vuexpurge/internal/syntax"
)

func TestLocalScriptFileAdapter_ParseIsLossless(t *testing.T) {
	tests := []struct {
		name string
		lang m.Language
		src  string
	}{
		{"empty", m.LanguageJavaScript, ""},
		{"only comments", m.LanguageJavaScript, "// a\n/* b */\n"},
		{"javascript", m.LanguageJavaScript, "// [vuex-map-purge]: js\nimport { mapActions } from 'vuex'\n\nexport default {\n  methods: {\n    ...mapActions(['a']), // trailing\n  },\n}\n"},
		{"typescript", m.LanguageTypeScript, "const re = /a+b/g;\nconst s = `x ${1 + 2} y`;\nfunction f(a: number): string { return 'x\\n'; }\n"},
		{"tsx", m.LanguageTSX, "export const C = () => <div className=\"a\">{/* c */}text</div>;\n"},
		{"crlf", m.LanguageJavaScript, "a();\r\n\r\nb();\r\n"},
	}

	a := NewLocalScriptFileAdapter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := a.Parse(context.Background(), []byte(tt.src), tt.lang)
			require.NoError(t, err)

			assert.Equal(t, tt.src, root.FullText())

			last := root.Children[len(root.Children)-1]
			assert.Equal(t, syntax.KindEOF, last.Kind)
		})
	}
}

func TestLocalScriptFileAdapter_ParseKeepsFieldsAndAtoms(t *testing.T) {
	src := "x = { methods: { ...mapActions('ns', [`a`]) } };\n"

	root, err := NewLocalScriptFileAdapter().Parse(context.Background(), []byte(src), m.LanguageJavaScript)
	require.NoError(t, err)

	var pair, call, tmpl *syntax.Node

	syntax.Inspect(root, func(n *syntax.Node) bool {
		switch n.Kind {
		case syntax.KindPair:
			if pair == nil {
				pair = n
			}
		case syntax.KindCallExpression:
			call = n
		case syntax.KindTemplateString:
			tmpl = n
		}

		return true
	})

	require.NotNil(t, pair)
	assert.Equal(t, "methods", pair.ChildByField("key").Text)
	assert.Equal(t, syntax.KindObject, pair.ChildByField("value").Kind)

	require.NotNil(t, call)
	assert.Equal(t, "mapActions", call.ChildByField("function").Text)
	assert.Equal(t, syntax.KindArguments, call.ChildByField("arguments").Kind)

	require.NotNil(t, tmpl)
	assert.True(t, tmpl.IsLeaf())
	assert.Equal(t, "`a`", tmpl.Text)
	assert.Equal(t, len("x = { methods: { ...mapActions('ns', ["), tmpl.Start)
}

func TestLocalScriptFileAdapter_ParseCommentsBecomeTrivia(t *testing.T) {
	src := "x = {\n  // note\n  a: 1,\n};\n"

	root, err := NewLocalScriptFileAdapter().Parse(context.Background(), []byte(src), m.LanguageJavaScript)
	require.NoError(t, err)

	var pair *syntax.Node

	syntax.Inspect(root, func(n *syntax.Node) bool {
		if n.Kind == syntax.KindComment {
			t.Fatalf("comment emitted as node")
		}

		if n.Kind == syntax.KindPair {
			pair = n
		}

		return true
	})

	require.NotNil(t, pair)
	assert.Equal(t, "\n  // note\n  ", pair.LeadingTrivia())
}

func TestLocalScriptFileAdapter_ParseRejectsSyntaxErrors(t *testing.T) {
	src := "const x = {\n  methods: {\n    a() {\n  }\n"

	_, err := NewLocalScriptFileAdapter().Parse(context.Background(), []byte(src), m.LanguageJavaScript)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSyntax))

	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.GreaterOrEqual(t, syntaxErr.Offset, 0)
	assert.LessOrEqual(t, syntaxErr.Offset, len(src))
}

func TestLocalScriptFileAdapter_ParseUnsupportedLanguage(t *testing.T) {
	a := NewLocalScriptFileAdapter()

	_, err := a.Parse(context.Background(), []byte("x"), m.Language("cobol"))
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)

	_, err = a.Parse(context.Background(), []byte("<script></script>"), m.LanguageVue)
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestLocalScriptFileAdapter_RegionsPlainScript(t *testing.T) {
	src := []byte("export default {}\n")

	regions, err := NewLocalScriptFileAdapter().Regions(context.Background(), src, m.LanguageTypeScript)
	require.NoError(t, err)
	assert.Equal(t, []m.Region{{Start: 0, End: len(src), Language: m.LanguageTypeScript}}, regions)
}

func TestLocalScriptFileAdapter_RegionsVue(t *testing.T) {
	src := "<template>\n  <div @click=\"save\">{{ name }}</div>\n</template>\n\n" +
		"<script lang=\"ts\">\nexport default {}\n</script>\n\n" +
		"<script>\n\n  const a = 1\n</script>\n\n" +
		"<script setup></script>\n\n" +
		"<style scoped>\n.a { color: red; }\n</style>\n"

	regions, err := NewLocalScriptFileAdapter().Regions(context.Background(), []byte(src), m.LanguageVue)
	require.NoError(t, err)
	require.Len(t, regions, 2)

	assert.Equal(t, m.LanguageTypeScript, regions[0].Language)
	assert.Equal(t, "export default {}\n", src[regions[0].Start:regions[0].End])

	assert.Equal(t, m.LanguageJavaScript, regions[1].Language)
	assert.Equal(t, "const a = 1\n", src[regions[1].Start:regions[1].End])
}
