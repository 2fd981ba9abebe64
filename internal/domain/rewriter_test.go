package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vuexpurge.dev/pkg/vuexpurge/internal/adapter"
	"vuexpurge.dev/pkg/vuexpurge/internal/domain/purge"
	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
)

const actionsTS = `export default {
  methods: {
    ...mapActions('cart', ['add']),
  },
};
`

const actionsTSPurged = `export default {
  methods: {
    add(payload?: any): Promise<any> {
      return this.$store.dispatch('cart/add', payload);
    },
  },
};
`

const componentVue = `<template>
  <button @click="inc">+</button>
</template>

<script>
// [vuex-map-purge]: js
import { mapMutations } from 'vuex'

export default {
  methods: {
    ...mapMutations(['inc'])
  }
}
</script>
`

const componentVuePurged = `<template>
  <button @click="inc">+</button>
</template>

<script>
// [vuex-map-purge]: js
import { mapMutations } from 'vuex'

export default {
  methods: {
    inc(payload) {
      this.$store.commit('inc', payload)
    }
  }
}
</script>
`

func newTestRewriter() Rewriter {
	return NewRewriter(adapter.NewLocalScriptFileAdapter(), adapter.NewLocalSourceFSAdapter())
}

func testSource(t *testing.T, dir, name, content string) m.Source {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lang, ok := m.LanguageForPath(m.Path(path))
	require.True(t, ok, "unsupported fixture %s", name)

	return m.Source{
		Origin: &m.File{
			FullPath:  m.Path(path),
			ShortPath: m.Path(name),
			Hash:      adapter.HashBytes([]byte(content)),
		},
		Language: lang,
	}
}

func TestRewriter_Rewrite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		flavors []purge.Flavor
		want    string
		counts  m.Counts
	}{
		{
			name:    "typescript file",
			file:    "store/cart.ts",
			content: actionsTS,
			want:    actionsTSPurged,
			counts:  m.Counts{Rewritten: 1, Methods: 1},
		},
		{
			name:    "vue component script block",
			file:    "components/Counter.vue",
			content: componentVue,
			want:    componentVuePurged,
			counts:  m.Counts{Rewritten: 1, Methods: 1},
		},
		{
			name:    "flavor not selected",
			file:    "store/other.ts",
			content: actionsTS,
			flavors: []purge.Flavor{purge.Mutations},
			want:    actionsTS,
		},
		{
			name:    "nothing to purge",
			file:    "plain.js",
			content: "export const a = 1;\n",
			want:    "export const a = 1;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := testSource(t, dir, tt.file, tt.content)

			result, err := newTestRewriter().Rewrite(ctx, source, tt.flavors...)
			require.NoError(t, err)

			assert.Equal(t, tt.content, string(result.Original))
			assert.Equal(t, tt.want, string(result.Rewritten))
			assert.Equal(t, tt.counts, result.Counts)
			assert.Equal(t, tt.want != tt.content, result.Changed())

			if result.Changed() {
				assert.Contains(t, result.Diff, "--- a/"+tt.file)
				assert.Contains(t, result.Diff, "+++ b/"+tt.file)
			} else {
				assert.Empty(t, result.Diff)
			}

			// Rewrite never touches the file.
			onDisk, err := os.ReadFile(string(source.Origin.FullPath))
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(onDisk))
		})
	}
}

func TestRewriter_RewriteSyntaxErrorReportsLine(t *testing.T) {
	source := testSource(t, t.TempDir(), "broken.ts", "export default {\n  methods: {\n    a( {\n};\n")

	_, err := newTestRewriter().Rewrite(context.Background(), source)
	require.Error(t, err)

	assert.True(t, errors.Is(err, adapter.ErrSyntax))
	assert.Regexp(t, `^broken\.ts:\d+: `, err.Error())
}

func TestRewriter_RewriteUnexpectedArgumentReportsLine(t *testing.T) {
	content := "export default {\n  methods: {\n    ...mapActions([name]),\n  },\n};\n"
	source := testSource(t, t.TempDir(), "bad.ts", content)

	_, err := newTestRewriter().Rewrite(context.Background(), source)
	require.Error(t, err)

	assert.ErrorIs(t, err, purge.ErrUnexpectedArgument)
	assert.Contains(t, err.Error(), "bad.ts:3: ")
}

func TestRewriter_RewriteVueLineNumbersAreFileRelative(t *testing.T) {
	content := "<template><div /></template>\n\n<script lang=\"ts\">\nexport default {\n  methods: {\n    ...mapMutations([other]),\n  },\n};\n</script>\n"
	source := testSource(t, t.TempDir(), "Bad.vue", content)

	_, err := newTestRewriter().Rewrite(context.Background(), source)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "Bad.vue:6: ")
}

func TestRewriter_RewriteMissingOrigin(t *testing.T) {
	_, err := newTestRewriter().Rewrite(context.Background(), m.Source{})
	assert.Error(t, err)
}

func TestRewriter_RewriteMissingFile(t *testing.T) {
	source := m.Source{
		Origin:   &m.File{FullPath: m.Path(filepath.Join(t.TempDir(), "gone.js")), ShortPath: "gone.js"},
		Language: m.LanguageJavaScript,
	}

	_, err := newTestRewriter().Rewrite(context.Background(), source)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
