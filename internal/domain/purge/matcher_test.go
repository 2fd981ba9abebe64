package purge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vuexpurge.dev/pkg/vuexpurge/internal/domain/purge"
	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
	"vuexpurge.dev/pkg/vuexpurge/internal/syntax"
)

func TestIsTargetProperty(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"x = { methods: {} }", true},
		{"x = { methods: other }", true},
		{"x = { methods2: {} }", false},
		{"x = { 'methods': {} }", false},
		{"x = { ['methods']: {} }", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			pair := find(parse(t, tt.src, m.LanguageJavaScript), syntax.KindPair)
			require.NotNil(t, pair)
			assert.Equal(t, tt.want, purge.IsTargetProperty(pair))
		})
	}

	assert.False(t, purge.IsTargetProperty(nil))
}

func TestIsMappedSpread(t *testing.T) {
	tests := []struct {
		src    string
		helper string
		want   bool
	}{
		{"x = { ...mapActions(['a']) }", "mapActions", true},
		{"x = { ...mapActions() }", "mapActions", true},
		{"x = { ...mapActions(['a']) }", "mapMutations", false},
		{"x = { ...vuex.mapActions(['a']) }", "mapActions", false},
		{"x = { ...mapActions }", "mapActions", false},
	}

	for _, tt := range tests {
		t.Run(tt.src+"/"+tt.helper, func(t *testing.T) {
			spread := find(parse(t, tt.src, m.LanguageJavaScript), syntax.KindSpreadElement)
			require.NotNil(t, spread)
			assert.Equal(t, tt.want, purge.IsMappedSpread(spread, tt.helper))
		})
	}
}

func TestExtractArguments(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		namespace string
		methods   []string // empty entry for array-form mappings
		targets   []string
		wantErr   bool
	}{
		{"names", "f(['a', 'b'])", "", []string{"", ""}, []string{"'a'", "'b'"}, false},
		{"namespace and names", "f('ns', ['a'])", "ns", []string{""}, []string{"'a'"}, false},
		{"non-literal element is returned as is", "f([a])", "", []string{""}, []string{"a"}, false},
		{"object", "f({ a: 'x', 'b-c': \"y\" })", "", []string{"a", "'b-c'"}, []string{"'x'", "\"y\""}, false},
		{"namespace and object", "f('ns', { a: 'x' })", "ns", []string{"a"}, []string{"'x'"}, false},
		{"empty", "f([])", "", []string{}, []string{}, false},
		{"hole", "f(['a', , 'b'])", "", []string{"", "", ""}, []string{"'a'", "", "'b'"}, false},
		{"leading hole", "f([, 'a'])", "", []string{"", ""}, []string{"", "'a'"}, false},
		{"trailing comma is not a hole", "f(['a',])", "", []string{""}, []string{"'a'"}, false},
		{"no arguments", "f()", "", nil, nil, true},
		{"identifier", "f(names)", "", nil, nil, true},
		{"template namespace", "f(`ns`, ['a'])", "", nil, nil, true},
		{"object with shorthand", "f({ a })", "", nil, nil, true},
		{"object with function value", "f({ a: () => 1 })", "", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := find(parse(t, tt.src, m.LanguageJavaScript), syntax.KindArguments)
			require.NotNil(t, args)

			ext, err := purge.ExtractArguments(args)
			if tt.wantErr {
				assert.ErrorIs(t, err, purge.ErrUnsupportedArguments)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.namespace, ext.Namespace)
			require.Len(t, ext.Names, len(tt.targets))

			for i, mapping := range ext.Names {
				assert.Equal(t, tt.targets[i], mapping.Target.SourceText())

				if tt.methods[i] == "" {
					assert.Nil(t, mapping.Method)
				} else {
					assert.Equal(t, tt.methods[i], mapping.Method.SourceText())
				}
			}
		})
	}

	_, err := purge.ExtractArguments(nil)
	assert.ErrorIs(t, err, purge.ErrUnsupportedArguments)
}

func TestDetectDialect(t *testing.T) {
	assert.Equal(t, purge.DialectDynamic, purge.DetectDialect(parse(t, "// [vuex-map-purge]: js\nx = 1;\n", m.LanguageJavaScript)))
	assert.Equal(t, purge.DialectTyped, purge.DetectDialect(parse(t, "x = 1; // [vuex-map-purge]: js\n", m.LanguageJavaScript)))
	assert.Equal(t, purge.DialectTyped, purge.DetectDialect(parse(t, "", m.LanguageJavaScript)))
	assert.Equal(t, purge.DialectTyped, purge.DetectDialect(parse(t, "// [vuex-map-purge]\n", m.LanguageJavaScript)))
	assert.Equal(t, purge.DialectDynamic, purge.DetectDialect(parse(t, "// [vuex-map-purge]: jsx\n", m.LanguageJavaScript)))
	assert.Equal(t, "js", purge.DialectDynamic.String())
	assert.Equal(t, "ts", purge.DialectTyped.String())
}

func TestDetectSemicolons(t *testing.T) {
	assert.True(t, purge.DetectSemicolons(parse(t, "a();\nb();\n", m.LanguageJavaScript)))
	assert.False(t, purge.DetectSemicolons(parse(t, "a()\nb()\nc();\n", m.LanguageJavaScript)))
	assert.True(t, purge.DetectSemicolons(parse(t, "export default {}\n", m.LanguageJavaScript)))
}
