package adapter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
)

func TestLocalReportStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	dir := m.Path(filepath.Join(t.TempDir(), "reports"))
	store := NewLocalReportStore()

	files := []m.FileReport{
		{Path: "src/a.ts", Language: m.LanguageTypeScript, Status: m.StatusRewritten, Counts: m.Counts{Rewritten: 1, Methods: 2}, Diff: "--- a\n+++ b\n"},
		{Path: "src/b.js", Language: m.LanguageJavaScript, Status: m.StatusFailed, Error: "syntax error at line 3"},
	}
	report := m.RunReport{
		StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:  "1.5s",
		Flavors:   []string{"actions", "mutations"},
		Verify:    &m.VerifyResult{Command: "npx tsc --noEmit", Passed: true},
		Files:     files,
		Totals:    m.ComputeTotals(files),
	}

	path, err := store.SaveReport(ctx, dir, report)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(string(dir), ReportFileName), string(path))

	loaded, err := store.LoadReport(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, report, loaded)
}

func TestLocalReportStore_LoadMissing(t *testing.T) {
	_, err := NewLocalReportStore().LoadReport(context.Background(), m.Path(t.TempDir()))
	assert.True(t, errors.Is(err, ErrNoReport))
}

func TestLocalReportStore_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ReportFileName), []byte("files: [\n"), 0o600))

	_, err := NewLocalReportStore().LoadReport(context.Background(), m.Path(dir))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoReport))
}

func TestLocalBackupStore_CreateAndLoad(t *testing.T) {
	ctx := context.Background()
	store := NewLocalBackupStore()

	spill, err := store.Create(ctx, m.Path(filepath.Join(t.TempDir(), "backups")))
	require.NoError(t, err)

	backups := []m.Backup{
		{Path: "/p/a.ts", Content: []byte("a"), OriginalHash: HashBytes([]byte("a")), RewrittenHash: HashBytes([]byte("A"))},
		{Path: "/p/b.vue", Content: []byte("b"), OriginalHash: HashBytes([]byte("b")), RewrittenHash: HashBytes([]byte("B"))},
	}

	for _, b := range backups {
		require.NoError(t, spill.Append(b))
	}

	require.NoError(t, spill.Close())

	loaded, err := store.Load(ctx, m.Path(spill.Path()))
	require.NoError(t, err)
	assert.Equal(t, backups, loaded)
}

func TestLocalBackupStore_LoadMissing(t *testing.T) {
	_, err := NewLocalBackupStore().Load(context.Background(), m.Path(filepath.Join(t.TempDir(), "nope.gob")))
	assert.Error(t, err)
}
