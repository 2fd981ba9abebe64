package domain

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
)

func TestRunError(t *testing.T) {
	assert.NoError(t, runError(m.RunReport{}))
	assert.NoError(t, runError(m.RunReport{Verify: &m.VerifyResult{Passed: true}}))

	err := runError(m.RunReport{
		Totals: m.Totals{Files: 4, Failed: 1},
		Verify: &m.VerifyResult{Command: "npm test"},
	})
	assert.ErrorIs(t, err, ErrFilesFailed)
	assert.ErrorIs(t, err, ErrVerifyFailed)
	assert.Contains(t, err.Error(), "1 of 4")
}

func TestEffectiveThreads(t *testing.T) {
	tests := []struct {
		threads, files, want int
	}{
		{threads: 4, files: 10, want: 4},
		{threads: 8, files: 3, want: 3},
		{threads: 2, files: 0, want: 2},
		{threads: 0, files: 1, want: 1},
	}

	for _, tt := range tests {
		if got := effectiveThreads(tt.threads, tt.files); got != tt.want {
			t.Fatalf("effectiveThreads(%d, %d) = %d, want %d", tt.threads, tt.files, got, tt.want)
		}
	}

	want := runtime.NumCPU()
	if got := effectiveThreads(0, want+1); got != want {
		t.Fatalf("effectiveThreads(0, %d) = %d, want %d", want+1, got, want)
	}
}

func TestTailLines(t *testing.T) {
	assert.Empty(t, tailLines("\n", 3))
	assert.Equal(t, "a\nb", tailLines("a\nb\n", 3))
	assert.Equal(t, "c\nd", tailLines("a\nb\nc\nd\n", 2))
	assert.Len(t, strings.Split(tailLines(strings.Repeat("x\n", 100), verifyOutputLines), "\n"), verifyOutputLines)
}
