// Package domain contains the purge workflow: source discovery, in-memory
// rewriting, backups, verification and reporting.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"vuexpurge.dev/pkg/vuexpurge/internal/adapter"
	"vuexpurge.dev/pkg/vuexpurge/internal/domain/purge"
	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
	"vuexpurge.dev/pkg/vuexpurge/internal/syntax"
)

const diffContextLines = 3

// Rewriter purges a single source in memory.
type Rewriter interface {
	Rewrite(ctx context.Context, source m.Source, flavors ...purge.Flavor) (m.Rewrite, error)
}

type rewriter struct {
	adapter.ScriptFileAdapter
	adapter.SourceFSAdapter
}

// NewRewriter creates a new Rewriter instance.
func NewRewriter(scriptAdapter adapter.ScriptFileAdapter, fsAdapter adapter.SourceFSAdapter) Rewriter {
	return &rewriter{
		ScriptFileAdapter: scriptAdapter,
		SourceFSAdapter:   fsAdapter,
	}
}

// Rewrite reads the source, purges every script region of it and returns the
// original and rewritten content with a unified diff. Nothing is written.
func (rw *rewriter) Rewrite(ctx context.Context, source m.Source, flavors ...purge.Flavor) (m.Rewrite, error) {
	if err := validateSource(source); err != nil {
		return m.Rewrite{}, err
	}

	if len(flavors) == 0 {
		flavors = purge.DefaultFlavors
	}

	content, err := rw.ReadFile(ctx, source.Origin.FullPath)
	if err != nil {
		return m.Rewrite{}, fmt.Errorf("failed to read %s: %w", source.Origin.FullPath, err)
	}

	regions, err := rw.Regions(ctx, content, source.Language)
	if err != nil {
		return m.Rewrite{}, fmt.Errorf("failed to scan %s: %w", source.Origin.ShortPath, err)
	}

	transform := purge.ForFlavors(flavors...)

	var (
		out    strings.Builder
		counts m.Counts
		cursor int
	)

	for _, region := range regions {
		if err := ctx.Err(); err != nil {
			return m.Rewrite{}, err
		}

		text, stats, err := rw.rewriteRegion(ctx, transform, content, region)
		if err != nil {
			return m.Rewrite{}, fmt.Errorf("%s:%w", source.Origin.ShortPath, err)
		}

		out.Write(content[cursor:region.Start])
		out.WriteString(text)
		cursor = region.End

		counts = counts.Add(m.Counts{
			Rewritten: stats.Rewritten,
			Methods:   stats.Methods,
			Skipped:   stats.Skipped,
		})
	}

	out.Write(content[cursor:])

	result := m.Rewrite{
		Source:    source,
		Original:  content,
		Rewritten: []byte(out.String()),
		Counts:    counts,
	}

	if result.Changed() {
		result.Diff = unifiedDiff(string(source.Origin.ShortPath), content, result.Rewritten)
	}

	slog.Debug("rewrote source",
		"path", source.Origin.ShortPath,
		"regions", len(regions),
		"rewritten", counts.Rewritten,
		"methods", counts.Methods,
		"skipped", counts.Skipped)

	return result, nil
}

// rewriteRegion purges one script region. Errors carry the line of the
// offending code in the whole file.
func (rw *rewriter) rewriteRegion(ctx context.Context, transform purge.Transform, content []byte, region m.Region) (string, purge.Stats, error) {
	text := content[region.Start:region.End]

	root, err := rw.Parse(ctx, text, region.Language)
	if err != nil {
		var syntaxErr *adapter.SyntaxError
		if errors.As(err, &syntaxErr) {
			return "", purge.Stats{}, fmt.Errorf("%d: %w", lineAt(content, region.Start+syntaxErr.Offset), err)
		}

		return "", purge.Stats{}, fmt.Errorf(" %w", err)
	}

	result, err := transform.Transform(root)
	if err != nil {
		var argErr *purge.ArgumentError
		if errors.As(err, &argErr) && argErr.Offset >= 0 {
			return "", purge.Stats{}, fmt.Errorf("%d: %w", lineAt(content, region.Start+argErr.Offset), err)
		}

		return "", purge.Stats{}, fmt.Errorf(" %w", err)
	}

	return result.Root.FullText(), result.Stats, nil
}

func lineAt(content []byte, offset int) int {
	return syntax.Line(string(content), offset)
}

func validateSource(source m.Source) error {
	if source.Origin == nil || source.Origin.FullPath == "" {
		return fmt.Errorf("missing source origin")
	}

	return nil
}

func unifiedDiff(path string, original, rewritten []byte) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(rewritten)),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  diffContextLines,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		slog.Error("failed to build diff", "path", path, "error", err)
		return ""
	}

	return text
}
