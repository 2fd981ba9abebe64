// Package adapter contains infrastructure adapters for the vuexpurge CLI.
package adapter

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
)

// ErrUnsupportedSource is returned when a path given explicitly is not a
// script the purge can handle.
var ErrUnsupportedSource = errors.New("unsupported source file")

// recursiveSuffix marks a path pattern that descends into sub-directories.
const recursiveSuffix = "/..."

// skippedDirs are never descended into.
var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
}

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning user projects. It hides direct `os` access so the
// workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Get resolves path patterns into the script sources below them.
	// A trailing "/..." descends into sub-directories; exclude holds regular
	// expressions matched against each file path.
	Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Source, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// WriteFile replaces the content of an existing file, keeping its mode.
	WriteFile(ctx context.Context, path m.Path, content []byte) error

	// HashFile returns the SHA-256 fingerprint of the file at path.
	HashFile(ctx context.Context, path m.Path) (string, error)
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get walks every path pattern and returns the matching sources sorted by
// path, without duplicates.
func (a *LocalSourceFSAdapter) Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Source, error) {
	patterns, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		paths = []m.Path{"." + recursiveSuffix}
	}

	seen := make(map[string]bool)

	var sources []m.Source

	for _, p := range paths {
		root, recursive := splitPattern(string(p))

		files, err := a.collect(ctx, root, recursive)
		if err != nil {
			return nil, err
		}

		for _, file := range files {
			if seen[file] || excluded(file, patterns) {
				continue
			}

			seen[file] = true

			source, err := a.source(ctx, file)
			if err != nil {
				return nil, err
			}

			sources = append(sources, source)
		}
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Origin.FullPath < sources[j].Origin.FullPath
	})

	return sources, nil
}

func splitPattern(p string) (string, bool) {
	if p == "..." {
		return ".", true
	}

	if strings.HasSuffix(p, recursiveSuffix) {
		root := strings.TrimSuffix(p, recursiveSuffix)
		if root == "" {
			root = "/"
		}

		return root, true
	}

	return p, false
}

func compileExcludes(exclude []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exclude))

	for _, expr := range exclude {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", expr, err)
		}

		patterns = append(patterns, re)
	}

	return patterns, nil
}

func excluded(path string, patterns []*regexp.Regexp) bool {
	slashed := filepath.ToSlash(path)

	for _, re := range patterns {
		if re.MatchString(slashed) {
			slog.Debug("excluded source", "path", path, "pattern", re.String())
			return true
		}
	}

	return false
}

// collect lists candidate files under root. Explicit files must be scripts;
// directory entries with other extensions are ignored.
func (a *LocalSourceFSAdapter) collect(ctx context.Context, root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}

	if !info.IsDir() {
		if _, ok := m.LanguageForPath(m.Path(root)); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, root)
		}

		return []string{filepath.Clean(root)}, nil
	}

	var files []string

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if path == root {
				return nil
			}

			if !recursive || skippedDirs[d.Name()] {
				return filepath.SkipDir
			}

			return nil
		}

		if _, ok := m.LanguageForPath(m.Path(path)); ok {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (a *LocalSourceFSAdapter) source(ctx context.Context, path string) (m.Source, error) {
	hash, err := a.HashFile(ctx, m.Path(path))
	if err != nil {
		return m.Source{}, fmt.Errorf("hash error for %s: %w", path, err)
	}

	lang, _ := m.LanguageForPath(m.Path(path))

	full, err := filepath.Abs(path)
	if err != nil {
		return m.Source{}, err
	}

	return m.Source{
		Origin: &m.File{
			FullPath:  m.Path(full),
			ShortPath: m.Path(filepath.ToSlash(path)),
			Hash:      hash,
		},
		Language: lang,
	}, nil
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(_ context.Context, path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile replaces the content of path, keeping the current permissions.
func (a *LocalSourceFSAdapter) WriteFile(_ context.Context, path m.Path, content []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(string(path)); err == nil {
		perm = info.Mode().Perm()
	}

	return os.WriteFile(string(path), content, perm)
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(_ context.Context, path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// HashBytes returns the SHA-256 hash of content, matching HashFile.
func HashBytes(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}
