package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
)

// ReportFileName is the file a run report is stored in, inside the reports
// directory.
const ReportFileName = "report.yaml"

// ErrNoReport is returned when the reports directory holds no report.
var ErrNoReport = errors.New("no report found")

// ReportStore persists the report of the last run.
type ReportStore interface {
	SaveReport(ctx context.Context, dir m.Path, report m.RunReport) (m.Path, error)
	LoadReport(ctx context.Context, dir m.Path) (m.RunReport, error)
}

// LocalReportStore stores reports as YAML files.
type LocalReportStore struct{}

// NewLocalReportStore constructs a LocalReportStore.
func NewLocalReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// SaveReport writes report to dir, replacing the previous one.
func (s *LocalReportStore) SaveReport(_ context.Context, dir m.Path, report m.RunReport) (m.Path, error) {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	data, err := yaml.Marshal(&report)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	path := filepath.Join(string(dir), ReportFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	slog.Debug("saved report", "path", path, "files", len(report.Files))

	return m.Path(path), nil
}

// LoadReport reads the report stored in dir.
func (s *LocalReportStore) LoadReport(_ context.Context, dir m.Path) (m.RunReport, error) {
	path := filepath.Join(string(dir), ReportFileName)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return m.RunReport{}, fmt.Errorf("%w in %s", ErrNoReport, dir)
	}

	if err != nil {
		return m.RunReport{}, fmt.Errorf("read report: %w", err)
	}

	var report m.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.RunReport{}, fmt.Errorf("decode report %s: %w", path, err)
	}

	return report, nil
}
