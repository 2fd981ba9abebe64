package controller

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd    *cobra.Command
	config StartConfig
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.config = newStartConfig(options)

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(_ context.Context) {}

// DisplayConcurrencyInfo shows how many files are processed and how.
func (s *SimpleUI) DisplayConcurrencyInfo(ctx context.Context, threads int, files int, dryRun bool) {
	if ctx.Err() != nil {
		return
	}

	mode := ""
	if dryRun {
		mode = " (dry run)"
	}

	s.printf("Purging %d file(s) with %d worker(s)%s\n", files, threads, mode)
}

// DisplayStartingFile is silent: completion lines carry the outcome.
func (s *SimpleUI) DisplayStartingFile(_ context.Context, _ m.Source) {}

// DisplayCompletedFile prints one line per processed file that changed or
// failed, followed by its diff when diffs are enabled. Only run mode reports
// progress.
func (s *SimpleUI) DisplayCompletedFile(ctx context.Context, report m.FileReport) {
	if ctx.Err() != nil || s.config.mode != ModeRun {
		return
	}

	switch report.Status {
	case m.StatusFailed:
		s.printf("%s: failed: %s\n", report.Path, report.Error)
	case m.StatusRewritten:
		s.printf("%s: %d spread(s) -> %d method(s)\n", report.Path, report.Counts.Rewritten, report.Counts.Methods)

		if s.config.showDiffs && report.Diff != "" {
			s.printf("%s\n", report.Diff)
		}
	case m.StatusUnchanged:
	}
}

// DisplayPending prints the files a run would change.
func (s *SimpleUI) DisplayPending(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderPendingTable(report))

	return nil
}

// DisplayReport prints the per-file table and the run summary.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s\n%s\n", renderReportTable(report), summaryLine(report))

	if line := verifyLine(report.Verify); line != "" {
		s.printf("%s\n", line)
	}

	if report.Backup != "" {
		s.printf("Backup: %s\n", report.Backup)
	}

	return nil
}

// DisplayRestored lists the files written back from a backup.
func (s *SimpleUI) DisplayRestored(ctx context.Context, restored []m.Path, skipped []m.Path) {
	if ctx.Err() != nil {
		return
	}

	for _, p := range restored {
		s.printf("restored %s\n", p)
	}

	for _, p := range skipped {
		s.printf("skipped %s: modified since the run\n", p)
	}

	s.printf("Restored %d file(s), skipped %d\n", len(restored), len(skipped))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
