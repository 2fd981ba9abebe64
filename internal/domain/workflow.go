package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"vuexpurge.dev/pkg/vuexpurge/internal/adapter"
	"vuexpurge.dev/pkg/vuexpurge/internal/controller"
	"vuexpurge.dev/pkg/vuexpurge/internal/domain/purge"
	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
	"vuexpurge.dev/pkg/vuexpurge/pkg"
)

// BackupDirName is the directory inside the reports directory that holds
// backup spills.
const BackupDirName = "backups"

// ErrNoBackup is returned by Restore when the last run kept no backup.
var ErrNoBackup = errors.New("last run has no backup")

// ErrModifiedDuringRun is recorded for files that changed between discovery
// and write.
var ErrModifiedDuringRun = errors.New("file modified during run")

// ListArgs selects the sources and passes of a purge.
type ListArgs struct {
	Paths   []m.Path
	Exclude []string
	Flavors []string
	Threads int
}

// RunArgs contains the arguments for rewriting files in place.
type RunArgs struct {
	ListArgs
	Reports   m.Path
	DryRun    bool
	Backup    bool
	ShowDiffs bool
	Verify    string // shell command run after writing, empty to skip
	WorkDir   string

	VerifyTimeout time.Duration
}

// ViewArgs contains the arguments for showing the last report.
type ViewArgs struct {
	Reports m.Path
}

// RestoreArgs contains the arguments for undoing the last run.
type RestoreArgs struct {
	Reports m.Path
	Force   bool // restore files even if they changed since the run
}

// Workflow defines the commands of the purge tool.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
	Restore(ctx context.Context, args RestoreArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	adapter.BackupStore
	controller.UI
	Rewriter

	runner adapter.CommandRunnerAdapter
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	backupStore adapter.BackupStore,
	runner adapter.CommandRunnerAdapter,
	ui controller.UI,
	rewriter Rewriter,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		BackupStore:     backupStore,
		UI:              ui,
		Rewriter:        rewriter,
		runner:          runner,
	}
}

// commitFunc persists one changed file.
type commitFunc func(ctx context.Context, rw m.Rewrite) error

// Run rewrites every selected file in place, keeps a backup when asked,
// runs the verification command and saves the report.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	startedAt := time.Now()

	flavors, sources, err := w.prepare(ctx, args.ListArgs)
	if err != nil {
		return err
	}

	if err := w.Start(ctx, controller.WithRunMode(), controller.WithDiffs(args.ShowDiffs)); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	report := m.RunReport{
		StartedAt: startedAt,
		DryRun:    args.DryRun,
		Flavors:   flavorNames(flavors),
	}

	var commit commitFunc

	if !args.DryRun {
		var spill pkg.FileSpill[m.Backup]

		if args.Backup {
			spill, err = w.Create(ctx, m.Path(filepath.Join(string(args.Reports), BackupDirName)))
			if err != nil {
				return fmt.Errorf("backup: %w", err)
			}

			defer func() {
				if err := spill.Close(); err != nil {
					slog.Error("Failed to close backup", "path", spill.Path(), "error", err)
				}
			}()

			report.Backup = m.Path(spill.Path())
		}

		commit = w.writeCommit(spill)
	}

	threads := effectiveThreads(args.Threads, len(sources))
	w.DisplayConcurrencyInfo(ctx, threads, len(sources), args.DryRun)

	report.Files, err = w.process(ctx, sources, flavors, threads, commit)
	if err != nil {
		return fmt.Errorf("purge: %w", err)
	}

	report.Totals = m.ComputeTotals(report.Files)

	if commit != nil && args.Verify != "" && report.Totals.Rewritten > 0 {
		report.Verify = w.verify(ctx, args.WorkDir, args.Verify, args.VerifyTimeout)
	}

	report.Duration = time.Since(startedAt).Round(time.Millisecond).String()

	if !args.DryRun {
		if _, err := w.SaveReport(ctx, args.Reports, report); err != nil {
			slog.Error("Failed to save report", "error", err)
			return fmt.Errorf("save report: %w", err)
		}
	}

	if err := w.DisplayReport(ctx, report); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return runError(report)
}

// List shows what a run would change without writing anything.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	flavors, sources, err := w.prepare(ctx, args)
	if err != nil {
		return err
	}

	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	files, err := w.process(ctx, sources, flavors, effectiveThreads(args.Threads, len(sources)), nil)
	if err != nil {
		w.Close(ctx)
		return fmt.Errorf("purge: %w", err)
	}

	report := m.RunReport{
		DryRun:  true,
		Flavors: flavorNames(flavors),
		Files:   files,
		Totals:  m.ComputeTotals(files),
	}

	if err := w.DisplayPending(ctx, report); err != nil {
		w.Close(ctx)
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)
	w.Close(ctx)

	return runError(report)
}

// View shows the report of the last run.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.LoadReport(ctx, args.Reports)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		return err
	}

	defer w.Close(ctx)

	if err := w.DisplayReport(ctx, report); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return nil
}

// Restore writes back the originals recorded by the last run. Files edited
// since the run are left alone unless forced.
func (w *workflow) Restore(ctx context.Context, args RestoreArgs) error {
	report, err := w.LoadReport(ctx, args.Reports)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	if report.Backup == "" {
		return ErrNoBackup
	}

	backups, err := w.Load(ctx, report.Backup)
	if err != nil {
		return err
	}

	if err := w.Start(ctx, controller.WithRestoreMode()); err != nil {
		return err
	}

	defer w.Close(ctx)

	var restored, skipped []m.Path

	for _, backup := range backups {
		if err := ctx.Err(); err != nil {
			return err
		}

		current, err := w.HashFile(ctx, backup.Path)

		switch {
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("hash %s: %w", backup.Path, err)
		case !args.Force && current != backup.RewrittenHash:
			slog.Info("Skipping modified file", "path", backup.Path)

			skipped = append(skipped, backup.Path)

			continue
		}

		if err := w.WriteFile(ctx, backup.Path, backup.Content); err != nil {
			return fmt.Errorf("restore %s: %w", backup.Path, err)
		}

		restored = append(restored, backup.Path)
	}

	w.DisplayRestored(ctx, restored, skipped)

	if len(skipped) > 0 {
		return fmt.Errorf("%w: %d file(s) modified since the run, use --force to overwrite", ErrIncomplete, len(skipped))
	}

	return nil
}

func (w *workflow) prepare(ctx context.Context, args ListArgs) ([]purge.Flavor, []m.Source, error) {
	flavors, err := purge.ResolveFlavors(args.Flavors)
	if err != nil {
		return nil, nil, err
	}

	sources, err := w.Get(ctx, args.Paths, args.Exclude...)
	if err != nil {
		slog.Error("Failed to get sources", "error", err)
		return nil, nil, fmt.Errorf("get sources: %w", err)
	}

	slog.Info("Collected sources", "count", len(sources), "flavors", flavorNames(flavors))

	return flavors, sources, nil
}

// process purges sources on up to threads workers. Per-file failures are
// recorded in the file's report; only cancellation stops the run.
func (w *workflow) process(ctx context.Context, sources []m.Source, flavors []purge.Flavor, threads int, commit commitFunc) ([]m.FileReport, error) {
	files := make([]m.FileReport, len(sources))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for i, source := range sources {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			files[i] = w.processFile(groupCtx, source, flavors, commit)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return files, nil
}

func (w *workflow) processFile(ctx context.Context, source m.Source, flavors []purge.Flavor, commit commitFunc) m.FileReport {
	w.DisplayStartingFile(ctx, source)

	report := m.FileReport{
		Path:     source.Origin.ShortPath,
		Language: source.Language,
		Status:   m.StatusUnchanged,
	}

	rw, err := w.Rewrite(ctx, source, flavors...)
	if err == nil {
		report.Counts = rw.Counts

		if rw.Changed() {
			report.Status = m.StatusRewritten
			report.Diff = rw.Diff

			if commit != nil {
				err = commit(ctx, rw)
			}
		}
	}

	if err != nil {
		slog.Error("Failed to purge file", "path", source.Origin.ShortPath, "error", err)

		report.Status = m.StatusFailed
		report.Error = err.Error()
	}

	w.DisplayCompletedFile(ctx, report)

	return report
}

// writeCommit writes rewritten content to disk, recording the original in
// spill first when one is given.
func (w *workflow) writeCommit(spill pkg.FileSpill[m.Backup]) commitFunc {
	return func(ctx context.Context, rw m.Rewrite) error {
		origin := rw.Source.Origin

		originalHash := adapter.HashBytes(rw.Original)
		if origin.Hash != "" && origin.Hash != originalHash {
			return fmt.Errorf("%s: %w", origin.ShortPath, ErrModifiedDuringRun)
		}

		if spill != nil {
			err := spill.Append(m.Backup{
				Path:          origin.FullPath,
				Content:       rw.Original,
				OriginalHash:  originalHash,
				RewrittenHash: adapter.HashBytes(rw.Rewritten),
			})
			if err != nil {
				return fmt.Errorf("backup %s: %w", origin.ShortPath, err)
			}
		}

		if err := w.WriteFile(ctx, origin.FullPath, rw.Rewritten); err != nil {
			return fmt.Errorf("write %s: %w", origin.ShortPath, err)
		}

		return nil
	}
}

func (w *workflow) verify(ctx context.Context, workDir, command string, timeout time.Duration) *m.VerifyResult {
	slog.Info("Running verification", "command", command, "dir", workDir, "timeout", timeout)

	if timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	output, err := w.runner.Run(ctx, workDir, command)
	if err != nil {
		slog.Error("Verification failed", "command", command, "error", err)
	}

	return &m.VerifyResult{
		Command: command,
		Passed:  err == nil,
		Output:  tailLines(output, verifyOutputLines),
	}
}
