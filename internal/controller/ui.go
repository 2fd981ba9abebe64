// Package controller provides output adapters for displaying purge progress
// and reports.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeList StartMode = iota
	ModeRun
	ModeView
	ModeRestore
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode      StartMode
	showDiffs bool
}

// WithListMode sets the UI to pending-changes listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithRunMode sets the UI to rewrite execution mode.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// WithViewMode sets the UI to report viewing mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

// WithRestoreMode sets the UI to backup restore mode.
func WithRestoreMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRestore
	}
}

// WithDiffs prints the diff of every rewritten file as it completes.
func WithDiffs(show bool) StartOption {
	return func(c *StartConfig) {
		c.showDiffs = show
	}
}

func newStartConfig(options []StartOption) StartConfig {
	var config StartConfig
	for _, option := range options {
		option(&config)
	}

	return config
}

// UI defines the interface for displaying purge progress and reports.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayConcurrencyInfo(ctx context.Context, threads int, files int, dryRun bool)
	DisplayStartingFile(ctx context.Context, source m.Source)
	DisplayCompletedFile(ctx context.Context, report m.FileReport)
	DisplayPending(ctx context.Context, report m.RunReport) error
	DisplayReport(ctx context.Context, report m.RunReport) error
	DisplayRestored(ctx context.Context, restored []m.Path, skipped []m.Path)
}

// NewUI picks the interactive UI for terminals and plain text otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
