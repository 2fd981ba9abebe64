package model

import "time"

// Status is the outcome of one file in a run.
type Status string

const (
	// StatusRewritten means at least one mapped spread was replaced.
	StatusRewritten Status = "rewritten"
	// StatusUnchanged means nothing in the file matched.
	StatusUnchanged Status = "unchanged"
	// StatusFailed means the file could not be parsed or purged.
	StatusFailed Status = "failed"
)

// FileReport records what happened to one file.
type FileReport struct {
	Path     Path     `yaml:"path"`
	Language Language `yaml:"language"`
	Status   Status   `yaml:"status"`
	Counts   Counts   `yaml:"counts"`
	Error    string   `yaml:"error,omitempty"`
	Diff     string   `yaml:"diff,omitempty"`
}

// Totals aggregates a run.
type Totals struct {
	Files     int    `yaml:"files"`
	Rewritten int    `yaml:"rewritten"`
	Unchanged int    `yaml:"unchanged"`
	Failed    int    `yaml:"failed"`
	Counts    Counts `yaml:"counts"`
}

// RunReport is persisted after every run.
type RunReport struct {
	StartedAt time.Time     `yaml:"started_at"`
	Duration  string        `yaml:"duration"`
	DryRun    bool          `yaml:"dry_run"`
	Flavors   []string      `yaml:"flavors"`
	Backup    Path          `yaml:"backup,omitempty"`
	Verify    *VerifyResult `yaml:"verify,omitempty"`
	Files     []FileReport  `yaml:"files"`
	Totals    Totals        `yaml:"totals"`
}

// VerifyResult is the outcome of the post-write verification command.
type VerifyResult struct {
	Command string `yaml:"command"`
	Passed  bool   `yaml:"passed"`
	Output  string `yaml:"output,omitempty"`
}

// ComputeTotals sums the file reports.
func ComputeTotals(files []FileReport) Totals {
	totals := Totals{Files: len(files)}

	for _, f := range files {
		switch f.Status {
		case StatusRewritten:
			totals.Rewritten++
		case StatusUnchanged:
			totals.Unchanged++
		case StatusFailed:
			totals.Failed++
		}

		totals.Counts = totals.Counts.Add(f.Counts)
	}

	return totals
}
