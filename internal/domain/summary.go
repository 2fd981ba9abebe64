package domain

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"vuexpurge.dev/pkg/vuexpurge/internal/domain/purge"
	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
)

// Errors returned after a run finished, so callers can exit non-zero.
var (
	ErrFilesFailed  = errors.New("some files could not be purged")
	ErrVerifyFailed = errors.New("verification command failed")
	ErrIncomplete   = errors.New("restore incomplete")
)

const verifyOutputLines = 40

// runError summarizes the failures of a finished run.
func runError(report m.RunReport) error {
	var errs []error

	if report.Totals.Failed > 0 {
		errs = append(errs, fmt.Errorf("%w: %d of %d", ErrFilesFailed, report.Totals.Failed, report.Totals.Files))
	}

	if report.Verify != nil && !report.Verify.Passed {
		errs = append(errs, fmt.Errorf("%w: %s", ErrVerifyFailed, report.Verify.Command))
	}

	return errors.Join(errs...)
}

// effectiveThreads bounds the worker count by the number of files.
func effectiveThreads(threads, files int) int {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	if files > 0 && threads > files {
		threads = files
	}

	if threads < 1 {
		threads = 1
	}

	return threads
}

func flavorNames(flavors []purge.Flavor) []string {
	names := make([]string, 0, len(flavors))
	for _, f := range flavors {
		names = append(names, f.Name)
	}

	return names
}

// tailLines keeps the last n lines of output.
func tailLines(output string, n int) string {
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return ""
	}

	lines := strings.Split(output, "\n")
	if len(lines) <= n {
		return output
	}

	return strings.Join(lines[len(lines)-n:], "\n")
}
