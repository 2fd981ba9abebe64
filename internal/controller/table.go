package controller

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"

	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
)

// pendingFiles keeps the files a run would change or could not handle.
func pendingFiles(files []m.FileReport) []m.FileReport {
	pending := make([]m.FileReport, 0, len(files))

	for _, f := range files {
		if f.Status == m.StatusUnchanged && f.Counts.Skipped == 0 {
			continue
		}

		pending = append(pending, f)
	}

	return pending
}

func renderPendingTable(report m.RunReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Spreads", "Methods", "Skipped"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	pending := pendingFiles(report.Files)
	for _, f := range pending {
		spreads := fmt.Sprintf("%d", f.Counts.Rewritten)
		if f.Status == m.StatusFailed {
			spreads = string(m.StatusFailed)
		}

		table.Append([]string{
			string(f.Path),
			spreads,
			fmt.Sprintf("%d", f.Counts.Methods),
			fmt.Sprintf("%d", f.Counts.Skipped),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(pending)),
		fmt.Sprintf("%d", report.Totals.Counts.Rewritten),
		fmt.Sprintf("%d", report.Totals.Counts.Methods),
		fmt.Sprintf("%d", report.Totals.Counts.Skipped),
	})

	table.Render()

	return tableBuffer.String()
}

func renderReportTable(report m.RunReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Status", "Spreads", "Methods", "Error"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	for _, f := range pendingFiles(report.Files) {
		table.Append([]string{
			string(f.Path),
			string(f.Status),
			fmt.Sprintf("%d", f.Counts.Rewritten),
			fmt.Sprintf("%d", f.Counts.Methods),
			f.Error,
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", report.Totals.Files),
		fmt.Sprintf("%d failed", report.Totals.Failed),
		fmt.Sprintf("%d", report.Totals.Counts.Rewritten),
		fmt.Sprintf("%d", report.Totals.Counts.Methods),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

// summaryLine is the one-line outcome of a run.
func summaryLine(report m.RunReport) string {
	verb := "Rewrote"
	if report.DryRun {
		verb = "Would rewrite"
	}

	return fmt.Sprintf("%s %d of %d file(s): %d spread(s) replaced by %d method(s), %d skipped, %d failed",
		verb,
		report.Totals.Rewritten,
		report.Totals.Files,
		report.Totals.Counts.Rewritten,
		report.Totals.Counts.Methods,
		report.Totals.Counts.Skipped,
		report.Totals.Failed)
}

func verifyLine(v *m.VerifyResult) string {
	if v == nil {
		return ""
	}

	status := "passed"
	if !v.Passed {
		status = "FAILED"
	}

	return fmt.Sprintf("Verification %q %s", v.Command, status)
}
