package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
)

const banner = "vuexpurge - Vuex helper purge"

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	config  StartConfig
	program *tea.Program
	done    chan struct{}
	once    sync.Once
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start initializes the UI. Run mode starts the progress program in the
// background; other modes render on demand.
func (p *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.config = newStartConfig(options)
	if p.config.mode != ModeRun {
		return nil
	}

	p.program = tea.NewProgram(newProgressModel(), tea.WithOutput(p.output), tea.WithInput(nil))
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)

		_, _ = p.program.Run()
	}()

	return nil
}

// Close stops the progress program and waits for its last frame.
func (p *TUI) Close(_ context.Context) {
	if p.program == nil {
		return
	}

	p.once.Do(func() {
		p.program.Quit()
		<-p.done
	})
}

// Wait blocks until the progress program exits or ctx is done.
func (p *TUI) Wait(ctx context.Context) {
	if p.done == nil {
		return
	}

	select {
	case <-p.done:
	case <-ctx.Done():
	}
}

// DisplayConcurrencyInfo shows how many files are processed and how.
func (p *TUI) DisplayConcurrencyInfo(_ context.Context, threads int, files int, dryRun bool) {
	p.send(concurrencyMsg{threads: threads, files: files, dryRun: dryRun})
}

// DisplayStartingFile marks a file as in flight.
func (p *TUI) DisplayStartingFile(_ context.Context, source m.Source) {
	if source.Origin == nil {
		return
	}

	p.send(startingFileMsg{path: source.Origin.ShortPath})
}

// DisplayCompletedFile records the outcome of one file.
func (p *TUI) DisplayCompletedFile(_ context.Context, report m.FileReport) {
	p.send(completedFileMsg{report: report, showDiff: p.config.showDiffs})
}

// DisplayPending shows the files a run would change, paging when the list
// does not fit the terminal.
func (p *TUI) DisplayPending(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(banner) + "\n\n")
	b.WriteString(renderPendingTable(report))
	fmt.Fprintf(&b, "\n%s\n", summaryLine(report))

	return p.page(b.String())
}

// DisplayReport shows the per-file table and the run summary. In run mode
// the summary becomes the final frame of the progress program.
func (p *TUI) DisplayReport(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if p.program != nil {
		p.send(reportMsg{report: report})
		p.Close(ctx)

		return nil
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(banner) + "\n\n")
	b.WriteString(renderReportTable(report))
	b.WriteString("\n" + renderSummary(report))

	return p.page(b.String())
}

// DisplayRestored lists the files written back from a backup.
func (p *TUI) DisplayRestored(ctx context.Context, restored []m.Path, skipped []m.Path) {
	if ctx.Err() != nil {
		return
	}

	var b strings.Builder

	for _, path := range restored {
		fmt.Fprintf(&b, "  %s %s\n", okStyle.Render("restored"), path)
	}

	for _, path := range skipped {
		fmt.Fprintf(&b, "  %s %s %s\n", failStyle.Render("skipped"), path, faintStyle.Render("(modified since the run)"))
	}

	fmt.Fprintf(&b, "\n  Restored %d file(s), skipped %d\n", len(restored), len(skipped))

	_, _ = fmt.Fprint(p.output, b.String())
}

func (p *TUI) send(msg tea.Msg) {
	if p.program == nil {
		return
	}

	p.program.Send(msg)
}

// page prints content directly when it fits the terminal and opens a pager
// otherwise.
func (p *TUI) page(content string) error {
	model := newPagerModel(content)

	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.height = height
			model.width = width
		}
	}

	if !model.needsPagination() {
		_, err := fmt.Fprint(p.output, content)
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func renderSummary(report m.RunReport) string {
	var b strings.Builder

	style := okStyle
	if report.Totals.Failed > 0 {
		style = failStyle
	}

	b.WriteString(style.Render(summaryLine(report)) + "\n")

	if line := verifyLine(report.Verify); line != "" {
		if report.Verify.Passed {
			b.WriteString(okStyle.Render(line) + "\n")
		} else {
			b.WriteString(failStyle.Render(line) + "\n")
		}
	}

	if report.Backup != "" {
		b.WriteString(faintStyle.Render("Backup: "+string(report.Backup)) + "\n")
	}

	return b.String()
}

type concurrencyMsg struct {
	threads int
	files   int
	dryRun  bool
}

type startingFileMsg struct {
	path m.Path
}

type completedFileMsg struct {
	report   m.FileReport
	showDiff bool
}

type reportMsg struct {
	report m.RunReport
}

// progressModel renders a spinner with the running count while files are
// processed, and prints each changed or failed file above it.
type progressModel struct {
	spinner   spinner.Model
	threads   int
	total     int
	completed int
	dryRun    bool
	current   m.Path
	lines     []string
	report    *m.RunReport
}

func newProgressModel() progressModel {
	return progressModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
	}
}

func (pm progressModel) Init() tea.Cmd {
	return pm.spinner.Tick
}

func (pm progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case concurrencyMsg:
		pm.threads = msg.threads
		pm.total = msg.files
		pm.dryRun = msg.dryRun

		return pm, nil

	case startingFileMsg:
		pm.current = msg.path

		return pm, nil

	case completedFileMsg:
		pm.completed++

		line := completedLine(msg.report)
		if line == "" {
			return pm, nil
		}

		if msg.showDiff && msg.report.Diff != "" {
			line += "\n" + faintStyle.Render(strings.TrimRight(msg.report.Diff, "\n"))
		}

		return pm, tea.Println(line)

	case reportMsg:
		report := msg.report
		pm.report = &report

		return pm, tea.Quit

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return pm, tea.Quit
		}

		return pm, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		pm.spinner, cmd = pm.spinner.Update(msg)

		return pm, cmd
	}

	return pm, nil
}

func (pm progressModel) View() string {
	if pm.report != nil {
		return "\n" + renderSummary(*pm.report)
	}

	mode := ""
	if pm.dryRun {
		mode = faintStyle.Render(" (dry run)")
	}

	current := ""
	if pm.current != "" {
		current = " " + faintStyle.Render(string(pm.current))
	}

	return fmt.Sprintf("%s %d/%d file(s), %d worker(s)%s%s\n",
		pm.spinner.View(), pm.completed, pm.total, pm.threads, mode, current)
}

func completedLine(report m.FileReport) string {
	switch report.Status {
	case m.StatusFailed:
		return fmt.Sprintf("  %s %s: %s", failStyle.Render("✗"), report.Path, report.Error)
	case m.StatusRewritten:
		return fmt.Sprintf("  %s %s: %d spread(s) -> %d method(s)",
			okStyle.Render("✓"), report.Path, report.Counts.Rewritten, report.Counts.Methods)
	case m.StatusUnchanged:
	}

	return ""
}

// pagerModel scrolls pre-rendered content that does not fit the terminal.
type pagerModel struct {
	lines    []string
	height   int
	width    int
	offset   int // Current scroll offset
	quitting bool
}

func newPagerModel(content string) pagerModel {
	return pagerModel{lines: strings.Split(strings.TrimRight(content, "\n"), "\n")}
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.height = msg.Height
		pm.width = msg.Width

		return pm, nil

	case tea.KeyMsg:
		return pm.handleKeyPress(msg)
	}

	return pm, nil
}

//nolint:cyclop,exhaustive // Key handling requires multiple cases for UI navigation
func (pm pagerModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		pm.quitting = true
		return pm, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		pm.quitting = true
		return pm, tea.Quit

	case "down", "j":
		pm.offset = pm.clamp(pm.offset + 1)

	case "up", "k":
		pm.offset = pm.clamp(pm.offset - 1)

	case "g", "home":
		pm.offset = 0

	case "G", "end":
		pm.offset = pm.maxOffset()

	case "d", "pgdown":
		pm.offset = pm.clamp(pm.offset + pm.linesPerPage())

	case "u", "pgup":
		pm.offset = pm.clamp(pm.offset - pm.linesPerPage())
	}

	return pm, nil
}

// linesPerPage reserves two lines for the footer.
func (pm pagerModel) linesPerPage() int {
	if pm.height == 0 {
		return 10 // Default
	}

	available := pm.height - 2
	if available < 1 {
		return 1
	}

	return available
}

func (pm pagerModel) maxOffset() int {
	maxOff := len(pm.lines) - pm.linesPerPage()
	if maxOff < 0 {
		return 0
	}

	return maxOff
}

func (pm pagerModel) clamp(offset int) int {
	if offset < 0 {
		return 0
	}

	if maxOff := pm.maxOffset(); offset > maxOff {
		return maxOff
	}

	return offset
}

// needsPagination returns true if the content is too tall for the screen.
func (pm pagerModel) needsPagination() bool {
	return pm.height > 0 && len(pm.lines) > pm.linesPerPage()
}

func (pm pagerModel) View() string {
	if !pm.needsPagination() {
		return strings.Join(pm.lines, "\n") + "\n"
	}

	end := pm.offset + pm.linesPerPage()
	if end > len(pm.lines) {
		end = len(pm.lines)
	}

	var b strings.Builder

	b.WriteString(strings.Join(pm.lines[pm.offset:end], "\n"))
	fmt.Fprintf(&b, "\n%s\n", faintStyle.Render(fmt.Sprintf(
		"  lines %d-%d of %d | ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit",
		pm.offset+1, end, len(pm.lines))))

	return b.String()
}
