// Package tui provides the interactive Bubble Tea front end for stratsim.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/stratsim/internal/config"
	"github.com/theirongolddev/stratsim/internal/export"
	"github.com/theirongolddev/stratsim/internal/model"
	"github.com/theirongolddev/stratsim/internal/pipeline"
	"github.com/theirongolddev/stratsim/internal/session"
	"github.com/theirongolddev/stratsim/internal/tui/components"
	"github.com/theirongolddev/stratsim/internal/tui/theme"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabOverview = iota
	tabInput
	tabRun
	tabSummary
)

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusGood
	statusBad
)

// exportDoneMsg reports the outcome of a background export.
type exportDoneMsg struct {
	Format string
	Path   string
	Err    error
}

// App is the root Bubble Tea model. It owns one Session; copies of App
// share it.
type App struct {
	session *session.Session
	export  config.ExportConfig

	keys keyMap
	help help.Model

	form   *huh.Form
	values *inputValues

	width     int
	height    int
	activeTab int
	showHelp  bool

	status     string
	statusKind statusKind
}

// NewApp creates a TUI bound to sess. defaults pre-fill the input form;
// nothing is simulated until the user submits the form and runs.
func NewApp(sess *session.Session, defaults model.Params, exp config.ExportConfig) App {
	vals := newInputValues(defaults)
	return App{
		session: sess,
		export:  exp,
		keys:    defaultKeyMap(),
		help:    help.New(),
		values:  vals,
		form:    newInputForm(vals),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(tea.EnableMouseCellMotion, a.form.Init())
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.form = a.form.WithWidth(a.contentWidth()).WithHeight(max(msg.Height-4, minContentHeight))
		return a, nil

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				return a.switchTab(tab)
			}
		}
		return a, nil

	case exportDoneMsg:
		if msg.Err != nil {
			a.setStatus(statusBad, fmt.Sprintf("%s export failed: %v", strings.ToUpper(msg.Format), msg.Err))
		} else {
			a.setStatus(statusGood, "Saved "+msg.Path)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// The form owns the keyboard on the Input tab.
		if a.activeTab == tabInput {
			if key.Matches(msg, a.keys.Back) {
				return a.switchTab(tabOverview)
			}
			return a.updateForm(msg)
		}

		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch {
		case key.Matches(msg, a.keys.Help):
			a.showHelp = true
			return a, nil
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Run):
			return a.runSimulation()
		case key.Matches(msg, a.keys.CSV):
			return a.startExport("csv")
		case key.Matches(msg, a.keys.XLSX):
			return a.startExport("xlsx")
		case key.Matches(msg, a.keys.PDF):
			return a.startExport("pdf")
		case key.Matches(msg, a.keys.Input):
			return a.switchTab(tabInput)
		case key.Matches(msg, a.keys.Prev):
			return a.switchTab((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs))
		case key.Matches(msg, a.keys.Next):
			return a.switchTab((a.activeTab + 1) % len(components.Tabs))
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				return a.switchTab(idx)
			}
		}
		return a, nil
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.activeTab == tabInput {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a *App) setStatus(kind statusKind, msg string) {
	a.statusKind = kind
	a.status = msg
}

func (a App) switchTab(tab int) (tea.Model, tea.Cmd) {
	a.activeTab = tab
	a.showHelp = false
	return a, nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.applyInputs()
		return a, a.resetForm()
	case huh.StateAborted:
		a.activeTab = tabOverview
		return a, a.resetForm()
	}
	return a, cmd
}

// resetForm rebuilds the form over the current values so the inputs can be
// edited again.
func (a *App) resetForm() tea.Cmd {
	a.form = newInputForm(a.values)
	if a.width > 0 {
		a.form = a.form.WithWidth(a.contentWidth()).WithHeight(max(a.height-4, minContentHeight))
	}
	return a.form.Init()
}

func (a *App) applyInputs() {
	p, err := a.values.params()
	if err == nil {
		err = a.session.SetParams(p)
	}
	if err != nil {
		a.setStatus(statusBad, err.Error())
		return
	}
	a.activeTab = tabRun
	a.setStatus(statusInfo, fmt.Sprintf("Inputs saved (%s, %d months). Press r to run.", p.Mode, p.Months()))
}

func (a App) runSimulation() (tea.Model, tea.Cmd) {
	rep, err := a.session.Run()
	if err != nil {
		a.setStatus(statusBad, err.Error())
		if errors.Is(err, model.ErrInvalidParameter) && !a.session.HasParams() {
			a.activeTab = tabInput
		}
		return a, nil
	}
	a.activeTab = tabSummary
	a.setStatus(statusGood, fmt.Sprintf("Simulated %d months (run %s)", rep.Result.Len(), shortID(rep.Result.RunID)))
	return a, nil
}

func (a App) startExport(name string) (tea.Model, tea.Cmd) {
	rep, err := a.session.Report()
	if err != nil {
		a.setStatus(statusBad, noSimulationHint)
		return a, nil
	}
	f, err := export.Lookup(name)
	if err != nil {
		a.setStatus(statusBad, err.Error())
		return a, nil
	}
	a.setStatus(statusInfo, "Exporting "+f.Filename+"...")
	return a, exportCmd(a.export.Dir, f, rep, export.Options{LinesPerPage: a.export.LinesPerPage})
}

func exportCmd(dir string, f export.Format, rep pipeline.Report, opts export.Options) tea.Cmd {
	return func() tea.Msg {
		path, err := export.WriteFile(dir, f, rep, opts)
		return exportDoneMsg{Format: f.Name, Path: path, Err: err}
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  stratsim needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	h := a.help
	h.ShowAll = true

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(h.View(a.keys))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	hints := a.help.ShortHelpView(a.keys.ShortHelp())
	if a.activeTab == tabInput {
		hints = "[esc] leave form  [ctrl+c] quit"
	}
	statusBar := components.RenderStatusBar(w, hints, a.status, a.statusColor())

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabInput:
		content = a.form.View()
	case tabRun:
		content = a.renderRunTab(cw)
	case tabSummary:
		content = a.renderSummaryTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusColor() lipgloss.Color {
	t := theme.Active
	switch a.statusKind {
	case statusGood:
		return t.Good
	case statusBad:
		return t.Bad
	default:
		return t.TextMuted
	}
}

// severityColor maps advice severity onto the theme.
func severityColor(s pipeline.Severity) lipgloss.Color {
	t := theme.Active
	switch s {
	case pipeline.SeverityHealthy:
		return t.Good
	case pipeline.SeverityWarning:
		return t.Warn
	case pipeline.SeveritySevere:
		return t.Bad
	default:
		return t.Info
	}
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}

// ─── Helpers ────────────────────────────────────────────────────

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
// This ensures gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
