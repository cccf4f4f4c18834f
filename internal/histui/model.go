// Package histui provides the Bubble Tea run-history browser.
package histui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/stylo/internal/model"
	"github.com/verte-zerg/stylo/internal/store"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1)
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Background(lipgloss.Color("#4A4A4A")).
			Bold(true)
	reportStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea history UI.
type Model struct {
	store *store.Store
	runs  []model.RunSummary

	runTable table.Model
	report   viewport.Model

	showingReport bool
	reportRunID   int64
	errMsg        string

	width  int
	height int
}

// NewModel constructs a history UI model over the stored runs.
func NewModel(st *store.Store, runs []model.RunSummary) *Model {
	m := &Model{store: st, runs: runs}
	m.runTable = buildRunTable(runs, 0, 1)
	m.report = viewport.New(0, 0)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		if m.showingReport {
			if msg.Type == tea.KeyEsc || msg.String() == "backspace" {
				m.showingReport = false
				return m, tea.ClearScreen
			}
			var cmd tea.Cmd
			m.report, cmd = m.report.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "enter":
			m.openReport()
			return m, tea.ClearScreen
		case "g", "home":
			m.runTable.GotoTop()
			return m, nil
		case "G", "end":
			m.runTable.GotoBottom()
			return m, nil
		default:
			var cmd tea.Cmd
			m.runTable, cmd = m.runTable.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if len(m.runs) == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			headerStyle.Render("No analysis runs recorded yet."))
	}
	var body, footer string
	if m.showingReport {
		body = reportStyle.Render(m.report.View())
		footer = footerStyle.Render("esc back  ↑/↓ scroll  q quit")
	} else {
		body = m.runTable.View()
		footer = footerStyle.Render("enter report  ↑/↓ select  q quit")
	}
	header := titleStyle.Render(m.headerText())
	if m.errMsg != "" {
		footer = errorStyle.Render(m.errMsg)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) headerText() string {
	if m.showingReport {
		return fmt.Sprintf("stylo history — run %d", m.reportRunID)
	}
	return fmt.Sprintf("stylo history — %d runs", len(m.runs))
}

func (m *Model) updateLayout() {
	bodyHeight := m.height - 3
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	m.runTable = buildRunTable(m.runs, m.width, bodyHeight)
	m.report.Width = maxInt(10, m.width-4)
	m.report.Height = maxInt(1, bodyHeight-2)
}

func (m *Model) openReport() {
	row := m.runTable.SelectedRow()
	if len(row) == 0 {
		return
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		m.errMsg = fmt.Sprintf("bad run id: %v", err)
		return
	}
	report, err := m.store.GetRunReport(context.Background(), id)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load report: %v", err)
		return
	}
	m.errMsg = ""
	m.reportRunID = id
	m.report.SetContent(report)
	m.report.GotoTop()
	m.showingReport = true
}

func buildRunTable(runs []model.RunSummary, width, height int) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Date", Width: 16},
		{Title: "Input", Width: inputColWidth(width)},
		{Title: "Paras", Width: 6},
		{Title: "Sents", Width: 6},
		{Title: "Phrases", Width: 7},
		{Title: "Words", Width: 7},
		{Title: "Odd", Width: 5},
	}
	rows := make([]table.Row, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, table.Row{
			strconv.FormatInt(run.RunID, 10),
			run.CreatedAt.Format("2006-01-02 15:04"),
			run.Input,
			strconv.Itoa(run.Paragraphs),
			strconv.Itoa(run.Sentences),
			strconv.Itoa(run.Phrases),
			strconv.Itoa(run.Words),
			strconv.Itoa(run.OddWords),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(maxInt(1, height-1)),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("#8C8C8C")).Bold(true)
	styles.Selected = selectedStyle
	t.SetStyles(styles)
	return t
}

func inputColWidth(totalWidth int) int {
	// Fixed columns plus separators take roughly 60 cells.
	w := totalWidth - 60
	if w < 12 {
		return 12
	}
	if w > 40 {
		return 40
	}
	return w
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
