// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/kanjiq/internal/model"
	"github.com/verte-zerg/kanjiq/internal/stats"
)

const (
	tabCategories = iota
	tabMissed
	tabRecent
)

const recentLimit = 50

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Report is the history shown by the stats UI.
type Report struct {
	Categories []model.CategoryAggregate
	Missed     []stats.Miss
	Rounds     []model.RoundResult
	Filter     model.HistoryFilter
}

// Model implements the Bubble Tea stats UI.
type Model struct {
	report Report

	tabs      []string
	activeTab int
	tables    []table.Model

	width  int
	height int
}

// NewModel constructs a stats UI model.
func NewModel(report Report) *Model {
	m := &Model{
		report: report,
		tabs:   []string{"Categories", "Most Missed", "Recent"},
	}
	m.tables = []table.Model{
		newTable(categoryColumns(), categoryRows(report.Categories)),
		newTable(missedColumns(), missedRows(report.Missed)),
		newTable(recentColumns(), recentRows(report.Rounds)),
	}
	m.tables[m.activeTab].Focus()
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
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h", "shift+tab":
			m.moveTab(-1)
			return m, nil
		case "right", "l", "tab":
			m.moveTab(1)
			return m, nil
		case "g", "home":
			m.tables[m.activeTab].GotoTop()
			return m, nil
		case "G", "end":
			m.tables[m.activeTab].GotoBottom()
			return m, nil
		}
		var cmd tea.Cmd
		m.tables[m.activeTab], cmd = m.tables[m.activeTab].Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{m.renderTabs(), m.renderSummary()}
	if len(m.tables[m.activeTab].Rows()) == 0 {
		sections = append(sections, "No rounds found.")
	} else {
		sections = append(sections, m.tables[m.activeTab].View())
	}
	sections = append(sections, headerStyle.Render("Nav: left/right  Scroll: up/down  Quit: q"))
	return strings.Join(sections, "\n")
}

func (m *Model) moveTab(delta int) {
	m.tables[m.activeTab].Blur()
	next := m.activeTab + delta
	if next < 0 {
		next = len(m.tabs) - 1
	}
	if next >= len(m.tabs) {
		next = 0
	}
	m.activeTab = next
	m.tables[m.activeTab].Focus()
}

func (m *Model) updateLayout() {
	// tabs (3 lines), summary, help
	height := maxInt(4, m.height-5)
	for i := range m.tables {
		m.tables[i].SetWidth(m.width)
		m.tables[i].SetHeight(height)
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderSummary() string {
	category := m.report.Filter.Category
	if category == "" {
		category = "any"
	}
	since := "any"
	if m.report.Filter.Since != nil {
		since = m.report.Filter.Since.Format("2006-01-02")
	}
	total := stats.Total(m.report.Categories)
	summary := fmt.Sprintf("category=%s  since=%s  rounds=%d  accuracy=%.1f%%",
		category, since, total.Rounds, stats.Accuracy(total)*100)
	return headerStyle.Render(summary)
}

func newTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+4),
	)
	width := 0
	for _, col := range columns {
		width += col.Width + 1
	}
	t.SetWidth(width)
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func categoryColumns() []table.Column {
	return []table.Column{
		{Title: "Category", Width: 12},
		{Title: "Rounds", Width: 7},
		{Title: "Correct", Width: 8},
		{Title: "Incorrect", Width: 10},
		{Title: "Unknown", Width: 8},
		{Title: "Accuracy", Width: 9},
	}
}

func categoryRows(aggs []model.CategoryAggregate) []table.Row {
	if len(aggs) == 0 {
		return nil
	}
	rows := make([]table.Row, 0, len(aggs)+1)
	for _, agg := range append(append([]model.CategoryAggregate(nil), aggs...), stats.Total(aggs)) {
		rows = append(rows, table.Row{
			agg.Category,
			fmt.Sprintf("%d", agg.Rounds),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Incorrect),
			fmt.Sprintf("%d", agg.Unknown),
			fmt.Sprintf("%.1f%%", stats.Accuracy(agg)*100),
		})
	}
	return rows
}

func missedColumns() []table.Column {
	return []table.Column{
		{Title: "Kanji", Width: 6},
		{Title: "Category", Width: 12},
		{Title: "Misses", Width: 7},
		{Title: "Rounds", Width: 7},
	}
}

func missedRows(misses []stats.Miss) []table.Row {
	rows := make([]table.Row, 0, len(misses))
	for _, miss := range misses {
		rows = append(rows, table.Row{
			miss.Character,
			miss.Category,
			fmt.Sprintf("%d", miss.Misses),
			fmt.Sprintf("%d", miss.Rounds),
		})
	}
	return rows
}

func recentColumns() []table.Column {
	return []table.Column{
		{Title: "Played", Width: 17},
		{Title: "Kanji", Width: 6},
		{Title: "Category", Width: 12},
		{Title: "Outcome", Width: 10},
		{Title: "Answer", Width: 24},
	}
}

// recentRows lists the newest rounds first.
func recentRows(rounds []model.RoundResult) []table.Row {
	rows := make([]table.Row, 0, minInt(len(rounds), recentLimit))
	for i := len(rounds) - 1; i >= 0 && len(rows) < recentLimit; i-- {
		r := rounds[i]
		rows = append(rows, table.Row{
			r.PlayedAt.Local().Format("2006-01-02 15:04"),
			r.Character,
			r.Category,
			string(r.Outcome),
			r.Answer,
		})
	}
	return rows
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
