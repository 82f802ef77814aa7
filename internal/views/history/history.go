package history

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/durwheel/durwheel/internal/messages"
	"github.com/durwheel/durwheel/internal/theme"
	"github.com/durwheel/durwheel/internal/util"
)

// Model represents the history view state
type Model struct {
	width      int
	height     int
	styles     theme.Styles
	selections []messages.HistorySelection
	stats      *messages.StatsData
	cursor     int
	scroll     int
	loading    bool
	errorMsg   string
}

// New creates a new history view model
func New() Model {
	return Model{
		styles:  theme.NewStyles(),
		loading: true,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case messages.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case messages.HistoryLoadedMsg:
		m.loading = false
		if msg.Error != nil {
			m.errorMsg = msg.Error.Error()
			return m, nil
		}
		m.selections = msg.Selections
		m.errorMsg = ""
		if m.cursor >= len(m.selections) {
			m.cursor = 0
			m.scroll = 0
		}

	case messages.StatsLoadedMsg:
		if msg.Error == nil {
			m.stats = msg.Stats
		}

	case messages.HistoryDeletedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			return m, nil
		}
		m.loading = true
		return m, refresh()
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.scroll {
				m.scroll = m.cursor
			}
		}

	case "down", "j":
		if m.cursor < len(m.selections)-1 {
			m.cursor++
			contentHeight := m.contentHeight()
			if m.cursor >= m.scroll+contentHeight {
				m.scroll = m.cursor - contentHeight + 1
			}
		}

	case "home":
		m.cursor = 0
		m.scroll = 0

	case "end":
		if len(m.selections) > 0 {
			m.cursor = len(m.selections) - 1
			contentHeight := m.contentHeight()
			if m.cursor >= contentHeight {
				m.scroll = m.cursor - contentHeight + 1
			}
		}

	case "r":
		m.loading = true
		return m, refresh()

	case "d", "x":
		if len(m.selections) > 0 && m.cursor < len(m.selections) {
			id := m.selections[m.cursor].ID
			return m, func() tea.Msg {
				return messages.HistoryDeleteMsg{ID: id}
			}
		}
	}

	return m, nil
}

func refresh() tea.Cmd {
	return func() tea.Msg {
		return messages.HistoryRefreshMsg{}
	}
}

// SetSize updates the view dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// RefreshStyles rebuilds styles after theme change
func (m *Model) RefreshStyles() {
	m.styles = theme.NewStyles()
}

// View renders the history view
func (m Model) View() string {
	if m.loading {
		return m.styles.Muted.Padding(2, 0).Render("Loading history...")
	}
	if m.errorMsg != "" {
		return m.styles.Error.Padding(2, 0).Render("Error: " + m.errorMsg)
	}

	sections := []string{
		m.renderHeader(),
		m.renderList(),
	}
	if m.stats != nil && m.stats.Count > 0 {
		sections = append(sections, m.renderStats())
	}
	sections = append(sections, m.renderFooter())

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render("History")
	count := m.styles.Muted.Render(fmt.Sprintf("(%d selections)", len(m.selections)))
	return lipgloss.JoinHorizontal(lipgloss.Left, title, " ", count)
}

func (m Model) renderList() string {
	if len(m.selections) == 0 {
		return m.styles.Muted.Padding(1, 0).Render("No selections yet")
	}

	contentHeight := m.contentHeight()
	start := m.scroll
	end := start + contentHeight
	if end > len(m.selections) {
		end = len(m.selections)
	}

	var lines []string
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(m.selections[i], i == m.cursor))
	}

	if m.maxScroll() > 0 {
		lines = append(lines, m.styles.Muted.Render(
			fmt.Sprintf(" [%d-%d of %d]", start+1, end, len(m.selections))))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderRow(s messages.HistorySelection, selected bool) string {
	t := theme.Current

	duration := lipgloss.NewStyle().
		Foreground(t.Primary).
		Width(10).
		Render(s.Components.String())

	total := lipgloss.NewStyle().
		Foreground(t.Foreground).
		Width(14).
		Render(util.FormatSecondsCompact(s.TotalSeconds))

	mode := lipgloss.NewStyle().
		Foreground(t.Secondary).
		Width(18).
		Render(s.Mode)

	rounding := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Width(6).
		Render(s.Rounding)

	when := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Render(util.FormatTimestamp(s.CreatedAt))

	row := lipgloss.JoinHorizontal(lipgloss.Left,
		duration, " ", total, " ", mode, " ", rounding, " ", when)

	if selected {
		row = lipgloss.NewStyle().
			Background(t.Selection).
			Foreground(t.Foreground).
			Bold(true).
			Width(m.width - 4).
			Render(row)
	}

	return row
}

func (m Model) renderStats() string {
	return m.styles.Muted.Padding(1, 0, 0, 0).Render(fmt.Sprintf(
		"Total: %s  |  Average: %s  |  Longest: %s",
		util.FormatSecondsCompact(m.stats.TotalSeconds),
		util.FormatSecondsCompact(m.stats.AverageSeconds),
		util.FormatSecondsCompact(m.stats.LongestSeconds),
	))
}

func (m Model) renderFooter() string {
	help := []string{
		"Up/Down: Navigate",
		"d: Delete",
		"r: Refresh",
	}
	return m.styles.Muted.Padding(1, 0, 0, 0).Render(strings.Join(help, " | "))
}

func (m Model) contentHeight() int {
	reserved := 6
	height := m.height - reserved
	if height < 1 {
		height = 1
	}
	return height
}

func (m Model) maxScroll() int {
	contentHeight := m.contentHeight()
	if len(m.selections) <= contentHeight {
		return 0
	}
	return len(m.selections) - contentHeight
}
