package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/durwheel/durwheel/internal/theme"
	"github.com/durwheel/durwheel/internal/timespan"
	"github.com/durwheel/durwheel/internal/util"
)

// Model represents the status bar component
type Model struct {
	width     int
	selection timespan.Components
	mode      timespan.Mode
	apiAddr   string
	message   string
	styles    theme.Styles
}

// New creates a new status bar model
func New() Model {
	return Model{
		styles: theme.NewStyles(),
	}
}

// SetWidth sets the status bar width
func (m *Model) SetWidth(width int) {
	m.width = width
}

// SetSelection sets the current picker selection
func (m *Model) SetSelection(c timespan.Components, mode timespan.Mode) {
	m.selection = c
	m.mode = mode
}

// SetAPIAddr shows the API listen address; empty hides it
func (m *Model) SetAPIAddr(addr string) {
	m.apiAddr = addr
}

// SetMessage sets a temporary status message
func (m *Model) SetMessage(msg string) {
	m.message = msg
}

// ClearMessage clears the status message
func (m *Model) ClearMessage() {
	m.message = ""
}

// RefreshStyles rebuilds styles after theme change
func (m *Model) RefreshStyles() {
	m.styles = theme.NewStyles()
}

// View renders the status bar
func (m Model) View() string {
	t := theme.Current

	border := lipgloss.NewStyle().
		Foreground(t.Border).
		Width(m.width).
		Render(strings.Repeat("─", max(m.width, 0)))

	selection := fmt.Sprintf("%s | %s",
		lipgloss.NewStyle().Foreground(t.Info).Render(m.mode.String()),
		lipgloss.NewStyle().Foreground(t.Foreground).Bold(true).Render(
			m.selection.String()+" ("+util.FormatSecondsCompact(m.selection.TotalSeconds())+")"),
	)

	var center string
	if m.apiAddr != "" {
		center = lipgloss.NewStyle().Foreground(t.Success).Render("API " + m.apiAddr)
	}

	var rightContent string
	if m.message != "" {
		rightContent = lipgloss.NewStyle().Foreground(t.Warning).Render(m.message)
	} else {
		rightContent = lipgloss.NewStyle().Foreground(t.Subtle).Render("F1-F3: Views | Ctrl+C to quit")
	}

	leftWidth := lipgloss.Width(selection)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(rightContent)
	totalContent := leftWidth + centerWidth + rightWidth

	var content string
	if m.width > totalContent+4 {
		gap := (m.width - totalContent - 4) / 2
		content = selection + strings.Repeat(" ", gap) + center + strings.Repeat(" ", gap) + rightContent
	} else {
		content = selection
	}

	bar := lipgloss.NewStyle().
		Background(t.StatusBar).
		Foreground(t.Subtle).
		Width(m.width).
		Padding(0, 2).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, border, bar)
}
