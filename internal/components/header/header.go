package header

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/durwheel/durwheel/internal/messages"
	"github.com/durwheel/durwheel/internal/theme"
)

// Model represents the header component
type Model struct {
	width      int
	activeView messages.View
	styles     theme.Styles
}

// New creates a new header model
func New() Model {
	return Model{
		styles: theme.NewStyles(),
	}
}

// SetWidth sets the header width
func (m *Model) SetWidth(width int) {
	m.width = width
}

// SetActiveView sets the currently active view
func (m *Model) SetActiveView(view messages.View) {
	m.activeView = view
}

// RefreshStyles rebuilds styles after theme change
func (m *Model) RefreshStyles() {
	m.styles = theme.NewStyles()
}

// View renders the header
func (m Model) View() string {
	t := theme.Current

	title := lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		Render("durwheel")

	navViews := []messages.View{
		messages.ViewPicker,
		messages.ViewHistory,
		messages.ViewSettings,
	}

	var navItems []string
	for _, v := range navViews {
		shortcut := lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true).
			Render("[" + v.Shortcut() + "]")

		var item string
		if v == m.activeView {
			item = lipgloss.NewStyle().
				Foreground(t.Primary).
				Bold(true).
				Render(shortcut + " " + v.String())
		} else {
			item = lipgloss.NewStyle().
				Foreground(t.Subtle).
				Render(shortcut + " " + v.String())
		}
		navItems = append(navItems, item)
	}

	nav := strings.Join(navItems, "  ")

	titleWidth := lipgloss.Width(title)
	navWidth := lipgloss.Width(nav)
	totalContent := titleWidth + navWidth + 8

	spacing := "  "
	if m.width > totalContent {
		spacing = strings.Repeat(" ", m.width-totalContent)
	}

	content := title + spacing + nav

	header := lipgloss.NewStyle().
		Background(t.HeaderBg).
		Foreground(t.Foreground).
		Width(m.width).
		Padding(0, 2).
		Render(content)

	border := lipgloss.NewStyle().
		Foreground(t.Border).
		Width(m.width).
		Render(strings.Repeat("─", max(m.width, 0)))

	return lipgloss.JoinVertical(lipgloss.Left, header, border)
}
