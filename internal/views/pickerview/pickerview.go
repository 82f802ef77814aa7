// Package pickerview hosts the duration picker screen.
package pickerview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/durwheel/durwheel/internal/components/picker"
	"github.com/durwheel/durwheel/internal/messages"
	"github.com/durwheel/durwheel/internal/theme"
	"github.com/durwheel/durwheel/internal/timespan"
	"github.com/durwheel/durwheel/internal/util"
)

// Model represents the picker view state
type Model struct {
	width  int
	height int
	picker picker.Model
	styles theme.Styles

	savedID  string
	errorMsg string
}

// New creates a new picker view
func New(opts timespan.Options) Model {
	return Model{
		picker: picker.New(opts),
		styles: theme.NewStyles(),
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
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		if cmd != nil {
			m.savedID = ""
			m.errorMsg = ""
		}
		return m, cmd

	case messages.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case messages.SelectionSavedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
		} else {
			m.savedID = msg.ID
		}
	}

	return m, nil
}

// SetOptions applies new quantizer options to the picker
func (m *Model) SetOptions(opts timespan.Options) {
	m.picker.SetOptions(opts)
}

// Value returns the picker's current selection
func (m Model) Value() timespan.Components {
	return m.picker.Value()
}

// SetSize updates the view dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// RefreshStyles rebuilds styles after theme change
func (m *Model) RefreshStyles() {
	m.styles = theme.NewStyles()
	m.picker.RefreshStyles()
}

// View renders the picker view
func (m Model) View() string {
	title := m.styles.Title.Render("Duration")

	sections := []string{
		title,
		"",
		m.picker.View(),
		"",
		m.renderInfo(),
	}

	if m.savedID != "" {
		sections = append(sections, m.styles.Success.Render("Saved."))
	}
	if m.errorMsg != "" {
		sections = append(sections, m.styles.Error.Render("Error: "+m.errorMsg))
	}

	sections = append(sections, "", m.renderFooter())

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderInfo() string {
	opts := m.picker.Options()

	parts := []string{
		fmt.Sprintf("Mode: %s", opts.Mode),
		fmt.Sprintf("Rounding: %s", opts.Rounding),
	}

	steps := make([]string, 0, 3)
	for _, u := range opts.Mode.Units() {
		var interval int
		switch u {
		case timespan.UnitHour:
			interval = opts.HourInterval
		case timespan.UnitMinute:
			interval = opts.MinuteInterval
		case timespan.UnitSecond:
			interval = opts.SecondInterval
		}
		if interval > 1 {
			steps = append(steps, fmt.Sprintf("%s step %d", u, interval))
		}
	}
	if len(steps) > 0 {
		parts = append(parts, strings.Join(steps, ", "))
	}

	min, max := opts.Bounds()
	if min > 0 {
		parts = append(parts, "Min: "+util.FormatSeconds(min))
	}
	if max < timespan.AbsoluteMaximum(opts.Mode, opts.HourInterval, opts.MinuteInterval, opts.SecondInterval) {
		parts = append(parts, "Max: "+util.FormatSeconds(max))
	}

	return m.styles.Muted.Render(strings.Join(parts, "  |  "))
}

func (m Model) renderFooter() string {
	help := []string{
		"Up/Down: Roll",
		"0-9: Jump",
		"Left/Right: Switch unit",
		"Enter: Confirm",
	}
	return m.styles.Muted.Render(strings.Join(help, " | "))
}
