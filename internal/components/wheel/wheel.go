// Package wheel implements a single rolling value column. A wheel
// shows the selectable grid values for one unit, with the selection
// fixed in the middle row and the neighbors wrapping around.
package wheel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/durwheel/durwheel/internal/theme"
)

// DefaultVisibleRows is the number of rows a wheel renders.
// Must be odd so the selection sits in the middle.
const DefaultVisibleRows = 5

// Model represents a single wheel column
type Model struct {
	label       string
	values      []int
	index       int
	focused     bool
	visibleRows int
	muted       func(value int) bool
	styles      theme.Styles
}

// New creates a wheel holding every multiple of interval below unitCount
func New(label string, interval, unitCount int) Model {
	if interval < 1 {
		interval = 1
	}
	values := make([]int, 0, unitCount/interval)
	for v := 0; v < unitCount; v += interval {
		values = append(values, v)
	}

	return Model{
		label:       label,
		values:      values,
		visibleRows: DefaultVisibleRows,
		styles:      theme.NewStyles(),
	}
}

// Label returns the unit label shown above the wheel
func (m Model) Label() string {
	return m.label
}

// Value returns the currently selected value
func (m Model) Value() int {
	if len(m.values) == 0 {
		return 0
	}
	return m.values[m.index]
}

// Values returns every value the wheel can land on
func (m Model) Values() []int {
	return m.values
}

// SetValue moves the selection to the grid value nearest v, rounding down
func (m *Model) SetValue(v int) {
	for i := len(m.values) - 1; i >= 0; i-- {
		if m.values[i] <= v {
			m.index = i
			return
		}
	}
	m.index = 0
}

// Nearest returns the grid value closest to v, preferring the lower
// value on ties.
func (m Model) Nearest(v int) int {
	if len(m.values) == 0 {
		return 0
	}
	best := m.values[0]
	for _, gv := range m.values[1:] {
		if abs(gv-v) < abs(best-v) {
			best = gv
		}
	}
	return best
}

// Focus marks the wheel as the active column
func (m *Model) Focus() {
	m.focused = true
}

// Blur removes focus from the wheel
func (m *Model) Blur() {
	m.focused = false
}

// Focused reports whether the wheel is the active column
func (m Model) Focused() bool {
	return m.focused
}

// RefreshStyles rebuilds styles after theme change
func (m *Model) RefreshStyles() {
	m.styles = theme.NewStyles()
}

// SetMuted installs the predicate that grays out unreachable rows
func (m *Model) SetMuted(fn func(value int) bool) {
	m.muted = fn
}

// MoveUp rolls the wheel one step toward smaller values, wrapping around
func (m *Model) MoveUp() {
	if len(m.values) == 0 {
		return
	}
	m.index = (m.index - 1 + len(m.values)) % len(m.values)
}

// MoveDown rolls the wheel one step toward larger values, wrapping around
func (m *Model) MoveDown() {
	if len(m.values) == 0 {
		return
	}
	m.index = (m.index + 1) % len(m.values)
}

// View renders the wheel column
func (m Model) View() string {
	half := m.visibleRows / 2

	rows := make([]string, 0, m.visibleRows+1)
	rows = append(rows, m.styles.WheelUnitLabel.Render(m.label))

	for offset := -half; offset <= half; offset++ {
		rows = append(rows, m.renderRow(offset))
	}

	column := lipgloss.JoinVertical(lipgloss.Center, rows...)
	if m.focused {
		return m.styles.WheelFocused.Render(column)
	}
	return m.styles.WheelBlurred.Render(column)
}

func (m Model) renderRow(offset int) string {
	if len(m.values) == 0 {
		return "  "
	}

	// Wheels shorter than the window leave blank rows rather
	// than repeating a value.
	if abs(offset) >= len(m.values) && len(m.values) <= m.visibleRows/2 {
		return strings.Repeat(" ", 2)
	}

	i := ((m.index+offset)%len(m.values) + len(m.values)) % len(m.values)
	v := m.values[i]
	text := fmt.Sprintf("%02d", v)

	if m.muted != nil && m.muted(v) {
		return m.styles.WheelMutedRow.Render(text)
	}
	if offset == 0 {
		return m.styles.WheelSelected.Render(" " + text + " ")
	}
	return m.styles.WheelRow.Render(text)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
