// Package picker implements the composite duration control. It owns
// one wheel per active unit and re-quantizes the whole duration every
// time a wheel moves, so the control can never display a value the
// configured grid and bounds do not allow.
package picker

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/durwheel/durwheel/internal/components/wheel"
	"github.com/durwheel/durwheel/internal/messages"
	"github.com/durwheel/durwheel/internal/theme"
	"github.com/durwheel/durwheel/internal/timespan"
	"github.com/durwheel/durwheel/internal/util"
)

// Model represents the duration picker
type Model struct {
	options timespan.Options
	units   []timespan.Unit
	wheels  []wheel.Model
	focus   int
	current timespan.Components
	typed   string
	styles  theme.Styles
}

// New creates a picker for the given quantizer options
func New(opts timespan.Options) Model {
	m := Model{
		options: opts,
		styles:  theme.NewStyles(),
	}
	m.rebuild()
	m.apply(timespan.Quantize(m.current.TotalSeconds(), m.options))
	return m
}

// SetOptions swaps the quantizer options and rebuilds the wheels,
// keeping the displayed duration as close as the new grid allows.
func (m *Model) SetOptions(opts timespan.Options) {
	total := m.current.TotalSeconds()
	m.options = opts
	m.typed = ""
	m.rebuild()
	m.apply(timespan.Quantize(total, m.options))
}

// Options returns the active quantizer options
func (m Model) Options() timespan.Options {
	return m.options
}

// Value returns the current selection
func (m Model) Value() timespan.Components {
	return m.current
}

// TotalSeconds returns the current selection as seconds
func (m Model) TotalSeconds() int {
	return m.current.TotalSeconds()
}

// SetValue moves the picker to the quantized form of the given duration
func (m *Model) SetValue(seconds int) {
	m.apply(timespan.Quantize(seconds, m.options))
}

// rebuild creates one wheel per active unit
func (m *Model) rebuild() {
	intervals := map[timespan.Unit]struct{ interval, count int }{
		timespan.UnitHour:   {m.options.HourInterval, 24},
		timespan.UnitMinute: {m.options.MinuteInterval, 60},
		timespan.UnitSecond: {m.options.SecondInterval, 60},
	}

	m.units = m.options.Mode.Units()
	m.wheels = make([]wheel.Model, len(m.units))
	for i, u := range m.units {
		spec := intervals[u]
		m.wheels[i] = wheel.New(u.String(), spec.interval, spec.count)
	}

	if m.focus >= len(m.wheels) {
		m.focus = len(m.wheels) - 1
	}
	m.wheels[m.focus].Focus()
}

// apply sets the wheels from a quantized result and refreshes muting
func (m *Model) apply(c timespan.Components) {
	m.current = c
	for i, u := range m.units {
		m.wheels[i].SetValue(c.Value(u))
	}
	m.refreshMuting()
}

// refreshMuting grays out rows that would land outside the bounds
// with the other wheels left where they are.
func (m *Model) refreshMuting() {
	min, max := m.options.Bounds()
	for i, u := range m.units {
		base := m.current
		unit := u
		m.wheels[i].SetMuted(func(v int) bool {
			total := withValue(base, unit, v).TotalSeconds()
			return total < min || total > max
		})
	}
}

func withValue(c timespan.Components, u timespan.Unit, v int) timespan.Components {
	switch u {
	case timespan.UnitHour:
		c.Hour = v
	case timespan.UnitMinute:
		c.Minute = v
	case timespan.UnitSecond:
		c.Second = v
	}
	return c
}

// step rolls the focused wheel and re-quantizes the whole selection
func (m *Model) step(up bool) {
	if up {
		m.wheels[m.focus].MoveUp()
	} else {
		m.wheels[m.focus].MoveDown()
	}

	candidate := withValue(m.current, m.units[m.focus], m.wheels[m.focus].Value())
	m.apply(timespan.Quantize(candidate.TotalSeconds(), m.options))
}

func (m *Model) focusWheel(i int) {
	m.wheels[m.focus].Blur()
	m.focus = ((i % len(m.wheels)) + len(m.wheels)) % len(m.wheels)
	m.wheels[m.focus].Focus()
}

// RefreshStyles rebuilds styles after theme change
func (m *Model) RefreshStyles() {
	m.styles = theme.NewStyles()
	for i := range m.wheels {
		m.wheels[i].RefreshStyles()
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch s := key.String(); s {
	case "left", "h", "shift+tab":
		m.typed = ""
		m.focusWheel(m.focus - 1)
	case "right", "l", "tab":
		m.typed = ""
		m.focusWheel(m.focus + 1)
	case "up", "k":
		m.typed = ""
		m.step(true)
		return m, m.changed()
	case "down", "j":
		m.typed = ""
		m.step(false)
		return m, m.changed()
	case "enter":
		m.typed = ""
		return m, m.confirmed()
	default:
		if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			m.typeDigit(s)
			return m, m.changed()
		}
	}

	return m, nil
}

// typeDigit jumps the focused wheel to the grid value nearest the
// typed number. Two consecutive digits combine, so "1" then "5" on a
// quarter-hour minute wheel lands on 15.
func (m *Model) typeDigit(d string) {
	m.typed += d
	if len(m.typed) > 2 {
		m.typed = m.typed[len(m.typed)-2:]
	}
	v, _ := strconv.Atoi(m.typed)

	target := m.wheels[m.focus].Nearest(v)
	candidate := withValue(m.current, m.units[m.focus], target)
	m.apply(timespan.Quantize(candidate.TotalSeconds(), m.options))
}

func (m Model) changed() tea.Cmd {
	components, opts := m.current, m.options
	return func() tea.Msg {
		return messages.SelectionChangedMsg{Components: components, Options: opts}
	}
}

func (m Model) confirmed() tea.Cmd {
	components, opts := m.current, m.options
	return func() tea.Msg {
		return messages.SelectionConfirmedMsg{Components: components, Options: opts}
	}
}

// View renders the wheels side by side with the total underneath
func (m Model) View() string {
	columns := make([]string, len(m.wheels))
	for i, w := range m.wheels {
		columns[i] = w.View()
	}

	wheels := lipgloss.JoinHorizontal(lipgloss.Center, columns...)
	total := m.styles.Subtitle.Render(
		m.current.String() + "  (" + util.FormatSecondsLong(m.current.TotalSeconds()) + ")",
	)

	return lipgloss.JoinVertical(lipgloss.Center, wheels, total)
}
