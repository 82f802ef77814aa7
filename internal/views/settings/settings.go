package settings

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/durwheel/durwheel/internal/config"
	"github.com/durwheel/durwheel/internal/messages"
	"github.com/durwheel/durwheel/internal/theme"
	"github.com/durwheel/durwheel/internal/timespan"
	"github.com/durwheel/durwheel/internal/util"
)

// SettingType represents the type of a setting
type SettingType int

const (
	SettingTypeSelect SettingType = iota
	SettingTypeToggle
	SettingTypeNumber
)

// Setting represents a configurable option
type Setting struct {
	Name        string
	Description string
	Type        SettingType
	Options     []string    // For select type
	Value       interface{} // Current value
	Min, Max    int         // For number type
	Step        int         // For number type
}

// SettingChangedMsg is sent when any setting changes
type SettingChangedMsg struct {
	Name   string
	Config *config.Config
}

// Model represents the settings view
type Model struct {
	width    int
	height   int
	config   *config.Config
	settings []Setting
	cursor   int
	styles   theme.Styles
}

// hourIntervalOptions are the divisors of 24 no larger than half a day
var hourIntervalOptions = []string{"1", "2", "3", "4", "6", "8", "12"}

// sixtyIntervalOptions are the divisors of 60 no larger than half a unit
var sixtyIntervalOptions = []string{"1", "2", "3", "4", "5", "6", "10", "12", "15", "20", "30"}

// New creates a new settings view
func New(cfg *config.Config) Model {
	m := Model{
		config: cfg,
		styles: theme.NewStyles(),
	}
	m.buildSettings()
	return m
}

func (m *Model) buildSettings() {
	modes := make([]string, 0, 6)
	for _, mode := range []timespan.Mode{
		timespan.ModeHour, timespan.ModeHourMinute, timespan.ModeHourMinuteSecond,
		timespan.ModeMinute, timespan.ModeMinuteSecond, timespan.ModeSecond,
	} {
		modes = append(modes, mode.String())
	}

	m.settings = []Setting{
		{
			Name:        "Mode",
			Description: "Which unit wheels the picker shows",
			Type:        SettingTypeSelect,
			Options:     modes,
			Value:       m.config.Mode,
		},
		{
			Name:        "Hour step",
			Description: "Hour wheel interval; must evenly divide 24",
			Type:        SettingTypeSelect,
			Options:     hourIntervalOptions,
			Value:       strconv.Itoa(m.config.HourInterval),
		},
		{
			Name:        "Minute step",
			Description: "Minute wheel interval; must evenly divide 60",
			Type:        SettingTypeSelect,
			Options:     sixtyIntervalOptions,
			Value:       strconv.Itoa(m.config.MinuteInterval),
		},
		{
			Name:        "Second step",
			Description: "Second wheel interval; must evenly divide 60",
			Type:        SettingTypeSelect,
			Options:     sixtyIntervalOptions,
			Value:       strconv.Itoa(m.config.SecondInterval),
		},
		{
			Name:        "Rounding",
			Description: "Snap off-grid durations down or up",
			Type:        SettingTypeSelect,
			Options:     []string{timespan.RoundDown.String(), timespan.RoundUp.String()},
			Value:       m.config.Rounding,
		},
		{
			Name:        "Minimum",
			Description: "Smallest selectable duration in seconds; 0 disables",
			Type:        SettingTypeNumber,
			Value:       boundValue(m.config.MinimumSeconds),
			Min:         0,
			Max:         86399,
			Step:        60,
		},
		{
			Name:        "Maximum",
			Description: "Largest selectable duration in seconds; 0 disables",
			Type:        SettingTypeNumber,
			Value:       boundValue(m.config.MaximumSeconds),
			Min:         0,
			Max:         86399,
			Step:        60,
		},
		{
			Name:        "Theme",
			Description: "Color theme for the application",
			Type:        SettingTypeSelect,
			Options:     theme.AvailableThemes(),
			Value:       m.config.Theme,
		},
		{
			Name:        "Notifications",
			Description: "Desktop notification when a selection is saved",
			Type:        SettingTypeToggle,
			Value:       m.config.NotificationsEnabled,
		},
		{
			Name:        "Sound",
			Description: "Play a sound when a selection is saved",
			Type:        SettingTypeToggle,
			Value:       m.config.SoundEnabled,
		},
		{
			Name:        "API server",
			Description: "Serve the quantizer over HTTP and WebSocket",
			Type:        SettingTypeToggle,
			Value:       m.config.APIEnabled,
		},
	}
}

func boundValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// Init initializes the settings view
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the settings view
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case messages.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.settings)-1 {
			m.cursor++
		}
	case "left", "h":
		return m.adjustValue(-1)
	case "right", "l":
		return m.adjustValue(1)
	case "enter", " ":
		return m.toggleOrCycle()
	}
	return m, nil
}

func (m Model) adjustValue(delta int) (Model, tea.Cmd) {
	setting := &m.settings[m.cursor]
	var cmd tea.Cmd

	switch setting.Type {
	case SettingTypeSelect:
		options := setting.Options
		current := 0
		for i, opt := range options {
			if opt == setting.Value.(string) {
				current = i
				break
			}
		}
		setting.Value = options[(current+delta+len(options))%len(options)]
		cmd = m.applySettingChange(setting)
	case SettingTypeNumber:
		val := setting.Value.(int) + delta*setting.Step
		if val < setting.Min {
			val = setting.Min
		}
		if val > setting.Max {
			val = setting.Max
		}
		setting.Value = val
		cmd = m.applySettingChange(setting)
	case SettingTypeToggle:
		setting.Value = !setting.Value.(bool)
		cmd = m.applySettingChange(setting)
	}

	return m, cmd
}

func (m Model) toggleOrCycle() (Model, tea.Cmd) {
	setting := &m.settings[m.cursor]

	switch setting.Type {
	case SettingTypeToggle:
		setting.Value = !setting.Value.(bool)
		return m, m.applySettingChange(setting)
	case SettingTypeSelect:
		return m.adjustValue(1)
	}

	return m, nil
}

func (m *Model) applySettingChange(setting *Setting) tea.Cmd {
	switch setting.Name {
	case "Mode":
		m.config.Mode = setting.Value.(string)
	case "Hour step":
		m.config.HourInterval, _ = strconv.Atoi(setting.Value.(string))
	case "Minute step":
		m.config.MinuteInterval, _ = strconv.Atoi(setting.Value.(string))
	case "Second step":
		m.config.SecondInterval, _ = strconv.Atoi(setting.Value.(string))
	case "Rounding":
		m.config.Rounding = setting.Value.(string)
	case "Minimum":
		m.config.MinimumSeconds = boundPtr(setting.Value.(int))
	case "Maximum":
		m.config.MaximumSeconds = boundPtr(setting.Value.(int))
	case "Theme":
		name := setting.Value.(string)
		theme.SetTheme(name)
		m.config.Theme = name
		m.styles = theme.NewStyles()
		cfg := m.config
		return tea.Batch(
			func() tea.Msg { return messages.ThemeChangedMsg{Name: name} },
			func() tea.Msg { return SettingChangedMsg{Name: "Theme", Config: cfg} },
		)
	case "Notifications":
		m.config.NotificationsEnabled = setting.Value.(bool)
	case "Sound":
		m.config.SoundEnabled = setting.Value.(bool)
	case "API server":
		m.config.APIEnabled = setting.Value.(bool)
	}

	m.config.Normalize()
	name, cfg := setting.Name, m.config
	return func() tea.Msg {
		return SettingChangedMsg{Name: name, Config: cfg}
	}
}

func boundPtr(v int) *int {
	if v <= 0 {
		return nil
	}
	return &v
}

// SetSize sets the view dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetConfig updates the config reference
func (m *Model) SetConfig(cfg *config.Config) {
	m.config = cfg
	m.buildSettings()
}

// RefreshStyles rebuilds styles after theme change
func (m *Model) RefreshStyles() {
	m.styles = theme.NewStyles()
}

// View renders the settings view
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	t := theme.Current

	title := m.styles.Title.Render("Settings")

	var rows []string
	for i, setting := range m.settings {
		rows = append(rows, m.renderSetting(i, setting))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2).
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	help := m.styles.Muted.Render("Arrow keys: Navigate/Adjust  Enter/Space: Toggle  Esc: Back")

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", box, "", help))
}

func (m Model) renderSetting(index int, setting Setting) string {
	t := theme.Current

	cursor := "  "
	if index == m.cursor {
		cursor = m.styles.Shortcut.Render("> ")
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.Foreground).Bold(true).Width(14)
	if index == m.cursor {
		nameStyle = nameStyle.Foreground(t.Primary)
	}
	name := nameStyle.Render(setting.Name)

	var valueDisplay string
	switch setting.Type {
	case SettingTypeSelect:
		val := setting.Value.(string)
		var parts []string
		for _, opt := range setting.Options {
			if opt == val {
				parts = append(parts, lipgloss.NewStyle().
					Background(t.Selection).
					Foreground(t.Primary).
					Padding(0, 1).
					Bold(true).
					Render(opt))
			} else {
				parts = append(parts, lipgloss.NewStyle().
					Foreground(t.Subtle).
					Padding(0, 1).
					Render(opt))
			}
		}
		valueDisplay = strings.Join(parts, " ")
	case SettingTypeToggle:
		if setting.Value.(bool) {
			valueDisplay = lipgloss.NewStyle().
				Background(t.Success).
				Foreground(t.Background).
				Padding(0, 1).
				Bold(true).
				Render("ON")
		} else {
			valueDisplay = lipgloss.NewStyle().
				Background(t.Subtle).
				Foreground(t.Background).
				Padding(0, 1).
				Render("OFF")
		}
	case SettingTypeNumber:
		val := setting.Value.(int)
		display := "none"
		if val > 0 {
			display = util.FormatSeconds(val)
		}
		valueDisplay = fmt.Sprintf("%s %s %s",
			m.styles.Muted.Render("<"),
			display,
			m.styles.Muted.Render(">"))
	}

	desc := m.styles.Muted.Render(setting.Description)

	firstLine := fmt.Sprintf("%s%s  %s", cursor, name, valueDisplay)
	secondLine := fmt.Sprintf("                  %s", desc)

	return firstLine + "\n" + secondLine + "\n"
}
