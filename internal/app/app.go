// Package app wires the views, the config, the store and the optional
// API server into the root bubbletea model.
package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/durwheel/durwheel/internal/api"
	"github.com/durwheel/durwheel/internal/components/header"
	"github.com/durwheel/durwheel/internal/components/statusbar"
	"github.com/durwheel/durwheel/internal/config"
	"github.com/durwheel/durwheel/internal/messages"
	"github.com/durwheel/durwheel/internal/notify"
	"github.com/durwheel/durwheel/internal/sound"
	"github.com/durwheel/durwheel/internal/storage"
	"github.com/durwheel/durwheel/internal/theme"
	"github.com/durwheel/durwheel/internal/util"
	"github.com/durwheel/durwheel/internal/views/history"
	"github.com/durwheel/durwheel/internal/views/pickerview"
	"github.com/durwheel/durwheel/internal/views/settings"
	"github.com/durwheel/durwheel/internal/watcher"
)

// keyMap holds the global key bindings
type keyMap struct {
	Quit     key.Binding
	Picker   key.Binding
	History  key.Binding
	Settings key.Binding
	Back     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+c", "quit"),
		),
		// Function keys, so plain digits stay free for the
		// picker's digit entry.
		Picker: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "picker"),
		),
		History: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "history"),
		),
		Settings: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("f3", "settings"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// Model is the main application model
type Model struct {
	width  int
	height int
	ready  bool

	activeView messages.View
	keys       keyMap

	config   *config.Config
	storage  storage.Storage
	server   *api.Server
	notifier *notify.Notifier
	player   *sound.Player

	// Components
	header    header.Model
	statusbar statusbar.Model

	// Views
	picker   pickerview.Model
	history  history.Model
	settings settings.Model

	styles theme.Styles
}

// New creates a new application model
func New(cfg *config.Config, store storage.Storage, server *api.Server) Model {
	theme.SetTheme(cfg.Theme)
	opts := cfg.Options()

	m := Model{
		activeView: messages.ViewPicker,
		keys:       defaultKeyMap(),
		config:     cfg,
		storage:    store,
		server:     server,
		notifier:   notify.New(cfg.NotificationsEnabled),
		player:     sound.New(cfg.SoundEnabled),
		header:     header.New(),
		statusbar:  statusbar.New(),
		picker:     pickerview.New(opts),
		history:    history.New(),
		settings:   settings.New(cfg),
		styles:     theme.NewStyles(),
	}
	m.statusbar.SetSelection(m.picker.Value(), opts.Mode)
	if server != nil {
		m.statusbar.SetAPIAddr(fmt.Sprintf(":%d", cfg.APIPort))
	}
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadHistory(), m.loadStats())
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Picker):
			m.navigate(messages.ViewPicker)
			return m, nil

		case key.Matches(msg, m.keys.History):
			m.navigate(messages.ViewHistory)
			return m, tea.Batch(m.loadHistory(), m.loadStats())

		case key.Matches(msg, m.keys.Settings):
			m.navigate(messages.ViewSettings)
			return m, nil

		case key.Matches(msg, m.keys.Back):
			if m.activeView != messages.ViewPicker {
				m.navigate(messages.ViewPicker)
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		m.header.SetWidth(msg.Width)
		m.statusbar.SetWidth(msg.Width)

		// header(2) + statusbar(2)
		contentHeight := msg.Height - 4
		m.picker.SetSize(msg.Width, contentHeight)
		m.history.SetSize(msg.Width, contentHeight)
		m.settings.SetSize(msg.Width, contentHeight)

		sizeMsg := messages.WindowSizeMsg{Width: msg.Width, Height: contentHeight}
		m.picker, _ = m.picker.Update(sizeMsg)
		m.history, _ = m.history.Update(sizeMsg)
		m.settings, _ = m.settings.Update(sizeMsg)

	case messages.SelectionChangedMsg:
		m.statusbar.SetSelection(msg.Components, msg.Options.Mode)
		if m.server != nil {
			m.server.SetSelection(msg.Components, msg.Options)
		}

	case messages.SelectionConfirmedMsg:
		m.statusbar.SetMessage(fmt.Sprintf("Saving %s...", msg.Components))
		return m, m.saveSelection(msg)

	case messages.SelectionSavedMsg:
		if msg.Err != nil {
			m.statusbar.SetMessage(fmt.Sprintf("Save failed: %v", msg.Err))
		} else {
			m.statusbar.SetMessage("Selection saved")
		}
		m.picker, _ = m.picker.Update(msg)
		return m, tea.Batch(m.loadHistory(), m.loadStats())

	case messages.HistoryRefreshMsg:
		return m, tea.Batch(m.loadHistory(), m.loadStats())

	case messages.HistoryDeleteMsg:
		return m, m.deleteSelection(msg.ID)

	case messages.HistoryDeletedMsg:
		if msg.Err == nil {
			m.statusbar.SetMessage("Selection deleted")
		}
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd

	case settings.SettingChangedMsg:
		m.applyConfig(msg.Config)
		return m, m.saveConfig()

	case messages.ThemeChangedMsg:
		m.refreshStyles()

	case messages.ConfigSavedMsg:
		if msg.Err != nil {
			m.statusbar.SetMessage(fmt.Sprintf("Config save failed: %v", msg.Err))
		}

	case watcher.ConfigChangedMsg:
		return m, m.reloadConfig(msg.Path)

	case messages.ConfigReloadedMsg:
		m.config = msg.Config
		theme.SetTheme(m.config.Theme)
		m.refreshStyles()
		m.applyConfig(m.config)
		m.settings.SetConfig(m.config)
		m.statusbar.SetMessage("Config reloaded")
		return m, nil

	case watcher.ErrorMsg:
		m.statusbar.SetMessage(fmt.Sprintf("Watcher error: %v", msg.Error))

	case messages.ErrorMsg:
		m.statusbar.SetMessage(fmt.Sprintf("Error: %v", msg.Error))
	}

	// Route to active view
	switch m.activeView {
	case messages.ViewPicker:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		cmds = append(cmds, cmd)

	case messages.ViewHistory:
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		cmds = append(cmds, cmd)

	case messages.ViewSettings:
		var cmd tea.Cmd
		m.settings, cmd = m.settings.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) navigate(view messages.View) {
	m.activeView = view
	m.header.SetActiveView(view)
	m.statusbar.ClearMessage()
}

// applyConfig pushes picker-relevant config into the running views
func (m *Model) applyConfig(cfg *config.Config) {
	m.config = cfg
	opts := cfg.Options()
	m.picker.SetOptions(opts)
	m.statusbar.SetSelection(m.picker.Value(), opts.Mode)
	m.notifier.SetEnabled(cfg.NotificationsEnabled)
	m.player.SetEnabled(cfg.SoundEnabled)
	if m.server != nil {
		m.server.SetSelection(m.picker.Value(), opts)
	}
	log.Debug().
		Str("mode", cfg.Mode).
		Str("rounding", cfg.Rounding).
		Msg("picker options applied")
}

func (m *Model) refreshStyles() {
	m.styles = theme.NewStyles()
	m.header.RefreshStyles()
	m.statusbar.RefreshStyles()
	m.picker.RefreshStyles()
	m.history.RefreshStyles()
	m.settings.RefreshStyles()
}

// View renders the application
func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing durwheel..."
	}

	m.header.SetActiveView(m.activeView)
	headerView := m.header.View()

	var content string
	switch m.activeView {
	case messages.ViewPicker:
		content = m.picker.View()
	case messages.ViewHistory:
		content = m.history.View()
	case messages.ViewSettings:
		content = m.settings.View()
	}

	contentHeight := m.height - 4
	content = lipgloss.NewStyle().
		Width(m.width).
		Height(max(contentHeight, 0)).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left,
		headerView,
		content,
		m.statusbar.View(),
	)
}

// Value returns the picker's current selection, for use after the
// program exits.
func (m Model) Value() string {
	c := m.picker.Value()
	return c.String() + " (" + util.FormatSecondsLong(c.TotalSeconds()) + ")"
}
