package messages

import (
	"time"

	"github.com/durwheel/durwheel/internal/config"
	"github.com/durwheel/durwheel/internal/timespan"
)

// View identifies a top-level screen.
type View int

const (
	ViewPicker View = iota
	ViewHistory
	ViewSettings
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewPicker:
		return "Picker"
	case ViewHistory:
		return "History"
	case ViewSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// Shortcut returns the key that jumps straight to a view. Function
// keys keep plain digits free for the picker's digit entry.
func (v View) Shortcut() string {
	switch v {
	case ViewPicker:
		return "F1"
	case ViewHistory:
		return "F2"
	case ViewSettings:
		return "F3"
	default:
		return ""
	}
}

// Window size message
type WindowSizeMsg struct {
	Width  int
	Height int
}

// Error message
type ErrorMsg struct {
	Error error
}

// ========== Selection Messages ==========

// SelectionChangedMsg is sent whenever the picker lands on a new value
type SelectionChangedMsg struct {
	Components timespan.Components
	Options    timespan.Options
}

// SelectionConfirmedMsg is sent when the user confirms the current value
type SelectionConfirmedMsg struct {
	Components timespan.Components
	Options    timespan.Options
}

// SelectionSavedMsg reports the outcome of persisting a confirmed selection
type SelectionSavedMsg struct {
	ID  string
	Err error
}

// ========== Config Messages ==========

// ConfigReloadedMsg is sent when the config file changes on disk
type ConfigReloadedMsg struct {
	Config *config.Config
}

// ConfigSavedMsg reports the outcome of writing the config back
type ConfigSavedMsg struct {
	Err error
}

// ThemeChangedMsg is sent after the active theme switches
type ThemeChangedMsg struct {
	Name string
}

// ========== History Messages ==========

// HistorySelection represents a stored selection for display
type HistorySelection struct {
	ID           string
	Mode         string
	Components   timespan.Components
	TotalSeconds int
	Rounding     string
	CreatedAt    time.Time
}

// HistoryLoadedMsg is sent when history data is loaded
type HistoryLoadedMsg struct {
	Selections []HistorySelection
	Error      error
}

// HistoryDeleteMsg requests removing an entry
type HistoryDeleteMsg struct {
	ID string
}

// HistoryDeletedMsg reports the outcome of removing an entry
type HistoryDeletedMsg struct {
	ID  string
	Err error
}

// HistoryRefreshMsg requests reloading history data
type HistoryRefreshMsg struct{}

// ========== Statistics Messages ==========

// StatsData summarizes the stored selections
type StatsData struct {
	Count          int
	TotalSeconds   int
	AverageSeconds int
	LongestSeconds int
}

// StatsLoadedMsg is sent when statistics are loaded
type StatsLoadedMsg struct {
	Stats *StatsData
	Error error
}
