package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/durwheel/durwheel/internal/config"
	"github.com/durwheel/durwheel/internal/messages"
	"github.com/durwheel/durwheel/internal/storage"
	"github.com/durwheel/durwheel/internal/timespan"
	"github.com/durwheel/durwheel/internal/util"
)

const storageTimeout = 5 * time.Second

// loadHistory fetches stored selections for the history view
func (m Model) loadHistory() tea.Cmd {
	store := m.storage
	return func() tea.Msg {
		if store == nil {
			return messages.HistoryLoadedMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		records, err := store.ListSelections(ctx, nil)
		if err != nil {
			return messages.HistoryLoadedMsg{Error: err}
		}

		selections := make([]messages.HistorySelection, 0, len(records))
		for _, rec := range records {
			selections = append(selections, messages.HistorySelection{
				ID:   rec.ID,
				Mode: rec.Mode,
				Components: timespan.Components{
					Hour:   rec.Hour,
					Minute: rec.Minute,
					Second: rec.Second,
				},
				TotalSeconds: rec.TotalSeconds,
				Rounding:     rec.Rounding,
				CreatedAt:    rec.CreatedAt,
			})
		}

		return messages.HistoryLoadedMsg{Selections: selections}
	}
}

// loadStats fetches aggregate statistics for the history view
func (m Model) loadStats() tea.Cmd {
	store := m.storage
	return func() tea.Msg {
		if store == nil {
			return messages.StatsLoadedMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		stats, err := store.GetStats(ctx)
		if err != nil {
			return messages.StatsLoadedMsg{Error: err}
		}

		return messages.StatsLoadedMsg{Stats: &messages.StatsData{
			Count:          stats.Count,
			TotalSeconds:   stats.TotalSeconds,
			AverageSeconds: stats.AverageSeconds,
			LongestSeconds: stats.LongestSeconds,
		}}
	}
}

// saveSelection persists a confirmed selection and notifies API clients
func (m Model) saveSelection(msg messages.SelectionConfirmedMsg) tea.Cmd {
	store := m.storage
	server := m.server
	notifier := m.notifier
	player := m.player
	return func() tea.Msg {
		if store == nil {
			return messages.SelectionSavedMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		opts := msg.Options
		rec := &storage.SelectionRecord{
			Mode:           opts.Mode.String(),
			Hour:           msg.Components.Hour,
			Minute:         msg.Components.Minute,
			Second:         msg.Components.Second,
			TotalSeconds:   msg.Components.TotalSeconds(),
			HourInterval:   opts.HourInterval,
			MinuteInterval: opts.MinuteInterval,
			SecondInterval: opts.SecondInterval,
			Rounding:       opts.Rounding.String(),
			MinimumSeconds: opts.Minimum,
			MaximumSeconds: opts.Maximum,
		}

		id, err := store.SaveSelection(ctx, rec)
		if err != nil {
			log.Error().Err(err).Msg("failed to save selection")
			notifier.NotifySaveFailed(err)
			player.PlayError()
			return messages.SelectionSavedMsg{Err: err}
		}

		log.Info().
			Str("id", id).
			Int("total_seconds", rec.TotalSeconds).
			Str("mode", rec.Mode).
			Msg("selection saved")

		notifier.NotifySelectionSaved(msg.Components.String(), util.FormatSeconds(rec.TotalSeconds))
		player.PlaySuccess()

		if server != nil {
			server.BroadcastMessage("history", map[string]interface{}{
				"id":            id,
				"total_seconds": rec.TotalSeconds,
				"mode":          rec.Mode,
			})
		}

		return messages.SelectionSavedMsg{ID: id}
	}
}

// deleteSelection removes a stored selection
func (m Model) deleteSelection(id string) tea.Cmd {
	store := m.storage
	return func() tea.Msg {
		if store == nil {
			return messages.HistoryDeletedMsg{ID: id}
		}

		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		if err := store.DeleteSelection(ctx, id); err != nil {
			return messages.HistoryDeletedMsg{ID: id, Err: err}
		}
		return messages.HistoryDeletedMsg{ID: id}
	}
}

// saveConfig writes the current config back to disk
func (m Model) saveConfig() tea.Cmd {
	cfg := m.config
	return func() tea.Msg {
		return messages.ConfigSavedMsg{Err: cfg.Save()}
	}
}

// reloadConfig re-reads the config file after a watcher event
func (m Model) reloadConfig(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.Load(path)
		if err != nil {
			return messages.ErrorMsg{Error: err}
		}
		return messages.ConfigReloadedMsg{Config: cfg}
	}
}
