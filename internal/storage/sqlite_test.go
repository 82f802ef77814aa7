package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewInMemoryStorage()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleSelection() *SelectionRecord {
	return &SelectionRecord{
		Mode:           "hourMinute",
		Hour:           1,
		Minute:         30,
		TotalSeconds:   5400,
		HourInterval:   1,
		MinuteInterval: 15,
		SecondInterval: 1,
		Rounding:       "down",
	}
}

func TestSaveSelection_AssignsIDAndTimestamp(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	rec := sampleSelection()
	id, err := s.SaveSelection(ctx, rec)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestGetSelection_RoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	min := 600
	rec := sampleSelection()
	rec.MinimumSeconds = &min

	id, err := s.SaveSelection(ctx, rec)
	require.NoError(t, err)

	loaded, err := s.GetSelection(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, "hourMinute", loaded.Mode)
	assert.Equal(t, 1, loaded.Hour)
	assert.Equal(t, 30, loaded.Minute)
	assert.Equal(t, 0, loaded.Second)
	assert.Equal(t, 5400, loaded.TotalSeconds)
	assert.Equal(t, 15, loaded.MinuteInterval)
	assert.Equal(t, "down", loaded.Rounding)
	require.NotNil(t, loaded.MinimumSeconds)
	assert.Equal(t, 600, *loaded.MinimumSeconds)
	assert.Nil(t, loaded.MaximumSeconds)
}

func TestGetSelection_NotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.GetSelection(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListSelections_NewestFirst(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	older := sampleSelection()
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	_, err := s.SaveSelection(ctx, older)
	require.NoError(t, err)

	newer := sampleSelection()
	newer.TotalSeconds = 7200
	newerID, err := s.SaveSelection(ctx, newer)
	require.NoError(t, err)

	records, err := s.ListSelections(ctx, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, newerID, records[0].ID)
}

func TestListSelections_FilterByMode(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	hm := sampleSelection()
	_, err := s.SaveSelection(ctx, hm)
	require.NoError(t, err)

	sec := sampleSelection()
	sec.Mode = "second"
	_, err = s.SaveSelection(ctx, sec)
	require.NoError(t, err)

	records, err := s.ListSelections(ctx, &SelectionFilter{Mode: "second"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "second", records[0].Mode)

	count, err := s.CountSelections(ctx, &SelectionFilter{Mode: "second"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestListSelections_LimitAndOffset(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		rec := sampleSelection()
		rec.TotalSeconds = (i + 1) * 60
		rec.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		_, err := s.SaveSelection(ctx, rec)
		require.NoError(t, err)
	}

	page, err := s.ListSelections(ctx, &SelectionFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 240, page[0].TotalSeconds)
	assert.Equal(t, 180, page[1].TotalSeconds)
}

func TestDeleteSelection(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	id, err := s.SaveSelection(ctx, sampleSelection())
	require.NoError(t, err)

	require.NoError(t, s.DeleteSelection(ctx, id))

	_, err = s.GetSelection(ctx, id)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeleteSelection_NotFound(t *testing.T) {
	s := newTestStorage(t)

	err := s.DeleteSelection(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestGetStats(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	totals := []int{60, 120, 300}
	for _, total := range totals {
		rec := sampleSelection()
		rec.TotalSeconds = total
		_, err := s.SaveSelection(ctx, rec)
		require.NoError(t, err)
	}

	other := sampleSelection()
	other.Mode = "second"
	other.TotalSeconds = 30
	_, err := s.SaveSelection(ctx, other)
	require.NoError(t, err)

	stats, err := s.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Count)
	assert.Equal(t, 510, stats.TotalSeconds)
	assert.Equal(t, 127, stats.AverageSeconds)
	assert.Equal(t, 300, stats.LongestSeconds)
	assert.Equal(t, 30, stats.ShortestSeconds)
	assert.Equal(t, 3, stats.ByMode["hourMinute"])
	assert.Equal(t, 1, stats.ByMode["second"])
}

func TestGetStats_Empty(t *testing.T) {
	s := newTestStorage(t)

	stats, err := s.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Count)
	assert.Equal(t, 0, stats.TotalSeconds)
	assert.Empty(t, stats.ByMode)
}
