package storage

import (
	"context"
	"time"
)

// SelectionRecord represents a stored, confirmed duration selection
type SelectionRecord struct {
	ID           string
	Mode         string
	Hour         int
	Minute       int
	Second       int
	TotalSeconds int

	HourInterval   int
	MinuteInterval int
	SecondInterval int
	Rounding       string
	MinimumSeconds *int
	MaximumSeconds *int

	CreatedAt time.Time
}

// SelectionFilter provides filtering options for listing selections
type SelectionFilter struct {
	Mode          string     // Filter by mode (exact match)
	CreatedAfter  *time.Time // Filter by creation time
	CreatedBefore *time.Time // Filter by creation time
	Limit         int        // Max results (default 100)
	Offset        int        // Pagination offset
}

// Stats represents aggregate statistics over stored selections
type Stats struct {
	Count           int
	TotalSeconds    int
	AverageSeconds  int
	LongestSeconds  int
	ShortestSeconds int
	ByMode          map[string]int
}

// Storage defines the interface for persistence operations
type Storage interface {
	// Lifecycle
	Close() error

	// Selections
	SaveSelection(ctx context.Context, rec *SelectionRecord) (string, error)
	GetSelection(ctx context.Context, id string) (*SelectionRecord, error)
	ListSelections(ctx context.Context, filter *SelectionFilter) ([]*SelectionRecord, error)
	CountSelections(ctx context.Context, filter *SelectionFilter) (int, error)
	DeleteSelection(ctx context.Context, id string) error

	// Statistics
	GetStats(ctx context.Context) (*Stats, error)
}
