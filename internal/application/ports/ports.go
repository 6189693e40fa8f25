// Package ports defines the interfaces the application layer depends on.
// Infrastructure adapters implement these ports, keeping the application
// layer free of storage and transport concerns.
package ports

import (
	"context"
	"time"
)

// RefreshRecord describes one completed catalog refresh.
type RefreshRecord struct {
	Source        string
	CorrelationID string
	Entries       int
	Duration      time.Duration
	RefreshedAt   time.Time
}

// PreferencesPort persists user-level settings that survive restarts: the
// selected pricing source, scorer overrides, and refresh history.
type PreferencesPort interface {
	// SetSource records the selected pricing source.
	SetSource(ctx context.Context, source string) error

	// Source returns the last selected pricing source.
	// Returns ErrPreferencesEmpty if no source has been selected.
	Source(ctx context.Context) (string, error)

	// SetScorerOverrides records baseline and rank decay overrides.
	SetScorerOverrides(ctx context.Context, baseline, rankDecayBase float64) error

	// ScorerOverrides returns stored scorer overrides.
	// Returns ErrPreferencesEmpty if no overrides have been stored.
	ScorerOverrides(ctx context.Context) (baseline, rankDecayBase float64, err error)

	// RecordRefresh appends a completed refresh to the refresh log.
	RecordRefresh(ctx context.Context, rec RefreshRecord) error

	// LastRefresh returns the most recent refresh for a source.
	// Returns ErrPreferencesEmpty if the source has never been refreshed.
	LastRefresh(ctx context.Context, source string) (*RefreshRecord, error)

	// RefreshHistory returns up to limit refresh records, newest first.
	RefreshHistory(ctx context.Context, source string, limit int) ([]*RefreshRecord, error)
}

// FetcherPort retrieves one provider's raw pricing payload.
type FetcherPort interface {
	Fetch(ctx context.Context) ([]byte, error)
}
