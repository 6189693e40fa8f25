package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/jbctechsolutions/modelworth/internal/application/ports"
	domainErrors "github.com/jbctechsolutions/modelworth/internal/domain/errors"
)

// Compile-time check that PreferencesRepository implements PreferencesPort.
var _ ports.PreferencesPort = (*PreferencesRepository)(nil)

// Preference keys.
const (
	prefKeySource        = "pricing.source"
	prefKeyBaseline      = "value.baseline"
	prefKeyRankDecayBase = "value.rank_decay_base"
)

// PreferencesRepository implements PreferencesPort using SQLite.
type PreferencesRepository struct {
	db *sql.DB
}

// NewPreferencesRepository creates a new preferences repository.
func NewPreferencesRepository(db *sql.DB) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

// SetSource records the selected pricing source.
func (r *PreferencesRepository) SetSource(ctx context.Context, source string) error {
	return r.set(ctx, prefKeySource, source)
}

// Source returns the last selected pricing source.
// Returns ErrPreferencesEmpty if no source has been selected.
func (r *PreferencesRepository) Source(ctx context.Context) (string, error) {
	return r.get(ctx, prefKeySource)
}

// SetScorerOverrides records baseline and rank decay overrides for value scoring.
func (r *PreferencesRepository) SetScorerOverrides(ctx context.Context, baseline, rankDecayBase float64) error {
	if err := r.set(ctx, prefKeyBaseline, strconv.FormatFloat(baseline, 'g', -1, 64)); err != nil {
		return err
	}
	return r.set(ctx, prefKeyRankDecayBase, strconv.FormatFloat(rankDecayBase, 'g', -1, 64))
}

// ScorerOverrides returns stored scorer overrides.
// Returns ErrPreferencesEmpty if no overrides have been stored.
func (r *PreferencesRepository) ScorerOverrides(ctx context.Context) (baseline, rankDecayBase float64, err error) {
	baseStr, err := r.get(ctx, prefKeyBaseline)
	if err != nil {
		return 0, 0, err
	}
	decayStr, err := r.get(ctx, prefKeyRankDecayBase)
	if err != nil {
		return 0, 0, err
	}

	baseline, err = strconv.ParseFloat(baseStr, 64)
	if err != nil {
		return 0, 0, domainErrors.NewError(domainErrors.CodeStorage, fmt.Sprintf("corrupt baseline preference %q", baseStr), err)
	}
	rankDecayBase, err = strconv.ParseFloat(decayStr, 64)
	if err != nil {
		return 0, 0, domainErrors.NewError(domainErrors.CodeStorage, fmt.Sprintf("corrupt rank decay preference %q", decayStr), err)
	}

	return baseline, rankDecayBase, nil
}

// RecordRefresh appends a completed refresh to the refresh log.
func (r *PreferencesRepository) RecordRefresh(ctx context.Context, rec ports.RefreshRecord) error {
	query := `
		INSERT INTO refresh_log (source, correlation_id, entries, duration_ns, refreshed_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.Source,
		rec.CorrelationID,
		rec.Entries,
		rec.Duration.Nanoseconds(),
		rec.RefreshedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record refresh: %w", err)
	}

	return nil
}

// LastRefresh returns the most recent refresh for a source.
// Returns ErrPreferencesEmpty if the source has never been refreshed.
func (r *PreferencesRepository) LastRefresh(ctx context.Context, source string) (*ports.RefreshRecord, error) {
	query := `
		SELECT source, correlation_id, entries, duration_ns, refreshed_at
		FROM refresh_log
		WHERE source = ?
		ORDER BY refreshed_at DESC, id DESC
		LIMIT 1
	`

	var (
		rec           ports.RefreshRecord
		correlationID sql.NullString
		durationNs    int64
		refreshedAt   string
	)

	err := r.db.QueryRowContext(ctx, query, source).Scan(
		&rec.Source, &correlationID, &rec.Entries, &durationNs, &refreshedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domainErrors.ErrPreferencesEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last refresh: %w", err)
	}

	if correlationID.Valid {
		rec.CorrelationID = correlationID.String
	}
	rec.Duration = time.Duration(durationNs)

	rec.RefreshedAt, err = time.Parse(time.RFC3339, refreshedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse refreshed_at: %w", err)
	}

	return &rec, nil
}

// RefreshHistory returns up to limit refresh records for a source, newest first.
func (r *PreferencesRepository) RefreshHistory(ctx context.Context, source string, limit int) ([]*ports.RefreshRecord, error) {
	query := `
		SELECT source, correlation_id, entries, duration_ns, refreshed_at
		FROM refresh_log
		WHERE source = ?
		ORDER BY refreshed_at DESC, id DESC
	`
	args := []any{source}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query refresh history: %w", err)
	}
	defer rows.Close()

	var records []*ports.RefreshRecord
	for rows.Next() {
		var (
			rec           ports.RefreshRecord
			correlationID sql.NullString
			durationNs    int64
			refreshedAt   string
		)

		if err := rows.Scan(&rec.Source, &correlationID, &rec.Entries, &durationNs, &refreshedAt); err != nil {
			return nil, fmt.Errorf("failed to scan refresh record: %w", err)
		}

		if correlationID.Valid {
			rec.CorrelationID = correlationID.String
		}
		rec.Duration = time.Duration(durationNs)

		rec.RefreshedAt, err = time.Parse(time.RFC3339, refreshedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse refreshed_at: %w", err)
		}

		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating refresh records: %w", err)
	}

	return records, nil
}

// set upserts a preference value.
func (r *PreferencesRepository) set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query, key, value, time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to set preference %s: %w", key, err)
	}

	return nil
}

// get reads a preference value, returning ErrPreferencesEmpty when unset.
func (r *PreferencesRepository) get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", domainErrors.ErrPreferencesEmpty
	}
	if err != nil {
		return "", fmt.Errorf("failed to get preference %s: %w", key, err)
	}
	return value, nil
}
