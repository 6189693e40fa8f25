// Package pricing coordinates catalog fetching, rebuilds, name resolution,
// and value scoring. The Service owns the active catalog pair and swaps it
// atomically: readers always see either the previous complete catalog or the
// new one, never a partially built state.
package pricing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jbctechsolutions/modelworth/internal/adapters/catalog"
	"github.com/jbctechsolutions/modelworth/internal/application/ports"
	domainErrors "github.com/jbctechsolutions/modelworth/internal/domain/errors"
	domainPricing "github.com/jbctechsolutions/modelworth/internal/domain/pricing"
	"github.com/jbctechsolutions/modelworth/internal/infrastructure/logging"
	"github.com/jbctechsolutions/modelworth/internal/infrastructure/tracing"
)

// LeaderboardRow is one input row for value scoring: a display name, a
// capability score, and a 1-based leaderboard rank.
type LeaderboardRow struct {
	Model      string
	Capability float64
	Rank       int
}

// ScoredRow is a leaderboard row joined against the active catalog.
type ScoredRow struct {
	Row LeaderboardRow

	// Matched is true when the model name resolved to a catalog entry.
	Matched     bool
	SourceModel string
	InputPer1M  float64
	OutputPer1M float64
	Blended     float64

	// Valued is true when the value score is defined for this row.
	Valued bool
	Value  float64

	// ContextLength is 0 when no context entry matched.
	ContextLength int
}

// Service owns the active pricing and context catalogs and serves lookups
// against them. All methods are safe for concurrent use.
type Service struct {
	mu         sync.RWMutex
	catalog    *domainPricing.Catalog
	contextCat *domainPricing.ContextCatalog
	source     catalog.Source
	generation uint64

	fetchers map[catalog.Source]ports.FetcherPort
	scorer   domainPricing.Scorer
	prefs    ports.PreferencesPort
	logger   *logging.Logger
	tracer   *tracing.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithFetcher registers the fetcher for a pricing source.
func WithFetcher(source catalog.Source, fetcher ports.FetcherPort) Option {
	return func(s *Service) {
		s.fetchers[source] = fetcher
	}
}

// WithScorer sets the value scorer.
func WithScorer(scorer domainPricing.Scorer) Option {
	return func(s *Service) {
		s.scorer = scorer
	}
}

// WithPreferences sets the preferences store used to persist the selected
// source and refresh history.
func WithPreferences(prefs ports.PreferencesPort) Option {
	return func(s *Service) {
		s.prefs = prefs
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer sets the tracer.
func WithTracer(tracer *tracing.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// NewService creates a Service with no catalog loaded. A catalog becomes
// available after the first successful SwitchSource or Refresh.
func NewService(opts ...Option) *Service {
	s := &Service{
		fetchers: make(map[catalog.Source]ports.FetcherPort),
		scorer:   domainPricing.NewScorer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	if s.tracer == nil {
		s.tracer = tracing.Default()
	}
	return s
}

// Source returns the source of the active catalog, or "" when none is loaded.
func (s *Service) Source() catalog.Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// CatalogSize returns the number of entries in the active catalog.
func (s *Service) CatalogSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return 0
	}
	return s.catalog.Len()
}

// Scorer returns the scorer currently in use.
func (s *Service) Scorer() domainPricing.Scorer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scorer
}

// SetScorer replaces the scorer used for value computation.
func (s *Service) SetScorer(scorer domainPricing.Scorer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scorer = scorer
}

// SwitchSource rebuilds the catalog from the named source and makes it
// active. The fetch and build run without holding the catalog lock, so
// lookups keep serving the previous catalog throughout. If another
// SwitchSource or Refresh starts while this one is in flight, this rebuild's
// result is discarded and ErrRebuildSuperseded is returned: the most recent
// request always wins, regardless of which fetch finishes first.
func (s *Service) SwitchSource(ctx context.Context, source catalog.Source) error {
	adapter, ok := catalog.ForSource(source)
	if !ok {
		return fmt.Errorf("%w: %s", domainErrors.ErrUnknownSource, source)
	}
	fetcher, ok := s.fetchers[source]
	if !ok {
		return fmt.Errorf("%w: no fetcher registered for %s", domainErrors.ErrUnknownSource, source)
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	correlationID := uuid.NewString()
	ctx = logging.WithCorrelationID(ctx, correlationID)
	ctx = logging.WithSource(ctx, string(source))

	ctx, span := s.tracer.StartRebuildSpan(ctx, string(source), correlationID)
	logging.LogRebuildStart(ctx, s.logger, string(source))
	started := time.Now()

	raw, err := s.fetch(ctx, source, fetcher)
	if err != nil {
		logging.LogFetchFailed(ctx, s.logger, string(source), err)
		span.EndWithError(err)
		return fmt.Errorf("%w: %v", domainErrors.ErrFetchFailed, err)
	}
	span.SetPayloadSize(len(raw))

	cat := adapter.Build(raw)
	span.SetEntryCount(cat.Len())

	// Context metadata rides along with the OpenRouter payload. For other
	// pricing sources it is fetched separately when an OpenRouter fetcher is
	// registered, and skipped otherwise.
	ctxCat := s.buildContextCatalog(ctx, source, raw)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		logging.LogRebuildSuperseded(ctx, s.logger, string(source))
		span.SetSuperseded()
		span.EndWithError(domainErrors.ErrRebuildSuperseded)
		return domainErrors.ErrRebuildSuperseded
	}
	s.catalog = cat
	if ctxCat != nil {
		s.contextCat = ctxCat
	}
	s.source = source
	s.mu.Unlock()

	duration := time.Since(started)
	logging.LogRebuildComplete(ctx, s.logger, string(source), cat.Len(), duration)
	span.End()

	s.persistRefresh(ctx, ports.RefreshRecord{
		Source:        string(source),
		CorrelationID: correlationID,
		Entries:       cat.Len(),
		Duration:      duration,
		RefreshedAt:   started,
	})

	return nil
}

// Refresh rebuilds the catalog from the currently active source.
// Returns ErrNoCatalog when no source has been selected yet.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.RLock()
	source := s.source
	s.mu.RUnlock()

	if source == "" {
		return domainErrors.ErrNoCatalog
	}
	return s.SwitchSource(ctx, source)
}

// Resolve finds the pricing record for a raw display name.
// Returns ErrNoCatalog when no catalog has been loaded.
func (s *Service) Resolve(ctx context.Context, name string) (*domainPricing.Record, bool, error) {
	s.mu.RLock()
	cat := s.catalog
	s.mu.RUnlock()

	if cat == nil {
		return nil, false, domainErrors.ErrNoCatalog
	}

	ctx, span := s.tracer.StartResolveSpan(ctx, name)
	defer span.End()

	rec, ok := domainPricing.Resolve(cat, name)
	if !ok {
		span.SetMiss()
		logging.LogResolveMiss(ctx, s.logger, name)
		return nil, false, nil
	}
	span.SetMatch(rec.SourceModel)
	return rec, true, nil
}

// ResolveContext finds the context record for a raw display name.
// Returns ErrNoCatalog when no context catalog has been loaded.
func (s *Service) ResolveContext(ctx context.Context, name string) (*domainPricing.ContextRecord, bool, error) {
	s.mu.RLock()
	cat := s.contextCat
	s.mu.RUnlock()

	if cat == nil {
		return nil, false, domainErrors.ErrNoCatalog
	}

	rec, ok := domainPricing.ResolveContext(cat, name)
	if !ok {
		logging.LogResolveMiss(ctx, s.logger, name)
		return nil, false, nil
	}
	return rec, true, nil
}

// ScoreRows resolves and scores a batch of leaderboard rows against the
// active catalog. The output preserves input order; unresolvable rows are
// returned unmatched rather than dropped.
func (s *Service) ScoreRows(ctx context.Context, rows []LeaderboardRow) ([]ScoredRow, error) {
	s.mu.RLock()
	cat := s.catalog
	ctxCat := s.contextCat
	scorer := s.scorer
	s.mu.RUnlock()

	if cat == nil {
		return nil, domainErrors.ErrNoCatalog
	}

	scored := make([]ScoredRow, 0, len(rows))
	for _, row := range rows {
		out := ScoredRow{Row: row}

		rec, ok := domainPricing.Resolve(cat, row.Model)
		if ok {
			out.Matched = true
			out.SourceModel = rec.SourceModel
			out.InputPer1M = rec.InputPer1M
			out.OutputPer1M = rec.OutputPer1M
			out.Blended = rec.BlendedPrice()

			out.Value, out.Valued = scorer.Score(row.Capability, rec.InputPer1M, rec.OutputPer1M, row.Rank)
		} else {
			logging.LogResolveMiss(ctx, s.logger, row.Model)
		}

		if ctxCat != nil {
			if ctxRec, ok := domainPricing.ResolveContext(ctxCat, row.Model); ok {
				out.ContextLength = ctxRec.ContextLength
			}
		}

		scored = append(scored, out)
	}

	return scored, nil
}

// fetch runs one provider fetch under its own span.
func (s *Service) fetch(ctx context.Context, source catalog.Source, fetcher ports.FetcherPort) ([]byte, error) {
	ctx, span := s.tracer.StartFetchSpan(ctx, string(source))
	raw, err := fetcher.Fetch(ctx)
	if err != nil {
		span.EndWithError(err)
		return nil, err
	}
	span.SetResponseSize(len(raw))
	span.End()
	return raw, nil
}

// buildContextCatalog produces the context catalog for a rebuild. Returns nil
// when context data is unavailable, leaving the previous context catalog in
// place.
func (s *Service) buildContextCatalog(ctx context.Context, source catalog.Source, raw []byte) *domainPricing.ContextCatalog {
	if source == catalog.SourceOpenRouter {
		return catalog.BuildContext(raw)
	}

	fetcher, ok := s.fetchers[catalog.SourceOpenRouter]
	if !ok {
		return nil
	}

	contextRaw, err := s.fetch(ctx, catalog.SourceOpenRouter, fetcher)
	if err != nil {
		// Pricing can still be swapped in; context lookups keep the old data.
		logging.LogFetchFailed(ctx, s.logger, string(catalog.SourceOpenRouter), err)
		return nil
	}
	return catalog.BuildContext(contextRaw)
}

// persistRefresh records the selected source and the refresh outcome.
// Persistence failures are logged, not returned: the in-memory swap already
// happened and callers can use the new catalog.
func (s *Service) persistRefresh(ctx context.Context, rec ports.RefreshRecord) {
	if s.prefs == nil {
		return
	}
	if err := s.prefs.SetSource(ctx, rec.Source); err != nil {
		s.logger.WarnContext(ctx, "failed to persist source preference", "error", err.Error())
	}
	if err := s.prefs.RecordRefresh(ctx, rec); err != nil {
		s.logger.WarnContext(ctx, "failed to record refresh", "error", err.Error())
	}
}
