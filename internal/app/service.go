// Package service provides the core business service that implements
// the dependencies required by the HTTP API: it owns the widget state
// (dataset, selected domain, search term, oracle flag) and drives the
// load and render paths.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/podiumlab/podium/internal/adapters/repository"
	"github.com/podiumlab/podium/internal/adapters/source"
	"github.com/podiumlab/podium/internal/domain/model"
	"github.com/podiumlab/podium/internal/render"
	"github.com/podiumlab/podium/pkg/logger"
	"github.com/podiumlab/podium/pkg/metrics"
)

// Defaults for the periodic refresh and the search debounce.
const (
	defaultRefreshInterval = 5 * time.Minute
	defaultDebounceDelay   = 300 * time.Millisecond
)

// Service implements the leaderboard widget server-side: a single writer
// path (reload) and reader paths (view, stats) over shared state.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	fetcher  *source.Fetcher
	renderer *render.Renderer

	// Configuration
	primarySource   string
	oracleSource    string
	refreshInterval time.Duration
	debounceDelay   time.Duration

	// Widget state
	schema  model.Schema
	domain  model.Domain
	term    string
	oracle  bool
	loadErr error
	view    render.View

	// Control plumbing
	deb     *Debouncer
	started bool
	stopCh  chan struct{}

	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSources sets the primary CSV location and, optionally, the oracle
// one. A non-empty oracle location enables the oracle toggle and switches
// both files to the shared System/Models schema.
func WithSources(primary, oracle string) Option {
	return func(s *Service) {
		if primary != "" {
			s.primarySource = primary
		}
		s.oracleSource = oracle
	}
}

// WithRefreshInterval sets the periodic reload interval.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.refreshInterval = d
		}
	}
}

// WithDebounceDelay sets the search debounce delay.
func WithDebounceDelay(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.debounceDelay = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithFetcher sets a custom dataset fetcher.
func WithFetcher(f *source.Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithStore sets a custom dataset store.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		primarySource:   "leaderboard.csv",
		refreshInterval: defaultRefreshInterval,
		debounceDelay:   defaultDebounceDelay,
		stopCh:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes components, performs the first load, and begins the
// periodic refresh loop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	if s.fetcher == nil {
		s.fetcher = source.New(source.WithLogger(s.log))
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	s.renderer = render.NewRenderer()
	s.deb = NewDebouncer(s.debounceDelay)

	if s.oracleSource != "" {
		s.schema = model.DualSchema()
	} else {
		s.schema = model.SingleSchema()
	}
	s.domain = s.schema.DefaultDomain()
	s.started = true
	s.mu.Unlock()

	s.log.Info(ctx, "starting leaderboard service",
		logger.String("source", s.primarySource),
		logger.Bool("oracleAvailable", s.oracleSource != ""),
	)

	s.Reload(ctx)
	go s.refreshLoop(ctx)
	return nil
}

// Stop halts the refresh loop and any pending debounced search.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	if s.deb != nil {
		s.deb.Cancel()
	}
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	s.started = false
	s.log.Info(context.Background(), "leaderboard service stopped")
}

// Reload fetches the active source and replaces the dataset wholesale on
// success. On any failure the previous dataset stays in memory untouched
// and the rendered view carries a single error row with the failure text.
func (s *Service) Reload(ctx context.Context) {
	s.mu.RLock()
	loc := s.primarySource
	if s.oracle {
		loc = s.oracleSource
	}
	schema := s.schema
	s.mu.RUnlock()

	rows, err := s.fetcher.Load(ctx, loc, schema)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.loadErr = err
		s.log.Error(ctx, "dataset load failed", logger.String("source", loc), logger.Error(err))
	} else {
		s.loadErr = nil
		s.store.Replace(ctx, rows)
		s.log.Info(ctx, "dataset loaded", logger.String("source", loc), logger.Int("rows", len(rows)))
	}
	s.rerenderLocked(ctx)
}

// rerenderLocked recomputes the cached view. Callers hold s.mu.
func (s *Service) rerenderLocked(ctx context.Context) {
	s.view = s.renderer.Render(s.store.Snapshot(ctx), s.schema, s.domain, s.term, s.oracle, s.loadErr)
}

// View returns the current rendered view.
func (s *Service) View(_ context.Context) render.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetDomain switches the ranking column and re-renders. The stored search
// term persists across domain changes.
func (s *Service) SetDomain(ctx context.Context, label string) (render.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.schema.DomainByLabel(label)
	if !ok {
		return s.view, ErrUnknownDomain
	}
	s.domain = d
	s.rerenderLocked(ctx)
	return s.view, nil
}

// ApplySearch sets the search term immediately and re-renders.
func (s *Service) ApplySearch(ctx context.Context, term string) render.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.term = term
	metrics.RecordSearch()
	s.rerenderLocked(ctx)
	return s.view
}

// QueueSearch schedules a debounced search; a newer keystroke supersedes
// any pending one.
func (s *Service) QueueSearch(term string) {
	s.deb.Schedule(func() {
		s.ApplySearch(context.Background(), term)
	})
}

// ClearSearch drops any pending debounced search and clears the term.
func (s *Service) ClearSearch(ctx context.Context) render.View {
	s.deb.Cancel()
	return s.ApplySearch(ctx, "")
}

// SetOracle flips the data source mode and performs a full reload, not
// just a re-render.
func (s *Service) SetOracle(ctx context.Context, on bool) (render.View, error) {
	s.mu.Lock()
	if s.oracleSource == "" {
		v := s.view
		s.mu.Unlock()
		return v, ErrOracleUnavailable
	}
	if s.oracle == on {
		v := s.view
		s.mu.Unlock()
		return v, nil
	}
	s.oracle = on
	s.mu.Unlock()

	metrics.RecordModeToggle()
	s.Reload(ctx)
	return s.View(ctx), nil
}

// Domains returns the fixed domain list for the active schema.
func (s *Service) Domains() []model.Domain {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schema.Domains
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started": s.started,
		"source":  s.primarySource,
		"oracle":  s.oracle,
		"domain":  s.domain.Label,
		"term":    s.term,
	}
	if s.store != nil {
		stats["rows"] = s.store.Count(ctx)
		if t := s.store.LastLoad(ctx); !t.IsZero() {
			stats["lastLoad"] = t.UTC().Format(time.RFC3339)
		}
	}
	if s.loadErr != nil {
		stats["loadError"] = s.loadErr.Error()
	}
	return stats
}

// refreshLoop re-invokes the loader at the fixed refresh period until the
// context is done or the service stops.
func (s *Service) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			metrics.RecordRefreshRun()
			s.Reload(ctx)
		}
	}
}
