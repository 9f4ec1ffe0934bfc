package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cashboard/backend/internal/domain/ledger"
	"github.com/cashboard/backend/internal/domain/report"
	"go.uber.org/zap"
)

// ResultCache caches assembled dashboards keyed by scope, selector, and
// reference date. Only complete results are ever cached: the engine always
// recomputes balances from scratch on a miss, so the additivity guarantee is
// never served from a stale partial state.
type ResultCache interface {
	GetDashboard(ctx context.Context, key string) (*report.Dashboard, bool)
	SetDashboard(ctx context.Context, key string, d *report.Dashboard)
}

// Config holds dashboard assembly tuning
type Config struct {
	TrailingMonths int // chart window, default 6
	TopCategories  int // category breakdown size, default 8
}

// DefaultConfig returns the reference dashboard configuration
func DefaultConfig() Config {
	return Config{
		TrailingMonths: 6,
		TopCategories:  8,
	}
}

// Service orchestrates the aggregation engine: it resolves the period,
// fans the independent read-only scans out concurrently, and assembles the
// dashboard result and recorder snapshot payload.
type Service struct {
	balance     *BalanceService
	series      *TimeSeriesService
	categories  *CategoryService
	projections *ProjectionService
	cache       ResultCache
	cfg         Config
	logger      *zap.Logger
}

// NewService creates a new dashboard Service. cache may be nil to disable
// result caching.
func NewService(store ledger.Store, cache ResultCache, cfg Config, logger *zap.Logger) *Service {
	if cfg.TrailingMonths <= 0 {
		cfg.TrailingMonths = DefaultConfig().TrailingMonths
	}
	if cfg.TopCategories <= 0 {
		cfg.TopCategories = DefaultConfig().TopCategories
	}
	return &Service{
		balance:     NewBalanceService(store, logger),
		series:      NewTimeSeriesService(store, logger),
		categories:  NewCategoryService(store, logger),
		projections: NewProjectionService(store, logger),
		cache:       cache,
		cfg:         cfg,
		logger:      logger.Named("dashboard"),
	}
}

// Build computes the full aggregation result for the scope and period
// selector, anchored to today. Identical inputs always produce an identical
// dashboard.
func (s *Service) Build(ctx context.Context, scope ledger.Scope, selector ledger.Selector, today time.Time) (*report.Dashboard, error) {
	today = ledger.DateOf(today)

	window, err := ledger.ResolvePeriod(selector, today)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("%s|%s|%s", scope, selector, today.Format("2006-01-02"))
	if s.cache != nil {
		if cached, ok := s.cache.GetDashboard(ctx, cacheKey); ok {
			return cached, nil
		}
	}

	// The three scans are read-only and mutually independent.
	var (
		wg      sync.WaitGroup
		summary *report.BalanceSummary
		counts  *report.EntryCounts
		buckets []report.MonthBucket
		ranked  []report.CategoryTotal
		balErr  error
		serErr  error
		catErr  error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		summary, counts, balErr = s.balance.Aggregate(ctx, scope, window)
	}()
	go func() {
		defer wg.Done()
		buckets, serErr = s.series.MonthlySeries(ctx, scope, s.cfg.TrailingMonths, today)
	}()
	go func() {
		defer wg.Done()
		ranked, catErr = s.categories.TopCategories(ctx, scope, window, s.cfg.TopCategories)
	}()
	wg.Wait()

	for _, err := range []error{balErr, serErr, catErr} {
		if err != nil {
			return nil, err
		}
	}

	result := &report.Dashboard{
		Scope:             scope.String(),
		Period:            window,
		Balance:           *summary,
		MonthlySeries:     buckets,
		CategoryBreakdown: ranked,
		EntryCounts:       *counts,
	}

	if s.cache != nil {
		s.cache.SetDashboard(ctx, cacheKey, result)
	}

	s.logger.Info("Dashboard assembled",
		zap.String("scope", scope.String()),
		zap.Time("period_start", window.Start),
		zap.Time("period_end", window.End),
		zap.Int("months", len(buckets)),
		zap.Int("categories", len(ranked)),
	)

	return result, nil
}

// Project computes the forward-payment projection for the scope as of today.
func (s *Service) Project(ctx context.Context, scope ledger.Scope, today time.Time) (*report.Projection, error) {
	return s.projections.Project(ctx, scope, today)
}

// BuildSnapshot produces the payload the report recorder persists. The
// engine fills the figures only; recorder identity and timestamp are added
// by the persistence side.
func (s *Service) BuildSnapshot(ctx context.Context, scope ledger.Scope, selector ledger.Selector, today time.Time) (*report.Snapshot, error) {
	dashboard, err := s.Build(ctx, scope, selector, today)
	if err != nil {
		return nil, err
	}
	snapshot := report.SnapshotFromDashboard(dashboard)
	return &snapshot, nil
}
