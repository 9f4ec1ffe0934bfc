package dashboard

import (
	"context"
	"testing"

	"github.com/cashboard/backend/internal/domain/ledger"
	"github.com/cashboard/backend/internal/domain/report"
	"github.com/cashboard/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memCache struct {
	results map[string]*report.Dashboard
}

func newMemCache() *memCache {
	return &memCache{results: make(map[string]*report.Dashboard)}
}

func (c *memCache) GetDashboard(_ context.Context, key string) (*report.Dashboard, bool) {
	d, ok := c.results[key]
	return d, ok
}

func (c *memCache) SetDashboard(_ context.Context, key string, d *report.Dashboard) {
	c.results[key] = d
}

func TestService_Build(t *testing.T) {
	tenantID := uuid.New()
	scope := ledger.TenantScope(tenantID)
	today := date(2024, 3, 15)

	seed := func() *memStore {
		return &memStore{entries: []ledger.Entry{
			entry(t, tenantID, ledger.FlowInflow, "2000.00", date(2024, 1, 10)),
			entry(t, tenantID, ledger.FlowOutflow, "500.00", date(2024, 2, 20)),
			entry(t, tenantID, ledger.FlowInflow, "750.00", date(2024, 3, 5)),
		}}
	}

	t.Run("assembles every section", func(t *testing.T) {
		service := NewService(seed(), nil, DefaultConfig(), zap.NewNop())

		result, err := service.Build(context.Background(), scope, ledger.SelectPreset(ledger.PresetLast6Months), today)
		require.NoError(t, err)

		assert.Equal(t, tenantID.String(), result.Scope)
		assert.Equal(t, date(2023, 9, 15), result.Period.Start)
		assert.Equal(t, date(2024, 3, 31), result.Period.End)

		assertAmount(t, "2250", result.Balance.ClosingBalance)
		assert.True(t, result.Balance.OpeningBalance.Add(result.Balance.PeriodNet).Equal(result.Balance.ClosingBalance))
		assert.Equal(t, 2, result.EntryCounts.Inflows)
		assert.Equal(t, 1, result.EntryCounts.Outflows)

		require.Len(t, result.MonthlySeries, DefaultConfig().TrailingMonths)
		assert.Len(t, result.CategoryBreakdown, 1)
	})

	t.Run("identical inputs produce identical dashboards", func(t *testing.T) {
		service := NewService(seed(), nil, DefaultConfig(), zap.NewNop())
		selector := ledger.SelectExplicit(date(2024, 1, 1), date(2024, 3, 31))

		first, err := service.Build(context.Background(), scope, selector, today)
		require.NoError(t, err)
		second, err := service.Build(context.Background(), scope, selector, today)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("cache serves repeat requests without touching the store", func(t *testing.T) {
		store := seed()
		service := NewService(store, newMemCache(), DefaultConfig(), zap.NewNop())
		selector := ledger.SelectPreset(ledger.PresetLast3Months)

		first, err := service.Build(context.Background(), scope, selector, today)
		require.NoError(t, err)
		queriesAfterFirst := store.queryCount()

		second, err := service.Build(context.Background(), scope, selector, today)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, queriesAfterFirst, store.queryCount())
	})

	t.Run("cache keys separate scopes and days", func(t *testing.T) {
		store := seed()
		cache := newMemCache()
		service := NewService(store, cache, DefaultConfig(), zap.NewNop())
		selector := ledger.SelectPreset(ledger.PresetLast3Months)

		_, err := service.Build(context.Background(), scope, selector, today)
		require.NoError(t, err)
		_, err = service.Build(context.Background(), scope, selector, today.AddDate(0, 0, 1))
		require.NoError(t, err)
		_, err = service.Build(context.Background(), ledger.TenantScope(uuid.New()), selector, today)
		require.NoError(t, err)

		assert.Len(t, cache.results, 3)
	})

	t.Run("invalid explicit range is rejected before any query", func(t *testing.T) {
		store := seed()
		service := NewService(store, nil, DefaultConfig(), zap.NewNop())

		_, err := service.Build(context.Background(), scope, ledger.SelectExplicit(date(2024, 3, 1), date(2024, 1, 1)), today)

		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "INVALID_PERIOD"))
		assert.Zero(t, store.queryCount())
	})

	t.Run("store failure propagates with its code", func(t *testing.T) {
		service := NewService(&memStore{err: assert.AnError}, nil, DefaultConfig(), zap.NewNop())

		_, err := service.Build(context.Background(), scope, ledger.SelectPreset(ledger.PresetLast6Months), today)

		require.Error(t, err)
		assert.True(t, shared.IsCode(err, ledger.CodeStoreUnavailable))
	})

	t.Run("all-tenants scope aggregates across tenants", func(t *testing.T) {
		store := seed()
		store.entries = append(store.entries,
			entry(t, uuid.New(), ledger.FlowInflow, "1000.00", date(2024, 3, 1)))
		service := NewService(store, nil, DefaultConfig(), zap.NewNop())

		result, err := service.Build(context.Background(), ledger.AllTenants(), ledger.SelectPreset(ledger.PresetLast6Months), today)
		require.NoError(t, err)

		assert.Equal(t, "all", result.Scope)
		assertAmount(t, "3250", result.Balance.ClosingBalance)
	})
}

func TestService_BuildSnapshot(t *testing.T) {
	tenantID := uuid.New()
	scope := ledger.TenantScope(tenantID)
	today := date(2024, 3, 15)

	store := &memStore{entries: []ledger.Entry{
		entry(t, tenantID, ledger.FlowInflow, "900.00", date(2024, 3, 1)),
		entry(t, tenantID, ledger.FlowOutflow, "150.00", date(2024, 3, 10)),
	}}
	service := NewService(store, nil, DefaultConfig(), zap.NewNop())

	snapshot, err := service.BuildSnapshot(context.Background(), scope, ledger.SelectPreset(ledger.PresetLast6Months), today)
	require.NoError(t, err)

	assert.Equal(t, tenantID.String(), snapshot.Scope)
	assert.True(t, snapshot.OpeningBalance.IsZero())
	assertAmount(t, "900", snapshot.PeriodInflows)
	assertAmount(t, "150", snapshot.PeriodOutflows)
	assertAmount(t, "750", snapshot.ClosingBalance)
	assert.Equal(t, 1, snapshot.EntryCounts.Inflows)
	assert.Equal(t, 1, snapshot.EntryCounts.Outflows)
}
