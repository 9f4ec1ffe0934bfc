package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/cashboard/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTimeSeriesService_MonthlySeries(t *testing.T) {
	tenantID := uuid.New()
	scope := ledger.TenantScope(tenantID)

	t.Run("emits exactly the trailing months with zero fill", func(t *testing.T) {
		store := &memStore{entries: []ledger.Entry{
			entry(t, tenantID, ledger.FlowInflow, "500.00", date(2023, 11, 12)),
			entry(t, tenantID, ledger.FlowOutflow, "120.00", date(2024, 2, 3)),
		}}
		service := NewTimeSeriesService(store, zap.NewNop())

		series, err := service.MonthlySeries(context.Background(), scope, 6, date(2024, 3, 15))
		require.NoError(t, err)
		require.Len(t, series, 6)

		// Oldest first, consecutive, no gaps.
		assert.Equal(t, 2023, series[0].Year)
		assert.Equal(t, time.October, series[0].Month)
		assert.Equal(t, 2024, series[5].Year)
		assert.Equal(t, time.March, series[5].Month)
		for i := 1; i < len(series); i++ {
			prev := time.Date(series[i-1].Year, series[i-1].Month, 1, 0, 0, 0, 0, time.UTC)
			curr := time.Date(series[i].Year, series[i].Month, 1, 0, 0, 0, 0, time.UTC)
			assert.Equal(t, prev.AddDate(0, 1, 0), curr)
		}

		assertAmount(t, "500", series[1].Inflows) // November 2023
		assert.True(t, series[1].Outflows.IsZero())
		assertAmount(t, "500", series[1].Net)

		assertAmount(t, "120", series[4].Outflows) // February 2024
		assertAmount(t, "-120", series[4].Net)

		for _, i := range []int{0, 2, 3, 5} {
			assert.True(t, series[i].Inflows.IsZero(), "month %d", i)
			assert.True(t, series[i].Outflows.IsZero(), "month %d", i)
		}
	})

	t.Run("activity outside the trailing window is ignored", func(t *testing.T) {
		store := &memStore{entries: []ledger.Entry{
			entry(t, tenantID, ledger.FlowInflow, "10.00", date(2023, 9, 30)),
			entry(t, tenantID, ledger.FlowInflow, "20.00", date(2023, 10, 1)),
			entry(t, tenantID, ledger.FlowInflow, "30.00", date(2024, 3, 31)),
			entry(t, tenantID, ledger.FlowInflow, "40.00", date(2024, 4, 1)),
		}}
		service := NewTimeSeriesService(store, zap.NewNop())

		series, err := service.MonthlySeries(context.Background(), scope, 6, date(2024, 3, 15))
		require.NoError(t, err)
		require.Len(t, series, 6)

		assertAmount(t, "20", series[0].Inflows)
		assertAmount(t, "30", series[5].Inflows)

		total := series[0].Inflows
		for _, b := range series[1:] {
			total = total.Add(b.Inflows)
		}
		assertAmount(t, "50", total)
	})

	t.Run("plan templates do not distort monthly totals", func(t *testing.T) {
		parent := template(t, tenantID, ledger.FlowOutflow, "300.00", date(2024, 3, 1))
		store := &memStore{entries: []ledger.Entry{
			parent,
			installment(t, tenantID, ledger.FlowOutflow, "150.00", date(2024, 3, 1), parent.ID),
			installment(t, tenantID, ledger.FlowOutflow, "150.00", date(2024, 3, 20), parent.ID),
		}}
		service := NewTimeSeriesService(store, zap.NewNop())

		series, err := service.MonthlySeries(context.Background(), scope, 1, date(2024, 3, 15))
		require.NoError(t, err)
		require.Len(t, series, 1)
		assertAmount(t, "300", series[0].Outflows)
	})

	t.Run("non-positive trailing months falls back to one bucket", func(t *testing.T) {
		store := &memStore{}
		service := NewTimeSeriesService(store, zap.NewNop())

		series, err := service.MonthlySeries(context.Background(), scope, 0, date(2024, 3, 15))
		require.NoError(t, err)
		require.Len(t, series, 1)
		assert.Equal(t, time.March, series[0].Month)
	})
}
