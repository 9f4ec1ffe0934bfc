package dashboard

import (
	"context"
	"time"

	"github.com/cashboard/backend/internal/domain/ledger"
	"github.com/cashboard/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TimeSeriesService buckets ledger activity into trailing calendar months
// for the dashboard chart. The trailing window is fixed by configuration and
// deliberately independent of the user-selected period: one window drives
// balances, the other always drives the chart.
type TimeSeriesService struct {
	store  ledger.Store
	logger *zap.Logger
}

// NewTimeSeriesService creates a new TimeSeriesService
func NewTimeSeriesService(store ledger.Store, logger *zap.Logger) *TimeSeriesService {
	return &TimeSeriesService{
		store:  store,
		logger: logger.Named("timeseries"),
	}
}

// MonthlySeries returns exactly trailingMonths consecutive month buckets
// ending at the month containing referenceMonth, oldest first. Months with
// no activity are emitted with zero totals; the chart never has gaps.
func (s *TimeSeriesService) MonthlySeries(ctx context.Context, scope ledger.Scope, trailingMonths int, referenceMonth time.Time) ([]report.MonthBucket, error) {
	if trailingMonths <= 0 {
		trailingMonths = 1
	}

	ref := ledger.DateOf(referenceMonth)
	firstMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(trailingMonths - 1), 0)
	lastDay := time.Date(ref.Year(), ref.Month()+1, 0, 0, 0, 0, 0, time.UTC)

	filter := ledger.DueBetweenFilter(firstMonth, lastDay)

	inflows, err := s.store.QueryEntries(ctx, ledger.FlowInflow, scope, filter)
	if err != nil {
		return nil, ledger.StoreUnavailable(err)
	}
	outflows, err := s.store.QueryEntries(ctx, ledger.FlowOutflow, scope, filter)
	if err != nil {
		return nil, ledger.StoreUnavailable(err)
	}

	type key struct {
		year  int
		month time.Month
	}
	inflowTotals := make(map[key]decimal.Decimal)
	outflowTotals := make(map[key]decimal.Decimal)

	for _, e := range ledger.Payables(inflows) {
		k := key{e.DueDate.Year(), e.DueDate.Month()}
		inflowTotals[k] = inflowTotals[k].Add(e.Amount)
	}
	for _, e := range ledger.Payables(outflows) {
		k := key{e.DueDate.Year(), e.DueDate.Month()}
		outflowTotals[k] = outflowTotals[k].Add(e.Amount)
	}

	series := make([]report.MonthBucket, 0, trailingMonths)
	for i := 0; i < trailingMonths; i++ {
		month := firstMonth.AddDate(0, i, 0)
		k := key{month.Year(), month.Month()}
		in := inflowTotals[k]
		out := outflowTotals[k]
		series = append(series, report.MonthBucket{
			Year:     k.year,
			Month:    k.month,
			Inflows:  in,
			Outflows: out,
			Net:      in.Sub(out),
		})
	}

	return series, nil
}
