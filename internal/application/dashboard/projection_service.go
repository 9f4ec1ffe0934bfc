package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/cashboard/backend/internal/domain/ledger"
	"github.com/cashboard/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProjectionService computes forward-looking sums of not-yet-due entries
// bucketed into 30/60/90-day and unbounded horizons. It is anchored to an
// injected "today" and independent of any selected period window.
type ProjectionService struct {
	store  ledger.Store
	logger *zap.Logger
}

// NewProjectionService creates a new ProjectionService
func NewProjectionService(store ledger.Store, logger *zap.Logger) *ProjectionService {
	return &ProjectionService{
		store:  store,
		logger: logger.Named("projection"),
	}
}

// Project returns the projection for both ledgers across all horizons.
//
// "Not yet due" is strictly due_date > today. An entry due exactly today
// appears in "due today" views elsewhere; counting it here as well would
// double-count it.
func (s *ProjectionService) Project(ctx context.Context, scope ledger.Scope, today time.Time) (*report.Projection, error) {
	today = ledger.DateOf(today)

	inflows, err := s.flowProjection(ctx, ledger.FlowInflow, scope, today)
	if err != nil {
		return nil, err
	}
	outflows, err := s.flowProjection(ctx, ledger.FlowOutflow, scope, today)
	if err != nil {
		return nil, err
	}

	return &report.Projection{
		Scope:    scope.String(),
		AsOf:     today,
		Inflows:  *inflows,
		Outflows: *outflows,
	}, nil
}

func (s *ProjectionService) flowProjection(ctx context.Context, flow ledger.Flow, scope ledger.Scope, today time.Time) (*report.FlowProjection, error) {
	entries, err := s.store.QueryEntries(ctx, flow, scope, ledger.DueAfterFilter(today))
	if err != nil {
		return nil, ledger.StoreUnavailable(err)
	}

	future := ledger.Payables(entries)
	sort.Slice(future, func(i, j int) bool {
		return future[i].DueDate.Before(future[j].DueDate)
	})

	// Each horizon is bucketed independently from the full future set so its
	// item list is self-contained and directly auditable.
	return &report.FlowProjection{
		Next30Days: horizonBucket(future, today, 30),
		Next60Days: horizonBucket(future, today, 60),
		Next90Days: horizonBucket(future, today, 90),
		Unbounded:  horizonBucket(future, today, 0),
	}, nil
}

// horizonBucket sums entries with today < due_date < today + days. The
// day-N cutoff itself is outside the horizon. A zero days value means the
// unbounded horizon. Entries are assumed strictly future and sorted by due
// date.
func horizonBucket(future []ledger.Entry, today time.Time, days int) report.HorizonBucket {
	var cutoff time.Time
	if days > 0 {
		cutoff = today.AddDate(0, 0, days)
	}

	items := make([]ledger.Entry, 0, len(future))
	total := decimal.Zero
	for _, e := range future {
		if days > 0 && !e.DueDate.Before(cutoff) {
			// Sorted input: everything at or past the cutoff stays there.
			break
		}
		items = append(items, e)
		total = total.Add(e.Amount)
	}

	return report.HorizonBucket{
		Total: total,
		Count: len(items),
		Items: items,
	}
}
