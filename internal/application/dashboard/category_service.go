package dashboard

import (
	"context"
	"sort"

	"github.com/cashboard/backend/internal/domain/ledger"
	"github.com/cashboard/backend/internal/domain/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CategoryService ranks outflow spending by category for the selected
// period. Category labels and ledger entries are fetched independently and
// joined in memory so each stage stays independently testable.
type CategoryService struct {
	store  ledger.Store
	logger *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(store ledger.Store, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		store:  store,
		logger: logger.Named("category"),
	}
}

// TopCategories fetches the window's outflows and returns the top ranked
// category totals.
func (s *CategoryService) TopCategories(ctx context.Context, scope ledger.Scope, window ledger.Window, limit int) ([]report.CategoryTotal, error) {
	entries, err := s.store.QueryEntries(ctx, ledger.FlowOutflow, scope, ledger.DueBetweenFilter(window.Start, window.End))
	if err != nil {
		return nil, ledger.StoreUnavailable(err)
	}

	categories, err := s.store.ListCategories(ctx, scope)
	if err != nil {
		return nil, ledger.StoreUnavailable(err)
	}

	return RankCategories(ledger.Payables(entries), ledger.LabelIndex(categories), limit), nil
}

// RankCategories groups outflow entries by category label, ranks by total
// descending with ties broken by label ascending, and truncates to limit.
//
// Entries without a category land in the "uncategorized" bucket, which ranks
// like any other. A category_id with no known label is a data-hygiene issue
// in a single entry and must not sink the whole aggregation; those entries
// group under a placeholder label instead.
func RankCategories(entries []ledger.Entry, labels map[uuid.UUID]string, limit int) []report.CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range entries {
		label := ledger.UncategorizedLabel
		if e.CategoryID != nil {
			if l, ok := labels[*e.CategoryID]; ok {
				label = l
			} else {
				label = ledger.UnknownCategoryLabel
			}
		}
		totals[label] = totals[label].Add(e.Amount)
	}

	ranked := make([]report.CategoryTotal, 0, len(totals))
	for label, total := range totals {
		ranked = append(ranked, report.CategoryTotal{Category: label, Total: total})
	}

	sort.Slice(ranked, func(i, j int) bool {
		cmp := ranked[i].Total.Cmp(ranked[j].Total)
		if cmp != 0 {
			return cmp > 0
		}
		return ranked[i].Category < ranked[j].Category
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
