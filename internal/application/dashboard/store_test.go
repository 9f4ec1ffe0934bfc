package dashboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cashboard/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory ledger.Store for service tests. It applies scope
// and date filters like a real backend but deliberately does not apply the
// leaf-eligibility rule, so tests can prove the services exclude plan
// templates on their own.
type memStore struct {
	mu         sync.Mutex
	entries    []ledger.Entry
	categories []ledger.Category
	err        error
	queries    int
}

func (m *memStore) QueryEntries(_ context.Context, flow ledger.Flow, scope ledger.Scope, filter ledger.EntryFilter) ([]ledger.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries++

	if m.err != nil {
		return nil, m.err
	}

	var out []ledger.Entry
	for _, e := range m.entries {
		if e.Flow != flow {
			continue
		}
		if !scope.All && e.TenantID != scope.TenantID {
			continue
		}
		if filter.DueBefore != nil && !e.DueDate.Before(*filter.DueBefore) {
			continue
		}
		if filter.DueAfter != nil && !e.DueDate.After(*filter.DueAfter) {
			continue
		}
		if filter.DueFrom != nil && e.DueDate.Before(*filter.DueFrom) {
			continue
		}
		if filter.DueTo != nil && e.DueDate.After(*filter.DueTo) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *memStore) ListCategories(_ context.Context, scope ledger.Scope) ([]ledger.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries++

	if m.err != nil {
		return nil, m.err
	}

	var out []ledger.Category
	for _, c := range m.categories {
		if !scope.All && c.TenantID != scope.TenantID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *memStore) queryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries
}

// assertAmount compares decimals by value; scale differences like 600 vs
// 600.00 are not failures.
func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, requireDecimal(t, want).Equal(got), "want %s, got %s", want, got)
}

func requireDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func entry(t *testing.T, tenantID uuid.UUID, flow ledger.Flow, amount string, due time.Time) ledger.Entry {
	t.Helper()
	e, err := ledger.NewEntry(tenantID, flow, requireDecimal(t, amount), due)
	require.NoError(t, err)
	return *e
}

func template(t *testing.T, tenantID uuid.UUID, flow ledger.Flow, amount string, due time.Time) ledger.Entry {
	t.Helper()
	e, err := ledger.NewPlanTemplate(tenantID, flow, requireDecimal(t, amount), due)
	require.NoError(t, err)
	return *e
}

func installment(t *testing.T, tenantID uuid.UUID, flow ledger.Flow, amount string, due time.Time, parentID uuid.UUID) ledger.Entry {
	t.Helper()
	e, err := ledger.NewInstallment(tenantID, flow, requireDecimal(t, amount), due, parentID)
	require.NoError(t, err)
	return *e
}
