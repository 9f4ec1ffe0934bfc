package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cashboard/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockLedgerStore creates a GormLedgerStore with a mocked SQL connection
func newMockLedgerStore(t *testing.T) (*GormLedgerStore, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormLedgerStore(gormDB), mock, mockDB
}

func entryColumns() []string {
	return []string{
		"id", "tenant_id", "flow", "amount", "due_date", "category_id",
		"description", "installment_parent_id", "is_installment_plan",
		"created_at", "updated_at",
	}
}

func TestGormLedgerStore_QueryEntries(t *testing.T) {
	t.Run("filters by flow, tenant and eligibility", func(t *testing.T) {
		store, mock, mockDB := newMockLedgerStore(t)
		defer mockDB.Close()

		entryID := uuid.New()
		tenantID := uuid.New()
		due := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows(entryColumns()).
			AddRow(entryID, tenantID, "OUTFLOW", decimal.RequireFromString("400.00"), due,
				nil, "office rent", nil, false, time.Now(), time.Now())

		mock.ExpectQuery(`SELECT \* FROM "ledger_entries" WHERE flow = \$1 AND \(\(installment_parent_id IS NOT NULL OR is_installment_plan = false\)\) AND tenant_id = \$2`).
			WithArgs("OUTFLOW", tenantID).
			WillReturnRows(rows)

		entries, err := store.QueryEntries(context.Background(), ledger.FlowOutflow,
			ledger.TenantScope(tenantID), ledger.EntryFilter{})

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, entryID, entries[0].ID)
		assert.Equal(t, ledger.FlowOutflow, entries[0].Flow)
		assert.Equal(t, ledger.KindPayableOccurrence, entries[0].Kind)
		assert.True(t, entries[0].Payable())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies inclusive date range bounds", func(t *testing.T) {
		store, mock, mockDB := newMockLedgerStore(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT \* FROM "ledger_entries" WHERE flow = \$1 AND \(\(installment_parent_id IS NOT NULL OR is_installment_plan = false\)\) AND tenant_id = \$2 AND due_date >= \$3 AND due_date <= \$4`).
			WithArgs("INFLOW", tenantID, from, to).
			WillReturnRows(sqlmock.NewRows(entryColumns()))

		entries, err := store.QueryEntries(context.Background(), ledger.FlowInflow,
			ledger.TenantScope(tenantID), ledger.DueBetweenFilter(from, to))

		require.NoError(t, err)
		assert.Empty(t, entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies strict before bound for opening balance scans", func(t *testing.T) {
		store, mock, mockDB := newMockLedgerStore(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT \* FROM "ledger_entries" WHERE flow = \$1 AND \(\(installment_parent_id IS NOT NULL OR is_installment_plan = false\)\) AND tenant_id = \$2 AND due_date < \$3`).
			WithArgs("INFLOW", tenantID, start).
			WillReturnRows(sqlmock.NewRows(entryColumns()))

		_, err := store.QueryEntries(context.Background(), ledger.FlowInflow,
			ledger.TenantScope(tenantID), ledger.DueBeforeFilter(start))

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wildcard scope skips the tenant predicate", func(t *testing.T) {
		store, mock, mockDB := newMockLedgerStore(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "ledger_entries" WHERE flow = \$1 AND \(\(installment_parent_id IS NOT NULL OR is_installment_plan = false\)\)$`).
			WithArgs("OUTFLOW").
			WillReturnRows(sqlmock.NewRows(entryColumns()))

		_, err := store.QueryEntries(context.Background(), ledger.FlowOutflow,
			ledger.AllTenants(), ledger.EntryFilter{})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("installment children map to payable occurrences", func(t *testing.T) {
		store, mock, mockDB := newMockLedgerStore(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		parentID := uuid.New()
		due := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows(entryColumns()).
			AddRow(uuid.New(), tenantID, "OUTFLOW", decimal.RequireFromString("300.00"), due,
				nil, "installment 2/3", parentID, true, time.Now(), time.Now())

		mock.ExpectQuery(`SELECT \* FROM "ledger_entries"`).
			WithArgs("OUTFLOW", tenantID).
			WillReturnRows(rows)

		entries, err := store.QueryEntries(context.Background(), ledger.FlowOutflow,
			ledger.TenantScope(tenantID), ledger.EntryFilter{})

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].IsInstallment())
		assert.True(t, entries[0].Payable())
		assert.Equal(t, parentID, *entries[0].ParentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates query errors", func(t *testing.T) {
		store, mock, mockDB := newMockLedgerStore(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "ledger_entries"`).
			WillReturnError(sql.ErrConnDone)

		_, err := store.QueryEntries(context.Background(), ledger.FlowInflow,
			ledger.AllTenants(), ledger.EntryFilter{})

		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func TestGormLedgerStore_ListCategories(t *testing.T) {
	t.Run("returns the tenant's categories", func(t *testing.T) {
		store, mock, mockDB := newMockLedgerStore(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		categoryID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "label", "created_at", "updated_at"}).
			AddRow(categoryID, tenantID, "rent", time.Now(), time.Now())

		mock.ExpectQuery(`SELECT \* FROM "categories" WHERE tenant_id = \$1`).
			WithArgs(tenantID).
			WillReturnRows(rows)

		categories, err := store.ListCategories(context.Background(), ledger.TenantScope(tenantID))

		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, "rent", categories[0].Label)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
