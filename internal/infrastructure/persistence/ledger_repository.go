package persistence

import (
	"context"

	"github.com/cashboard/backend/internal/domain/ledger"
	"github.com/cashboard/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLedgerStore implements ledger.Store using GORM.
type GormLedgerStore struct {
	db *gorm.DB
}

// NewGormLedgerStore creates a new GormLedgerStore
func NewGormLedgerStore(db *gorm.DB) *GormLedgerStore {
	return &GormLedgerStore{db: db}
}

// QueryEntries returns eligible entries of one flow matching the scope and
// filter. Eligibility is enforced in SQL: a row participates when it is an
// installment child or a standalone record that is not a plan template.
func (s *GormLedgerStore) QueryEntries(ctx context.Context, flow ledger.Flow, scope ledger.Scope, filter ledger.EntryFilter) ([]ledger.Entry, error) {
	query := s.db.WithContext(ctx).Model(&models.LedgerEntryModel{}).
		Where("flow = ?", flow.String()).
		Where("(installment_parent_id IS NOT NULL OR is_installment_plan = false)")
	query = applyScope(query, scope)

	if filter.DueBefore != nil {
		query = query.Where("due_date < ?", *filter.DueBefore)
	}
	if filter.DueAfter != nil {
		query = query.Where("due_date > ?", *filter.DueAfter)
	}
	if filter.DueFrom != nil {
		query = query.Where("due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("due_date <= ?", *filter.DueTo)
	}

	var entryModels []models.LedgerEntryModel
	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]ledger.Entry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = model.ToDomain()
	}
	return entries, nil
}

// ListCategories returns the category labels visible to the scope.
func (s *GormLedgerStore) ListCategories(ctx context.Context, scope ledger.Scope) ([]ledger.Category, error) {
	query := s.db.WithContext(ctx).Model(&models.CategoryModel{})
	query = applyScope(query, scope)

	var categoryModels []models.CategoryModel
	if err := query.Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	categories := make([]ledger.Category, len(categoryModels))
	for i, model := range categoryModels {
		categories[i] = model.ToDomain()
	}
	return categories, nil
}

// applyScope narrows the query to one tenant unless the privileged wildcard
// scope is in effect.
func applyScope(query *gorm.DB, scope ledger.Scope) *gorm.DB {
	if scope.All {
		return query
	}
	return query.Where("tenant_id = ?", scope.TenantID)
}
