package persistence

import (
	"context"
	"time"

	"github.com/cashboard/backend/internal/domain/report"
	"github.com/cashboard/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSnapshotRepository persists recorded balance snapshots.
type GormSnapshotRepository struct {
	db *gorm.DB
}

// NewGormSnapshotRepository creates a new GormSnapshotRepository
func NewGormSnapshotRepository(db *gorm.DB) *GormSnapshotRepository {
	return &GormSnapshotRepository{db: db}
}

// Save records a snapshot, stamping identity and time at persistence. The
// returned record is the stored row.
func (r *GormSnapshotRepository) Save(ctx context.Context, snapshot report.Snapshot, recordedBy *uuid.UUID) (*report.SnapshotRecord, error) {
	model := &models.ReportSnapshotModel{
		ID:         uuid.New(),
		RecordedAt: time.Now().UTC(),
		RecordedBy: recordedBy,
	}
	model.FromSnapshot(snapshot)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	record := model.ToDomain()
	return &record, nil
}

// ListForScope returns the most recent snapshots for a scope, newest first.
func (r *GormSnapshotRepository) ListForScope(ctx context.Context, scope string, limit int) ([]report.SnapshotRecord, error) {
	query := r.db.WithContext(ctx).Model(&models.ReportSnapshotModel{}).
		Where("scope = ?", scope).
		Order("recorded_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var snapshotModels []models.ReportSnapshotModel
	if err := query.Find(&snapshotModels).Error; err != nil {
		return nil, err
	}

	records := make([]report.SnapshotRecord, len(snapshotModels))
	for i, model := range snapshotModels {
		records[i] = model.ToDomain()
	}
	return records, nil
}
