package models

import (
	"time"

	"github.com/cashboard/backend/internal/domain/ledger"
	"github.com/cashboard/backend/internal/domain/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEntryModel is the persistence model for both ledgers. The flow column
// keeps inflows and outflows in one table; the aggregation engine always
// queries a single flow at a time.
type LedgerEntryModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID            uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_tenant_flow_due,priority:1"`
	Flow                string          `gorm:"type:varchar(10);not null;index:idx_ledger_tenant_flow_due,priority:2"`
	Amount              decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DueDate             time.Time       `gorm:"type:date;not null;index:idx_ledger_tenant_flow_due,priority:3"`
	CategoryID          *uuid.UUID      `gorm:"type:uuid;index"`
	Description         string          `gorm:"type:varchar(500)"`
	InstallmentParentID *uuid.UUID      `gorm:"type:uuid;index"`
	IsInstallmentPlan   bool            `gorm:"not null;default:false"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the persistence model to a domain Entry.
func (m *LedgerEntryModel) ToDomain() ledger.Entry {
	kind := ledger.KindPayableOccurrence
	if m.IsInstallmentPlan && m.InstallmentParentID == nil {
		kind = ledger.KindPlanTemplate
	}
	return ledger.Entry{
		ID:          m.ID,
		TenantID:    m.TenantID,
		Flow:        ledger.Flow(m.Flow),
		Amount:      m.Amount,
		DueDate:     ledger.DateOf(m.DueDate),
		CategoryID:  m.CategoryID,
		Description: m.Description,
		ParentID:    m.InstallmentParentID,
		Kind:        kind,
	}
}

// FromDomain populates the persistence model from a domain Entry.
func (m *LedgerEntryModel) FromDomain(e ledger.Entry) {
	m.ID = e.ID
	m.TenantID = e.TenantID
	m.Flow = e.Flow.String()
	m.Amount = e.Amount
	m.DueDate = e.DueDate
	m.CategoryID = e.CategoryID
	m.Description = e.Description
	m.InstallmentParentID = e.ParentID
	m.IsInstallmentPlan = e.Kind == ledger.KindPlanTemplate
}

// CategoryModel is the persistence model for outflow categories.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_category_tenant_label,priority:1"`
	Label     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_category_tenant_label,priority:2"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category.
func (m *CategoryModel) ToDomain() ledger.Category {
	return ledger.Category{
		ID:       m.ID,
		TenantID: m.TenantID,
		Label:    m.Label,
	}
}

// ReportSnapshotModel is the persistence model for recorded balance
// snapshots. Snapshots are append-only; there is no update path.
type ReportSnapshotModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	Scope          string          `gorm:"type:varchar(40);not null;index:idx_snapshot_scope_recorded,priority:1"`
	PeriodStart    time.Time       `gorm:"type:date;not null"`
	PeriodEnd      time.Time       `gorm:"type:date;not null"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PeriodInflows  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PeriodOutflows decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ClosingBalance decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	InflowCount    int             `gorm:"not null;default:0"`
	OutflowCount   int             `gorm:"not null;default:0"`
	RecordedAt     time.Time       `gorm:"not null;index:idx_snapshot_scope_recorded,priority:2"`
	RecordedBy     *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (ReportSnapshotModel) TableName() string {
	return "report_snapshots"
}

// ToDomain converts the persistence model to a domain SnapshotRecord.
func (m *ReportSnapshotModel) ToDomain() report.SnapshotRecord {
	return report.SnapshotRecord{
		ID: m.ID,
		Snapshot: report.Snapshot{
			Scope: m.Scope,
			Period: ledger.Window{
				Start: ledger.DateOf(m.PeriodStart),
				End:   ledger.DateOf(m.PeriodEnd),
			},
			OpeningBalance: m.OpeningBalance,
			PeriodInflows:  m.PeriodInflows,
			PeriodOutflows: m.PeriodOutflows,
			ClosingBalance: m.ClosingBalance,
			EntryCounts: report.EntryCounts{
				Inflows:  m.InflowCount,
				Outflows: m.OutflowCount,
			},
		},
		RecordedAt: m.RecordedAt,
		RecordedBy: m.RecordedBy,
	}
}

// FromSnapshot populates the persistence model from a recorder payload.
func (m *ReportSnapshotModel) FromSnapshot(s report.Snapshot) {
	m.Scope = s.Scope
	m.PeriodStart = s.Period.Start
	m.PeriodEnd = s.Period.End
	m.OpeningBalance = s.OpeningBalance
	m.PeriodInflows = s.PeriodInflows
	m.PeriodOutflows = s.PeriodOutflows
	m.ClosingBalance = s.ClosingBalance
	m.InflowCount = s.EntryCounts.Inflows
	m.OutflowCount = s.EntryCounts.Outflows
}
