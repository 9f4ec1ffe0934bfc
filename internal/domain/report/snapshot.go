package report

import (
	"time"

	"github.com/cashboard/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot is the immutable payload handed to the report recorder. The
// engine fills the figures; the recorder adds caller identity and timestamp
// at persistence time.
type Snapshot struct {
	Scope          string          `json:"scope"`
	Period         ledger.Window   `json:"period"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	PeriodInflows  decimal.Decimal `json:"period_inflows"`
	PeriodOutflows decimal.Decimal `json:"period_outflows"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	EntryCounts    EntryCounts     `json:"entry_counts"`
}

// SnapshotRecord is a persisted snapshot with recorder identity attached.
type SnapshotRecord struct {
	ID         uuid.UUID  `json:"id"`
	Snapshot   Snapshot   `json:"snapshot"`
	RecordedAt time.Time  `json:"recorded_at"`
	RecordedBy *uuid.UUID `json:"recorded_by,omitempty"`
}

// SnapshotFromDashboard derives the recorder payload from an assembled
// aggregation result.
func SnapshotFromDashboard(d *Dashboard) Snapshot {
	return Snapshot{
		Scope:          d.Scope,
		Period:         d.Period,
		OpeningBalance: d.Balance.OpeningBalance,
		PeriodInflows:  d.Balance.PeriodInflows,
		PeriodOutflows: d.Balance.PeriodOutflows,
		ClosingBalance: d.Balance.ClosingBalance,
		EntryCounts:    d.EntryCounts,
	}
}
