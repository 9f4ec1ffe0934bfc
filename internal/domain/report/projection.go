package report

import (
	"time"

	"github.com/cashboard/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// HorizonBucket is the sum, count, and item list of not-yet-due entries
// inside one forward horizon. Items are ordered by due date ascending so the
// caller can show exactly which entries produced the total.
type HorizonBucket struct {
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
	Items []ledger.Entry  `json:"items"`
}

// FlowProjection covers the four horizons of a single ledger. Each horizon
// is self-contained: the 90-day bucket is not "60-day plus a delta".
type FlowProjection struct {
	Next30Days HorizonBucket `json:"next_30_days"`
	Next60Days HorizonBucket `json:"next_60_days"`
	Next90Days HorizonBucket `json:"next_90_days"`
	Unbounded  HorizonBucket `json:"unbounded"`
}

// Projection is the forward-payment view as of a reference date. Only
// entries with due_date strictly after AsOf participate; an entry due on
// AsOf itself belongs to "due today" views, not to projections.
type Projection struct {
	Scope    string         `json:"scope"`
	AsOf     time.Time      `json:"as_of"`
	Inflows  FlowProjection `json:"inflows"`
	Outflows FlowProjection `json:"outflows"`
}
