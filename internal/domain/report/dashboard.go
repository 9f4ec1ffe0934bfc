package report

import (
	"time"

	"github.com/cashboard/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// BalanceSummary is the running-balance read model for a resolved period.
// The accounting identity opening + inflows - outflows = closing holds
// exactly; all arithmetic is fixed-point decimal.
type BalanceSummary struct {
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	PeriodInflows  decimal.Decimal `json:"period_inflows"`
	PeriodOutflows decimal.Decimal `json:"period_outflows"`
	PeriodNet      decimal.Decimal `json:"period_net"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// MonthBucket is one calendar-month point of the chart time series.
type MonthBucket struct {
	Year     int             `json:"year"`
	Month    time.Month      `json:"month"`
	Inflows  decimal.Decimal `json:"inflows"`
	Outflows decimal.Decimal `json:"outflows"`
	Net      decimal.Decimal `json:"net"`
}

// CategoryTotal is one ranked row of the outflow category breakdown.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// EntryCounts carries how many eligible entries produced the period totals.
type EntryCounts struct {
	Inflows  int `json:"inflows"`
	Outflows int `json:"outflows"`
}

// Dashboard is the assembled aggregation result for one request. It is
// reconstructed on every call and never persisted by the engine itself.
type Dashboard struct {
	Scope             string          `json:"scope"`
	Period            ledger.Window   `json:"period"`
	Balance           BalanceSummary  `json:"balance"`
	MonthlySeries     []MonthBucket   `json:"monthly_series"`
	CategoryBreakdown []CategoryTotal `json:"category_breakdown"`
	EntryCounts       EntryCounts     `json:"entry_counts"`
}
