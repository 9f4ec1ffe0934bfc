package ledger

import (
	"time"

	"github.com/cashboard/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Flow identifies which of the two append-only ledgers an entry belongs to.
type Flow string

const (
	FlowInflow  Flow = "INFLOW"
	FlowOutflow Flow = "OUTFLOW"
)

// IsValid checks if the flow is a valid Flow
func (f Flow) IsValid() bool {
	return f == FlowInflow || f == FlowOutflow
}

// String returns the string representation of Flow
func (f Flow) String() string {
	return string(f)
}

// EntryKind distinguishes the two variants of a ledger record.
//
// A PayableOccurrence is a concrete dated obligation: either a standalone
// entry or one child installment of a parceled charge. A PlanTemplate is the
// abstract multi-installment charge itself; it only groups its children and
// never participates in balance or projection arithmetic. Keeping the
// distinction on the type means every aggregation applies the same exclusion
// rule instead of re-deriving it per query.
type EntryKind string

const (
	KindPayableOccurrence EntryKind = "PAYABLE_OCCURRENCE"
	KindPlanTemplate      EntryKind = "PLAN_TEMPLATE"
)

// IsValid checks if the kind is a valid EntryKind
func (k EntryKind) IsValid() bool {
	return k == KindPayableOccurrence || k == KindPlanTemplate
}

// Entry is a single dated, monetary, tenant-scoped ledger record.
type Entry struct {
	ID          uuid.UUID       `json:"id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	Flow        Flow            `json:"flow"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"due_date"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Description string          `json:"description"`
	ParentID    *uuid.UUID      `json:"installment_parent_id,omitempty"`
	Kind        EntryKind       `json:"kind"`
}

// NewEntry creates a standalone payable occurrence.
func NewEntry(tenantID uuid.UUID, flow Flow, amount decimal.Decimal, dueDate time.Time) (*Entry, error) {
	if err := validateEntry(tenantID, flow, amount); err != nil {
		return nil, err
	}
	return &Entry{
		ID:       uuid.New(),
		TenantID: tenantID,
		Flow:     flow,
		Amount:   amount,
		DueDate:  DateOf(dueDate),
		Kind:     KindPayableOccurrence,
	}, nil
}

// NewInstallment creates one concrete installment of a parceled charge.
func NewInstallment(tenantID uuid.UUID, flow Flow, amount decimal.Decimal, dueDate time.Time, parentID uuid.UUID) (*Entry, error) {
	if err := validateEntry(tenantID, flow, amount); err != nil {
		return nil, err
	}
	if parentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Installment parent ID cannot be empty")
	}
	return &Entry{
		ID:       uuid.New(),
		TenantID: tenantID,
		Flow:     flow,
		Amount:   amount,
		DueDate:  DateOf(dueDate),
		ParentID: &parentID,
		Kind:     KindPayableOccurrence,
	}, nil
}

// NewPlanTemplate creates the template record of a multi-installment charge.
// Template records group their children and carry no payable amount of their
// own for aggregation purposes.
func NewPlanTemplate(tenantID uuid.UUID, flow Flow, amount decimal.Decimal, dueDate time.Time) (*Entry, error) {
	if err := validateEntry(tenantID, flow, amount); err != nil {
		return nil, err
	}
	return &Entry{
		ID:       uuid.New(),
		TenantID: tenantID,
		Flow:     flow,
		Amount:   amount,
		DueDate:  DateOf(dueDate),
		Kind:     KindPlanTemplate,
	}, nil
}

func validateEntry(tenantID uuid.UUID, flow Flow, amount decimal.Decimal) error {
	if tenantID == uuid.Nil {
		return shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if !flow.IsValid() {
		return shared.NewDomainError("INVALID_FLOW", "Ledger flow is not valid")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	return nil
}

// Payable reports whether the entry counts toward balances and projections.
// Only leaf-level payable occurrences do; plan templates are excluded.
func (e *Entry) Payable() bool {
	return e.Kind == KindPayableOccurrence
}

// IsInstallment reports whether the entry is a child of a parceled charge.
func (e *Entry) IsInstallment() bool {
	return e.ParentID != nil
}

// SetCategory assigns the entry to a category
func (e *Entry) SetCategory(categoryID uuid.UUID) {
	e.CategoryID = &categoryID
}

// SetDescription sets the free-text description
func (e *Entry) SetDescription(description string) {
	e.Description = description
}

// Payables filters a slice down to aggregation-eligible entries.
func Payables(entries []Entry) []Entry {
	eligible := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Payable() {
			eligible = append(eligible, e)
		}
	}
	return eligible
}

// DateOf normalizes a timestamp to a calendar date at UTC midnight. Ledger
// arithmetic works on dates, never on times of day.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
