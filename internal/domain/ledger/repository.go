package ledger

import (
	"context"
	"time"

	"github.com/cashboard/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CodeStoreUnavailable classifies ledger store failures. The aggregation
// engine never retries and never returns partial results on top of a failed
// query; a partial balance is worse than no balance.
const CodeStoreUnavailable = "STORE_UNAVAILABLE"

// StoreUnavailable wraps a failed store query under the taxonomy code while
// preserving the underlying error chain.
func StoreUnavailable(cause error) error {
	return shared.WrapDomainError(CodeStoreUnavailable, "Ledger store query failed", cause)
}

// Scope is the multi-tenant filter applied to every ledger query. The
// all-tenants wildcard is reserved for privileged callers and must be
// requested explicitly.
type Scope struct {
	TenantID uuid.UUID
	All      bool
}

// TenantScope scopes queries to a single tenant
func TenantScope(tenantID uuid.UUID) Scope {
	return Scope{TenantID: tenantID}
}

// AllTenants returns the privileged wildcard scope
func AllTenants() Scope {
	return Scope{All: true}
}

// String renders the scope for cache keys and snapshot payloads.
func (s Scope) String() string {
	if s.All {
		return "all"
	}
	return s.TenantID.String()
}

// EntryFilter narrows a ledger query by due date. Zero-value fields are not
// applied. DueBefore/DueAfter are strict bounds; DueFrom/DueTo are inclusive.
type EntryFilter struct {
	DueBefore *time.Time
	DueAfter  *time.Time
	DueFrom   *time.Time
	DueTo     *time.Time
}

// DueBeforeFilter selects entries strictly before the date
func DueBeforeFilter(date time.Time) EntryFilter {
	d := DateOf(date)
	return EntryFilter{DueBefore: &d}
}

// DueAfterFilter selects entries strictly after the date
func DueAfterFilter(date time.Time) EntryFilter {
	d := DateOf(date)
	return EntryFilter{DueAfter: &d}
}

// DueBetweenFilter selects entries with from <= due_date <= to
func DueBetweenFilter(from, to time.Time) EntryFilter {
	f, t := DateOf(from), DateOf(to)
	return EntryFilter{DueFrom: &f, DueTo: &t}
}

// Store is the read-side query interface over the two ledgers. Implementations
// must apply the leaf-eligibility rule server-side: only payable occurrences
// are ever returned. Queries are read-only and safe to issue concurrently.
type Store interface {
	// QueryEntries returns eligible entries of one flow matching the scope
	// and filter, in no guaranteed order.
	QueryEntries(ctx context.Context, flow Flow, scope Scope, filter EntryFilter) ([]Entry, error)

	// ListCategories returns the category labels visible to the scope.
	ListCategories(ctx context.Context, scope Scope) ([]Category, error)
}
