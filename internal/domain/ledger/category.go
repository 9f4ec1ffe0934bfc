package ledger

import "github.com/google/uuid"

// Category is a tenant-scoped outflow category label.
type Category struct {
	ID       uuid.UUID `json:"id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Label    string    `json:"label"`
}

// Sentinel labels used by the category breakdown. Entries with no category
// fall into the uncategorized bucket; entries whose category_id resolves to
// nothing keep the aggregation running under a placeholder instead of
// failing the whole request over one stale reference.
const (
	UncategorizedLabel   = "uncategorized"
	UnknownCategoryLabel = "unknown category"
)

// LabelIndex builds a category_id -> label lookup.
func LabelIndex(categories []Category) map[uuid.UUID]string {
	index := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		index[c.ID] = c.Label
	}
	return index
}
