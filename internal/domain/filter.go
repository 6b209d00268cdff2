package domain

import (
	"fmt"
	"slices"
)

// Page is an offset-based page request. Limit 0 means no limit.
type Page struct {
	Limit  int
	Offset int
}

// DefaultSortField orders listings by insertion.
const DefaultSortField = "created_at"

// Sort is a single-field ordering. Ties are broken by insertion order.
type Sort struct {
	Field string
	Desc  bool
}

// Match is a case-insensitive substring condition on one field.
type Match struct {
	Field string
	Value string
}

// Query combines substring matches (AND) with an ordering.
type Query struct {
	Matches []Match
	Sort    Sort
}

// FieldSet declares which fields of an entity kind can be filtered and
// sorted. Field names are shared by both storage backends.
type FieldSet struct {
	Filterable []string
	Sortable   []string
}

func (f FieldSet) CanFilter(field string) bool { return slices.Contains(f.Filterable, field) }

func (f FieldSet) CanSort(field string) bool { return slices.Contains(f.Sortable, field) }

var (
	OwnerFields = FieldSet{
		Filterable: []string{"name", "email"},
		Sortable:   []string{"name", "email", "role", "created_at"},
	}
	DataStoreFields = FieldSet{
		Filterable: []string{"name", "technology"},
		Sortable:   []string{"name", "technology", "created_at"},
	}
	TableFields = FieldSet{
		Filterable: []string{"name", "description"},
		Sortable:   []string{"name", "description", "lifecycle_state", "quality_grade", "created_at"},
	}
	StreamTopicFields = FieldSet{
		Filterable: []string{"name", "description"},
		Sortable:   []string{"name", "description", "lifecycle_state", "created_at"},
	}
)

// PageLimits bounds client supplied pagination.
type PageLimits struct {
	Default int
	Max     int
}

// Page resolves optional limit/offset values. A nil limit takes the default;
// limit must be in [1, Max] and offset must not be negative.
func (l PageLimits) Page(limit, offset *int) (Page, error) {
	p := Page{Limit: l.Default}
	var errs []FieldError

	if limit != nil {
		p.Limit = *limit
		if p.Limit < 1 || p.Limit > l.Max {
			errs = append(errs, FieldError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", l.Max)})
		}
	}
	if offset != nil {
		p.Offset = *offset
		if p.Offset < 0 {
			errs = append(errs, FieldError{Field: "skip", Message: "must not be negative"})
		}
	}

	if len(errs) > 0 {
		return Page{}, NewValidationErrors(errs)
	}
	return p, nil
}
