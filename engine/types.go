package engine

// ============================================================================
// DATAVIEWS ENGINE TYPES — View State + Query Results
// ============================================================================
// The engine is generic over the record type. Consumers describe how to read
// a record through a Fields[T] registry (see view.go) and hand the engine a
// ViewConfig on every call. The engine keeps no state between calls.
// ============================================================================

// ViewType is the display mode governing which layout defaults apply.
type ViewType string

const (
	ViewTable ViewType = "table"
	ViewGrid  ViewType = "grid"
	ViewList  ViewType = "list"
)

// ViewTypes lists the recognized display modes.
var ViewTypes = []ViewType{ViewTable, ViewGrid, ViewList}

// Known reports whether t is one of the recognized display modes.
func (t ViewType) Known() bool {
	for _, v := range ViewTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Operator is a filter operator.
type Operator string

const (
	OperatorIn    Operator = "in"
	OperatorNotIn Operator = "notIn"
)

// Direction is a sort direction.
type Direction string

const (
	SortAsc  Direction = "asc"
	SortDesc Direction = "desc"
)

// ============================================================================
// VIEW CONFIG — replaced as a whole, never mutated in place
// ============================================================================

// ViewConfig is the complete, caller-owned state of a data view.
type ViewConfig struct {
	Type    ViewType `json:"type" yaml:"type" validate:"required,oneof=table grid list"`
	Search  string   `json:"search" yaml:"search"`
	Page    int      `json:"page" yaml:"page" validate:"gte=1"`
	PerPage int      `json:"perPage" yaml:"perPage" validate:"gt=0"`
	Sort    *Sort    `json:"sort,omitempty" yaml:"sort,omitempty"`

	// All fields are visible by default, so only the hidden ones are tracked.
	HiddenFields []string `json:"hiddenFields" yaml:"hiddenFields"`
	Layout       Layout   `json:"layout" yaml:"layout"`
	Filters      []Filter `json:"filters" yaml:"filters" validate:"dive"`
}

// Layout holds view-type specific options such as mediaField or primaryField.
type Layout map[string]string

// Clone returns an independent copy of l. A nil layout clones to an empty one.
func (l Layout) Clone() Layout {
	out := make(Layout, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// Filter narrows the record set on one field.
type Filter struct {
	Field    string   `json:"field" yaml:"field" validate:"required"`
	Operator Operator `json:"operator" yaml:"operator" validate:"oneof=in notIn"`
	Value    string   `json:"value" yaml:"value"`
}

// Sort orders the record set by one field.
type Sort struct {
	Field     string    `json:"field" yaml:"field" validate:"required"`
	Direction Direction `json:"direction" yaml:"direction" validate:"oneof=asc desc"`
}

// IsHidden reports whether the field id is in the hidden set.
func (v ViewConfig) IsHidden(fieldID string) bool {
	for _, id := range v.HiddenFields {
		if id == fieldID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so that callers can derive a new config without
// aliasing the slices and map of the previous one.
func (v ViewConfig) Clone() ViewConfig {
	out := v
	if v.Sort != nil {
		s := *v.Sort
		out.Sort = &s
	}
	if v.HiddenFields != nil {
		out.HiddenFields = append([]string(nil), v.HiddenFields...)
	}
	if v.Filters != nil {
		out.Filters = append([]Filter(nil), v.Filters...)
	}
	if v.Layout != nil {
		out.Layout = v.Layout.Clone()
	}
	return out
}

// ============================================================================
// RESULT — derived on every call, never persisted
// ============================================================================

// PaginationInfo carries the totals computed over the filtered set.
type PaginationInfo struct {
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// QueryResult is the page of records to show plus pagination metadata.
type QueryResult[T any] struct {
	Items []T `json:"items"`
	PaginationInfo
}

// Element is one selectable value of an enumeration field (a facet).
type Element struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
