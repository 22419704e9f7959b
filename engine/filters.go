package engine

import (
	"strings"
)

// ============================================================================
// FILTERS — Global search + per-field filters
// ============================================================================
// Both functions return a new slice and leave the input untouched. Each step
// narrows the candidate set of the previous one (AND semantics).
// ============================================================================

// ApplySearch keeps records where the normalized term is a substring of any
// searchable field. An empty term returns the records unchanged.
func ApplySearch[T any](records []T, term string, fields *Fields[T]) []T {
	if term == "" {
		return records
	}
	needle := Normalize(term)
	searchable := fields.searchable()

	out := make([]T, 0, len(records))
	for _, item := range records {
		for _, field := range searchable {
			if strings.Contains(Normalize(field.Value(item)), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// ApplyFilters applies filters in order. Filters without a value, on unknown
// or non-filterable fields, or with an unknown operator are skipped.
func ApplyFilters[T any](records []T, filters []Filter, fields *Fields[T]) []T {
	out := records
	for _, filter := range filters {
		if filter.Value == "" {
			continue
		}
		field, ok := fields.Get(filter.Field)
		if !ok || !field.Filterable {
			continue
		}

		var keep func(string) bool
		switch filter.Operator {
		case OperatorIn:
			keep = func(v string) bool { return v == filter.Value }
		case OperatorNotIn:
			keep = func(v string) bool { return v != filter.Value }
		default:
			continue
		}

		narrowed := make([]T, 0, len(out))
		for _, item := range out {
			if keep(field.Value(item)) {
				narrowed = append(narrowed, item)
			}
		}
		out = narrowed
	}
	return out
}
