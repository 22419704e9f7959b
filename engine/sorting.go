package engine

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ============================================================================
// SORTING — Locale-aware ordering on sortable string fields
// ============================================================================

// ApplySort orders records by the requested field using locale collation.
// It is a no-op when sort is nil or names a field that is unknown or not
// sortable. The input slice is never reordered; a sorted copy is returned.
func ApplySort[T any](records []T, s *Sort, fields *Fields[T], locale language.Tag) []T {
	if s == nil {
		return records
	}
	field, ok := fields.Get(s.Field)
	if !ok || !field.Sortable {
		return records
	}

	keys := make([]string, len(records))
	for i, item := range records {
		keys[i] = field.Value(item)
	}
	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}

	c := collate.New(locale)
	desc := s.Direction == SortDesc
	sort.SliceStable(idx, func(a, b int) bool {
		cmp := c.CompareString(keys[idx[a]], keys[idx[b]])
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})

	out := make([]T, len(records))
	for i, j := range idx {
		out[i] = records[j]
	}
	return out
}

// IsSortable reports whether a sort on fieldID would take effect.
func IsSortable[T any](fields *Fields[T], fieldID string) bool {
	field, ok := fields.Get(fieldID)
	return ok && field.Sortable
}
