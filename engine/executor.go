package engine

// ============================================================================
// EXECUTOR — search → filters → sort → paginate
// ============================================================================
// The order matters: page boundaries and totals are computed over the reduced
// set, never over the full one.
// ============================================================================

// Execute runs the view against records and returns the visible page.
// It is pure: the same records and view always give the same result, and the
// input slice is never modified.
func Execute[T any](records []T, view ViewConfig, fields *Fields[T], opts ...Option) QueryResult[T] {
	cfg := applyOptions(opts)

	filtered := ApplySearch(records, view.Search, fields)
	filtered = ApplyFilters(filtered, view.Filters, fields)
	if view.Sort != nil && !IsSortable(fields, view.Sort.Field) && cfg.Logger != nil {
		cfg.Logger.Debug("sort ignored, field is not sortable", "field", view.Sort.Field)
	}
	filtered = ApplySort(filtered, view.Sort, fields, cfg.Locale)

	items, info := Paginate(filtered, view.Page, view.PerPage)

	if cfg.Logger != nil {
		cfg.Logger.Debug("view query executed",
			"records", len(records),
			"matched", info.TotalItems,
			"page", view.Page,
			"pages", info.TotalPages,
		)
	}
	return QueryResult[T]{Items: items, PaginationInfo: info}
}
