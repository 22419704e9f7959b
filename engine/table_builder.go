package engine

import (
	"fmt"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from a QueryResult
// ============================================================================
// Columns are the fields the view does not hide, in registration order.
// Cells are rendered through each field's Render function.
// ============================================================================

// TableData defines how to render a table page.
type TableData struct {
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary string     `json:"summary"`
}

// Column defines a table column.
type Column struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Sortable bool   `json:"sortable"`
	Sorted   string `json:"sorted,omitempty"` // "asc", "desc" or empty
}

// BuildTable renders the page of a QueryResult as table rows.
func BuildTable[T any](result QueryResult[T], view ViewConfig, fields *Fields[T]) *TableData {
	visible := fields.Visible(view)
	columns := make([]Column, 0, len(visible))
	for _, f := range visible {
		col := Column{Key: f.ID, Label: f.Label(), Sortable: f.Sortable}
		if view.Sort != nil && view.Sort.Field == f.ID && f.Sortable {
			col.Sorted = string(view.Sort.Direction)
		}
		columns = append(columns, col)
	}

	rows := make([][]string, 0, len(result.Items))
	for _, item := range result.Items {
		row := make([]string, 0, len(visible))
		for _, f := range visible {
			row = append(row, f.Display(item, view))
		}
		rows = append(rows, row)
	}

	return &TableData{
		Columns: columns,
		Rows:    rows,
		Summary: BuildSummary(result.PaginationInfo, view, len(result.Items)),
	}
}

// BuildSummary describes the visible window, e.g. "41–45 of 45 (page 3 of 3)".
func BuildSummary(info PaginationInfo, view ViewConfig, shown int) string {
	if info.TotalItems == 0 || shown == 0 {
		return fmt.Sprintf("0 of %d", info.TotalItems)
	}
	first := (view.Page-1)*view.PerPage + 1
	last := first + shown - 1
	return fmt.Sprintf("%d–%d of %d (page %d of %d)", first, last, info.TotalItems, view.Page, info.TotalPages)
}
