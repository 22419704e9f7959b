// Package dataviews is a query engine for admin data views plus the editor
// collaborators built around it.
//
// Usage:
//
//	import "github.com/spektr-org/dataviews/engine"
//
//	result := engine.Execute(records, view, fields,
//	    engine.WithLocale(language.French),
//	)
//
// The engine takes a ViewConfig (search, filters, sort, page) and a typed
// field registry, and returns the page of records to show with pagination
// totals. Layout changes go through engine.Reducer, which resets the layout
// when the view type changes.
//
// Records are fetched separately by the source package. The engine never
// performs I/O; all computation is local and synchronous.
package dataviews
