package engine

// ============================================================================
// FIELD REGISTRY — Typed record access through accessor functions
// ============================================================================
// The engine never inspects consumer records directly. Consumers register one
// Field per column once per view session; the engine reads through GetValue.
//
// Usage:
//
//	fields := engine.NewFields[Template]().
//	    Add(engine.Field[Template]{ID: "title", GetValue: titleOf, Sortable: true, Searchable: true}).
//	    Add(engine.Field[Template]{ID: "author", GetValue: authorOf, Sortable: true, Filterable: true})
//
//	result := engine.Execute(records, view, fields)
// ============================================================================

// Field describes one column of a data view.
type Field[T any] struct {
	ID     string
	Header string

	// GetValue extracts the comparable value. Missing values return "".
	GetValue func(T) string

	// Render produces the presentation of the value for a view. When nil the
	// raw value is used.
	Render func(T, ViewConfig) string

	Sortable   bool
	Searchable bool
	Filterable bool
}

// Value reads the field from a record, tolerating a nil accessor.
func (f Field[T]) Value(item T) string {
	if f.GetValue == nil {
		return ""
	}
	return f.GetValue(item)
}

// Display renders the field for the given view.
func (f Field[T]) Display(item T, view ViewConfig) string {
	if f.Render != nil {
		return f.Render(item, view)
	}
	return f.Value(item)
}

// Fields is an ordered registry of field descriptors. Declare once, query many
// times; the registry is read-only during a query pass.
type Fields[T any] struct {
	order []string
	byID  map[string]Field[T]
}

// NewFields creates an empty registry for record type T.
func NewFields[T any]() *Fields[T] {
	return &Fields[T]{byID: make(map[string]Field[T])}
}

// Add registers a field. Re-adding an id replaces it in place.
func (f *Fields[T]) Add(field Field[T]) *Fields[T] {
	if _, exists := f.byID[field.ID]; !exists {
		f.order = append(f.order, field.ID)
	}
	f.byID[field.ID] = field
	return f
}

// Label returns the column header, falling back to the id.
func (f Field[T]) Label() string {
	if f.Header != "" {
		return f.Header
	}
	return f.ID
}

// Get looks up a field by id.
func (f *Fields[T]) Get(id string) (Field[T], bool) {
	if f == nil {
		return Field[T]{}, false
	}
	field, ok := f.byID[id]
	return field, ok
}

// All returns the fields in registration order.
func (f *Fields[T]) All() []Field[T] {
	if f == nil {
		return nil
	}
	out := make([]Field[T], 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out
}

// IDs returns the field ids in registration order.
func (f *Fields[T]) IDs() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.order...)
}

// Visible returns the fields not hidden by the view, in registration order.
func (f *Fields[T]) Visible(view ViewConfig) []Field[T] {
	all := f.All()
	out := all[:0]
	for _, field := range all {
		if !view.IsHidden(field.ID) {
			out = append(out, field)
		}
	}
	return out
}

func (f *Fields[T]) searchable() []Field[T] {
	var out []Field[T]
	for _, field := range f.All() {
		if field.Searchable {
			out = append(out, field)
		}
	}
	return out
}
