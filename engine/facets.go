package engine

// Facets collects the distinct values of a field in first-seen order, each
// exactly once. Empty values are not surfaced as filter options.
func Facets[T any](records []T, field Field[T]) []Element {
	seen := make(map[string]bool)
	out := make([]Element, 0)
	for _, item := range records {
		v := field.Value(item)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, Element{Value: v, Label: v})
	}
	return out
}
