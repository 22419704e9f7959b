package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

// ── Test Data ─────────────────────────────────────────────────────────────────

type post struct {
	ID          string
	Title       string
	Description string
	Author      string
}

func postFields() *Fields[post] {
	return NewFields[post]().
		Add(Field[post]{ID: "title", Header: "Title", GetValue: func(p post) string { return p.Title }, Sortable: true, Searchable: true}).
		Add(Field[post]{ID: "description", Header: "Description", GetValue: func(p post) string { return p.Description }, Searchable: true}).
		Add(Field[post]{ID: "author", Header: "Author", GetValue: func(p post) string { return p.Author }, Sortable: true, Filterable: true})
}

func titles(items []post) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Title)
	}
	return out
}

func numbered(n int) []post {
	out := make([]post, n)
	for i := range out {
		out[i] = post{ID: fmt.Sprint(i + 1), Title: fmt.Sprintf("Post %02d", i+1), Author: "Jane"}
	}
	return out
}

func baseView() ViewConfig {
	return ViewConfig{Type: ViewTable, Page: 1, PerPage: 20}
}

// ============================================================================
// NORMALIZE
// ============================================================================

func TestNormalize(t *testing.T) {
	testCases := []struct {
		in, want string
	}{
		{"  Crème Brûlée ", "creme brulee"},
		{"ÁRCHIVE", "archive"},
		{"Øresund", "oresund"},
		{"Straße", "strasse"},
		{"ŁÓDŹ", "lodz"},
		{"Encyclopædia", "encyclopaedia"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, Normalize(tc.in), tc.in)
	}
}

// ============================================================================
// SEARCH
// ============================================================================

func TestApplySearch(t *testing.T) {
	records := []post{
		{Title: "Single Post", Description: "Used for blog posts"},
		{Title: "Archive", Description: "Lists dated entries"},
		{Title: "Página", Description: ""},
		{Title: "404"},
	}
	fields := postFields()

	t.Run("Should be identity on empty search", func(t *testing.T) {
		assert.Equal(t, records, ApplySearch(records, "", fields))
	})

	t.Run("Should match title or description", func(t *testing.T) {
		got := ApplySearch(records, "POST", fields)
		assert.Equal(t, []string{"Single Post"}, titles(got))

		got = ApplySearch(records, "dated", fields)
		assert.Equal(t, []string{"Archive"}, titles(got))
	})

	t.Run("Should ignore accents on both sides", func(t *testing.T) {
		assert.Equal(t, []string{"Página"}, titles(ApplySearch(records, "pagina", fields)))
		assert.Equal(t, []string{"Archive"}, titles(ApplySearch(records, "árchive", fields)))
	})

	t.Run("Should treat a missing description as empty", func(t *testing.T) {
		assert.Empty(t, ApplySearch(records, "nothing-here", fields))
	})
}

// ============================================================================
// FILTERS
// ============================================================================

func TestApplyFilters(t *testing.T) {
	records := []post{
		{Title: "A", Author: "Jane"},
		{Title: "B", Author: "Bob"},
		{Title: "C", Author: "Jane"},
		{Title: "D"},
	}
	fields := postFields()

	t.Run("Should be identity without filters", func(t *testing.T) {
		assert.Equal(t, records, ApplyFilters(records, nil, fields))
		assert.Equal(t, records, ApplyFilters(records, []Filter{}, fields))
	})

	t.Run("Should keep equal values for in", func(t *testing.T) {
		got := ApplyFilters(records, []Filter{{Field: "author", Operator: OperatorIn, Value: "Jane"}}, fields)
		assert.Equal(t, []string{"A", "C"}, titles(got))
	})

	t.Run("Should drop equal values for notIn", func(t *testing.T) {
		got := ApplyFilters(records, []Filter{{Field: "author", Operator: OperatorNotIn, Value: "Jane"}}, fields)
		assert.Equal(t, []string{"B", "D"}, titles(got))
	})

	t.Run("Should AND filters in sequence", func(t *testing.T) {
		got := ApplyFilters(records, []Filter{
			{Field: "author", Operator: OperatorNotIn, Value: "Bob"},
			{Field: "author", Operator: OperatorNotIn, Value: "Jane"},
		}, fields)
		assert.Equal(t, []string{"D"}, titles(got))
	})

	t.Run("Should skip filters without a value or with unknown field or operator", func(t *testing.T) {
		got := ApplyFilters(records, []Filter{
			{Field: "author", Operator: OperatorIn, Value: ""},
			{Field: "status", Operator: OperatorIn, Value: "draft"},
			{Field: "title", Operator: OperatorIn, Value: "A"},
			{Field: "author", Operator: Operator("contains"), Value: "Ja"},
		}, fields)
		assert.Equal(t, records, got)
	})
}

// ============================================================================
// SORTING
// ============================================================================

func TestApplySort(t *testing.T) {
	records := []post{
		{Title: "banana", Description: "z", Author: "Bob"},
		{Title: "Apple", Description: "y", Author: "Jane"},
		{Title: "cherry", Description: "x", Author: "Bob"},
		{Title: "ábaco", Description: "w"},
	}
	fields := postFields()

	t.Run("Should be a no-op without a sort", func(t *testing.T) {
		assert.Equal(t, records, ApplySort(records, nil, fields, language.English))
	})

	t.Run("Should order with locale collation", func(t *testing.T) {
		got := ApplySort(records, &Sort{Field: "title", Direction: SortAsc}, fields, language.English)
		assert.Equal(t, []string{"ábaco", "Apple", "banana", "cherry"}, titles(got))

		got = ApplySort(records, &Sort{Field: "title", Direction: SortDesc}, fields, language.English)
		assert.Equal(t, []string{"cherry", "banana", "Apple", "ábaco"}, titles(got))
	})

	t.Run("Should keep input order for equal keys and sort missing values first", func(t *testing.T) {
		got := ApplySort(records, &Sort{Field: "author", Direction: SortAsc}, fields, language.English)
		assert.Equal(t, []string{"ábaco", "banana", "cherry", "Apple"}, titles(got))
	})

	t.Run("Should not sort on a non-sortable or unknown field", func(t *testing.T) {
		assert.Equal(t, records, ApplySort(records, &Sort{Field: "description", Direction: SortAsc}, fields, language.English))
		assert.Equal(t, records, ApplySort(records, &Sort{Field: "date", Direction: SortAsc}, fields, language.English))
	})

	t.Run("Should not reorder the input slice", func(t *testing.T) {
		before := append([]post(nil), records...)
		ApplySort(records, &Sort{Field: "title", Direction: SortAsc}, fields, language.English)
		assert.Equal(t, before, records)
	})
}

// ============================================================================
// PAGINATION
// ============================================================================

func TestPaginate(t *testing.T) {
	records := numbered(45)

	t.Run("Should compute the last partial page", func(t *testing.T) {
		items, info := Paginate(records, 3, 20)
		assert.Len(t, items, 5)
		assert.Equal(t, PaginationInfo{TotalItems: 45, TotalPages: 3}, info)
		assert.Equal(t, "Post 41", items[0].Title)
	})

	t.Run("Should return an empty page out of range", func(t *testing.T) {
		items, info := Paginate(records, 4, 20)
		assert.Empty(t, items)
		assert.Equal(t, 3, info.TotalPages)

		items, _ = Paginate(records, 0, 20)
		assert.Empty(t, items)
	})

	t.Run("Should report zero pages for no records", func(t *testing.T) {
		items, info := Paginate([]post{}, 1, 20)
		assert.Empty(t, items)
		assert.Equal(t, PaginationInfo{}, info)
	})

	t.Run("Should not let appends on a page clobber the source", func(t *testing.T) {
		items, _ := Paginate(records, 1, 20)
		_ = append(items, post{Title: "intruder"})
		assert.Equal(t, "Post 21", records[20].Title)
	})
}

func TestTotalPages(t *testing.T) {
	testCases := []struct{ total, perPage, want int }{
		{45, 20, 3},
		{40, 20, 2},
		{0, 20, 0},
		{1, 20, 1},
		{7, 1, 7},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, TotalPages(tc.total, tc.perPage), "%d/%d", tc.total, tc.perPage)
	}
}

// ============================================================================
// FACETS
// ============================================================================

func TestFacets(t *testing.T) {
	records := []post{{Author: "A"}, {Author: "B"}, {Author: "A"}, {Author: ""}, {Author: "C"}}
	author, ok := postFields().Get("author")
	require.True(t, ok)

	got := Facets(records, author)

	assert.Equal(t, []Element{
		{Value: "A", Label: "A"},
		{Value: "B", Label: "B"},
		{Value: "C", Label: "C"},
	}, got)
}

// ============================================================================
// EXECUTE
// ============================================================================

func TestExecute(t *testing.T) {
	fields := postFields()

	t.Run("Should AND search and filters before paging", func(t *testing.T) {
		records := []post{
			{Title: "My Post", Author: "Jane"},
			{Title: "Other", Author: "Jane"},
			{Title: "Post two", Author: "Bob"},
		}
		view := baseView()
		view.Search = "post"
		view.Filters = []Filter{{Field: "author", Operator: OperatorIn, Value: "Jane"}}

		result := Execute(records, view, fields)

		assert.Equal(t, []string{"My Post"}, titles(result.Items))
		assert.Equal(t, PaginationInfo{TotalItems: 1, TotalPages: 1}, result.PaginationInfo)
	})

	t.Run("Should compute totals over the filtered set", func(t *testing.T) {
		records := append(numbered(45), post{Title: "Zed", Author: "Bob"})
		view := baseView()
		view.Page = 3
		view.Filters = []Filter{{Field: "author", Operator: OperatorIn, Value: "Jane"}}

		result := Execute(records, view, fields)

		assert.Len(t, result.Items, 5)
		assert.Equal(t, 45, result.TotalItems)
		assert.Equal(t, 3, result.TotalPages)
	})

	t.Run("Should sort before paging", func(t *testing.T) {
		view := baseView()
		view.PerPage = 2
		view.Sort = &Sort{Field: "title", Direction: SortDesc}

		result := Execute(numbered(5), view, fields)

		assert.Equal(t, []string{"Post 05", "Post 04"}, titles(result.Items))
	})

	t.Run("Should leave order untouched when sorting on a non-sortable field", func(t *testing.T) {
		records := []post{{Title: "b", Description: "2"}, {Title: "a", Description: "1"}}
		view := baseView()
		view.Sort = &Sort{Field: "description", Direction: SortAsc}

		result := Execute(records, view, fields)

		assert.Equal(t, []string{"b", "a"}, titles(result.Items))
	})

	t.Run("Should be idempotent", func(t *testing.T) {
		view := baseView()
		view.Search = "post 1"
		view.Sort = &Sort{Field: "title", Direction: SortDesc}
		records := numbered(30)

		assert.Equal(t, Execute(records, view, fields), Execute(records, view, fields))
	})
}
