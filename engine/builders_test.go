package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTable(t *testing.T) {
	fields := postFields()
	view := baseView()
	view.PerPage = 2
	view.Page = 2
	view.HiddenFields = []string{"description"}
	view.Sort = &Sort{Field: "title", Direction: SortAsc}

	result := Execute(numbered(5), view, fields)
	table := BuildTable(result, view, fields)

	require.Len(t, table.Columns, 2)
	assert.Equal(t, Column{Key: "title", Label: "Title", Sortable: true, Sorted: "asc"}, table.Columns[0])
	assert.Equal(t, Column{Key: "author", Label: "Author", Sortable: true}, table.Columns[1])
	assert.Equal(t, [][]string{{"Post 03", "Jane"}, {"Post 04", "Jane"}}, table.Rows)
	assert.Equal(t, "3–4 of 5 (page 2 of 3)", table.Summary)
}

func TestBuildSummary(t *testing.T) {
	view := baseView()
	assert.Equal(t, "0 of 0", BuildSummary(PaginationInfo{}, view, 0))

	view.Page = 3
	assert.Equal(t, "41–45 of 45 (page 3 of 3)", BuildSummary(PaginationInfo{TotalItems: 45, TotalPages: 3}, view, 5))
}

func TestBuildCards(t *testing.T) {
	fields := postFields().
		Add(Field[post]{ID: "preview", GetValue: func(p post) string { return "[" + p.Title + "]" }})
	view := baseView()
	view.Type = ViewGrid
	view.Layout = Layout{LayoutPrimaryField: "title", LayoutMediaField: "preview"}
	view.HiddenFields = []string{"description"}

	result := Execute([]post{{ID: "1", Title: "Home", Author: "Jane"}}, view, fields)
	cards := BuildCards(result, view, fields, func(p post) string { return p.ID })

	require.Len(t, cards, 1)
	assert.Equal(t, Card{
		ID:      "1",
		Primary: "Home",
		Media:   "[Home]",
		Details: []Detail{{Label: "Author", Value: "Jane"}},
	}, cards[0])

	t.Run("Should drop the media when the media field is hidden", func(t *testing.T) {
		view.HiddenFields = append(view.HiddenFields, "preview")
		cards := BuildCards(result, view, fields, nil)
		assert.Empty(t, cards[0].Media)
		assert.Empty(t, cards[0].ID)
	})
}
