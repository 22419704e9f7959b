package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testDefaults() LayoutDefaults {
	return LayoutDefaults{
		ViewTable: {},
		ViewGrid:  {LayoutMediaField: "preview", LayoutPrimaryField: "title"},
		ViewList:  {LayoutPrimaryField: "title", LayoutMediaField: "preview"},
	}
}

func TestReducer(t *testing.T) {
	r := NewReducer(testDefaults())
	prev := ViewConfig{
		Type:         ViewTable,
		Search:       "post",
		Page:         2,
		PerPage:      20,
		HiddenFields: []string{"preview"},
		Layout:       Layout{"density": "compact"},
		Filters:      []Filter{{Field: "author", Operator: OperatorIn, Value: "Jane"}},
	}

	t.Run("Should reset layout when the type changes", func(t *testing.T) {
		next := r.Reduce(prev, Derive(func(v ViewConfig) ViewConfig {
			v.Type = ViewGrid
			return v
		}))

		assert.Equal(t, Layout{"mediaField": "preview", "primaryField": "title"}, next.Layout)
		assert.Equal(t, "post", next.Search)
		assert.Equal(t, 2, next.Page)
		assert.Equal(t, prev.Filters, next.Filters)
		assert.Equal(t, []string{"preview"}, next.HiddenFields)
	})

	t.Run("Should keep layout when the type is unchanged", func(t *testing.T) {
		next := r.Reduce(prev, Derive(func(v ViewConfig) ViewConfig {
			v.Search = "archive"
			v.Layout["density"] = "comfortable"
			return v
		}))

		assert.Equal(t, Layout{"density": "comfortable"}, next.Layout)
		assert.Equal(t, "archive", next.Search)
		assert.Equal(t, Layout{"density": "compact"}, prev.Layout, "derive must not mutate the previous config")
	})

	t.Run("Should accept a direct replacement", func(t *testing.T) {
		replacement := prev.Clone()
		replacement.Type = ViewList
		replacement.Layout = Layout{"stale": "grid-size"}

		next := r.Reduce(prev, Replace(replacement))

		assert.Equal(t, Layout{"primaryField": "title", "mediaField": "preview"}, next.Layout)
		assert.Equal(t, Layout{"stale": "grid-size"}, replacement.Layout)
	})

	t.Run("Should reset to an empty layout for table", func(t *testing.T) {
		grid := prev.Clone()
		grid.Type = ViewGrid
		grid.Layout = Layout{"mediaField": "preview"}

		next := r.Reduce(grid, Derive(func(v ViewConfig) ViewConfig {
			v.Type = ViewTable
			return v
		}))

		assert.NotNil(t, next.Layout)
		assert.Empty(t, next.Layout)
	})

	t.Run("Should pass an unknown type through without a reset", func(t *testing.T) {
		next := r.Reduce(prev, Derive(func(v ViewConfig) ViewConfig {
			v.Type = ViewType("kanban")
			return v
		}))

		assert.Equal(t, ViewType("kanban"), next.Type)
		assert.Equal(t, Layout{"density": "compact"}, next.Layout)
	})

	t.Run("Should hand out independent copies of the defaults", func(t *testing.T) {
		first := r.Reduce(prev, Derive(func(v ViewConfig) ViewConfig { v.Type = ViewGrid; return v }))
		first.Layout["mediaField"] = "changed"

		second := r.Reduce(prev, Derive(func(v ViewConfig) ViewConfig { v.Type = ViewGrid; return v }))
		assert.Equal(t, "preview", second.Layout["mediaField"])
	})

	t.Run("Should be pure", func(t *testing.T) {
		u := Derive(func(v ViewConfig) ViewConfig { v.Type = ViewList; v.Page = 1; return v })
		assert.Equal(t, r.Reduce(prev, u), r.Reduce(prev, u))
	})
}

func TestViewType_Known(t *testing.T) {
	assert.True(t, ViewTable.Known())
	assert.True(t, ViewGrid.Known())
	assert.True(t, ViewList.Known())
	assert.False(t, ViewType("kanban").Known())
}
