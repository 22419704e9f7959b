package templates

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/dataviews/engine"
	"github.com/spektr-org/dataviews/internal/logger"
	"github.com/spektr-org/dataviews/preview"
)

// ── Test Data ─────────────────────────────────────────────────────────────────

func fixture() []Template {
	return []Template{
		{ID: "tt4//single", Slug: "single", Title: Title{Rendered: "Single Posts"}, Description: "Displays a single post.", AuthorText: "Twenty Twenty-Four",
			Content: Content{Raw: `<!-- wp:post-title /--><!-- wp:post-content /-->`}},
		{ID: "tt4//archive", Slug: "archive", Title: Title{Rendered: "Archive"}, Description: "Displays post categories &amp; tags.", AuthorText: "Twenty Twenty-Four"},
		{ID: "tt4//page-about", Slug: "page-about", Title: Title{Rendered: "Página &#8220;About&#8221;"}, AuthorText: "Jane"},
		{ID: "tt4//404", Slug: "404", AuthorText: "Jane"},
		{ID: "tt4//blank", AuthorText: "Élodie"},
	}
}

func newTestPage(t *testing.T, opts ...PageOption) *Page {
	t.Helper()
	r, err := preview.NewRenderer(16)
	require.NoError(t, err)
	opts = append([]PageOption{WithRenderer(r), WithLogger(logger.NewLogger(logger.TestConfig()))}, opts...)
	return NewPage(opts...)
}

func ids(items []Template) []string {
	out := make([]string, 0, len(items))
	for _, t := range items {
		out = append(out, t.ID)
	}
	return out
}

// ============================================================================
// TITLE
// ============================================================================

func TestDisplayTitle(t *testing.T) {
	records := fixture()

	assert.Equal(t, "Single Posts", DisplayTitle(records[0]))
	assert.Equal(t, "Página “About”", DisplayTitle(records[2]))
	assert.Equal(t, "404", DisplayTitle(records[3]), "falls back to the slug")
	assert.Equal(t, "(no title)", DisplayTitle(records[4]))
}

func TestLinkFor(t *testing.T) {
	assert.Equal(t, EditLink{PostID: "tt4//404", PostType: PostType, Canvas: "edit"}, LinkFor(fixture()[3]))
}

// ============================================================================
// FIELDS
// ============================================================================

func TestFields(t *testing.T) {
	fields := Fields(nil)
	assert.Equal(t, []string{FieldPreview, FieldTitle, FieldDescription, FieldAuthor}, fields.IDs())

	description, ok := fields.Get(FieldDescription)
	require.True(t, ok)
	assert.False(t, description.Sortable)
	assert.Equal(t, "—", description.Display(fixture()[3], DefaultView()))
	assert.Equal(t, "Displays post categories & tags.", description.Display(fixture()[1], DefaultView()))

	for _, id := range []string{FieldTitle, FieldAuthor} {
		f, _ := fields.Get(id)
		assert.True(t, f.Sortable, id)
	}
	media, _ := fields.Get(FieldPreview)
	assert.Empty(t, media.Display(fixture()[0], DefaultView()), "no renderer, no preview")
}

func TestAuthors(t *testing.T) {
	records := fixture()
	records = append(records, Template{ID: "x", AuthorText: "Jane"}, Template{ID: "y"})

	assert.Equal(t, []engine.Element{
		{Value: "Twenty Twenty-Four", Label: "Twenty Twenty-Four"},
		{Value: "Jane", Label: "Jane"},
		{Value: "Élodie", Label: "Élodie"},
	}, Authors(records))
}

func TestSchema(t *testing.T) {
	cfg := Schema(Authors(fixture()))

	assert.Equal(t, []string{"title", "author"}, cfg.SortableIDs())
	author, ok := cfg.Field(FieldAuthor)
	require.True(t, ok)
	assert.Len(t, author.Elements, 3)
	assert.False(t, author.EnableHiding)
	media, _ := cfg.Field(FieldPreview)
	assert.Equal(t, 120, media.MinWidth)
	assert.Equal(t, DefaultView(), cfg.DefaultView)
}

// ============================================================================
// PAGE
// ============================================================================

func TestPage_Loading(t *testing.T) {
	p := newTestPage(t)

	assert.True(t, p.IsLoading())
	result := p.Result()
	assert.Empty(t, result.Items)
	assert.Equal(t, engine.PaginationInfo{}, result.PaginationInfo)
	assert.Empty(t, p.Authors())

	p.SetRecords(fixture())
	assert.False(t, p.IsLoading())
	assert.Equal(t, 5, p.Result().TotalItems)
}

func TestPage_NilLogger(t *testing.T) {
	t.Run("Should keep the default logger when given nil", func(t *testing.T) {
		p := NewPage(WithLogger(nil))
		assert.NotPanics(t, func() {
			p.SetRecords(fixture())
			p.OnChangeView(engine.Replace(p.View()))
		})
		assert.Equal(t, 5, p.Result().TotalItems)
	})
}

func TestPage_Query(t *testing.T) {
	p := newTestPage(t)
	p.SetRecords(fixture())

	t.Run("Should search titles and descriptions without accents", func(t *testing.T) {
		p.OnChangeView(engine.Derive(func(v engine.ViewConfig) engine.ViewConfig {
			v.Search = "pagina"
			return v
		}))
		assert.Equal(t, []string{"tt4//page-about"}, ids(p.Result().Items))

		p.OnChangeView(engine.Derive(func(v engine.ViewConfig) engine.ViewConfig {
			v.Search = "post"
			return v
		}))
		assert.Equal(t, []string{"tt4//single", "tt4//archive"}, ids(p.Result().Items))
	})

	t.Run("Should AND the author filter with the search", func(t *testing.T) {
		p.OnChangeView(engine.Derive(func(v engine.ViewConfig) engine.ViewConfig {
			v.Search = "a"
			v.Filters = []engine.Filter{{Field: FieldAuthor, Operator: engine.OperatorIn, Value: "Jane"}}
			return v
		}))
		assert.Equal(t, []string{"tt4//page-about"}, ids(p.Result().Items))
	})

	t.Run("Should sort by title falling back to slug", func(t *testing.T) {
		p.OnChangeView(engine.Replace(engine.ViewConfig{
			Type:    engine.ViewTable,
			Page:    1,
			PerPage: 20,
			Sort:    &engine.Sort{Field: FieldTitle, Direction: engine.SortAsc},
		}))
		assert.Equal(t, []string{"tt4//blank", "tt4//404", "tt4//archive", "tt4//page-about", "tt4//single"}, ids(p.Result().Items))
	})

	t.Run("Should ignore a sort on description", func(t *testing.T) {
		p.OnChangeView(engine.Derive(func(v engine.ViewConfig) engine.ViewConfig {
			v.Sort = &engine.Sort{Field: FieldDescription, Direction: engine.SortDesc}
			return v
		}))
		assert.Equal(t, ids(fixture()), ids(p.Result().Items))
	})
}

func TestPage_Pagination(t *testing.T) {
	records := make([]Template, 45)
	for i := range records {
		records[i] = Template{ID: fmt.Sprint(i), Slug: fmt.Sprintf("t-%02d", i)}
	}
	p := newTestPage(t)
	p.SetRecords(records)

	p.OnChangeView(engine.Derive(func(v engine.ViewConfig) engine.ViewConfig {
		v.Page = 3
		return v
	}))
	result := p.Result()

	assert.Len(t, result.Items, 5)
	assert.Equal(t, engine.PaginationInfo{TotalItems: 45, TotalPages: 3}, result.PaginationInfo)
	assert.Equal(t, "41–45 of 45 (page 3 of 3)", p.Table().Summary)
}

func TestPage_OnChangeView(t *testing.T) {
	p := newTestPage(t)

	t.Run("Should reset the layout when switching to grid", func(t *testing.T) {
		next := p.OnChangeView(engine.Derive(func(v engine.ViewConfig) engine.ViewConfig {
			v.Type = engine.ViewGrid
			v.Search = "single"
			return v
		}))
		assert.Equal(t, engine.Layout{"mediaField": "preview", "primaryField": "title"}, next.Layout)
		assert.Equal(t, "single", next.Search)
	})

	t.Run("Should keep the layout when the type is unchanged", func(t *testing.T) {
		next := p.OnChangeView(engine.Derive(func(v engine.ViewConfig) engine.ViewConfig {
			v.Layout = engine.Layout{"mediaField": "preview"}
			return v
		}))
		assert.Equal(t, engine.Layout{"mediaField": "preview"}, next.Layout)
	})

	t.Run("Should switch the page class in list view", func(t *testing.T) {
		assert.Empty(t, p.ClassName())
		p.OnChangeView(engine.Derive(func(v engine.ViewConfig) engine.ViewConfig {
			v.Type = engine.ViewList
			return v
		}))
		assert.Equal(t, "edit-site-template-pages-list-view", p.ClassName())
		assert.Equal(t, engine.Layout{"primaryField": "title", "mediaField": "preview"}, p.View().Layout)
	})
}

func TestPage_DeferredRendering(t *testing.T) {
	p := newTestPage(t)
	assert.False(t, p.DeferredRendering())

	p.OnChangeView(engine.Derive(func(v engine.ViewConfig) engine.ViewConfig {
		v.HiddenFields = nil
		return v
	}))
	assert.True(t, p.DeferredRendering())
}

func TestPage_Selection(t *testing.T) {
	p := newTestPage(t)
	p.SetRecords(fixture())

	p.OnSelectionChange([]string{"tt4//single"})
	id, ok := p.SelectedID()
	assert.True(t, ok)
	assert.Equal(t, "tt4//single", id)

	p.OnSelectionChange([]string{"tt4//single", "tt4//archive"})
	_, ok = p.SelectedID()
	assert.False(t, ok)

	p.OnSelectionChange([]string{"tt4//archive"})
	p.OnSelectionChange(nil)
	_, ok = p.SelectedID()
	assert.False(t, ok)
}

func TestPage_ListPreview(t *testing.T) {
	p := newTestPage(t)
	p.SetRecords(fixture())

	_, ok := p.ListPreview()
	assert.False(t, ok, "only the list view has a side preview")

	p.OnChangeView(engine.Derive(func(v engine.ViewConfig) engine.ViewConfig {
		v.Type = engine.ViewList
		return v
	}))

	panel, ok := p.ListPreview()
	require.True(t, ok)
	assert.Equal(t, "Select a template to preview", panel.Placeholder)

	p.OnSelectionChange([]string{"tt4//single"})
	panel, ok = p.ListPreview()
	require.True(t, ok)
	assert.Equal(t, "tt4//single", panel.TemplateID)
	require.NotNil(t, panel.Preview)
	assert.Equal(t, []string{"post-title", "post-content"}, panel.Preview.Outline)
	assert.Equal(t, "page-templates-preview-field is-viewtype-list", panel.Preview.ClassName)
}

func TestPage_Cards(t *testing.T) {
	p := newTestPage(t)
	p.SetRecords(fixture()[:1])
	p.OnChangeView(engine.Derive(func(v engine.ViewConfig) engine.ViewConfig {
		v.Type = engine.ViewGrid
		v.HiddenFields = nil
		return v
	}))

	cards := p.Cards()

	require.Len(t, cards, 1)
	assert.Equal(t, "tt4//single", cards[0].ID)
	assert.Equal(t, "Single Posts", cards[0].Primary)
	assert.Equal(t, "post-title\npost-content", cards[0].Media)
	assert.Equal(t, []engine.Detail{
		{Label: "Description", Value: "Displays a single post."},
		{Label: "Author", Value: "Twenty Twenty-Four"},
	}, cards[0].Details)
}
