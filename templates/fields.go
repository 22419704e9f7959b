package templates

import (
	"html"

	"github.com/spektr-org/dataviews/engine"
	"github.com/spektr-org/dataviews/preview"
	"github.com/spektr-org/dataviews/schema"
)

const (
	FieldPreview     = "preview"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldAuthor      = "author"
)

// emptyDescription is shown in place of a missing description.
const emptyDescription = "—"

// Fields builds the field registry for the templates view. renderer may be
// nil, in which case the preview column renders empty.
func Fields(renderer *preview.Renderer) *engine.Fields[Template] {
	return engine.NewFields[Template]().
		Add(engine.Field[Template]{
			ID:     FieldPreview,
			Header: "Preview",
			Render: func(t Template, view engine.ViewConfig) string {
				if renderer == nil {
					return ""
				}
				p, ok := renderer.Render(t.Content.Raw, string(view.Type))
				if !ok {
					return ""
				}
				return p.String()
			},
		}).
		Add(engine.Field[Template]{
			ID:         FieldTitle,
			Header:     "Template",
			GetValue:   TitleValue,
			Render:     func(t Template, _ engine.ViewConfig) string { return DisplayTitle(t) },
			Sortable:   true,
			Searchable: true,
		}).
		Add(engine.Field[Template]{
			ID:       FieldDescription,
			Header:   "Description",
			GetValue: func(t Template) string { return t.Description },
			Render: func(t Template, _ engine.ViewConfig) string {
				if t.Description == "" {
					return emptyDescription
				}
				return html.UnescapeString(t.Description)
			},
			Searchable: true,
		}).
		Add(engine.Field[Template]{
			ID:         FieldAuthor,
			Header:     "Author",
			GetValue:   func(t Template) string { return t.AuthorText },
			Sortable:   true,
			Filterable: true,
		})
}

// Authors collects the author facets offered by the author filter. Records
// without an author text contribute no facet, so an empty author is never
// offered as a filter value.
func Authors(records []Template) []engine.Element {
	author, _ := Fields(nil).Get(FieldAuthor)
	return engine.Facets(records, author)
}

// Schema describes the templates view columns. authors become the elements
// of the author enumeration.
func Schema(authors []engine.Element) schema.Config {
	media := schema.DefaultField(FieldPreview, "Preview")
	media.MinWidth, media.MaxWidth = 120, 120
	media.EnableSorting = false

	title := schema.DefaultField(FieldTitle, "Template")
	title.MaxWidth = 400
	title.EnableHiding = false

	description := schema.DefaultField(FieldDescription, "Description")
	description.MaxWidth = 200
	description.EnableSorting = false

	author := schema.DefaultField(FieldAuthor, "Author")
	author.EnableHiding = false
	author.Type = schema.TypeEnumeration
	author.Elements = authors

	return schema.Config{
		Name:        "templates",
		Fields:      []schema.FieldMeta{media, title, description, author},
		DefaultView: DefaultView(),
	}
}
