// Package templates is the templates data view: the template record, its
// field registry, the default view and the page controller that ties the view
// state, the query engine and the preview renderer together.
package templates

import (
	"html"
)

// PostType is the entity type listed by this view.
const PostType = "wp_template"

// Template is one template entity as returned by the record source.
type Template struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Slug        string  `json:"slug"`
	Title       Title   `json:"title"`
	Description string  `json:"description"`
	AuthorText  string  `json:"author_text"`
	Content     Content `json:"content"`
}

// Title is the nested title of an entity.
type Title struct {
	Rendered string `json:"rendered"`
	Raw      string `json:"raw"`
}

// Content is the nested content of an entity; only the raw markup is used.
type Content struct {
	Raw string `json:"raw"`
}

const noTitle = "(no title)"

// TitleValue is the sortable and searchable title: the rendered title, or the
// slug when the title is empty.
func TitleValue(t Template) string {
	if t.Title.Rendered != "" {
		return t.Title.Rendered
	}
	return t.Slug
}

// DisplayTitle decodes HTML entities in the title and falls back to
// "(no title)".
func DisplayTitle(t Template) string {
	if s := html.UnescapeString(TitleValue(t)); s != "" {
		return s
	}
	return noTitle
}

// EditLink points at the editor canvas for a template.
type EditLink struct {
	PostID   string `json:"postId"`
	PostType string `json:"postType"`
	Canvas   string `json:"canvas"`
}

// LinkFor builds the edit link of a template.
func LinkFor(t Template) EditLink {
	postType := t.Type
	if postType == "" {
		postType = PostType
	}
	return EditLink{PostID: t.ID, PostType: postType, Canvas: "edit"}
}
