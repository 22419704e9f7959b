package helpers

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/spektr-org/dataviews/templates"
)

// ============================================================================
// JSON HELPER — Parses REST-shaped JSON into []templates.Template
// ============================================================================
// Accepts both the edit-context shape ({"title":{"rendered":..,"raw":..}})
// and flat exports ({"title":"..."}), as an array or a single object.
// ============================================================================

// ErrNotJSON is returned when the payload is not valid JSON.
var ErrNotJSON = errors.New("payload is not valid JSON")

// ParseJSON parses a JSON array (or single object) of templates.
func ParseJSON(data []byte) ([]templates.Template, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrNotJSON
	}
	root := gjson.ParseBytes(data)

	switch {
	case root.IsArray():
		var records []templates.Template
		root.ForEach(func(_, item gjson.Result) bool {
			if item.IsObject() {
				records = append(records, templateFrom(item))
			}
			return true
		})
		return records, nil
	case root.IsObject():
		return []templates.Template{templateFrom(root)}, nil
	default:
		return nil, fmt.Errorf("%w: expected an array or object, got %s", ErrNotJSON, root.Type)
	}
}

func templateFrom(item gjson.Result) templates.Template {
	t := templates.Template{
		ID:          item.Get("id").String(),
		Type:        item.Get("type").String(),
		Slug:        item.Get("slug").String(),
		Description: nested(item.Get("description"), "raw"),
		AuthorText:  item.Get("author_text").String(),
		Title: templates.Title{
			Rendered: nested(item.Get("title"), "rendered"),
			Raw:      item.Get("title.raw").String(),
		},
		Content: templates.Content{Raw: nested(item.Get("content"), "raw")},
	}
	fillIdentity(&t)
	return t
}

// nested reads a value that is either a plain string or an object carrying the
// string under key.
func nested(v gjson.Result, key string) string {
	if v.IsObject() {
		return v.Get(key).String()
	}
	return v.String()
}
