package helpers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gosimple/slug"

	"github.com/spektr-org/dataviews/templates"
)

// ============================================================================
// CSV HELPER — Parses CSV exports into []templates.Template
// ============================================================================
// Consumer reads the CSV from wherever it lives (file, stdin, an upload).
// Header names are matched case-insensitively; "Author" and "author_text"
// both land on AuthorText. Unknown columns are skipped.
// ============================================================================

var csvColumns = map[string]func(*templates.Template, string){
	"id":          func(t *templates.Template, v string) { t.ID = v },
	"type":        func(t *templates.Template, v string) { t.Type = v },
	"slug":        func(t *templates.Template, v string) { t.Slug = v },
	"title":       func(t *templates.Template, v string) { t.Title.Rendered = v },
	"title_raw":   func(t *templates.Template, v string) { t.Title.Raw = v },
	"description": func(t *templates.Template, v string) { t.Description = v },
	"author":      func(t *templates.Template, v string) { t.AuthorText = v },
	"author_text": func(t *templates.Template, v string) { t.AuthorText = v },
	"content":     func(t *templates.Template, v string) { t.Content.Raw = v },
}

// ParseCSV parses CSV bytes with a header row into templates. Rows without a
// slug get one derived from the title; rows without an id use the slug.
func ParseCSV(data []byte) ([]templates.Template, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	setters := make([]func(*templates.Template, string), len(headers))
	for i, h := range headers {
		setters[i] = csvColumns[toSnakeCase(strings.TrimSpace(h))]
	}

	var records []templates.Template
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}

		var t templates.Template
		for i, val := range row {
			if i >= len(setters) {
				break
			}
			if set := setters[i]; set != nil {
				set(&t, strings.TrimSpace(val))
			}
		}
		fillIdentity(&t)
		records = append(records, t)
	}

	return records, nil
}

// fillIdentity derives a missing slug from the title and a missing id from
// the slug, and defaults the entity type.
func fillIdentity(t *templates.Template) {
	if t.Slug == "" && t.Title.Rendered != "" {
		t.Slug = slug.Make(t.Title.Rendered)
	}
	if t.ID == "" {
		t.ID = t.Slug
	}
	if t.Type == "" {
		t.Type = templates.PostType
	}
}

// toSnakeCase converts "Author Text" → "author_text".
func toSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
