package schema

import (
	"github.com/spektr-org/dataviews/engine"
)

// ============================================================================
// SCHEMA — Describes the columns of a data view
// ============================================================================
// The engine reads records through accessor functions; the schema carries the
// presentation metadata that goes with each column (header, widths, whether
// the user may sort or hide it, enumeration elements for filter menus).
// ============================================================================

// FieldType tells the UI how to offer filters for a field.
type FieldType string

const (
	TypeText        FieldType = "text"
	TypeEnumeration FieldType = "enumeration"
)

// Config describes a complete data view: its fields and default state.
type Config struct {
	Name        string            `json:"name" yaml:"name"`
	Fields      []FieldMeta       `json:"fields" yaml:"fields"`
	DefaultView engine.ViewConfig `json:"defaultView" yaml:"defaultView"`
}

// FieldMeta describes one column.
type FieldMeta struct {
	ID            string           `json:"id" yaml:"id"`
	Header        string           `json:"header" yaml:"header"`
	Type          FieldType        `json:"type,omitempty" yaml:"type,omitempty"`
	Elements      []engine.Element `json:"elements,omitempty" yaml:"elements,omitempty"`
	MinWidth      int              `json:"minWidth,omitempty" yaml:"minWidth,omitempty"`
	MaxWidth      int              `json:"maxWidth,omitempty" yaml:"maxWidth,omitempty"`
	EnableSorting bool             `json:"enableSorting" yaml:"enableSorting"`
	EnableHiding  bool             `json:"enableHiding" yaml:"enableHiding"`
}

// DefaultField creates a FieldMeta with sorting and hiding enabled.
func DefaultField(id, header string) FieldMeta {
	return FieldMeta{
		ID:            id,
		Header:        header,
		Type:          TypeText,
		EnableSorting: true,
		EnableHiding:  true,
	}
}

// Field looks up a field by id.
func (c Config) Field(id string) (FieldMeta, bool) {
	for _, f := range c.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return FieldMeta{}, false
}

// FieldIDs returns all field ids in declaration order.
func (c Config) FieldIDs() []string {
	ids := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		ids[i] = f.ID
	}
	return ids
}

// SortableIDs returns the ids of fields that can be sorted on.
func (c Config) SortableIDs() []string {
	var ids []string
	for _, f := range c.Fields {
		if f.EnableSorting {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// UnknownReferences lists field ids the view refers to (hidden fields,
// filters, sort) that the schema does not declare, or a sort on a field that
// cannot be sorted. The engine ignores such references; callers may want to
// surface them.
func (c Config) UnknownReferences(view engine.ViewConfig) []string {
	var out []string
	seen := make(map[string]bool)
	note := func(id string) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range view.HiddenFields {
		if _, ok := c.Field(id); !ok {
			note(id)
		}
	}
	for _, f := range view.Filters {
		if _, ok := c.Field(f.Field); !ok {
			note(f.Field)
		}
	}
	if view.Sort != nil {
		if f, ok := c.Field(view.Sort.Field); !ok || !f.EnableSorting {
			note(view.Sort.Field)
		}
	}
	return out
}
