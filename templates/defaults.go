package templates

import (
	"github.com/spektr-org/dataviews/engine"
)

// LayoutDefaults is the layout a view switches to when its type changes.
var LayoutDefaults = engine.LayoutDefaults{
	engine.ViewTable: {},
	engine.ViewGrid: {
		engine.LayoutMediaField:   FieldPreview,
		engine.LayoutPrimaryField: FieldTitle,
	},
	engine.ViewList: {
		engine.LayoutPrimaryField: FieldTitle,
		engine.LayoutMediaField:   FieldPreview,
	},
}

// DefaultPerPage is the page size of the initial view.
const DefaultPerPage = 20

// DefaultView is the initial view of the templates page.
func DefaultView() engine.ViewConfig {
	return engine.ViewConfig{
		Type:         engine.ViewTable,
		Search:       "",
		Page:         1,
		PerPage:      DefaultPerPage,
		HiddenFields: []string{FieldPreview},
		Layout:       engine.Layout{},
		Filters:      []engine.Filter{},
	}
}
