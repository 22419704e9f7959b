package templates

import (
	"sync"

	"golang.org/x/text/language"

	"github.com/spektr-org/dataviews/engine"
	"github.com/spektr-org/dataviews/internal/logger"
	"github.com/spektr-org/dataviews/preview"
	"github.com/spektr-org/dataviews/schema"
)

const (
	listViewClassName  = "edit-site-template-pages-list-view"
	previewPlaceholder = "Select a template to preview"
)

// Page holds the state of the templates page: the fetched records, the
// current view and the selected template. It is safe for concurrent use so
// that a record source may reload while the view is being changed.
type Page struct {
	mu       sync.RWMutex
	records  []Template
	loaded   bool
	view     engine.ViewConfig
	selected string

	reducer  *engine.Reducer
	renderer *preview.Renderer
	locale   language.Tag
	log      logger.Logger
}

// PageOption configures a Page.
type PageOption func(*Page)

// WithView sets the initial view instead of DefaultView.
func WithView(view engine.ViewConfig) PageOption {
	return func(p *Page) { p.view = view.Clone() }
}

// WithLocale sets the collation locale used when sorting.
func WithLocale(tag language.Tag) PageOption {
	return func(p *Page) { p.locale = tag }
}

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(l logger.Logger) PageOption {
	return func(p *Page) {
		if l != nil {
			p.log = l
		}
	}
}

// WithRenderer sets the preview renderer.
func WithRenderer(r *preview.Renderer) PageOption {
	return func(p *Page) { p.renderer = r }
}

// NewPage creates a page with the default view and no records loaded.
func NewPage(opts ...PageOption) *Page {
	p := &Page{
		view:    DefaultView(),
		reducer: engine.NewReducer(LayoutDefaults),
		locale:  language.English,
		log:     logger.GetDefault(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetRecords replaces the fetched records. The view is left untouched.
func (p *Page) SetRecords(records []Template) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = append([]Template(nil), records...)
	p.loaded = true
	p.log.Debug("templates loaded", "count", len(records))
}

// IsLoading reports whether records have not been fetched yet.
func (p *Page) IsLoading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.loaded
}

// View returns a copy of the current view.
func (p *Page) View() engine.ViewConfig {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.view.Clone()
}

// OnChangeView applies a view update and returns the new view.
func (p *Page) OnChangeView(u engine.Update) engine.ViewConfig {
	p.mu.Lock()
	defer p.mu.Unlock()
	prev := p.view
	p.view = p.reducer.Reduce(prev, u)
	if prev.Type != p.view.Type {
		p.log.Debug("view type changed", "from", prev.Type, "to", p.view.Type, "layout", p.view.Layout)
	}
	return p.view.Clone()
}

// OnSelectionChange selects a template when exactly one id is selected and
// clears the selection otherwise.
func (p *Page) OnSelectionChange(ids []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(ids) == 1 {
		p.selected = ids[0]
		return
	}
	p.selected = ""
}

// SelectedID returns the selected template id, if any.
func (p *Page) SelectedID() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.selected, p.selected != ""
}

// Fields returns the field registry bound to the page's renderer.
func (p *Page) Fields() *engine.Fields[Template] {
	return Fields(p.renderer)
}

// Authors returns the author facets of all fetched records.
func (p *Page) Authors() []engine.Element {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.loaded {
		return []engine.Element{}
	}
	return Authors(p.records)
}

// Schema returns the column metadata with the current author facets.
func (p *Page) Schema() schema.Config {
	return Schema(p.Authors())
}

// Result runs the current view over the fetched records. Before records are
// loaded it returns an empty page with zero totals.
func (p *Page) Result() engine.QueryResult[Template] {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.resultLocked()
}

func (p *Page) resultLocked() engine.QueryResult[Template] {
	if !p.loaded {
		return engine.QueryResult[Template]{Items: []Template{}}
	}
	return engine.Execute(p.records, p.view, Fields(p.renderer),
		engine.WithLocale(p.locale),
		engine.WithLogger(p.log),
	)
}

// Table renders the current page as table data.
func (p *Page) Table() *engine.TableData {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return engine.BuildTable(p.resultLocked(), p.view, Fields(p.renderer))
}

// Cards renders the current page as grid or list cards.
func (p *Page) Cards() []engine.Card {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return engine.BuildCards(p.resultLocked(), p.view, Fields(p.renderer), func(t Template) string { return t.ID })
}

// DeferredRendering reports whether previews are visible and so worth
// rendering lazily.
func (p *Page) DeferredRendering() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.view.IsHidden(FieldPreview)
}

// ClassName is the page class for the current view type.
func (p *Page) ClassName() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.view.Type == engine.ViewList {
		return listViewClassName
	}
	return ""
}

// ListPreview is the side panel shown next to the list view.
type ListPreview struct {
	TemplateID  string           `json:"templateId,omitempty"`
	Preview     *preview.Preview `json:"preview,omitempty"`
	Placeholder string           `json:"placeholder,omitempty"`
}

// ListPreview returns the side panel for the list view. It reports false for
// other view types.
func (p *Page) ListPreview() (ListPreview, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.view.Type != engine.ViewList {
		return ListPreview{}, false
	}
	if p.selected == "" {
		return ListPreview{Placeholder: previewPlaceholder}, true
	}
	panel := ListPreview{TemplateID: p.selected}
	if p.renderer == nil {
		return panel, true
	}
	for _, t := range p.records {
		if t.ID != p.selected {
			continue
		}
		if pv, ok := p.renderer.Render(t.Content.Raw, string(p.view.Type)); ok {
			panel.Preview = &pv
		}
		break
	}
	return panel, true
}
