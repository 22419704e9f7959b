// Package editor holds the in-memory state of a post editor session: the
// editing mode, sidebars, feature toggles, list view and the block tree with
// its selection. Store satisfies the store interfaces the shortcut handlers
// depend on.
package editor

import (
	"sync"

	"github.com/spektr-org/dataviews/blocks"
	"github.com/spektr-org/dataviews/shortcuts"
)

var (
	_ shortcuts.EditPostStore    = (*Store)(nil)
	_ shortcuts.EditorStore      = (*Store)(nil)
	_ shortcuts.BlockEditorStore = (*Store)(nil)
)

// Store is a mutex-guarded editor state.
type Store struct {
	mu sync.RWMutex

	mode            string
	settings        shortcuts.EditorSettings
	sidebar         string
	features        map[string]bool
	distractionFree bool
	listView        bool

	blocks   []blocks.Block
	selected string
}

// Option configures a Store.
type Option func(*Store)

// WithSettings sets the editing capabilities. Both are enabled by default.
func WithSettings(s shortcuts.EditorSettings) Option {
	return func(st *Store) { st.settings = s }
}

// WithBlocks seeds the block tree.
func WithBlocks(list ...blocks.Block) Option {
	return func(st *Store) { st.blocks = append([]blocks.Block(nil), list...) }
}

// NewStore creates a store in visual mode with every sidebar closed.
func NewStore(opts ...Option) *Store {
	st := &Store{
		mode:     shortcuts.ModeVisual,
		settings: shortcuts.EditorSettings{RichEditingEnabled: true, CodeEditingEnabled: true},
		features: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// ── Edit post ──

func (s *Store) EditorMode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *Store) SwitchEditorMode(mode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

func (s *Store) IsEditorSidebarOpened() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebar != ""
}

// ActiveSidebar returns the open general sidebar, or "" when closed.
func (s *Store) ActiveSidebar() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebar
}

func (s *Store) OpenGeneralSidebar(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebar = name
}

func (s *Store) CloseGeneralSidebar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebar = ""
}

func (s *Store) ToggleFeature(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.features[name] = !s.features[name]
}

// IsFeatureActive reports whether a feature toggle is on.
func (s *Store) IsFeatureActive(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.features[name]
}

func (s *Store) ToggleDistractionFree() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.distractionFree = !s.distractionFree
}

// IsDistractionFree reports whether distraction free mode is on.
func (s *Store) IsDistractionFree() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.distractionFree
}

// ── Editor ──

func (s *Store) EditorSettings() shortcuts.EditorSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *Store) IsListViewOpened() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listView
}

func (s *Store) SetIsListViewOpened(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listView = open
}

// ── Block editor ──

// Blocks returns a deep copy of the block tree.
func (s *Store) Blocks() []blocks.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return blocks.Clone(s.blocks)
}

// SelectBlock selects a block by client id. Unknown ids clear the selection.
func (s *Store) SelectBlock(clientID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := find(s.blocks, clientID); !ok {
		s.selected = ""
		return false
	}
	s.selected = clientID
	return true
}

// ClearSelection deselects every block.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
}

func (s *Store) SelectedBlockClientID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected, s.selected != ""
}

func (s *Store) BlockSelectionStart() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

func (s *Store) BlockName(clientID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, _ := find(s.blocks, clientID)
	return b.Name
}

// BlockAttributes returns a copy of the block's attributes, nil when unknown.
// A content attribute missing from the delimiter is sourced from the inner
// HTML of the block's wrapper element.
func (s *Store) BlockAttributes(clientID string) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := find(s.blocks, clientID)
	if !ok {
		return nil
	}
	out := make(map[string]any, len(b.Attributes)+1)
	for k, v := range b.Attributes {
		out[k] = v
	}
	if _, ok := out["content"]; !ok && b.InnerHTML != "" {
		out["content"] = b.WrapperContent()
	}
	return out
}

// ReplaceBlocks swaps the block with the replacement list. When the replaced
// block was selected, the selection moves to the last replacement.
func (s *Store) ReplaceBlocks(clientID string, replacement ...blocks.Block) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	s.blocks, ok = replace(s.blocks, clientID, replacement)
	if !ok || s.selected != clientID {
		return
	}
	s.selected = ""
	if n := len(replacement); n > 0 {
		s.selected = replacement[n-1].ClientID
	}
}

func find(list []blocks.Block, clientID string) (blocks.Block, bool) {
	for _, b := range list {
		if b.ClientID == clientID {
			return b, true
		}
		if inner, ok := find(b.InnerBlocks, clientID); ok {
			return inner, true
		}
	}
	return blocks.Block{}, false
}

func replace(list []blocks.Block, clientID string, with []blocks.Block) ([]blocks.Block, bool) {
	for i, b := range list {
		if b.ClientID == clientID {
			out := make([]blocks.Block, 0, len(list)-1+len(with))
			out = append(out, list[:i]...)
			out = append(out, with...)
			return append(out, list[i+1:]...), true
		}
		if inner, ok := replace(b.InnerBlocks, clientID, with); ok {
			out := append([]blocks.Block(nil), list...)
			out[i].InnerBlocks = inner
			return out, true
		}
	}
	return list, false
}
