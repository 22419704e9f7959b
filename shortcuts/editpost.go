package shortcuts

import (
	"fmt"

	"github.com/spektr-org/dataviews/blocks"
)

// ============================================================================
// EDIT-POST SHORTCUTS — Registration table + handlers for the post editor
// ============================================================================

const (
	CategoryGlobal       = "global"
	CategoryMain         = "main"
	CategoryBlockLibrary = "block-library"
)

const (
	ToggleMode                  = "core/edit-post/toggle-mode"
	ToggleDistractionFree       = "core/edit-post/toggle-distraction-free"
	ToggleFullscreen            = "core/edit-post/toggle-fullscreen"
	ToggleListView              = "core/edit-post/toggle-list-view"
	ToggleSidebar               = "core/edit-post/toggle-sidebar"
	NextRegion                  = "core/edit-post/next-region"
	PreviousRegion              = "core/edit-post/previous-region"
	KeyboardShortcuts           = "core/edit-post/keyboard-shortcuts"
	TransformHeadingToParagraph = "core/edit-post/transform-heading-to-paragraph"
)

// Editor modes and sidebars.
const (
	ModeVisual = "visual"
	ModeText   = "text"

	SidebarBlock    = "edit-post/block"
	SidebarDocument = "edit-post/document"

	FeatureFullscreen = "fullscreenMode"
)

// MaxHeadingLevel is the deepest heading a paragraph can be turned into.
const MaxHeadingLevel = 6

// TransformParagraphToHeading returns the shortcut name for a heading level.
func TransformParagraphToHeading(level int) string {
	return fmt.Sprintf("core/edit-post/transform-paragraph-to-heading-%d", level)
}

// ── Stores ──

// EditorSettings are the editing capabilities of the current post.
type EditorSettings struct {
	RichEditingEnabled bool
	CodeEditingEnabled bool
}

// EditPostStore is the post editor UI state.
type EditPostStore interface {
	EditorMode() string
	SwitchEditorMode(mode string)
	IsEditorSidebarOpened() bool
	OpenGeneralSidebar(name string)
	CloseGeneralSidebar()
	ToggleFeature(name string)
	ToggleDistractionFree()
}

// EditorStore is the editor settings and list view state.
type EditorStore interface {
	EditorSettings() EditorSettings
	IsListViewOpened() bool
	SetIsListViewOpened(open bool)
}

// BlockEditorStore exposes the block tree and selection.
type BlockEditorStore interface {
	SelectedBlockClientID() (string, bool)
	BlockName(clientID string) string
	BlockAttributes(clientID string) map[string]any
	BlockSelectionStart() string
	ReplaceBlocks(clientID string, replacement ...blocks.Block)
}

// Stores groups the stores the edit-post handlers read and write.
type Stores struct {
	EditPost    EditPostStore
	Editor      EditorStore
	BlockEditor BlockEditorStore
}

// EditPostShortcuts returns the shortcut table of the post editor.
func EditPostShortcuts() []Shortcut {
	table := []Shortcut{
		{
			Name:           ToggleMode,
			Category:       CategoryGlobal,
			Description:    "Switch between visual editor and code editor.",
			KeyCombination: KeyCombination{Modifier: ModSecondary, Character: "m"},
		},
		{
			Name:           ToggleDistractionFree,
			Category:       CategoryGlobal,
			Description:    "Toggle distraction free mode.",
			KeyCombination: KeyCombination{Modifier: ModPrimaryShift, Character: `\`},
		},
		{
			Name:           ToggleFullscreen,
			Category:       CategoryGlobal,
			Description:    "Toggle fullscreen mode.",
			KeyCombination: KeyCombination{Modifier: ModSecondary, Character: "f"},
		},
		{
			Name:           ToggleListView,
			Category:       CategoryGlobal,
			Description:    "Open the block list view.",
			KeyCombination: KeyCombination{Modifier: ModAccess, Character: "o"},
		},
		{
			Name:           ToggleSidebar,
			Category:       CategoryGlobal,
			Description:    "Show or hide the Settings sidebar.",
			KeyCombination: KeyCombination{Modifier: ModPrimaryShift, Character: ","},
		},
		{
			Name:           NextRegion,
			Category:       CategoryGlobal,
			Description:    "Navigate to the next part of the editor.",
			KeyCombination: KeyCombination{Modifier: ModCtrl, Character: "`"},
			Aliases: []KeyCombination{
				{Modifier: ModAccess, Character: "n"},
			},
		},
		{
			Name:           PreviousRegion,
			Category:       CategoryGlobal,
			Description:    "Navigate to the previous part of the editor.",
			KeyCombination: KeyCombination{Modifier: ModCtrlShift, Character: "`"},
			Aliases: []KeyCombination{
				{Modifier: ModAccess, Character: "p"},
				{Modifier: ModCtrlShift, Character: "~"},
			},
		},
		{
			Name:           KeyboardShortcuts,
			Category:       CategoryMain,
			Description:    "Display these keyboard shortcuts.",
			KeyCombination: KeyCombination{Modifier: ModAccess, Character: "h"},
		},
		{
			Name:           TransformHeadingToParagraph,
			Category:       CategoryBlockLibrary,
			Description:    "Transform heading to paragraph.",
			KeyCombination: KeyCombination{Modifier: ModAccess, Character: "0"},
		},
	}
	for level := 1; level <= MaxHeadingLevel; level++ {
		table = append(table, Shortcut{
			Name:           TransformParagraphToHeading(level),
			Category:       CategoryBlockLibrary,
			Description:    "Transform paragraph to heading.",
			KeyCombination: KeyCombination{Modifier: ModAccess, Character: fmt.Sprint(level)},
		})
	}
	return table
}

// RegisterEditPostShortcuts registers the post editor shortcut table.
func RegisterEditPostShortcuts(reg *Registry) error {
	for _, s := range EditPostShortcuts() {
		if err := reg.Register(s); err != nil {
			return fmt.Errorf("register %s: %w", s.Name, err)
		}
	}
	return nil
}

// BindEditPostHandlers subscribes the post editor handlers. The returned
// function releases every subscription.
func BindEditPostHandlers(reg *Registry, st Stores) func() {
	var releases []func()
	use := func(name string, h Handler, opts ...UseOption) {
		releases = append(releases, reg.Use(name, h, opts...))
	}

	use(ToggleMode, func(*Event) {
		next := ModeVisual
		if st.EditPost.EditorMode() == ModeVisual {
			next = ModeText
		}
		st.EditPost.SwitchEditorMode(next)
	}, WithDisabled(func() bool {
		s := st.Editor.EditorSettings()
		return !s.RichEditingEnabled || !s.CodeEditingEnabled
	}))

	use(ToggleFullscreen, func(*Event) {
		st.EditPost.ToggleFeature(FeatureFullscreen)
	})

	use(ToggleDistractionFree, func(*Event) {
		st.EditPost.ToggleDistractionFree()
	})

	use(ToggleSidebar, func(e *Event) {
		e.PreventDefault()
		if st.EditPost.IsEditorSidebarOpened() {
			st.EditPost.CloseGeneralSidebar()
			return
		}
		sidebar := SidebarDocument
		if st.BlockEditor.BlockSelectionStart() != "" {
			sidebar = SidebarBlock
		}
		st.EditPost.OpenGeneralSidebar(sidebar)
	})

	// Only opens; closing is handled by the list view itself.
	use(ToggleListView, func(e *Event) {
		if !st.Editor.IsListViewOpened() {
			e.PreventDefault()
			st.Editor.SetIsListViewOpened(true)
		}
	})

	use(TransformHeadingToParagraph, func(e *Event) {
		transformTextLevel(e, st.BlockEditor, 0)
	})
	for level := 1; level <= MaxHeadingLevel; level++ {
		use(TransformParagraphToHeading(level), func(e *Event) {
			transformTextLevel(e, st.BlockEditor, level)
		})
	}

	return func() {
		for _, release := range releases {
			release()
		}
	}
}

// transformTextLevel turns the selected paragraph or heading into a paragraph
// (level 0) or a heading of the given level.
func transformTextLevel(e *Event, be BlockEditorStore, level int) {
	e.PreventDefault()

	clientID, ok := be.SelectedBlockClientID()
	if !ok {
		return
	}
	name := be.BlockName(clientID)
	if name != blocks.Paragraph && name != blocks.Heading {
		return
	}
	attrs := be.BlockAttributes(clientID)

	dest := blocks.Heading
	if level == 0 {
		dest = blocks.Paragraph
	}
	next := map[string]any{"content": attrs["content"]}
	if align, ok := attrs[alignAttr(name)]; ok {
		next[alignAttr(dest)] = align
	}
	if dest == blocks.Heading {
		next["level"] = level
	}
	be.ReplaceBlocks(clientID, blocks.CreateBlock(dest, next))
}

func alignAttr(blockName string) string {
	if blockName == blocks.Paragraph {
		return "align"
	}
	return "textAlign"
}
