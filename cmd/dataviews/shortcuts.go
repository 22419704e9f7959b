package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/spektr-org/dataviews/blocks"
	"github.com/spektr-org/dataviews/editor"
	"github.com/spektr-org/dataviews/shortcuts"
)

func newShortcutsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shortcuts",
		Short: "Inspect and exercise the post editor keyboard shortcuts",
	}
	cmd.AddCommand(newShortcutsListCmd(), newShortcutsPressCmd(a))
	return cmd
}

func newRegistry(apple bool) (*shortcuts.Registry, error) {
	platform := shortcuts.PlatformOther
	if apple {
		platform = shortcuts.PlatformApple
	}
	reg := shortcuts.NewRegistry(shortcuts.WithPlatform(platform))
	if err := shortcuts.RegisterEditPostShortcuts(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func newShortcutsListCmd() *cobra.Command {
	var category string
	var apple bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the registered shortcuts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := newRegistry(apple)
			if err != nil {
				return err
			}
			list := reg.Shortcuts()
			if category != "" {
				list = reg.ByCategory(category)
			}

			rows := make([][]string, 0, len(list))
			for _, s := range list {
				b, _ := reg.Binding(s.Name)
				keys := []string{b.Help().Key}
				for _, alias := range s.Aliases {
					keys = append(keys, shortcuts.Display(alias, reg.Platform()))
				}
				rows = append(rows, []string{s.Name, s.Category, strings.Join(keys, ", "), b.Help().Desc})
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(borderStyle).
				StyleFunc(func(row, _ int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return cellStyle
				}).
				Headers("Name", "Category", "Keys", "Description").
				Rows(rows...)
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Only list one category (global, main, block-library)")
	cmd.Flags().BoolVar(&apple, "apple", false, "Use the Apple modifier layout")
	return cmd
}

func newShortcutsPressCmd(a *app) *cobra.Command {
	var apple bool
	var content string
	cmd := &cobra.Command{
		Use:   "press <keys>...",
		Short: "Dispatch keystrokes against an in-memory editor and print its state",
		Example: `  dataviews shortcuts press "ctrl+alt+shift+m"
  dataviews shortcuts press --content '<!-- wp:paragraph --><p>Hi</p><!-- /wp:paragraph -->' "shift+alt+2"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := newRegistry(apple)
			if err != nil {
				return err
			}

			parsed := blocks.Parse(content)
			st := editor.NewStore(editor.WithBlocks(parsed...))
			if len(parsed) > 0 {
				st.SelectBlock(parsed[0].ClientID)
			}
			release := shortcuts.BindEditPostHandlers(reg, shortcuts.Stores{EditPost: st, Editor: st, BlockEditor: st})
			defer release()

			out := cmd.OutOrStdout()
			for _, keys := range args {
				ev, handled := reg.Dispatch(keys)
				a.log.Debug("Dispatched keystroke", "keys", ev.Keystroke, "handled", handled)
				fmt.Fprintf(out, "%s handled=%t prevented=%t\n", ev.Keystroke, handled, ev.DefaultPrevented())
			}
			printEditorState(out, st)
			return nil
		},
	}
	cmd.Flags().BoolVar(&apple, "apple", false, "Use the Apple modifier layout")
	cmd.Flags().StringVar(&content, "content", "", "Block markup loaded into the editor; the first block is selected")
	return cmd
}

func printEditorState(w io.Writer, st *editor.Store) {
	sidebar := st.ActiveSidebar()
	if sidebar == "" {
		sidebar = "closed"
	}
	fmt.Fprintf(w, "mode: %s\n", st.EditorMode())
	fmt.Fprintf(w, "sidebar: %s\n", sidebar)
	fmt.Fprintf(w, "list view: %t\n", st.IsListViewOpened())
	fmt.Fprintf(w, "fullscreen: %t\n", st.IsFeatureActive(shortcuts.FeatureFullscreen))
	fmt.Fprintf(w, "distraction free: %t\n", st.IsDistractionFree())

	blocks.Walk(st.Blocks(), func(b blocks.Block, depth int) {
		keys := make([]string, 0, len(b.Attributes))
		for k := range b.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		attrs := make([]string, 0, len(keys))
		for _, k := range keys {
			attrs = append(attrs, fmt.Sprintf("%s=%v", k, b.Attributes[k]))
		}
		fmt.Fprintf(w, "%s%s {%s}\n", strings.Repeat("  ", depth), b.Name, strings.Join(attrs, " "))
	})
}
