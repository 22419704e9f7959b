package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spektr-org/dataviews/engine"
	"github.com/spektr-org/dataviews/preview"
	"github.com/spektr-org/dataviews/schema"
	"github.com/spektr-org/dataviews/source"
	"github.com/spektr-org/dataviews/templates"
)

var errNoSource = errors.New("no record source: pass --file or --url, or set DATAVIEWS_SOURCE_FILE / DATAVIEWS_SOURCE_URL")

// sourceFlags select where records come from.
type sourceFlags struct {
	file string
	url  string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "file", "", "Path to a JSON or CSV template export")
	cmd.Flags().StringVar(&f.url, "url", "", "REST API root, e.g. https://example.com/wp-json")
}

// viewFlags are the view overrides of templates list.
type viewFlags struct {
	search   string
	filters  []string
	sort     string
	page     int
	perPage  int
	typ      string
	hide     []string
	preset   string
	selectID string
	format   string
	watch    bool
}

func newTemplatesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List, facet and preview templates",
	}
	cmd.AddCommand(newTemplatesListCmd(a), newTemplatesAuthorsCmd(a), newTemplatesPreviewCmd(a))
	return cmd
}

func newTemplatesListCmd(a *app) *cobra.Command {
	var src sourceFlags
	var vf viewFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Search, filter, sort and paginate templates",
		Example: `  dataviews templates list --file templates.json --search single
  dataviews templates list --file templates.csv --filter author:notIn:Jane --sort title:desc
  dataviews templates list --url https://example.com/wp-json --type list --select tt4//single`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseFormat(vf.format)
			if err != nil {
				return err
			}
			page, err := a.newPage()
			if err != nil {
				return err
			}
			if err := applyViewFlags(cmd, a, page, vf); err != nil {
				return err
			}

			s, err := a.source(src)
			if err != nil {
				return err
			}
			if err := load(cmd.Context(), page, s); err != nil {
				return err
			}
			if vf.selectID != "" {
				page.OnSelectionChange([]string{vf.selectID})
			}
			if err := renderPage(cmd.OutOrStdout(), page, format); err != nil {
				return err
			}

			if !vf.watch {
				return nil
			}
			fs, ok := s.(*source.FileSource)
			if !ok {
				return errors.New("--watch needs a --file source")
			}
			a.log.Info("Watching for changes", "path", fs.Path)
			return source.Watch(cmd.Context(), fs, func(records []templates.Template, err error) {
				if err != nil {
					a.log.Warn("Reload failed", "error", err)
					return
				}
				page.SetRecords(records)
				if err := renderPage(cmd.OutOrStdout(), page, format); err != nil {
					a.log.Error("Render failed", "error", err)
				}
			})
		},
	}

	src.register(cmd)
	f := cmd.Flags()
	f.StringVar(&vf.search, "search", "", "Accent-insensitive search over title and description")
	f.StringArrayVar(&vf.filters, "filter", nil, "Filter as field:operator:value (operator in|notIn), repeatable")
	f.StringVar(&vf.sort, "sort", "", "Sort as field[:asc|desc]")
	f.IntVar(&vf.page, "page", 0, "Page number (1-based)")
	f.IntVar(&vf.perPage, "per-page", 0, "Items per page (default from config)")
	f.StringVar(&vf.typ, "type", "", "View type: table, grid or list")
	f.StringSliceVar(&vf.hide, "hide", nil, "Field ids to hide (replaces the default hidden set)")
	f.StringVar(&vf.preset, "preset", "", "YAML view preset applied before the flags (default view.preset)")
	f.StringVar(&vf.selectID, "select", "", "Template id to preview in list view")
	f.StringVar(&vf.format, "format", string(formatTable), "Output format: table, json, yaml or csv")
	f.BoolVar(&vf.watch, "watch", false, "Re-render whenever the --file export changes")
	return cmd
}

func newTemplatesAuthorsCmd(a *app) *cobra.Command {
	var src sourceFlags
	cmd := &cobra.Command{
		Use:   "authors",
		Short: "List the distinct template authors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := a.newPage()
			if err != nil {
				return err
			}
			s, err := a.source(src)
			if err != nil {
				return err
			}
			if err := load(cmd.Context(), page, s); err != nil {
				return err
			}
			for _, el := range page.Authors() {
				fmt.Fprintln(cmd.OutOrStdout(), el.Label)
			}
			return nil
		},
	}
	src.register(cmd)
	return cmd
}

func newTemplatesPreviewCmd(a *app) *cobra.Command {
	var src sourceFlags
	var viewType string
	cmd := &cobra.Command{
		Use:   "preview <id>",
		Short: "Print the block outline of one template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.source(src)
			if err != nil {
				return err
			}
			records, err := s.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			renderer, err := a.renderer()
			if err != nil {
				return err
			}
			for _, t := range records {
				if t.ID != args[0] {
					continue
				}
				pv, ok := renderer.Render(t.Content.Raw, viewType)
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "(empty)")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), templates.DisplayTitle(t))
				fmt.Fprintln(cmd.OutOrStdout(), pv.String())
				return nil
			}
			return fmt.Errorf("template %q not found", args[0])
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&viewType, "type", string(engine.ViewList), "View type used for the preview class")
	return cmd
}

// ── Wiring ──

func (a *app) renderer() (*preview.Renderer, error) {
	return preview.NewRenderer(a.cfg.Preview.CacheSize, preview.WithBackground(a.cfg.Preview.Background))
}

func (a *app) newPage() (*templates.Page, error) {
	renderer, err := a.renderer()
	if err != nil {
		return nil, err
	}
	view := templates.DefaultView()
	view.PerPage = a.cfg.View.PerPage
	return templates.NewPage(
		templates.WithView(view),
		templates.WithRenderer(renderer),
		templates.WithLocale(a.cfg.LanguageTag()),
		templates.WithLogger(a.log),
	), nil
}

func (a *app) source(f sourceFlags) (source.Source, error) {
	file, url := f.file, f.url
	if file == "" && url == "" {
		file, url = a.cfg.Source.File, a.cfg.Source.URL
	}
	switch {
	case file != "":
		return source.NewFileSource(file)
	case url != "":
		opts := []source.RESTOption{
			source.WithRetries(a.cfg.Source.Retries),
			source.WithTimeout(a.cfg.Source.Timeout),
		}
		if a.cfg.Source.User != "" {
			opts = append(opts, source.WithBasicAuth(a.cfg.Source.User, a.cfg.Source.Password))
		}
		return source.NewRESTSource(url, opts...), nil
	default:
		return nil, errNoSource
	}
}

func load(ctx context.Context, page *templates.Page, s source.Source) error {
	records, err := s.Fetch(ctx)
	if err != nil {
		return err
	}
	page.SetRecords(records)
	return nil
}

// applyViewFlags overlays the preset and then the flags onto the page view.
// Without --preset the configured view.preset is used.
func applyViewFlags(cmd *cobra.Command, a *app, page *templates.Page, vf viewFlags) error {
	preset := vf.preset
	if preset == "" {
		preset = a.cfg.View.Preset
	}
	if preset != "" {
		data, err := os.ReadFile(preset)
		if err != nil {
			return fmt.Errorf("failed to read preset: %w", err)
		}
		view, err := schema.LoadViewPreset(data, page.View())
		if err != nil {
			return fmt.Errorf("preset %s: %w", preset, err)
		}
		page.OnChangeView(engine.Replace(view))
	}

	filters := make([]engine.Filter, 0, len(vf.filters))
	for _, raw := range vf.filters {
		f, err := parseFilter(raw)
		if err != nil {
			return err
		}
		filters = append(filters, f)
	}
	var sort *engine.Sort
	if vf.sort != "" {
		s, err := parseSort(vf.sort)
		if err != nil {
			return err
		}
		sort = &s
	}

	flags := cmd.Flags()
	view := page.OnChangeView(engine.Derive(func(v engine.ViewConfig) engine.ViewConfig {
		if flags.Changed("type") {
			v.Type = engine.ViewType(vf.typ)
		}
		if flags.Changed("search") {
			v.Search = vf.search
		}
		if flags.Changed("page") {
			v.Page = vf.page
		}
		if flags.Changed("per-page") {
			v.PerPage = vf.perPage
		}
		if flags.Changed("hide") {
			v.HiddenFields = vf.hide
		}
		if len(filters) > 0 {
			v.Filters = append(v.Filters, filters...)
		}
		if sort != nil {
			v.Sort = sort
		}
		return v
	}))

	if err := schema.Validate(view); err != nil {
		return err
	}
	for _, ref := range page.Schema().UnknownReferences(view) {
		a.log.Warn("View reference ignored", "reference", ref)
	}
	return nil
}

// parseFilter reads "field:operator:value"; the value may contain colons.
func parseFilter(raw string) (engine.Filter, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) != 3 || parts[0] == "" {
		return engine.Filter{}, fmt.Errorf("invalid filter %q: want field:operator:value", raw)
	}
	return engine.Filter{Field: parts[0], Operator: engine.Operator(parts[1]), Value: parts[2]}, nil
}

// parseSort reads "field" or "field:direction".
func parseSort(raw string) (engine.Sort, error) {
	field, dir, found := strings.Cut(raw, ":")
	if field == "" {
		return engine.Sort{}, fmt.Errorf("invalid sort %q: want field[:asc|desc]", raw)
	}
	s := engine.Sort{Field: field, Direction: engine.SortAsc}
	if found {
		s.Direction = engine.Direction(dir)
	}
	return s, nil
}
