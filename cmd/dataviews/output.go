package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"

	"github.com/spektr-org/dataviews/engine"
	"github.com/spektr-org/dataviews/templates"
)

type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
	formatCSV   outputFormat = "csv"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(s)); f {
	case formatTable, formatJSON, formatYAML, formatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q: want table, json, yaml or csv", s)
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

// pageOutput is the machine-readable rendering of a page.
type pageOutput struct {
	View        engine.ViewConfig      `json:"view" yaml:"view"`
	Pagination  engine.PaginationInfo  `json:"pagination" yaml:"pagination"`
	Table       *engine.TableData      `json:"table,omitempty" yaml:"table,omitempty"`
	Cards       []engine.Card          `json:"cards,omitempty" yaml:"cards,omitempty"`
	ListPreview *templates.ListPreview `json:"listPreview,omitempty" yaml:"listPreview,omitempty"`
}

func renderPage(w io.Writer, page *templates.Page, format outputFormat) error {
	view := page.View()

	switch format {
	case formatCSV:
		return writeTableCSV(w, page.Table())
	case formatJSON, formatYAML:
		out := pageOutput{View: view, Pagination: page.Result().PaginationInfo}
		if view.Type == engine.ViewTable {
			out.Table = page.Table()
		} else {
			out.Cards = page.Cards()
		}
		if lp, ok := page.ListPreview(); ok {
			out.ListPreview = &lp
		}
		if format == formatYAML {
			return writeYAML(w, out)
		}
		return writeJSON(w, out)
	default:
		if view.Type == engine.ViewTable {
			td := page.Table()
			fmt.Fprintln(w, renderTable(td))
			fmt.Fprintln(w, mutedStyle.Render(td.Summary))
			return nil
		}
		fmt.Fprint(w, renderCards(page.Cards()))
		res := page.Result()
		fmt.Fprintln(w, mutedStyle.Render(engine.BuildSummary(res.PaginationInfo, view, len(res.Items))))
		if lp, ok := page.ListPreview(); ok {
			fmt.Fprintln(w, renderListPreview(lp))
		}
		return nil
	}
}

func renderTable(td *engine.TableData) string {
	headers := make([]string, 0, len(td.Columns))
	for _, c := range td.Columns {
		label := c.Label
		switch c.Sorted {
		case string(engine.SortAsc):
			label += " ↑"
		case string(engine.SortDesc):
			label += " ↓"
		}
		headers = append(headers, label)
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
		Headers(headers...).
		Rows(td.Rows...)
	return t.String()
}

func renderCards(cards []engine.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(titleStyle.Render(c.Primary))
		b.WriteString(mutedStyle.Render("  " + c.ID))
		b.WriteString("\n")
		if c.Media != "" {
			for _, line := range strings.Split(c.Media, "\n") {
				b.WriteString("  │ " + line + "\n")
			}
		}
		for _, d := range c.Details {
			fmt.Fprintf(&b, "  %s: %s\n", d.Label, d.Value)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderListPreview(lp templates.ListPreview) string {
	if lp.Placeholder != "" {
		return mutedStyle.Render(lp.Placeholder)
	}
	if lp.Preview == nil {
		return mutedStyle.Render(lp.TemplateID + ": (empty)")
	}
	return titleStyle.Render(lp.TemplateID) + "\n" + lp.Preview.String()
}

func writeTableCSV(w io.Writer, td *engine.TableData) error {
	cw := csv.NewWriter(w)
	headers := make([]string, 0, len(td.Columns))
	for _, c := range td.Columns {
		headers = append(headers, c.Key)
	}
	if err := cw.Write(headers); err != nil {
		return err
	}
	if err := cw.WriteAll(td.Rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = w.Write(out)
	return err
}
