package schema

import (
	"errors"
	"fmt"
	"strings"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/spektr-org/dataviews/engine"
)

// ErrInvalidView is wrapped by every validation failure.
var ErrInvalidView = errors.New("invalid view")

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadViewPreset parses a YAML view preset and overlays it on base. Every key
// the preset names replaces the base value, including explicit empty values
// such as `filters: []` or `sort: null`; keys it leaves out keep the base
// value. Layout keys merge, so a preset layout only overrides the options it
// sets. The merged view is validated.
func LoadViewPreset(data []byte, base engine.ViewConfig) (engine.ViewConfig, error) {
	var keys map[string]any
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return engine.ViewConfig{}, fmt.Errorf("parsing view preset: %w", err)
	}
	var preset engine.ViewConfig
	if err := yaml.Unmarshal(data, &preset); err != nil {
		return engine.ViewConfig{}, fmt.Errorf("parsing view preset: %w", err)
	}

	view := base.Clone()
	for key := range keys {
		switch key {
		case "type":
			view.Type = preset.Type
		case "search":
			view.Search = preset.Search
		case "page":
			view.Page = preset.Page
		case "perPage":
			view.PerPage = preset.PerPage
		case "sort":
			view.Sort = preset.Sort
		case "hiddenFields":
			view.HiddenFields = preset.HiddenFields
		case "filters":
			view.Filters = preset.Filters
		case "layout":
			layout := preset.Layout.Clone()
			if layout == nil {
				layout = engine.Layout{}
			}
			if len(view.Layout) > 0 {
				if err := mergo.Merge(&layout, view.Layout); err != nil {
					return engine.ViewConfig{}, fmt.Errorf("merging preset layout: %w", err)
				}
			}
			view.Layout = layout
		}
	}

	if err := Validate(view); err != nil {
		return engine.ViewConfig{}, err
	}
	return view, nil
}

// Validate checks the structural contract of a view: a recognized type,
// page >= 1, perPage > 0, known operators and sort directions.
func Validate(view engine.ViewConfig) error {
	err := validate.Struct(view)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidView, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidView, strings.Join(msgs, "; "))
}
