package engine

import (
	"golang.org/x/text/language"

	"github.com/spektr-org/dataviews/internal/logger"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for Execute()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Locale language.Tag
	Logger logger.Logger
}

// WithLocale sets the collation locale used for sorting.
func WithLocale(tag language.Tag) Option {
	return func(c *config) {
		c.Locale = tag
	}
}

// WithLogger routes the engine's debug traces to l.
func WithLogger(l logger.Logger) Option {
	return func(c *config) {
		c.Logger = l
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		Locale: language.English,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
