// Package preview renders a text preview of an entity's raw block content.
// Parsing is memoized per distinct content so that re-rendering a page of
// previews on every view change does not re-parse unchanged templates.
package preview

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/spektr-org/dataviews/blocks"
)

const (
	DefaultCacheSize  = 256
	DefaultBackground = "white"
	maxLineRunes      = 60
)

// Preview is the rendered preview of one entity.
type Preview struct {
	ClassName       string         `json:"className"`
	BackgroundColor string         `json:"backgroundColor"`
	Blocks          []blocks.Block `json:"-" yaml:"-"`
	Outline         []string       `json:"outline"`
}

// String renders the outline one block per line.
func (p Preview) String() string {
	return strings.Join(p.Outline, "\n")
}

// Renderer turns raw content into previews.
type Renderer struct {
	cache      *lru.Cache[[sha256.Size]byte, []blocks.Block]
	background string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithBackground sets the preview background color taken from global styles.
func WithBackground(color string) Option {
	return func(r *Renderer) {
		if color != "" {
			r.background = color
		}
	}
}

// NewRenderer creates a renderer with an LRU parse cache of cacheSize entries.
func NewRenderer(cacheSize int, opts ...Option) (*Renderer, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[[sha256.Size]byte, []blocks.Block](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating preview cache: %w", err)
	}
	r := &Renderer{cache: cache, background: DefaultBackground}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Parse returns the block list for content, from cache when possible. The
// list is a copy the caller may modify.
func (r *Renderer) Parse(content string) []blocks.Block {
	return blocks.Clone(r.parse(content))
}

func (r *Renderer) parse(content string) []blocks.Block {
	key := sha256.Sum256([]byte(content))
	if list, ok := r.cache.Get(key); ok {
		return list
	}
	list := blocks.Parse(content)
	r.cache.Add(key, list)
	return list
}

// Render produces the preview for raw content shown in a view of viewType.
// It reports false when the content holds no blocks.
func (r *Renderer) Render(content, viewType string) (Preview, bool) {
	list := r.parse(content)
	if len(list) == 0 {
		return Preview{}, false
	}

	var outline []string
	blocks.Walk(list, func(b blocks.Block, depth int) {
		line := strings.Repeat("  ", depth) + shortName(b.Name)
		if len(b.InnerBlocks) == 0 {
			if text := truncate(b.Text(), maxLineRunes); text != "" {
				line += ": " + text
			}
		}
		outline = append(outline, line)
	})

	return Preview{
		ClassName:       "page-templates-preview-field is-viewtype-" + viewType,
		BackgroundColor: r.background,
		Blocks:          blocks.Clone(list),
		Outline:         outline,
	}, true
}

// Len reports how many parsed contents are cached.
func (r *Renderer) Len() int {
	return r.cache.Len()
}

func shortName(name string) string {
	return strings.TrimPrefix(name, "core/")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
