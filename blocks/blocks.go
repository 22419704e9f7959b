// Package blocks models rich content as a tree of blocks and parses the
// comment-delimited block markup stored in a post's raw content:
//
//	<!-- wp:heading {"level":2} --><h2>Title</h2><!-- /wp:heading -->
//	<!-- wp:spacer /-->
package blocks

import (
	"html"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

const (
	Paragraph = "core/paragraph"
	Heading   = "core/heading"
	Freeform  = "core/freeform"
)

// Block is one node of parsed content.
type Block struct {
	ClientID    string         `json:"clientId"`
	Name        string         `json:"name"`
	Attributes  map[string]any `json:"attributes"`
	InnerBlocks []Block        `json:"innerBlocks,omitempty"`
	InnerHTML   string         `json:"innerHTML,omitempty"`
}

// CreateBlock builds a new block with a fresh client id.
func CreateBlock(name string, attrs map[string]any, inner ...Block) Block {
	if attrs == nil {
		attrs = map[string]any{}
	}
	return Block{
		ClientID:    uuid.NewString(),
		Name:        name,
		Attributes:  attrs,
		InnerBlocks: inner,
	}
}

// Clone returns a deep copy of the block, its attributes and inner blocks.
func (b Block) Clone() Block {
	b.Attributes = cloneValue(b.Attributes).(map[string]any)
	b.InnerBlocks = Clone(b.InnerBlocks)
	return b
}

// Clone deep-copies a block list. A nil list stays nil.
func Clone(list []Block) []Block {
	if list == nil {
		return nil
	}
	out := make([]Block, len(list))
	for i, b := range list {
		out[i] = b.Clone()
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		if v == nil {
			return v
		}
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		if v == nil {
			return v
		}
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}

// Attr returns the attribute as a string, or "" when absent or not a string.
func (b Block) Attr(key string) string {
	s, _ := b.Attributes[key].(string)
	return s
}

// textPolicy strips every tag, leaving a space where a tag was.
var textPolicy = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}()

// Text returns the visible text of the block and its inner blocks.
func (b Block) Text() string {
	parts := make([]string, 0, 1+len(b.InnerBlocks))
	if t := stripTags(b.InnerHTML); t != "" {
		parts = append(parts, t)
	} else if c := stripTags(b.Attr("content")); c != "" {
		parts = append(parts, c)
	}
	for _, inner := range b.InnerBlocks {
		if t := inner.Text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// WrapperContent returns the block's markup without its outer element, so
// `<p class="x">Hi <em>there</em></p>` yields `Hi <em>there</em>`. Inner
// markup and entities are kept as stored. Markup that is not a single
// wrapping element is returned trimmed.
func (b Block) WrapperContent() string {
	s := strings.TrimSpace(b.InnerHTML)
	if len(s) < 2 || s[0] != '<' {
		return s
	}
	end := strings.IndexByte(s, '>')
	if end < 0 {
		return s
	}
	open := strings.Fields(strings.TrimSuffix(s[1:end], "/"))
	if len(open) == 0 || strings.ContainsAny(open[0][:1], "/!?") {
		return s
	}
	closing := "</" + open[0] + ">"
	rest := s[end+1:]
	if len(rest) < len(closing) || !strings.EqualFold(rest[len(rest)-len(closing):], closing) {
		return s
	}
	return rest[:len(rest)-len(closing)]
}

func stripTags(s string) string {
	s = textPolicy.Sanitize(s)
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}

// Walk visits every block of list and its descendants depth-first.
func Walk(list []Block, fn func(Block, int)) {
	var visit func([]Block, int)
	visit = func(bs []Block, depth int) {
		for _, b := range bs {
			fn(b, depth)
			visit(b.InnerBlocks, depth+1)
		}
	}
	visit(list, 0)
}
