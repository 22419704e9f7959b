package blocks

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// delimiter matches an opener, closer or void block comment. Groups: closer
// slash, block name, JSON attributes, void slash.
var delimiter = regexp.MustCompile(`(?s)<!--\s+(/)?wp:([a-z][a-z0-9_-]*(?:/[a-z][a-z0-9_-]*)?)\s+(\{.*?\}\s+)?(/)?-->`)

type frame struct {
	block *Block
	html  strings.Builder
}

// Parse turns raw block markup into a block list. HTML outside any block
// delimiter becomes a freeform block when it is not blank. Unclosed blocks are
// closed at the end of input; stray closers are ignored.
func Parse(content string) []Block {
	var (
		out   []Block
		stack []*frame
	)

	emit := func(b Block) {
		if len(stack) == 0 {
			out = append(out, b)
			return
		}
		top := stack[len(stack)-1].block
		top.InnerBlocks = append(top.InnerBlocks, b)
	}
	text := func(s string) {
		if len(stack) > 0 {
			stack[len(stack)-1].html.WriteString(s)
			return
		}
		if strings.TrimSpace(s) != "" {
			out = append(out, Block{
				ClientID:   uuid.NewString(),
				Name:       Freeform,
				Attributes: map[string]any{},
				InnerHTML:  strings.TrimSpace(s),
			})
		}
	}
	closeTop := func() {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		f.block.InnerHTML = strings.TrimSpace(f.html.String())
		emit(*f.block)
	}

	pos := 0
	for _, m := range delimiter.FindAllStringSubmatchIndex(content, -1) {
		text(content[pos:m[0]])
		pos = m[1]

		isCloser := m[2] >= 0
		name := qualify(content[m[4]:m[5]])
		var attrs map[string]any
		if m[6] >= 0 {
			attrs = parseAttributes(content[m[6]:m[7]])
		}
		isVoid := m[8] >= 0

		switch {
		case isCloser:
			if n := openIndex(stack, name); n >= 0 {
				for len(stack) > n {
					closeTop()
				}
			}
		case isVoid:
			emit(newBlock(name, attrs))
		default:
			b := newBlock(name, attrs)
			stack = append(stack, &frame{block: &b})
		}
	}
	text(content[pos:])
	for len(stack) > 0 {
		closeTop()
	}
	return out
}

func newBlock(name string, attrs map[string]any) Block {
	if attrs == nil {
		attrs = map[string]any{}
	}
	return Block{ClientID: uuid.NewString(), Name: name, Attributes: attrs}
}

// qualify adds the implied core namespace.
func qualify(name string) string {
	if strings.Contains(name, "/") {
		return name
	}
	return "core/" + name
}

func openIndex(stack []*frame, name string) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].block.Name == name {
			return i
		}
	}
	return -1
}

func parseAttributes(raw string) map[string]any {
	raw = strings.TrimSpace(raw)
	if !gjson.Valid(raw) {
		return nil
	}
	attrs, _ := gjson.Parse(raw).Value().(map[string]any)
	return attrs
}
