package content

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultDescription fills description fields that have no content.
const DefaultDescription = "No description available."

// Document is the shape of a free-text field as delivered by the CMS.
// Classify picks the variant once; PlainText flattens it.
type Document interface {
	rawText() string
}

type (
	// PlainDoc is a string without markup.
	PlainDoc string
	// HTMLDoc is a string containing tags.
	HTMLDoc string
	// NodeDoc is the rich-text editor's node tree ({"nodes": [...]}).
	NodeDoc struct{ Nodes []any }
	// BlocksDoc is a block list ({"blocks": [{"text": ...}]}).
	BlocksDoc struct{ Blocks []any }
	// HTMLFieldDoc is an object wrapping HTML ({"html": "..."}).
	HTMLFieldDoc string
	// OpaqueDoc is anything else; it has no text.
	OpaqueDoc struct{}
)

func (d PlainDoc) rawText() string     { return string(d) }
func (d HTMLDoc) rawText() string      { return string(d) }
func (d HTMLFieldDoc) rawText() string { return string(d) }
func (OpaqueDoc) rawText() string      { return "" }

func (d NodeDoc) rawText() string {
	var b strings.Builder
	walkNodes(d.Nodes, &b)
	return b.String()
}

func (d BlocksDoc) rawText() string {
	parts := make([]string, 0, len(d.Blocks))
	for _, blk := range d.Blocks {
		m, ok := asMap(blk)
		if !ok {
			continue
		}
		if s, ok := m["text"].(string); ok && s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Classify inspects v and returns the matching Document variant.
func Classify(v any) Document {
	switch t := v.(type) {
	case nil:
		return OpaqueDoc{}
	case string:
		if strings.Contains(t, "<") && strings.Contains(t, ">") {
			return HTMLDoc(t)
		}
		return PlainDoc(t)
	case Document:
		return t
	}

	m, ok := asMap(v)
	if !ok {
		return OpaqueDoc{}
	}
	if nodes, ok := m["nodes"].([]any); ok {
		return NodeDoc{Nodes: nodes}
	}
	if blocks, ok := m["blocks"].([]any); ok {
		return BlocksDoc{Blocks: blocks}
	}
	if h, ok := m["html"].(string); ok {
		return HTMLFieldDoc(h)
	}
	return OpaqueDoc{}
}

// blockNodes end with a separator so adjacent paragraphs don't merge.
var blockNodes = map[string]bool{
	"PARAGRAPH":     true,
	"HEADING":       true,
	"LIST_ITEM":     true,
	"BLOCKQUOTE":    true,
	"CODE_BLOCK":    true,
	"BULLETED_LIST": true,
	"ORDERED_LIST":  true,
}

func walkNodes(nodes []any, b *strings.Builder) {
	for _, n := range nodes {
		m, ok := asMap(n)
		if !ok {
			continue
		}
		if td, ok := asMap(m["textData"]); ok {
			if s, ok := td["text"].(string); ok {
				b.WriteString(s)
			}
		} else if s, ok := m["text"].(string); ok {
			b.WriteString(s)
		}
		if children, ok := m["nodes"].([]any); ok {
			walkNodes(children, b)
		}
		if t, _ := m["type"].(string); blockNodes[t] {
			b.WriteByte(' ')
		}
	}
}

// stripPolicy removes every tag, and the contents of script and style.
var stripPolicy = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}()

// Clean strips tags, decodes entities, and collapses whitespace.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = stripPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// Extracted is the plain-text view of a free-text field.
type Extracted struct {
	PlainText  string
	Excerpt    string
	HasContent bool
}

// PlainText flattens any field value to cleaned text. It never panics.
func PlainText(v any) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()
	return Clean(Classify(v).rawText())
}

// Extract flattens v and derives an excerpt capped at maxLen runes.
// maxLen <= 0 disables truncation.
func Extract(v any, maxLen int) Extracted {
	text := PlainText(v)
	return Extracted{
		PlainText:  text,
		Excerpt:    Excerpt(text, maxLen),
		HasContent: text != "",
	}
}

// DescriptionOr returns the excerpt of the first candidate with content,
// or DefaultDescription.
func DescriptionOr(rec Record, maxLen int, candidates ...string) string {
	for _, name := range candidates {
		v, ok := Lookup(rec, name)
		if !ok {
			continue
		}
		if ex := Extract(v, maxLen); ex.HasContent {
			return ex.Excerpt
		}
	}
	return DefaultDescription
}
