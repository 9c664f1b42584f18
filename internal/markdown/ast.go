package markdown

import (
	"encoding/json"
	"strings"
)

// InlineKind identifies the variant of an InlineNode.
type InlineKind int

const (
	InlineText InlineKind = iota
	InlineCode
	InlineLink
)

func (k InlineKind) String() string {
	switch k {
	case InlineText:
		return "text"
	case InlineCode:
		return "inline-code"
	case InlineLink:
		return "link"
	default:
		return "unknown"
	}
}

// InlineNode is a unit of content within a block. Content is set for text and
// inline code; Href and Children for links.
type InlineNode struct {
	Kind     InlineKind
	Content  string
	Href     string
	Children []InlineNode
}

func TextNode(content string) InlineNode {
	return InlineNode{Kind: InlineText, Content: content}
}

func CodeNode(content string) InlineNode {
	return InlineNode{Kind: InlineCode, Content: content}
}

func LinkNode(href string, children ...InlineNode) InlineNode {
	return InlineNode{Kind: InlineLink, Href: href, Children: children}
}

// BlockKind identifies the variant of a BlockNode.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockListItem
	BlockOrderListItem
	BlockBlockquote
)

func (k BlockKind) String() string {
	switch k {
	case BlockParagraph:
		return "paragraph"
	case BlockHeading:
		return "heading"
	case BlockListItem:
		return "list-item"
	case BlockOrderListItem:
		return "order-list-item"
	case BlockBlockquote:
		return "blockquote"
	default:
		return "unknown"
	}
}

// BlockNode is the structural unit produced for one non-blank source line.
// Level is set for headings and Order for ordered list items.
type BlockNode struct {
	Kind     BlockKind
	Level    int
	Order    int
	Children []InlineNode
}

func Heading(level int, children ...InlineNode) BlockNode {
	return BlockNode{Kind: BlockHeading, Level: level, Children: children}
}

func Paragraph(children ...InlineNode) BlockNode {
	return BlockNode{Kind: BlockParagraph, Children: children}
}

func ListItem(children ...InlineNode) BlockNode {
	return BlockNode{Kind: BlockListItem, Children: children}
}

func OrderListItem(order int, children ...InlineNode) BlockNode {
	return BlockNode{Kind: BlockOrderListItem, Order: order, Children: children}
}

func Blockquote(children ...InlineNode) BlockNode {
	return BlockNode{Kind: BlockBlockquote, Children: children}
}

// Document is the compiled form of an input: one block per non-blank line.
type Document []BlockNode

// PlainText returns the textual content of the document without any markup,
// one line per block. Link text is kept and hrefs are dropped.
func (d Document) PlainText() string {
	lines := make([]string, 0, len(d))
	for _, b := range d {
		var sb strings.Builder
		writePlain(&sb, b.Children)
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

func writePlain(sb *strings.Builder, nodes []InlineNode) {
	for _, n := range nodes {
		if n.Kind == InlineLink {
			writePlain(sb, n.Children)
			continue
		}
		sb.WriteString(n.Content)
	}
}

// Serialized shape: {type, ...fields, children:[...]}.

type inlineView struct {
	Type     string       `json:"type" yaml:"type"`
	Content  *string      `json:"content,omitempty" yaml:"content,omitempty"`
	Href     *string      `json:"href,omitempty" yaml:"href,omitempty"`
	Children []inlineView `json:"children,omitempty" yaml:"children,omitempty"`
}

type blockView struct {
	Type     string       `json:"type" yaml:"type"`
	Level    int          `json:"level,omitempty" yaml:"level,omitempty"`
	Order    int          `json:"order,omitempty" yaml:"order,omitempty"`
	Children []inlineView `json:"children" yaml:"children"`
}

func (n InlineNode) view() inlineView {
	v := inlineView{Type: n.Kind.String()}
	if n.Kind == InlineLink {
		href := n.Href
		v.Href = &href
		v.Children = inlineViews(n.Children)
		return v
	}
	content := n.Content
	v.Content = &content
	return v
}

func inlineViews(nodes []InlineNode) []inlineView {
	out := make([]inlineView, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.view())
	}
	return out
}

func (b BlockNode) view() blockView {
	v := blockView{Type: b.Kind.String(), Children: inlineViews(b.Children)}
	switch b.Kind {
	case BlockHeading:
		v.Level = b.Level
	case BlockOrderListItem:
		v.Order = b.Order
	}
	return v
}

func (d Document) views() []blockView {
	out := make([]blockView, 0, len(d))
	for _, b := range d {
		out = append(out, b.view())
	}
	return out
}

func (n InlineNode) MarshalJSON() ([]byte, error) { return json.Marshal(n.view()) }
func (b BlockNode) MarshalJSON() ([]byte, error)  { return json.Marshal(b.view()) }
func (d Document) MarshalJSON() ([]byte, error)   { return json.Marshal(d.views()) }

func (n InlineNode) MarshalYAML() (any, error) { return n.view(), nil }
func (b BlockNode) MarshalYAML() (any, error)  { return b.view(), nil }
func (d Document) MarshalYAML() (any, error)   { return d.views(), nil }
