package render

import (
	"bufio"
	"io"
	"strconv"

	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/domeafavour/hello-ast/internal/markdown"
)

// HTML writes doc as an HTML fragment. Consecutive list items of the same
// kind share one <ul> or <ol>; an ordered list starts at its first item's
// order. Heading levels above 6 render as <h6>.
func HTML(w io.Writer, doc markdown.Document) error {
	bw := bufio.NewWriter(w)
	open := markdown.BlockParagraph // no list open

	for _, b := range doc {
		if open != b.Kind {
			closeList(bw, open)
			open = openList(bw, b)
		}

		switch b.Kind {
		case markdown.BlockHeading:
			tag := "h" + strconv.Itoa(min(max(b.Level, 1), 6))
			_, _ = bw.WriteString("<" + tag + ">")
			writeInline(bw, b.Children)
			_, _ = bw.WriteString("</" + tag + ">\n")
		case markdown.BlockListItem, markdown.BlockOrderListItem:
			_, _ = bw.WriteString("<li>")
			writeInline(bw, b.Children)
			_, _ = bw.WriteString("</li>\n")
		case markdown.BlockBlockquote:
			_, _ = bw.WriteString("<blockquote>\n<p>")
			writeInline(bw, b.Children)
			_, _ = bw.WriteString("</p>\n</blockquote>\n")
		default:
			_, _ = bw.WriteString("<p>")
			writeInline(bw, b.Children)
			_, _ = bw.WriteString("</p>\n")
		}
	}
	closeList(bw, open)

	return bw.Flush()
}

// openList starts a list for b if it is a list item and returns the kind of
// list now open.
func openList(bw *bufio.Writer, b markdown.BlockNode) markdown.BlockKind {
	switch b.Kind {
	case markdown.BlockListItem:
		_, _ = bw.WriteString("<ul>\n")
		return b.Kind
	case markdown.BlockOrderListItem:
		if b.Order == 1 {
			_, _ = bw.WriteString("<ol>\n")
		} else {
			_, _ = bw.WriteString(`<ol start="` + strconv.Itoa(b.Order) + `">` + "\n")
		}
		return b.Kind
	}
	return markdown.BlockParagraph
}

func closeList(bw *bufio.Writer, open markdown.BlockKind) {
	switch open {
	case markdown.BlockListItem:
		_, _ = bw.WriteString("</ul>\n")
	case markdown.BlockOrderListItem:
		_, _ = bw.WriteString("</ol>\n")
	}
}

func writeInline(bw *bufio.Writer, nodes []markdown.InlineNode) {
	for _, n := range nodes {
		switch n.Kind {
		case markdown.InlineCode:
			_, _ = bw.WriteString("<code>")
			_, _ = bw.Write(util.EscapeHTML([]byte(n.Content)))
			_, _ = bw.WriteString("</code>")
		case markdown.InlineLink:
			_, _ = bw.WriteString(`<a href="`)
			dest := []byte(n.Href)
			if !gmhtml.IsDangerousURL(dest) {
				_, _ = bw.Write(util.EscapeHTML(util.URLEscape(dest, true)))
			}
			_, _ = bw.WriteString(`">`)
			writeInline(bw, n.Children)
			_, _ = bw.WriteString("</a>")
		default:
			_, _ = bw.Write(util.EscapeHTML([]byte(n.Content)))
		}
	}
}
