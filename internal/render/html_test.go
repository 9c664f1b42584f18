package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/domeafavour/hello-ast/internal/markdown"
)

func renderHTML(t *testing.T, input string) string {
	t.Helper()
	doc, err := markdown.Compile(input, markdown.Options{})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, doc))
	return buf.String()
}

func TestHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"heading", "# Hello World", "<h1>Hello World</h1>\n"},
		{"deep heading clamps to h6", "######## Deep", "<h6>Deep</h6>\n"},
		{"paragraph with code", "run `a<b>`", "<p>run <code>a&lt;b&gt;</code></p>\n"},
		{"escapes text", "a & b", "<p>a &amp; b</p>\n"},
		{"bullet list groups items", "- a\n- b", "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n"},
		{"ordered list from one", "1. a\n2. b", "<ol>\n<li>a</li>\n<li>b</li>\n</ol>\n"},
		{"ordered list start", "3. c\n4. d", "<ol start=\"3\">\n<li>c</li>\n<li>d</li>\n</ol>\n"},
		{"list kind switch closes list", "- a\n1. b", "<ul>\n<li>a</li>\n</ul>\n<ol>\n<li>b</li>\n</ol>\n"},
		{"paragraph closes list", "- a\nb", "<ul>\n<li>a</li>\n</ul>\n<p>b</p>\n"},
		{"blockquote", "> quoted", "<blockquote>\n<p>quoted</p>\n</blockquote>\n"},
		{"link", "[docs](https://example.com/a b)", "<p><a href=\"https://example.com/a%20b\">docs</a></p>\n"},
		{"dangerous link", "[x](javascript:alert)", "<p><a href=\"\">x</a></p>\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, renderHTML(t, tc.input))
		})
	}
}

func TestHTML_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, nil))
	require.Empty(t, buf.String())
}

func TestHTML_ParsesAsWellFormedTree(t *testing.T) {
	out := renderHTML(t, "# T\n- [one](/1)\n- [two](/2)\n> `q`")

	root, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)

	var hrefs []string
	var tags []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			tags = append(tags, n.Data)
			if n.Data == "a" {
				for _, a := range n.Attr {
					if a.Key == "href" {
						hrefs = append(hrefs, a.Val)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	require.Equal(t, []string{"/1", "/2"}, hrefs)
	require.Subset(t, tags, []string{"h1", "ul", "li", "a", "blockquote", "p", "code"})
}
