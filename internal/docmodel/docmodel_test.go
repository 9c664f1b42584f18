package docmodel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/inful/mdfp"
	"github.com/stretchr/testify/require"

	"github.com/domeafavour/hello-ast/internal/config"
	"github.com/domeafavour/hello-ast/internal/errors"
	"github.com/domeafavour/hello-ast/internal/markdown"
)

func TestParse_NoFrontmatter(t *testing.T) {
	doc, err := Parse([]byte("# Title\nbody\n"), Options{})
	require.NoError(t, err)

	require.False(t, doc.HadFrontmatter())
	require.Empty(t, doc.Frontmatter)
	require.Equal(t, "# Title\nbody\n", string(doc.Body))
	require.Equal(t, markdown.Document{
		markdown.Heading(1, markdown.TextNode("Title")),
		markdown.Paragraph(markdown.TextNode("body")),
	}, doc.Document)
	require.NotEmpty(t, doc.Fingerprint)
}

func TestParse_Frontmatter(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		fields map[string]any
		body   string
	}{
		{"lf", "---\ntitle: Hi\n---\n# T\n", map[string]any{"title": "Hi"}, "# T\n"},
		{"crlf", "---\r\ntitle: Hi\r\n---\r\n# T\r\n", map[string]any{"title": "Hi"}, "# T\r\n"},
		{"empty block", "---\n---\n# T\n", map[string]any{}, "# T\n"},
		{"closed at end of input", "---\ntags: [a]\n---", map[string]any{"tags": []any{"a"}}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Parse([]byte(tc.input), Options{})
			require.NoError(t, err)
			require.True(t, doc.HadFrontmatter())
			require.Equal(t, tc.fields, doc.Frontmatter)
			require.Equal(t, tc.body, string(doc.Body))
		})
	}
}

func TestParse_FrontmatterErrors(t *testing.T) {
	_, err := Parse([]byte("---\ntitle: x\n# no close\n"), Options{})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
	require.True(t, errors.IsCategory(err, errors.CategoryValidation))

	_, err = Parse([]byte("---\n: [broken\n---\nbody\n"), Options{})
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestParse_Fingerprint(t *testing.T) {
	base, err := Parse([]byte("---\nb: 2\na: 1\n---\nbody\n"), Options{})
	require.NoError(t, err)

	reordered, err := Parse([]byte("---\na: 1\nb: 2\n---\nbody\n"), Options{})
	require.NoError(t, err)
	require.Equal(t, base.Fingerprint, reordered.Fingerprint)

	withStored, err := Parse([]byte("---\na: 1\nb: 2\n"+mdfp.FingerprintField+": stale\n---\nbody\n"), Options{})
	require.NoError(t, err)
	require.Equal(t, base.Fingerprint, withStored.Fingerprint)

	changed, err := Parse([]byte("---\na: 1\nb: 2\n---\nbody!\n"), Options{})
	require.NoError(t, err)
	require.NotEqual(t, base.Fingerprint, changed.Fingerprint)

	require.Equal(t, mdfp.CalculateFingerprintFromParts("a: 1\nb: 2", "body\n"), base.Fingerprint)
}

func TestParse_Unicode(t *testing.T) {
	decomposed := "Cafe\u0301"

	doc, err := Parse([]byte(decomposed), Options{Unicode: config.UnicodeNFC})
	require.NoError(t, err)
	require.Equal(t, markdown.Document{markdown.Paragraph(markdown.TextNode("Caf\u00e9"))}, doc.Document)

	raw, err := Parse([]byte(decomposed), Options{Unicode: config.UnicodeNone})
	require.NoError(t, err)
	require.Equal(t, decomposed, string(raw.Body))
	require.NotEqual(t, doc.Fingerprint, raw.Fingerprint)

	nfd, err := Parse([]byte("Caf\u00e9"), Options{Unicode: config.UnicodeNFD})
	require.NoError(t, err)
	require.Equal(t, decomposed, string(nfd.Body))
}

func TestParse_CompileOptions(t *testing.T) {
	doc, err := Parse([]byte("a b"), Options{Compile: markdown.Options{Raw: true}})
	require.NoError(t, err)
	require.Len(t, doc.Document[0].Children, 3)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("- item\n"), 0o600))

	doc, err := ParseFile(path, Options{})
	require.NoError(t, err)
	require.Equal(t, path, doc.Path)
	require.Equal(t, markdown.Document{markdown.ListItem(markdown.TextNode("item"))}, doc.Document)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.md"), Options{})
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryFileSystem))
}

func TestParseFile_AddsPathToErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.md")
	require.NoError(t, os.WriteFile(path, []byte("---\nunclosed\n"), 0o600))

	_, err := ParseFile(path, Options{})
	ce, ok := errors.As(err)
	require.True(t, ok)
	require.Equal(t, path, ce.Context["path"])
}

func TestPrepare_LeavesDocumentForCompile(t *testing.T) {
	content := []byte("---\ntitle: x\n---\n# Hello World\n")

	doc, err := Prepare(content, Options{})
	require.NoError(t, err)
	require.Nil(t, doc.Document)
	require.True(t, doc.HadFrontmatter())
	require.NotEmpty(t, doc.Fingerprint)

	parsed, err := Parse(content, Options{})
	require.NoError(t, err)
	require.Equal(t, parsed.Fingerprint, doc.Fingerprint)

	require.NoError(t, doc.Compile(markdown.Options{}))
	require.Equal(t, markdown.Document{markdown.Heading(1, markdown.TextNode("Hello World"))}, doc.Document)

	require.NoError(t, doc.Compile(markdown.Options{Raw: true}))
	require.Len(t, doc.Document[0].Children, 3)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("> quote\n"), 0o600))

	doc, err := LoadFile(path, Options{})
	require.NoError(t, err)
	require.Equal(t, path, doc.Path)
	require.Nil(t, doc.Document)
	require.Equal(t, []byte("> quote\n"), doc.Body)

	require.NoError(t, doc.Compile(markdown.Options{}))
	require.Equal(t, markdown.Document{markdown.Blockquote(markdown.TextNode("quote"))}, doc.Document)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.md"), Options{})
	require.True(t, errors.IsCategory(err, errors.CategoryFileSystem))

	bad := filepath.Join(t.TempDir(), "bad.md")
	require.NoError(t, os.WriteFile(bad, []byte("---\nunclosed\n"), 0o600))
	_, err = LoadFile(bad, Options{})
	ce, ok := errors.As(err)
	require.True(t, ok)
	require.Equal(t, bad, ce.Context["path"])
}
