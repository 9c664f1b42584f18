package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/domeafavour/hello-ast/internal/errors"
	"github.com/domeafavour/hello-ast/internal/markdown"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"YAML", FormatYAML},
		{"yml", FormatYAML},
		{" html ", FormatHTML},
		{"txt", FormatText},
		{"text", FormatText},
	}
	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got)
	}

	_, err := ParseFormat("pdf")
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestFormatExt(t *testing.T) {
	require.Equal(t, ".json", FormatJSON.Ext())
	require.Equal(t, ".yaml", FormatYAML.Ext())
	require.Equal(t, ".html", FormatHTML.Ext())
	require.Equal(t, ".txt", FormatText.Ext())
}

func TestWrite(t *testing.T) {
	doc := markdown.Document{
		markdown.Heading(2, markdown.TextNode("Title")),
		markdown.Paragraph(markdown.TextNode("see "), markdown.CodeNode("x")),
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatJSON, doc))
		require.JSONEq(t, `[
			{"type":"heading","level":2,"children":[{"type":"text","content":"Title"}]},
			{"type":"paragraph","children":[{"type":"text","content":"see "},{"type":"inline-code","content":"x"}]}
		]`, buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatYAML, doc))

		var got []map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		require.Equal(t, "heading", got[0]["type"])
		require.Equal(t, 2, got[0]["level"])
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatText, doc))
		require.Equal(t, "Title\nsee x\n", buf.String())
	})

	t.Run("unsupported", func(t *testing.T) {
		var buf bytes.Buffer
		err := Write(&buf, Format("pdf"), doc)
		require.True(t, errors.IsCategory(err, errors.CategoryValidation))
	})
}
