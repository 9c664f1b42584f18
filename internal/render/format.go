// Package render writes compiled documents in the supported output formats.
package render

import (
	"encoding/json"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/domeafavour/hello-ast/internal/errors"
	"github.com/domeafavour/hello-ast/internal/markdown"
)

// Format names an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHTML Format = "html"
	FormatText Format = "text"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatYAML, FormatHTML, FormatText}

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatJSON, FormatYAML, FormatHTML, FormatText:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "txt":
		return FormatText, nil
	}
	return "", errors.UnsupportedFormat(raw)
}

// Ext returns the file extension used for f, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	case FormatHTML:
		return ".html"
	case FormatText:
		return ".txt"
	default:
		return ".json"
	}
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Write renders doc to w in format f.
func Write(w io.Writer, f Format, doc markdown.Document) error {
	var err error
	switch f {
	case FormatJSON:
		err = JSON(w, doc)
	case FormatYAML:
		err = YAML(w, doc)
	case FormatHTML:
		err = HTML(w, doc)
	case FormatText:
		err = Text(w, doc)
	default:
		return errors.UnsupportedFormat(string(f))
	}
	if err != nil {
		return errors.RenderFailed(string(f), err)
	}
	return nil
}

// JSON writes doc as indented JSON.
func JSON(w io.Writer, doc markdown.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// YAML writes doc as a YAML sequence.
func YAML(w io.Writer, doc markdown.Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// Text writes the plain text content of doc.
func Text(w io.Writer, doc markdown.Document) error {
	if len(doc) == 0 {
		return nil
	}
	_, err := io.WriteString(w, doc.PlainText()+"\n")
	return err
}
