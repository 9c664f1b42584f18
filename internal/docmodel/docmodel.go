// Package docmodel loads markdown source files: it splits YAML frontmatter,
// normalizes unicode, compiles the body and fingerprints the content.
package docmodel

import (
	"os"

	"golang.org/x/text/unicode/norm"

	"github.com/domeafavour/hello-ast/internal/config"
	"github.com/domeafavour/hello-ast/internal/errors"
	"github.com/domeafavour/hello-ast/internal/markdown"
)

// Options controls how a document is prepared and compiled.
type Options struct {
	Unicode config.UnicodeForm
	Compile markdown.Options
}

// Doc is a parsed source document.
type Doc struct {
	Path        string
	Frontmatter map[string]any
	Body        []byte
	Document    markdown.Document
	Fingerprint string

	hadFM bool
}

// HadFrontmatter reports whether the source started with a frontmatter block.
func (d *Doc) HadFrontmatter() bool {
	return d.hadFM
}

// Parse prepares content and compiles its body.
func Parse(content []byte, opts Options) (*Doc, error) {
	doc, err := Prepare(content, opts)
	if err != nil {
		return nil, err
	}
	if err := doc.Compile(opts.Compile); err != nil {
		return nil, err
	}
	return doc, nil
}

// Prepare splits frontmatter, normalizes the body and fingerprints the
// content. Document stays nil until Compile is called.
func Prepare(content []byte, opts Options) (*Doc, error) {
	fm, body, had, err := splitFrontmatter(content)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to split frontmatter")
	}

	fields, err := parseFields(fm)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid frontmatter")
	}

	body = normalizeUnicode(body, opts.Unicode)

	fp, err := fingerprint(fields, body)
	if err != nil {
		return nil, errors.InternalError("failed to fingerprint document", err)
	}

	return &Doc{
		Frontmatter: fields,
		Body:        body,
		Fingerprint: fp,
		hadFM:       had,
	}, nil
}

// Compile compiles Body into Document.
func (d *Doc) Compile(opts markdown.Options) error {
	doc, err := markdown.Compile(string(d.Body), opts)
	if err != nil {
		if ce, ok := errors.As(err); ok && d.Path != "" {
			return ce.WithContext("path", d.Path)
		}
		return err
	}
	d.Document = doc
	return nil
}

// LoadFile reads path from disk and prepares it without compiling.
func LoadFile(path string, opts Options) (*Doc, error) {
	// #nosec G304 -- paths come from the build walker or the CLI.
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ReadFailed(path, err)
	}

	doc, err := Prepare(content, opts)
	if err != nil {
		return nil, withPath(err, path)
	}
	doc.Path = path
	return doc, nil
}

// ParseFile reads path from disk and parses it.
func ParseFile(path string, opts Options) (*Doc, error) {
	doc, err := LoadFile(path, opts)
	if err != nil {
		return nil, err
	}
	if err := doc.Compile(opts.Compile); err != nil {
		return nil, err
	}
	return doc, nil
}

func withPath(err error, path string) error {
	if ce, ok := errors.As(err); ok {
		return ce.WithContext("path", path)
	}
	return errors.WrapError(err, errors.CategoryValidation, "failed to parse document").
		WithContext("path", path)
}

func normalizeUnicode(b []byte, form config.UnicodeForm) []byte {
	switch form {
	case config.UnicodeNFC:
		return norm.NFC.Bytes(b)
	case config.UnicodeNFD:
		return norm.NFD.Bytes(b)
	default:
		return b
	}
}
