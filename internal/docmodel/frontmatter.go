package docmodel

import (
	"bytes"
	stderrors "errors"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document opened a frontmatter
// block with "---" but never closed it.
var ErrMissingClosingDelimiter = stderrors.New("frontmatter start delimiter found but closing delimiter is missing")

// splitFrontmatter separates a leading `---` delimited YAML block from the
// body. Both LF and CRLF line endings are accepted.
func splitFrontmatter(content []byte) (fm, body []byte, had bool, err error) {
	nl := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = "\r\n"
	}

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, nil
	}

	closing := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		if bytes.HasSuffix(rest, []byte(nl+"---")) {
			return rest[:len(rest)-len("---")], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return rest[:idx+len(nl)], rest[idx+len(closing):], true, nil
}

func parseFields(fm []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(fm)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(fm, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// fingerprint hashes the frontmatter fields, minus any stored fingerprint,
// together with the body. yaml.v3 sorts map keys so the serialized form is
// stable.
func fingerprint(fields map[string]any, body []byte) (string, error) {
	hashed := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == mdfp.FingerprintField {
			continue
		}
		hashed[k] = v
	}

	fm := ""
	if len(hashed) > 0 {
		out, err := yaml.Marshal(hashed)
		if err != nil {
			return "", err
		}
		fm = strings.TrimSuffix(string(out), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(fm, string(body)), nil
}
