package markdown

// Normalize merges runs of adjacent text nodes into a single node. Inline code
// and links are never merged and separate the runs around them. The input is
// not modified, and Normalize(Normalize(xs)) equals Normalize(xs).
func Normalize(nodes []InlineNode) []InlineNode {
	var out []InlineNode
	for _, n := range nodes {
		if last := len(out) - 1; last >= 0 && out[last].Kind == InlineText && n.Kind == InlineText {
			out[last].Content += n.Content
			continue
		}
		out = append(out, n)
	}
	return out
}

// Transform returns a copy of doc with every block's children normalized.
func Transform(doc Document) Document {
	if doc == nil {
		return nil
	}
	out := make(Document, len(doc))
	for i, b := range doc {
		b.Children = Normalize(b.Children)
		out[i] = b
	}
	return out
}
