package markdown

import (
	"strings"

	"github.com/domeafavour/hello-ast/internal/errors"
)

// ScanInline resolves tokens from cursor up to the next line-break (or the end
// of the stream) into inline nodes. The terminating line-break is left for the
// caller; the returned cursor points at it.
//
// Marker-like tokens met here are content and render as their literal text.
// A square-paren-content token directly followed by paren-content forms a
// link; either one on its own degrades to text, as does a back-quote with no
// partner before the end of the line.
func ScanInline(tokens []Token, cursor int) ([]InlineNode, int, error) {
	var nodes []InlineNode

	for cursor < len(tokens) && tokens[cursor].Kind != KindLineBreak {
		tok := tokens[cursor]
		switch tok.Kind {
		case KindText, KindSpaces, KindDash, KindOrder, KindRightArrow, KindSharps, KindParenContent:
			nodes = append(nodes, TextNode(tok.Literal()))
			cursor++
		case KindSquareParenContent:
			if next := cursor + 1; next < len(tokens) && tokens[next].Kind == KindParenContent {
				nodes = append(nodes, LinkNode(tokens[next].Value, TextNode(tok.Value)))
				cursor += 2
				continue
			}
			nodes = append(nodes, TextNode(tok.Literal()))
			cursor++
		case KindBackQuote:
			node, next, err := scanCode(tokens, cursor+1)
			if err != nil {
				return nil, next, err
			}
			nodes = append(nodes, node)
			cursor = next
		default:
			return nil, cursor, errors.StructuralViolation("inline", cursor, "unexpected "+tok.Kind.String()+" token")
		}
	}

	return nodes, cursor, nil
}

// scanCode collects the literal text after an opening back-quote. It stops
// after the closing back-quote, or at the end of the line where the opener is
// given back as text.
func scanCode(tokens []Token, cursor int) (InlineNode, int, error) {
	var sb strings.Builder
	for ; cursor < len(tokens); cursor++ {
		tok := tokens[cursor]
		switch {
		case tok.Kind == KindBackQuote:
			return CodeNode(sb.String()), cursor + 1, nil
		case tok.Kind == KindLineBreak:
			return TextNode("`" + sb.String()), cursor, nil
		case !tok.Kind.valid():
			return InlineNode{}, cursor, errors.StructuralViolation("inline-code", cursor, "unexpected "+tok.Kind.String()+" token")
		}
		sb.WriteString(tok.Literal())
	}
	return TextNode("`" + sb.String()), cursor, nil
}
