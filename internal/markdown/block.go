package markdown

import (
	"github.com/domeafavour/hello-ast/internal/errors"
)

// ParseBlocks groups tokens into one block per non-blank line. A line's type
// comes from its leading marker pair; a marker token that is not directly
// followed by spaces is ordinary content and the line is a paragraph.
//
// ParseBlocks fails only for token streams Tokenize cannot produce.
func ParseBlocks(tokens []Token) ([]BlockNode, error) {
	var blocks []BlockNode

	for cursor := 0; cursor < len(tokens); {
		if tokens[cursor].Kind == KindLineBreak {
			cursor++
			continue
		}

		block, next, err := blockMarker(tokens, cursor)
		if err != nil {
			return nil, err
		}

		children, next, err := ScanInline(tokens, next)
		if err != nil {
			return nil, err
		}
		block.Children = children
		blocks = append(blocks, block)

		cursor = next
		if cursor < len(tokens) {
			// ScanInline stops on the line-break.
			cursor++
		}
	}

	return blocks, nil
}

// blockMarker peeks at the token at cursor and the one after it and returns
// the block shell together with the cursor past any consumed marker pair.
func blockMarker(tokens []Token, cursor int) (BlockNode, int, error) {
	tok := tokens[cursor]
	if cursor+1 >= len(tokens) || tokens[cursor+1].Kind != KindSpaces {
		return BlockNode{Kind: BlockParagraph}, cursor, nil
	}

	switch tok.Kind {
	case KindSharps:
		if tok.Count < 1 {
			return BlockNode{}, cursor, errors.StructuralViolation("block", cursor, "sharps token without count")
		}
		return BlockNode{Kind: BlockHeading, Level: tok.Count}, cursor + 2, nil
	case KindDash:
		return BlockNode{Kind: BlockListItem}, cursor + 2, nil
	case KindOrder:
		if tok.Order < 1 {
			return BlockNode{}, cursor, errors.StructuralViolation("block", cursor, "order token below 1")
		}
		return BlockNode{Kind: BlockOrderListItem, Order: tok.Order}, cursor + 2, nil
	case KindRightArrow:
		return BlockNode{Kind: BlockBlockquote}, cursor + 2, nil
	}
	return BlockNode{Kind: BlockParagraph}, cursor, nil
}
