package markdown

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Tokenize converts input into a flat token sequence. It never fails: any
// character that does not start a richer token ends up in a text token, so
// RenderTokens(Tokenize(input)) == input. Input is scanned by byte offset and
// token values are slices of input, so invalid UTF-8 passes through as is.
//
// Bracket and parenthesis contents pair with the nearest closing delimiter on
// the same line and do not nest.
func Tokenize(input string) []Token {
	tokens := make([]Token, 0, len(input)/2+1)

	for i := 0; i < len(input); {
		c := input[i]
		switch {
		case c == '#':
			n := runLength(input, i, '#')
			tokens = append(tokens, SharpsToken(n))
			i += n
		case c == ' ':
			n := runLength(input, i, ' ')
			tokens = append(tokens, SpacesToken(n))
			i += n
		case c == '\n':
			tokens = append(tokens, LineBreakToken())
			i++
		case c == '-':
			tokens = append(tokens, DashToken())
			i++
		case c == '`':
			tokens = append(tokens, BackQuoteToken())
			i++
		case c == '>':
			tokens = append(tokens, RightArrowToken())
			i++
		case c == '[':
			tok, next := delimited(input, i, '[', ']', SquareParenContentToken)
			tokens = append(tokens, tok)
			i = next
		case c == '(':
			tok, next := delimited(input, i, '(', ')', ParenContentToken)
			tokens = append(tokens, tok)
			i = next
		case c == ']' || c == ')':
			tokens = append(tokens, TextToken(input[i:i+1]))
			i++
		case isDigit(c):
			tok, next := digits(input, i)
			tokens = append(tokens, tok)
			i = next
		default:
			// Specials are ASCII, so a byte scan never splits a multi-byte rune.
			j := i + 1
			for j < len(input) && !isSpecial(input[j]) {
				j++
			}
			tokens = append(tokens, TextToken(input[i:j]))
			i = j
		}
	}

	return tokens
}

func runLength(src string, start int, b byte) int {
	n := 0
	for start+n < len(src) && src[start+n] == b {
		n++
	}
	return n
}

// delimited lexes the construct opened at src[start]. Without a closing
// delimiter on the same line the opener becomes a one-character text token and
// lexing resumes right after it.
func delimited(src string, start int, open, closing byte, build func(string) Token) (Token, int) {
	for k := start + 1; k < len(src); k++ {
		switch src[k] {
		case closing:
			return build(src[start+1 : k]), k + 1
		case open, '\n':
			return TextToken(src[start : start+1]), start + 1
		}
	}
	return TextToken(src[start : start+1]), start + 1
}

// digits lexes a digit run starting at src[start]. `N. ` becomes an order
// token covering the digits and the dot; anything else is plain text.
func digits(src string, start int) (Token, int) {
	end := start
	for end < len(src) && isDigit(src[end]) {
		end++
	}
	run := src[start:end]

	isMarker := end+1 < len(src) && src[end] == '.' && src[end+1] == ' '
	if start > 0 {
		if prev, _ := utf8.DecodeLastRuneInString(src[:start]); unicode.IsLetter(prev) || unicode.IsDigit(prev) {
			isMarker = false
		}
	}
	if isMarker {
		// Zero and out-of-range values cannot number a list item.
		if v, err := strconv.Atoi(run); err == nil && v >= 1 {
			return Token{Kind: KindOrder, Order: v, Raw: run + "."}, end + 1
		}
	}
	return TextToken(run), end
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// isSpecial reports whether b ends a text run.
func isSpecial(b byte) bool {
	switch b {
	case '#', ' ', '\n', '>', '`', '(', ')', '[', ']':
		return true
	}
	return false
}
