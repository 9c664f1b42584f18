package markdown

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the variant of a Token.
type Kind int

const (
	KindInvalid Kind = iota
	KindSharps
	KindSpaces
	KindLineBreak
	KindDash
	KindOrder
	KindBackQuote
	KindRightArrow
	KindSquareParenContent
	KindParenContent
	KindText
)

var kindNames = [...]string{
	KindInvalid:            "invalid",
	KindSharps:             "sharps",
	KindSpaces:             "spaces",
	KindLineBreak:          "line-break",
	KindDash:               "dash",
	KindOrder:              "order",
	KindBackQuote:          "back-quote",
	KindRightArrow:         "right-arrow",
	KindSquareParenContent: "square-paren-content",
	KindParenContent:       "paren-content",
	KindText:               "text",
}

func (k Kind) String() string {
	if k.valid() || k == KindInvalid {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// valid reports whether k is a kind the lexer can produce.
func (k Kind) valid() bool {
	return k > KindInvalid && k <= KindText
}

// Token is a single lexical unit.
//
// Count is set for sharps and spaces, Order for order tokens and Value for
// text, square-paren-content and paren-content. Raw always holds the exact
// input characters the token was produced from.
type Token struct {
	Kind  Kind
	Count int
	Order int
	Value string
	Raw   string
}

// Literal returns the input characters the token covers.
func (t Token) Literal() string {
	return t.Raw
}

func (t Token) String() string {
	switch t.Kind {
	case KindSharps, KindSpaces:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Count)
	case KindOrder:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Order)
	case KindSquareParenContent, KindParenContent, KindText:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Value)
	default:
		return t.Kind.String()
	}
}

type tokenView struct {
	Type  string `json:"type"`
	Count int    `json:"count,omitempty"`
	Value any    `json:"value,omitempty"`
}

// MarshalJSON encodes the token as {type, count|value}.
func (t Token) MarshalJSON() ([]byte, error) {
	v := tokenView{Type: t.Kind.String()}
	switch t.Kind {
	case KindSharps, KindSpaces:
		v.Count = t.Count
	case KindOrder:
		v.Value = t.Order
	case KindSquareParenContent, KindParenContent, KindText:
		v.Value = t.Value
	}
	return json.Marshal(v)
}

func SharpsToken(count int) Token {
	return Token{Kind: KindSharps, Count: count, Raw: strings.Repeat("#", count)}
}

func SpacesToken(count int) Token {
	return Token{Kind: KindSpaces, Count: count, Raw: strings.Repeat(" ", count)}
}

func LineBreakToken() Token {
	return Token{Kind: KindLineBreak, Raw: "\n"}
}

func DashToken() Token {
	return Token{Kind: KindDash, Raw: "-"}
}

// OrderToken builds an order marker for value. The lexer keeps the digits as
// written (e.g. "007."), this constructor renders them canonically.
func OrderToken(value int) Token {
	return Token{Kind: KindOrder, Order: value, Raw: strconv.Itoa(value) + "."}
}

func BackQuoteToken() Token {
	return Token{Kind: KindBackQuote, Raw: "`"}
}

func RightArrowToken() Token {
	return Token{Kind: KindRightArrow, Raw: ">"}
}

func SquareParenContentToken(value string) Token {
	return Token{Kind: KindSquareParenContent, Value: value, Raw: "[" + value + "]"}
}

func ParenContentToken(value string) Token {
	return Token{Kind: KindParenContent, Value: value, Raw: "(" + value + ")"}
}

func TextToken(value string) Token {
	return Token{Kind: KindText, Value: value, Raw: value}
}

// RenderTokens concatenates the literal form of every token. For any input s,
// RenderTokens(Tokenize(s)) == s.
func RenderTokens(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Literal())
	}
	return b.String()
}
