package commands

import (
	"encoding/json"
	"fmt"

	"github.com/domeafavour/hello-ast/internal/errors"
	"github.com/domeafavour/hello-ast/internal/markdown"
)

// TokensCmd implements the 'tokens' command.
type TokensCmd struct {
	Input string `arg:"" optional:"" help:"Markdown file to tokenize (default: stdin)"`
	JSON  bool   `help:"Print tokens as a JSON array"`
}

func (t *TokensCmd) Run(g *Global, _ *CLI) error {
	content, err := readInput(g, t.Input)
	if err != nil {
		return err
	}

	tokens := markdown.Tokenize(string(content))
	if t.JSON {
		if tokens == nil {
			tokens = []markdown.Token{}
		}
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tokens); err != nil {
			return errors.RenderFailed("json", err)
		}
		return nil
	}

	for _, tok := range tokens {
		if _, err := fmt.Fprintln(g.Out, tok.String()); err != nil {
			return errors.WriteFailed("<stdout>", err)
		}
	}
	return nil
}
