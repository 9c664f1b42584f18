package commands

import (
	"bufio"
	"os"

	"github.com/domeafavour/hello-ast/internal/docmodel"
	"github.com/domeafavour/hello-ast/internal/errors"
	"github.com/domeafavour/hello-ast/internal/logfields"
	"github.com/domeafavour/hello-ast/internal/markdown"
	"github.com/domeafavour/hello-ast/internal/render"
)

// CompileCmd implements the 'compile' command.
type CompileCmd struct {
	Input  string `arg:"" optional:"" help:"Markdown file to compile (default: stdin)"`
	Format string `short:"f" help:"Output format (json|yaml|html|text); defaults to output.format"`
	Raw    bool   `help:"Skip normalization of adjacent text nodes"`
	Output string `short:"o" help:"Write to this file instead of stdout" type:"path"`
}

func (c *CompileCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.Settings()
	if err != nil {
		return err
	}

	format, err := render.ParseFormat(orDefault(c.Format, cfg.Output.Format))
	if err != nil {
		return err
	}

	content, err := readInput(g, c.Input)
	if err != nil {
		return err
	}

	doc, err := docmodel.Parse(content, docmodel.Options{
		Unicode: cfg.Compile.Unicode,
		Compile: markdown.Options{Raw: c.Raw || !cfg.Compile.NormalizeEnabled(), Logger: g.Logger},
	})
	if err != nil {
		return err
	}

	if c.Output == "" {
		return render.Write(g.Out, format, doc.Document)
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return errors.WriteFailed(c.Output, err)
	}
	w := bufio.NewWriter(f)
	if err := render.Write(w, format, doc.Document); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return errors.WriteFailed(c.Output, err)
	}
	if err := f.Close(); err != nil {
		return errors.WriteFailed(c.Output, err)
	}
	g.Logger.Info("Wrote compiled document", logfields.Path(c.Output), logfields.Format(string(format)))
	return nil
}
