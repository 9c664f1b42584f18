package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/domeafavour/hello-ast/cmd/mdc/commands"
	"github.com/domeafavour/hello-ast/internal/errors"
	"github.com/domeafavour/hello-ast/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Must(cli,
		kong.Name("mdc"),
		kong.Description("Compile a small markdown dialect to JSON, YAML, HTML or text."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := &commands.Global{
		Ctx:    ctx,
		Logger: slog.Default(),
		In:     os.Stdin,
		Out:    os.Stdout,
	}

	if err := kctx.Run(g, cli); err != nil {
		stop()
		os.Exit(errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err))
	}
}
