package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/ptaledger/formatter"
	"github.com/robinvdvleuten/ptaledger/loader"
)

type FormatCmd struct {
	File        FileOrStdin `help:"Ledger input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	PrefixWidth int         `help:"Width in characters for account prefixes (auto if 0)." default:"0"`
	NumWidth    int         `help:"Width for amounts (auto if 0)." default:"0"`
	Canonical   bool        `help:"Drop standalone comments, headings and blank lines."`
}

func (cmd *FormatCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, report := globals.runContext(ctx.Stderr, "format")
	defer report()

	ldr := loader.New(loader.WithLogger(globals.Logger(ctx.Stderr)))
	result, err := cmd.File.Load(runCtx, ldr)
	if err != nil {
		source, _ := cmd.File.GetSourceContent()
		_, _ = fmt.Fprint(ctx.Stderr, NewErrorRenderer(source).Render(err))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, failureMessage(err))
		return NewCommandError(ExitInvalidLedger)
	}

	var opts []formatter.Option
	if cmd.PrefixWidth > 0 {
		opts = append(opts, formatter.WithPrefixWidth(cmd.PrefixWidth))
	}
	if cmd.NumWidth > 0 {
		opts = append(opts, formatter.WithNumWidth(cmd.NumWidth))
	}
	if !cmd.Canonical {
		opts = append(opts, formatter.WithSource(result.Source))
	}

	return formatter.New(opts...).Format(runCtx, result.Ledger, ctx.Stdout)
}
