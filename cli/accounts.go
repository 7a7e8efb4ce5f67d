package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/ptaledger/loader"
)

type AccountsCmd struct {
	File FileOrStdin `help:"Ledger input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

func (cmd *AccountsCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, report := globals.runContext(ctx.Stderr, "accounts")
	defer report()

	ldr := loader.New(loader.WithLogger(globals.Logger(ctx.Stderr)))
	result, err := cmd.File.Load(runCtx, ldr)
	if err != nil {
		source, _ := cmd.File.GetSourceContent()
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(source).Render(err))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, failureMessage(err))
		return NewCommandError(ExitInvalidLedger)
	}

	accounts := result.Ledger.Accounts()
	width := 0
	for _, a := range accounts {
		width = max(width, runewidth.StringWidth(a.String()))
	}

	for _, a := range accounts {
		name := a.String()
		padding := strings.Repeat(" ", width-runewidth.StringWidth(name)+2)
		_, _ = fmt.Fprintf(ctx.Stdout, "%s%s%s\n", name, padding, a.Pinfo.Position)
	}
	return nil
}
