package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
	"gopkg.in/yaml.v3"

	"github.com/robinvdvleuten/ptaledger/loader"
)

type DumpCmd struct {
	File   FileOrStdin `help:"Ledger input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Output string      `help:"Output format (${enum})." enum:"repr,json,yaml" default:"repr" short:"o"`
}

func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, report := globals.runContext(ctx.Stderr, "dump")
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

	switch cmd.Output {
	case "json":
		enc := json.NewEncoder(ctx.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Ledger)
	case "yaml":
		enc := yaml.NewEncoder(ctx.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(result.Ledger); err != nil {
			return err
		}
		return enc.Close()
	default:
		repr.New(ctx.Stdout, repr.Indent("  "), repr.OmitEmpty(true)).Println(result.Ledger.Entries())
		return nil
	}
}
