package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/ptaledger/errors"
	"github.com/robinvdvleuten/ptaledger/loader"
)

type CheckCmd struct {
	Files  []string `help:"Ledger input filenames (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Watch  bool     `help:"Check again whenever one of the files changes." short:"w"`
	Errors string   `help:"Error output format (${enum})." enum:"text,json" default:"text"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	inputs, err := cmd.inputs()
	if err != nil {
		return err
	}

	runCtx, report := globals.runContext(ctx.Stderr, "check")
	logger := globals.Logger(ctx.Stderr)
	ldr := loader.New(loader.WithLogger(logger))

	err = cmd.check(runCtx, ldr, inputs, ctx.Stdout, ctx.Stderr)
	report()

	if !cmd.Watch {
		return err
	}

	var files []string
	for _, in := range inputs {
		if in.Filename != stdinName {
			files = append(files, in.Filename)
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("--watch needs at least one file")
	}

	watchCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	styled := make([]string, len(files))
	for i, name := range files {
		styled[i] = pathStyle.Render(name)
	}
	printInfof(ctx.Stderr, "Watching %s for changes", strings.Join(styled, ", "))
	return watchFiles(watchCtx, logger, files, func() {
		runCtx, report := globals.runContext(ctx.Stderr, "check")
		_ = cmd.check(runCtx, ldr, inputs, ctx.Stdout, ctx.Stderr)
		report()
	})
}

func (cmd *CheckCmd) inputs() ([]*FileOrStdin, error) {
	if len(cmd.Files) == 0 {
		in := &FileOrStdin{}
		return []*FileOrStdin{in}, in.EnsureContents()
	}

	inputs := make([]*FileOrStdin, 0, len(cmd.Files))
	for _, name := range cmd.Files {
		in := &FileOrStdin{Filename: name}
		if name == "-" {
			if err := in.readStdin(); err != nil {
				return nil, err
			}
		} else if _, err := os.Stat(name); err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// check loads every input concurrently and reports the first failure.
func (cmd *CheckCmd) check(ctx context.Context, ldr *loader.Loader, inputs []*FileOrStdin, stdout, stderr io.Writer) error {
	var (
		files   []string
		sources = map[string]*FileOrStdin{}
		entries int
		err     error
	)
	for _, in := range inputs {
		if in.Filename == stdinName {
			var result *loader.Result
			if result, err = in.Load(ctx, ldr); err != nil {
				return cmd.fail(err, in, stdout, stderr)
			}
			entries += result.Ledger.Len()
			continue
		}
		name := in.GetAbsoluteFilename()
		files = append(files, name)
		sources[name] = in
	}

	results, err := ldr.LoadAll(ctx, files...)
	if err != nil {
		return cmd.fail(err, sources[errors.Filename(err)], stdout, stderr)
	}
	for _, result := range results {
		entries += result.Ledger.Len()
	}

	printSuccess(stdout, fmt.Sprintf("Check passed (%d file(s), %d entries)", len(inputs), entries))
	return nil
}

func (cmd *CheckCmd) fail(err error, in *FileOrStdin, stdout, stderr io.Writer) error {
	if cmd.Errors == "json" {
		_, _ = fmt.Fprintln(stdout, errors.NewJSONFormatter().FormatAll([]error{err}))
		return NewCommandError(ExitInvalidLedger)
	}

	var source []byte
	if in != nil {
		source, _ = in.GetSourceContent()
	}
	_, _ = fmt.Fprintln(stderr, NewErrorRenderer(source).Render(err))
	_, _ = fmt.Fprintln(stderr)
	printError(stderr, failureMessage(err))
	return NewCommandError(ExitInvalidLedger)
}

func failureMessage(err error) string {
	switch kind := errors.Kind(err); kind {
	case "syntax", "structural":
		return kind + " error"
	default:
		return "check failed"
	}
}
