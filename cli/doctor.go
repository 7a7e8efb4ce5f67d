package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/ptaledger/parser"
	"github.com/robinvdvleuten/ptaledger/telemetry"
)

// DoctorCmd provides doctor utilities for debugging ledger files and the grammar.
type DoctorCmd struct {
	Tree  TreeCmd  `cmd:"" help:"Show the parse tree of a ledger file."`
	Rules RulesCmd `cmd:"" help:"List the grammar rules usable as start rules."`
	Match MatchCmd `cmd:"" help:"Parse a text fragment with a chosen start rule."`
}

// TreeCmd shows the parse tree of a ledger file.
type TreeCmd struct {
	File       FileOrStdin `help:"Ledger input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Rule       string      `help:"Start rule." default:"ledger"`
	Whitespace bool        `help:"Include WHITESPACE nodes."`
}

// Run executes the tree command.
func (cmd *TreeCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	content, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	rule, ok := parser.ParseRule(cmd.Rule)
	if !ok {
		return fmt.Errorf("unknown rule %q", cmd.Rule)
	}

	runCtx, report := globals.runContext(ctx.Stderr, "doctor tree")
	defer report()

	_, timer := telemetry.StartTimer(runCtx, "parse tree")
	root, err := parser.Parse(rule, string(content))
	timer.End()
	if err != nil {
		return renderParseFailure(ctx.Stderr, err, content)
	}

	return parser.Fprint(ctx.Stdout, root, cmd.Whitespace)
}

// RulesCmd lists the grammar rules.
type RulesCmd struct{}

// Run executes the rules command.
func (cmd *RulesCmd) Run(ctx *kong.Context) error {
	for _, r := range parser.Rules() {
		_, _ = fmt.Fprintln(ctx.Stdout, r)
	}
	return nil
}

// MatchCmd parses a fragment with a chosen start rule.
type MatchCmd struct {
	Text       string `help:"Text to parse. Escapes \\n and \\t are expanded." arg:""`
	Rule       string `help:"Start rule (prompted for on a terminal when omitted)."`
	Whitespace bool   `help:"Include WHITESPACE nodes."`
}

// Run executes the match command.
func (cmd *MatchCmd) Run(ctx *kong.Context) error {
	name := cmd.Rule
	if name == "" {
		names := make([]string, 0, parser.NumRules)
		for _, r := range parser.Rules() {
			names = append(names, r.String())
		}

		selected, ok, err := promptSelect("Start rule", names)
		if err != nil {
			return err
		}
		if !ok {
			selected = parser.RuleLedger.String()
		}
		name = selected
	}

	rule, ok := parser.ParseRule(name)
	if !ok {
		return fmt.Errorf("unknown rule %q", name)
	}

	text := expandEscapes(cmd.Text)
	root, err := parser.Parse(rule, text)
	if err != nil {
		return renderParseFailure(ctx.Stderr, err, []byte(text))
	}

	printSuccess(ctx.Stderr, fmt.Sprintf("%s matched", rule))
	return parser.Fprint(ctx.Stdout, root, cmd.Whitespace)
}

func renderParseFailure(w io.Writer, err error, source []byte) error {
	_, _ = fmt.Fprintln(w, NewErrorRenderer(source).Render(err))
	_, _ = fmt.Fprintln(w)
	printError(w, failureMessage(err))
	return NewCommandError(ExitInvalidLedger)
}

var escapeReplacer = strings.NewReplacer(`\n`, "\n", `\t`, "\t")

func expandEscapes(s string) string {
	return escapeReplacer.Replace(s)
}
