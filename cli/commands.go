package cli

import "github.com/alecthomas/kong"

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool            `help:"Show timing telemetry for operations."`
	LogLevel  string          `help:"Log level (${enum})." enum:"debug,info,warn,error" default:"warn" env:"PTALEDGER_LOG_LEVEL"`
	Config    kong.ConfigFlag `help:"Load flag defaults from a YAML configuration file." placeholder:"FILE"`
}

type Commands struct {
	Globals

	Check    CheckCmd    `cmd:"" help:"Parse one or more ledger files and report syntax errors."`
	Dump     DumpCmd     `cmd:"" help:"Print the entries of a ledger file."`
	Format   FormatCmd   `cmd:"" help:"Format a ledger file to align amounts."`
	Accounts AccountsCmd `cmd:"" help:"List the accounts referenced by a ledger file."`
	Doctor   DoctorCmd   `cmd:"" help:"Doctor utilities for debugging ledger files and the grammar."`
}
