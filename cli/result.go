package cli

import "fmt"

// ExitInvalidLedger is the exit code of a command whose input could not be
// read, did not match the grammar or could not be built into entries.
const ExitInvalidLedger = 1

// CommandError is returned by a command that has already written its
// diagnostics to stderr. main exits with ExitCode and prints nothing more.
type CommandError struct {
	code int
}

// NewCommandError returns a CommandError that exits with code.
func NewCommandError(code int) *CommandError {
	return &CommandError{code: code}
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command failed with exit code %d", e.code)
}

// ExitCode returns the process exit code.
func (e *CommandError) ExitCode() int {
	return e.code
}
