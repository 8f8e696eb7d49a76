package contract

import (
	"fmt"
	"strings"
)

// MissingDependencyError reports a required external utility that is not installed.
type MissingDependencyError struct {
	Tool string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("required utility %q was not found on your PATH", e.Tool)
}

// NotARepositoryError reports a path with no git repository above it.
type NotARepositoryError struct {
	Path string
}

func (e *NotARepositoryError) Error() string {
	return fmt.Sprintf("%q is not inside a git working tree. Run quickstats from a repository or 'git init' first", e.Path)
}

// ExternalToolError reports a git query that exited non-zero or could not run.
type ExternalToolError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExternalToolError) Error() string {
	cmd := "git " + strings.Join(e.Args, " ")
	if e.Stderr != "" {
		return fmt.Sprintf("%s exited with code %d: %s", cmd, e.ExitCode, e.Stderr)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", cmd, e.Err)
	}
	return fmt.Sprintf("%s exited with code %d", cmd, e.ExitCode)
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

// InvalidArgumentError reports a command line that selects no single report.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid arguments: " + e.Reason
}

// MissingRequiredInputError reports a report parameter that was never supplied.
type MissingRequiredInputError struct {
	Input string
}

func (e *MissingRequiredInputError) Error() string {
	return fmt.Sprintf("missing required input: %s", e.Input)
}
