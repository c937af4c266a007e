package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxvg/oxvg-go/internal/log"
)

// Exit codes (§6): 0 success; 1 reported diagnostics at/above threshold;
// 2 usage/IO error; 3 internal error.
const (
	exitOK           = 0
	exitReported     = 1
	exitUsageOrIO    = 2
	exitInternal     = 3
)

// cliError carries the exit code a failed command should terminate with,
// since cobra's RunE only gives us an error, not a code (§7's
// IOError/InternalError/LintReported map to distinct codes).
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func usageError(err error) error    { return &cliError{code: exitUsageOrIO, err: err} }
func internalError(err error) error { return &cliError{code: exitInternal, err: err} }
func reportedError(err error) error { return &cliError{code: exitReported, err: err} }

var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "oxvg",
	Short:         "oxvg optimises and lints SVG documents",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// RUST_LOG is honoured for debug output only (§6 "Environment").
func init() {
	if raw := os.Getenv("RUST_LOG"); raw != "" {
		if level, ok := log.ParseLevel(raw); ok {
			log.SetDefault(log.New(os.Stderr, level))
		}
	}
}

// Execute runs the command tree and returns the process exit code (§6/§7).
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return exitOK
	}
	var ce *cliError
	if e, ok := err.(*cliError); ok {
		ce = e
	}
	if ce == nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return exitInternal
	}
	fmt.Fprintln(os.Stderr, "error:", ce.err)
	return ce.code
}
