package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/oxvg/oxvg-go/internal/diagnostic"
	"github.com/oxvg/oxvg-go/internal/lint"
	"github.com/oxvg/oxvg-go/internal/lsp"
	"github.com/oxvg/oxvg-go/internal/walkfs"
)

var (
	lintConfig    string
	lintRecursive bool
	lintHidden    bool
	lintThreads   int
	lintLevel     string
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate SVG documents against the lint rule set",
}

var lintCheckCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report lint diagnostics and exit non-zero at or above --level",
	RunE:  runLintCheck,
}

var lintServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Speak LSP on stdio, publishing lint diagnostics for open documents",
	RunE:  runLintServe,
}

func init() {
	rootCmd.AddCommand(lintCmd)
	lintCmd.AddCommand(lintCheckCmd)
	lintCmd.AddCommand(lintServeCmd)

	check := lintCheckCmd.Flags()
	check.StringVarP(&lintConfig, "config", "c", "", "JSON config")
	check.BoolVarP(&lintRecursive, "recursive", "r", false, "descend directories")
	check.BoolVarP(&lintHidden, "hidden", ".", false, "include hidden files")
	check.IntVarP(&lintThreads, "threads", "t", 0, "0 = auto")
	check.StringVarP(&lintLevel, "level", "l", "warn", "exit-code threshold: off, warn, or error")

	lintServeCmd.Flags().StringVarP(&lintConfig, "config", "c", "", "JSON config")
}

func runLintCheck(cmd *cobra.Command, args []string) error {
	threshold, ok := diagnostic.ParseSeverity(lintLevel)
	if !ok {
		return usageError(fmt.Errorf("invalid --level %q", lintLevel))
	}

	effective, err := loadEffectiveConfig(lintConfig, "")
	if err != nil {
		return usageError(err)
	}
	cfg := effective.Lint.Severities()

	if len(args) == 0 {
		return usageError(fmt.Errorf("lint check requires at least one path"))
	}

	opts := walkfs.Options{Recursive: lintRecursive, Hidden: lintHidden, Threads: lintThreads}
	var mu sync.Mutex
	var firstErr error
	exitCode := exitOK

	err = walkfs.Run(context.Background(), args, opts, func(ctx context.Context, f walkfs.File) error {
		source, readErr := os.ReadFile(f.Path)
		if readErr != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = readErr
			}
			mu.Unlock()
			return nil
		}
		report, lintErr := lint.Run(string(source), f.Path, cfg)
		mu.Lock()
		defer mu.Unlock()
		if lintErr != nil {
			if firstErr == nil {
				firstErr = lintErr
			}
			return nil
		}
		for _, d := range report.Diagnostics {
			fmt.Fprintln(cmd.OutOrStdout(), diagnostic.Render(d, f.Path, string(source)))
		}
		if report.ExitCode(threshold) != exitOK {
			exitCode = exitReported
		}
		return nil
	})
	if err != nil {
		return usageError(err)
	}
	if firstErr != nil {
		return internalError(firstErr)
	}
	if exitCode != exitOK {
		return reportedError(fmt.Errorf("lint diagnostics reported at or above %q", lintLevel))
	}
	return nil
}

func runLintServe(cmd *cobra.Command, args []string) error {
	server, err := lsp.NewServer(os.Stdin, os.Stdout, lintConfig, version)
	if err != nil {
		return usageError(err)
	}
	if err := server.Serve(); err != nil {
		return internalError(err)
	}
	return nil
}
