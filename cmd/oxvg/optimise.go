package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"github.com/oxvg/oxvg-go/internal/config"
	"github.com/oxvg/oxvg-go/internal/optimise"
	"github.com/oxvg/oxvg-go/internal/walkfs"
	"github.com/oxvg/oxvg-go/internal/xmlio"
)

const printConfigSentinel = "-"

var (
	optOutput    string
	optConfig    string
	optRecursive bool
	optHidden    bool
	optThreads   int
	optExtends   string
	optPretty    xmlio.Indent
	optSpace     xmlio.Space
)

var optimiseCmd = &cobra.Command{
	Use:   "optimise [paths...]",
	Short: "Optimise SVG documents, writing them to stdout or to --output",
	RunE:  runOptimise,
}

func init() {
	rootCmd.AddCommand(optimiseCmd)
	fs := optimiseCmd.Flags()
	fs.StringVarP(&optOutput, "output", "o", "", "write here (dir mirrors input tree); default stdout")
	fs.StringVarP(&optConfig, "config", "c", "", "JSON config; bare -c prints effective config")
	fs.Lookup("config").NoOptDefVal = printConfigSentinel
	fs.BoolVarP(&optRecursive, "recursive", "r", false, "descend directories")
	fs.BoolVarP(&optHidden, "hidden", ".", false, "include hidden files")
	fs.IntVarP(&optThreads, "threads", "t", 0, "0 = auto")
	fs.StringVarP(&optExtends, "extends", "e", "", "built-in preset name")
	registerPrettyFlag(fs, &optPretty)
	registerSpaceFlag(fs, &optSpace)
}

func runOptimise(cmd *cobra.Command, args []string) error {
	cfg, err := loadEffectiveConfig(optConfig, optExtends)
	if err != nil {
		return usageError(err)
	}
	if optConfig == printConfigSentinel {
		return printConfig(cmd.OutOrStdout(), cfg)
	}

	writeOpts := xmlio.WriteOptions{Indent: optPretty, Space: optSpace}

	if isStdinInput(args) {
		return runStdin(cmd, cfg.Optimise, writeOpts)
	}
	if len(args) == 0 {
		return usageError(fmt.Errorf("optimise requires at least one path"))
	}
	return runPaths(cmd, args, cfg.Optimise, writeOpts)
}

func isStdinInput(args []string) bool {
	if len(args) > 1 {
		return false
	}
	if len(args) == 1 && args[0] != "." {
		return false
	}
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}

func runStdin(cmd *cobra.Command, cfg config.OptimiseConfig, writeOpts xmlio.WriteOptions) error {
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		return usageError(err)
	}
	result, err := optimise.Run(string(source), "<stdin>", cfg, writeOpts)
	if err != nil {
		return internalError(err)
	}
	return writeResult(cmd, result.Output, optOutput)
}

func runPaths(cmd *cobra.Command, paths []string, cfg config.OptimiseConfig, writeOpts xmlio.WriteOptions) error {
	opts := walkfs.Options{Recursive: optRecursive, Hidden: optHidden, Threads: optThreads}
	var mu sync.Mutex
	var firstErr error

	err := walkfs.Run(context.Background(), paths, opts, func(ctx context.Context, f walkfs.File) error {
		source, err := os.ReadFile(f.Path)
		if err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
			return nil
		}
		result, err := optimise.Run(string(source), f.Path, cfg, writeOpts)
		if err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
			return nil
		}
		return writeFileResult(cmd, f, result.Output)
	})
	if err != nil {
		return usageError(err)
	}
	if firstErr != nil {
		return internalError(firstErr)
	}
	return nil
}

func writeFileResult(cmd *cobra.Command, f walkfs.File, output string) error {
	if optOutput == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), output)
		return err
	}
	dest, err := walkfs.OutputPath(f, optOutput)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, []byte(output), 0o644)
}

func writeResult(cmd *cobra.Command, output, dest string) error {
	if dest == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), output)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, []byte(output), 0o644)
}

func loadEffectiveConfig(path, extends string) (config.Config, error) {
	var cfg config.Config
	var err error
	if path != "" && path != printConfigSentinel {
		cfg, err = config.Load(path)
	} else {
		cfg = config.DefaultConfig()
	}
	if err != nil {
		return config.Config{}, err
	}
	if extends != "" {
		cfg.Optimise.Extends = &extends
	}
	return config.Resolve(cfg)
}

func printConfig(w io.Writer, cfg config.Config) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return internalError(err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
