// Command oxvg is the CLI surface (§6): `optimise`, `lint check`, and
// `lint serve`, matching the exact flag surface and exit codes spec.md
// §6/§7 describe. Built with github.com/spf13/cobra (command tree,
// RunE error propagation) and github.com/spf13/pflag (custom flag Value
// types for --pretty/--space), the combination cogentcore-core's own
// cmd/ package is built on.
package main

import "os"

func main() {
	os.Exit(Execute())
}
