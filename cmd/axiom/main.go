// Command axiom compiles and runs axiom programs: a deterministic DSL for
// declaring tools, invoking them under capability tokens, and producing a
// reproducible replay log of the result.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
