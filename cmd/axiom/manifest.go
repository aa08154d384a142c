package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/axiom-lang/axiom/check"
	"github.com/axiom-lang/axiom/manifest"
	"github.com/axiom-lang/axiom/parser"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest <file>",
	Short: "Render an axiom program's capability manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		prog, err := parser.Parse(string(src))
		if err != nil {
			return err
		}
		typed, err := check.Typecheck(prog)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), manifest.Render(typed))
		return nil
	},
}
