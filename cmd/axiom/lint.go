package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/axiom-lang/axiom/ast"
	"github.com/axiom-lang/axiom/check"
	"github.com/axiom-lang/axiom/parser"
)

var lintCmd = &cobra.Command{
	Use:   "lint <file>",
	Short: "Typecheck a program and flag common mistakes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		src := string(raw)
		prog, err := parser.Parse(src)
		if err != nil {
			return err
		}
		typed, err := check.Typecheck(prog)
		if err != nil {
			return err
		}
		if strings.Contains(src, " timeout 0;") {
			return errors.New("tool calls must use timeout > 0")
		}
		if typed.Effect == ast.Tool && len(typed.Manifest.RequiredCaps) == 0 {
			return errors.New("tool effects require manifest capabilities")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "lint ok")
		return nil
	},
}
