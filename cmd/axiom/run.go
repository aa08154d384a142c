package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/axiom-lang/axiom/capability"
	"github.com/axiom-lang/axiom/check"
	"github.com/axiom-lang/axiom/interp"
	"github.com/axiom-lang/axiom/parser"
	"github.com/axiom-lang/axiom/policy"
	"github.com/axiom-lang/axiom/registry"
	"github.com/axiom-lang/axiom/schema"
	"github.com/axiom-lang/axiom/telemetry"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Typecheck and interpret an axiom program",
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

		var reg registry.Registry = registry.NewMockWithDefaults()
		if effectiveStrict() {
			reg = schema.StrictRegistry{Inner: reg, Tools: typed.Tools}
		}

		opts := interp.Options{DeterministicSeed: effectiveSeed(), Logger: telemetry.NewClueLogger()}
		if mc, mf := effectiveMaxToolCalls(), effectiveMaxFailures(); mc > 0 || mf > 0 {
			opts.Policy = policy.New(policy.Options{MaxToolCalls: mc, MaxConsecutiveFailures: mf})
		}

		log, err := interp.Execute(cmd.Context(), typed, capability.Default(), reg, interp.PrinterFunc(func(line string) {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}), opts)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "run_id=%s\n", log.RunID)
		fmt.Fprintf(cmd.OutOrStdout(), "replay_hash=%s\n", log.DigestHex())
		if replayOut != "" {
			if err := os.WriteFile(replayOut, []byte(log.ToText()), 0o644); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&replayOut, "replay-out", "", "write the replay log's canonical text to this path")
}
