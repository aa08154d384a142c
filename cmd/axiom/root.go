package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/axiom-lang/axiom/config"
)

var (
	cfg          *config.Config
	replayOut    string
	strictFlag   bool
	seedFlag     uint64
	maxToolCalls int
	maxFailures  int
)

var rootCmd = &cobra.Command{
	Use:   "axiom",
	Short: "Compile, check, and run axiom programs",
	Long: `axiom compiles .axm source files, derives their capability manifest,
and interprets them deterministically, producing a replay log whose digest
is stable across runs.

Examples:
  axiom run program.axm
  axiom manifest program.axm
  axiom replay-check run.log
  axiom lint program.axm`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&strictFlag, "strict", false, "enable structural JSON Schema validation of tool output")
	rootCmd.PersistentFlags().Uint64Var(&seedFlag, "seed", 0, "override the deterministic seed (0 uses config/default)")
	rootCmd.PersistentFlags().IntVar(&maxToolCalls, "max-tool-calls", 0, "abort the run after this many tool calls (0 = unbounded)")
	rootCmd.PersistentFlags().IntVar(&maxFailures, "max-consecutive-failures", 0, "abort the run after this many consecutive tool-call failures (0 = unbounded)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(manifestCmd)
	rootCmd.AddCommand(replayCheckCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(pkgCmd)
	rootCmd.AddCommand(runlogCmd)
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func effectiveSeed() uint64 {
	if seedFlag != 0 {
		return seedFlag
	}
	if cfg != nil && cfg.DeterministicSeed != 0 {
		return cfg.DeterministicSeed
	}
	return 42
}

func effectiveMaxToolCalls() int {
	if maxToolCalls != 0 {
		return maxToolCalls
	}
	if cfg != nil {
		return cfg.MaxToolCalls
	}
	return 0
}

func effectiveMaxFailures() int {
	if maxFailures != 0 {
		return maxFailures
	}
	if cfg != nil {
		return cfg.MaxConsecutiveFailures
	}
	return 0
}

func effectiveStrict() bool {
	return strictFlag || (cfg != nil && cfg.Strict)
}
