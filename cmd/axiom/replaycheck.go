package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/axiom-lang/axiom/replay"
)

var replayCheckCmd = &cobra.Command{
	Use:   "replay-check <file>",
	Short: "Parse a replay log and print its digest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		log, err := replay.FromText(string(text))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "replay_hash=%s\n", log.DigestHex())
		return nil
	},
}
