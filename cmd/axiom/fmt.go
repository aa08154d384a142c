package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Trim trailing and leading whitespace from each source line in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		lines := strings.Split(string(src), "\n")
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		for i, line := range lines {
			lines[i] = strings.TrimSpace(line)
		}
		out := strings.Join(lines, "\n") + "\n"
		return os.WriteFile(args[0], []byte(out), 0o644)
	},
}
