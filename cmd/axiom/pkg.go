package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var pkgLock bool

var pkgCmd = &cobra.Command{
	Use:   "pkg",
	Short: "Manage the axiom.lock package lockfile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !pkgLock {
			fmt.Fprintln(cmd.OutOrStdout(), "axiom pkg --lock")
			return nil
		}
		const content = "version = 1\nchecksum_algo = \"fnv1a64\"\n"
		if err := os.WriteFile("axiom.lock", []byte(content), 0o644); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "wrote axiom.lock")
		return nil
	},
}

func init() {
	pkgCmd.Flags().BoolVar(&pkgLock, "lock", false, "write axiom.lock")
}
