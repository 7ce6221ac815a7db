// SPDX-License-Identifier: MIT
// Package: pslfsm/cmd/pslfsm
//
// main.go — the CLI entry point: build → lower → (optionally) visualise,
// wired with github.com/spf13/cobra: a root command with one subcommand per
// pipeline stage, flags bound directly to each subcommand's local state.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use: "pslfsm",
		Short: "Compile a small catalog of sample PSL directives to an FSM, IR, and DOT graph",
		Long: "pslfsm drives the PSL temporal-property compiler core against a " +
			"fixed catalog of sample directives (no PSL parser is wired in), " +
			"useful for inspecting each pipeline stage in isolation.",
		SilenceUsage: true,
	}
	root.AddCommand(newListCmd(), newBuildCmd(), newLowerCmd(), newDotCmd(), newCoverCmd())
	return root
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use: "list",
		Short: "List the sample directives available to the other subcommands",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range catalog {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", s.name, s.desc)
			}
			return nil
		},
	}
}
