// SPDX-License-Identifier: MIT
// Package: pslfsm/cmd/pslfsm
//
// dot_cmd.go — `pslfsm dot <sample>`: builds the FSM and writes it as a
// DOT graph, optionally invoking `dot -Tsvg -O` via fsm/dot.Render.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pslfsm/compiler/diag"
	"github.com/pslfsm/compiler/fsm"
	"github.com/pslfsm/compiler/fsm/dot"
	"github.com/pslfsm/compiler/numfold"
)

func newDotCmd() *cobra.Command {
	var outFile string
	var render bool
	cmd := &cobra.Command{
		Use: "dot <sample>",
		Short: "Write a sample directive's FSM as a DOT graph",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := findSample(args[0])
			if err != nil {
				return err
			}
			top := s.build()
			stripped, err := stripClocked(top)
			if err != nil {
				return err
			}

			sink := diag.New(nil)
			f, err := fsm.Build(stripped, numfold.StubFolder{}, sink)
			if err != nil {
				return fmt.Errorf("pslfsm: dot: %w", err)
			}
			if sink.ErrorCount() > 0 {
				return fmt.Errorf("pslfsm: dot: %d diagnostic(s) reported", sink.ErrorCount())
			}

			if outFile == "" {
				outFile = s.name + ".dot"
			}
			file, err := os.Create(outFile)
			if err != nil {
				return fmt.Errorf("pslfsm: dot: %w", err)
			}
			defer file.Close()
			if err := dot.Write(file, f, nil); err != nil {
				return fmt.Errorf("pslfsm: dot: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outFile)

			if render {
				if err := dot.Render(outFile); err != nil {
					return fmt.Errorf("pslfsm: dot: render: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "rendered %s.svg\n", outFile)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "output .dot file path (default <sample>.dot)")
	cmd.Flags().BoolVar(&render, "render", false, "invoke the external `dot` tool to render an SVG alongside the .dot file")
	return cmd
}
