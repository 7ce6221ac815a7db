// SPDX-License-Identifier: MIT
// Package: pslfsm/cmd/pslfsm
//
// cover_cmd.go — `pslfsm cover <sample>`: lowers a sample with coverage
// recording enabled, simulates a handful of ticks, then dumps and reloads
// the resulting coverage database as YAML to demonstrate the round-trip.
package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pslfsm/compiler/compile"
	"github.com/pslfsm/compiler/cover"
	"github.com/pslfsm/compiler/diag"
	"github.com/pslfsm/compiler/guard"
	"github.com/pslfsm/compiler/numfold"
	"github.com/pslfsm/compiler/runtime"
)

func newCoverCmd() *cobra.Command {
	var ticks int
	cmd := &cobra.Command{
		Use: "cover <sample>",
		Short: "Simulate a sample with coverage recording and print the dump -> reload round-trip",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := findSample(args[0])
			if err != nil {
				return err
			}
			if ticks <= 0 {
				ticks = 4
			}

			sink := diag.New(nil)
			covDB := cover.New(true)
			opts := compile.Options{
				Folder: numfold.StubFolder{},
				HDL: guard.MapLowerer{AllBool: true},
				Coverage: covDB,
			}
			prog, err := compile.Compile(s.build(), s.name, opts, sink)
			if err != nil {
				return fmt.Errorf("pslfsm: cover: %w", err)
			}
			if sink.ErrorCount() > 0 {
				return fmt.Errorf("pslfsm: cover: %d diagnostic(s) reported", sink.ErrorCount())
			}

			interp := runtime.NewInterpreter(prog, false, nil)
			env := runtime.MapEnv{"req": 1, "ack": 1, "grant": 1}
			for i := 0; i < ticks; i++ {
				interp.Tick(env)
			}

			var buf bytes.Buffer
			if err := covDB.Dump(&buf); err != nil {
				return fmt.Errorf("pslfsm: cover: dump: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), buf.String())

			reloaded := cover.New(true)
			if err := reloaded.Load(bytes.NewReader(buf.Bytes())); err != nil {
				return fmt.Errorf("pslfsm: cover: reload: %w", err)
			}
			var before, after int
			for _, sc := range covDB.Scopes() {
				before += sc.Totals()
			}
			for _, sc := range reloaded.Scopes() {
				after += sc.Totals()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "totals before=%d after=%d\n", before, after)
			return nil
		},
	}
	cmd.Flags().IntVar(&ticks, "ticks", 4, "number of ticks to simulate")
	return cmd
}
