// SPDX-License-Identifier: MIT
// Package: pslfsm/cmd/pslfsm
//
// build_cmd.go — `pslfsm build <sample>`: runs clock wiring and FSM
// construction only, then prints the resulting state/edge graph as plain
// text. Useful for inspecting design component C4's output without also
// lowering it.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pslfsm/compiler/diag"
	"github.com/pslfsm/compiler/fsm"
	"github.com/pslfsm/compiler/fsm/invariant"
	"github.com/pslfsm/compiler/guard"
	"github.com/pslfsm/compiler/numfold"
	"github.com/pslfsm/compiler/psl"
)

// stripClocked mirrors compile.stripClocked: it rebuilds top's wrapper
// chain with the nested CLOCKED form removed, substituting CLOCKED's own
// inner property in its place. fsm.Build has no CLOCKED recipe of its
// own; clock.Wire owns that unwrapping, but only for the purpose of
// resolving the clock expression, not for rewriting the tree fsm.Build
// sees.
func stripClocked(n psl.Node) (psl.Node, error) {
	switch n.Kind() {
	case psl.KindAlways, psl.KindNever, psl.KindAssert, psl.KindAssume, psl.KindRestrict, psl.KindCover:
		s, ok := n.(*psl.Stub)
		if !ok {
			return nil, fmt.Errorf("clock stripping requires a *psl.Stub directive, got %T", n)
		}
		if !n.HasValue() {
			return nil, fmt.Errorf("%s has no inner value", n.Kind())
		}
		inner, err := stripClocked(n.Value())
		if err != nil {
			return nil, err
		}
		cp := *s
		cp.Val = inner
		return &cp, nil
	case psl.KindClocked:
		if !n.HasValue() {
			return nil, fmt.Errorf("CLOCKED node has no inner value")
		}
		return n.Value(), nil
	default:
		return nil, fmt.Errorf("expected a CLOCKED form, found %s", n.Kind())
	}
}

func newBuildCmd() *cobra.Command {
	var checkInvariants bool
	cmd := &cobra.Command{
		Use: "build <sample>",
		Short: "Build the FSM for a sample directive and print its states and edges",
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
				return fmt.Errorf("pslfsm: build: %w", err)
			}
			if sink.ErrorCount() > 0 {
				return fmt.Errorf("pslfsm: build: %d diagnostic(s) reported", sink.ErrorCount())
			}

			if checkInvariants {
				if err := invariant.Check(f); err != nil {
					return fmt.Errorf("pslfsm: invariant check failed: %w", err)
				}
				if !invariant.Reachable(f) {
					return fmt.Errorf("pslfsm: unreachable states after construction")
				}
			}

			printFSM(cmd, f)
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkInvariants, "check", false, "run the epsilon-acyclicity and reachability checks after construction")
	return cmd
}

func printFSM(cmd *cobra.Command, f *fsm.FSM) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "kind: %s\n", f.Kind)
	fmt.Fprintf(out, "states: %d\n", f.NextID())
	for _, st := range f.States() {
		flags := ""
		if st.Initial {
			flags += " initial"
		}
		if st.Accept {
			flags += " accept"
		}
		if st.Strong {
			flags += " strong"
		}
		fmt.Fprintf(out, "  state %d%s\n", st.ID, flags)
		for _, e := range st.Edges {
			label := guard.Print(e.Guard, nil)
			if label == "" {
				label = "<unconditional>"
			}
			fmt.Fprintf(out, "    -> %d [%s] %s\n", e.Dest, e.Kind, label)
		}
	}
}
