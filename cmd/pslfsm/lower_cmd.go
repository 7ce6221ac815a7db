// SPDX-License-Identifier: MIT
// Package: pslfsm/cmd/pslfsm
//
// lower_cmd.go — `pslfsm lower <sample>`: runs the full pipeline
// (clock wiring, FSM construction, lowering) via compile.Compile, prints
// the resulting IR program, and, with --ticks, drives it through
// runtime.Interpreter for a dry-run simulation against an all-signals-low
// environment.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pslfsm/compiler/compile"
	"github.com/pslfsm/compiler/cover"
	"github.com/pslfsm/compiler/diag"
	"github.com/pslfsm/compiler/guard"
	"github.com/pslfsm/compiler/ir"
	"github.com/pslfsm/compiler/numfold"
	"github.com/pslfsm/compiler/runtime"
)

func newLowerCmd() *cobra.Command {
	var ticks int
	var coverage bool
	cmd := &cobra.Command{
		Use: "lower <sample>",
		Short: "Lower a sample directive to IR, optionally simulating it for a number of ticks",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := findSample(args[0])
			if err != nil {
				return err
			}
			top := s.build()

			sink := diag.New(nil)
			var covDB *cover.Database
			if coverage {
				covDB = cover.New(true)
			}
			opts := compile.Options{
				Folder: numfold.StubFolder{},
				HDL: guard.MapLowerer{AllBool: true},
				Coverage: covDB,
				CheckInvariants: true,
			}
			prog, err := compile.Compile(top, s.name, opts, sink)
			if err != nil {
				return fmt.Errorf("pslfsm: lower: %w", err)
			}
			if sink.ErrorCount() > 0 {
				return fmt.Errorf("pslfsm: lower: %d diagnostic(s) reported", sink.ErrorCount())
			}

			printProgram(cmd, prog)

			if ticks > 0 {
				rep := runtime.NewLogReporter(nil)
				interp := runtime.NewInterpreter(prog, false, rep)
				env := runtime.MapEnv{}
				for i := 0; i < ticks; i++ {
					interp.Tick(env)
					fmt.Fprintf(cmd.OutOrStdout(), "tick %d: live=%v\n", i, interp.Live())
				}
				interp.Finish()
			}

			if covDB != nil {
				for _, sc := range covDB.Scopes() {
					fmt.Fprintf(cmd.OutOrStdout(), "scope %s: %d hit(s)\n", sc.Name, sc.Totals())
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&ticks, "ticks", 0, "simulate this many ticks against an all-signals-low environment")
	cmd.Flags().BoolVar(&coverage, "coverage", false, "enable the functional-coverage database")
	return cmd
}

func printProgram(cmd *cobra.Command, prog *ir.Program) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "program: %s\n", prog.Name)
	for _, b := range prog.Blocks {
		fmt.Fprintf(out, "block %d:\n", b.ID)
		for _, instr := range b.Instrs {
			fmt.Fprintf(out, "  %s\n", describeInstr(instr))
		}
	}
}

func describeInstr(instr ir.Instr) string {
	switch instr.Op {
	case ir.OpConst:
		return fmt.Sprintf("r%d = const %d", instr.Dst, instr.Const)
	case ir.OpSignal:
		return fmt.Sprintf("r%d = signal %q", instr.Dst, instr.Name)
	case ir.OpCmp:
		return fmt.Sprintf("r%d = cmp r%d, r%d", instr.Dst, instr.A, instr.B)
	case ir.OpAnd:
		return fmt.Sprintf("r%d = and r%d, r%d", instr.Dst, instr.A, instr.B)
	case ir.OpOr:
		return fmt.Sprintf("r%d = or r%d, r%d", instr.Dst, instr.A, instr.B)
	case ir.OpNot:
		return fmt.Sprintf("r%d = not r%d", instr.Dst, instr.A)
	case ir.OpAssert:
		return fmt.Sprintf("assert r%d, %s, %s", instr.A, instr.Severity, instr.Locus)
	case ir.OpReport:
		return fmt.Sprintf("report %q, %s, %s", instr.Name, instr.Severity, instr.Locus)
	case ir.OpCoverStmt:
		return fmt.Sprintf("cover %q", instr.Name)
	case ir.OpEnterState:
		return fmt.Sprintf("enter_state %d, strong=%v", instr.StateID, instr.Strong)
	case ir.OpCase:
		return fmt.Sprintf("case r%d -> default %d, %d case(s)", instr.A, instr.Target, len(instr.CaseVals))
	case ir.OpJump:
		return fmt.Sprintf("jump %d", instr.Target)
	case ir.OpCond:
		return fmt.Sprintf("cond r%d -> %d else %d", instr.A, instr.Target, instr.Else)
	case ir.OpReturn:
		return "return"
	case ir.OpUnreachable:
		return "unreachable"
	case ir.OpComment:
		return "# " + instr.Name
	default:
		return fmt.Sprintf("%v", instr.Op)
	}
}
