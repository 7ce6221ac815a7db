// SPDX-License-Identifier: MIT
// Package: pslfsm/compile
//
// compile.go — the pipeline orchestrator tying every design component
// together: clock/abort wiring (C8), FSM construction (C4), the optional
// debug-build invariant checker (C5), prev resolution (C8), and property
// lowering (C7), in the order the per-tick entry sequence expects them
// wired.
//
// This package exists because fsm/invariant imports fsm (to walk an
// fsm.FSM), so fsm itself cannot import fsm/invariant without a cycle; the
// checker can only ever be invoked by a caller sitting above both packages.
// Compile is that caller, playing the role cmd/pslfsm's own debug-build
// flag would otherwise have to duplicate in every entry point.
package compile

import (	"fmt"

	"github.com/pslfsm/compiler/clock"
	"github.com/pslfsm/compiler/cover"
	"github.com/pslfsm/compiler/fsm"
	"github.com/pslfsm/compiler/fsm/invariant"
	"github.com/pslfsm/compiler/guard"
	"github.com/pslfsm/compiler/ir"
	"github.com/pslfsm/compiler/lower"
	"github.com/pslfsm/compiler/numfold"
	"github.com/pslfsm/compiler/psl"
)

// Diagnostics is the single sink every stage of the pipeline reports
// through: tier-1 warnings (numfold), tier-2 construction aborts (fsm), and
// this package's own tier-3 invariant-violation reports.
type Diagnostics interface {
	Warnf(loc psl.Locus, format string, args...any)
	Errorf(loc psl.Locus, format string, args...any)
}

// Options configures one Compile call.
type Options struct {
	// Folder resolves static PSL Number expressions (design component C2).
	Folder numfold.Folder
	// HDL lowers HDL rvalue leaves to IR registers (external collaborator).
	HDL guard.HDLLowerer
	// Coverage receives COVER hits; nil disables functional-coverage
	// recording (the coverage statement itself is still emitted).
	Coverage *cover.Database
	// Printer renders a COVER directive's report message; nil falls back to
	// the message node's Stub name and then to its source locus.
	Printer guard.ExprPrinter
	// CheckInvariants runs the epsilon-acyclicity checker (fsm/invariant)
	// after construction, mirroring a debug-build flag: expensive enough
	// (a full DFS over every state) that release-mode callers should leave
	// it off.
	CheckInvariants bool
}

// Compile translates top — a directive-wrapper node (ASSERT/ASSUME/
// RESTRICT/COVER) wrapping a CLOCKED form — into a lowered ir.Program named
// name. It resolves the clock and outermost async-abort wiring, builds the
// FSM, optionally checks its invariants, resolves every prev(x,n) call, and
// lowers the result.
func Compile(top psl.Node, name string, opts Options, diag Diagnostics) (*ir.Program, error) {
	wiring, err := clock.Wire(top)
	if err != nil {
 return nil, fmt.Errorf("compile: %w", err)
	}

	stripped, err := stripClocked(top)
	if err != nil {
 return nil, fmt.Errorf("compile: %w", err)
	}

	f, err := fsm.Build(stripped, opts.Folder, diag)
	if err != nil {
 return nil, fmt.Errorf("compile: %w", err)
	}

	if opts.CheckInvariants {
 if err := invariant.Check(f); err != nil {
 diag.Errorf(top.Locus(), "internal: %v", err)
 return nil, fmt.Errorf("compile: %w", err)
 }
 if !invariant.Reachable(f) {
 diag.Errorf(top.Locus(), "internal: unreachable FSM states after construction")
 return nil, fmt.Errorf("compile: fsm has unreachable states")
 }
	}

	calls := clock.CollectPrevCalls(top)
	plan, err := clock.NewPlan(calls, opts.Folder, diag)
	if err != nil {
 return nil, fmt.Errorf("compile: %w", err)
	}

	program, err := lower.Lower(f, wiring, plan, opts.HDL, opts.Coverage, opts.Printer, diag, name)
	if err != nil {
 return nil, fmt.Errorf("compile: %w", err)
	}
	return program, nil
}

// stripClocked rebuilds top's wrapper chain with its nested CLOCKED form
// removed, substituting CLOCKED's own inner property in its place — the
// same single-child walk clock.Wire's findClocked performs, but
// reconstructing rather than just locating. fsm.Build has no CLOCKED
// recipe of its own (clock.Wire owns that unwrapping), so this step must
// run before every Build call in this package.
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
