// SPDX-License-Identifier: MIT
// Package: pslfsm/clock
//
// wire.go — design component C8's clock and async-abort wiring: the
// single-clock restriction, clocked-signal sensitivity recording, and
// lifting an outermost asynchronous abort into an OR-combined trigger.
//
// Uses a plain recursive tree-walk rather than a general graph traversal:
// the directive wrapper shape (ALWAYS/NEVER/ASSUME/COVER/CLOCKED/ABORT) is
// small and fixed, so there's no adjacency structure worth building first.
package clock

import (	"errors"
	"fmt"

	"github.com/pslfsm/compiler/ir"
	"github.com/pslfsm/compiler/psl"
)

// ErrNotClocked is the tier-3 internal error raised when a directive's top
// form is not CLOCKED, or is CLOCKED without a resolved clock reference:
// the original asserts this invariant
// (has_ref) rather than diagnosing it, since it indicates the upstream
// parser/elaborator failed to enforce PSL's single-default-clock rule, not
// a user-facing PSL error.
var ErrNotClocked = errors.New("clock: directive is not well-formed CLOCKED(inner, clk)")

// Wiring is the result of Wire: the resolved clock expression, the
// unwrapped inner property, and the outermost asynchronous abort condition
// (nil when absent).
type Wiring struct {
	ClockExpr psl.Node
	Inner psl.Node
	AsyncAbort psl.Node // nil when no outermost async abort is present
}

// Wire implements the single-clock restriction: directive.Value()
// must be (a chain of ALWAYS/NEVER/ASSUME/COVER wrapping) a KindClocked
// node carrying a resolved Ref to its clock declaration. It also performs
// the outermost-async-abort walk.
func Wire(directive psl.Node) (*Wiring, error) {
	clocked, err := findClocked(directive)
	if err != nil {
 return nil, err
	}
	if !clocked.HasRef() {
 return nil, fmt.Errorf("%w: %s: CLOCKED node has no resolved clock reference", ErrNotClocked, clocked.Locus())
	}
	ref := clocked.Ref()
	if !ref.HasTree() {
 return nil, fmt.Errorf("%w: %s: clock declaration has no HDL expression", ErrNotClocked, ref.Locus())
	}

	w := &Wiring{ClockExpr: ref.Tree(), Inner: clocked.Value()}
	w.AsyncAbort = outermostAsyncAbort(directive)
	return w, nil
}

// findClocked walks through ALWAYS/NEVER/ASSUME/COVER/RESTRICT wrappers
// looking for the single KindClocked node Wire requires.
func findClocked(n psl.Node) (psl.Node, error) {
	for {
 switch n.Kind() {
 case psl.KindClocked:
 return n, nil
 case psl.KindAlways, psl.KindNever, psl.KindAssert, psl.KindAssume, psl.KindRestrict, psl.KindCover:
 if !n.HasValue() {
 return nil, fmt.Errorf("%w: %s: %s has no inner value", ErrNotClocked, n.Locus(), n.Kind())
 }
 n = n.Value()
 default:
 return nil, fmt.Errorf("%w: %s: directive does not wrap a CLOCKED form (found %s)", ErrNotClocked, n.Locus(), n.Kind())
 }
	}
}

// outermostAsyncAbort walks through ALWAYS/NEVER/ASSUME/COVER/CLOCKED
// wrappers and returns the abort condition when the outermost operator
// beneath them is ABORT with sub-kind ASYNC. Only PSL_ABORT_ASYNC is ever
// matched; a sync abort at the outermost position is not wired into a
// trigger, mirroring the original's psl_outer_async_abort.
func outermostAsyncAbort(n psl.Node) psl.Node {
	for {
 switch n.Kind() {
 case psl.KindAlways, psl.KindNever, psl.KindAssert, psl.KindAssume, psl.KindRestrict, psl.KindCover, psl.KindClocked:
 if !n.HasValue() {
 return nil
 }
 n = n.Value()
 case psl.KindAbort:
 if n.SubKind() != psl.SubAbortAsync {
 return nil
 }
 ops := n.Operands()
 if len(ops) != 2 {
 return nil
 }
 return ops[1]
 default:
 return nil
 }
	}
}

// Sensitize records clocked-signal sensitivities: visits each signal
// reference in clkExpr and calls the runtime's sched_event equivalent.
// Signal references are every *psl.Stub leaf (KindHDLExpr with a Name)
// reachable by walking Operands/Value/Tree; a real VHDL expression would
// instead be walked by the HDL lowerer's own signal-reference enumerator
// (an out-of-scope VHDL layer) — this module only ever sees psl.Stub trees
// in its own tests and CLI, so walking the psl.Node shape directly is
// sufficient here.
func Sensitize(e ir.Emitter, clkExpr psl.Node) {
	for _, name := range signalsOf(clkExpr) {
 e.EmitSchedEvent(name)
	}
}

func signalsOf(n psl.Node) []string {
	var out []string
	var walk func(psl.Node)
	walk = func(n psl.Node) {
 if n == nil {
 return
 }
 if s, ok := n.(*psl.Stub); ok && n.Kind() == psl.KindHDLExpr && s.Name != "" {
 out = append(out, s.Name)
 }
 for _, op := range n.Operands() {
 walk(op)
 }
 if n.HasValue() {
 walk(n.Value())
 }
 if n.HasTree() {
 walk(n.Tree())
 }
	}
	walk(n)
	return out
}

// InstallTrigger implements the trigger-combination half of clock wiring:
// the clock trigger is always installed; when w.AsyncAbort is non-nil, a
// side function evaluating its Boolean value is OR-combined with the clock
// trigger before the combined trigger is installed. The side function's
// name is a caller-chosen label identifying the emitted abort-evaluation
// routine; this module's own lower.Unit names it "abort" (see
// lower/lower.go).
func (w *Wiring) InstallTrigger(e ir.Emitter, abortFunctionName string) {
	Sensitize(e, w.ClockExpr)
	trig := e.EmitFunctionTrigger("clock")
	if w.AsyncAbort != nil {
 abortTrig := e.EmitFunctionTrigger(abortFunctionName)
 trig = e.EmitOrTrigger(trig, abortTrig)
	}
	e.EmitAddTrigger(trig)
}
