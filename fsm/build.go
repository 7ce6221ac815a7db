// SPDX-License-Identifier: MIT
// Package: pslfsm/fsm
//
// build.go — the FSM builder (design component C4).
// Build is the public entry point. It creates an initial state, then walks
// directive.Value() with buildNode, whose contract is:
// extend fsm with the subgraph representing p, starting from state, and
// return the single entry-to-post-match state. The root call's returned
// state is marked accepting (invariant 2).
package fsm

import (	"errors"
	"fmt"

	"github.com/pslfsm/compiler/guard"
	"github.com/pslfsm/compiler/numfold"
	"github.com/pslfsm/compiler/psl"
)

// ErrAborted wraps a tier-1 diagnostic that stopped graph
// construction: a PSL Number that could not be statically folded. The
// caller receives a non-nil, partially-built FSM alongside this error,
// matching "return an empty FSM with a diagnostic".
var ErrAborted = errors.New("fsm: construction aborted")

// ErrUnsupportedKind is the tier-3 internal error raised when buildNode is
// asked to handle a psl.Kind no recipe covers — "cannot handle PSL kind X"
// in, never reachable for well-formed input.
var ErrUnsupportedKind = errors.New("fsm: cannot handle PSL kind")

// Diagnostics receives tier-1/2 diagnostics from the builder.
// Both methods take the offending node's locus.
type Diagnostics interface {
	Warnf(loc psl.Locus, format string, args...any)
	Errorf(loc psl.Locus, format string, args...any)
}

// builder holds the mutable construction state threaded through every
// build_node recipe: the FSM under construction, the number folder (C2),
// and the diagnostics sink.
type builder struct {
	fsm *FSM
	folder numfold.Folder
	diag Diagnostics
}

// Build translates directive into an FSM. directive must be one of the
// directive-wrapper kinds (KindAssert/KindAssume/KindRestrict/KindCover,
// each conventionally wrapping KindAlways/KindNever/a bare sequence). Build
// reads the wrapper only to tell COVER from the others, then builds from
// directive.Value(). A CLOCKED layer between the wrapper and its value must
// already be removed (compile.Compile does this before calling Build).
func Build(directive psl.Node, folder numfold.Folder, diag Diagnostics) (*FSM, error) {
	kind := Bare
	if directive.Kind() == psl.KindCover {
 kind = Cover
	}

	f := NewFSM(kind, directive)
	initial := f.AddState(directive)
	initial.Initial = true

	b := &builder{fsm: f, folder: folder, diag: diag}

	var value psl.Node = directive
	if directive.HasValue() {
 value = directive.Value()
	}

	final, err := b.buildNode(initial.ID, value)
	if err != nil {
 return f, err
	}

	f.State(final).Accept = true
	return f, nil
}

// buildNode is the recursive translator driven by the per-operator recipe
// table. Each case is implemented in its own file, named after its PSL
// operator, mirroring psl-fsm.c's one-static-function-per-operator layout.
func (b *builder) buildNode(state StateID, p psl.Node) (StateID, error) {
	switch p.Kind() {
	case psl.KindNever:
 b.fsm.Kind = Never
 return b.buildNode(state, p.Value())
	case psl.KindAlways:
 b.fsm.Kind = Always
 return b.buildNode(state, p.Value())
	case psl.KindHDLExpr:
 return b.buildHDLExpr(state, p)
	case psl.KindNext:
 return b.buildNext(state, p)
	case psl.KindSERE:
 return b.buildSequence(state, p)
	case psl.KindLogical:
 return b.buildLogical(state, p)
	case psl.KindUntil:
 return b.buildUntil(state, p)
	case psl.KindEventually:
 return b.buildEventually(state, p)
	case psl.KindAbort:
 return b.buildAbort(state, p)
	case psl.KindBefore:
 return b.buildBefore(state, p)
	case psl.KindSuffixImpl:
 return b.buildSuffixImpl(state, p)
	default:
 return 0, fmt.Errorf("fsm: %s: %w %s", p.Locus(), ErrUnsupportedKind, p.Kind())
	}
}

// buildHDLExpr implements the HDL_EXPR recipe: create fresh s'; add
// state =[p]=> s'. Testing a Boolean expression is a tick-consuming
// transition — the edge fires once, against the current cycle's signal
// values, and lands in s' at the start of the following cycle — so the
// edge kind is Next, not Epsilon; Epsilon is reserved for structural
// wiring that takes no simulated time.
func (b *builder) buildHDLExpr(state StateID, p psl.Node) (StateID, error) {
	sp := b.fsm.AddState(p)
	AddEdge(b.fsm, state, sp.ID, Next, guard.FromExpr(p))
	return sp.ID, nil
}

// buildNext implements the NEXT[k] recipe: for each of the k ticks, create
// s', add state ⇒ s' (unconditional), advance; then buildNode(state, v).
// When k is absent, k = 1.
func (b *builder) buildNext(state StateID, p psl.Node) (StateID, error) {
	k := int64(1)
	if p.HasDelay() {
 var err error
 k, err = numfold.Fold(b.folder, b.diag, p.Delay())
 if err != nil {
 return 0, fmt.Errorf("%w: %v", ErrAborted, err)
 }
	}
	for i := int64(0); i < k; i++ {
 sp := b.fsm.AddState(p)
 AddEdge(b.fsm, state, sp.ID, Next, nil)
 state = sp.ID
	}
	return b.buildNode(state, p.Value())
}
