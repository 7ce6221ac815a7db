// SPDX-License-Identifier: MIT
// Package: pslfsm/fsm/invariant
//
// check.go — the FSM invariant checker: a three-colour depth-first walk over
// epsilon edges only, asserting that the epsilon-subgraph is acyclic
// (invariant 3). Only active when compile.Options.CheckInvariants is set.
//
// Mirrors a three-colour (white/gray/black, back-edge detection) cycle
// walk, adapted from a general-purpose graph walk to a dense-integer
// fsm.State arena walk, and narrowed to epsilon edges only: a walk over
// every edge kind would flag a NEXT-edge cycle, which is legal and in fact
// how every unbounded repetition and "always" restart loop is expressed.
package invariant

import (	"errors"
	"fmt"

	"github.com/pslfsm/compiler/fsm"
)

// color mirrors the White/Gray/Black states of a three-colour DFS.
type color uint8

const (	white color = iota // not yet visited
	gray // on the current recursion stack
	black // fully explored
)

// ErrEpsilonCycle is the tier-3 internal error raised when the
// epsilon-subgraph contains a cycle: a compiler bug in some build_node
// recipe, never reachable for well-formed PSL input and a complete
// implementation of every recipe.
var ErrEpsilonCycle = errors.New("invariant: epsilon subgraph contains a cycle")

// Check walks f's epsilon edges with a three-colour DFS from every state
// (not just the initial one — a recipe could, in principle, wire an
// epsilon edge into a subgraph no longer reachable from the initial state
// by construction error, and the checker should still catch it) and
// returns ErrEpsilonCycle, wrapped with the offending back-edge's source
// and destination state ids, the first time it finds one. A nil return
// means every state finished black with none left gray: the
// epsilon-subgraph is a DAG.
func Check(f *fsm.FSM) error {
	states := f.States()
	colors := make([]color, len(states))

	for _, s := range states {
 if colors[s.ID] == white {
 if err := visit(f, s.ID, colors); err != nil {
 return err
 }
 }
	}
	return nil
}

// visit performs one DFS branch from id, recursing only along Epsilon
// edges. A back-edge to a gray state is the cycle signal; visit returns
// immediately once it finds one, leaving the remainder of the stack
// unexplored (the caller only needs existence, not every cycle).
func visit(f *fsm.FSM, id fsm.StateID, colors []color) error {
	colors[id] = gray

	for _, e := range f.State(id).Edges {
 if e.Kind != fsm.Epsilon {
 continue
 }
 switch colors[e.Dest] {
 case gray:
 return fmt.Errorf("%w: state %d -> state %d", ErrEpsilonCycle, id, e.Dest)
 case white:
 if err := visit(f, e.Dest, colors); err != nil {
 return err
 }
 }
	}

	colors[id] = black
	return nil
}

// Reachable reports whether every state in f is reachable from its initial
// state by a mixed (Next or Epsilon) walk — invariant 4. It is a separate
// query from Check because reachability is a completeness property (every
// recipe must return a connected subgraph), not a soundness one; a caller
// that only cares about epsilon-acyclicity, the one invariant the original
// source actually re-checks at runtime (psl_fsm_check), need not pay for
// this walk.
func Reachable(f *fsm.FSM) bool {
	states := f.States()
	if len(states) == 0 {
 return true
	}
	seen := make([]bool, len(states))
	stack := []fsm.StateID{f.Initial().ID}
	seen[f.Initial().ID] = true
	for len(stack) > 0 {
 id := stack[len(stack)-1]
 stack = stack[:len(stack)-1]
 for _, e := range f.State(id).Edges {
 if !seen[e.Dest] {
 seen[e.Dest] = true
 stack = append(stack, e.Dest)
 }
 }
	}
	for _, ok := range seen {
 if !ok {
 return false
 }
	}
	return true
}
