// SPDX-License-Identifier: MIT
// Package: pslfsm/lower
//
// closure.go — the epsilon-closure computation the property lowerer (design
// component C7) performs for each state immediately before emitting its
// dispatch code: epsilon edges carry no simulated time, so a state's real
// NEXT transitions (and its real acceptance, since an accepting state
// reached only by an epsilon chain makes every state upstream of it
// accepting too) are found by walking through them, not by emitting a block
// per epsilon hop.
//
// Rather than precomputing a whole-FSM closure table up front, each state's
// closure is computed lazily, right here, the moment its block is lowered —
// the destination of every NEXT transition the closure finds gets its own
// block (and its own closure) independently when its turn comes, so no
// transitive accumulation beyond one state's local epsilon neighbourhood is
// needed.
package lower

import (	"github.com/pslfsm/compiler/fsm"
	"github.com/pslfsm/compiler/guard"
)

// transition is one real (tick-consuming) transition a closure found,
// guarded by the conjunction of every guard collected walking epsilon edges
// to reach it.
type transition struct {
	guard guard.Guard
	dest fsm.StateID
}

// closure is the result of closing id over its outgoing epsilon edges.
type closure struct {
	accept bool
	acceptUnconditional bool // true once any epsilon path reaches an unguarded accept
	acceptGuard guard.Guard // meaningful only when accept && !acceptUnconditional
	transitions []transition
}

// closeState computes id's epsilon closure within f.
func closeState(f *fsm.FSM, id fsm.StateID) closure {
	var c closure
	visited := map[fsm.StateID]bool{}

	var walk func(s fsm.StateID, pathGuard guard.Guard)
	walk = func(s fsm.StateID, pathGuard guard.Guard) {
 if visited[s] {
 return
 }
 visited[s] = true

 st := f.State(s)
 if st.Accept {
 c.accept = true
 combined := guard.CombineAnd(pathGuard, st.Guard)
 if !c.acceptUnconditional {
 if combined == nil {
 c.acceptUnconditional = true
 c.acceptGuard = nil
 } else if c.acceptGuard == nil {
 c.acceptGuard = combined
 } else {
 c.acceptGuard = guard.CombineOr(c.acceptGuard, combined)
 }
 }
 }

 for _, e := range st.Edges {
 switch e.Kind {
 case fsm.Next:
 c.transitions = append(c.transitions, transition{
 guard: guard.CombineAnd(pathGuard, e.Guard),
 dest: e.Dest,
 })
 case fsm.Epsilon:
 walk(e.Dest, guard.CombineAnd(pathGuard, e.Guard))
 }
 }
	}
	walk(id, nil)
	return c
}
