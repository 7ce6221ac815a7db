// SPDX-License-Identifier: MIT
// Package: pslfsm/fsm
//
// edges.go — the edge-insertion discipline and the two
// subgraph-rewriting recipes that walk an already-built region of the graph:
// connectDefault (eventually / suffix-impl vacuous paths) and connectAbort
// (abort). Both recipes are bit-set-guarded depth-first walks, grounded on
// the same three-colour-DFS idiom as dfs/cycle.go, adapted here to walk
// *all* outgoing edges (not just epsilon ones) since both need to reach
// every state transitively produced by a build_node call.
package fsm

import "github.com/pslfsm/compiler/guard"

// InsertEdge prepends an edge at an arbitrary position in from's edge list.
// Used where the recipe needs a specific ordering relative to edges not yet
// added (e.g. build_abort prepends the abort edge onto every non-terminal
// state reached by the protected subgraph).
func InsertEdge(f *FSM, from StateID, to StateID, kind EdgeKind, g guard.Guard) {
	s := f.State(from)
	s.Edges = append([]Edge{{Dest: to, Kind: kind, Guard: g}}, s.Edges...)
}

// AddEdge appends an edge to from's list at the position "just before the
// first unconditional edge", so that guarded alternatives are always tried
// before a single unconditional default. This ordering is
// semantically load-bearing: the runtime evaluates edges in list order and
// a guarded edge that succeeds pre-empts the default.
func AddEdge(f *FSM, from StateID, to StateID, kind EdgeKind, g guard.Guard) {
	s := f.State(from)
	pos := len(s.Edges)
	for i, e := range s.Edges {
 if g != nil && e.Guard == nil {
 pos = i
 break
 }
	}
	s.Edges = append(s.Edges, Edge{})
	copy(s.Edges[pos+1:], s.Edges[pos:])
	s.Edges[pos] = Edge{Dest: to, Kind: kind, Guard: g}
}

// connectAbort prepends "→[guard] sink" onto every non-terminal state
// reachable (by any edge kind) from "from", stopping at states with no
// outgoing edges (final states) and at already-visited states (cycles).
// Mirrors connect_abort in the original psl-fsm.c.
func connectAbort(f *FSM, from StateID, sink StateID, g guard.Guard, visited []bool) {
	s := f.State(from)
	if len(s.Edges) == 0 {
 return // final state
	}
	if visited[from] {
 return // cycle
	}
	visited[from] = true

	for _, e := range s.Edges {
 connectAbort(f, e.Dest, sink, g, visited)
	}

	InsertEdge(f, from, sink, Epsilon, g)
}

// connectDefault inserts an unconditional NEXT edge to "to" at every state
// reachable from "from" that lacks a default (unconditional) outgoing edge,
// stopping at final states and already-visited states. Mirrors
// connect_default in the original psl-fsm.c, used by EVENTUALLY's busy-wait
// and by SUFFIX_IMPL's vacuous-satisfaction path.
func connectDefault(f *FSM, from StateID, to StateID, visited []bool) {
	s := f.State(from)
	if len(s.Edges) == 0 {
 return // final state
	}
	if visited[from] {
 return // cycle
	}
	visited[from] = true

	haveDefault := false
	for _, e := range s.Edges {
 connectDefault(f, e.Dest, to, visited)
 if e.Guard == nil {
 haveDefault = true
 }
	}

	if !haveDefault {
 AddEdge(f, from, to, Next, nil)
	}
}

// newVisited allocates a visited bit-set sized for the FSM's current state
// count, matching the original's bit_mask_t sized to fsm->next_id.
func newVisited(f *FSM) []bool {
	return make([]bool, f.NextID())
}
