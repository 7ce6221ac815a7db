// SPDX-License-Identifier: MIT
// Package: pslfsm/fsm
//
// types.go — the FSM data model : State, Edge, FSM, and the
// sentinel errors the builder surfaces.
//
// AI-HINT (file):
// - States live in an arena (FSM.states), addressed by dense State.ID —
// explicit design note, preferred over heap-allocated
// nodes with pointer chains, grounded on core.Graph's arena-of-records
// approach (adapted here to integer indices since FSM size is bounded
// by construction, unlike a general-purpose graph).
// - Edge order within a State is semantically load-bearing: see
// InsertEdge / AddEdge in edges.go.
package fsm

import (	"errors"

	"github.com/pslfsm/compiler/guard"
	"github.com/pslfsm/compiler/psl"
)

// Kind classifies the FSM's top-level directive.
type Kind int

const (	Bare Kind = iota
	Always
	Never
	Cover
)

func (k Kind) String() string {
	switch k {
	case Bare:
 return "BARE"
	case Always:
 return "ALWAYS"
	case Never:
 return "NEVER"
	case Cover:
 return "COVER"
	default:
 return "UNKNOWN"
	}
}

// EdgeKind distinguishes a tick-consuming transition from one taken in the
// same tick.
type EdgeKind int

const (	// Next consumes one clock tick.
	Next EdgeKind = iota
	// Epsilon is taken in the same tick; must never form a cycle.
	Epsilon
)

func (k EdgeKind) String() string {
	if k == Epsilon {
 return "EPSILON"
	}
	return "NEXT"
}

// Edge is an outgoing transition from a State. Guard == nil
// denotes an unconditional edge.
type Edge struct {
	Dest StateID
	Kind EdgeKind
	Guard guard.Guard
}

// StateID is a dense, construction-order integer identifying a State
// within its owning FSM.
type StateID int32

// State is a single FSM state.
type State struct {
	ID StateID

	// Where is the PSL node used as the diagnostic source locus for this
	// state (e.g. the "no progress" assertion locus in).
	Where psl.Node

	// Edges is the insertion-ordered list of outgoing transitions.
	Edges []Edge

	Initial bool
	Accept bool

	// Strong records a liveness obligation: if execution terminates while
	// this state is live, the property must fail.
	Strong bool

	// Guard, when non-nil, additionally gates whether entering this state
	// counts as acceptance (the before/suffix-impl vacuous paths).
	Guard guard.Guard
}

// FSM is the explicit, labelled non-deterministic state graph a directive
// compiles to.
type FSM struct {
	Kind Kind

	// Src is the originating top-level directive node.
	Src psl.Node

	states []*State
	nextID StateID
}

// ErrNoStates indicates a query was made against an FSM with no states,
// which never happens for an FSM produced by Build but can happen for a
// zero-value FSM or one from NewFSM before any AddState.
var ErrNoStates = errors.New("fsm: FSM has no states")

// NewFSM allocates an empty FSM of the given kind, rooted at src. The
// caller (Build) must add the initial state before returning it.
func NewFSM(kind Kind, src psl.Node) *FSM {
	return &FSM{Kind: kind, Src: src}
}

// AddState allocates a fresh state whose diagnostic locus is where, and
// appends it to the FSM's arena. Mirrors add_state in the original
// psl-fsm.c: a dense, monotonic id and insertion-ordered storage.
func (f *FSM) AddState(where psl.Node) *State {
	s := &State{ID: f.nextID, Where: where}
	f.nextID++
	f.states = append(f.states, s)
	return s
}

// States returns the FSM's states in construction order; states[0] is
// always the initial state (invariant 1).
func (f *FSM) States() []*State { return f.states }

// State looks up a state by id. Panics on an unknown id: a builder recipe
// referencing a StateID it never allocated is a tier-3 internal bug
//never reachable for well-formed input.
func (f *FSM) State(id StateID) *State {
	if int(id) < 0 || int(id) >= len(f.states) {
 panic("fsm: unknown state id")
	}
	return f.states[id]
}

// NextID returns the current monotonic id counter, equal to the number of
// states allocated so far (testable property).
func (f *FSM) NextID() StateID { return f.nextID }

// Initial returns the FSM's single initial state (invariant 1).
func (f *FSM) Initial() *State {
	if len(f.states) == 0 {
 return nil
	}
	return f.states[0]
}

// Repeating reports whether this FSM's initial state re-enters itself every
// tick (restored from original_source/psl_fsm_repeating):
// true for ALWAYS, NEVER and COVER FSMs, false for a bare (single-shot)
// ASSERT/ASSUME/RESTRICT.
func (f *FSM) Repeating() bool {
	return f.Kind == Cover || f.Kind == Always || f.Kind == Never
}
