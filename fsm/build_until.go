// SPDX-License-Identifier: MIT
// Package: pslfsm/fsm
//
// build_until.go — the UNTIL / UNTIL! / UNTIL_ / UNTIL!_ recipe: "a until b"
// holds so long as a holds on every cycle up to (and, for the inclusive "_"
// variants, including) the cycle b first holds.
package fsm

import (	"fmt"

	"github.com/pslfsm/compiler/guard"
	"github.com/pslfsm/compiler/psl"
)

// buildUntil implements the UNTIL recipe:
//
//	new wait state w; state =[eps]=> w
//	w =[guard(b), or guard(a) AND guard(b) if inclusive]=> accept
//	w =[guard(a)]=> w (self loop: busy-wait while a continues to hold)
//
// FlagStrong ("until!") marks w as a liveness obligation: execution must not
// terminate while still waiting for b.
func (b *builder) buildUntil(state StateID, p psl.Node) (StateID, error) {
	ops := p.Operands()
	if len(ops) != 2 {
 return 0, fmt.Errorf("fsm: %s: UNTIL requires exactly two operands, got %d", p.Locus(), len(ops))
	}
	ga, err := booleanGuard(ops[0])
	if err != nil {
 return 0, err
	}
	gb, err := booleanGuard(ops[1])
	if err != nil {
 return 0, err
	}

	w := b.fsm.AddState(p)
	AddEdge(b.fsm, state, w.ID, Epsilon, nil)
	w.Strong = p.Flags().Has(psl.FlagStrong)

	exit := gb
	if p.Flags().Has(psl.FlagInclusive) {
 exit = guard.CombineAnd(ga, gb)
	}

	// Both outgoing edges from w consume a clock tick: the guards are
	// evaluated against the *current* cycle's signals before advancing,
	// so an epsilon self-loop here would violate the epsilon-acyclicity
	// invariant as well as the intended one-tick-per-test
	// semantics.
	accept := b.fsm.AddState(p)
	AddEdge(b.fsm, w.ID, accept.ID, Next, exit)
	AddEdge(b.fsm, w.ID, w.ID, Next, ga)

	return accept.ID, nil
}
