// SPDX-License-Identifier: MIT
// Package: pslfsm/fsm
//
// build_before.go — the BEFORE / BEFORE! / BEFORE_ / BEFORE!_ recipe
// : "a before b" holds iff a holds at some cycle at which b
// has not yet held (strictly earlier than b, unless the inclusive "_"
// variant permits a and b to hold simultaneously).
package fsm

import (	"fmt"

	"github.com/pslfsm/compiler/guard"
	"github.com/pslfsm/compiler/psl"
)

// buildBefore mirrors buildUntil's wait-state shape, but partitions the
// three possible per-cycle outcomes disjointly so the construction stays
// correct even though the underlying FSM is nondeterministic:
//
//	exit: a holds in a way the variant accepts => accept
//	loop: neither a nor b holds yet => keep waiting
//	(else, i.e. b arrives without a qualifying): die (no edge)
//
// FlagStrong ("before!") marks the wait state as a liveness obligation: a
// must eventually arrive, execution may not simply run out first.
func (b *builder) buildBefore(state StateID, p psl.Node) (StateID, error) {
	ops := p.Operands()
	if len(ops) != 2 {
 return 0, fmt.Errorf("fsm: %s: BEFORE requires exactly two operands, got %d", p.Locus(), len(ops))
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

	exit := guard.CombineAnd(ga, guard.Negate(gb))
	if p.Flags().Has(psl.FlagInclusive) {
 exit = ga
	}
	loop := guard.CombineAnd(guard.Negate(ga), guard.Negate(gb))

	accept := b.fsm.AddState(p)
	AddEdge(b.fsm, w.ID, accept.ID, Next, exit)
	AddEdge(b.fsm, w.ID, w.ID, Next, loop)

	return accept.ID, nil
}
