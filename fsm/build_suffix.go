// SPDX-License-Identifier: MIT
// Package: pslfsm/fsm
//
// build_suffix.go — the suffix-implication recipe : "seq |->
// prop" (overlapping) and "seq |=> prop" (non-overlapping). If seq never
// completes a match, the whole property is vacuously satisfied — the
// SubSuffixOverlap branch starts prop on the same cycle seq's match
// completes; non-overlap inserts one unconditional tick first.
package fsm

import (	"fmt"

	"github.com/pslfsm/compiler/psl"
)

func (b *builder) buildSuffixImpl(state StateID, p psl.Node) (StateID, error) {
	ops := p.Operands()
	if len(ops) != 2 {
 return 0, fmt.Errorf("fsm: %s: SUFFIX_IMPL requires exactly two operands, got %d", p.Locus(), len(ops))
	}
	seq, prop := ops[0], ops[1]

	seqFinal, err := b.buildNode(state, seq)
	if err != nil {
 return 0, err
	}

	// Every state reached while matching seq that has no unconditional
	// continuation falls through to vacuous acceptance instead of dying
	// (connect_default).
	vacuous := b.fsm.AddState(p)
	vacuous.Accept = true
	connectDefault(b.fsm, state, vacuous.ID, newVisited(b.fsm))

	propStart := seqFinal
	if p.SubKind() == psl.SubSuffixNonOverlap {
 mid := b.fsm.AddState(p)
 AddEdge(b.fsm, seqFinal, mid.ID, Next, nil)
 propStart = mid.ID
	}

	return b.buildNode(propStart, prop)
}
