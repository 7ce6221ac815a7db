// SPDX-License-Identifier: MIT
// Package: pslfsm/fsm
//
// build_abort.go — the ABORT recipe : "p abort b" forgives
// (accepts) a property under construction the moment the abort condition b
// holds, synchronous or asynchronous (SubAbortSync / SubAbortAsync — the
// distinction only matters to clock.Wire, which lifts async aborts out of
// the single-clock domain; fsm construction treats both identically).
package fsm

import (	"fmt"

	"github.com/pslfsm/compiler/psl"
)

func (b *builder) buildAbort(state StateID, p psl.Node) (StateID, error) {
	ops := p.Operands()
	if len(ops) != 2 {
 return 0, fmt.Errorf("fsm: %s: ABORT requires exactly two operands, got %d", p.Locus(), len(ops))
	}

	final, err := b.buildNode(state, ops[0])
	if err != nil {
 return 0, err
	}

	gcond, err := booleanGuard(ops[1])
	if err != nil {
 return 0, err
	}

	sink := b.fsm.AddState(p)
	sink.Accept = true
	connectAbort(b.fsm, state, sink.ID, gcond, newVisited(b.fsm))

	return final, nil
}
