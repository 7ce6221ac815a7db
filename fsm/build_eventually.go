// SPDX-License-Identifier: MIT
// Package: pslfsm/fsm
//
// build_eventually.go — the EVENTUALLY! recipe : p must
// eventually start matching; always a liveness obligation (no non-strong
// "eventually" exists in PSL).
package fsm

import "github.com/pslfsm/compiler/psl"

func (b *builder) buildEventually(state StateID, p psl.Node) (StateID, error) {
	w := b.fsm.AddState(p)
	AddEdge(b.fsm, state, w.ID, Epsilon, nil)
	w.Strong = true

	final, err := b.buildNode(w.ID, p.Value())
	if err != nil {
 return 0, err
	}

	// Every state in p's subgraph that lacks an unconditional continuation
	// busy-waits back to w on the cycles where p hasn't started matching
	// yet (connect_default, mirrors psl-fsm.c's use for
	// EVENTUALLY).
	connectDefault(b.fsm, w.ID, w.ID, newVisited(b.fsm))

	return final, nil
}
