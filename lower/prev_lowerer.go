// SPDX-License-Identifier: MIT
// Package: pslfsm/lower
//
// prev_lowerer.go — the prev-aware guard.HDLLowerer wrapper clock/prev.go's
// own doc comment describes as the resolution of the "cooperation between
// graph compilation and the code emitter" open question: fsm and guard
// never special-case a prev(x,n) call node; only this Unit-internal wrapper
// recognises one and substitutes its shift-register slot.
package lower

import (	"github.com/pslfsm/compiler/clock"
	"github.com/pslfsm/compiler/ir"
	"github.com/pslfsm/compiler/psl"
)

// prevAwareLowerer intercepts prev(x,n) call nodes, substituting the slot-0
// register clock.Plan allocated for them; every other node falls through to
// inner unchanged.
type prevAwareLowerer struct {
	inner interface {
 LowerRvalue(e ir.Emitter, node psl.Node) (ir.Reg, bool, error)
	}
	plan *clock.Plan
}

// LowerRvalue implements guard.HDLLowerer. A prev slot register is never
// already Boolean-typed: it holds the same representation x itself would
// lower to, which guard.Lower's std_logic coercion then applies uniformly.
func (p prevAwareLowerer) LowerRvalue(e ir.Emitter, node psl.Node) (ir.Reg, bool, error) {
	if node.Kind() == psl.KindBuiltinFCall && node.SubKind() == psl.SubBuiltinPrev {
 if reg, ok := p.plan.RefReg(node); ok {
 return reg, false, nil
 }
	}
	return p.inner.LowerRvalue(e, node)
}
