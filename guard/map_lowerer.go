// SPDX-License-Identifier: MIT
// Package: pslfsm/guard
//
// map_lowerer.go — a bundled HDLLowerer stand-in over psl.Stub leaves.
//
// The real VHDL expression lowering layer is an external collaborator
// (out of scope). MapLowerer is the concrete implementation
// this module's own tests, scenarios_test suite, and cmd/pslfsm CLI use in
// its place: every HDL_EXPR leaf is a bare signal name (psl.Stub.Name),
// resolved at IR-execution time (not lowering time) by runtime.Env —
// exactly the indirection a real vcode register has baked in.
package guard

import (	"fmt"

	"github.com/pslfsm/compiler/ir"
	"github.com/pslfsm/compiler/psl"
)

// MapLowerer implements HDLLowerer for psl.Stub signal leaves. AllBool, when
// true, treats every signal as already Boolean-typed; when false, every
// signal is treated as std_logic and requires the '1'-code coercion — this
// lets tests exercise both branches of without a second type.
type MapLowerer struct {
	AllBool bool
}

var _ HDLLowerer = MapLowerer{}

// LowerRvalue implements HDLLowerer.
func (m MapLowerer) LowerRvalue(e ir.Emitter, node psl.Node) (ir.Reg, bool, error) {
	s, ok := node.(*psl.Stub)
	if !ok || s.Name == "" {
 return ir.InvalidReg, false, fmt.Errorf("guard: MapLowerer requires a named psl.Stub signal leaf, got %T", node)
	}
	return e.EmitSignal(s.Name), m.AllBool, nil
}
