// SPDX-License-Identifier: MIT
// Package: pslfsm/guard
//
// lower.go — guard lowering (`lower(g, hdl_ctx) → ir_bool`).
package guard

import (	"fmt"

	"github.com/pslfsm/compiler/ir"
	"github.com/pslfsm/compiler/psl"
)

// stdLogicOne is the target encoding's code for the '1' value of a 9-valued
// std_logic type.
const stdLogicOne = 3

// stdLogicWidth is the bit width used to represent a single std_logic value.
const stdLogicWidth = 8

// HDLLowerer is the subset of the VHDL expression lowering collaborator
// that guard lowering needs: lower a single HDL rvalue node to an IR
// register, reporting whether that register is already Boolean-typed
// (vtype_bool) or still std_logic and needs the '1'-code coercion.
type HDLLowerer interface {
	LowerRvalue(e ir.Emitter, node psl.Node) (reg ir.Reg, isBool bool, err error)
}

// Lower recursively lowers g to an IR boolean register, invoking hdl on
// leaf expressions. Guards are pure: the same Guard may be lowered
// multiple times (once per state that references it) and evaluated by the
// runtime once per clock tick.
func Lower(g Guard, hdl HDLLowerer, e ir.Emitter) (ir.Reg, error) {
	switch v := g.(type) {
	case nil:
 return ir.InvalidReg, fmt.Errorf("guard: Lower called with nil (unconditional) guard")
	case *Expr:
 return lowerBoolean(hdl, e, v.Node)
	case *Not:
 inner, err := Lower(v.Operand, hdl, e)
 if err != nil {
 return ir.InvalidReg, err
 }
 return e.EmitNot(inner), nil
	case *BinOp:
 left, err := Lower(v.Left, hdl, e)
 if err != nil {
 return ir.InvalidReg, err
 }
 right, err := Lower(v.Right, hdl, e)
 if err != nil {
 return ir.InvalidReg, err
 }
 switch v.Kind {
 case And:
 return e.EmitAnd(left, right), nil
 case Or:
 return e.EmitOr(left, right), nil
 default:
 panic("guard: unreachable BinOp kind")
 }
	default:
 panic(fmt.Sprintf("guard: cannot lower guard kind %T", g))
	}
}

// lowerBoolean lowers a single HDL_EXPR leaf, applying the std_logic-to-bool
// coercion: compare against the '1' code (3) when the lowered register is
// not already Boolean-typed.
func lowerBoolean(hdl HDLLowerer, e ir.Emitter, node psl.Node) (ir.Reg, error) {
	reg, isBool, err := hdl.LowerRvalue(e, node)
	if err != nil {
 return ir.InvalidReg, err
	}
	if isBool {
 return reg, nil
	}
	one := e.EmitConst(stdLogicWidth, stdLogicOne)
	return e.EmitCmp(ir.CmpEQ, reg, one), nil
}
