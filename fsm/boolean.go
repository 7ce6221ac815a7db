// SPDX-License-Identifier: MIT
// Package: pslfsm/fsm
//
// boolean.go — compiles a purely Boolean PSL subtree (HDL_EXPR and LOGICAL
// nodes only, no temporal operators) directly into a guard.Guard, without
// allocating any new FSM state. Used wherever a recipe needs the guard
// *value* of an operand rather than its temporal expansion: the UNTIL,
// BEFORE and ABORT conditions, and LOGICAL's own IF/IFF/OR operands.
package fsm

import (	"fmt"

	"github.com/pslfsm/compiler/guard"
	"github.com/pslfsm/compiler/psl"
)

// booleanGuard lowers p to a guard.Guard in place, without touching the FSM.
// p must be a KindHDLExpr leaf or a KindLogical node built from such leaves;
// anything else is a tier-3 internal error (a temporal operator where the
// grammar only permits a Boolean expression).
func booleanGuard(p psl.Node) (guard.Guard, error) {
	switch p.Kind() {
	case psl.KindHDLExpr:
 return guard.FromExpr(p), nil
	case psl.KindLogical:
 return logicalGuard(p)
	default:
 return nil, fmt.Errorf("fsm: %s: %w %s (expected a Boolean expression)", p.Locus(), ErrUnsupportedKind, p.Kind())
	}
}

// logicalGuard implements the LOGICAL recipe : IF, IFF and OR
// combine two Boolean operands without creating new FSM states, unlike every
// other operator kind.
//
//	IF(a, b) == !a OR b
//	IFF(a, b) == (a AND b) OR (!a AND !b)
//	OR(a, b) == a OR b
func logicalGuard(p psl.Node) (guard.Guard, error) {
	ops := p.Operands()
	if len(ops) != 2 {
 return nil, fmt.Errorf("fsm: %s: LOGICAL requires exactly two operands, got %d", p.Locus(), len(ops))
	}
	a, err := booleanGuard(ops[0])
	if err != nil {
 return nil, err
	}
	b, err := booleanGuard(ops[1])
	if err != nil {
 return nil, err
	}
	switch p.SubKind() {
	case psl.SubLogicIf:
 return guard.CombineOr(guard.Negate(a), b), nil
	case psl.SubLogicIff:
 return guard.CombineOr(guard.CombineAnd(a, b), guard.CombineAnd(guard.Negate(a), guard.Negate(b))), nil
	case psl.SubLogicOr:
 return guard.CombineOr(a, b), nil
	default:
 return nil, fmt.Errorf("fsm: %s: unknown LOGICAL sub-kind %d", p.Locus(), p.SubKind())
	}
}

// buildLogical implements the LOGICAL operator as a top-level build_node
// case: compile it to a single guard and emit it exactly as buildHDLExpr
// does (a Next edge, since it tests the current cycle's signals), since a
// purely Boolean LOGICAL node never spans more than one tick.
func (b *builder) buildLogical(state StateID, p psl.Node) (StateID, error) {
	g, err := logicalGuard(p)
	if err != nil {
 return 0, err
	}
	sp := b.fsm.AddState(p)
	AddEdge(b.fsm, state, sp.ID, Next, g)
	return sp.ID, nil
}
