// SPDX-License-Identifier: MIT
// Package: pslfsm/guard
//
// guard.go — the guard algebra (design component C3).
//
// A Guard is a leaf Boolean expression carried on an fsm.Edge: a single HDL
// node, a logical negation of another guard, or a binary AND/OR of two
// guards. Guards are immutable after creation and may be evaluated
// repeatedly every clock tick.
package guard

import "github.com/pslfsm/compiler/psl"

// BinOpKind distinguishes AND from OR in a BinOp guard.
type BinOpKind int

const (	And BinOpKind = iota
	Or
)

// Guard is a closed sum type: *Expr | *Not | *BinOp. The unexported marker
// method prevents external packages from adding new variants.
type Guard interface {
	isGuard()
}

// Expr wraps a single PSL HDL-expression node whose Boolean value is
// evaluated by the HDL lowerer.
type Expr struct{ Node psl.Node }

func (*Expr) isGuard() {}

// FromExpr builds a Guard from a single HDL expression node.
func FromExpr(n psl.Node) Guard { return &Expr{Node: n} }

// Not negates g.
type Not struct{ Operand Guard }

func (*Not) isGuard() {}

// Negate builds the logical negation of g.
func Negate(g Guard) Guard { return &Not{Operand: g} }

// BinOp combines two guards with And or Or.
type BinOp struct {
	Kind BinOpKind
	Left Guard
	Right Guard
}

func (*BinOp) isGuard() {}

// CombineAnd combines a and b with logical AND.
func CombineAnd(a, b Guard) Guard {
	if a == nil {
 return b
	}
	if b == nil {
 return a
	}
	return &BinOp{Kind: And, Left: a, Right: b}
}

// CombineOr combines a and b with logical OR.
func CombineOr(a, b Guard) Guard {
	if a == nil || b == nil {
 // An unconditional (nil) operand makes the whole OR unconditional.
 return nil
	}
	return &BinOp{Kind: Or, Left: a, Right: b}
}
