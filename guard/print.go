// SPDX-License-Identifier: MIT
// Package: pslfsm/guard
//
// print.go — re-prints a Guard as the PSL-like infix text the DOT
// visualiser wants for an edge label: a label produced by re-printing the
// PSL sub-tree of the guard. The real VHDL expression printer is an
// external collaborator; ExprPrinter lets fsm/dot supply one, falling back
// to a signal name (psl.Stub.Name) or the node's source locus when none is
// given, so the visualiser works even against bare Stub trees.
package guard

import (	"fmt"
	"strings"

	"github.com/pslfsm/compiler/psl"
)

// ExprPrinter renders a single leaf HDL expression node as text. A nil
// ExprPrinter falls back to Stub.Name / the node's locus.
type ExprPrinter interface {
	PrintExpr(n psl.Node) string
}

// Print renders g as a guard label: infix AND/OR, "!" for negation,
// parenthesised only where ambiguous (a BinOp inside another BinOp).
func Print(g Guard, p ExprPrinter) string {
	if g == nil {
 return "" // unconditional edge: no label
	}
	return printGuard(g, p, false)
}

func printGuard(g Guard, p ExprPrinter, parens bool) string {
	switch v := g.(type) {
	case *Expr:
 return printExpr(v.Node, p)
	case *Not:
 return "!" + printGuard(v.Operand, p, true)
	case *BinOp:
 op := " && "
 if v.Kind == Or {
 op = " || "
 }
 s := printGuard(v.Left, p, true) + op + printGuard(v.Right, p, true)
 if parens {
 return "(" + s + ")"
 }
 return s
	default:
 return fmt.Sprintf("<?guard %T?>", g)
	}
}

func printExpr(n psl.Node, p ExprPrinter) string {
	if p != nil {
 if s := p.PrintExpr(n); s != "" {
 return s
 }
	}
	if s, ok := n.(*psl.Stub); ok && s.Name != "" {
 return s.Name
	}
	return n.Locus().String()
}

// EscapeDOT escapes double quotes and backslashes in s for embedding in a
// DOT quoted string label, matching psl_fsm_dump's label escaping: quotes
// inside a re-printed guard expression are escaped as \".
func EscapeDOT(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
