// SPDX-License-Identifier: MIT
package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pslfsm/compiler/guard"
	"github.com/pslfsm/compiler/ir"
	"github.com/pslfsm/compiler/psl"
)

func TestCombineAnd_NilOperandsShortCircuit(t *testing.T) {
	a := guard.FromExpr(psl.Signal("a", psl.Locus{}))
	assert.Equal(t, a, guard.CombineAnd(nil, a))
	assert.Equal(t, a, guard.CombineAnd(a, nil))
	assert.Nil(t, guard.CombineAnd(nil, nil))
}

func TestCombineOr_NilOperandMakesWholeOrUnconditional(t *testing.T) {
	a := guard.FromExpr(psl.Signal("a", psl.Locus{}))
	assert.Nil(t, guard.CombineOr(nil, a))
	assert.Nil(t, guard.CombineOr(a, nil))
	assert.Nil(t, guard.CombineOr(nil, nil))
}

func TestNegate_WrapsInNot(t *testing.T) {
	a := guard.FromExpr(psl.Signal("a", psl.Locus{}))
	n, ok := guard.Negate(a).(*guard.Not)
	require.True(t, ok)
	assert.Equal(t, a, n.Operand)
}

func newTestBuilder() *ir.Builder {
	b := ir.NewBuilder("p")
	b.SelectBlock(b.EmitBlock())
	return b
}

func TestLower_NilGuardIsError(t *testing.T) {
	b := newTestBuilder()
	_, err := guard.Lower(nil, guard.MapLowerer{}, b)
	require.Error(t, err)
}

func TestLower_SingleSignal(t *testing.T) {
	b := newTestBuilder()
	g := guard.FromExpr(psl.Signal("req", psl.Locus{}))
	reg, err := guard.Lower(g, guard.MapLowerer{AllBool: true}, b)
	require.NoError(t, err)
	assert.NotEqual(t, ir.InvalidReg, reg)
}

func TestLower_StdLogicCoercionEmitsCmp(t *testing.T) {
	b := newTestBuilder()
	g := guard.FromExpr(psl.Signal("req", psl.Locus{}))
	_, err := guard.Lower(g, guard.MapLowerer{AllBool: false}, b)
	require.NoError(t, err)
	blk := b.Program.Block(b.ActiveBlock())
	var sawCmp bool
	for _, instr := range blk.Instrs {
		if instr.Op == ir.OpCmp {
			sawCmp = true
		}
	}
	assert.True(t, sawCmp, "std_logic signal must be coerced via EmitCmp")
}

func TestLower_AndOr(t *testing.T) {
	b := newTestBuilder()
	left := guard.FromExpr(psl.Signal("a", psl.Locus{}))
	right := guard.FromExpr(psl.Signal("b", psl.Locus{}))
	and := guard.CombineAnd(left, right)
	or := guard.CombineOr(left, right)

	_, err := guard.Lower(and, guard.MapLowerer{AllBool: true}, b)
	require.NoError(t, err)
	_, err = guard.Lower(or, guard.MapLowerer{AllBool: true}, b)
	require.NoError(t, err)
}

func TestLower_Not(t *testing.T) {
	b := newTestBuilder()
	g := guard.Negate(guard.FromExpr(psl.Signal("a", psl.Locus{})))
	reg, err := guard.Lower(g, guard.MapLowerer{AllBool: true}, b)
	require.NoError(t, err)
	assert.NotEqual(t, ir.InvalidReg, reg)
}

func TestPrint_Unconditional(t *testing.T) {
	assert.Equal(t, "", guard.Print(nil, nil))
}

func TestPrint_NamedSignal(t *testing.T) {
	g := guard.FromExpr(psl.Signal("req", psl.Locus{}))
	assert.Equal(t, "req", guard.Print(g, nil))
}

func TestPrint_NegationAndCombination(t *testing.T) {
	a := guard.FromExpr(psl.Signal("a", psl.Locus{}))
	b := guard.FromExpr(psl.Signal("b", psl.Locus{}))
	assert.Equal(t, "!a", guard.Print(guard.Negate(a), nil))
	assert.Equal(t, "a && b", guard.Print(guard.CombineAnd(a, b), nil))
	assert.Equal(t, "a || b", guard.Print(guard.CombineOr(a, b), nil))
}

func TestPrint_ParenthesisesNestedBinOp(t *testing.T) {
	a := guard.FromExpr(psl.Signal("a", psl.Locus{}))
	b := guard.FromExpr(psl.Signal("b", psl.Locus{}))
	c := guard.FromExpr(psl.Signal("c", psl.Locus{}))
	nested := guard.CombineOr(guard.CombineAnd(a, b), c)
	assert.Equal(t, "(a && b) || c", guard.Print(nested, nil))
}

func TestEscapeDOT(t *testing.T) {
	assert.Equal(t, `a \"quoted\" \\ value`, guard.EscapeDOT(`a "quoted" \ value`))
}

type fixedPrinter struct{ s string }

func (p fixedPrinter) PrintExpr(psl.Node) string { return p.s }

func TestPrint_UsesExprPrinterWhenGiven(t *testing.T) {
	g := guard.FromExpr(psl.Signal("req", psl.Locus{}))
	assert.Equal(t, "custom", guard.Print(g, fixedPrinter{s: "custom"}))
}
