// SPDX-License-Identifier: MIT
package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pslfsm/compiler/ir"
)

func TestBuilder_EmitBlockAllocatesDenseIDs(t *testing.T) {
	b := ir.NewBuilder("p")
	id0 := b.EmitBlock()
	id1 := b.EmitBlock()
	assert.Equal(t, ir.BlockID(0), id0)
	assert.Equal(t, ir.BlockID(1), id1)
}

func TestBuilder_RegistersAreDenseAndMonotonic(t *testing.T) {
	b := ir.NewBuilder("p")
	b.SelectBlock(b.EmitBlock())
	r0 := b.EmitConst(1, 0)
	r1 := b.EmitConst(1, 1)
	assert.Equal(t, ir.Reg(0), r0)
	assert.Equal(t, ir.Reg(1), r1)
}

func TestBuilder_EmitAndOrNotProduceCorrectOpcodes(t *testing.T) {
	b := ir.NewBuilder("p")
	b.SelectBlock(b.EmitBlock())
	a := b.EmitConst(1, 1)
	c := b.EmitConst(1, 0)
	b.EmitAnd(a, c)
	b.EmitOr(a, c)
	b.EmitNot(a)

	blk := b.Program.Block(b.ActiveBlock())
	require.Len(t, blk.Instrs, 5)
	assert.Equal(t, ir.OpAnd, blk.Instrs[2].Op)
	assert.Equal(t, ir.OpOr, blk.Instrs[3].Op)
	assert.Equal(t, ir.OpNot, blk.Instrs[4].Op)
}

func TestBuilder_EmitCommentFormats(t *testing.T) {
	b := ir.NewBuilder("p")
	b.SelectBlock(b.EmitBlock())
	b.EmitComment("state %d entered", 3)
	blk := b.Program.Block(b.ActiveBlock())
	require.Len(t, blk.Instrs, 1)
	assert.Equal(t, "state 3 entered", blk.Instrs[0].Name)
}

func TestProgram_BlockPanicsOnUnknownID(t *testing.T) {
	p := &ir.Program{Name: "p"}
	assert.Panics(t, func() { p.Block(ir.BlockID(99)) })
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "NOTE", ir.SeverityNote.String())
	assert.Equal(t, "WARNING", ir.SeverityWarning.String())
	assert.Equal(t, "ERROR", ir.SeverityError.String())
	assert.Equal(t, "FAILURE", ir.SeverityFailure.String())
}
