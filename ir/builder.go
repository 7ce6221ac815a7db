// SPDX-License-Identifier: MIT
package ir

import "fmt"

// Builder is a reusable, concrete Emitter implementation backed by a
// Program. lower.Unit embeds a Builder so the property lowerer (C7) need
// not reimplement instruction bookkeeping; it only supplies the
// PSL-specific orchestration.
type Builder struct {
	Program *Program
	active BlockID
	nextReg Reg
}

// NewBuilder creates a Builder for a fresh, empty Program named name.
func NewBuilder(name string) *Builder {
	return &Builder{Program: &Program{Name: name}, active: InvalidBlock}
}

func (b *Builder) alloc() Reg {
	r := b.nextReg
	b.nextReg++
	return r
}

func (b *Builder) emit(i Instr) {
	blk := b.Program.Block(b.active)
	blk.Instrs = append(blk.Instrs, i)
}

// EmitBlock implements Emitter: allocates a fresh block, does not select it.
func (b *Builder) EmitBlock() BlockID {
	id := BlockID(len(b.Program.Blocks))
	b.Program.Blocks = append(b.Program.Blocks, &Block{ID: id})
	return id
}

// SelectBlock implements Emitter.
func (b *Builder) SelectBlock(id BlockID) { b.active = id }

// ActiveBlock implements Emitter.
func (b *Builder) ActiveBlock() BlockID { return b.active }

func (b *Builder) EmitConst(width int, value int64) Reg {
	r := b.alloc()
	b.emit(Instr{Op: OpConst, Dst: r, Const: value, Width: width})
	return r
}

func (b *Builder) EmitSignal(name string) Reg {
	r := b.alloc()
	b.emit(Instr{Op: OpSignal, Dst: r, Name: name})
	return r
}

func (b *Builder) EmitCmp(kind CmpKind, a, bb Reg) Reg {
	r := b.alloc()
	b.emit(Instr{Op: OpCmp, Dst: r, A: a, B: bb, Const: int64(kind)})
	return r
}

func (b *Builder) EmitAnd(a, bb Reg) Reg {
	r := b.alloc()
	b.emit(Instr{Op: OpAnd, Dst: r, A: a, B: bb})
	return r
}

func (b *Builder) EmitOr(a, bb Reg) Reg {
	r := b.alloc()
	b.emit(Instr{Op: OpOr, Dst: r, A: a, B: bb})
	return r
}

func (b *Builder) EmitNot(a Reg) Reg {
	r := b.alloc()
	b.emit(Instr{Op: OpNot, Dst: r, A: a})
	return r
}

func (b *Builder) EmitAssert(cond Reg, severity Severity, locus string) {
	b.emit(Instr{Op: OpAssert, A: cond, Severity: severity, Locus: locus})
}

func (b *Builder) EmitReport(msg string, severity Severity, locus string) {
	b.emit(Instr{Op: OpReport, Name: msg, Severity: severity, Locus: locus})
}

func (b *Builder) EmitCoverStmt(tag string) {
	b.emit(Instr{Op: OpCoverStmt, Name: tag})
}

func (b *Builder) EmitEnterState(stateID int32, strong bool) {
	b.emit(Instr{Op: OpEnterState, StateID: stateID, Strong: strong})
}

func (b *Builder) EmitAddTrigger(trigger Reg) {
	b.emit(Instr{Op: OpAddTrigger, A: trigger})
}

func (b *Builder) EmitOrTrigger(a, bb Reg) Reg {
	r := b.alloc()
	b.emit(Instr{Op: OpOrTrigger, Dst: r, A: a, B: bb})
	return r
}

func (b *Builder) EmitFunctionTrigger(name string) Reg {
	r := b.alloc()
	b.emit(Instr{Op: OpFunctionTrigger, Dst: r, Name: name})
	return r
}

func (b *Builder) EmitSchedEvent(signal string) {
	b.emit(Instr{Op: OpSchedEvent, Name: signal})
}

func (b *Builder) EmitCase(selector Reg, defaultBlock BlockID, vals []int64, blocks []BlockID) {
	b.emit(Instr{Op: OpCase, A: selector, Target: defaultBlock, CaseVals: vals, CaseDest: blocks})
}

func (b *Builder) EmitJump(target BlockID) {
	b.emit(Instr{Op: OpJump, Target: target})
}

func (b *Builder) EmitCond(cond Reg, thenBlock, elseBlock BlockID) {
	b.emit(Instr{Op: OpCond, A: cond, Target: thenBlock, Else: elseBlock})
}

func (b *Builder) EmitVar(name string, width int) Reg {
	r := b.alloc()
	b.emit(Instr{Op: OpVar, Dst: r, Name: name, Width: width})
	return r
}

func (b *Builder) EmitIndex(v, idx Reg) Reg {
	r := b.alloc()
	b.emit(Instr{Op: OpIndex, Dst: r, A: v, B: idx})
	return r
}

func (b *Builder) EmitCopy(dst, src, count Reg) {
	b.emit(Instr{Op: OpCopy, A: dst, B: src, C: count})
}

func (b *Builder) EmitLoad(v Reg) Reg {
	r := b.alloc()
	b.emit(Instr{Op: OpLoad, Dst: r, A: v})
	return r
}

func (b *Builder) EmitStore(val, v Reg) {
	b.emit(Instr{Op: OpStore, A: val, B: v})
}

func (b *Builder) EmitReturn(val Reg) {
	b.emit(Instr{Op: OpReturn, A: val})
}

func (b *Builder) EmitUnreachable() {
	b.emit(Instr{Op: OpUnreachable})
}

func (b *Builder) EmitComment(format string, args...any) {
	b.emit(Instr{Op: OpComment, Name: fmt.Sprintf(format, args...)})
}
