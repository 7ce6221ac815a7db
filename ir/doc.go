// SPDX-License-Identifier: MIT
// Package ir defines the target-IR instruction set and the Emitter
// primitive surface that the VHDL expression lowering / code generation
// collaborator exposes to this compiler.
//
// EmitSignal is the one primitive with no direct counterpart in the
// original emission-primitive list. The real VHDL lowerer's lower_rvalue
// already returns a register that, when the *generated* code runs, reads
// the live net value (that indirection is intrinsic to how vcode registers
// work), so there was never a need for a name for "read a free variable"
// because it's folded into lower_rvalue's result. This module's bundled
// HDL-lowerer stand-in (guard.MapLowerer, used by tests and the CLI in
// place of the real VHDL lowering layer) needs that primitive to exist
// explicitly, since it has no vcode register file to hide the indirection
// inside.
package ir
