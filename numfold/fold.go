// SPDX-License-Identifier: MIT
// Package: pslfsm/numfold
//
// fold.go — the number folder (design component C2).
//
// Evaluates compile-time integer sub-expressions embedded in PSL (repetition
// counts, next[k] delays). Mirrors builder/validators.go's validation style:
// sentinel errors, no panics, the caller decides how to recover.
//
// AI-HINT (file):
// - Fold returns either a folded non-negative value or ErrNonStatic; it
// never produces Infinity. An unbounded repetition upper bound (`[*]`,
// `[+]`, `[*n..]`) is recognised by the fsm builder from the shape of the
// repeat node, not from a folded value.
package numfold

import (	"errors"
	"fmt"

	"github.com/pslfsm/compiler/psl"
)

// ErrNonStatic indicates constant-folding did not yield an integer
// ("static value of PSL Number is not known", a hard error).
var ErrNonStatic = errors.New("numfold: value is not statically known")

// constFoldable is implemented by psl.Stub; a real VHDL constant folder
// would be consulted instead via a Folder implementation (see Folder).
type constFoldable interface {
	ConstValue() (int64, bool)
}

// Folder evaluates a node's constant integer value. The bundled
// StubFolder satisfies this using psl.Stub.ConstValue; production code
// wires an adapter over the real VHDL constant-folder collaborator
// (folded_int/folded_length).
type Folder interface {
	FoldedInt(n psl.Node) (int64, bool)
}

// StubFolder implements Folder against constFoldable nodes (psl.Stub).
type StubFolder struct{}

// FoldedInt implements Folder.
func (StubFolder) FoldedInt(n psl.Node) (int64, bool) {
	if cf, ok := n.(constFoldable); ok {
 return cf.ConstValue()
	}
	return 0, false
}

// Diagnostics receives the non-fatal tier-1 warning for a negative folded
// value ("PSL Number is negative"). A nil Diagnostics silently drops
// warnings.
type Diagnostics interface {
	Warnf(loc psl.Locus, format string, args...any)
}

// Fold evaluates n to a non-negative int64:
// - returns ErrNonStatic if f cannot fold n to an integer;
// - emits a (non-fatal) warning via diag and clamps to 0 if the folded
// value is negative.
func Fold(f Folder, diag Diagnostics, n psl.Node) (int64, error) {
	v, ok := f.FoldedInt(n)
	if !ok {
 return 0, fmt.Errorf("numfold: %s: %w", n.Locus(), ErrNonStatic)
	}
	if v < 0 {
 if diag != nil {
 diag.Warnf(n.Locus(), "PSL Number %d is negative", v)
 }
 return 0, nil
	}
	return v, nil
}

// Infinity is the sentinel "highest representable positive int" standing in
// for an unbounded repetition upper bound.
const Infinity = int64(1<<63 - 1)
