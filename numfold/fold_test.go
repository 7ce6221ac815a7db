// SPDX-License-Identifier: MIT
package numfold_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pslfsm/compiler/numfold"
	"github.com/pslfsm/compiler/psl"
)

type recordingDiag struct {
	warnings []string
}

func (d *recordingDiag) Warnf(loc psl.Locus, format string, args ...any) {
	d.warnings = append(d.warnings, loc.String())
}

func TestFold_StaticPositive(t *testing.T) {
	n := psl.Number(4, psl.Locus{Line: 1})
	v, err := numfold.Fold(numfold.StubFolder{}, nil, n)
	require.NoError(t, err)
	assert.Equal(t, int64(4), v)
}

func TestFold_NonStatic(t *testing.T) {
	n := psl.Signal("clk", psl.Locus{Line: 2})
	_, err := numfold.Fold(numfold.StubFolder{}, nil, n)
	require.Error(t, err)
	assert.True(t, errors.Is(err, numfold.ErrNonStatic))
}

func TestFold_NegativeClampsAndWarns(t *testing.T) {
	n := psl.Number(-3, psl.Locus{Line: 3})
	diag := &recordingDiag{}
	v, err := numfold.Fold(numfold.StubFolder{}, diag, n)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
	assert.Len(t, diag.warnings, 1)
}

func TestFold_NegativeWithNilDiagnosticsDoesNotPanic(t *testing.T) {
	n := psl.Number(-1, psl.Locus{Line: 4})
	v, err := numfold.Fold(numfold.StubFolder{}, nil, n)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
}

func TestStubFolder_RejectsNonConstFoldableNode(t *testing.T) {
	_, ok := numfold.StubFolder{}.FoldedInt(psl.Signal("x", psl.Locus{}))
	assert.False(t, ok)
}
