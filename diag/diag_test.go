// SPDX-License-Identifier: MIT
package diag_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pslfsm/compiler/diag"
	"github.com/pslfsm/compiler/psl"
)

func newSink(buf *bytes.Buffer) *diag.Sink {
	return diag.New(slog.NewJSONHandler(buf, nil))
}

func TestWarnf_DoesNotIncrementErrorCount(t *testing.T) {
	var buf bytes.Buffer
	s := newSink(&buf)
	s.Warnf(psl.Locus{File: "t", Line: 1}, "negative delay clamped to 0")
	assert.Equal(t, 0, s.ErrorCount())
	assert.Contains(t, buf.String(), "negative delay clamped to 0")
}

func TestErrorf_IncrementsErrorCount(t *testing.T) {
	var buf bytes.Buffer
	s := newSink(&buf)
	s.Errorf(psl.Locus{File: "t", Line: 2}, "unsupported construct: %s", "foo")
	s.Errorf(psl.Locus{File: "t", Line: 3}, "another failure")
	assert.Equal(t, 2, s.ErrorCount())
	assert.Contains(t, buf.String(), "unsupported construct: foo")
}

func TestFatalf_PanicsWithInvariantMessage(t *testing.T) {
	var buf bytes.Buffer
	s := newSink(&buf)
	assert.PanicsWithValue(t, "pslfsm: internal invariant violated: epsilon cycle detected", func() {
		s.Fatalf(psl.Locus{File: "t", Line: 4}, "epsilon cycle detected")
	})
}

func TestNew_NilHandlerDefaultsToStderr(t *testing.T) {
	assert.NotPanics(t, func() {
		s := diag.New(nil)
		s.Warnf(psl.Locus{}, "writes to stderr, not asserted on here")
		_ = s
	})
}
