// SPDX-License-Identifier: MIT
// Package: pslfsm/diag
//
// diag.go — the diagnostic I/O collaborator. The original treats this as
// an external collaborator, out of scope for the core compiler, but every
// tier of diagnostic needs a concrete home, so this module carries one.
// Sink wraps github.com/joeycumines/logiface with the logiface-slog
// backend, mapping three error tiers onto logiface severities:
//
//	tier 1 (non-fatal, continue) -> Warning
//	tier 2 ("sorry," unsupported, skip) -> Err
//	tier 3 (internal invariant, crash) -> Crit, then panic
//
// Every diagnostic carries the offending PSL node's locus as a structured
// field.
package diag

import (	"fmt"
	"log/slog"
	"os"

	"github.com/joeycumines/logiface"
	islog "github.com/joeycumines/logiface-slog"

	"github.com/pslfsm/compiler/psl"
)

// Sink implements fsm.Diagnostics and numfold.Diagnostics, and adds the
// tier-2/tier-3 emitters those two narrower interfaces don't need.
type Sink struct {
	logger *logiface.Logger[*islog.Event]

	// errCount is the tier-1/2 error counter: the caller checks it before
	// proceeding to lowering. Warnings (tier 1) do not increment it.
	errCount int
}

// New builds a Sink logging through handler (a JSON handler on os.Stderr
// when handler is nil).
func New(handler slog.Handler) *Sink {
	if handler == nil {
 handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	return &Sink{logger: logiface.New[*islog.Event](islog.NewLogger(handler))}
}

// Warnf emits a tier-1 diagnostic for a negative number (non-fatal,
// continue). Does not increment ErrorCount.
func (s *Sink) Warnf(loc psl.Locus, format string, args...any) {
	s.logger.Warning().Str("locus", loc.String()).Log(fmt.Sprintf(format, args...))
}

// Errorf emits a tier-2 "sorry," diagnostic (fatal to this directive,
// continue with others) and increments ErrorCount.
func (s *Sink) Errorf(loc psl.Locus, format string, args...any) {
	s.errCount++
	s.logger.Err().Str("locus", loc.String()).Log(fmt.Sprintf(format, args...))
}

// Fatalf emits a tier-3 internal-invariant diagnostic (fatal, crash with
// trace) and panics, matching the original's abort-on-bug policy for
// epsilon cycles and unknown-kind dispatch.
func (s *Sink) Fatalf(loc psl.Locus, format string, args...any) {
	msg := fmt.Sprintf(format, args...)
	s.logger.Crit().Str("locus", loc.String()).Log(msg)
	panic("pslfsm: internal invariant violated: " + msg)
}

// ErrorCount returns the number of tier-2 diagnostics recorded so far.
// Callers check this before proceeding to lowering: a non-zero count means
// at least one directive failed to compile and must not be lowered.
func (s *Sink) ErrorCount() int { return s.errCount }
