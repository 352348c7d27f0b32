// Package saga runs ordered multi-system writes with best-effort
// compensation. There is no shared transaction across the identity
// provider, Postgres, and object storage; on a step failure the
// coordinator undoes every completed step in reverse order and reports
// exactly how far the rollback got.
package saga

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Step is one forward action with its paired inverse. Do must be
// idempotent for the step's external system. Undo is best-effort: its
// error is recorded, never propagated, and never halts the rollback of
// earlier steps.
type Step struct {
	Name string
	Do   func(ctx context.Context) error
	Undo func(ctx context.Context) error
}

// UndoResult records the outcome of one compensation attempt.
type UndoResult struct {
	Step string `json:"step"`
	Err  error  `json:"-"`
}

// Succeeded reports whether the undo completed cleanly.
func (u UndoResult) Succeeded() bool { return u.Err == nil }

// CompensatedFailure is returned when a step fails and the coordinator has
// finished compensating. Undo holds one entry per attempted inverse, in
// the order they ran (reverse step order), so an operator can distinguish
// "fully rolled back" from "needs manual remediation".
type CompensatedFailure struct {
	FailedStep string
	Cause      error
	Undo       []UndoResult
}

func (e *CompensatedFailure) Error() string {
	return fmt.Sprintf("saga: step %q failed: %v (%d compensations attempted)", e.FailedStep, e.Cause, len(e.Undo))
}

func (e *CompensatedFailure) Unwrap() error { return e.Cause }

// FullyRolledBack reports whether every undo attempt succeeded.
func (e *CompensatedFailure) FullyRolledBack() bool {
	for _, u := range e.Undo {
		if !u.Succeeded() {
			return false
		}
	}
	return true
}

// Coordinator executes step lists. Safe for concurrent use; it holds no
// per-run state.
type Coordinator struct {
	log         zerolog.Logger
	stepTimeout time.Duration
}

// DefaultStepTimeout bounds each Do call; a timed-out step is treated
// exactly like a failed one.
const DefaultStepTimeout = 30 * time.Second

func NewCoordinator(log zerolog.Logger, stepTimeout time.Duration) *Coordinator {
	if stepTimeout <= 0 {
		stepTimeout = DefaultStepTimeout
	}
	return &Coordinator{log: log, stepTimeout: stepTimeout}
}

// Run executes steps in order. On the first Do failure it runs the
// completed steps' Undo functions in strict reverse order, collecting
// undo failures without stopping, and returns a *CompensatedFailure.
// Returns nil when every step completes.
func (c *Coordinator) Run(ctx context.Context, name string, steps []Step) error {
	for i, step := range steps {
		err := c.runStep(ctx, step)
		if err == nil {
			c.log.Debug().Str("saga", name).Str("step", step.Name).Msg("step completed")
			continue
		}

		c.log.Error().Err(err).Str("saga", name).Str("step", step.Name).Msg("step failed, compensating")

		undo := c.compensate(ctx, name, steps[:i])
		return &CompensatedFailure{FailedStep: step.Name, Cause: err, Undo: undo}
	}
	return nil
}

func (c *Coordinator) runStep(ctx context.Context, step Step) error {
	stepCtx, cancel := context.WithTimeout(ctx, c.stepTimeout)
	defer cancel()
	return step.Do(stepCtx)
}

// compensate undoes completed steps in reverse order. Undo errors are
// collected, not propagated: a failed inverse never stops earlier
// inverses from running.
func (c *Coordinator) compensate(ctx context.Context, name string, completed []Step) []UndoResult {
	results := make([]UndoResult, 0, len(completed))
	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		if step.Undo == nil {
			continue
		}

		undoCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.stepTimeout)
		err := step.Undo(undoCtx)
		cancel()

		if err != nil {
			c.log.Warn().Err(err).Str("saga", name).Str("step", step.Name).
				Msg("compensation failed, manual remediation required")
		}
		results = append(results, UndoResult{Step: step.Name, Err: err})
	}
	return results
}
