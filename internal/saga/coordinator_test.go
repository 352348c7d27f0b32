package saga

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCoordinator(timeout time.Duration) *Coordinator {
	return NewCoordinator(zerolog.Nop(), timeout)
}

func TestRun_AllStepsSucceed(t *testing.T) {
	var order []string
	steps := []Step{
		{
			Name: "first",
			Do:   func(ctx context.Context) error { order = append(order, "do-first"); return nil },
			Undo: func(ctx context.Context) error { order = append(order, "undo-first"); return nil },
		},
		{
			Name: "second",
			Do:   func(ctx context.Context) error { order = append(order, "do-second"); return nil },
			Undo: func(ctx context.Context) error { order = append(order, "undo-second"); return nil },
		},
	}

	err := testCoordinator(0).Run(context.Background(), "test", steps)
	require.NoError(t, err)
	assert.Equal(t, []string{"do-first", "do-second"}, order)
}

func TestRun_FailureCompensatesInReverseOrder(t *testing.T) {
	var order []string
	cause := errors.New("step three broke")
	steps := []Step{
		{
			Name: "one",
			Do:   func(ctx context.Context) error { order = append(order, "do-one"); return nil },
			Undo: func(ctx context.Context) error { order = append(order, "undo-one"); return nil },
		},
		{
			Name: "two",
			Do:   func(ctx context.Context) error { order = append(order, "do-two"); return nil },
			Undo: func(ctx context.Context) error { order = append(order, "undo-two"); return nil },
		},
		{
			Name: "three",
			Do:   func(ctx context.Context) error { return cause },
			Undo: func(ctx context.Context) error { order = append(order, "undo-three"); return nil },
		},
	}

	err := testCoordinator(0).Run(context.Background(), "test", steps)
	require.Error(t, err)

	var failure *CompensatedFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "three", failure.FailedStep)
	assert.ErrorIs(t, failure.Cause, cause)
	assert.True(t, failure.FullyRolledBack())

	// The failed step's own undo must not run; completed steps roll back
	// newest first.
	assert.Equal(t, []string{"do-one", "do-two", "undo-two", "undo-one"}, order)

	require.Len(t, failure.Undo, 2)
	assert.Equal(t, "two", failure.Undo[0].Step)
	assert.Equal(t, "one", failure.Undo[1].Step)
}

func TestRun_UndoFailureDoesNotHaltRollback(t *testing.T) {
	var order []string
	undoErr := errors.New("undo two broke")
	steps := []Step{
		{
			Name: "one",
			Do:   func(ctx context.Context) error { return nil },
			Undo: func(ctx context.Context) error { order = append(order, "undo-one"); return nil },
		},
		{
			Name: "two",
			Do:   func(ctx context.Context) error { return nil },
			Undo: func(ctx context.Context) error { return undoErr },
		},
		{
			Name: "three",
			Do:   func(ctx context.Context) error { return errors.New("boom") },
		},
	}

	err := testCoordinator(0).Run(context.Background(), "test", steps)

	var failure *CompensatedFailure
	require.ErrorAs(t, err, &failure)
	assert.False(t, failure.FullyRolledBack())

	// undo-one still ran after undo-two failed.
	assert.Equal(t, []string{"undo-one"}, order)

	require.Len(t, failure.Undo, 2)
	assert.Equal(t, "two", failure.Undo[0].Step)
	assert.ErrorIs(t, failure.Undo[0].Err, undoErr)
	assert.False(t, failure.Undo[0].Succeeded())
	assert.True(t, failure.Undo[1].Succeeded())
}

func TestRun_FirstStepFailureHasNothingToUndo(t *testing.T) {
	steps := []Step{
		{
			Name: "only",
			Do:   func(ctx context.Context) error { return errors.New("immediate failure") },
			Undo: func(ctx context.Context) error { t.Fatal("undo must not run"); return nil },
		},
	}

	err := testCoordinator(0).Run(context.Background(), "test", steps)

	var failure *CompensatedFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "only", failure.FailedStep)
	assert.Empty(t, failure.Undo)
	assert.True(t, failure.FullyRolledBack())
}

func TestRun_StepTimeoutTreatedAsFailure(t *testing.T) {
	var undone bool
	steps := []Step{
		{
			Name: "fast",
			Do:   func(ctx context.Context) error { return nil },
			Undo: func(ctx context.Context) error { undone = true; return nil },
		},
		{
			Name: "slow",
			Do: func(ctx context.Context) error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(5 * time.Second):
					return nil
				}
			},
		},
	}

	err := testCoordinator(50*time.Millisecond).Run(context.Background(), "test", steps)

	var failure *CompensatedFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "slow", failure.FailedStep)
	assert.ErrorIs(t, failure.Cause, context.DeadlineExceeded)
	assert.True(t, undone)
}

func TestRun_NilUndoIsSkipped(t *testing.T) {
	steps := []Step{
		{
			Name: "no-undo",
			Do:   func(ctx context.Context) error { return nil },
		},
		{
			Name: "fails",
			Do:   func(ctx context.Context) error { return errors.New("boom") },
		},
	}

	err := testCoordinator(0).Run(context.Background(), "test", steps)

	var failure *CompensatedFailure
	require.ErrorAs(t, err, &failure)
	assert.Empty(t, failure.Undo)
}
