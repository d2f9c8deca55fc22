package xrootd

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoTaskSuccess(t *testing.T) {
	task := Go("fetch", func(ctx context.Context) error { return nil })
	assert.NoError(t, Parallel(task).Wait(time.Second))
}

func TestGoTaskFailure(t *testing.T) {
	sentinel := errors.New("fetch failed")
	task := Go("fetch", func(ctx context.Context) error { return sentinel })
	assert.ErrorIs(t, Parallel(task).Wait(time.Second), sentinel)
}

func TestGoTaskTimeout(t *testing.T) {
	task := Go("stall", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	err := Parallel(task).Wait(20 * time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGoTaskNoTimeoutBound(t *testing.T) {
	task := Go("check-deadline", func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); ok {
			return errors.New("unexpected deadline")
		}
		return nil
	})
	assert.NoError(t, Parallel(task).Wait(0))
}

func TestGoTaskPanicBecomesOutcome(t *testing.T) {
	task := Go("explode", func(ctx context.Context) error { panic("kaboom") })

	err := Parallel(task).Wait(time.Second)
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "kaboom", pe.Value)
	assert.Contains(t, pe.Stack, "goroutine")
}

func TestGoTaskNilFunctionIsLaunchFault(t *testing.T) {
	done := func(error) { t.Error("done must not be called for a launch fault") }
	err := Go("broken", nil).Run(0, done)
	assert.ErrorIs(t, err, ErrNilTaskFunc)
}

func TestGoTaskDescription(t *testing.T) {
	named := Go("stat", func(ctx context.Context) error { return nil })
	assert.Equal(t, "stat", fmt.Sprint(named))

	unnamed := Go("", func(ctx context.Context) error { return nil })
	assert.Equal(t, "task", fmt.Sprint(unnamed))
}

func TestTaskFuncAdapter(t *testing.T) {
	var gotTimeout time.Duration
	f := TaskFunc(func(timeout time.Duration, done Handler) error {
		gotTimeout = timeout
		done(nil)
		return nil
	})

	completed := make(chan error, 1)
	require.NoError(t, f.Run(time.Second, func(err error) { completed <- err }))
	assert.Equal(t, time.Second, gotTimeout)
	assert.NoError(t, <-completed)
}
