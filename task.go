package xrootd

import (
	"context"
	"errors"
	"time"
)

// Handler receives the aggregate outcome of a parallel activation, or the
// outcome of a single task. A nil error means success.
type Handler func(err error)

// Task is an opaque unit of asynchronous work with single-completion
// semantics.
type Task interface {
	// Run starts the task. On a nil return the task has been started and
	// done will be invoked exactly once with the task's outcome,
	// asynchronously, possibly on a different goroutine than the caller,
	// even when the task fails immediately. A non-nil return is a launch
	// fault: the task never started and done will never be called.
	//
	// timeout bounds how long the task may run once started; zero means
	// no bound. It does not make Run block.
	Run(timeout time.Duration, done Handler) error
}

// TaskFunc adapts a function to the [Task] interface.
type TaskFunc func(timeout time.Duration, done Handler) error

// Run implements [Task].
func (f TaskFunc) Run(timeout time.Duration, done Handler) error {
	return f(timeout, done)
}

// ErrNilTaskFunc is the launch fault reported by a [Go] task constructed
// with a nil function.
var ErrNilTaskFunc = errors.New("xrootd: nil task function")

// Go lifts an ordinary context function into a named [Task]. The task
// runs fn on its own goroutine; a positive timeout is enforced through
// the context's deadline. A panic in fn is captured and delivered as a
// [*PanicError] outcome. The name appears in diagnostic descriptions
// such as [Combinator.String].
func Go(name string, fn func(ctx context.Context) error) Task {
	return &goTask{name: name, fn: fn}
}

type goTask struct {
	name string
	fn   func(ctx context.Context) error
}

func (t *goTask) String() string {
	if t.name == "" {
		return "task"
	}
	return t.name
}

func (t *goTask) Run(timeout time.Duration, done Handler) error {
	if t.fn == nil {
		return ErrNilTaskFunc
	}

	go func() {
		ctx := context.Background()
		cancel := context.CancelFunc(func() {})
		if timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, timeout)
		}
		defer cancel()

		var err error
		defer func() {
			if r := recover(); r != nil {
				err = newPanicError(r)
			}
			done(err)
		}()
		err = t.fn(ctx)
	}()

	return nil
}
