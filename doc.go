// Package xrootd provides the parallel composition combinator of an
// asynchronous client for a distributed data-access protocol: a way to
// launch any number of independently running asynchronous tasks, let
// their completions race on arbitrary goroutines, and deliver exactly
// one aggregate outcome to a single completion handler.
//
// # Tasks
//
// A [Task] is an opaque unit of asynchronous work. Its Run method starts
// execution and guarantees the completion callback is invoked exactly
// once, asynchronously, possibly on a different goroutine than the
// caller. [TaskFunc] adapts a plain function, and [Go] lifts an ordinary
// context function into a named task with per-task timeout enforcement
// and panic capture.
//
// # Building a combinator
//
// [Parallel] aggregates a fixed set of tasks supplied individually, in
// call order. [Combine] consumes a prepared task list, emptying the
// source slice to signal transfer of ownership. A [Combinator] is itself
// a [Task], so parallel groups nest inside larger pipelines:
//
//	c := xrootd.Parallel(
//	    xrootd.Go("read-a", readA),
//	    xrootd.Go("read-b", readB),
//	).Any()
//
//	err := c.Run(5*time.Second, func(err error) {
//	    // exactly one invocation, on whichever goroutine decides
//	})
//
// # Termination policies
//
// Before activation a policy selects when the aggregate outcome is
// decided:
//
//   - [Combinator.All] (default): every task must succeed; the first
//     failure decides the aggregate immediately.
//   - [Combinator.Any]: one success decides the aggregate; all tasks
//     failing delivers the last failure.
//   - [Combinator.Some]: k successes decide the aggregate; once k
//     successes become unreachable the deciding failure is delivered.
//   - [Combinator.AtLeast]: like Some, but the handler fires only after
//     every task has resolved unless k successes become unreachable.
//
// Policies never block and never cancel tasks: once started, a task runs
// to completion even when its outcome can no longer affect the
// aggregate.
//
// # Activation and launch faults
//
// [Combinator.Run] returns as soon as every task has been launched. An
// error starting a task (a launch fault) aborts the launch loop and is
// returned synchronously; it never reaches the handler. Tasks started
// before the fault keep running, and their completions may still produce
// the single handler invocation. [Combinator.Wait] is a blocking
// convenience over Run.
package xrootd
