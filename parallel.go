package xrootd

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// Combinator runs a set of [Task] values in parallel. The zero value is
// not usable; construct one via [Parallel] or [Combine].
type Combinator struct {
	tasks   []Task
	pol     *policy
	timeout time.Duration

	activated atomic.Bool
}

// Parallel builds a [Combinator] from a fixed set of tasks supplied
// individually. Launch order follows call order. Parallel panics if any
// task is nil.
func Parallel(tasks ...Task) *Combinator {
	for i, t := range tasks {
		if t == nil {
			panic(fmt.Sprintf("xrootd: Parallel task[%d] must not be nil", i))
		}
	}
	return &Combinator{tasks: append([]Task(nil), tasks...)}
}

// Combine builds a [Combinator] from a prepared task list, taking
// ownership of the tasks: the source slice is emptied afterwards.
// Combine panics if any task is nil.
func Combine(tasks *[]Task) *Combinator {
	c := Parallel(*tasks...)
	for i := range *tasks {
		(*tasks)[i] = nil
	}
	*tasks = (*tasks)[:0]
	return c
}

// All requires every task to succeed; the first failure decides the
// aggregate immediately. This is the default policy.
func (c *Combinator) All() *Combinator {
	c.setPolicy(newPolicy(policyAll, len(c.tasks), 0))
	return c
}

// Any requires just one task to succeed; the first success decides the
// aggregate immediately. If every task fails, the last failure decides.
func (c *Combinator) Any() *Combinator {
	c.setPolicy(newPolicy(policyAny, len(c.tasks), 0))
	return c
}

// Some requires threshold tasks to succeed; the success that reaches the
// threshold decides the aggregate immediately, as does the failure that
// makes the threshold unreachable. Some panics unless
// 0 < threshold <= the task count.
func (c *Combinator) Some(threshold int) *Combinator {
	c.checkThreshold("Some", threshold)
	c.setPolicy(newPolicy(policySome, len(c.tasks), threshold))
	return c
}

// AtLeast requires threshold tasks to succeed, but delivers the success
// aggregate only once every task has resolved. The failure that makes
// the threshold unreachable still decides immediately. AtLeast panics
// unless 0 < threshold <= the task count.
func (c *Combinator) AtLeast(threshold int) *Combinator {
	c.checkThreshold("AtLeast", threshold)
	c.setPolicy(newPolicy(policyAtLeast, len(c.tasks), threshold))
	return c
}

// WithTimeout bounds how long each task may run once started. The
// effective bound at activation is the smaller of this and the timeout
// passed to [Combinator.Run]; zero means unset.
func (c *Combinator) WithTimeout(d time.Duration) *Combinator {
	if c.activated.Load() {
		panic("xrootd: timeout set after activation")
	}
	c.timeout = d
	return c
}

func (c *Combinator) setPolicy(p *policy) {
	if c.activated.Load() {
		panic("xrootd: policy selected after activation")
	}
	c.pol = p
}

func (c *Combinator) checkThreshold(op string, k int) {
	if k <= 0 || k > len(c.tasks) {
		panic(fmt.Sprintf("xrootd: %s requires 0 < threshold <= %d, got %d", op, len(c.tasks), k))
	}
}

// Len returns the number of aggregated tasks.
func (c *Combinator) Len() int {
	return len(c.tasks)
}

// String renders the combinator as Parallel(task1 && task2 && … && taskN)
// for diagnostics. Tasks implementing [fmt.Stringer] render their own
// description; anything else renders as "task".
func (c *Combinator) String() string {
	var b strings.Builder
	b.WriteString("Parallel(")
	for i, t := range c.tasks {
		if i > 0 {
			b.WriteString(" && ")
		}
		b.WriteString(describe(t))
	}
	b.WriteByte(')')
	return b.String()
}

func describe(t Task) string {
	if s, ok := t.(fmt.Stringer); ok {
		return s.String()
	}
	return "task"
}

// Run activates the combinator: every task is started concurrently, each
// completion races through a shared gate, and done receives the aggregate
// outcome exactly once, on whichever goroutine produces the decisive
// completion. Run returns as soon as all tasks have been launched; it
// never waits for completions.
//
// A non-nil return is a launch fault or a recovered fault from the launch
// loop: the activation could not start in full and done will not be
// invoked on its behalf. Tasks started before the fault keep running and
// their completions may still produce the single handler invocation.
//
// Run implements [Task]. A combinator can be activated at most once;
// reactivation panics, as does a nil done.
func (c *Combinator) Run(timeout time.Duration, done Handler) (err error) {
	if done == nil {
		panic("xrootd: Run requires a completion handler")
	}
	if !c.activated.CompareAndSwap(false, true) {
		panic("xrootd: combinator already activated")
	}

	pol := c.pol
	if pol == nil {
		pol = newPolicy(policyAll, len(c.tasks), 0)
	}
	c.pol = nil // ownership moves to the gate

	if c.timeout > 0 && (timeout <= 0 || c.timeout < timeout) {
		timeout = c.timeout
	}

	g := newGate(done, pol)
	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(r)
		}
		// Orchestrator share. On an aborted launch it is dropped without
		// the implicit-finalize check: the caller gets the fault through
		// the immediate status, never through the handler.
		if err != nil {
			g.drop()
		} else {
			g.release()
		}
	}()

	for _, t := range c.tasks {
		if lerr := launch(g, t, timeout); lerr != nil {
			return lerr
		}
	}
	return nil
}

// Wait activates the combinator and blocks until the aggregate outcome
// arrives. A launch fault is returned directly, without waiting.
func (c *Combinator) Wait(timeout time.Duration) error {
	ch := make(chan error, 1)
	if err := c.Run(timeout, func(err error) { ch <- err }); err != nil {
		return err
	}
	return <-ch
}

// launch starts one task against the gate. Its share is acquired before
// Run so a completion racing ahead of Run's return cannot drain the gate
// early, and given back if the task never started. A never-started task
// has no completion, so its share is dropped rather than released.
func launch(g *gate, t Task, timeout time.Duration) error {
	g.acquire()
	started := false
	defer func() {
		if !started {
			g.drop()
		}
	}()

	if err := t.Run(timeout, func(out error) {
		g.examine(out)
		g.release()
	}); err != nil {
		return err
	}
	started = true
	return nil
}
