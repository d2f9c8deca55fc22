package xrootd

import "sync/atomic"

// policyKind enumerates the termination policies. The set is closed, so
// dispatch is a single switch in examine rather than an interface.
type policyKind int

const (
	policyAll policyKind = iota
	policyAny
	policySome
	policyAtLeast
)

// policy decides, one outcome at a time, whether the aggregate result of
// a parallel activation is now known. A policy value belongs to exactly
// one activation and is never reused.
//
// examine is safe under unsynchronized concurrent calls: every counter
// update is a single atomic read-modify-write, so exactly one caller
// observes each threshold crossing.
type policy struct {
	kind      policyKind
	threshold int64

	remaining atomic.Int64
	succeeded atomic.Int64
}

// newPolicy creates a policy sized against n racing tasks. threshold is
// meaningful for policySome and policyAtLeast only.
func newPolicy(kind policyKind, n, threshold int) *policy {
	p := &policy{kind: kind, threshold: int64(threshold)}
	p.remaining.Store(int64(n))
	return p
}

// examine observes one task outcome and reports whether the aggregate is
// decided and should be delivered immediately with this outcome.
//
// All and AtLeast never decide on success; their success aggregates come
// from the gate's implicit finalization once every task has resolved.
func (p *policy) examine(err error) bool {
	switch p.kind {
	case policyAny:
		left := p.remaining.Add(-1)
		if err == nil {
			return true
		}
		// Last task and still no success.
		return left == 0

	case policySome:
		left := p.remaining.Add(-1)
		if err == nil {
			return p.succeeded.Add(1) == p.threshold
		}
		// Fewer tasks pending than successes still needed.
		return left == p.threshold-1

	case policyAtLeast:
		left := p.remaining.Add(-1)
		if err != nil {
			return left == p.threshold-1
		}
		// Even with enough successes we wait for the rest.
		return false

	default: // policyAll
		return err != nil
	}
}
