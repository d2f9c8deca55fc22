package xrootd

import "sync/atomic"

// gate arbitrates which of the racing task completions gets to invoke the
// user handler, and guarantees it is invoked exactly once per activation.
//
// The handler lives in an atomically exchanged slot: the first finalize
// takes it, every later finalize observes nil and is a no-op. Shared
// ownership is an explicit participant counter (one share per started
// task plus one for the orchestrator) and the last release synthesizes
// an implicit success finalize. That fallback is what completes All and
// AtLeast runs in which no completion ever made an explicit decision.
type gate struct {
	handler atomic.Pointer[Handler]
	pol     *policy
	holders atomic.Int64
}

func newGate(done Handler, pol *policy) *gate {
	g := &gate{pol: pol}
	g.handler.Store(&done)
	g.holders.Store(1) // orchestrator share
	return g
}

// examine feeds one task outcome through the policy and finalizes with it
// if the aggregate is now decided.
func (g *gate) examine(err error) {
	if g.pol.examine(err) {
		g.finalize(err)
	}
}

// finalize invokes the handler with the given outcome if nobody has taken
// the handler slot yet. First caller wins; all others are no-ops.
func (g *gate) finalize(err error) {
	if h := g.handler.Swap(nil); h != nil {
		(*h)(err)
	}
}

// acquire adds one participant share.
func (g *gate) acquire() {
	g.holders.Add(1)
}

// release drops one participant share. The release that reaches zero,
// meaning every started task resolved and the orchestrator is gone,
// finalizes with success if the handler is still unclaimed.
func (g *gate) release() {
	if g.holders.Add(-1) == 0 {
		g.finalize(nil)
	}
}

// drop gives up a share without the implicit-finalize check. Used on the
// aborted-launch path: the abort itself must never invoke the handler,
// though completions of already-started tasks may still claim it.
func (g *gate) drop() {
	g.holders.Add(-1)
}
