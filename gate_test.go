package xrootd

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGateFinalizeFirstCallerWins(t *testing.T) {
	const racers = 64

	var calls atomic.Int32
	g := newGate(func(error) { calls.Add(1) }, newPolicy(policyAll, racers, 0))

	var start sync.WaitGroup
	var done sync.WaitGroup
	start.Add(1)
	done.Add(racers)
	for i := 0; i < racers; i++ {
		go func() {
			defer done.Done()
			start.Wait()
			g.finalize(errors.New("racer"))
		}()
	}
	start.Done()
	done.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestGateImplicitFinalizeOnLastRelease(t *testing.T) {
	var calls atomic.Int32
	var last error
	g := newGate(func(err error) { calls.Add(1); last = err }, newPolicy(policyAll, 2, 0))

	g.acquire()
	g.acquire()

	g.release()
	g.release()
	assert.Equal(t, int32(0), calls.Load(), "orchestrator share still held")

	g.release()
	assert.Equal(t, int32(1), calls.Load())
	assert.NoError(t, last, "implicit finalize delivers the default success")
}

func TestGateExamineDelegatesToPolicy(t *testing.T) {
	var calls atomic.Int32
	var last error
	g := newGate(func(err error) { calls.Add(1); last = err }, newPolicy(policyAll, 2, 0))

	g.examine(nil)
	assert.Equal(t, int32(0), calls.Load())

	sentinel := errors.New("failure")
	g.examine(sentinel)
	assert.Equal(t, int32(1), calls.Load())
	assert.ErrorIs(t, last, sentinel)

	g.examine(errors.New("another failure"))
	assert.Equal(t, int32(1), calls.Load(), "slot already consumed")
}

func TestGateDropNeverFinalizes(t *testing.T) {
	var calls atomic.Int32
	g := newGate(func(error) { calls.Add(1) }, newPolicy(policyAll, 1, 0))

	g.drop()
	assert.Equal(t, int32(0), calls.Load())
}
