// Package loop serializes all game-logic mutation onto one designated
// goroutine and drives scene updates at a configurable cadence.
package loop

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/unitykit/engine/internal/core/observability/log"
)

// Callback identifies a redispatched callback flavor. Each flavor owns a
// one-shot latch in the Dispatcher.
type Callback uint8

const (
	CallbackPreUpdate Callback = iota
	CallbackUpdate
	CallbackFixedUpdate
	CallbackContact
	callbackCount
)

func (c Callback) String() string {
	switch c {
	case CallbackPreUpdate:
		return "preUpdate"
	case CallbackUpdate:
		return "update"
	case CallbackFixedUpdate:
		return "fixedUpdate"
	case CallbackContact:
		return "contact"
	default:
		return "unknown"
	}
}

type task struct {
	kind Callback
	fn   func()
}

// Dispatcher funnels engine callbacks onto the goroutine running Run. Per
// callback kind it keeps a non-reentrant one-shot latch: when the previous
// redispatched callback of a kind has not finished by the time the next one
// arrives, the new one is dropped, not queued. Slow frames skip stale work
// instead of accumulating a backlog.
type Dispatcher struct {
	tasks   chan task
	busy    [callbackCount]atomic.Bool
	dropped [callbackCount]atomic.Uint64
	logger  *log.Logger
}

func NewDispatcher(logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Nop()
	}
	return &Dispatcher{
		// One slot per kind is all the latch discipline ever needs.
		tasks:  make(chan task, callbackCount),
		logger: logger,
	}
}

// Submit schedules fn on the main-loop goroutine. Returns false when the
// previous callback of this kind is still in flight and fn was dropped.
func (d *Dispatcher) Submit(kind Callback, fn func()) bool {
	if !d.busy[kind].CompareAndSwap(false, true) {
		d.dropped[kind].Add(1)
		d.logger.Debug("callback dropped", zap.String("kind", kind.String()))
		return false
	}
	d.tasks <- task{kind: kind, fn: fn}
	return true
}

// Run executes submitted callbacks until the context is cancelled. It is
// the designated main-loop goroutine; exactly one Run per Dispatcher.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-d.tasks:
			t.fn()
			d.busy[t.kind].Store(false)
		}
	}
}

// Dropped reports how many callbacks of the kind were coalesced away.
func (d *Dispatcher) Dropped(kind Callback) uint64 {
	return d.dropped[kind].Load()
}
