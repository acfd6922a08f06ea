package loop

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/unitykit/engine/internal/core/engine"
	"github.com/unitykit/engine/internal/core/observability/log"
)

// Driver is the clock collaborator: it ticks a scene's Update and
// FixedUpdate through the dispatcher with monotonically non-decreasing
// timestamps. The scene derives delta time itself; the driver only supplies
// the cadence.
type Driver struct {
	scene      *engine.Scene
	dispatcher *Dispatcher
	frameEvery time.Duration
	fixedEvery time.Duration
	logger     *log.Logger
}

func NewDriver(scene *engine.Scene, d *Dispatcher, frameEvery, fixedEvery time.Duration, logger *log.Logger) *Driver {
	if frameEvery <= 0 {
		frameEvery = time.Second / 60
	}
	if fixedEvery <= 0 {
		fixedEvery = time.Second / 50
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Driver{
		scene:      scene,
		dispatcher: d,
		frameEvery: frameEvery,
		fixedEvery: fixedEvery,
		logger:     logger,
	}
}

// Run ticks until the context is cancelled.
func (d *Driver) Run(ctx context.Context) {
	frame := time.NewTicker(d.frameEvery)
	fixed := time.NewTicker(d.fixedEvery)
	defer frame.Stop()
	defer fixed.Stop()

	d.logger.Info("driver running",
		zap.Duration("frame", d.frameEvery),
		zap.Duration("fixed", d.fixedEvery))

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-frame.C:
			// Each pass coalesces on its own latch.
			d.dispatcher.Submit(CallbackPreUpdate, func() { d.scene.PreUpdate() })
			d.dispatcher.Submit(CallbackUpdate, func() { d.scene.Update(now) })
		case now := <-fixed.C:
			d.dispatcher.Submit(CallbackFixedUpdate, func() { d.scene.FixedUpdate(now) })
		}
	}
}
