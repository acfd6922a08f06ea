package engine

import (
	"math"
	"sync/atomic"
	"time"
)

// FrameClock publishes the per-frame delta so any component can read the
// current frame's elapsed time without a reference to the scene. Values are
// stored atomically; readers never block the frame driver.
type FrameClock struct {
	deltaBits atomic.Uint64
	totalNano atomic.Int64
	frames    atomic.Int64
}

func (c *FrameClock) publish(delta time.Duration) {
	c.deltaBits.Store(math.Float64bits(delta.Seconds()))
	c.totalNano.Add(int64(delta))
	c.frames.Add(1)
}

// DeltaTime returns the last published frame delta in seconds. Zero until
// the second scene update of a run.
func (c *FrameClock) DeltaTime() float64 {
	return math.Float64frombits(c.deltaBits.Load())
}

// TotalTime returns the accumulated updated time.
func (c *FrameClock) TotalTime() time.Duration {
	return time.Duration(c.totalNano.Load())
}

// FrameCount returns the number of update frames published so far.
func (c *FrameClock) FrameCount() int64 {
	return c.frames.Load()
}

// The process-wide clock, fed by whichever scene is updating. With multiple
// concurrent scenes the last writer wins, matching the singleton-centric
// semantics of the current-scene accessor.
var globalClock atomic.Pointer[FrameClock]

func init() { globalClock.Store(&FrameClock{}) }

// Clock returns the process-wide frame clock.
func Clock() *FrameClock { return globalClock.Load() }

// DeltaTime is shorthand for Clock().DeltaTime().
func DeltaTime() float64 { return Clock().DeltaTime() }

// ResetClock replaces the process-wide clock. Intended for test teardown.
func ResetClock() { globalClock.Store(&FrameClock{}) }
