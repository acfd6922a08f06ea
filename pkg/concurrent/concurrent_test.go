package concurrent

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unitykit/engine/pkg/sequence"
)

func TestConcurrent(t *testing.T) {
	t.Run("Runs All Actions", func(t *testing.T) {
		var sum atomic.Int64
		err := Concurrent(sequence.From([]int{1, 2, 3, 4}), func(v int) error {
			sum.Add(int64(v))
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, int64(10), sum.Load())
	})

	t.Run("Propagates First Error", func(t *testing.T) {
		boom := errors.New("boom")
		err := Concurrent(sequence.From([]int{1, 2, 3}), func(v int) error {
			if v == 2 {
				return boom
			}
			return nil
		})
		require.ErrorIs(t, err, boom)
	})
}

func TestConcurrentLimit(t *testing.T) {
	var inFlight, peak atomic.Int64
	err := ConcurrentLimit(sequence.From(make([]int, 32)), 4, func(int) error {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		inFlight.Add(-1)
		return nil
	})
	require.NoError(t, err)
	require.LessOrEqual(t, peak.Load(), int64(4))
}

func TestParallelMust(t *testing.T) {
	var count atomic.Int64
	ParallelMust(sequence.From([]string{"a", "b", "c"}), func(string) {
		count.Add(1)
	})
	require.Equal(t, int64(3), count.Load())
}
