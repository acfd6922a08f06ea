package concurrent

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/unitykit/engine/pkg/sequence"
)

// Concurrent runs action for each element of the iterator in its own
// goroutine, waits for all of them and returns the first error encountered.
func Concurrent[T any](i *sequence.Iterator[T], action func(T) error) error {
	g := errgroup.Group{}
	next, stop := i.Pull()
	defer stop()

	for {
		value, valid := next()
		if !valid {
			break
		}
		g.Go(func() error {
			return action(value)
		})
	}
	return g.Wait()
}

// ConcurrentLimit is Concurrent with at most limit goroutines in flight.
func ConcurrentLimit[T any](i *sequence.Iterator[T], limit int, action func(T) error) error {
	g := errgroup.Group{}
	g.SetLimit(limit)
	next, stop := i.Pull()
	defer stop()

	for {
		value, valid := next()
		if !valid {
			break
		}
		g.Go(func() error {
			return action(value)
		})
	}
	return g.Wait()
}

// ParallelMust runs action for each element in its own goroutine and waits;
// the action cannot fail.
func ParallelMust[T any](i *sequence.Iterator[T], action func(T)) {
	wg := sync.WaitGroup{}
	next, stop := i.Pull()
	defer stop()

	for {
		value, valid := next()
		if !valid {
			break
		}
		wg.Add(1)
		go func(value T) {
			defer wg.Done()
			action(value)
		}(value)
	}
	wg.Wait()
}
