package sequence

import "iter"

// Iterator is a generic, immutable iterator over values of T, backed by the
// standard iter.Seq machinery.
type Iterator[T any] struct {
	seq iter.Seq[T]
}

// From creates an Iterator over a slice.
func From[T any](data []T) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			for _, v := range data {
				if !yield(v) {
					return
				}
			}
		},
	}
}

// FromMap creates an Iterator over a map's values.
func FromMap[K comparable, T any](data map[K]T) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			for _, v := range data {
				if !yield(v) {
					return
				}
			}
		},
	}
}

// Seq exposes the underlying sequence.
func (i *Iterator[T]) Seq() iter.Seq[T] { return i.seq }

// Pull converts the iterator to pull style: next returns the next element
// and whether it was valid; stop releases the iterator.
func (i *Iterator[T]) Pull() (next func() (T, bool), stop func()) {
	return iter.Pull(i.seq)
}

// Collect exhausts the iterator into a slice.
func (i *Iterator[T]) Collect() []T {
	var out []T
	i.seq(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Filter returns an Iterator yielding only elements satisfying pred.
func (i *Iterator[T]) Filter(pred func(T) bool) *Iterator[T] {
	src := i.seq
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			src(func(v T) bool {
				if pred(v) {
					return yield(v)
				}
				return true
			})
		},
	}
}

// Map returns an Iterator yielding f applied to each element. It is a free
// function because methods cannot introduce type parameters.
func Map[T, U any](i *Iterator[T], f func(T) U) *Iterator[U] {
	src := i.seq
	return &Iterator[U]{
		seq: func(yield func(U) bool) {
			src(func(v T) bool {
				return yield(f(v))
			})
		},
	}
}

// Count exhausts the iterator and reports the number of elements.
func (i *Iterator[T]) Count() int {
	n := 0
	i.seq(func(T) bool {
		n++
		return true
	})
	return n
}
