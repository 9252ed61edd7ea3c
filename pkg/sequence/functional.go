package sequence

import (
	"cmp"
	"iter"
	"sort"
)

// Iterator is a generic, lazy, chainable iterator for any type T.
type Iterator[T any] struct {
	seq iter.Seq[T]
}

// From creates a new Iterator from a slice of T.
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

// Keys iterates the keys of a map in ascending order.
func Keys[K cmp.Ordered, V any](data map[K]V) *Iterator[K] {
	keys := make([]K, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a] < keys[b] })
	return From(keys)
}

// Seq returns the underlying sequence function for range-over-func loops.
func (i *Iterator[T]) Seq() iter.Seq[T] {
	return i.seq
}

// Collect exhausts the iterator and returns a slice of all elements.
func (i *Iterator[T]) Collect() []T {
	out := make([]T, 0)
	i.seq(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Sort returns a new Iterator with elements sorted according to less.
// The sort is stable.
func (i *Iterator[T]) Sort(less func(a, b T) bool) *Iterator[T] {
	data := i.Collect()
	sort.SliceStable(data, func(a, b int) bool {
		return less(data[a], data[b])
	})
	return From(data)
}

// Filter returns a new Iterator containing only elements that satisfy the predicate.
func (i *Iterator[T]) Filter(pred func(T) bool) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			i.seq(func(v T) bool {
				if pred(v) {
					return yield(v)
				}
				return true
			})
		},
	}
}

// Find returns the first element matching the predicate, or false if not found.
func (i *Iterator[T]) Find(pred func(T) bool) (T, bool) {
	var found T
	ok := false
	i.seq(func(v T) bool {
		if pred(v) {
			found = v
			ok = true
			return false
		}
		return true
	})
	return found, ok
}

// Any returns true if any element matches the predicate.
func (i *Iterator[T]) Any(pred func(T) bool) bool {
	_, ok := i.Find(pred)
	return ok
}

// Map transforms every element from T to S, preserving order.
func Map[T any, S any](it *Iterator[T], fn func(T) S) *Iterator[S] {
	return &Iterator[S]{
		seq: func(yield func(S) bool) {
			it.seq(func(v T) bool {
				return yield(fn(v))
			})
		},
	}
}
