package sequence

import (
	"cmp"
	"container/heap"
)

type heapItems[T any] struct {
	items []T
	less  func(a, b T) bool
}

func (h *heapItems[T]) Len() int {
	return len(h.items)
}

func (h *heapItems[T]) Less(i, j int) bool {
	return h.less(h.items[i], h.items[j])
}

func (h *heapItems[T]) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

func (h *heapItems[T]) Push(x any) {
	h.items = append(h.items, x.(T))
}

func (h *heapItems[T]) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	var zero T
	old[n-1] = zero
	h.items = old[:n-1]
	return item
}

// PriorityQueue pops the element for which less reports it sorts first.
type PriorityQueue[T any] struct {
	h heapItems[T]
}

// NewPriorityQueue creates a queue ordered by less.
func NewPriorityQueue[T any](less func(a, b T) bool) *PriorityQueue[T] {
	pq := &PriorityQueue[T]{h: heapItems[T]{less: less}}
	heap.Init(&pq.h)
	return pq
}

// NewMinQueue orders ordered values ascending.
func NewMinQueue[T cmp.Ordered]() *PriorityQueue[T] {
	return NewPriorityQueue(func(a, b T) bool { return a < b })
}

func (pq *PriorityQueue[T]) Enqueue(values ...T) {
	for _, v := range values {
		heap.Push(&pq.h, v)
	}
}

func (pq *PriorityQueue[T]) Dequeue() (T, bool) {
	if pq.h.Len() == 0 {
		var zero T
		return zero, false
	}
	return heap.Pop(&pq.h).(T), true
}

func (pq *PriorityQueue[T]) Len() int {
	return pq.h.Len()
}

func (pq *PriorityQueue[T]) IsEmpty() bool {
	return pq.h.Len() == 0
}
