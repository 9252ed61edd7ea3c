package generic

import "sync"

// Pool is a typed sync.Pool. Values are passed through reset, if set, before
// they are returned to the pool.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
}

func NewPool[T any](generate func() T, reset func(T)) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return generate()
			},
		},
		reset: reset,
	}
}

func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

func (p *Pool[T]) Put(value T) {
	if p.reset != nil {
		p.reset(value)
	}
	p.pool.Put(value)
}

// NewSetPool pools string sets, cleared on Put.
func NewSetPool(capacity int) *Pool[map[string]struct{}] {
	return NewPool(
		func() map[string]struct{} { return make(map[string]struct{}, capacity) },
		func(m map[string]struct{}) { clear(m) },
	)
}
