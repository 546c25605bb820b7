// Package pool provides a generic object pool which frees the objects it
// created once they are garbage collected.
package pool

import (
	"runtime"
	"sync"

	"go.uber.org/atomic"
)

// ReuseMemory disables the reuse of objects if set to false, which helps to
// find use-after-release bugs.
var ReuseMemory = true

type Pool[T any] struct {
	sync.Pool
	ResetFunc func(*T)

	AllocatedCount atomic.Uint64
	ReusedCount    atomic.Uint64
	PutCount       atomic.Uint64
}

func NewPool[T any](
	allocFunc func() *T,
	resetFunc func(*T),
	freeFunc func(*T),
) *Pool[T] {
	p := &Pool[T]{
		ResetFunc: resetFunc,
	}
	p.Pool.New = func() any {
		p.AllocatedCount.Inc()
		v := allocFunc()
		runtime.SetFinalizer(v, freeFunc)
		return v
	}
	return p
}

func (p *Pool[T]) Get() *T {
	allocated := p.AllocatedCount.Load()
	v := p.Pool.Get().(*T)
	if p.AllocatedCount.Load() == allocated {
		p.ReusedCount.Inc()
	}
	return v
}

func (p *Pool[T]) Put(items ...*T) {
	for _, item := range items {
		if item == nil {
			continue
		}
		p.PutCount.Inc()
		p.ResetFunc(item)
		if !ReuseMemory {
			continue
		}
		p.Pool.Put(item)
	}
}
