// File: pool/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool recycles buffer objects, not memory: Return discards the
// allocation and keeps the inert object; Rent revives one with a fresh
// allocation. Overflowing the bounded free list drops objects to the GC.

package pool

import (
	"sync/atomic"

	"github.com/momentics/safemem/api"
	"github.com/momentics/safemem/buffer"
	"github.com/momentics/safemem/control"
	"github.com/momentics/safemem/internal/concurrency"
)

const defaultPoolCapacity = 4096

// Pool caches released Buffer[T] objects for reuse.
type Pool[T any] struct {
	free *concurrency.FreeStack[*buffer.Buffer[T]]

	rents   atomic.Int64
	returns atomic.Int64
	reuses  atomic.Int64
	misses  atomic.Int64
	drops   atomic.Int64
}

type options struct {
	capacity int
}

// Option configures a Pool.
type Option func(*options)

// WithCapacity bounds the free list at n idle objects (0 = unbounded).
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// New constructs an empty pool for element type T.
func New[T any](opts ...Option) *Pool[T] {
	o := options{capacity: defaultPoolCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	return &Pool[T]{
		free: concurrency.NewFreeStack[*buffer.Buffer[T]](o.capacity),
	}
}

// Rent returns a buffer of length elements: a recycled object with a
// fresh allocation when one is idle, a newly constructed buffer
// otherwise. The content is unspecified in both cases.
func (p *Pool[T]) Rent(length int) (*buffer.Buffer[T], error) {
	p.rents.Add(1)
	if b, ok := p.free.Pop(); ok {
		if err := b.Reset(length); err != nil {
			return nil, err
		}
		p.reuses.Add(1)
		control.PoolRents.WithLabelValues("reuse").Inc()
		return b, nil
	}
	b, err := buffer.New[T](length)
	if err != nil {
		return nil, err
	}
	p.misses.Add(1)
	control.PoolRents.WithLabelValues("miss").Inc()
	return b, nil
}

// Return discards b's allocation and parks the object for reuse.
// Returning a released buffer is misuse and reports UseAfterRelease;
// the object is not pooled in that case.
func (p *Pool[T]) Return(b *buffer.Buffer[T]) error {
	if b == nil {
		return api.NewError(api.ErrCodeInvalidArgument, "pool: return of nil buffer")
	}
	if err := b.Discard(); err != nil {
		return err
	}
	p.returns.Add(1)
	if p.free.Push(b) {
		control.PoolReturns.WithLabelValues("pooled").Inc()
	} else {
		p.drops.Add(1)
		control.PoolReturns.WithLabelValues("dropped").Inc()
	}
	return nil
}

// Idle reports the approximate number of parked objects.
func (p *Pool[T]) Idle() int { return p.free.Len() }

// Stats returns a snapshot of the pool counters.
func (p *Pool[T]) Stats() api.PoolStats {
	return api.PoolStats{
		Rents:   p.rents.Load(),
		Returns: p.returns.Load(),
		Reuses:  p.reuses.Load(),
		Misses:  p.misses.Load(),
		Drops:   p.drops.Load(),
	}
}

// RegisterProbe exposes the pool counters under name in the process-wide
// debug probe registry.
func (p *Pool[T]) RegisterProbe(name string) {
	control.DefaultProbes().RegisterProbe(name, func() any { return p.Stats() })
}
