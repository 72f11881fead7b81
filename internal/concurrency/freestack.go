// File: internal/concurrency/freestack.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// FreeStack is a bounded multi-producer/multi-consumer Treiber stack.
// CAS on the head pointer only; the GC rules out ABA on recycled nodes.
// Head and the size counter sit on separate cache lines to keep
// producers and consumers from false-sharing.

package concurrency

import (
	"sync/atomic"

	"github.com/momentics/safemem/api"
)

const cacheLinePad = 64

type node[T any] struct {
	value T
	next  *node[T]
}

// FreeStack holds up to capacity items. Zero capacity means unbounded.
type FreeStack[T any] struct {
	head atomic.Pointer[node[T]]
	_    [cacheLinePad]byte
	size atomic.Int64
	_    [cacheLinePad]byte
	cap  int64
}

var _ api.FreeList[any] = (*FreeStack[any])(nil)

// NewFreeStack creates a stack bounded at capacity items (0 = unbounded).
func NewFreeStack[T any](capacity int) *FreeStack[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &FreeStack[T]{cap: int64(capacity)}
}

// Push adds item; returns false when the stack is at capacity.
func (s *FreeStack[T]) Push(item T) bool {
	if s.cap > 0 && s.size.Load() >= s.cap {
		return false
	}
	n := &node[T]{value: item}
	for {
		old := s.head.Load()
		n.next = old
		if s.head.CompareAndSwap(old, n) {
			s.size.Add(1)
			return true
		}
	}
}

// Pop removes and returns the most recently pushed item; ok false if empty.
func (s *FreeStack[T]) Pop() (item T, ok bool) {
	for {
		old := s.head.Load()
		if old == nil {
			var zero T
			return zero, false
		}
		if s.head.CompareAndSwap(old, old.next) {
			s.size.Add(-1)
			return old.value, true
		}
	}
}

// Len reports the approximate number of items. The value is exact only
// when no concurrent Push/Pop is in flight.
func (s *FreeStack[T]) Len() int {
	n := s.size.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}
