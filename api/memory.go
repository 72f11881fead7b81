// File: api/memory.go
// Author: momentics <momentics@gmail.com>
//
// Raw allocation and leak-reporting contracts.
//
// Allocations are bare pointers with no bookkeeping; all safety logic lives
// in the buffer layer. Leak reports travel on a separate asynchronous
// channel (GC finalization), never through a caller's call stack.

package api

import "unsafe"

// Allocator abstracts the platform heap for a count of bytes.
// Implementations perform no zeroing and no ownership tracking.
type Allocator interface {
	// Alloc requests n bytes and returns an opaque pointer.
	// Contents are unspecified. n must be > 0.
	Alloc(n int) (unsafe.Pointer, error)

	// Free releases a pointer previously returned by Alloc.
	// Free(nil) is a no-op.
	Free(ptr unsafe.Pointer)
}

// LeakReport describes one allocation that was dropped while still owned.
// Produced exactly once per leaked buffer.
type LeakReport struct {
	// Addr is the leaked allocation. The handler may Free it.
	Addr unsafe.Pointer

	// Size is the allocation length in bytes.
	Size int
}

// LeakHandler consumes a leak report. It runs on the finalizer goroutine
// with no guarantee about timing or ordering relative to application code.
type LeakHandler func(LeakReport)

// FreeList is a concurrent multi-producer/multi-consumer container of
// recycled objects. Push returns false when the list is at capacity.
type FreeList[T any] interface {
	Push(item T) bool
	Pop() (T, bool)
	Len() int
}

// PoolStats aggregates rent/return accounting for a buffer pool.
type PoolStats struct {
	Rents   int64 // total Rent calls
	Returns int64 // total Return calls
	Reuses  int64 // rents served from the free list
	Misses  int64 // rents that constructed a fresh object
	Drops   int64 // returns dropped because the free list was full
}
