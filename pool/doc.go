// Package pool
// Author: momentics <momentics@gmail.com>
//
// Recycling of released buffer objects. A Pool caches buffer *objects*
// whose backing allocation has already been freed; Rent always performs
// a fresh allocation into a recycled object, never a resize-with-copy,
// so the pool hands back no stale memory. The free list is a lock-free
// MPMC stack: Rent and Return are safe from any number of goroutines.
//
// Pools are plain constructed values, one per element type. See
// DefaultBytes for the process-wide byte pool.
package pool
