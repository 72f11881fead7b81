// File: pool/default.go
// Author: momentics <momentics@gmail.com>

package pool

import "sync"

var (
	defaultOnce  sync.Once
	defaultBytes *Pool[byte]
)

// DefaultBytes returns a process-wide byte pool so components sharing
// transient byte buffers reuse one free list instead of fragmenting
// allocations.
func DefaultBytes() *Pool[byte] {
	defaultOnce.Do(func() {
		defaultBytes = New[byte]()
		defaultBytes.RegisterProbe("pool.default_bytes")
	})
	return defaultBytes
}
