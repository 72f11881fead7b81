//go:build !linux
// +build !linux

// File: internal/alloc/alloc_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fallback backend for platforms without the mmap path: regions live on
// the Go heap, pinned in a registry so the collector keeps them while a
// raw pointer is outstanding. Out-of-memory aborts inside the runtime
// itself, so exhaustion is never silent on this path either.

package alloc

import (
	"sync"
	"unsafe"
)

var pinned = struct {
	mu sync.Mutex
	m  map[uintptr][]byte
}{m: make(map[uintptr][]byte)}

func sysAlloc(n int) (unsafe.Pointer, error) {
	region := make([]byte, n)
	ptr := unsafe.Pointer(&region[0])
	pinned.mu.Lock()
	pinned.m[uintptr(ptr)] = region
	pinned.mu.Unlock()
	return ptr, nil
}

func sysFree(ptr unsafe.Pointer) {
	pinned.mu.Lock()
	delete(pinned.m, uintptr(ptr))
	pinned.mu.Unlock()
}
