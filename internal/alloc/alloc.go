// File: internal/alloc/alloc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Portable surface of the raw allocator. Platform backends implement
// sysAlloc/sysFree in alloc_linux.go and alloc_stub.go.

package alloc

import (
	"unsafe"

	"github.com/momentics/safemem/api"
)

// Alloc requests n bytes from the platform heap. The returned memory is
// not guaranteed to be zeroed. Alloc never returns a nil pointer with a
// nil error.
func Alloc(n int) (unsafe.Pointer, error) {
	if n <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "alloc: non-positive size").
			WithContext("size", n)
	}
	ptr, err := sysAlloc(n)
	if err != nil {
		return nil, api.NewError(api.ErrCodeResourceExhausted, "alloc: out of memory").
			WithContext("size", n)
	}
	return ptr, nil
}

// Free releases a pointer previously returned by Alloc.
// Free(nil) is a defensive no-op; freeing any other pointer not owned by
// this allocator is a programming error with undefined behavior.
func Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	sysFree(ptr)
}

// AllocN requests room for count elements of type T.
func AllocN[T any](count int) (unsafe.Pointer, error) {
	var z T
	if count <= 0 || unsafe.Sizeof(z) == 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "alloc: empty element request").
			WithContext("count", count)
	}
	return Alloc(count * int(unsafe.Sizeof(z)))
}

// sysAllocator adapts the package-level functions to api.Allocator for
// callers that take the allocator as a dependency.
type sysAllocator struct{}

func (sysAllocator) Alloc(n int) (unsafe.Pointer, error) { return Alloc(n) }
func (sysAllocator) Free(ptr unsafe.Pointer)             { Free(ptr) }

var _ api.Allocator = sysAllocator{}

// System returns the process-wide raw allocator.
func System() api.Allocator { return sysAllocator{} }
