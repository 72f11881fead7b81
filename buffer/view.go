// File: buffer/view.go
// Author: momentics <momentics@gmail.com>
//
// Unchecked pointer view. This is the explicit escape hatch for interop
// boundaries that need a bare pointer+length pair: no bounds tests, no
// liveness tracking. Misuse is undefined behavior, not a recoverable
// error. A View never extends the lifetime of its source buffer and is
// invalidated by the source's next Resize or Release.

package buffer

import (
	"unsafe"

	"github.com/momentics/safemem/api"
)

// View is a non-owning raw window over a buffer's allocation.
type View[T any] struct {
	ptr    unsafe.Pointer
	length int
}

// NewView captures the pointer and length of a live buffer.
func NewView[T any](b *Buffer[T]) (View[T], error) {
	switch b.state {
	case stateReleased:
		return View[T]{}, errReleased("view")
	case stateZero:
		return View[T]{}, api.NewError(api.ErrCodeInvalidOperation, "buffer: view of zero-length buffer")
	}
	return View[T]{ptr: b.ptr, length: b.length}, nil
}

// Raw returns the bare pointer.
func (v View[T]) Raw() unsafe.Pointer { return v.ptr }

// Len returns the element count captured with the pointer.
func (v View[T]) Len() int { return v.length }

// At reads the element at index. No bounds check.
func (v View[T]) At(index int) T {
	return *(*T)(unsafe.Add(v.ptr, uintptr(index)*sizeOf[T]()))
}

// Set writes the element at index. No bounds check.
func (v View[T]) Set(index int, value T) {
	*(*T)(unsafe.Add(v.ptr, uintptr(index)*sizeOf[T]())) = value
}
