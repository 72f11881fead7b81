// File: buffer/buffer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Buffer lifecycle state machine: create, element access, slice views,
// resize, release. Zero-length buffers are terminal: they cannot be
// resized or released, only recreated. This asymmetry is a kept
// compatibility contract, as is SliceFrom rejecting start == Len().

package buffer

import (
	"runtime"
	"unsafe"

	"github.com/momentics/safemem/api"
	"github.com/momentics/safemem/control"
	"github.com/momentics/safemem/internal/alloc"
)

type state uint8

const (
	stateZero     state = iota // never allocated, inert
	stateLive                  // owns an allocation
	stateReleased              // explicitly disposed
)

// Buffer is a growable owned buffer of length elements of type T.
type Buffer[T any] struct {
	ptr    unsafe.Pointer
	length int
	state  state
}

func sizeOf[T any]() uintptr {
	var z T
	return unsafe.Sizeof(z)
}

// New creates a buffer of length elements. length 0 yields a valid inert
// buffer holding no allocation; such a buffer can never be resized or
// released. Element contents are unspecified, not zeroed.
func New[T any](length int) (*Buffer[T], error) {
	if sizeOf[T]() == 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "buffer: zero-sized element type")
	}
	if length < 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "buffer: negative length").
			WithContext("length", length)
	}
	b := &Buffer[T]{}
	if length == 0 {
		return b, nil
	}
	if err := b.adopt(length); err != nil {
		return nil, err
	}
	return b, nil
}

// adopt allocates length elements into b and arms the leak finalizer.
func (b *Buffer[T]) adopt(length int) error {
	size := length * int(sizeOf[T]())
	ptr, err := alloc.Alloc(size)
	if err != nil {
		return err
	}
	b.ptr = ptr
	b.length = length
	b.state = stateLive
	control.AllocBytes.Add(float64(size))
	control.LiveBuffers.Inc()
	control.DefaultAudit().Register(ptr, size)
	runtime.SetFinalizer(b, finalize[T])
	return nil
}

// drop frees the current allocation and disarms the finalizer.
func (b *Buffer[T]) drop() {
	size := b.SizeBytes()
	control.DefaultAudit().Withdraw(b.ptr)
	alloc.Free(b.ptr)
	control.FreeBytes.Add(float64(size))
	control.LiveBuffers.Dec()
	b.ptr = nil
	b.length = 0
	runtime.SetFinalizer(b, nil)
}

// Len returns the element count.
func (b *Buffer[T]) Len() int { return b.length }

// SizeBytes returns the allocation size, always recomputed from the
// element count so it can never drift after a resize.
func (b *Buffer[T]) SizeBytes() int { return b.length * int(sizeOf[T]()) }

// Alive reports whether the buffer holds a live allocation.
func (b *Buffer[T]) Alive() bool { return b.ptr != nil }

func (b *Buffer[T]) elem(index int) unsafe.Pointer {
	return unsafe.Add(b.ptr, uintptr(index)*sizeOf[T]())
}

// Get returns the element at index.
func (b *Buffer[T]) Get(index int) (T, error) {
	var zero T
	if b.state == stateReleased {
		return zero, errReleased("get")
	}
	if index < 0 || index >= b.length {
		return zero, errIndex(index, b.length)
	}
	return *(*T)(b.elem(index)), nil
}

// Set stores value at index.
func (b *Buffer[T]) Set(index int, value T) error {
	if b.state == stateReleased {
		return errReleased("set")
	}
	if index < 0 || index >= b.length {
		return errIndex(index, b.length)
	}
	*(*T)(b.elem(index)) = value
	return nil
}

// Slice returns a borrowed view over the whole buffer. The slice is
// invalidated by the next Resize or Release.
func (b *Buffer[T]) Slice() ([]T, error) {
	if b.state == stateReleased {
		return nil, errReleased("slice")
	}
	return unsafe.Slice((*T)(b.ptr), b.length), nil
}

// SliceFrom returns a borrowed view from start to the end. start must be
// inside [0, Len()); start == Len() is rejected even though it would
// denote an empty tail. Kept contract.
func (b *Buffer[T]) SliceFrom(start int) ([]T, error) {
	if b.state == stateReleased {
		return nil, errReleased("slice")
	}
	if start < 0 || start >= b.length {
		return nil, errIndex(start, b.length)
	}
	return unsafe.Slice((*T)(b.elem(start)), b.length-start), nil
}

// SliceRange returns a borrowed view of count elements starting at
// start. count == 0 yields a valid empty view without touching the
// underlying pointer.
func (b *Buffer[T]) SliceRange(start, count int) ([]T, error) {
	if b.state == stateReleased {
		return nil, errReleased("slice")
	}
	if start < 0 || start >= b.length {
		return nil, errIndex(start, b.length)
	}
	if count < 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "buffer: negative count").
			WithContext("count", count)
	}
	if start+count > b.length {
		return nil, errIndex(start+count, b.length)
	}
	if count == 0 {
		return []T{}, nil
	}
	return unsafe.Slice((*T)(b.elem(start)), count), nil
}

// Resize replaces the allocation with one of newLength elements. When
// keepOriginal is set, the overlapping prefix of min(Len(), newLength)
// elements is copied over. Resize(0) frees the allocation and leaves the
// buffer in the terminal zero state. Any previously taken slice or View
// is invalidated.
func (b *Buffer[T]) Resize(newLength int, keepOriginal bool) error {
	switch b.state {
	case stateReleased:
		return errReleased("resize")
	case stateZero:
		return api.NewError(api.ErrCodeInvalidOperation, "buffer: resize of zero-length buffer")
	}
	if newLength < 0 {
		return api.NewError(api.ErrCodeInvalidArgument, "buffer: negative length").
			WithContext("length", newLength)
	}
	if newLength == 0 {
		b.drop()
		b.state = stateZero
		return nil
	}
	size := newLength * int(sizeOf[T]())
	ptr, err := alloc.Alloc(size)
	if err != nil {
		return err
	}
	if keepOriginal {
		n := b.length
		if newLength < n {
			n = newLength
		}
		alloc.CopyN[T](ptr, b.ptr, n)
	}
	control.AllocBytes.Add(float64(size))
	control.DefaultAudit().Register(ptr, size)
	control.DefaultAudit().Withdraw(b.ptr)
	alloc.Free(b.ptr)
	control.FreeBytes.Add(float64(b.SizeBytes()))
	b.ptr = ptr
	b.length = newLength
	return nil
}

// Release frees the allocation and marks the buffer dead. Exactly one
// Release per live buffer; a second call fails, as does releasing an
// inert zero-length buffer.
func (b *Buffer[T]) Release() error {
	switch b.state {
	case stateReleased:
		return errReleased("release")
	case stateZero:
		return api.NewError(api.ErrCodeInvalidOperation, "buffer: release of zero-length buffer")
	}
	b.drop()
	b.state = stateReleased
	return nil
}

// Reset allocates newLength fresh elements in place, reviving a
// discarded or released object. Pool rent path: never copies, old
// contents are gone. Application code normally uses New instead.
func (b *Buffer[T]) Reset(newLength int) error {
	if newLength < 0 {
		return api.NewError(api.ErrCodeInvalidArgument, "buffer: negative length").
			WithContext("length", newLength)
	}
	if b.state == stateLive {
		b.drop()
	}
	b.state = stateZero
	if newLength == 0 {
		return nil
	}
	return b.adopt(newLength)
}

// Discard frees the allocation without the disposal ceremony, leaving
// the object inert instead of released. Pool return path.
func (b *Buffer[T]) Discard() error {
	switch b.state {
	case stateReleased:
		return errReleased("discard")
	case stateZero:
		return nil
	}
	b.drop()
	b.state = stateZero
	return nil
}

func errReleased(op string) error {
	return api.NewError(api.ErrCodeUseAfterRelease, "buffer: "+op+" after release")
}

func errIndex(index, length int) error {
	return api.NewError(api.ErrCodeIndexOutOfRange, "buffer: index out of range").
		WithContext("index", index).
		WithContext("length", length)
}
