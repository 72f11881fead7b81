// File: internal/alloc/copy.go
// Author: momentics <momentics@gmail.com>
//
// Bulk element copy between raw regions.

package alloc

import "unsafe"

// CopyN moves count contiguous elements of type T from src to dst.
// The regions must not overlap. count <= 0 copies nothing.
func CopyN[T any](dst, src unsafe.Pointer, count int) {
	if count <= 0 || dst == nil || src == nil {
		return
	}
	copy(unsafe.Slice((*T)(dst), count), unsafe.Slice((*T)(src), count))
}
