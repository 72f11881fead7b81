//go:build linux
// +build linux

// File: internal/alloc/alloc_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux backend: anonymous private mmap per region.
//
// Munmap needs the mapping length back, so each region carries a
// 16-byte header holding the mapped size; callers see the address just
// past the header. 16 bytes keeps the payload aligned for every Go type.

package alloc

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

const headerSize = 16

func sysAlloc(n int) (unsafe.Pointer, error) {
	data, err := unix.Mmap(-1, 0, n+headerSize,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	base := unsafe.Pointer(&data[0])
	*(*int)(base) = n + headerSize
	return unsafe.Add(base, headerSize), nil
}

func sysFree(ptr unsafe.Pointer) {
	base := unsafe.Add(ptr, -headerSize)
	mapped := *(*int)(base)
	region := unsafe.Slice((*byte)(base), mapped)
	_ = unix.Munmap(region)
}
