// Package alloc
// Author: momentics <momentics@gmail.com>
//
// Raw heap primitives for the safemem buffer layer: allocate, free and
// bulk copy over bare pointers. No safety logic, no bookkeeping beyond
// what the platform needs to give memory back.
//
// On Linux, regions come from anonymous mmap so the Go collector never
// moves or scans them. Other platforms fall back to the Go heap with a
// pin registry keeping handed-out pointers reachable.
package alloc
