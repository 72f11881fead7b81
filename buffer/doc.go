// Package buffer
// Author: momentics <momentics@gmail.com>
//
// Growable, bounds-checked, explicitly-owned buffers of fixed-size
// elements over raw heap allocations.
//
// A Buffer owns exactly one contiguous allocation and moves through an
// explicit three-state lifecycle: zero (never allocated, inert), live
// (owns memory) and released (disposed). Every element access is bounds
// checked; every operation on a released buffer fails. Buffers are
// single-owner and not safe for concurrent mutation.
//
// Slices and Views are borrows: they carry no ownership and are valid
// only until the source buffer's next Resize or Release. That hazard is
// documented, not detected.
//
// A buffer dropped while live is caught by the GC finalizer and handed
// to the process-wide leak handler as a last resort. Finalization timing
// is best-effort; Release remains the primary path.
package buffer
