// File: buffer/leak.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Last-resort leak detection. A Buffer finalized while live produces
// exactly one api.LeakReport, consumed by the single registered handler
// or by the default policy. The handler runs on the finalizer goroutine
// with no timing guarantee relative to application code.

package buffer

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/momentics/safemem/api"
	"github.com/momentics/safemem/control"
	"github.com/momentics/safemem/internal/alloc"
	"github.com/momentics/safemem/internal/logger"
)

// LeakPolicy selects the default handling of a leak report when no
// handler is registered. Every policy frees the leaked allocation;
// leaks are never silently ignored.
type LeakPolicy int32

const (
	// LeakFatal frees the allocation, logs and terminates the process.
	LeakFatal LeakPolicy = iota
	// LeakLog frees the allocation and logs at error level.
	LeakLog
	// LeakFree frees the allocation and logs at warn level.
	LeakFree
)

var (
	leakHandler atomic.Pointer[api.LeakHandler]
	leakPolicy  atomic.Int32
)

// SetLeakHandler installs fn as the process-wide leak handler, replacing
// any previous one. Only one handler is active at a time. A nil fn
// restores the default policy.
func SetLeakHandler(fn api.LeakHandler) {
	if fn == nil {
		leakHandler.Store(nil)
		return
	}
	leakHandler.Store(&fn)
}

// SetLeakPolicy selects the default policy applied when no handler is
// registered.
func SetLeakPolicy(p LeakPolicy) { leakPolicy.Store(int32(p)) }

// ReleaseLeaked frees the allocation carried by a leak report. Custom
// handlers call this when they choose to reclaim the memory instead of
// keeping it for inspection.
func ReleaseLeaked(report api.LeakReport) {
	if report.Addr == nil {
		return
	}
	alloc.Free(report.Addr)
	control.FreeBytes.Add(float64(report.Size))
}

// finalize fires when a Buffer became unreachable. Live buffers at this
// point were never released: report the leak, then make sure the object
// can never double-free.
func finalize[T any](b *Buffer[T]) {
	if b.state != stateLive {
		return
	}
	report := api.LeakReport{Addr: b.ptr, Size: b.SizeBytes()}
	b.ptr = nil
	b.length = 0
	b.state = stateReleased
	control.LiveBuffers.Dec()
	dispatchLeak(report)
}

func dispatchLeak(report api.LeakReport) {
	control.LeakedBuffers.Inc()
	control.DefaultAudit().RecordLeak(report)
	if h := leakHandler.Load(); h != nil {
		(*h)(report)
		return
	}

	// Default policy: free defensively, then complain loudly.
	alloc.Free(report.Addr)
	control.FreeBytes.Add(float64(report.Size))
	fields := []zap.Field{
		zap.Uintptr("addr", uintptr(report.Addr)),
		zap.Int("size", report.Size),
	}
	switch LeakPolicy(leakPolicy.Load()) {
	case LeakLog:
		logger.L.Error("safemem: buffer leaked, allocation freed by finalizer", fields...)
	case LeakFree:
		logger.L.Warn("safemem: buffer leaked, allocation freed by finalizer", fields...)
	default:
		logger.L.Fatal("safemem: buffer leaked without release", fields...)
	}
}
