// File: control/audit.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Opt-in allocation audit. When enabled, the buffer layer registers every
// live allocation here and withdraws it on free; tests call Outstanding
// at teardown to catch buffers that were never released. An event FIFO
// keeps the full register/withdraw/leak history for post-mortems.
//
// The audit is a debug aid, not a correctness mechanism: the primary
// safety net stays on the finalizer path in the buffer package.

package control

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/eapache/queue"

	"github.com/momentics/safemem/api"
)

// AuditOp tags entries in the audit event log.
type AuditOp int

const (
	AuditRegister AuditOp = iota
	AuditWithdraw
	AuditLeak
)

// AuditEvent is one entry of the audit history.
type AuditEvent struct {
	Op   AuditOp
	Addr unsafe.Pointer
	Size int
}

// AuditRegistry tracks live raw allocations by address.
type AuditRegistry struct {
	enabled atomic.Bool

	mu     sync.Mutex
	live   map[uintptr]api.LeakReport // keyed by address
	events *queue.Queue
}

// NewAuditRegistry creates a disabled registry.
func NewAuditRegistry() *AuditRegistry {
	return &AuditRegistry{
		live:   make(map[uintptr]api.LeakReport),
		events: queue.New(),
	}
}

// SetEnabled switches tracking on or off. Disabling clears nothing;
// Reset does.
func (ar *AuditRegistry) SetEnabled(on bool) { ar.enabled.Store(on) }

// Enabled reports whether tracking is active.
func (ar *AuditRegistry) Enabled() bool { return ar.enabled.Load() }

// Register records a live allocation.
func (ar *AuditRegistry) Register(addr unsafe.Pointer, size int) {
	if !ar.enabled.Load() || addr == nil {
		return
	}
	ar.mu.Lock()
	ar.live[uintptr(addr)] = api.LeakReport{Addr: addr, Size: size}
	ar.events.Add(AuditEvent{Op: AuditRegister, Addr: addr, Size: size})
	ar.mu.Unlock()
}

// Withdraw removes an allocation after it was freed.
func (ar *AuditRegistry) Withdraw(addr unsafe.Pointer) {
	if !ar.enabled.Load() || addr == nil {
		return
	}
	ar.mu.Lock()
	if entry, ok := ar.live[uintptr(addr)]; ok {
		delete(ar.live, uintptr(addr))
		ar.events.Add(AuditEvent{Op: AuditWithdraw, Addr: addr, Size: entry.Size})
	}
	ar.mu.Unlock()
}

// RecordLeak marks an allocation as leaked and withdraws it.
func (ar *AuditRegistry) RecordLeak(report api.LeakReport) {
	if !ar.enabled.Load() {
		return
	}
	ar.mu.Lock()
	delete(ar.live, uintptr(report.Addr))
	ar.events.Add(AuditEvent{Op: AuditLeak, Addr: report.Addr, Size: report.Size})
	ar.mu.Unlock()
}

// Outstanding returns every allocation still registered, as leak reports.
// Call at test teardown after forcing finalization.
func (ar *AuditRegistry) Outstanding() []api.LeakReport {
	ar.mu.Lock()
	defer ar.mu.Unlock()
	out := make([]api.LeakReport, 0, len(ar.live))
	for _, entry := range ar.live {
		out = append(out, entry)
	}
	return out
}

// DrainEvents pops and returns the accumulated event history.
func (ar *AuditRegistry) DrainEvents() []AuditEvent {
	ar.mu.Lock()
	defer ar.mu.Unlock()
	out := make([]AuditEvent, 0, ar.events.Length())
	for ar.events.Length() > 0 {
		out = append(out, ar.events.Remove().(AuditEvent))
	}
	return out
}

// Reset clears live entries and history; keeps the enabled flag.
func (ar *AuditRegistry) Reset() {
	ar.mu.Lock()
	ar.live = make(map[uintptr]api.LeakReport)
	ar.events = queue.New()
	ar.mu.Unlock()
}

var (
	defaultAuditOnce sync.Once
	defaultAudit     *AuditRegistry
)

// DefaultAudit returns the process-wide audit registry used by the
// buffer layer.
func DefaultAudit() *AuditRegistry {
	defaultAuditOnce.Do(func() {
		defaultAudit = NewAuditRegistry()
		DefaultProbes().RegisterProbe("audit.live", func() any {
			return len(defaultAudit.Outstanding())
		})
	})
	return defaultAudit
}
