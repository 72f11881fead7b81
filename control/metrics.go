// File: control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus collectors for allocator and pool traffic.

package control

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Allocator metrics
	AllocBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "safemem_alloc_bytes_total",
		Help: "Total bytes requested from the raw allocator",
	})

	FreeBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "safemem_free_bytes_total",
		Help: "Total bytes returned to the raw allocator",
	})

	LiveBuffers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "safemem_buffers_live",
		Help: "Number of buffers currently holding an allocation",
	})

	// Leak metrics
	LeakedBuffers = promauto.NewCounter(prometheus.CounterOpts{
		Name: "safemem_leaks_total",
		Help: "Total buffers finalized while still allocated",
	})

	// Pool metrics
	PoolRents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "safemem_pool_rents_total",
		Help: "Total Rent calls",
	}, []string{"outcome"}) // outcome: reuse | miss

	PoolReturns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "safemem_pool_returns_total",
		Help: "Total Return calls",
	}, []string{"outcome"}) // outcome: pooled | dropped
)
