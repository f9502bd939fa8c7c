package sbitmap

import "sync/atomic"

// MetricsCollector defines an interface for collecting operational
// metrics. Implement this interface to integrate with monitoring
// systems like Prometheus.
//
// Collectors are invoked from inside Get and Put on the caller's
// goroutine; implementations must be safe for concurrent use and
// should be cheap, or they become the allocator's bottleneck.
type MetricsCollector interface {
	// RecordGet is called after each Get or GetBatch. hit is false
	// when the pool was exhausted.
	RecordGet(hit bool)

	// RecordPut is called after each successful Put or PutBatch.
	RecordPut()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGet(bool) {}
func (NoopMetricsCollector) RecordPut()     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	GetCount  atomic.Int64
	GetMisses atomic.Int64
	PutCount  atomic.Int64
}

// RecordGet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGet(hit bool) {
	b.GetCount.Add(1)
	if !hit {
		b.GetMisses.Add(1)
	}
}

// RecordPut implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPut() {
	b.PutCount.Add(1)
}

// Stats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) Stats() BasicMetricsStats {
	return BasicMetricsStats{
		GetCount:  b.GetCount.Load(),
		GetMisses: b.GetMisses.Load(),
		PutCount:  b.PutCount.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	GetCount  int64
	GetMisses int64
	PutCount  int64
}
