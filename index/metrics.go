package index

import (
	"sync/atomic"
	"time"
)

// MetricsCollector collects operational metrics for an Index. Implement
// this to integrate with a monitoring system; NoopMetricsCollector is the
// default.
type MetricsCollector interface {
	// RecordInsert is called after every Insert.
	RecordInsert(duration time.Duration, err error)
	// RecordSearch is called after every KNNSearch.
	RecordSearch(k int, duration time.Duration, err error)
	// RecordSplit is called whenever kv.Adapter bisects an oversize batch.
	RecordSplit()
}

// NoopMetricsCollector discards all metrics.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration, error)      {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSplit()                           {}

// BasicMetricsCollector is a simple in-memory MetricsCollector, useful for
// debugging without an external dependency.
type BasicMetricsCollector struct {
	InsertCount      atomic.Int64
	InsertErrors     atomic.Int64
	InsertTotalNanos atomic.Int64
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchTotalNanos atomic.Int64
	SplitCount       atomic.Int64
}

func (b *BasicMetricsCollector) RecordInsert(duration time.Duration, err error) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordSearch(k int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordSplit() {
	b.SplitCount.Add(1)
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount    int64
	InsertErrors   int64
	InsertAvgNanos int64
	SearchCount    int64
	SearchErrors   int64
	SearchAvgNanos int64
	SplitCount     int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:    b.InsertCount.Load(),
		InsertErrors:   b.InsertErrors.Load(),
		InsertAvgNanos: b.avg(b.InsertTotalNanos.Load(), b.InsertCount.Load()),
		SearchCount:    b.SearchCount.Load(),
		SearchErrors:   b.SearchErrors.Load(),
		SearchAvgNanos: b.avg(b.SearchTotalNanos.Load(), b.SearchCount.Load()),
		SplitCount:     b.SplitCount.Load(),
	}
}

func (b *BasicMetricsCollector) avg(totalNanos, count int64) int64 {
	if count == 0 {
		return 0
	}
	return totalNanos / count
}
