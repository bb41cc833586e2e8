package nnbench

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting benchmark metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordAllocation is called after each vector buffer allocation.
	RecordAllocation(bytes int64, err error)

	// RecordGeneration is called once the random data has been written.
	RecordGeneration(bytes int64, duration time.Duration)

	// RecordScan is called after each linear scan. kernels names the kernel
	// set, elements is the dictionary size.
	RecordScan(kernels string, elements int, duration time.Duration)

	// RecordVerify is called after each comparison of the verification pass.
	RecordVerify(elements int, mismatches uint64)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAllocation(int64, error)         {}
func (NoopMetricsCollector) RecordGeneration(int64, time.Duration) {}
func (NoopMetricsCollector) RecordScan(string, int, time.Duration) {}
func (NoopMetricsCollector) RecordVerify(int, uint64)              {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AllocationCount  atomic.Int64
	AllocationErrors atomic.Int64
	AllocatedBytes   atomic.Int64
	GeneratedBytes   atomic.Int64
	GenerationNanos  atomic.Int64
	ScanCount        atomic.Int64
	ScannedElements  atomic.Int64
	ScanTotalNanos   atomic.Int64
	VerifyCount      atomic.Int64
	VerifyMismatches atomic.Int64
}

// RecordAllocation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAllocation(bytes int64, err error) {
	b.AllocationCount.Add(1)
	if err != nil {
		b.AllocationErrors.Add(1)
		return
	}
	b.AllocatedBytes.Add(bytes)
}

// RecordGeneration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGeneration(bytes int64, duration time.Duration) {
	b.GeneratedBytes.Add(bytes)
	b.GenerationNanos.Add(duration.Nanoseconds())
}

// RecordScan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScan(_ string, elements int, duration time.Duration) {
	b.ScanCount.Add(1)
	b.ScannedElements.Add(int64(elements))
	b.ScanTotalNanos.Add(duration.Nanoseconds())
}

// RecordVerify implements MetricsCollector.
func (b *BasicMetricsCollector) RecordVerify(_ int, mismatches uint64) {
	b.VerifyCount.Add(1)
	b.VerifyMismatches.Add(int64(mismatches))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AllocationCount:  b.AllocationCount.Load(),
		AllocationErrors: b.AllocationErrors.Load(),
		AllocatedBytes:   b.AllocatedBytes.Load(),
		GeneratedBytes:   b.GeneratedBytes.Load(),
		GenerationNanos:  b.GenerationNanos.Load(),
		ScanCount:        b.ScanCount.Load(),
		ScannedElements:  b.ScannedElements.Load(),
		ScanAvgNanos:     b.getAvgScanNanos(),
		VerifyCount:      b.VerifyCount.Load(),
		VerifyMismatches: b.VerifyMismatches.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgScanNanos() int64 {
	count := b.ScanCount.Load()
	if count == 0 {
		return 0
	}
	return b.ScanTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AllocationCount  int64
	AllocationErrors int64
	AllocatedBytes   int64
	GeneratedBytes   int64
	GenerationNanos  int64
	ScanCount        int64
	ScannedElements  int64
	ScanAvgNanos     int64
	VerifyCount      int64
	VerifyMismatches int64
}
