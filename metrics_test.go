package nnbench

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	mc := &BasicMetricsCollector{}

	mc.RecordAllocation(100, nil)
	mc.RecordAllocation(50, errors.New("oom"))
	mc.RecordGeneration(100, 2*time.Millisecond)
	mc.RecordScan("generic", 10, 4*time.Millisecond)
	mc.RecordScan("swar", 10, 2*time.Millisecond)
	mc.RecordVerify(10, 3)

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.AllocationCount)
	assert.Equal(t, int64(1), stats.AllocationErrors)
	assert.Equal(t, int64(100), stats.AllocatedBytes)
	assert.Equal(t, int64(100), stats.GeneratedBytes)
	assert.Equal(t, (2 * time.Millisecond).Nanoseconds(), stats.GenerationNanos)
	assert.Equal(t, int64(2), stats.ScanCount)
	assert.Equal(t, int64(20), stats.ScannedElements)
	assert.Equal(t, (3 * time.Millisecond).Nanoseconds(), stats.ScanAvgNanos)
	assert.Equal(t, int64(1), stats.VerifyCount)
	assert.Equal(t, int64(3), stats.VerifyMismatches)
}

func TestBasicMetricsCollector_Empty(t *testing.T) {
	mc := &BasicMetricsCollector{}
	assert.Zero(t, mc.GetStats().ScanAvgNanos)

	var _ MetricsCollector = NoopMetricsCollector{}
	var _ MetricsCollector = mc
}
