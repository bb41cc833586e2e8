// Package resource implements a memory budget for the allocation facility.
//
// Memory tracking uses a weighted semaphore for hard limits and atomic
// counters for usage tracking. AcquireMemory is non-blocking and returns
// immediately with ErrMemoryLimitExceeded if the limit would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30, // 1GB limit
//	})
//
//	if err := rc.AcquireMemory(size); err != nil {
//	    // ErrMemoryLimitExceeded - allocation fails
//	}
//	defer rc.ReleaseMemory(size)
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
