// Package mem provides the allocation facility for vector buffers.
//
// # Aligned Allocation
//
// AllocAligned over-allocates from the Go heap and slices at the first
// aligned offset. Allocators wrap this (Heap) or anonymous mappings (OffHeap)
// behind a Block whose Release is idempotent, so owners can pair every
// acquisition with a deferred release.
//
// # Budgets
//
// Budgeted charges allocations against a resource.Controller; exceeding the
// limit surfaces as ErrAllocationFailed.
package mem
