// Package mmap provides anonymous off-heap memory mappings.
//
// Mappings live outside the Go heap, are page-aligned and are released
// explicitly with Close. They back the off-heap allocator used for large
// dictionaries.
//
// # Usage
//
//	m, err := mmap.MapAnon(size)
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
//	// Provide kernel hints for access patterns
//	m.Advise(mmap.AccessSequential)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) for access hints
//   - Windows: VirtualAlloc/VirtualFree (advice is a no-op)
//
// # Thread Safety
//
// Close is idempotent and protected by atomic operations. Callers must
// ensure nothing accesses Bytes() after Close() returns.
package mmap
