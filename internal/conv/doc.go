// Package conv provides safe integer conversion and arithmetic utilities.
//
// These functions perform bounds checking to prevent integer overflow when
// sizing buffers from configuration (dictionary size times dimension) and when
// converting between Go's int and fixed-width types.
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices, bounded counters), use direct type casts instead to avoid overhead.
package conv
