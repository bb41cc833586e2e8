// Package simd provides the byte-vector distance kernels.
//
// # Implementations
//
//   - generic: scalar reference kernels with a software (divide-and-conquer)
//     popcount. Every other implementation must match these bit for bit.
//   - swar: portable pure Go kernels packing four 16-bit lanes into a uint64;
//     Hamming uses math/bits, which compiles to POPCNT on x86-64 and to
//     VCNT+VUADDLV on ARM64.
//   - sse2: x86-64 assembly (PSADBW, PMADDWD, POPCNT).
//
// Runtime CPU feature detection selects the best implementation. Set
// NNBENCH_SIMD=generic|swar|sse2 to force one, or build with -tags noasm to
// drop the assembly kernels.
//
// # Operations
//
//   - Distance: L1, L2, Hamming32, Hamming64 over 16-byte aligned vectors
//     whose length is a multiple of 16
//   - Popcount32, Popcount64: software population count
package simd
