// Package nnbench benchmarks brute-force nearest neighbor search over byte
// vectors.
//
// A run generates a dictionary of N random vectors of D bytes and one query
// vector, then finds the dictionary element closest to the query twice: once
// with the portable scalar kernels and once with the fastest kernels the CPU
// supports. Both scans must return the same (index, distance) pair; the
// interesting output is how long each took.
//
// # Quick Start
//
//	cfg := nnbench.DefaultConfig()
//	cfg.DictionarySize = 1 << 20
//	cfg.Family = distance.Hamming64
//
//	report, err := nnbench.Run(ctx, cfg, nnbench.WithLogger(nnbench.NewTextLogger(slog.LevelInfo)))
//	if err != nil {
//	    return err
//	}
//	report.WriteText(os.Stdout)
//
// # Distance Families
//
//   - L1: sum of absolute byte differences
//   - L2: sum of squared byte differences
//   - Hamming32, Hamming64: differing bits of the 8*D bit strings
//
// # Memory
//
// Vectors are allocated through an allocator ("heap" or off-heap "mmap"),
// aligned to Config.BlockWidth, and released when the run ends. A memory
// limit turns oversized runs into an ErrAllocation instead of an
// out-of-memory crash.
//
// # Verification
//
// Verify compares every per-element distance of every accelerated kernel set
// against the scalar kernels, for all four families, and reports the indices
// that differ.
package nnbench
