// Package testutil provides testing utilities for nnbench.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating aligned byte vectors, building
// dictionaries and computing exact nearest neighbors as ground truth.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	vec := rng.Vector(128)        // 16-byte aligned, uniform bytes
//	rng.Perturb(vec, 4)           // flip a few bytes
//
// # Dictionaries
//
//	dict := testutil.Dictionary(t, rows...)
//	query := testutil.Query(t, row)
//
// # Exact Search (Ground Truth)
//
//	want := testutil.BruteForceSearch(rows, query, fn)
package testutil
