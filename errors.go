package nnbench

import (
	"errors"
	"fmt"

	"github.com/hupe1980/nnbench/distance"
)

var (
	// ErrInvalidDictionarySize is returned when the dictionary size is negative
	// or the dictionary would not fit in memory addressable by int.
	ErrInvalidDictionarySize = errors.New("invalid dictionary size")

	// ErrAllocation is returned when the dictionary or query cannot be allocated.
	ErrAllocation = errors.New("allocation failed")

	// ErrScanMismatch is returned when the scalar and accelerated kernels
	// produce different results.
	ErrScanMismatch = errors.New("scalar and accelerated results differ")

	// ErrInvalidConfig is returned for settings outside the core layout
	// (kernel set, allocator, memory limit, dump format).
	ErrInvalidConfig = errors.New("invalid config")
)

// ErrInvalidDimension indicates a dimension that is not a positive multiple
// of the block width, or that exceeds MaxDimension.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidDimension struct {
	Dimension  int
	BlockWidth int
	cause      error
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d (must be a positive multiple of %d, at most %d)",
		e.Dimension, e.BlockWidth, MaxDimension)
}

func (e *ErrInvalidDimension) Unwrap() error { return e.cause }

// ErrInvalidBlockWidth indicates a block width that is not a power of two of
// at least MinBlockWidth.
type ErrInvalidBlockWidth struct {
	BlockWidth int
}

func (e *ErrInvalidBlockWidth) Error() string {
	return fmt.Sprintf("invalid block width: %d (must be a power of two >= %d)", e.BlockWidth, MinBlockWidth)
}

// ErrInvalidFamily indicates an unsupported distance family.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidFamily struct {
	Family distance.Family
	cause  error
}

func (e *ErrInvalidFamily) Error() string {
	return fmt.Sprintf("invalid distance family: %s", e.Family)
}

func (e *ErrInvalidFamily) Unwrap() error { return e.cause }
