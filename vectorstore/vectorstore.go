// Package vectorstore owns the byte vectors a scan reads.
//
// Vectors and dictionaries are only constructed through a mem.Allocator, so
// every buffer has the requested alignment and a single owner that releases
// it. Contents are written once by a fill function during construction and
// are immutable afterwards.
package vectorstore

import (
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/nnbench/internal/mem"
)

var (
	// ErrWrongDimension is returned when a dimension is not a positive multiple of the block width.
	ErrWrongDimension = errors.New("vectorstore: wrong vector dimension")
	// ErrInvalidWidth is returned when the block width is not a positive power of two.
	ErrInvalidWidth = errors.New("vectorstore: block width must be a positive power of two")
	// ErrInvalidSize is returned for a negative element count or an overflowing byte size.
	ErrInvalidSize = errors.New("vectorstore: invalid size")
	// ErrMisaligned is returned when an allocator hands out a buffer that violates the block width.
	ErrMisaligned = errors.New("vectorstore: misaligned buffer")
)

// FillFunc writes the initial contents of a freshly allocated buffer.
type FillFunc func(b []byte) error

// FromReader returns a FillFunc that reads the whole buffer from r.
func FromReader(r io.Reader) FillFunc {
	return func(b []byte) error {
		_, err := io.ReadFull(r, b)
		return err
	}
}

func checkLayout(dim, width int) error {
	if width <= 0 || width&(width-1) != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	if dim <= 0 || dim%width != 0 {
		return fmt.Errorf("%w: %d is not a positive multiple of %d", ErrWrongDimension, dim, width)
	}
	return nil
}

// allocate obtains size bytes aligned to width and runs fill over them. On
// any failure the block is released before returning.
func allocate(a mem.Allocator, size, width int, fill FillFunc) (*mem.Block, error) {
	blk, err := a.Alloc(size, width)
	if err != nil {
		return nil, err
	}
	if size > 0 && !mem.IsAligned(blk.Bytes(), width) {
		_ = blk.Release()
		return nil, fmt.Errorf("%w: allocator %s, width %d", ErrMisaligned, a.Name(), width)
	}
	if fill != nil && size > 0 {
		if err := fill(blk.Bytes()); err != nil {
			_ = blk.Release()
			return nil, fmt.Errorf("vectorstore: fill: %w", err)
		}
	}
	return blk, nil
}
