package vectorstore

import (
	"fmt"
	"iter"

	"github.com/hupe1980/nnbench/internal/conv"
	"github.com/hupe1980/nnbench/internal/mem"
)

// Dictionary is a contiguous array of n vectors of dim bytes each. Element i
// occupies bytes [i*dim, (i+1)*dim).
type Dictionary struct {
	block *mem.Block
	data  []byte
	dim   int
	n     int
}

// NewDictionary allocates n vectors of dim bytes, aligned to width, and fills
// them with a single call to fill. An empty dictionary (n == 0) is valid.
func NewDictionary(a mem.Allocator, n, dim, width int, fill FillFunc) (*Dictionary, error) {
	if err := checkLayout(dim, width); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: %d elements", ErrInvalidSize, n)
	}
	size, err := conv.MulInt(n, dim)
	if err != nil {
		return nil, fmt.Errorf("%w: %d x %d bytes: %w", ErrInvalidSize, n, dim, err)
	}

	blk, err := allocate(a, size, width, fill)
	if err != nil {
		return nil, err
	}
	data := blk.Bytes()
	return &Dictionary{
		block: blk,
		data:  data[:size:size],
		dim:   dim,
		n:     n,
	}, nil
}

// At returns element i. The slice has capacity dim, so appending to it cannot
// overwrite the next element.
func (d *Dictionary) At(i int) []byte {
	off := i * d.dim
	return d.data[off : off+d.dim : off+d.dim]
}

// All iterates over the elements in index order.
func (d *Dictionary) All() iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		for i := 0; i < d.n; i++ {
			if !yield(i, d.At(i)) {
				return
			}
		}
	}
}

// Len returns the number of elements.
func (d *Dictionary) Len() int {
	return d.n
}

// Dim returns the element length in bytes.
func (d *Dictionary) Dim() int {
	return d.dim
}

// Bytes returns the flat element storage. Callers must not modify it.
func (d *Dictionary) Bytes() []byte {
	return d.data
}

// Size returns the storage size in bytes.
func (d *Dictionary) Size() int {
	return len(d.data)
}

// Close releases the dictionary memory. It is idempotent.
func (d *Dictionary) Close() error {
	if d == nil {
		return nil
	}
	d.data = nil
	d.n = 0
	return d.block.Release()
}
