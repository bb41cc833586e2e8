package vectorstore

import (
	"github.com/hupe1980/nnbench/internal/mem"
)

// Vector is an owned, aligned byte vector.
type Vector struct {
	block *mem.Block
	data  []byte
}

// NewVector allocates a dim-byte vector aligned to width and fills it.
// A nil fill leaves the memory as the allocator returned it.
func NewVector(a mem.Allocator, dim, width int, fill FillFunc) (*Vector, error) {
	if err := checkLayout(dim, width); err != nil {
		return nil, err
	}
	blk, err := allocate(a, dim, width, fill)
	if err != nil {
		return nil, err
	}
	data := blk.Bytes()
	return &Vector{block: blk, data: data[:dim:dim]}, nil
}

// Bytes returns the vector contents. Callers must not modify them.
func (v *Vector) Bytes() []byte {
	return v.data
}

// Dim returns the vector length in bytes.
func (v *Vector) Dim() int {
	return len(v.data)
}

// Close releases the vector memory. It is idempotent.
func (v *Vector) Close() error {
	if v == nil {
		return nil
	}
	v.data = nil
	return v.block.Release()
}
