package mem

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hupe1980/nnbench/internal/mmap"
	"github.com/hupe1980/nnbench/internal/resource"
)

var (
	// ErrAllocationFailed is returned when memory cannot be obtained.
	ErrAllocationFailed = errors.New("mem: allocation failed")
	// ErrInvalidAlignment is returned for alignments that are not a positive power of two.
	ErrInvalidAlignment = errors.New("mem: alignment must be a positive power of two")
	// ErrInvalidSize is returned for negative sizes.
	ErrInvalidSize = errors.New("mem: invalid size")
)

// Block is an owned, aligned region of memory. Release must be called
// exactly when the owner is done with it; further calls are no-ops.
type Block struct {
	data     []byte
	release  func() error
	released bool
}

// Bytes returns the block's memory. It returns nil after Release.
func (b *Block) Bytes() []byte {
	if b == nil || b.released {
		return nil
	}
	return b.data
}

// Len returns the block size in bytes.
func (b *Block) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Release returns the memory to its allocator. It is idempotent and nil-safe.
func (b *Block) Release() error {
	if b == nil || b.released {
		return nil
	}
	b.released = true
	b.data = nil
	if b.release != nil {
		return b.release()
	}
	return nil
}

// Allocator hands out aligned blocks.
type Allocator interface {
	// Alloc returns a block of size bytes starting on an align boundary.
	Alloc(size, align int) (*Block, error)
	// Name identifies the allocator in logs and reports.
	Name() string
}

// Kind selects an Allocator implementation.
type Kind uint8

const (
	// KindHeap allocates from the Go heap.
	KindHeap Kind = iota
	// KindMmap allocates anonymous off-heap mappings.
	KindMmap
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindHeap:
		return "heap"
	case KindMmap:
		return "mmap"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind parses an allocator name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "heap":
		return KindHeap, nil
	case "mmap", "offheap", "off-heap":
		return KindMmap, nil
	default:
		return KindHeap, fmt.Errorf("mem: unknown allocator %q", s)
	}
}

// New returns the allocator for kind, drawing from rc's memory budget.
// A nil rc means unlimited.
func New(kind Kind, rc *resource.Controller) Allocator {
	var inner Allocator = Heap{}
	if kind == KindMmap {
		inner = OffHeap{Advice: mmap.AccessSequential}
	}
	if rc == nil {
		return inner
	}
	return &Budgeted{Inner: inner, Controller: rc}
}

// Heap allocates aligned blocks from the Go heap. Release drops the
// reference and leaves reclamation to the garbage collector.
type Heap struct{}

// Name implements Allocator.
func (Heap) Name() string { return KindHeap.String() }

// Alloc implements Allocator.
func (Heap) Alloc(size, align int) (b *Block, err error) {
	if err := checkRequest(size, align); err != nil {
		return nil, err
	}
	if size == 0 {
		return &Block{data: []byte{}}, nil
	}

	// make panics (recoverably) on lengths beyond the address space.
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("%w: %d bytes: %v", ErrAllocationFailed, size, r)
		}
	}()

	data := AllocAligned(size, align)
	if data == nil {
		return nil, fmt.Errorf("%w: %d bytes", ErrAllocationFailed, size)
	}
	return &Block{data: data}, nil
}

// OffHeap allocates page-aligned anonymous mappings outside the Go heap.
type OffHeap struct {
	// Advice is applied to every new mapping.
	Advice mmap.AccessPattern
}

// Name implements Allocator.
func (OffHeap) Name() string { return KindMmap.String() }

// Alloc implements Allocator.
func (o OffHeap) Alloc(size, align int) (*Block, error) {
	if err := checkRequest(size, align); err != nil {
		return nil, err
	}
	if align > os.Getpagesize() {
		return nil, fmt.Errorf("%w: %d exceeds page size", ErrInvalidAlignment, align)
	}
	if size == 0 {
		return &Block{data: []byte{}}, nil
	}

	m, err := mmap.MapAnon(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes: %w", ErrAllocationFailed, size, err)
	}
	if err := m.Advise(o.Advice); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("%w: advise: %w", ErrAllocationFailed, err)
	}
	return &Block{data: m.Bytes(), release: m.Close}, nil
}

// Budgeted charges every allocation against a resource.Controller.
type Budgeted struct {
	Inner      Allocator
	Controller *resource.Controller
}

// Name implements Allocator.
func (b *Budgeted) Name() string { return b.Inner.Name() }

// Alloc implements Allocator.
func (b *Budgeted) Alloc(size, align int) (*Block, error) {
	if err := checkRequest(size, align); err != nil {
		return nil, err
	}
	amount := int64(size)
	if err := b.Controller.AcquireMemory(amount); err != nil {
		return nil, fmt.Errorf("%w: %d bytes: %w", ErrAllocationFailed, size, err)
	}

	blk, err := b.Inner.Alloc(size, align)
	if err != nil {
		b.Controller.ReleaseMemory(amount)
		return nil, err
	}

	inner := blk.release
	blk.release = func() error {
		b.Controller.ReleaseMemory(amount)
		if inner != nil {
			return inner()
		}
		return nil
	}
	return blk, nil
}

func checkRequest(size, align int) error {
	if size < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if !validAlignment(align) {
		return fmt.Errorf("%w: %d", ErrInvalidAlignment, align)
	}
	return nil
}
