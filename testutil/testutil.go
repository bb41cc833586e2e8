package testutil

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/hupe1980/nnbench/internal/mem"
	"github.com/hupe1980/nnbench/vectorstore"
)

// BlockWidth is the alignment of every buffer produced by this package.
const BlockWidth = mem.DefaultAlignment

// SearchResult represents a search result.
type SearchResult struct {
	Index    int
	Distance int32
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// FillBytes fills dst with uniform bytes.
func (r *RNG) FillBytes(dst []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.rand.Read(dst)
}

// Vector returns an aligned vector of dim uniform bytes.
func (r *RNG) Vector(dim int) []byte {
	v := Aligned(dim)
	r.FillBytes(v)
	return v
}

// Vectors returns num aligned vectors of dim uniform bytes.
func (r *RNG) Vectors(num, dim int) [][]byte {
	out := make([][]byte, num)
	for i := range out {
		out[i] = r.Vector(dim)
	}
	return out
}

// Perturb replaces k randomly chosen bytes of v with new random values.
func (r *RNG) Perturb(v []byte, k int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for range k {
		v[r.rand.Intn(len(v))] = byte(r.rand.Intn(256))
	}
}

// Aligned returns a zeroed, BlockWidth-aligned slice of n bytes.
func Aligned(n int) []byte {
	b := mem.AllocAligned(n, BlockWidth)
	if b == nil {
		panic("testutil: aligned allocation failed")
	}
	return b
}

// Constant returns an aligned vector of dim bytes all equal to v.
func Constant(dim int, v byte) []byte {
	b := Aligned(dim)
	for i := range b {
		b[i] = v
	}
	return b
}

// Dictionary builds a heap-backed dictionary from rows, which must all have
// the same length. It is closed when the test ends.
func Dictionary(tb testing.TB, rows ...[]byte) *vectorstore.Dictionary {
	tb.Helper()
	dim := BlockWidth
	if len(rows) > 0 {
		dim = len(rows[0])
	}
	return DictionaryDim(tb, dim, rows...)
}

// DictionaryDim is Dictionary with an explicit dimension, so that empty
// dictionaries of any dimension can be built.
func DictionaryDim(tb testing.TB, dim int, rows ...[]byte) *vectorstore.Dictionary {
	tb.Helper()
	d, err := vectorstore.NewDictionary(mem.Heap{}, len(rows), dim, BlockWidth, func(b []byte) error {
		for i, row := range rows {
			if len(row) != dim {
				tb.Fatalf("testutil: row %d has %d bytes, want %d", i, len(row), dim)
			}
			copy(b[i*dim:], row)
		}
		return nil
	})
	if err != nil {
		tb.Fatalf("testutil: dictionary: %v", err)
	}
	tb.Cleanup(func() { _ = d.Close() })
	return d
}

// Query builds a heap-backed query vector holding a copy of v. It is closed
// when the test ends.
func Query(tb testing.TB, v []byte) *vectorstore.Vector {
	tb.Helper()
	q, err := vectorstore.NewVector(mem.Heap{}, len(v), BlockWidth, func(b []byte) error {
		copy(b, v)
		return nil
	})
	if err != nil {
		tb.Fatalf("testutil: query: %v", err)
	}
	tb.Cleanup(func() { _ = q.Close() })
	return q
}

// BruteForceSearch returns the lowest index achieving the minimum distance,
// computed independently of the index package.
func BruteForceSearch(rows [][]byte, query []byte, fn func(p, q []byte) int32) SearchResult {
	best := SearchResult{Index: -1, Distance: math.MaxInt32}
	for i, row := range rows {
		if d := fn(row, query); d < best.Distance {
			best = SearchResult{Index: i, Distance: d}
		}
	}
	return best
}
