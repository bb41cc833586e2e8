package mem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/nnbench/internal/resource"
)

func TestAllocators(t *testing.T) {
	allocators := []Allocator{
		Heap{},
		OffHeap{},
		New(KindHeap, resource.NewController(resource.Config{})),
		New(KindMmap, resource.NewController(resource.Config{})),
	}

	for _, a := range allocators {
		t.Run(a.Name(), func(t *testing.T) {
			blk, err := a.Alloc(1000, DefaultAlignment)
			require.NoError(t, err)
			require.Equal(t, 1000, blk.Len())

			data := blk.Bytes()
			require.Len(t, data, 1000)
			assert.True(t, IsAligned(data, DefaultAlignment))
			data[999] = 7

			require.NoError(t, blk.Release())
			assert.Nil(t, blk.Bytes())
			// Idempotent
			require.NoError(t, blk.Release())
		})
	}
}

func TestAlloc_ZeroSize(t *testing.T) {
	for _, a := range []Allocator{Heap{}, OffHeap{}} {
		blk, err := a.Alloc(0, DefaultAlignment)
		require.NoError(t, err)
		assert.Empty(t, blk.Bytes())
		assert.Zero(t, blk.Len())
		require.NoError(t, blk.Release())
	}
}

func TestAlloc_InvalidRequests(t *testing.T) {
	for _, a := range []Allocator{Heap{}, OffHeap{}} {
		_, err := a.Alloc(-1, DefaultAlignment)
		assert.ErrorIs(t, err, ErrInvalidSize)

		_, err = a.Alloc(16, 24)
		assert.ErrorIs(t, err, ErrInvalidAlignment)
	}

	_, err := OffHeap{}.Alloc(16, 1<<30)
	assert.ErrorIs(t, err, ErrInvalidAlignment)
}

func TestHeap_Failure(t *testing.T) {
	_, err := Heap{}.Alloc(math.MaxInt-8, DefaultAlignment)
	assert.ErrorIs(t, err, ErrAllocationFailed)
}

func TestBudgeted(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1024})
	a := New(KindHeap, rc)

	first, err := a.Alloc(800, DefaultAlignment)
	require.NoError(t, err)
	assert.Equal(t, int64(800), rc.MemoryUsage())

	_, err = a.Alloc(800, DefaultAlignment)
	assert.ErrorIs(t, err, ErrAllocationFailed)
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
	assert.Equal(t, int64(800), rc.MemoryUsage())

	require.NoError(t, first.Release())
	assert.Zero(t, rc.MemoryUsage())

	// Double release must not refund twice.
	require.NoError(t, first.Release())
	assert.Zero(t, rc.MemoryUsage())

	second, err := a.Alloc(800, DefaultAlignment)
	require.NoError(t, err)
	defer second.Release()
	assert.Equal(t, int64(800), rc.MemoryUsage())
}

func TestBudgeted_InnerFailureRefunds(t *testing.T) {
	rc := resource.NewController(resource.Config{})
	a := New(KindHeap, rc)

	_, err := a.Alloc(16, 3)
	assert.ErrorIs(t, err, ErrInvalidAlignment)
	assert.Zero(t, rc.MemoryUsage())
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"", KindHeap, false},
		{"heap", KindHeap, false},
		{" MMAP ", KindMmap, false},
		{"off-heap", KindMmap, false},
		{"arena", KindHeap, true},
	}

	for _, tc := range tests {
		got, err := ParseKind(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
		assert.Equal(t, got, mustParse(t, got.String()))
	}
}

func mustParse(t *testing.T, s string) Kind {
	t.Helper()
	k, err := ParseKind(s)
	require.NoError(t, err)
	return k
}
