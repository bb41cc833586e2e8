package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(4711).Bytes(1000)
	b := NewRNG(4711).Bytes(1000)
	c := NewRNG(4712).Bytes(1000)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, int64(4711), NewRNG(4711).Seed())
}

func TestRNG_SplitReads(t *testing.T) {
	want := NewRNG(5489).Bytes(101)

	r := NewRNG(5489)
	got := make([]byte, 0, len(want))
	for _, size := range []int{3, 8, 1, 0, 17, 5, 64, 3} {
		chunk := make([]byte, size)
		n, err := r.Read(chunk)
		require.NoError(t, err)
		require.Equal(t, size, n)
		got = append(got, chunk...)
	}
	assert.Equal(t, want, got)
}

func TestRNG_Distribution(t *testing.T) {
	var hist [256]int
	for _, b := range NewRNG(1).Bytes(256 * 1000) {
		hist[b]++
	}
	for v, n := range hist {
		assert.Greater(t, n, 700, "byte %d under-represented", v)
		assert.Less(t, n, 1300, "byte %d over-represented", v)
	}
}
