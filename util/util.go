// Package util provides the seeded byte generator used to build benchmark data.
package util

import (
	"encoding/binary"
	"math/rand"
)

// RNG struct encapsulates the random number generator and seed.
//
// RNG is an io.Reader producing uniformly distributed bytes. The byte stream
// depends only on the seed, not on how reads are split.
type RNG struct {
	rand *rand.Rand
	seed int64

	buf  [8]byte
	left int // unread bytes at the end of buf
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Read fills p with random bytes. It never fails.
func (r *RNG) Read(p []byte) (int, error) {
	n := len(p)

	for r.left > 0 && len(p) > 0 {
		p[0] = r.buf[8-r.left]
		p = p[1:]
		r.left--
	}
	for len(p) >= 8 {
		binary.LittleEndian.PutUint64(p, r.rand.Uint64())
		p = p[8:]
	}
	if len(p) > 0 {
		binary.LittleEndian.PutUint64(r.buf[:], r.rand.Uint64())
		r.left = 8 - copy(p, r.buf[:])
	}
	return n, nil
}

// Bytes returns n fresh random bytes.
func (r *RNG) Bytes(n int) []byte {
	b := make([]byte, n)
	_, _ = r.Read(b)
	return b
}
