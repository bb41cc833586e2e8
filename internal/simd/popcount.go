package simd

// ==============================================================================
// Software population count
// ==============================================================================
//
// Divide-and-conquer (SWAR) bit counting. Each pass adds neighbouring groups
// of width 2^k, doubling the group width until the total occupies the low
// bits. These are the reference implementations used by the generic Hamming
// kernels; the accelerated kernels use the hardware instruction instead and
// must agree with these for every input.

// Popcount32 returns the number of set bits in x.
func Popcount32(x uint32) int {
	x = ((x & 0xAAAAAAAA) >> 1) + (x & 0x55555555)
	x = ((x & 0xCCCCCCCC) >> 2) + (x & 0x33333333)
	x = ((x & 0xF0F0F0F0) >> 4) + (x & 0x0F0F0F0F)
	x = ((x & 0xFF00FF00) >> 8) + (x & 0x00FF00FF)
	x = ((x & 0xFFFF0000) >> 16) + (x & 0x0000FFFF)
	return int(x)
}

// Popcount64 returns the number of set bits in x.
func Popcount64(x uint64) int {
	x = ((x & 0xAAAAAAAAAAAAAAAA) >> 1) + (x & 0x5555555555555555)
	x = ((x & 0xCCCCCCCCCCCCCCCC) >> 2) + (x & 0x3333333333333333)
	x = ((x & 0xF0F0F0F0F0F0F0F0) >> 4) + (x & 0x0F0F0F0F0F0F0F0F)
	x = ((x & 0xFF00FF00FF00FF00) >> 8) + (x & 0x00FF00FF00FF00FF)
	x = ((x & 0xFFFF0000FFFF0000) >> 16) + (x & 0x0000FFFF0000FFFF)
	x = ((x & 0xFFFFFFFF00000000) >> 32) + (x & 0x00000000FFFFFFFF)
	return int(x)
}
