package simd

import "math/bits"

// ==============================================================================
// SWAR kernels
// ==============================================================================
//
// Portable accelerated kernels. Bytes are widened into four 16-bit lanes per
// uint64 (even bytes and odd bytes separately), mirroring the low/high unpack
// of the 128-bit kernels. Lane arithmetic is biased so that no lane ever
// borrows from its neighbour. The loops step one 16-byte block at a time.

const (
	lanesLo   = 0x00FF00FF00FF00FF // low byte of every 16-bit lane
	lanesOne  = 0x0001000100010001 // 1 in every 16-bit lane
	lanesBias = 0x0100010001000100 // 256 in every 16-bit lane
	lanesTwo  = 0x0200020002000200 // 512 in every 16-bit lane
)

// absDiffLanes returns |a-b| per 16-bit lane. Lanes must hold values in [0,255].
func absDiffLanes(a, b uint64) uint64 {
	// d = a-b+256 per lane, in [1,511]: bit 8 is set iff a >= b.
	d := a + lanesBias - b
	ge := ((d >> 8) & lanesOne) * 0xFFFF
	// a >= b: d-256 == d&0xFF. a < b: 256-d == (512-d)&0xFF.
	return ((d & ge) | ((lanesTwo - d) &^ ge)) & lanesLo
}

// sadWord returns the sum of absolute differences of the eight bytes of a and b.
func sadWord(a, b uint64) uint64 {
	lo := absDiffLanes(a&lanesLo, b&lanesLo)
	hi := absDiffLanes((a>>8)&lanesLo, (b>>8)&lanesLo)
	// Lane sums stay below 2^16, so the top lane of the product is the total.
	return ((lo + hi) * lanesOne) >> 48
}

// squareLanes returns the sum of squares of the four 16-bit lanes of x.
func squareLanes(x uint64) uint32 {
	l0 := uint32(x) & 0xFFFF
	l1 := uint32(x>>16) & 0xFFFF
	l2 := uint32(x>>32) & 0xFFFF
	l3 := uint32(x >> 48)
	return l0*l0 + l1*l1 + l2*l2 + l3*l3
}

// ssdWord returns the sum of squared differences of the eight bytes of a and b.
func ssdWord(a, b uint64) uint32 {
	lo := absDiffLanes(a&lanesLo, b&lanesLo)
	hi := absDiffLanes((a>>8)&lanesLo, (b>>8)&lanesLo)
	return squareLanes(lo) + squareLanes(hi)
}

func l1SWAR(p, q []byte) int32 {
	pw, qw := words64(p), words64(q)
	qw = qw[:len(pw)]
	var acc0, acc1 uint64
	for i := 0; i+1 < len(pw); i += 2 {
		acc0 += sadWord(pw[i], qw[i])
		acc1 += sadWord(pw[i+1], qw[i+1])
	}
	return int32(acc0 + acc1)
}

func l2SWAR(p, q []byte) int32 {
	pw, qw := words64(p), words64(q)
	qw = qw[:len(pw)]
	var acc0, acc1 uint32
	for i := 0; i+1 < len(pw); i += 2 {
		acc0 += ssdWord(pw[i], qw[i])
		acc1 += ssdWord(pw[i+1], qw[i+1])
	}
	return int32(acc0 + acc1)
}

func hamming32SWAR(p, q []byte) int32 {
	pw, qw := words32(p), words32(q)
	qw = qw[:len(pw)]
	sum := 0
	for i := 0; i+3 < len(pw); i += 4 {
		sum += bits.OnesCount32(pw[i]^qw[i]) +
			bits.OnesCount32(pw[i+1]^qw[i+1]) +
			bits.OnesCount32(pw[i+2]^qw[i+2]) +
			bits.OnesCount32(pw[i+3]^qw[i+3])
	}
	return int32(sum)
}

func hamming64SWAR(p, q []byte) int32 {
	pw, qw := words64(p), words64(q)
	qw = qw[:len(pw)]
	sum := 0
	for i := 0; i+1 < len(pw); i += 2 {
		sum += bits.OnesCount64(pw[i]^qw[i]) + bits.OnesCount64(pw[i+1]^qw[i+1])
	}
	return int32(sum)
}
