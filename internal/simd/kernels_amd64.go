//go:build amd64 && !noasm

package simd

import "unsafe"

// registerPlatformKernels installs the SSE2 kernel set. It runs from
// capability_amd64.go init() after CPU features are detected.
func registerPlatformKernels() {
	ks := &KernelSet{
		ISA:       SSE2,
		L1:        l1SSE2,
		L2:        l2SSE2,
		Hamming32: hamming32SWAR,
		Hamming64: hamming64SWAR,
	}
	if hasPOPCNT {
		ks.Hamming32 = hamming32POPCNT
		ks.Hamming64 = hamming64POPCNT
	}
	kernelSets[SSE2] = ks
}

func l1SSE2(p, q []byte) int32 {
	if len(p) == 0 {
		return 0
	}
	return int32(l1Sse2(unsafe.Pointer(&p[0]), unsafe.Pointer(&q[0]), int64(len(p))))
}

func l2SSE2(p, q []byte) int32 {
	if len(p) == 0 {
		return 0
	}
	return l2Sse2(unsafe.Pointer(&p[0]), unsafe.Pointer(&q[0]), int64(len(p)))
}

func hamming32POPCNT(p, q []byte) int32 {
	if len(p) == 0 {
		return 0
	}
	return int32(hamming32Popcnt(unsafe.Pointer(&p[0]), unsafe.Pointer(&q[0]), int64(len(p))))
}

func hamming64POPCNT(p, q []byte) int32 {
	if len(p) == 0 {
		return 0
	}
	return int32(hamming64Popcnt(unsafe.Pointer(&p[0]), unsafe.Pointer(&q[0]), int64(len(p))))
}
