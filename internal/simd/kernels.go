package simd

import "unsafe"

// Kernel computes the distance between two byte vectors.
//
// SAFETY: Assumes len(p) == len(q) and len(p)%16 == 0, and that both slices
// start on a 16-byte boundary. Callers MUST guarantee this; kernels do not
// check it.
type Kernel func(p, q []byte) int32

// KernelSet groups the distance kernels of one ISA.
type KernelSet struct {
	ISA       ISA
	L1        Kernel
	L2        Kernel
	Hamming32 Kernel
	Hamming64 Kernel
}

// kernelSets holds one entry per ISA. Platform files register additional
// sets in registerPlatformKernels before capabilities are resolved.
var kernelSets = [numISA]*KernelSet{
	Generic: {
		ISA:       Generic,
		L1:        l1Generic,
		L2:        l2Generic,
		Hamming32: hamming32Generic,
		Hamming64: hamming64Generic,
	},
	SWAR: {
		ISA:       SWAR,
		L1:        l1SWAR,
		L2:        l2SWAR,
		Hamming32: hamming32SWAR,
		Hamming64: hamming64SWAR,
	},
}

// Kernel function pointers - set once at init, zero runtime overhead.
var (
	kernelL1        Kernel = l1Generic
	kernelL2        Kernel = l2Generic
	kernelHamming32 Kernel = hamming32Generic
	kernelHamming64 Kernel = hamming64Generic
)

func setActiveKernels(ks *KernelSet) {
	kernelL1 = ks.L1
	kernelL2 = ks.L2
	kernelHamming32 = ks.Hamming32
	kernelHamming64 = ks.Hamming64
}

// Kernels returns the kernel set of isa if it is usable on this CPU.
func Kernels(isa ISA) (KernelSet, bool) {
	if !isISAAvailable(isa) {
		return KernelSet{}, false
	}
	return *kernelSets[isa], true
}

// GenericKernels returns the scalar reference kernels.
func GenericKernels() KernelSet {
	return *kernelSets[Generic]
}

// ActiveKernels returns the kernels of the active ISA.
func ActiveKernels() KernelSet {
	return *kernelSets[activeISA]
}

// ============================================================================
// Public API - dispatch through the active ISA
// ============================================================================

// L1 returns the sum of absolute byte differences.
func L1(p, q []byte) int32 {
	return kernelL1(p, q)
}

// L2 returns the sum of squared byte differences.
func L2(p, q []byte) int32 {
	return kernelL2(p, q)
}

// Hamming32 returns the number of differing bits, counted over 32-bit words.
func Hamming32(p, q []byte) int32 {
	return kernelHamming32(p, q)
}

// Hamming64 returns the number of differing bits, counted over 64-bit words.
func Hamming64(p, q []byte) int32 {
	return kernelHamming64(p, q)
}

// ============================================================================
// Generic implementations (scalar reference)
// ============================================================================

func l1Generic(p, q []byte) int32 {
	q = q[:len(p)]
	var sum int32
	for d := range p {
		diff := int32(q[d]) - int32(p[d])
		if diff < 0 {
			diff = -diff
		}
		sum += diff
	}
	return sum
}

func l2Generic(p, q []byte) int32 {
	q = q[:len(p)]
	var sum int32
	for d := range p {
		diff := int32(q[d]) - int32(p[d])
		sum += diff * diff
	}
	return sum
}

func hamming32Generic(p, q []byte) int32 {
	pw, qw := words32(p), words32(q)
	qw = qw[:len(pw)]
	sum := 0
	for i := range pw {
		sum += Popcount32(pw[i] ^ qw[i])
	}
	return int32(sum)
}

func hamming64Generic(p, q []byte) int32 {
	pw, qw := words64(p), words64(q)
	qw = qw[:len(pw)]
	sum := 0
	for i := range pw {
		sum += Popcount64(pw[i] ^ qw[i])
	}
	return int32(sum)
}

// words32 reinterprets b as native-endian 32-bit words. Bit counts do not
// depend on byte order, so the result is portable.
func words32(b []byte) []uint32 {
	if len(b) < 4 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&b[0])), len(b)/4) //nolint:gosec // 16-byte aligned by contract
}

// words64 reinterprets b as native-endian 64-bit words.
func words64(b []byte) []uint64 {
	if len(b) < 8 {
		return nil
	}
	return unsafe.Slice((*uint64)(unsafe.Pointer(&b[0])), len(b)/8) //nolint:gosec // 16-byte aligned by contract
}
