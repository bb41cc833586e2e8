//go:build arm64

package simd

import "golang.org/x/sys/cpu"

// On arm64 the SWAR kernels are the accelerated path: bits.OnesCount64 is
// lowered to VCNT (per-byte count) followed by VUADDLV (horizontal add).
func init() {
	hasASIMD = cpu.ARM64.HasASIMD
	registerPlatformKernels()
	initCapabilities()
}
