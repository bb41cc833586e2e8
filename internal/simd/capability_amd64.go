//go:build amd64

package simd

import "golang.org/x/sys/cpu"

func init() {
	hasSSE2 = cpu.X86.HasSSE2
	hasPOPCNT = cpu.X86.HasPOPCNT
	registerPlatformKernels()
	initCapabilities()
}
