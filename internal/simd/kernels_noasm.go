//go:build !amd64 || noasm

package simd

// registerPlatformKernels is a no-op without assembly kernels; the SWAR set
// is the accelerated path.
func registerPlatformKernels() {}
