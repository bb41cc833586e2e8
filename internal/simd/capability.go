package simd

import (
	"os"
	"strings"
)

// ISA represents a kernel implementation family.
type ISA uint8

const (
	// Generic represents the scalar reference implementation.
	Generic ISA = iota
	// SWAR represents portable pure Go kernels that pack several lanes into
	// one 64-bit word and use the compiler's popcount intrinsics.
	SWAR
	// SSE2 represents x86-64 128-bit kernels (SSE2, plus POPCNT for Hamming).
	SSE2

	numISA
)

// EnvOverride is the environment variable that forces a specific ISA.
const EnvOverride = "NNBENCH_SIMD"

// String returns the string representation of an ISA.
func (i ISA) String() string {
	switch i {
	case Generic:
		return "generic"
	case SWAR:
		return "swar"
	case SSE2:
		return "sse2"
	default:
		return "unknown"
	}
}

// ParseISA parses a string into an ISA value.
func ParseISA(s string) (ISA, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic", "scalar":
		return Generic, true
	case "swar":
		return SWAR, true
	case "sse2":
		return SSE2, true
	default:
		return Generic, false
	}
}

// Package-level state - initialized once at package init.
var (
	// activeISA is the selected accelerated implementation.
	activeISA ISA

	// hasOverride is true if NNBENCH_SIMD selected an available ISA.
	hasOverride bool

	// CPU feature flags (set by platform-specific init)
	hasSSE2   bool // x86-64 SSE2
	hasPOPCNT bool // x86-64 POPCNT
	hasASIMD  bool // ARM64 NEON
)

// initCapabilities is called from platform-specific init functions
// after CPU features are detected and platform kernels are registered.
func initCapabilities() {
	activeISA = selectBestISA()
	if override := os.Getenv(EnvOverride); override != "" {
		if isa, ok := ParseISA(override); ok && isISAAvailable(isa) {
			hasOverride = true
			activeISA = isa
		}
	}
	setActiveKernels(kernelSets[activeISA])
}

// isISAAvailable checks if an ISA is supported on this CPU and build.
func isISAAvailable(isa ISA) bool {
	if isa >= numISA || kernelSets[isa] == nil {
		return false
	}
	switch isa {
	case Generic, SWAR:
		return true
	case SSE2:
		return hasSSE2
	default:
		return false
	}
}

// selectBestISA chooses the fastest available ISA.
func selectBestISA() ISA {
	if isISAAvailable(SSE2) {
		return SSE2
	}
	return SWAR
}

// ActiveISA returns the currently active ISA.
func ActiveISA() ISA {
	return activeISA
}

// IsOverridden returns true if NNBENCH_SIMD selected the active ISA.
func IsOverridden() bool {
	return hasOverride
}

// HasSSE2 returns true if x86-64 SSE2 is available.
func HasSSE2() bool {
	return hasSSE2
}

// HasPOPCNT returns true if the x86-64 POPCNT instruction is available.
func HasPOPCNT() bool {
	return hasPOPCNT
}

// HasASIMD returns true if ARM64 NEON is available.
func HasASIMD() bool {
	return hasASIMD
}

// AvailableISAs lists every ISA usable on this CPU, slowest first.
func AvailableISAs() []ISA {
	out := make([]ISA, 0, numISA)
	for isa := Generic; isa < numISA; isa++ {
		if isISAAvailable(isa) {
			out = append(out, isa)
		}
	}
	return out
}
