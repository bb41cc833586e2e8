package distance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/nnbench/internal/simd"
)

var (
	// ErrUnknownKernels is returned when a kernel set name cannot be parsed.
	ErrUnknownKernels = errors.New("distance: unknown kernel set")
	// ErrUnavailableKernels is returned when a kernel set is not usable on this CPU or build.
	ErrUnavailableKernels = errors.New("distance: kernel set not available")
	// ErrUnknownFamily is returned for an invalid distance family.
	ErrUnknownFamily = errors.New("distance: unknown family")
)

// Func is a function type for distance calculation on byte vectors.
type Func func(p, q []byte) int32

// Kernels is one implementation of every distance family.
type Kernels interface {
	// Name identifies the implementation ("generic", "swar", "sse2").
	Name() string
	L1(p, q []byte) int32
	L2(p, q []byte) int32
	Hamming32(p, q []byte) int32
	Hamming64(p, q []byte) int32
}

type kernelSet struct {
	ks simd.KernelSet
}

func (k kernelSet) Name() string                { return k.ks.ISA.String() }
func (k kernelSet) String() string              { return k.Name() }
func (k kernelSet) L1(p, q []byte) int32        { return k.ks.L1(p, q) }
func (k kernelSet) L2(p, q []byte) int32        { return k.ks.L2(p, q) }
func (k kernelSet) Hamming32(p, q []byte) int32 { return k.ks.Hamming32(p, q) }
func (k kernelSet) Hamming64(p, q []byte) int32 { return k.ks.Hamming64(p, q) }

func (k kernelSet) kernel(f Family) simd.Kernel {
	switch f {
	case L1:
		return k.ks.L1
	case L2:
		return k.ks.L2
	case Hamming32:
		return k.ks.Hamming32
	default:
		return k.ks.Hamming64
	}
}

// Scalar returns the portable reference kernels.
func Scalar() Kernels {
	return kernelSet{ks: simd.GenericKernels()}
}

// Accelerated returns the fastest kernels on this CPU. NNBENCH_SIMD selects
// a specific implementation when it names an available one.
func Accelerated() Kernels {
	return kernelSet{ks: simd.ActiveKernels()}
}

// Lookup returns the kernels with the given name. An empty name or "auto"
// selects Accelerated.
func Lookup(name string) (Kernels, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return Accelerated(), nil
	}
	isa, ok := simd.ParseISA(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKernels, name)
	}
	ks, ok := simd.Kernels(isa)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnavailableKernels, isa)
	}
	return kernelSet{ks: ks}, nil
}

// Available returns every kernel set usable on this CPU, scalar first.
func Available() []Kernels {
	isas := simd.AvailableISAs()
	out := make([]Kernels, 0, len(isas))
	for _, isa := range isas {
		ks, _ := simd.Kernels(isa)
		out = append(out, kernelSet{ks: ks})
	}
	return out
}

// Bind resolves the kernel of family f once. The returned function is called
// directly by the scan, with no further dispatch.
func Bind(k Kernels, f Family) (Func, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: nil", ErrUnknownKernels)
	}
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFamily, uint8(f))
	}
	if ks, ok := k.(kernelSet); ok {
		return Func(ks.kernel(f)), nil
	}
	switch f {
	case L1:
		return k.L1, nil
	case L2:
		return k.L2, nil
	case Hamming32:
		return k.Hamming32, nil
	default:
		return k.Hamming64, nil
	}
}

// Popcount32 returns the number of set bits in x.
func Popcount32(x uint32) int {
	return simd.Popcount32(x)
}

// Popcount64 returns the number of set bits in x.
func Popcount64(x uint64) int {
	return simd.Popcount64(x)
}
