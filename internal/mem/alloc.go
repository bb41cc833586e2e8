package mem

import (
	"math"
	"unsafe"
)

// DefaultAlignment is the byte alignment required by the 128-bit kernels.
const DefaultAlignment = 16

// AllocAligned allocates a byte slice of the given size whose first byte
// sits at an address divisible by align. It returns nil if size is not
// positive or align is not a power of two.
//
// Note: This function allocates slightly more memory than requested to ensure alignment.
// The underlying array is kept alive by the returned slice.
func AllocAligned(size, align int) []byte {
	if size <= 0 || !validAlignment(align) || size > math.MaxInt-align {
		return nil
	}

	// We need enough space to shift the start pointer up to align-1 bytes
	buf := make([]byte, size+align)

	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // unsafe is required for memory alignment
	offset := int((uintptr(align) - (addr & uintptr(align-1))) & uintptr(align-1))

	return buf[offset : offset+size : offset+size]
}

// IsAligned reports whether b starts at an address divisible by align.
// Empty slices are always aligned.
func IsAligned(b []byte, align int) bool {
	if len(b) == 0 {
		return true
	}
	if !validAlignment(align) {
		return false
	}
	addr := uintptr(unsafe.Pointer(&b[0])) //nolint:gosec // unsafe is required for memory alignment
	return addr&uintptr(align-1) == 0
}

func validAlignment(align int) bool {
	return align > 0 && align&(align-1) == 0
}
