//go:build !noasm && amd64

package simd

import "unsafe"

//go:noescape
func l1Sse2(p unsafe.Pointer, q unsafe.Pointer, n int64) int64

//go:noescape
func l2Sse2(p unsafe.Pointer, q unsafe.Pointer, n int64) int32

//go:noescape
func hamming32Popcnt(p unsafe.Pointer, q unsafe.Pointer, n int64) int64

//go:noescape
func hamming64Popcnt(p unsafe.Pointer, q unsafe.Pointer, n int64) int64
