// Package distance exposes the byte-vector distance kernels.
//
// A Kernels value is one implementation of the four distance families. Two
// of them matter to a benchmark run: Scalar, the portable reference, and
// Accelerated, the fastest implementation on the running CPU. Both always
// produce identical results.
//
// # Supported Families
//
//   - L1: sum of absolute byte differences
//   - L2: sum of squared byte differences (no square root)
//   - Hamming32: differing bits, counted over 32-bit words
//   - Hamming64: differing bits, counted over 64-bit words
//
// # Usage
//
//	fn, err := distance.Bind(distance.Accelerated(), distance.L2)
//	if err != nil {
//		return err
//	}
//	d := fn(p, q)
//
// Vectors must have equal length, a multiple of 16, and start on a 16-byte
// boundary. The kernels do not check this.
package distance
