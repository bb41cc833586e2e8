// Package index provides the result type shared by the search implementations.
//
// # Subpackages
//
//   - flat: Exact nearest neighbor search by exhaustive linear scan
package index
