// Package flat implements exact nearest neighbor search by linear scan.
//
// The scan visits every dictionary element exactly once, in index order, and
// calls the bound distance function directly. There is no pruning and no
// early exit, so its cost is the benchmark's measurement.
package flat

import (
	"github.com/hupe1980/nnbench/distance"
	"github.com/hupe1980/nnbench/index"
	"github.com/hupe1980/nnbench/vectorstore"
)

// Search returns the element of dict closest to query under fn. Only a
// strictly smaller distance replaces the current best, so the lowest index
// wins ties. An empty dictionary yields index.NoCandidate.
func Search(dict *vectorstore.Dictionary, query *vectorstore.Vector, fn distance.Func) index.Result {
	best := index.NoCandidate()
	q := query.Bytes()
	data := dict.Bytes()
	dim := dict.Dim()

	for n, off := 0, 0; n < dict.Len(); n, off = n+1, off+dim {
		d := fn(data[off:off+dim:off+dim], q)
		if d < best.Distance {
			best.Distance = d
			best.Index = n
		}
	}
	return best
}

// Distances writes the distance of every element of dict to query into out,
// growing it as needed, and returns it.
func Distances(dict *vectorstore.Dictionary, query *vectorstore.Vector, fn distance.Func, out []int32) []int32 {
	n := dict.Len()
	if cap(out) < n {
		out = make([]int32, n)
	}
	out = out[:n]

	q := query.Bytes()
	for i := range out {
		out[i] = fn(dict.At(i), q)
	}
	return out
}
