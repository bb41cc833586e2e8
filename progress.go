package nnbench

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/time/rate"
)

// progressChunk is the number of vectors generated between progress updates.
const progressChunk = 1024

// progress prints "Progress... (done / total)" lines in thousands of
// vectors, at most a few times per second.
type progress struct {
	out       io.Writer
	total     int
	sometimes rate.Sometimes
}

func newProgress(out io.Writer, total int) *progress {
	p := &progress{
		out:       out,
		total:     total,
		sometimes: rate.Sometimes{First: 1, Interval: 250 * time.Millisecond},
	}
	fmt.Fprintln(out, "[vector generation]")
	return p
}

func (p *progress) update(done int) {
	p.sometimes.Do(func() { p.print(done) })
}

func (p *progress) finish() {
	p.print(p.total)
	fmt.Fprintln(p.out)
}

func (p *progress) print(done int) {
	fmt.Fprintf(p.out, "\r  Progress... (%5dk / %5dk)", done/1024, p.total/1024)
}
