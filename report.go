package nnbench

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/hupe1980/nnbench/index"
)

const separator = "-----------------------------------------"

// ScanReport describes one linear scan.
type ScanReport struct {
	// Kernels names the kernel set that computed the distances.
	Kernels string `json:"kernels"`

	// Result is the nearest neighbor found.
	Result index.Result `json:"result"`

	// Elapsed is the wall-clock time of the scan alone.
	Elapsed time.Duration `json:"elapsed_ns"`
}

// Millis returns the scan time in milliseconds.
func (s ScanReport) Millis() float64 {
	return float64(s.Elapsed) / float64(time.Millisecond)
}

// Report is the outcome of Run.
type Report struct {
	RunID  string `json:"run_id"`
	Config Config `json:"config"`

	// Allocator names the allocator that provided the vectors.
	Allocator string `json:"allocator"`

	// DictionaryBytes is N*D.
	DictionaryBytes int64 `json:"dictionary_bytes"`

	// PeakMemory is the high-water mark of the memory budget, or the bytes
	// allocated when no limit was set.
	PeakMemory int64 `json:"peak_memory_bytes"`

	// Generation is the time spent producing random vectors.
	Generation time.Duration `json:"generation_ns"`

	Scalar      ScanReport `json:"scalar"`
	Accelerated ScanReport `json:"accelerated"`

	// Agree is true when both scans returned the same result.
	Agree bool `json:"agree"`
}

// Speedup returns the scalar time divided by the accelerated time.
func (r *Report) Speedup() float64 {
	if r.Accelerated.Elapsed <= 0 {
		return 0
	}
	return float64(r.Scalar.Elapsed) / float64(r.Accelerated.Elapsed)
}

// WriteHeader writes the dimension and dictionary size lines that open
// every report.
func WriteHeader(w io.Writer, cfg Config) error {
	_, err := fmt.Fprintf(w, "Dimension of a vector (D): %d\n# of dictionary vectors (N): %d\n%s\n",
		cfg.Dimension, cfg.DictionarySize, separator)
	return err
}

// WriteText renders the report for a terminal.
func (r *Report) WriteText(w io.Writer) error {
	var sb strings.Builder
	_ = WriteHeader(&sb, r.Config)

	fmt.Fprintf(&sb, "Family: %s  Allocator: %s  Dictionary: %s  Generation: %s\n",
		r.Config.Family, r.Allocator, humanize.IBytes(uint64(r.DictionaryBytes)), r.Generation.Round(time.Millisecond))

	for _, s := range []ScanReport{r.Scalar, r.Accelerated} {
		fmt.Fprintf(&sb, "[full nearest neighbor search w/ %s]\n", s.Kernels)
		fmt.Fprintf(&sb, "  Nearest neighbor:  %d (distance=%d)\n", s.Result.Index, s.Result.Distance)
		fmt.Fprintf(&sb, "  Search time:  %6.0f [ms]\n", s.Millis())
	}

	sb.WriteString(separator + "\n")
	verdict := "results agree"
	if !r.Agree {
		verdict = "RESULTS DIFFER"
	}
	fmt.Fprintf(&sb, "Speedup: %.2fx (%s)  Peak memory: %s\n",
		r.Speedup(), verdict, humanize.IBytes(uint64(r.PeakMemory)))

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteJSON renders the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
