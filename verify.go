package nnbench

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/google/uuid"

	"github.com/hupe1980/nnbench/distance"
	"github.com/hupe1980/nnbench/index"
	"github.com/hupe1980/nnbench/index/flat"
)

// maxReportedMismatches caps VerifyCheck.FirstMismatches.
const maxReportedMismatches = 10

// VerifyCheck compares one kernel set against the scalar kernels for one
// distance family over the whole dictionary.
type VerifyCheck struct {
	Kernels  string          `json:"kernels"`
	Family   distance.Family `json:"family"`
	Elements int             `json:"elements"`

	// Mismatches counts dictionary elements whose distances differ.
	Mismatches uint64 `json:"mismatches"`

	// FirstMismatches lists the lowest differing indices.
	FirstMismatches []uint32 `json:"first_mismatches,omitempty"`

	Scalar      index.Result `json:"scalar"`
	Accelerated index.Result `json:"accelerated"`
}

// OK reports whether every distance and the search result agree.
func (c VerifyCheck) OK() bool {
	return c.Mismatches == 0 && c.Scalar == c.Accelerated
}

// VerifyReport is the outcome of Verify.
type VerifyReport struct {
	RunID     string        `json:"run_id"`
	Config    Config        `json:"config"`
	Allocator string        `json:"allocator"`
	Checks    []VerifyCheck `json:"checks"`
}

// OK reports whether every check passed.
func (r *VerifyReport) OK() bool {
	for _, c := range r.Checks {
		if !c.OK() {
			return false
		}
	}
	return true
}

// Mismatches returns the total number of differing distances.
func (r *VerifyReport) Mismatches() uint64 {
	var n uint64
	for _, c := range r.Checks {
		n += c.Mismatches
	}
	return n
}

// WriteText renders the report for a terminal.
func (r *VerifyReport) WriteText(w io.Writer) error {
	var sb strings.Builder
	_ = WriteHeader(&sb, r.Config)

	for _, c := range r.Checks {
		status := "ok"
		if !c.OK() {
			status = "MISMATCH"
		}
		fmt.Fprintf(&sb, "[verify %s vs generic, %s]  %s\n", c.Kernels, c.Family, status)
		fmt.Fprintf(&sb, "  Nearest neighbor:  %s / %s\n", c.Scalar, c.Accelerated)
		fmt.Fprintf(&sb, "  Differing distances:  %d of %d", c.Mismatches, c.Elements)
		if len(c.FirstMismatches) > 0 {
			fmt.Fprintf(&sb, "  first: %v", c.FirstMismatches)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(separator + "\n")
	fmt.Fprintf(&sb, "%d checks, %d differing distances\n", len(r.Checks), r.Mismatches())

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteJSON renders the report as indented JSON.
func (r *VerifyReport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// CompareDistances returns the set of indices at which want and got differ.
// Indices past the shorter slice count as differing.
func CompareDistances(want, got []int32) *roaring.Bitmap {
	bm := roaring.New()
	n := min(len(want), len(got))
	for i := 0; i < n; i++ {
		if want[i] != got[i] {
			bm.Add(uint32(i))
		}
	}
	if longest := max(len(want), len(got)); longest > n {
		bm.AddRange(uint64(n), uint64(longest))
	}
	return bm
}

// Verify generates the same data as Run and compares every per-element
// distance of every accelerated kernel set against the scalar kernels, for
// every distance family. Config.Family and Config.ISA are ignored.
//
// If any check fails, Verify returns the report together with an error
// wrapping ErrScanMismatch.
func Verify(ctx context.Context, cfg Config, opts ...Option) (*VerifyReport, error) {
	o := applyOptions(opts)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if int64(cfg.DictionarySize) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d exceeds %d for verification", ErrInvalidDictionarySize, cfg.DictionarySize, uint32(math.MaxUint32))
	}

	runID := uuid.NewString()
	log := o.logger.WithRunID(runID)
	log.InfoContext(ctx, "verification started",
		"dimension", cfg.Dimension,
		"dictionary_size", cfg.DictionarySize,
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, err := prepare(ctx, cfg, o, log)
	if err != nil {
		return nil, err
	}
	defer w.Close()

	report := &VerifyReport{RunID: runID, Config: cfg, Allocator: w.allocator.Name()}
	scalar := distance.Scalar()
	var want, got []int32

	for _, f := range distance.Families() {
		ref, err := distance.Bind(scalar, f)
		if err != nil {
			return nil, &ErrInvalidFamily{Family: f, cause: err}
		}
		want = flat.Distances(w.dict, w.query, ref, want)
		wantRes := flat.Search(w.dict, w.query, ref)

		for _, k := range distance.Available() {
			if k.Name() == scalar.Name() {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			fn, err := distance.Bind(k, f)
			if err != nil {
				return nil, &ErrInvalidFamily{Family: f, cause: err}
			}
			got = flat.Distances(w.dict, w.query, fn, got)

			check := newVerifyCheck(k.Name(), f, CompareDistances(want, got))
			check.Elements = w.dict.Len()
			check.Scalar = wantRes
			check.Accelerated = flat.Search(w.dict, w.query, fn)
			report.Checks = append(report.Checks, check)

			o.metricsCollector.RecordVerify(check.Elements, check.Mismatches)
			log.WithKernels(k).WithFamily(f).LogVerify(ctx, check.Elements, check.Mismatches)
		}
	}

	if !report.OK() {
		return report, fmt.Errorf("%w: %d differing distances", ErrScanMismatch, report.Mismatches())
	}
	return report, nil
}

func newVerifyCheck(kernels string, f distance.Family, diff *roaring.Bitmap) VerifyCheck {
	c := VerifyCheck{
		Kernels:    kernels,
		Family:     f,
		Mismatches: diff.GetCardinality(),
	}
	it := diff.Iterator()
	for it.HasNext() && len(c.FirstMismatches) < maxReportedMismatches {
		c.FirstMismatches = append(c.FirstMismatches, it.Next())
	}
	return c
}
