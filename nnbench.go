package nnbench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/nnbench/distance"
	"github.com/hupe1980/nnbench/index/flat"
	"github.com/hupe1980/nnbench/internal/mem"
	"github.com/hupe1980/nnbench/internal/resource"
	"github.com/hupe1980/nnbench/util"
	"github.com/hupe1980/nnbench/vectorstore"
)

// workload is the generated dictionary and query of one run.
type workload struct {
	allocator mem.Allocator
	rc        *resource.Controller
	dict      *vectorstore.Dictionary
	query     *vectorstore.Vector

	generation time.Duration
}

func (w *workload) Close() error {
	return errors.Join(w.query.Close(), w.dict.Close())
}

// peakMemory returns the budget's high-water mark, or the bytes held when
// no budget is configured.
func (w *workload) peakMemory() int64 {
	if w.rc != nil {
		return w.rc.PeakMemoryUsage()
	}
	return int64(w.dict.Size() + w.query.Dim())
}

func newAllocator(cfg Config, o options) (mem.Allocator, *resource.Controller, error) {
	a := o.allocator
	if a == nil {
		kind, err := mem.ParseKind(cfg.Allocator)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		a = mem.New(kind, nil)
	}

	limit, err := cfg.memoryLimitBytes()
	if err != nil {
		return nil, nil, err
	}
	if limit == 0 {
		return a, nil, nil
	}
	rc := resource.NewController(resource.Config{MemoryLimitBytes: limit})
	return &mem.Budgeted{Inner: a, Controller: rc}, rc, nil
}

// prepare allocates the dictionary and the query and fills both from one
// seeded stream, dictionary first. Allocation failures wrap ErrAllocation.
func prepare(ctx context.Context, cfg Config, o options, log *Logger) (*workload, error) {
	a, rc, err := newAllocator(cfg, o)
	if err != nil {
		return nil, err
	}
	w := &workload{allocator: a, rc: rc}

	gen := newGenerator(cfg, o.output)
	start := time.Now()

	dictBytes := cfg.DictionaryBytes()
	w.dict, err = vectorstore.NewDictionary(a, cfg.DictionarySize, cfg.Dimension, cfg.BlockWidth, gen.fillDictionary)
	o.metricsCollector.RecordAllocation(dictBytes, err)
	log.LogAllocation(ctx, "dictionary", a.Name(), dictBytes, err)
	if err != nil {
		return nil, allocationError("dictionary", dictBytes, err)
	}
	gen.progress.finish()

	queryBytes := int64(cfg.Dimension)
	w.query, err = vectorstore.NewVector(a, cfg.Dimension, cfg.BlockWidth, gen.fillQuery)
	o.metricsCollector.RecordAllocation(queryBytes, err)
	log.LogAllocation(ctx, "query", a.Name(), queryBytes, err)
	if err != nil {
		_ = w.dict.Close()
		return nil, allocationError("query", queryBytes, err)
	}

	w.generation = time.Since(start)
	o.metricsCollector.RecordGeneration(dictBytes+queryBytes, w.generation)
	log.LogGeneration(ctx, dictBytes+queryBytes, cfg.Seed, w.generation)

	if cfg.Dump > 0 {
		if err := DumpVectors(o.output, w.dict, w.query, cfg.Dump, cfg.DumpFormat); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("dump vectors: %w", err)
		}
	}
	return w, nil
}

func allocationError(what string, bytes int64, err error) error {
	if errors.Is(err, mem.ErrAllocationFailed) || errors.Is(err, resource.ErrMemoryLimitExceeded) {
		return fmt.Errorf("%w: %s (%d bytes): %w", ErrAllocation, what, bytes, err)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// Run executes the benchmark: generate a random dictionary and query, find
// the nearest neighbor once with the scalar kernels and once with the
// accelerated kernels, and compare.
//
// The returned report is non-nil whenever both scans ran. If they disagree,
// Run returns the report together with an error wrapping ErrScanMismatch.
//
// The context is checked before allocation and before each scan, never
// inside a scan.
func Run(ctx context.Context, cfg Config, opts ...Option) (*Report, error) {
	o := applyOptions(opts)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	scalar := distance.Scalar()
	accelerated := o.accelerated
	if accelerated == nil {
		var err error
		if accelerated, err = distance.Lookup(cfg.ISA); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	runID := uuid.NewString()
	log := o.logger.WithRunID(runID).WithFamily(cfg.Family)
	log.InfoContext(ctx, "benchmark started",
		"dimension", cfg.Dimension,
		"dictionary_size", cfg.DictionarySize,
		"scalar", scalar.Name(),
		"accelerated", accelerated.Name(),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, err := prepare(ctx, cfg, o, log)
	if err != nil {
		return nil, err
	}
	defer w.Close()

	report := &Report{
		RunID:           runID,
		Config:          cfg,
		Allocator:       w.allocator.Name(),
		DictionaryBytes: cfg.DictionaryBytes(),
		Generation:      w.generation,
	}

	report.Scalar, err = scan(ctx, w, scalar, cfg.Family, o, log)
	if err != nil {
		return nil, err
	}
	report.Accelerated, err = scan(ctx, w, accelerated, cfg.Family, o, log)
	if err != nil {
		return nil, err
	}
	report.PeakMemory = w.peakMemory()

	report.Agree = report.Scalar.Result == report.Accelerated.Result
	if !report.Agree {
		log.ErrorContext(ctx, "scan mismatch",
			"scalar", report.Scalar.Result.String(),
			"accelerated", report.Accelerated.Result.String(),
		)
		return report, fmt.Errorf("%w: %s found %s, %s found %s", ErrScanMismatch,
			report.Scalar.Kernels, report.Scalar.Result,
			report.Accelerated.Kernels, report.Accelerated.Result)
	}
	return report, nil
}

func scan(ctx context.Context, w *workload, k distance.Kernels, f distance.Family, o options, log *Logger) (ScanReport, error) {
	if err := ctx.Err(); err != nil {
		return ScanReport{}, err
	}
	fn, err := distance.Bind(k, f)
	if err != nil {
		return ScanReport{}, &ErrInvalidFamily{Family: f, cause: err}
	}

	start := time.Now()
	res := flat.Search(w.dict, w.query, fn)
	elapsed := time.Since(start)

	o.metricsCollector.RecordScan(k.Name(), w.dict.Len(), elapsed)
	log.WithKernels(k).LogScan(ctx, w.dict.Len(), res, elapsed)
	return ScanReport{Kernels: k.Name(), Result: res, Elapsed: elapsed}, nil
}

// generator produces the benchmark data from a single seeded stream.
type generator struct {
	rng      *util.RNG
	progress *progress
	dim      int
}

func newGenerator(cfg Config, out io.Writer) *generator {
	return &generator{
		rng:      util.NewRNG(cfg.Seed),
		progress: newProgress(out, cfg.DictionarySize),
		dim:      cfg.Dimension,
	}
}

// fillDictionary writes the dictionary in chunks of progressChunk vectors,
// reporting progress between chunks.
func (g *generator) fillDictionary(b []byte) error {
	n := len(b) / g.dim
	for done := 0; done < n; {
		next := min(done+progressChunk, n)
		if _, err := g.rng.Read(b[done*g.dim : next*g.dim]); err != nil {
			return err
		}
		done = next
		g.progress.update(done)
	}
	return nil
}

func (g *generator) fillQuery(b []byte) error {
	_, err := g.rng.Read(b)
	return err
}
