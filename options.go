package nnbench

import (
	"io"

	"github.com/hupe1980/nnbench/distance"
	"github.com/hupe1980/nnbench/internal/mem"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	allocator        mem.Allocator
	output           io.Writer
	accelerated      distance.Kernels
}

// Option configures Run and Verify.
type Option func(*options)

func applyOptions(opts []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		output:           io.Discard,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger configures structured logging for the run.
//
// If nil is passed, logging is disabled.
//
// Example:
//
//	logger := nnbench.NewJSONLogger(slog.LevelDebug)
//	report, err := nnbench.Run(ctx, cfg, nnbench.WithLogger(logger))
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for the run phases.
//
// If nil is passed, metrics are discarded.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithAllocator replaces the allocator selected by Config.Allocator.
// Config.MemoryLimit still applies on top of it.
func WithAllocator(a mem.Allocator) Option {
	return func(o *options) {
		o.allocator = a
	}
}

// WithOutput sets where generation progress and vector dumps are written.
// The default discards them.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w == nil {
			w = io.Discard
		}
		o.output = w
	}
}

// WithAcceleratedKernels benchmarks k against the scalar kernels instead of
// the kernel set named by Config.ISA.
func WithAcceleratedKernels(k distance.Kernels) Option {
	return func(o *options) {
		o.accelerated = k
	}
}
