package nnbench

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/nnbench/distance"
	"github.com/hupe1980/nnbench/index"
)

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	l.WithRunID("abc").WithFamily(distance.Hamming32).WithKernels(distance.Scalar()).
		LogScan(ctx, 10, index.Result{Distance: 3, Index: 4}, time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "run_id=abc")
	assert.Contains(t, out, "family=hamming32")
	assert.Contains(t, out, "kernels=generic")
	assert.Contains(t, out, "index=4")
	assert.Contains(t, out, "distance=3")
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx := context.Background()

	l.LogAllocation(ctx, "dictionary", "heap", 1024, nil)
	assert.Empty(t, buf.String(), "successful allocations log at debug")

	l.LogAllocation(ctx, "dictionary", "heap", 1024, errors.New("no memory"))
	assert.Contains(t, buf.String(), "allocation failed")
	assert.Contains(t, buf.String(), "error=\"no memory\"")

	buf.Reset()
	l.LogVerify(ctx, 10, 0)
	assert.Empty(t, buf.String())
	l.LogVerify(ctx, 10, 2)
	assert.Contains(t, buf.String(), "mismatches=2")

	buf.Reset()
	l.LogGeneration(ctx, 2048, 5489, time.Second)
	assert.Contains(t, buf.String(), "seed=5489")
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	l.LogScan(context.Background(), 1, index.NoCandidate(), 0)
}
