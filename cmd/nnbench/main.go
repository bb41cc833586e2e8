// Command nnbench runs the brute-force nearest neighbor benchmark.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/nnbench"
	"github.com/hupe1980/nnbench/distance"
	"github.com/hupe1980/nnbench/internal/simd"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nnbench",
		Short: "nnbench - brute-force nearest neighbor search benchmark",
		Long: `nnbench measures exhaustive nearest neighbor search over byte vectors.

It generates a random dictionary and query, finds the nearest neighbor with
the portable scalar kernels and with the fastest kernels of this CPU, and
compares both results and timings.

Distance families: l1, l2, hamming32, hamming64`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nnbench %s (%s) built %s\n", version, commit, buildTime)
		},
	})

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the scalar vs accelerated benchmark",
		RunE:  runBenchmark,
	}
	addBenchmarkFlags(runCmd)
	rootCmd.AddCommand(runCmd)

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Compare every accelerated kernel against the scalar kernels",
		Long:  "Compare the per-element distances of every available kernel set against the scalar kernels for all distance families.",
		RunE:  runVerify,
	}
	addBenchmarkFlags(verifyCmd)
	rootCmd.AddCommand(verifyCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "isa",
		Short: "Show CPU features and kernel sets",
		Run: func(cmd *cobra.Command, args []string) {
			printISA(cmd.OutOrStdout())
		},
	})

	return rootCmd
}

func addBenchmarkFlags(cmd *cobra.Command) {
	def := nnbench.DefaultConfig()
	f := cmd.Flags()
	f.String("config", getEnvStr("NNBENCH_CONFIG", ""), "YAML config file (flags override its values)")
	f.IntP("dimension", "d", getEnvInt("NNBENCH_DIMENSION", def.Dimension), "Vector length D in bytes (multiple of the block width)")
	f.IntP("size", "n", getEnvInt("NNBENCH_DICTIONARY_SIZE", def.DictionarySize), "Number of dictionary vectors N")
	f.Int("block-width", getEnvInt("NNBENCH_BLOCK_WIDTH", def.BlockWidth), "Buffer alignment W in bytes")
	f.StringP("family", "f", getEnvStr("NNBENCH_FAMILY", def.Family.String()), "Distance family: l1, l2, hamming32, hamming64")
	f.Int64("seed", getEnvInt64("NNBENCH_SEED", def.Seed), "Random seed")
	f.String("isa", getEnvStr("NNBENCH_ISA", ""), "Accelerated kernel set: auto, swar, sse2 (empty=auto)")
	f.String("allocator", getEnvStr("NNBENCH_ALLOCATOR", def.Allocator), "Vector memory: heap, mmap")
	f.String("memory-limit", getEnvStr("NNBENCH_MEMORY_LIMIT", ""), "Cap on vector memory, e.g. 2GiB (empty=unlimited)")
	f.Int("dump", getEnvInt("NNBENCH_DUMP", 0), "Print the first k dictionary vectors and the query")
	f.String("dump-format", getEnvStr("NNBENCH_DUMP_FORMAT", "decimal"), "Dump format: decimal, hex, binary")
	f.StringP("output", "o", getEnvStr("NNBENCH_OUTPUT", "text"), "Report format: text, json")
	f.String("log-level", getEnvStr("NNBENCH_LOG_LEVEL", "warn"), "Log level: debug, info, warn, error")
	f.String("log-format", getEnvStr("NNBENCH_LOG_FORMAT", "text"), "Log format: text, json")
	f.Bool("quiet", getEnvBool("NNBENCH_QUIET", false), "Suppress generation progress")
}

// loadConfig builds the config from the optional file, then applies every
// flag the user set explicitly or through its environment default.
func loadConfig(cmd *cobra.Command) (nnbench.Config, error) {
	f := cmd.Flags()
	cfg := nnbench.DefaultConfig()

	path, _ := f.GetString("config")
	fromFile := path != ""
	if fromFile {
		var err error
		if cfg, err = nnbench.LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	// Without a file every flag value applies; with one only changed flags
	// and environment defaults override it.
	apply := func(name, env string) bool {
		return !fromFile || f.Changed(name) || os.Getenv(env) != ""
	}

	if apply("dimension", "NNBENCH_DIMENSION") {
		cfg.Dimension, _ = f.GetInt("dimension")
	}
	if apply("size", "NNBENCH_DICTIONARY_SIZE") {
		cfg.DictionarySize, _ = f.GetInt("size")
	}
	if apply("block-width", "NNBENCH_BLOCK_WIDTH") {
		cfg.BlockWidth, _ = f.GetInt("block-width")
	}
	if apply("family", "NNBENCH_FAMILY") {
		name, _ := f.GetString("family")
		family, err := distance.ParseFamily(name)
		if err != nil {
			return cfg, err
		}
		cfg.Family = family
	}
	if apply("seed", "NNBENCH_SEED") {
		cfg.Seed, _ = f.GetInt64("seed")
	}
	if apply("isa", "NNBENCH_ISA") {
		cfg.ISA, _ = f.GetString("isa")
	}
	if apply("allocator", "NNBENCH_ALLOCATOR") {
		cfg.Allocator, _ = f.GetString("allocator")
	}
	if apply("memory-limit", "NNBENCH_MEMORY_LIMIT") {
		cfg.MemoryLimit, _ = f.GetString("memory-limit")
	}
	if apply("dump", "NNBENCH_DUMP") {
		cfg.Dump, _ = f.GetInt("dump")
	}
	if apply("dump-format", "NNBENCH_DUMP_FORMAT") {
		name, _ := f.GetString("dump-format")
		format, err := nnbench.ParseDumpFormat(name)
		if err != nil {
			return cfg, err
		}
		cfg.DumpFormat = format
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command) (*nnbench.Logger, error) {
	levelName, _ := cmd.Flags().GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	format, _ := cmd.Flags().GetString("log-format")
	handlerOpts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(format) {
	case "text":
		return nnbench.NewLogger(slog.NewTextHandler(cmd.ErrOrStderr(), handlerOpts)), nil
	case "json":
		return nnbench.NewLogger(slog.NewJSONHandler(cmd.ErrOrStderr(), handlerOpts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func runOptions(cmd *cobra.Command) ([]nnbench.Option, string, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, "", err
	}
	output, _ := cmd.Flags().GetString("output")
	output = strings.ToLower(output)
	if output != "text" && output != "json" {
		return nil, "", fmt.Errorf("unknown output format %q", output)
	}

	opts := []nnbench.Option{nnbench.WithLogger(logger)}
	// Progress and dumps share stdout with the text report only.
	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet && output == "text" {
		opts = append(opts, nnbench.WithOutput(cmd.OutOrStdout()))
	}
	return opts, output, nil
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, output, err := runOptions(cmd)
	if err != nil {
		return err
	}

	report, runErr := nnbench.Run(cmd.Context(), cfg, opts...)
	if report == nil {
		return runErr
	}
	if err := writeReport(cmd.OutOrStdout(), output, report.WriteText, report.WriteJSON); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, output, err := runOptions(cmd)
	if err != nil {
		return err
	}

	report, verifyErr := nnbench.Verify(cmd.Context(), cfg, opts...)
	if report == nil {
		return verifyErr
	}
	if err := writeReport(cmd.OutOrStdout(), output, report.WriteText, report.WriteJSON); err != nil {
		return errors.Join(verifyErr, err)
	}
	return verifyErr
}

func writeReport(w io.Writer, output string, text, json func(io.Writer) error) error {
	if output == "json" {
		return json(w)
	}
	return text(w)
}

func printISA(w io.Writer) {
	fmt.Fprintf(w, "GOOS=%s GOARCH=%s\n", runtime.GOOS, runtime.GOARCH)
	switch runtime.GOARCH {
	case "amd64":
		fmt.Fprintf(w, "  SSE2:   %v\n", simd.HasSSE2())
		fmt.Fprintf(w, "  POPCNT: %v\n", simd.HasPOPCNT())
	case "arm64":
		fmt.Fprintf(w, "  ASIMD (NEON): %v\n", simd.HasASIMD())
	}

	names := make([]string, 0, 4)
	for _, k := range distance.Available() {
		names = append(names, k.Name())
	}
	fmt.Fprintf(w, "Available kernels: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(w, "Scalar kernels:      %s\n", distance.Scalar().Name())
	fmt.Fprintf(w, "Accelerated kernels: %s", distance.Accelerated().Name())
	if simd.IsOverridden() {
		fmt.Fprintf(w, " (forced by %s)", simd.EnvOverride)
	}
	fmt.Fprintln(w)
}

// getEnvStr returns environment variable or default
func getEnvStr(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns environment variable as int or default
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvInt64 returns environment variable as int64 or default
func getEnvInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvBool returns environment variable as bool or default
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultVal
}
