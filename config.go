package nnbench

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/nnbench/distance"
	"github.com/hupe1980/nnbench/internal/conv"
	"github.com/hupe1980/nnbench/internal/mem"
)

const (
	// MinBlockWidth is the alignment every kernel requires.
	MinBlockWidth = 16

	// MaxDimension is the largest dimension whose worst-case L2 distance
	// (every byte pair differing by 255) still fits in an int32.
	MaxDimension = (math.MaxInt32 / (255 * 255)) / MinBlockWidth * MinBlockWidth
)

// Config describes one benchmark run.
type Config struct {
	// Dimension is the vector length D in bytes. Hamming distances treat a
	// vector as 8*D bits.
	Dimension int `yaml:"dimension" json:"dimension"`

	// DictionarySize is the number of dictionary vectors N.
	DictionarySize int `yaml:"dictionary_size" json:"dictionary_size"`

	// BlockWidth is the alignment W of every buffer; D must be a multiple of it.
	BlockWidth int `yaml:"block_width" json:"block_width"`

	// Family is the distance both scans compute.
	Family distance.Family `yaml:"family" json:"family"`

	// Seed makes generated data reproducible.
	Seed int64 `yaml:"seed" json:"seed"`

	// ISA names the accelerated kernel set ("", "auto", "swar", "sse2", ...).
	ISA string `yaml:"isa,omitempty" json:"isa,omitempty"`

	// Allocator selects where vectors live: "heap" or "mmap".
	Allocator string `yaml:"allocator,omitempty" json:"allocator,omitempty"`

	// MemoryLimit caps the bytes handed out by the allocator, e.g. "2GiB".
	// Empty means unlimited.
	MemoryLimit string `yaml:"memory_limit,omitempty" json:"memory_limit,omitempty"`

	// Dump prints the first Dump dictionary vectors and the query before
	// scanning.
	Dump int `yaml:"dump,omitempty" json:"dump,omitempty"`

	// DumpFormat selects how dumped bytes are rendered.
	DumpFormat DumpFormat `yaml:"dump_format,omitempty" json:"dump_format,omitempty"`
}

// DefaultConfig returns the configuration of the classic benchmark: 4M
// vectors of 128 bytes under L2.
func DefaultConfig() Config {
	return Config{
		Dimension:      128,
		DictionarySize: 4 * 1024 * 1024,
		BlockWidth:     MinBlockWidth,
		Family:         distance.L2,
		Seed:           5489,
		Allocator:      mem.KindHeap.String(),
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. Unknown keys are
// rejected. The result is not validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.BlockWidth < MinBlockWidth || c.BlockWidth&(c.BlockWidth-1) != 0 {
		return &ErrInvalidBlockWidth{BlockWidth: c.BlockWidth}
	}
	if c.Dimension <= 0 || c.Dimension%c.BlockWidth != 0 || c.Dimension > MaxDimension {
		return &ErrInvalidDimension{Dimension: c.Dimension, BlockWidth: c.BlockWidth}
	}
	if c.DictionarySize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDictionarySize, c.DictionarySize)
	}
	if _, err := conv.MulInt(c.DictionarySize, c.Dimension); err != nil {
		return fmt.Errorf("%w: %d vectors of %d bytes: %w", ErrInvalidDictionarySize, c.DictionarySize, c.Dimension, err)
	}
	if !c.Family.Valid() {
		return &ErrInvalidFamily{Family: c.Family, cause: distance.ErrUnknownFamily}
	}
	if _, err := distance.Lookup(c.ISA); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := mem.ParseKind(c.Allocator); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.memoryLimitBytes(); err != nil {
		return err
	}
	if c.Dump < 0 {
		return fmt.Errorf("%w: dump count %d", ErrInvalidConfig, c.Dump)
	}
	if !c.DumpFormat.Valid() {
		return fmt.Errorf("%w: dump format %d", ErrInvalidConfig, uint8(c.DumpFormat))
	}
	return nil
}

// DictionaryBytes returns N*D. It assumes a validated config.
func (c Config) DictionaryBytes() int64 {
	return int64(c.DictionarySize) * int64(c.Dimension)
}

func (c Config) memoryLimitBytes() (int64, error) {
	if c.MemoryLimit == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(c.MemoryLimit)
	if err != nil {
		return 0, fmt.Errorf("%w: memory limit %q: %w", ErrInvalidConfig, c.MemoryLimit, err)
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("%w: memory limit %q too large", ErrInvalidConfig, c.MemoryLimit)
	}
	return int64(n), nil
}
