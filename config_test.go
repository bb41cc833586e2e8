package nnbench

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/nnbench/distance"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 128, cfg.Dimension)
	assert.Equal(t, 4*1024*1024, cfg.DictionarySize)
	assert.Equal(t, 16, cfg.BlockWidth)
	assert.Equal(t, distance.L2, cfg.Family)
	assert.Equal(t, int64(512*1024*1024), cfg.DictionaryBytes())
}

func TestMaxDimension(t *testing.T) {
	assert.Equal(t, 33024, MaxDimension)
	assert.Zero(t, MaxDimension%MinBlockWidth)
	assert.LessOrEqual(t, int64(MaxDimension)*255*255, int64(math.MaxInt32))
	assert.Greater(t, int64(MaxDimension+MinBlockWidth)*255*255, int64(math.MaxInt32))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		check  func(t *testing.T, err error)
	}{
		{"Valid", func(*Config) {}, func(t *testing.T, err error) { assert.NoError(t, err) }},
		{"EmptyDictionary", func(c *Config) { c.DictionarySize = 0 }, func(t *testing.T, err error) { assert.NoError(t, err) }},
		{"MaxDimension", func(c *Config) { c.Dimension = MaxDimension }, func(t *testing.T, err error) { assert.NoError(t, err) }},
		{"WideBlocks", func(c *Config) { c.BlockWidth = 64 }, func(t *testing.T, err error) { assert.NoError(t, err) }},
		{"DimensionNotMultiple", func(c *Config) { c.Dimension = 100 }, func(t *testing.T, err error) {
			var e *ErrInvalidDimension
			require.ErrorAs(t, err, &e)
			assert.Equal(t, 100, e.Dimension)
			assert.Equal(t, 16, e.BlockWidth)
		}},
		{"DimensionZero", func(c *Config) { c.Dimension = 0 }, func(t *testing.T, err error) {
			var e *ErrInvalidDimension
			assert.ErrorAs(t, err, &e)
		}},
		{"DimensionTooLarge", func(c *Config) { c.Dimension = MaxDimension + 16 }, func(t *testing.T, err error) {
			var e *ErrInvalidDimension
			assert.ErrorAs(t, err, &e)
		}},
		{"BlockWidthSmall", func(c *Config) { c.BlockWidth = 8 }, func(t *testing.T, err error) {
			var e *ErrInvalidBlockWidth
			require.ErrorAs(t, err, &e)
			assert.Equal(t, 8, e.BlockWidth)
		}},
		{"BlockWidthNotPow2", func(c *Config) { c.BlockWidth = 48 }, func(t *testing.T, err error) {
			var e *ErrInvalidBlockWidth
			assert.ErrorAs(t, err, &e)
		}},
		{"NegativeSize", func(c *Config) { c.DictionarySize = -1 }, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrInvalidDictionarySize)
		}},
		{"OverflowingSize", func(c *Config) { c.DictionarySize = math.MaxInt / 64 }, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrInvalidDictionarySize)
		}},
		{"Family", func(c *Config) { c.Family = distance.Family(42) }, func(t *testing.T, err error) {
			var e *ErrInvalidFamily
			require.ErrorAs(t, err, &e)
			assert.ErrorIs(t, err, distance.ErrUnknownFamily)
		}},
		{"ISA", func(c *Config) { c.ISA = "avx9000" }, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.ErrorIs(t, err, distance.ErrUnknownKernels)
		}},
		{"Allocator", func(c *Config) { c.Allocator = "gpu" }, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrInvalidConfig)
		}},
		{"MemoryLimit", func(c *Config) { c.MemoryLimit = "lots" }, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrInvalidConfig)
		}},
		{"Dump", func(c *Config) { c.Dump = -2 }, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrInvalidConfig)
		}},
		{"DumpFormat", func(c *Config) { c.DumpFormat = DumpFormat(7) }, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrInvalidConfig)
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			tc.check(t, cfg.Validate())
		})
	}
}

func TestConfig_MemoryLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MemoryLimit = "2GiB"
	n, err := cfg.memoryLimitBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(2<<30), n)

	cfg.MemoryLimit = "512 MB"
	n, err = cfg.memoryLimitBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(512_000_000), n)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nnbench.yaml")
	data := `
dimension: 256
dictionary_size: 1000
family: hamming-64
seed: 7
allocator: mmap
memory_limit: 1GiB
dump: 3
dump_format: binary
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 256, cfg.Dimension)
	assert.Equal(t, 1000, cfg.DictionarySize)
	assert.Equal(t, 16, cfg.BlockWidth, "unset keys keep their defaults")
	assert.Equal(t, distance.Hamming64, cfg.Family)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, "mmap", cfg.Allocator)
	assert.Equal(t, 3, cfg.Dump)
	assert.Equal(t, DumpBinary, cfg.DumpFormat)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("dimensions: 64\n"), 0o600))
	_, err = LoadConfig(unknown)
	assert.Error(t, err)

	family := filepath.Join(dir, "family.yaml")
	require.NoError(t, os.WriteFile(family, []byte("family: cosine\n"), 0o600))
	_, err = LoadConfig(family)
	assert.Error(t, err)
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Family = distance.Hamming32
	cfg.DumpFormat = DumpHex

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "family: hamming32")
	assert.Contains(t, string(out), "dump_format: hex")

	var back Config
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, cfg, back)
}

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, (&ErrInvalidDimension{Dimension: 20, BlockWidth: 16}).Error(), "invalid dimension: 20")
	assert.Contains(t, (&ErrInvalidBlockWidth{BlockWidth: 3}).Error(), "invalid block width: 3")
	assert.Equal(t, "invalid distance family: l2", (&ErrInvalidFamily{Family: distance.L2}).Error())
}
