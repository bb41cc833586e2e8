//go:build amd64 || arm64

package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntToUint64(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := IntToUint64(0)
		assert.NoError(t, err)
		assert.Equal(t, uint64(0), got)
	})

	t.Run("valid max int", func(t *testing.T) {
		got, err := IntToUint64(math.MaxInt)
		assert.NoError(t, err)
		assert.Equal(t, uint64(math.MaxInt), got)
	})

	t.Run("invalid negative", func(t *testing.T) {
		_, err := IntToUint64(-1)
		assert.Error(t, err)
	})
}

func TestUint64ToInt(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := Uint64ToInt(123)
		assert.NoError(t, err)
		assert.Equal(t, 123, got)
	})

	t.Run("invalid too large", func(t *testing.T) {
		_, err := Uint64ToInt(math.MaxUint64)
		assert.Error(t, err)
	})
}

func TestMulInt(t *testing.T) {
	tests := []struct {
		name    string
		a, b    int
		want    int
		wantErr bool
	}{
		{"zero", 0, math.MaxInt, 0, false},
		{"dictionary", 4 * 1024 * 1024, 128, 512 * 1024 * 1024, false},
		{"max", math.MaxInt, 1, math.MaxInt, false},
		{"overflow", math.MaxInt/2 + 1, 2, 0, true},
		{"negative", -1, 2, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MulInt(tc.a, tc.b)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAddInt(t *testing.T) {
	got, err := AddInt(40, 2)
	assert.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = AddInt(math.MaxInt, 1)
	assert.Error(t, err)

	_, err = AddInt(-1, 1)
	assert.Error(t, err)
}
