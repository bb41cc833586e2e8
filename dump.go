package nnbench

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/nnbench/vectorstore"
)

// DumpFormat selects how DumpVectors renders a byte.
type DumpFormat uint8

const (
	// DumpDecimal prints bytes as right-aligned decimal numbers.
	DumpDecimal DumpFormat = iota
	// DumpHex prints bytes as two hex digits.
	DumpHex
	// DumpBinary prints bytes as eight '#' (set) or '.' (clear) marks, most
	// significant bit first.
	DumpBinary

	numDumpFormats
)

// Valid reports whether f is a known format.
func (f DumpFormat) Valid() bool {
	return f < numDumpFormats
}

func (f DumpFormat) String() string {
	switch f {
	case DumpDecimal:
		return "decimal"
	case DumpHex:
		return "hex"
	case DumpBinary:
		return "binary"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// ParseDumpFormat parses "decimal", "hex" or "binary".
func ParseDumpFormat(s string) (DumpFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "decimal", "dec":
		return DumpDecimal, nil
	case "hex":
		return DumpHex, nil
	case "binary", "bin":
		return DumpBinary, nil
	default:
		return 0, fmt.Errorf("%w: dump format %q", ErrInvalidConfig, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f DumpFormat) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: dump format %d", ErrInvalidConfig, uint8(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *DumpFormat) UnmarshalText(text []byte) error {
	v, err := ParseDumpFormat(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// BinaryString renders b as '#' for set bits and '.' for clear bits, most
// significant bit first.
func BinaryString(b byte) string {
	var buf [8]byte
	for i := range buf {
		if b&(0x80>>i) != 0 {
			buf[i] = '#'
		} else {
			buf[i] = '.'
		}
	}
	return string(buf[:])
}

func (f DumpFormat) appendByte(dst []byte, b byte) []byte {
	switch f {
	case DumpHex:
		return fmt.Appendf(dst, "%02X ", b)
	case DumpBinary:
		return append(append(dst, BinaryString(b)...), ' ')
	default:
		return fmt.Appendf(dst, "%3d ", b)
	}
}

// DumpVectors writes the first limit dictionary vectors followed by the
// query, one vector per line prefixed with its index. A limit beyond the
// dictionary size prints the whole dictionary.
func DumpVectors(w io.Writer, dict *vectorstore.Dictionary, query *vectorstore.Vector, limit int, format DumpFormat) error {
	bw := bufio.NewWriter(w)
	limit = min(max(limit, 0), dict.Len())

	var line []byte
	writeVector := func(i int, v []byte) {
		line = fmt.Appendf(line[:0], "%2d:  ", i)
		for _, b := range v {
			line = format.appendByte(line, b)
		}
		line = append(line, '\n')
		_, _ = bw.Write(line)
	}

	_, _ = bw.WriteString("[dictionary vectors]\n")
	for i := 0; i < limit; i++ {
		writeVector(i, dict.At(i))
	}
	if query != nil {
		_, _ = bw.WriteString("[query vectors]\n")
		writeVector(0, query.Bytes())
	}
	return bw.Flush()
}
