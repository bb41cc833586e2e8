package distance

import (
	"fmt"
	"strings"
)

// Family selects which distance a scan computes.
type Family uint8

const (
	// L1 is the sum of absolute byte differences.
	L1 Family = iota
	// L2 is the sum of squared byte differences.
	L2
	// Hamming32 counts differing bits over 32-bit words.
	Hamming32
	// Hamming64 counts differing bits over 64-bit words.
	Hamming64

	numFamilies
)

// Families returns all distance families in declaration order.
func Families() []Family {
	return []Family{L1, L2, Hamming32, Hamming64}
}

// Valid reports whether f names a known family.
func (f Family) Valid() bool {
	return f < numFamilies
}

func (f Family) String() string {
	switch f {
	case L1:
		return "l1"
	case L2:
		return "l2"
	case Hamming32:
		return "hamming32"
	case Hamming64:
		return "hamming64"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// ParseFamily parses a family name. It accepts the String forms and a few
// common spellings ("hamming-32", "ham64").
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l1", "manhattan":
		return L1, nil
	case "l2", "sql2", "squared-l2":
		return L2, nil
	case "hamming32", "hamming-32", "ham32":
		return Hamming32, nil
	case "hamming64", "hamming-64", "ham64", "hamming":
		return Hamming64, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFamily, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Family) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFamily, uint8(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Family) UnmarshalText(text []byte) error {
	v, err := ParseFamily(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
