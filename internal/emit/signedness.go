package emit

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Signedness -linecomment -output=signedness_string.go

// Signedness is the element type of generated byte arrays. It decides both
// the declared element type and how each byte is written as a literal, so
// the two can never disagree.
type Signedness int

const (
	// Signed elements are 8-bit two's complement: bytes >= 128 are written
	// as value-256.
	Signed Signedness = iota // signed
	// Unsigned elements take the byte value unchanged.
	Unsigned // unsigned
)

// ParseSignedness parses "signed" or "unsigned".
func ParseSignedness(s string) (Signedness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case Signed.String():
		return Signed, nil
	case Unsigned.String():
		return Unsigned, nil
	default:
		return 0, fmt.Errorf("unknown signedness %q (want signed or unsigned)", s)
	}
}

// Value returns the integer a byte denotes under s.
func (s Signedness) Value(b byte) int {
	if s == Signed {
		return int(int8(b))
	}

	return int(b)
}
