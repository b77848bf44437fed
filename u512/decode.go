package u512

import (
	"github.com/hadv/compact"
)

// Decode converts a compact value into a 512-bit number.
// The result is exact for every value, whose magnitude fits 512 bits,
// that is always the case for sizes up to 64 bytes.
// Otherwise the magnitude is truncated modulo 2^512 and ErrOverflow is returned with it.
func Decode(c compact.Compact) (Uint512, error) {
	m, lsh := c.Aligned()
	result := From64(m).Lsh(lsh)
	if c.BitLen() > bitsInNumber {
		return result, Error.Wrap(ErrOverflow)
	}
	return result, nil
}

// MustDecode calls Decode and panics on overflow.
func MustDecode(c compact.Compact) Uint512 {
	u, err := Decode(c)
	if err != nil {
		panic(err)
	}
	return u
}

// ToCompact returns the compact form of u, see compact.FromBig.
func (u Uint512) ToCompact() compact.Compact {
	// 64 bytes never exceed the compact size limit.
	return compact.MustFromBig(u.Big())
}
