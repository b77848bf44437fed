package compact

import (
	"errors"
	"math/big"

	"github.com/hadv/compact/internal/mathutil"
)

// FromBig returns the compact form of a non-negative number.
// Only the three most significant bytes of n are kept, the rest is truncated.
// The sign bit of the result is always clear: if the top mantissa byte
// would reach it, the mantissa is shifted one byte right and the size grows by one.
// Returns an error for negative numbers and for numbers longer than 255 bytes.
func FromBig(n *big.Int) (Compact, error) {
	if n == nil {
		return zero, errors.New("nil number")
	}
	if n.Sign() < 0 {
		return zero, errNegative
	}
	sz := mathutil.ByteLen(n.BitLen())
	var m number
	if sz <= wordBytes {
		m = number(n.Uint64()) << (8 * uint(wordBytes-sz))
	} else {
		m = number(new(big.Int).Rsh(n, 8*uint(sz-wordBytes)).Uint64())
	}
	if m&signBit != 0 {
		m >>= 8
		sz++
	}
	if sz > maxSize {
		return zero, errRange
	}
	return fromSizeAndMant(uint8(sz), m), nil
}

// MustFromBig calls FromBig and panics on error.
func MustFromBig(n *big.Int) Compact {
	c, err := FromBig(n)
	if err != nil {
		panic(err)
	}
	return c
}
