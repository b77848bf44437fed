package compact

import (
	"math/big"
)

// IsNegative returns true if the sign bit is set, and the magnitude isn't zero.
// Decode ignores the sign, so such values decode as positive numbers.
func (c Compact) IsNegative() bool {
	return c.SignBit() && !c.IsZero()
}

// Sign returns -1 if c is negative, 0 if it decodes to zero, 1 otherwise.
func (c Compact) Sign() int {
	switch {
	case c.IsZero():
		return 0
	case c.SignBit():
		return -1
	default:
		return 1
	}
}

// Signed returns the decoded magnitude negated if c is negative.
func (c Compact) Signed() *big.Int {
	result := c.Big()
	if c.IsNegative() {
		result.Neg(result)
	}
	return result
}

// Abs returns c with the sign bit cleared.
func (c Compact) Abs() Compact {
	return c &^ signBit
}

// FromSignedBig is FromBig for any sign.
// Negative numbers get the sign bit set, zero is never negative.
func FromSignedBig(n *big.Int) (Compact, error) {
	if n == nil || n.Sign() >= 0 {
		return FromBig(n)
	}
	c, err := FromBig(new(big.Int).Neg(n))
	if err != nil {
		return zero, err
	}
	if !c.IsZero() {
		c |= signBit
	}
	return c, nil
}
