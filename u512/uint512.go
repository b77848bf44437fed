// Package u512 implements a fixed-width 512-bit unsigned integer,
// wide enough to hold any compact target of up to 64 bytes.
// Values are immutable, all operations return a new value.
package u512

import (
	"errors"
	"math/big"
	"math/bits"

	"github.com/zeebo/errs"
)

// Error is the class of errors returned by this package.
var Error = errs.Class("u512")

var (
	// ErrOverflow is returned when a value doesn't fit 512 bits.
	ErrOverflow = errors.New("value overflows 512 bits")
)

const (
	numLimbs     = 8
	bitsInLimb   = 64
	bitsInNumber = numLimbs * bitsInLimb
	bytesInLimb  = bitsInLimb / 8
	// BytesLen is the size of a big-endian representation of a value.
	BytesLen = numLimbs * bytesInLimb
)

var (
	zero Uint512

	// Max is the maximum possible value, 2^512-1.
	Max = Uint512{
		^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0),
		^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0),
	}

	maxBig = Max.Big()
)

// Uint512 is an unsigned 512-bit number.
// Limbs are stored in little-endian order, u[0] holds the least significant bits.
type Uint512 [numLimbs]uint64

// From64 returns a value for given uint64 number.
func From64(v uint64) Uint512 {
	return Uint512{v}
}

// FromBig returns a value for given big integer.
// accurate is false if b is negative, or doesn't fit 512 bits.
// In the last case the result is b modulo 2^512, and zero for negative numbers.
func FromBig(b *big.Int) (out Uint512, accurate bool) {
	if b.Sign() < 0 {
		return zero, false
	}
	accurate = b.BitLen() <= bitsInNumber
	if !accurate {
		b = new(big.Int).And(b, maxBig)
	}
	var buf [BytesLen]byte
	b.FillBytes(buf[:])
	return FromBytes(buf), accurate
}

// FromBytes returns a value from its big-endian representation.
func FromBytes(data [BytesLen]byte) (out Uint512) {
	for i := range out {
		var limb uint64
		offset := BytesLen - (i+1)*bytesInLimb
		for _, b := range data[offset : offset+bytesInLimb] {
			limb = limb<<8 | uint64(b)
		}
		out[i] = limb
	}
	return out
}

// Bytes returns the big-endian representation of u.
func (u Uint512) Bytes() (data [BytesLen]byte) {
	for i, limb := range u {
		offset := BytesLen - (i+1)*bytesInLimb
		for j := bytesInLimb - 1; j >= 0; j-- {
			data[offset+j] = byte(limb)
			limb >>= 8
		}
	}
	return data
}

// Big returns u as a big integer.
func (u Uint512) Big() *big.Int {
	data := u.Bytes()
	return new(big.Int).SetBytes(data[:])
}

// Uint64 returns the lower 64 bits of u.
func (u Uint512) Uint64() uint64 {
	return u[0]
}

// IsUint64 returns true if u fits an uint64.
func (u Uint512) IsUint64() bool {
	return u.BitLen() <= bitsInLimb
}

// IsZero returns true if u == 0.
func (u Uint512) IsZero() bool {
	return u == zero
}

// BitLen returns the minimum number of bits required to represent u.
func (u Uint512) BitLen() int {
	for i := numLimbs - 1; i >= 0; i-- {
		if u[i] != 0 {
			return i*bitsInLimb + bits.Len64(u[i])
		}
	}
	return 0
}

// Eq returns u == other.
func (u Uint512) Eq(other Uint512) bool {
	return u == other
}

// Cmp compares two values.
// Returns -1 if a < b, 0 if a == b, 1 if a > b
func (u Uint512) Cmp(other Uint512) int {
	for i := numLimbs - 1; i >= 0; i-- {
		switch {
		case u[i] > other[i]:
			return 1
		case u[i] < other[i]:
			return -1
		}
	}
	return 0
}

// Or returns u | other.
func (u Uint512) Or(other Uint512) (out Uint512) {
	for i := range u {
		out[i] = u[i] | other[i]
	}
	return out
}

// And returns u & other.
func (u Uint512) And(other Uint512) (out Uint512) {
	for i := range u {
		out[i] = u[i] & other[i]
	}
	return out
}

// Lsh returns u << n. Bits shifted past the 512th are lost.
func (u Uint512) Lsh(n uint) (out Uint512) {
	if n >= bitsInNumber {
		return zero
	}
	limbs, shift := int(n/bitsInLimb), n%bitsInLimb
	for i := limbs; i < numLimbs; i++ {
		out[i] = u[i-limbs] << shift
		if shift > 0 && i > limbs {
			out[i] |= u[i-limbs-1] >> (bitsInLimb - shift)
		}
	}
	return out
}

// Rsh returns u >> n.
func (u Uint512) Rsh(n uint) (out Uint512) {
	if n >= bitsInNumber {
		return zero
	}
	limbs, shift := int(n/bitsInLimb), n%bitsInLimb
	for i := 0; i+limbs < numLimbs; i++ {
		out[i] = u[i+limbs] >> shift
		if shift > 0 && i+limbs+1 < numLimbs {
			out[i] |= u[i+limbs+1] << (bitsInLimb - shift)
		}
	}
	return out
}

// Add returns u + other, and true if the sum overflows.
func (u Uint512) Add(other Uint512) (out Uint512, overflow bool) {
	var carry uint64
	for i := range u {
		out[i], carry = bits.Add64(u[i], other[i], carry)
	}
	return out, carry != 0
}

// quoRem64 returns u / d and u % d.
func (u Uint512) quoRem64(d uint64) (q Uint512, r uint64) {
	for i := numLimbs - 1; i >= 0; i-- {
		q[i], r = bits.Div64(r, u[i], d)
	}
	return q, r
}

// mulAdd64 returns u * m + a, and the bits that didn't fit.
func (u Uint512) mulAdd64(m, a uint64) (out Uint512, carry uint64) {
	carry = a
	for i := range u {
		hi, lo := bits.Mul64(u[i], m)
		var c uint64
		out[i], c = bits.Add64(lo, carry, 0)
		carry = hi + c
	}
	return out, carry
}
