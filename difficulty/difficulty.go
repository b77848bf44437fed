// Package difficulty derives proof-of-work figures from compact targets.
package difficulty

import (
	"errors"
	"math/big"

	"github.com/robaho/fixed"
	"github.com/shopspring/decimal"
	"github.com/zeebo/errs"

	"github.com/hadv/compact"
)

// Error is the class of errors returned by this package.
var Error = errs.Class("difficulty")

var (
	// ErrZeroTarget is returned for targets, that decode to zero.
	ErrZeroTarget = errors.New("zero target")
	// ErrNegativeTarget is returned for targets with the sign bit set.
	ErrNegativeTarget = errors.New("negative target")
	// ErrFixedRange is returned when a difficulty doesn't fit a fixed.Fixed.
	ErrFixedRange = errors.New("out of fixed-point range")
)

const (
	fixedPlaces = 7
)

var (
	bigOne    = big.NewInt(1)
	oneLsh256 = new(big.Int).Lsh(bigOne, 256)

	// maxFixed is the largest value fixed.Fixed can hold.
	maxFixed = decimal.RequireFromString("99999999999.9999999")
)

// Work returns the expected number of hash attempts needed to find a hash
// at or below the target: 2^256 / (target+1).
// Returns zero for zero and negative targets.
func Work(c compact.Compact) *big.Int {
	if c.Sign() <= 0 {
		return new(big.Int)
	}
	denominator := new(big.Int).Add(c.Big(), bigOne)
	return denominator.Div(oneLsh256, denominator)
}

// TotalWork returns the sum of Work for all given targets.
func TotalWork(targets ...compact.Compact) *big.Int {
	total := new(big.Int)
	for _, c := range targets {
		total.Add(total, Work(c))
	}
	return total
}

func positiveTarget(c compact.Compact) (*big.Int, error) {
	switch c.Sign() {
	case 0:
		return nil, ErrZeroTarget
	case -1:
		return nil, ErrNegativeTarget
	}
	return c.Big(), nil
}

// Ratio returns limit / target rounded to prec decimal places.
func Ratio(limit, target compact.Compact, prec int32) (decimal.Decimal, error) {
	l, err := positiveTarget(limit)
	if err != nil {
		return decimal.Zero, Error.New("limit %s: %w", limit, err)
	}
	t, err := positiveTarget(target)
	if err != nil {
		return decimal.Zero, Error.New("target %s: %w", target, err)
	}
	return decimal.NewFromBigInt(l, 0).DivRound(decimal.NewFromBigInt(t, 0), prec), nil
}

// Fixed converts a difficulty into a 7 decimal places fixed-point number.
// The value is rounded, and ErrFixedRange is returned if it is too large.
func Fixed(d decimal.Decimal) (fixed.Fixed, error) {
	if d.Abs().GreaterThan(maxFixed) {
		return fixed.NaN, Error.Wrap(ErrFixedRange)
	}
	f := fixed.NewS(d.StringFixed(fixedPlaces))
	if f.IsNaN() {
		return f, Error.Wrap(ErrFixedRange)
	}
	return f, nil
}
