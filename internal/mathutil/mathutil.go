package mathutil

import (
	"math/bits"
	"unsafe"
)

var (
	// 19 zeros, the width of the largest power of ten fitting a uint64.
	manyZeros = "0000000000000000000"
)

const (
	// MaxDecimalChunk is the largest power of ten, that fits a uint64.
	MaxDecimalChunk = 1e19
	// DecimalChunkDigits is the number of digits in MaxDecimalChunk-1.
	DecimalChunkDigits = 19
)

// BinaryDigits returns the minimum number of bits required to represent value.
func BinaryDigits(value uint64) int {
	return int(8*unsafe.Sizeof(uint64(0))) - bits.LeadingZeros64(value)
}

// ByteLen returns the number of bytes needed to hold bitLen bits.
func ByteLen(bitLen int) int {
	if bitLen <= 0 {
		return 0
	}
	return (bitLen + 7) / 8
}

// ByteShift returns the shifts, that place a width-byte number
// as the most significant bytes of a size-byte number.
// For size <= width the number has to be shifted right, otherwise left.
// Only one of the results is non-zero.
func ByteShift(size, width uint8) (lsh, rsh uint) {
	if size <= width {
		return 0, 8 * uint(width-size)
	}
	return 8 * uint(size-width), 0
}

// Uint64Cmp compares two numbers.
// Returns -1 if a < b, 0 if a == b, 1 if a > b
func Uint64Cmp(a, b uint64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

// IntCmp is Uint64Cmp for ints.
func IntCmp(a, b int) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

// ZeroPad returns a string of count zeros, count must not exceed DecimalChunkDigits.
func ZeroPad(count int) string {
	if count <= 0 {
		return ""
	}
	return manyZeros[:count]
}
