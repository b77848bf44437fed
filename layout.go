package compact

// Bit layout of a compact value:
//   31      23                      0
//   ________|_______________________
//   sssssssszmmmmmmmmmmmmmmmmmmmmmmm
// s - size in bytes of the encoded magnitude,
// z - sign flag,
// m - the most significant bits of the magnitude.
const (
	sizeBits = 8
	mantBits = 24

	// wordBytes is the number of magnitude bytes stored in a compact value.
	wordBytes = mantBits / 8

	sizeMask = 1<<sizeBits - 1
	mantMask = 1<<mantBits - 1
	signBit  = 1 << (mantBits - 1)
	wordMask = mantMask &^ signBit

	maxSize = sizeMask
)

type number = uint32

var (
	zero = Compact(0)
)

func size(c Compact) uint8 {
	return uint8(c >> mantBits & sizeMask)
}

func mant(c Compact) number {
	return number(c & mantMask)
}

func word(c Compact) number {
	return number(c & wordMask)
}

func split(c Compact) (sz uint8, w number) {
	return size(c), word(c)
}

func fromSizeAndMant(sz uint8, m number) Compact {
	return Compact(number(sz)<<mantBits | (m & mantMask))
}
