// Package compact implements the compact target encoding, where the byte length
// of an unsigned magnitude and its three most significant bytes are stored
// in a single 32-bit number.
// It is how proof-of-work targets are represented in block headers.
package compact

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/hadv/compact/internal/mathutil"
)

var (
	// JSONMode defines the way all values are marshaled into json, see JSONMode* constants.
	// This variable is not thread-safe, so this should be changed on program start.
	JSONMode = JSONModeHex
)

const (
	// JSONModeHex produces values as hex strings, like `"0x18abcdef"`.
	JSONModeHex = iota
	// JSONModeNumber marshals values as numbers, like `413912559`.
	JSONModeNumber
	// JSONModeDecimal marshals the decoded magnitude as a decimal string.
	// Such values can't be unmarshaled back.
	JSONModeDecimal
)

var (
	errRange    = errors.New("value out of range")
	errNegative = errors.New("negative value")
	errEmpty    = errors.New("empty input")
)

type posError struct {
	pos int
	err string
}

func newPosError(err string, pos int) *posError {
	return &posError{err: err, pos: pos}
}

func (pe posError) Error() string {
	return pe.err + fmt.Sprintf(" at pos %d", pe.pos)
}

// Compact is a packed unsigned magnitude.
// The top byte is the magnitude's length in bytes, the lower 3 bytes
// are its most significant bytes. Bit 23 is reserved as a sign flag.
// See layout.go for the details.
type Compact number

// Decode converts a compact value into the magnitude it encodes.
// The sign bit is masked off and not reported, see Compact.Signed for a sign-aware version.
// Decode is total: it never fails and never panics, the result is exact for every size.
func Decode(compact uint32) *big.Int {
	m, lsh := Compact(compact).Aligned()
	result := new(big.Int).SetUint64(m)
	return result.Lsh(result, lsh)
}

// FromSizeAndWord returns a compact value for given size and mantissa bytes.
// Returns an error if word doesn't fit 24 bits.
func FromSizeAndWord(size uint8, word uint32) (Compact, error) {
	if word > mantMask {
		return zero, errRange
	}
	return fromSizeAndMant(size, number(word)), nil
}

// FromString parses a hex (0x-prefixed) or a decimal 32-bit number.
func FromString(s string) (Compact, error) {
	s, offset, err := prepareString(s)
	if err != nil {
		return zero, err
	}
	base := uint64(10)
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
		offset += 2
	}
	var result uint64
	for i, r := range s {
		d, ok := digitValue(r, base)
		if !ok {
			pe := newPosError(fmt.Sprintf("unexpected symbol %q", r), offset+i+1) // +1 to start indices from 1.
			return zero, fmt.Errorf("parsing failed: %w", pe)
		}
		result = result*base + d
		if result > math.MaxUint32 {
			return zero, errRange
		}
	}
	return Compact(result), nil
}

// MustFromString calls FromString and panics on error.
func MustFromString(s string) Compact {
	c, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return c
}

func digitValue(r rune, base uint64) (uint64, bool) {
	var d uint64
	switch {
	case '0' <= r && r <= '9':
		d = uint64(r - '0')
	case 'a' <= r && r <= 'f':
		d = uint64(r-'a') + 10
	case 'A' <= r && r <= 'F':
		d = uint64(r-'A') + 10
	default:
		return 0, false
	}
	return d, d < base
}

// prepareString cleans the string from spaces, " and + symbols.
// offset is the number of bytes removed from the beginning.
func prepareString(s string) (prepared string, offset int, err error) {
	s, offset = trimSpaces(s, offset)
	if len(s) > 0 && s[0] == '"' {
		s = s[1:]
		offset++
		if len(s) > 0 && s[len(s)-1] == '"' {
			s = s[:len(s)-1]
		}
		s, offset = trimSpaces(s, offset)
	}
	if len(s) == 0 {
		return "", 0, errEmpty
	}
	if s[0] == '-' {
		return "", 0, errNegative
	}
	if s[0] == '+' {
		offset++
		s = s[1:]
	}
	return s, offset, nil
}

func trimSpaces(s string, offset int) (string, int) {
	trimmed := strings.TrimLeftFunc(s, unicode.IsSpace)
	offset += len(s) - len(trimmed)
	return strings.TrimRightFunc(trimmed, unicode.IsSpace), offset
}

// Size returns the length of the encoded magnitude in bytes.
func (c Compact) Size() uint8 {
	return size(c)
}

// Word returns the mantissa without the sign bit.
func (c Compact) Word() uint32 {
	return word(c)
}

// Mantissa returns all 24 lower bits as is, including the sign bit.
func (c Compact) Mantissa() uint32 {
	return mant(c)
}

// SignBit returns true if bit 23 is set.
func (c Compact) SignBit() bool {
	return c&signBit != 0
}

// Uint32 returns c as a packed number.
func (c Compact) Uint32() uint32 {
	return uint32(c)
}

// Big returns the decoded magnitude, see Decode.
func (c Compact) Big() *big.Int {
	return Decode(uint32(c))
}

// Aligned returns the decoded magnitude as m << lsh, where m has at most 23 bits.
func (c Compact) Aligned() (m uint64, lsh uint) {
	sz, w := split(c)
	lsh, rsh := mathutil.ByteShift(sz, wordBytes)
	return uint64(w >> rsh), lsh
}

// BitLen returns the bit length of the decoded magnitude.
func (c Compact) BitLen() int {
	m, lsh := c.Aligned()
	if m == 0 {
		return 0
	}
	return mathutil.BinaryDigits(m) + int(lsh)
}

// IsZero returns true if c decodes to zero.
func (c Compact) IsZero() bool {
	m, _ := c.Aligned()
	return m == 0
}

// Eq returns true, if both values decode to the same magnitude.
func (c Compact) Eq(other Compact) bool {
	if c == other {
		return true
	}
	return c.Cmp(other) == 0
}

// Cmp compares decoded magnitudes.
// Returns -1 if a < b, 0 if a == b, 1 if a > b
func (c Compact) Cmp(other Compact) int {
	l1, l2 := c.BitLen(), other.BitLen()
	if l1 != l2 || l1 == 0 {
		return mathutil.IntCmp(l1, l2)
	}
	m1, s1 := c.Aligned()
	m2, s2 := other.Aligned()
	// with equal bit lengths the shifts differ by less than a mantissa width.
	if s1 > s2 {
		m1 <<= s1 - s2
	} else {
		m2 <<= s2 - s1
	}
	return mathutil.Uint64Cmp(m1, m2)
}

// String returns c as a hex number, like 0x18abcdef.
func (c Compact) String() string {
	return fmt.Sprintf("0x%08x", uint32(c))
}

// GoString returns debug string representation.
func (c Compact) GoString() string {
	sz, w := split(c)
	return c.String() + fmt.Sprintf(" {%d, 0x%06x}", sz, w)
}

// MarshalJSON marshals value according to current JSONMode.
// See JSONMode and JSONMode* constants.
func (c Compact) MarshalJSON() ([]byte, error) {
	return c.toJSON(JSONMode), nil
}

func (c Compact) toJSON(mode int) []byte {
	switch mode {
	case JSONModeNumber:
		return []byte(strconv.FormatUint(uint64(c), 10))
	case JSONModeDecimal:
		return []byte(`"` + c.Big().String() + `"`)
	default:
		return []byte(`"` + c.String() + `"`)
	}
}

// UnmarshalJSON unmarshals a number or a hex/decimal string.
func (c *Compact) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	value, err := FromString(string(data))
	if err != nil {
		return err
	}
	*c = value
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Compact) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Compact) UnmarshalText(data []byte) error {
	value, err := FromString(string(data))
	if err != nil {
		return err
	}
	*c = value
	return nil
}
