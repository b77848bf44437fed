package u512

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/hadv/compact/internal/mathutil"
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

// FromString parses a decimal or a 0x-prefixed hex number.
// Surrounding spaces and quotes are ignored.
func FromString(s string) (Uint512, error) {
	s, offset := prepareString(s)
	if len(s) == 0 {
		return zero, Error.New("empty input")
	}
	base := uint64(10)
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
		offset += 2
	}
	var (
		result Uint512
		carry  uint64
	)
	for i, r := range s {
		d, ok := digitValue(r, base)
		if !ok {
			// +1 to start indices from 1.
			return zero, Error.Wrap(fmt.Errorf("parsing failed: %w", newPosError(fmt.Sprintf("unexpected symbol %q", r), offset+i+1)))
		}
		result, carry = result.mulAdd64(base, d)
		if carry != 0 {
			return zero, Error.Wrap(ErrOverflow)
		}
	}
	return result, nil
}

// MustFromString calls FromString and panics on error.
func MustFromString(s string) Uint512 {
	u, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return u
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
func prepareString(s string) (prepared string, offset int) {
	s, offset = trimSpaces(s, offset)
	if len(s) > 0 && s[0] == '"' {
		s = s[1:]
		offset++
		if len(s) > 0 && s[len(s)-1] == '"' {
			s = s[:len(s)-1]
		}
		s, offset = trimSpaces(s, offset)
	}
	if len(s) > 0 && s[0] == '+' {
		offset++
		s = s[1:]
	}
	return s, offset
}

func trimSpaces(s string, offset int) (string, int) {
	trimmed := strings.TrimLeftFunc(s, unicode.IsSpace)
	offset += len(s) - len(trimmed)
	return strings.TrimRightFunc(trimmed, unicode.IsSpace), offset
}

// String returns the decimal representation of u.
func (u Uint512) String() string {
	var builder strings.Builder
	u.formatDecimal(&builder)
	return builder.String()
}

// Text returns the representation of u in base 10 or 16.
// Other bases fall back to math/big.
func (u Uint512) Text(base int) string {
	var builder strings.Builder
	switch base {
	case 10:
		u.formatDecimal(&builder)
	case 16:
		u.formatHex(&builder, false)
	default:
		return u.Big().Text(base)
	}
	return builder.String()
}

// Format implements fmt.Formatter.
// Supports 'd', 's', 'v' for decimals and 'x', 'X' for hex; '#' adds the 0x prefix.
// Width and precision are ignored.
func (u Uint512) Format(fs fmt.State, c rune) {
	switch c {
	case 'x', 'X':
		if fs.Flag('#') {
			io.WriteString(fs, "0x")
		}
		u.formatHex(fs, c == 'X')
	case 'd', 's', 'v':
		u.formatDecimal(fs)
	default:
		fmt.Fprintf(fs, "%%!%c(u512.Uint512=%s)", c, u.String())
	}
}

// formatDecimal writes u in chunks of 19 digits, the most significant one first.
func (u Uint512) formatDecimal(w io.Writer) {
	if u.IsZero() {
		io.WriteString(w, "0")
		return
	}
	var chunks []uint64
	for !u.IsZero() {
		var r uint64
		u, r = u.quoRem64(mathutil.MaxDecimalChunk)
		chunks = append(chunks, r)
	}
	io.WriteString(w, strconv.FormatUint(chunks[len(chunks)-1], 10))
	for i := len(chunks) - 2; i >= 0; i-- {
		s := strconv.FormatUint(chunks[i], 10)
		io.WriteString(w, mathutil.ZeroPad(mathutil.DecimalChunkDigits-len(s)))
		io.WriteString(w, s)
	}
}

func (u Uint512) formatHex(w io.Writer, upper bool) {
	format, padded := "%x", "%016x"
	if upper {
		format, padded = "%X", "%016X"
	}
	i := numLimbs - 1
	for i > 0 && u[i] == 0 {
		i--
	}
	fmt.Fprintf(w, format, u[i])
	for i--; i >= 0; i-- {
		fmt.Fprintf(w, padded, u[i])
	}
}

// MarshalText implements encoding.TextMarshaler, values are marshaled as decimals.
func (u Uint512) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Uint512) UnmarshalText(data []byte) error {
	value, err := FromString(string(data))
	if err != nil {
		return err
	}
	*u = value
	return nil
}
