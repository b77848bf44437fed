package compact

import (
	"encoding/json"
	"fmt"
	"math/big"
	"math/rand"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bigFromString(t testing.TB, s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 0)
	require.True(t, ok, "bad number %q", s)
	return n
}

func lsh(v uint64, n uint) *big.Int {
	r := new(big.Int).SetUint64(v)
	return r.Lsh(r, n)
}

func TestDecode(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		c   uint32
		res *big.Int
	}{
		{0x00000000, big.NewInt(0)},
		{0x03000000, big.NewInt(0)},
		{0x00ffffff, big.NewInt(0)},
		{0x01003456, big.NewInt(0)},
		{0x01ffffff, big.NewInt(0x7f)},
		{0x01123456, big.NewInt(0x12)},
		{0x02123456, big.NewInt(0x1234)},
		{0x03123456, big.NewInt(0x123456)},
		{0x04123456, big.NewInt(0x12345600)},
		{0x04923456, big.NewInt(0x12345600)},
		{0x05009234, big.NewInt(0x92340000)},
		{0x1d00ffff, lsh(0xffff, 208)},
		{0x20123456, lsh(0x123456, 8*29)},
		{0x18abcdef, bigFromString(t, "1074081451749254189512406450217580967805082239642005143552")},
		{0xff7fffff, lsh(0x7fffff, 2016)},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			res := Decode(test.c)
			a.Equal(0, test.res.Cmp(res), "%#x: expected %s, got %s", test.c, test.res, res)
			a.Equal(0, test.res.Cmp(Compact(test.c).Big()))
		})
	}
}

func TestDecodeProperties(t *testing.T) {
	a := assert.New(t)
	rnd := rand.New(rand.NewSource(time.Now().Unix()))
	for i := 0; i < 1000; i++ {
		c := rnd.Uint32()
		sz, w := uint(c>>24), uint64(c&0x007fffff)
		res := Decode(c)
		var expected *big.Int
		if sz <= 3 {
			expected = new(big.Int).SetUint64(w >> (8 * (3 - sz)))
			a.LessOrEqual(res.BitLen(), 24)
		} else {
			expected = lsh(w, 8*(sz-3))
			a.LessOrEqual(res.BitLen(), 8*int(sz))
		}
		if !a.Equal(0, expected.Cmp(res), "%#x", c) {
			t.Logf("compact: %s", spew.Sdump(Compact(c)))
		}
		a.GreaterOrEqual(res.Sign(), 0)
		a.Equal(0, res.Cmp(Decode(c)))
		a.Equal(res.BitLen(), Compact(c).BitLen(), "%#x", c)
		a.Equal(res.Sign() == 0, Compact(c).IsZero(), "%#x", c)
	}
}

func TestFromSizeAndWord(t *testing.T) {
	a := assert.New(t)
	c, err := FromSizeAndWord(0x18, 0xabcdef)
	a.NoError(err)
	a.Equal(Compact(0x18abcdef), c)
	a.Equal(uint8(0x18), c.Size())
	a.Equal(uint32(0x2bcdef), c.Word())
	a.Equal(uint32(0xabcdef), c.Mantissa())
	a.True(c.SignBit())
	a.Equal(uint32(0x18abcdef), c.Uint32())

	_, err = FromSizeAndWord(1, 0x1000000)
	a.EqualError(err, "value out of range")
}

func TestAligned(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		c     Compact
		m     uint64
		shift uint
	}{
		{0x00000000, 0, 0},
		{0x01123456, 0x12, 0},
		{0x03123456, 0x123456, 0},
		{0x04923456, 0x123456, 8},
		{0x18abcdef, 0x2bcdef, 168},
		{0xff7fffff, 0x7fffff, 2016},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			m, shift := test.c.Aligned()
			a.Equal(test.m, m)
			a.Equal(test.shift, shift)
			a.Equal(0, lsh(m, shift).Cmp(test.c.Big()))
		})
	}
}

func TestFromString(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		s   string
		c   Compact
		err string
	}{
		{"0x18abcdef", 0x18abcdef, ""},
		{`  "0X18ABCDEF" `, 0x18abcdef, ""},
		{`"0x1d00ffff"`, 0x1d00ffff, ""},
		{"413912559", 0x18abcdef, ""},
		{"+1", 1, ""},
		{"0", 0, ""},
		{"0xffffffff", 0xffffffff, ""},
		{"4294967295", 0xffffffff, ""},
		{"0x100000000", 0, "value out of range"},
		{"4294967296", 0, "value out of range"},
		{"-1", 0, "negative value"},
		{"", 0, "empty input"},
		{`""`, 0, "empty input"},
		{"   ", 0, "empty input"},
		{"0xz", 0, "parsing failed: unexpected symbol 'z' at pos 3"},
		{"  12a", 0, "parsing failed: unexpected symbol 'a' at pos 5"},
		{"0x", 0, "parsing failed: unexpected symbol 'x' at pos 2"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			c, err := FromString(test.s)
			if len(test.err) > 0 {
				a.EqualError(err, test.err)
				a.Panics(func() {
					MustFromString(test.s)
				})
			} else if a.NoError(err) {
				a.Equal(test.c, c)
			}
		})
	}
}

func TestCmp(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		c1, c2 Compact
		res    int
	}{
		{0, 0, 0},
		{0x01003456, 0, 0},
		{0x03000000, 0x01003456, 0},
		{0x04123456, 0x05001234, 1},
		{0x03123456, 0x04001234, 1},
		{0x04123400, 0x03123400, 1},
		{0x02123400, 0x03001234, 0},
		{0x05000001, 0x03010000, 0},
		{0x04923456, 0x04123456, 0},
		{0x1b0404cb, 0x1d00ffff, -1},
		{0x1d00ffff, 0x1b0404cb, 1},
		{0x01000001, 0x01010000, -1},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.res, test.c1.Cmp(test.c2), "%#v vs %#v", test.c1, test.c2)
			a.Equal(-test.res, test.c2.Cmp(test.c1))
			a.Equal(test.res == 0, test.c1.Eq(test.c2))
			a.Equal(test.c1.Big().Cmp(test.c2.Big()), test.c1.Cmp(test.c2))
		})
	}
}

func TestCmpRandom(t *testing.T) {
	a := assert.New(t)
	rnd := rand.New(rand.NewSource(time.Now().Unix()))
	for i := 0; i < 1000; i++ {
		// keep sizes close, so that the mantissa comparison path is taken.
		sz := uint32(rnd.Intn(40))
		c1 := Compact(sz<<24 | rnd.Uint32()&0xffffff)
		c2 := Compact((sz+uint32(rnd.Intn(2)))<<24 | rnd.Uint32()&0xffffff)
		a.Equal(c1.Big().Cmp(c2.Big()), c1.Cmp(c2), "%#v vs %#v", c1, c2)
	}
}

func TestString(t *testing.T) {
	a := assert.New(t)
	a.Equal("0x18abcdef", Compact(0x18abcdef).String())
	a.Equal("0x00000001", Compact(1).String())
	a.Equal("0x18abcdef {24, 0x2bcdef}", Compact(0x18abcdef).GoString())
	a.Equal("0x18abcdef", fmt.Sprint(Compact(0x18abcdef)))
}

func TestJSON(t *testing.T) {
	a := assert.New(t)
	defer func(mode int) {
		JSONMode = mode
	}(JSONMode)

	type header struct {
		Bits Compact `json:"bits"`
	}
	h := header{Bits: 0x18abcdef}
	tests := []struct {
		mode int
		json string
	}{
		{JSONModeHex, `{"bits":"0x18abcdef"}`},
		{JSONModeNumber, `{"bits":413912559}`},
		{JSONModeDecimal, `{"bits":"1074081451749254189512406450217580967805082239642005143552"}`},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			JSONMode = test.mode
			data, err := json.Marshal(h)
			if a.NoError(err) {
				a.Equal(test.json, string(data))
			}
			if test.mode == JSONModeDecimal {
				return
			}
			var h2 header
			if a.NoError(json.Unmarshal(data, &h2)) {
				a.Equal(h, h2)
			}
		})
	}

	var h3 header
	a.NoError(json.Unmarshal([]byte(`{"bits":null}`), &h3))
	a.Equal(Compact(0), h3.Bits)
	a.Error(json.Unmarshal([]byte(`{"bits":"0xzz"}`), &h3))
	a.Error(json.Unmarshal([]byte(`{"bits":-1}`), &h3))
}

func TestText(t *testing.T) {
	a := assert.New(t)
	data, err := Compact(0x1d00ffff).MarshalText()
	a.NoError(err)
	a.Equal("0x1d00ffff", string(data))

	var c Compact
	a.NoError(c.UnmarshalText([]byte("486604799")))
	a.Equal(Compact(0x1d00ffff), c)
	a.Error(c.UnmarshalText([]byte("bad")))
	a.Equal(Compact(0x1d00ffff), c)
}

func BenchmarkDecode(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Decode(0x18abcdef)
	}
}

func BenchmarkCmp(b *testing.B) {
	rnd := rand.New(rand.NewSource(time.Now().Unix()))
	for i := 0; i < b.N; i++ {
		c1 := Compact(rnd.Uint32())
		c2 := Compact(rnd.Uint32())
		c1.Cmp(c2)
	}
}
