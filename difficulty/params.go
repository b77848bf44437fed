package difficulty

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/hadv/compact"
)

// Params describes how difficulty is measured on a chain.
type Params struct {
	// Name is informational.
	Name string `toml:"name"`
	// PowLimit is the easiest allowed target, it has difficulty 1.
	PowLimit compact.Compact `toml:"pow_limit"`
	// Precision is the number of decimal places difficulties are rounded to.
	Precision int32 `toml:"precision"`
}

var (
	// MainNet are the parameters of the Bitcoin main network.
	MainNet = Params{
		Name:      "mainnet",
		PowLimit:  0x1d00ffff,
		Precision: 8,
	}
)

// LoadParams reads params from a TOML file.
// Missing fields are taken from MainNet, unknown ones are rejected.
//
//	name = "regtest"
//	pow_limit = "0x207fffff"
//	precision = 8
func LoadParams(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, Error.New("cannot read %s: %w", path, err)
	}
	return ParseParams(string(data))
}

// ParseParams parses params from a TOML document, see LoadParams.
func ParseParams(data string) (Params, error) {
	p := MainNet
	md, err := toml.Decode(data, &p)
	if err != nil {
		return Params{}, Error.New("parse error: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return Params{}, Error.New("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks that the pow limit is a positive target and the precision is non-negative.
func (p Params) Validate() error {
	if _, err := positiveTarget(p.PowLimit); err != nil {
		return Error.New("invalid pow_limit %s: %w", p.PowLimit, err)
	}
	if p.Precision < 0 {
		return Error.New("invalid precision %d", p.Precision)
	}
	return nil
}

// Difficulty returns how many times the target is harder than the pow limit,
// rounded to p.Precision decimal places.
func (p Params) Difficulty(c compact.Compact) (decimal.Decimal, error) {
	return Ratio(p.PowLimit, c, p.Precision)
}
