package felt

import (
	"math/big"
	"strings"

	"github.com/NethermindEth/starknet.go/utils"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// Prime is the Stark field modulus: 2^251 + 17*2^192 + 1. Every element
// that enters a hash preimage or a calldata buffer must be canonical, that
// is in [0, Prime).
var Prime, _ = new(big.Int).SetString("800000000000011000000000000000000000000000000000000000000000001", 16)

// Encode converts a native value to its canonical field-element
// representation. Supported inputs: *big.Int, int, int64, uint64, and
// strings in 0x-hex or decimal form.
func Encode(v any) (*big.Int, error) {
	switch val := v.(type) {
	case *big.Int:
		if val == nil {
			return nil, errors.New("felt: nil big.Int")
		}
		return validate(new(big.Int).Set(val))
	case int:
		return validate(big.NewInt(int64(val)))
	case int64:
		return validate(big.NewInt(val))
	case uint64:
		return validate(new(big.Int).SetUint64(val))
	case string:
		return fromString(val)
	default:
		return nil, errors.Errorf("felt: unsupported type %T", v)
	}
}

// MustEncode is Encode for values known to be canonical at the call site.
func MustEncode(v any) *big.Int {
	f, err := Encode(v)
	if err != nil {
		panic(err)
	}
	return f
}

// EncodeSlice converts a sequence of native values in order.
func EncodeSlice(vs []any) ([]*big.Int, error) {
	felts := make([]*big.Int, 0, len(vs))
	for i, v := range vs {
		f, err := Encode(v)
		if err != nil {
			return nil, errors.Wrapf(err, "felt: element %d", i)
		}
		felts = append(felts, f)
	}
	return felts, nil
}

// Hex returns the canonical 0x form of a field element.
func Hex(f *big.Int) string {
	return hexutil.EncodeBig(f)
}

// FromShortString reinterprets the big-endian bytes of a short ASCII string
// as a field element. Chain ids and transaction prefixes are encoded this
// way on Starknet.
func FromShortString(s string) *big.Int {
	return utils.UTF8StrToBig(s)
}

func fromString(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("felt: empty string")
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		// HexToBN swallows parse failures, so vet the digits first
		f, ok := new(big.Int).SetString(s[2:], 16)
		if !ok {
			return nil, errors.Errorf("felt: cannot parse %q as a hex field element", s)
		}
		return validate(f)
	}
	f, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("felt: cannot parse %q as a decimal field element", s)
	}
	return validate(f)
}

func validate(f *big.Int) (*big.Int, error) {
	if f.Sign() < 0 {
		return nil, errors.Errorf("felt: negative value %s", f)
	}
	if f.Cmp(Prime) >= 0 {
		return nil, errors.Errorf("felt: value %s exceeds the field modulus", f)
	}
	return f, nil
}
