package crypto

import (
	"math/big"

	"github.com/NethermindEth/starknet.go/curve"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

const KeyTypeStark = "stark"

const scalarSize = 32

var _ KeystoreKey = (*StarkPrivateKey)(nil)

var _ KeystoreKey = (*StarkPublicKey)(nil)

// KeystoreKey is the marshaling contract every key persisted through the
// keystore satisfies.
type KeystoreKey interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

// StarkPrivateKey is a scalar on the Stark curve.
type StarkPrivateKey struct {
	Scalar *big.Int
}

func GenerateStarkPrivateKey() (*StarkPrivateKey, error) {
	scalar, err := curve.Curve.GetRandomPrivateKey()
	if err != nil {
		return nil, errors.Wrap(err, "stark: failed to generate private key")
	}
	return &StarkPrivateKey{Scalar: scalar}, nil
}

func StarkPrivateKeyFromHex(raw string) (*StarkPrivateKey, error) {
	scalar, err := hexutil.DecodeBig(raw)
	if err != nil {
		// tolerate non-canonical hex with leading zeros
		trimmed, ok := new(big.Int).SetString(stripHexPrefix(raw), 16)
		if !ok {
			return nil, errors.Errorf("stark: invalid private key hex %q", raw)
		}
		scalar = trimmed
	}
	if scalar.Sign() == 0 {
		return nil, errors.New("stark: private key is zero")
	}
	return &StarkPrivateKey{Scalar: scalar}, nil
}

// Sign produces an ECDSA signature (r, s) over a message hash.
func (k *StarkPrivateKey) Sign(msgHash *big.Int) (*big.Int, *big.Int, error) {
	r, s, err := curve.Curve.Sign(msgHash, k.Scalar)
	if err != nil {
		return nil, nil, errors.Wrap(err, "stark: signing failed")
	}
	return r, s, nil
}

func (k *StarkPrivateKey) PublicKey() (*StarkPublicKey, error) {
	x, y, err := curve.Curve.PrivateToPoint(k.Scalar)
	if err != nil {
		return nil, errors.Wrap(err, "stark: failed to derive public key")
	}
	return &StarkPublicKey{X: x, Y: y}, nil
}

func (k *StarkPrivateKey) Type() string {
	return KeyTypeStark
}

func (k *StarkPrivateKey) String() string {
	return hexutil.EncodeBig(k.Scalar)
}

func (k *StarkPrivateKey) Marshal() ([]byte, error) {
	return leftPad(k.Scalar.Bytes(), scalarSize), nil
}

func (k *StarkPrivateKey) Unmarshal(raw []byte) error {
	if len(raw) != scalarSize {
		return errors.Errorf("stark: bad private key length %d, want %d", len(raw), scalarSize)
	}
	if IsZeroBytes(raw) {
		return errors.New("stark: private key is zero")
	}
	k.Scalar = new(big.Int).SetBytes(raw)
	return nil
}

// StarkPublicKey is a point on the Stark curve. Starknet contracts store
// only the x coordinate; String follows that convention.
type StarkPublicKey struct {
	X *big.Int
	Y *big.Int
}

func (p *StarkPublicKey) Verify(msgHash, r, s *big.Int) bool {
	return curve.Curve.Verify(msgHash, r, s, p.X, p.Y)
}

func (p *StarkPublicKey) Type() string {
	return KeyTypeStark
}

func (p *StarkPublicKey) String() string {
	return hexutil.EncodeBig(p.X)
}

func (p *StarkPublicKey) Marshal() ([]byte, error) {
	raw := make([]byte, 0, 2*scalarSize)
	raw = append(raw, leftPad(p.X.Bytes(), scalarSize)...)
	raw = append(raw, leftPad(p.Y.Bytes(), scalarSize)...)
	return raw, nil
}

func (p *StarkPublicKey) Unmarshal(raw []byte) error {
	if len(raw) != 2*scalarSize {
		return errors.Errorf("stark: bad public key length %d, want %d", len(raw), 2*scalarSize)
	}
	if IsZeroBytes(raw) {
		return errors.New("stark: public key is zero")
	}
	p.X = new(big.Int).SetBytes(raw[:scalarSize])
	p.Y = new(big.Int).SetBytes(raw[scalarSize:])
	return nil
}

// KeyPair binds a private key to its derived public key. The pair is
// immutable once built; key rotation replaces the whole pair.
type KeyPair struct {
	PrivateKey *StarkPrivateKey
	PublicKey  *StarkPublicKey
}

func NewKeyPair(privateKey *StarkPrivateKey) (*KeyPair, error) {
	publicKey, err := privateKey.PublicKey()
	if err != nil {
		return nil, err
	}
	return &KeyPair{PrivateKey: privateKey, PublicKey: publicKey}, nil
}

func GenerateKeyPair() (*KeyPair, error) {
	privateKey, err := GenerateStarkPrivateKey()
	if err != nil {
		return nil, err
	}
	return NewKeyPair(privateKey)
}

func IsZeroBytes(bytes []byte) bool {
	b := byte(0)
	for _, s := range bytes {
		b |= s
	}
	return b == 0
}

func leftPad(raw []byte, size int) []byte {
	if len(raw) >= size {
		return raw
	}
	padded := make([]byte, size)
	copy(padded[size-len(raw):], raw)
	return padded
}

func stripHexPrefix(s string) string {
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:]
	}
	return s
}
