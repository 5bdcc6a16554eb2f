package txhash

import (
	"math/big"

	"github.com/NethermindEth/starknet.go/curve"

	"github.com/starkmesh/stark-wallet/internal/multicall"
	"github.com/starkmesh/stark-wallet/pkg/felt"
	"github.com/starkmesh/stark-wallet/pkg/selector"
)

// InvokePrefix is the short-string "invoke" felt that opens every invoke
// transaction hash envelope.
var InvokePrefix = felt.FromShortString("invoke")

// Version discriminates the transaction kind inside the hash, not a
// protocol revision: a submittable invoke and a query (call/fee estimate)
// over the same calls must never collide.
var (
	TransactionVersion = big.NewInt(1)

	// QueryVersion is TransactionVersion with the query flag bit (2^128) set.
	QueryVersion = new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// ChainID reinterprets the configured chain-id string ("SN_GOERLI",
// "SN_MAIN", ...) as a field element by its big-endian bytes.
func ChainID(name string) *big.Int {
	return felt.FromShortString(name)
}

// OpenZeppelin hashes at logical-call granularity: each call contributes a
// pedersen digest of (to, selector, H(calldata)), and the digests are
// hashed again inside the invoke envelope.
func OpenZeppelin(accountAddress *big.Int, plan *multicall.Plan, nonce, maxFee, version, chainID *big.Int) *big.Int {
	callHashes := make([]*big.Int, 0, len(plan.Descriptors))
	for i, descriptor := range plan.Descriptors {
		callHashes = append(callHashes, curve.ComputeHashOnElements([]*big.Int{
			descriptor.ContractAddress,
			descriptor.Selector,
			curve.ComputeHashOnElements(plan.PerCall[i]),
		}))
	}

	return curve.ComputeHashOnElements([]*big.Int{
		InvokePrefix,
		version,
		accountAddress,
		curve.ComputeHashOnElements(callHashes),
		nonce,
		maxFee,
		chainID,
	})
}

// ArgentPreimage lays out the wire-descriptor-granularity sequence the
// Argent scheme hashes: call count, one (to, selector, offset, length)
// quad per call in order, the total calldata length, the flattened
// calldata, and the nonce.
func ArgentPreimage(plan *multicall.Plan, nonce *big.Int) []*big.Int {
	preimage := make([]*big.Int, 0, 2+4*len(plan.Descriptors)+len(plan.Calldata)+1)
	preimage = append(preimage, big.NewInt(int64(len(plan.Descriptors))))
	for _, descriptor := range plan.Descriptors {
		preimage = append(preimage,
			descriptor.ContractAddress,
			descriptor.Selector,
			descriptor.DataOffset,
			descriptor.DataLen,
		)
	}
	preimage = append(preimage, big.NewInt(int64(len(plan.Calldata))))
	preimage = append(preimage, plan.Calldata...)
	preimage = append(preimage, nonce)
	return preimage
}

// Argent hashes the wire descriptors themselves. This is deliberately
// incompatible with the OpenZeppelin construction; the two schemes must
// never be cross-validated.
func Argent(accountAddress *big.Int, plan *multicall.Plan, nonce, maxFee, version, chainID *big.Int) *big.Int {
	return curve.ComputeHashOnElements([]*big.Int{
		InvokePrefix,
		version,
		accountAddress,
		selector.Of("__execute__"),
		curve.ComputeHashOnElements(ArgentPreimage(plan, nonce)),
		maxFee,
		chainID,
	})
}
