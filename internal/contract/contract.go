package contract

import (
	"context"
	"math/big"
)

//go:generate mockgen -destination mock_contract/mock_invoker.go -package mock_contract -source contract.go

// Options carries the transaction-level knobs a dispatch takes. Signature
// and MaxFee travel outside the calldata; RawOutput asks the collaborator
// to skip its generic response decoding.
type Options struct {
	Signature []*big.Int
	MaxFee    *big.Int
	RawOutput bool
}

// FeeEstimate is the collaborator's answer to an estimate-fee dispatch.
type FeeEstimate struct {
	Amount   *big.Int
	Unit     string
	GasUsage uint64
}

// Invoker is the contract-invocation collaborator: one deployed contract
// reachable through the network layer, together with its ABI adapter. The
// wallet core only constructs the semantic inputs; wire formats belong to
// the implementation behind this interface.
type Invoker interface {
	// Address returns the deployed contract address.
	Address() *big.Int

	// Invoke submits a write transaction to an entrypoint and returns the
	// transaction hash.
	Invoke(ctx context.Context, entrypoint string, args map[string]any, opts Options) (string, error)

	// Call executes a read against an entrypoint and returns the raw
	// response felts in hex form.
	Call(ctx context.Context, entrypoint string, args map[string]any, opts Options) ([]string, error)

	// EstimateFee runs the fee estimation flow for an entrypoint.
	EstimateFee(ctx context.Context, entrypoint string, args map[string]any, opts Options) (*FeeEstimate, error)

	// AdaptInput flattens named arguments into the field-element sequence
	// the entrypoint consumes.
	AdaptInput(entrypoint string, args map[string]any) ([]*big.Int, error)

	// AdaptOutput decodes a raw response into a named result mapping.
	AdaptOutput(entrypoint string, raw []string) (map[string]*big.Int, error)

	// OutputArity reports how many felts the entrypoint's flat response
	// occupies; multicall decoding slices concatenated responses with it.
	OutputArity(entrypoint string) (int, error)
}

// Deployer is the collaborator that turns a compiled artifact into a
// deployed contract.
type Deployer interface {
	Deploy(ctx context.Context, artifactPath string, constructorArgs map[string]any) (Invoker, error)
}
