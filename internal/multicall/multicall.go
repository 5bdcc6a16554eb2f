package multicall

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/starkmesh/stark-wallet/internal/contract"
	"github.com/starkmesh/stark-wallet/pkg/selector"
)

// Call is one logical call a caller wants executed through the wallet
// contract: the callee, the function name and its named arguments.
type Call struct {
	Contract contract.Invoker
	Function string
	Args     map[string]any
}

// ExecuteCall is the wire-level descriptor of one call inside a multicall:
// it points into the shared flattened calldata buffer.
type ExecuteCall struct {
	ContractAddress *big.Int
	Selector        *big.Int
	DataOffset      *big.Int
	DataLen         *big.Int
}

// Plan is the aggregation result consumed by the hashers and the dispatch
// payload builder. PerCall keeps each call's own encoded calldata because
// the OpenZeppelin scheme hashes at logical-call granularity.
type Plan struct {
	Descriptors []ExecuteCall
	Calldata    []*big.Int
	PerCall     [][]*big.Int
}

// CalldataEncodingError reports an ABI adapter rejection for one call.
// The adapter failure is kept as the cause.
type CalldataEncodingError struct {
	Function string
	Index    int
	Err      error
}

func (e *CalldataEncodingError) Error() string {
	return fmt.Sprintf("failed to encode calldata for call %d (%s): %v", e.Index, e.Function, e.Err)
}

func (e *CalldataEncodingError) Unwrap() error {
	return e.Err
}

// Build flattens a sequence of calls in input order. Offsets strictly
// increase and the descriptor ranges tile the flat buffer with no gaps or
// overlaps; empty calldata is legal.
func Build(calls []Call) (*Plan, error) {
	plan := &Plan{
		Descriptors: make([]ExecuteCall, 0, len(calls)),
		PerCall:     make([][]*big.Int, 0, len(calls)),
	}

	for i, call := range calls {
		encoded, err := call.Contract.AdaptInput(call.Function, call.Args)
		if err != nil {
			return nil, &CalldataEncodingError{Function: call.Function, Index: i, Err: err}
		}

		plan.Descriptors = append(plan.Descriptors, ExecuteCall{
			ContractAddress: call.Contract.Address(),
			Selector:        selector.Of(call.Function),
			DataOffset:      big.NewInt(int64(len(plan.Calldata))),
			DataLen:         big.NewInt(int64(len(encoded))),
		})
		plan.Calldata = append(plan.Calldata, encoded...)
		plan.PerCall = append(plan.PerCall, encoded)
	}

	return plan, nil
}

// ExecuteArgs shapes the plan plus nonce into the named arguments of the
// wallet contract's execution entrypoint.
func (p *Plan) ExecuteArgs(nonce *big.Int) map[string]any {
	return map[string]any{
		"call_array": lo.Map(p.Descriptors, func(d ExecuteCall, _ int) map[string]any {
			return map[string]any{
				"to":          d.ContractAddress,
				"selector":    d.Selector,
				"data_offset": d.DataOffset,
				"data_len":    d.DataLen,
			}
		}),
		"calldata": p.Calldata,
		"nonce":    nonce,
	}
}

// DecodeResponse is the inverse of Build on the response side: the raw
// multicall response is the concatenation of each call's flat output, so
// each call's declared output arity slices its chunk, which that call's
// own adapter then decodes. Results are returned in input order.
func DecodeResponse(calls []Call, raw []string) ([]map[string]*big.Int, error) {
	results := make([]map[string]*big.Int, 0, len(calls))
	rest := raw
	for i, call := range calls {
		arity, err := call.Contract.OutputArity(call.Function)
		if err != nil {
			return nil, errors.Wrapf(err, "unknown output arity for call %d (%s)", i, call.Function)
		}
		if arity > len(rest) {
			return nil, errors.Errorf("multicall response exhausted at call %d (%s): need %d felts, %d left", i, call.Function, arity, len(rest))
		}

		decoded, err := call.Contract.AdaptOutput(call.Function, rest[:arity])
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode response of call %d (%s)", i, call.Function)
		}
		results = append(results, decoded)
		rest = rest[arity:]
	}

	if len(rest) != 0 {
		return nil, errors.Errorf("multicall response has %d trailing felts", len(rest))
	}
	return results, nil
}
