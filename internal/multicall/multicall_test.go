package multicall

import (
	"context"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starkmesh/stark-wallet/internal/contract"
	"github.com/starkmesh/stark-wallet/pkg/selector"
)

// fakeContract is a scriptable invoker: AdaptInput and AdaptOutput answer
// from fixed tables, network methods are never reached from this package.
type fakeContract struct {
	address  *big.Int
	inputs   map[string][]*big.Int
	arity    map[string]int
	outputs  map[string]map[string]*big.Int
	inputErr error
}

func (f *fakeContract) Address() *big.Int { return f.address }

func (f *fakeContract) AdaptInput(entrypoint string, _ map[string]any) ([]*big.Int, error) {
	if f.inputErr != nil {
		return nil, f.inputErr
	}
	encoded, ok := f.inputs[entrypoint]
	if !ok {
		return nil, errors.Errorf("unknown entrypoint %s", entrypoint)
	}
	return encoded, nil
}

func (f *fakeContract) AdaptOutput(entrypoint string, raw []string) (map[string]*big.Int, error) {
	if len(raw) != f.arity[entrypoint] {
		return nil, errors.Errorf("entrypoint %s wants %d felts, got %d", entrypoint, f.arity[entrypoint], len(raw))
	}
	return f.outputs[entrypoint], nil
}

func (f *fakeContract) OutputArity(entrypoint string) (int, error) {
	arity, ok := f.arity[entrypoint]
	if !ok {
		return 0, errors.Errorf("unknown entrypoint %s", entrypoint)
	}
	return arity, nil
}

func (f *fakeContract) Invoke(context.Context, string, map[string]any, contract.Options) (string, error) {
	panic("not reachable from aggregation")
}

func (f *fakeContract) Call(context.Context, string, map[string]any, contract.Options) ([]string, error) {
	panic("not reachable from aggregation")
}

func (f *fakeContract) EstimateFee(context.Context, string, map[string]any, contract.Options) (*contract.FeeEstimate, error) {
	panic("not reachable from aggregation")
}

func scenarioCalls() []Call {
	contractA := &fakeContract{
		address: big.NewInt(0xa),
		inputs: map[string][]*big.Int{
			"foo": {big.NewInt(1)},
			"baz": {big.NewInt(2), big.NewInt(3)},
		},
	}
	contractB := &fakeContract{
		address: big.NewInt(0xb),
		inputs: map[string][]*big.Int{
			"bar": {},
		},
	}

	return []Call{
		{Contract: contractA, Function: "foo", Args: map[string]any{"x": 1}},
		{Contract: contractB, Function: "bar", Args: map[string]any{}},
		{Contract: contractA, Function: "baz", Args: map[string]any{"y": 2, "z": 3}},
	}
}

func TestBuildScenario(t *testing.T) {
	plan, err := Build(scenarioCalls())
	require.Nil(t, err)
	require.Len(t, plan.Descriptors, 3)

	offsets := []int64{0, 1, 1}
	lengths := []int64{1, 0, 2}
	for i, d := range plan.Descriptors {
		assert.Equal(t, offsets[i], d.DataOffset.Int64(), "offset of call %d", i)
		assert.Equal(t, lengths[i], d.DataLen.Int64(), "length of call %d", i)
	}

	require.Len(t, plan.Calldata, 3)
	for i, f := range plan.Calldata {
		assert.Equal(t, int64(i+1), f.Int64())
	}

	assert.Zero(t, plan.Descriptors[0].Selector.Cmp(selector.Of("foo")))
	assert.Zero(t, plan.Descriptors[1].Selector.Cmp(selector.Of("bar")))
	assert.Equal(t, int64(0xa), plan.Descriptors[2].ContractAddress.Int64())
}

func TestBuildTilesBuffer(t *testing.T) {
	plan, err := Build(scenarioCalls())
	require.Nil(t, err)

	// ranges are disjoint, in order, and cover the buffer exactly
	next := int64(0)
	for i, d := range plan.Descriptors {
		assert.Equal(t, next, d.DataOffset.Int64(), "call %d does not start where the previous ended", i)
		next += d.DataLen.Int64()
	}
	assert.Equal(t, next, int64(len(plan.Calldata)))
}

func TestBuildEmpty(t *testing.T) {
	plan, err := Build(nil)
	require.Nil(t, err)
	assert.Empty(t, plan.Descriptors)
	assert.Empty(t, plan.Calldata)
}

func TestBuildAdapterRejection(t *testing.T) {
	bad := &fakeContract{
		address:  big.NewInt(0xc),
		inputErr: errors.New("unknown field qux"),
	}
	calls := append(scenarioCalls(), Call{Contract: bad, Function: "broken", Args: map[string]any{"qux": 1}})

	_, err := Build(calls)
	require.NotNil(t, err)

	var encErr *CalldataEncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, 3, encErr.Index)
	assert.Equal(t, "broken", encErr.Function)
	assert.Contains(t, errors.Cause(encErr.Err).Error(), "unknown field qux")
}

func TestExecuteArgs(t *testing.T) {
	plan, err := Build(scenarioCalls())
	require.Nil(t, err)

	args := plan.ExecuteArgs(big.NewInt(7))
	assert.Equal(t, plan.Calldata, args["calldata"])
	assert.Equal(t, int64(7), args["nonce"].(*big.Int).Int64())

	descriptors := args["call_array"].([]map[string]any)
	require.Len(t, descriptors, 3)
	assert.Equal(t, int64(0xb), descriptors[1]["to"].(*big.Int).Int64())
	assert.Equal(t, int64(1), descriptors[2]["data_offset"].(*big.Int).Int64())
}

func TestDecodeResponseIsInverse(t *testing.T) {
	calls := scenarioCalls()
	fooResult := map[string]*big.Int{"res": big.NewInt(10)}
	barResult := map[string]*big.Int{}
	bazResult := map[string]*big.Int{"sum": big.NewInt(5), "carry": big.NewInt(0)}

	a := calls[0].Contract.(*fakeContract)
	a.arity = map[string]int{"foo": 1, "baz": 2}
	a.outputs = map[string]map[string]*big.Int{"foo": fooResult, "baz": bazResult}
	b := calls[1].Contract.(*fakeContract)
	b.arity = map[string]int{"bar": 0}
	b.outputs = map[string]map[string]*big.Int{"bar": barResult}

	// concatenated raw response: 1 felt for foo, 0 for bar, 2 for baz
	raw := []string{"0xa", "0x5", "0x0"}
	results, err := DecodeResponse(calls, raw)
	require.Nil(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, fooResult, results[0])
	assert.Equal(t, barResult, results[1])
	assert.Equal(t, bazResult, results[2])
}

func TestDecodeResponseLengthMismatch(t *testing.T) {
	calls := scenarioCalls()
	a := calls[0].Contract.(*fakeContract)
	a.arity = map[string]int{"foo": 1, "baz": 2}
	a.outputs = map[string]map[string]*big.Int{"foo": {}, "baz": {}}
	b := calls[1].Contract.(*fakeContract)
	b.arity = map[string]int{"bar": 0}
	b.outputs = map[string]map[string]*big.Int{"bar": {}}

	_, err := DecodeResponse(calls, []string{"0xa"})
	assert.NotNil(t, err)

	_, err = DecodeResponse(calls, []string{"0xa", "0x5", "0x0", "0xff"})
	assert.NotNil(t, err)
}
