package account

import (
	"context"
	"math/big"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/starkmesh/stark-wallet/internal/contract"
	"github.com/starkmesh/stark-wallet/internal/multicall"
	"github.com/starkmesh/stark-wallet/internal/txhash"
	"github.com/starkmesh/stark-wallet/pkg/crypto"
	"github.com/starkmesh/stark-wallet/pkg/felt"
	"github.com/starkmesh/stark-wallet/pkg/loggers"
)

// Variant identifies the wallet contract flavor an account was deployed from.
type Variant string

const (
	VariantOpenZeppelin Variant = "OpenZeppelin"
	VariantArgent       Variant = "Argent"
)

// InteractChoice selects how a prepared multicall reaches the network.
// Invoke submits a transaction; Call and EstimateFee are read paths and
// carry the query version in the signed message so their signatures can
// never be replayed as transactions.
type InteractChoice int

const (
	ChoiceInvoke InteractChoice = iota
	ChoiceCall
	ChoiceEstimateFee
)

func (c InteractChoice) Name() string {
	switch c {
	case ChoiceInvoke:
		return "invoke"
	case ChoiceCall:
		return "call"
	case ChoiceEstimateFee:
		return "estimate_fee"
	default:
		return "unknown"
	}
}

func (c InteractChoice) Version() *big.Int {
	if c == ChoiceInvoke {
		return txhash.TransactionVersion
	}
	return txhash.QueryVersion
}

func (c InteractChoice) IsWrite() bool {
	return c == ChoiceInvoke
}

// InteractOptions tunes a single interaction. A caller-supplied Signature is
// always rejected: accounts sign their own multicalls and nothing else.
type InteractOptions struct {
	MaxFee    *big.Int
	Nonce     *big.Int
	Signature []*big.Int
}

// NonceSource yields the next account nonce. The default implementation asks
// the wallet contract itself; tests inject deterministic sources.
type NonceSource interface {
	GetNonce(ctx context.Context) (*big.Int, error)
}

// Account is a deployed smart-contract wallet bound to a local key pair.
type Account interface {
	Address() *big.Int
	Variant() Variant
	PublicKey() *crypto.StarkPublicKey
	GetNonce(ctx context.Context) (*big.Int, error)

	Invoke(ctx context.Context, call multicall.Call, opts InteractOptions) (string, error)
	Call(ctx context.Context, call multicall.Call, opts InteractOptions) (map[string]*big.Int, error)
	EstimateFee(ctx context.Context, call multicall.Call, opts InteractOptions) (*contract.FeeEstimate, error)

	MultiInvoke(ctx context.Context, calls []multicall.Call, opts InteractOptions) (string, error)
	MultiCall(ctx context.Context, calls []multicall.Call, opts InteractOptions) ([]map[string]*big.Int, error)
	MultiEstimateFee(ctx context.Context, calls []multicall.Call, opts InteractOptions) (*contract.FeeEstimate, error)
}

// scheme is the variant-specific half of an account: how the multicall is
// hashed, how many signature felts are produced and in what order, and what
// the wallet's execution entrypoint looks like on the wire.
type scheme interface {
	messageHash(plan *multicall.Plan, nonce, maxFee, version *big.Int) (*big.Int, error)
	signatures(msgHash *big.Int) ([]*big.Int, error)
	executionFunctionName() string
	hasRawOutput() bool
	canSignWrites() bool
}

type base struct {
	wallet      contract.Invoker
	keyPair     *crypto.KeyPair
	variant     Variant
	chainID     *big.Int
	maxFee      *big.Int
	nonceSource NonceSource
	logger      logrus.FieldLogger
	scheme      scheme
}

func newBase(wallet contract.Invoker, keyPair *crypto.KeyPair, variant Variant, chainID, maxFee *big.Int) *base {
	b := &base{
		wallet:  wallet,
		keyPair: keyPair,
		variant: variant,
		chainID: chainID,
		maxFee:  maxFee,
		logger:  loggers.Logger(loggers.Account),
	}
	b.nonceSource = &walletNonceSource{wallet: wallet}
	return b
}

func (b *base) Address() *big.Int {
	return b.wallet.Address()
}

func (b *base) Variant() Variant {
	return b.variant
}

func (b *base) PublicKey() *crypto.StarkPublicKey {
	return b.keyPair.PublicKey
}

func (b *base) GetNonce(ctx context.Context) (*big.Int, error) {
	return b.nonceSource.GetNonce(ctx)
}

// SetNonceSource replaces the on-chain nonce lookup, e.g. with a local
// counter when pipelining transactions.
func (b *base) SetNonceSource(source NonceSource) {
	b.nonceSource = source
}

type prepared struct {
	plan       *multicall.Plan
	args       map[string]any
	signatures []*big.Int
	maxFee     *big.Int
	lc         *lifecycle
}

// prepare walks a batch of calls through aggregation, hashing and signing.
// Option validation happens before any network round trip so a rejected
// override never consumes a nonce lookup.
func (b *base) prepare(ctx context.Context, calls []multicall.Call, choice InteractChoice, opts InteractOptions) (*prepared, error) {
	if opts.Signature != nil {
		return nil, errors.Wrapf(ErrUnsupportedOverride, "%s on %s account", choice.Name(), b.variant)
	}
	if choice.IsWrite() && !b.scheme.canSignWrites() {
		return nil, errors.Wrapf(ErrGuardianUnavailable, "cannot %s from account %s", choice.Name(), felt.Hex(b.Address()))
	}

	lc := newLifecycle(b.logger)

	nonce := opts.Nonce
	if nonce == nil {
		var err error
		if nonce, err = b.nonceSource.GetNonce(ctx); err != nil {
			lc.fail(ctx)
			return nil, errors.Wrap(err, "resolve nonce")
		}
	}

	maxFee := opts.MaxFee
	if maxFee == nil {
		maxFee = b.maxFee
	}

	plan, err := multicall.Build(calls)
	if err != nil {
		lc.fail(ctx)
		return nil, err
	}
	if err := lc.advance(ctx, eventAggregate); err != nil {
		return nil, err
	}

	msgHash, err := b.scheme.messageHash(plan, nonce, maxFee, choice.Version())
	if err != nil {
		lc.fail(ctx)
		return nil, errors.Wrap(err, "compute message hash")
	}
	if err := lc.advance(ctx, eventHash); err != nil {
		return nil, err
	}

	sigs, err := b.scheme.signatures(msgHash)
	if err != nil {
		lc.fail(ctx)
		return nil, errors.Wrap(err, "sign message hash")
	}
	if err := lc.advance(ctx, eventSign); err != nil {
		return nil, err
	}

	b.logger.WithFields(logrus.Fields{
		"account": felt.Hex(b.Address()),
		"variant": b.variant,
		"choice":  choice.Name(),
		"calls":   len(calls),
		"nonce":   nonce,
	}).Debug("multicall prepared")

	return &prepared{
		plan:       plan,
		args:       plan.ExecuteArgs(nonce),
		signatures: sigs,
		maxFee:     maxFee,
		lc:         lc,
	}, nil
}

func (b *base) MultiInvoke(ctx context.Context, calls []multicall.Call, opts InteractOptions) (txHash string, err error) {
	defer func() { observeDispatch(b.variant, ChoiceInvoke, err) }()

	p, err := b.prepare(ctx, calls, ChoiceInvoke, opts)
	if err != nil {
		return "", err
	}
	if err := p.lc.advance(ctx, eventDispatch); err != nil {
		return "", err
	}

	txHash, err = b.wallet.Invoke(ctx, b.scheme.executionFunctionName(), p.args, contract.Options{
		Signature: p.signatures,
		MaxFee:    p.maxFee,
	})
	if err != nil {
		p.lc.fail(ctx)
		return "", errors.Wrap(err, "dispatch multicall")
	}
	if err := p.lc.advance(ctx, eventSettle); err != nil {
		return "", err
	}
	return txHash, nil
}

func (b *base) MultiCall(ctx context.Context, calls []multicall.Call, opts InteractOptions) (results []map[string]*big.Int, err error) {
	defer func() { observeDispatch(b.variant, ChoiceCall, err) }()

	p, err := b.prepare(ctx, calls, ChoiceCall, opts)
	if err != nil {
		return nil, err
	}
	if err := p.lc.advance(ctx, eventDispatch); err != nil {
		return nil, err
	}

	raw, err := b.wallet.Call(ctx, b.scheme.executionFunctionName(), p.args, contract.Options{
		Signature: p.signatures,
		RawOutput: b.scheme.hasRawOutput(),
	})
	if err != nil {
		p.lc.fail(ctx)
		return nil, errors.Wrap(err, "dispatch multicall")
	}

	if b.scheme.hasRawOutput() {
		if raw, err = stripRetdataLength(raw); err != nil {
			p.lc.fail(ctx)
			return nil, err
		}
	}

	results, err = multicall.DecodeResponse(calls, raw)
	if err != nil {
		p.lc.fail(ctx)
		return nil, err
	}
	if err := p.lc.advance(ctx, eventSettle); err != nil {
		return nil, err
	}
	return results, nil
}

func (b *base) MultiEstimateFee(ctx context.Context, calls []multicall.Call, opts InteractOptions) (fee *contract.FeeEstimate, err error) {
	defer func() { observeDispatch(b.variant, ChoiceEstimateFee, err) }()

	p, err := b.prepare(ctx, calls, ChoiceEstimateFee, opts)
	if err != nil {
		return nil, err
	}
	if err := p.lc.advance(ctx, eventDispatch); err != nil {
		return nil, err
	}

	fee, err = b.wallet.EstimateFee(ctx, b.scheme.executionFunctionName(), p.args, contract.Options{
		Signature: p.signatures,
		RawOutput: b.scheme.hasRawOutput(),
	})
	if err != nil {
		p.lc.fail(ctx)
		return nil, errors.Wrap(err, "estimate multicall fee")
	}
	if err := p.lc.advance(ctx, eventSettle); err != nil {
		return nil, err
	}
	return fee, nil
}

func (b *base) Invoke(ctx context.Context, call multicall.Call, opts InteractOptions) (string, error) {
	return b.MultiInvoke(ctx, []multicall.Call{call}, opts)
}

func (b *base) Call(ctx context.Context, call multicall.Call, opts InteractOptions) (map[string]*big.Int, error) {
	results, err := b.MultiCall(ctx, []multicall.Call{call}, opts)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

func (b *base) EstimateFee(ctx context.Context, call multicall.Call, opts InteractOptions) (*contract.FeeEstimate, error) {
	return b.MultiEstimateFee(ctx, []multicall.Call{call}, opts)
}

// stripRetdataLength drops the leading retdata_size felt that Argent's
// __execute__ prepends to its flat response.
func stripRetdataLength(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, errors.New("empty execution response")
	}
	size, err := felt.Encode(raw[0])
	if err != nil {
		return nil, errors.Wrap(err, "parse retdata size")
	}
	if size.Cmp(big.NewInt(int64(len(raw)-1))) != 0 {
		return nil, errors.Errorf("retdata size %s does not match %d response felts", size, len(raw)-1)
	}
	return raw[1:], nil
}

// walletNonceSource reads the nonce the wallet contract tracks for itself.
type walletNonceSource struct {
	wallet contract.Invoker
}

func (s *walletNonceSource) GetNonce(ctx context.Context) (*big.Int, error) {
	out, err := s.wallet.Call(ctx, "get_nonce", nil, contract.Options{})
	if err != nil {
		return nil, errors.Wrap(err, "query wallet nonce")
	}
	if len(out) == 0 {
		return nil, errors.New("wallet returned empty nonce response")
	}
	nonce, err := felt.Encode(out[0])
	if err != nil {
		return nil, errors.Wrap(err, "parse wallet nonce")
	}
	return nonce, nil
}
