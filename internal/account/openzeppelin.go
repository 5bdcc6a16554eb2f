package account

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/starkmesh/stark-wallet/internal/contract"
	"github.com/starkmesh/stark-wallet/internal/multicall"
	"github.com/starkmesh/stark-wallet/internal/txhash"
	"github.com/starkmesh/stark-wallet/pkg/crypto"
)

// OpenZeppelinAccount wraps a deployed OpenZeppelin account contract. A
// single signer key produces a two-felt [r, s] signature over the
// per-call digest envelope.
type OpenZeppelinAccount struct {
	*base
}

var _ Account = (*OpenZeppelinAccount)(nil)

func NewOpenZeppelinAccount(wallet contract.Invoker, keyPair *crypto.KeyPair, chainID, maxFee *big.Int) *OpenZeppelinAccount {
	a := &OpenZeppelinAccount{
		base: newBase(wallet, keyPair, VariantOpenZeppelin, chainID, maxFee),
	}
	a.base.scheme = a
	return a
}

func (a *OpenZeppelinAccount) messageHash(plan *multicall.Plan, nonce, maxFee, version *big.Int) (*big.Int, error) {
	return txhash.OpenZeppelin(a.Address(), plan, nonce, maxFee, version, a.chainID), nil
}

func (a *OpenZeppelinAccount) signatures(msgHash *big.Int) ([]*big.Int, error) {
	r, s, err := a.keyPair.PrivateKey.Sign(msgHash)
	if err != nil {
		return nil, errors.Wrap(err, "signer signature")
	}
	return []*big.Int{r, s}, nil
}

func (a *OpenZeppelinAccount) executionFunctionName() string {
	return "__execute__"
}

func (a *OpenZeppelinAccount) hasRawOutput() bool {
	return false
}

func (a *OpenZeppelinAccount) canSignWrites() bool {
	return true
}
