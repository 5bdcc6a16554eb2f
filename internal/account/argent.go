package account

import (
	"context"
	"math/big"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/starkmesh/stark-wallet/internal/contract"
	"github.com/starkmesh/stark-wallet/internal/multicall"
	"github.com/starkmesh/stark-wallet/internal/txhash"
	"github.com/starkmesh/stark-wallet/pkg/crypto"
	"github.com/starkmesh/stark-wallet/pkg/felt"
)

// ArgentAccount wraps a deployed Argent account contract. Two keys sign
// every write: the signer and the guardian, concatenated in that fixed
// order as [r_signer, s_signer, r_guardian, s_guardian]. Without a
// guardian the account can still sign read-path interactions with the
// signer alone, but writes fail fast.
type ArgentAccount struct {
	*base

	guardian atomic.Pointer[crypto.KeyPair]
}

var _ Account = (*ArgentAccount)(nil)

func NewArgentAccount(wallet contract.Invoker, signer *crypto.KeyPair, guardian *crypto.KeyPair, chainID, maxFee *big.Int) *ArgentAccount {
	a := &ArgentAccount{
		base: newBase(wallet, signer, VariantArgent, chainID, maxFee),
	}
	a.guardian.Store(guardian)
	a.base.scheme = a
	return a
}

// GuardianPublicKey returns the current guardian key, or nil when the
// account operates without one.
func (a *ArgentAccount) GuardianPublicKey() *crypto.StarkPublicKey {
	guardian := a.guardian.Load()
	if guardian == nil {
		return nil
	}
	return guardian.PublicKey
}

// SetGuardian rotates the guardian key. The in-memory key is swapped first
// and the change_guardian transaction is submitted with the new pair
// already active, matching the order the wallet contract verifies in. If
// the submission fails the local key is NOT rolled back; the caller must
// re-seat the previous guardian before further writes.
func (a *ArgentAccount) SetGuardian(ctx context.Context, guardian *crypto.KeyPair, opts InteractOptions) (string, error) {
	if guardian == nil {
		return "", errors.New("guardian key pair is required")
	}

	previous := a.guardian.Swap(guardian)

	txHash, err := a.MultiInvoke(ctx, []multicall.Call{{
		Contract: a.wallet,
		Function: "change_guardian",
		Args: map[string]any{
			"new_guardian": guardian.PublicKey.X,
		},
	}}, opts)
	if err != nil {
		a.logger.WithFields(logrus.Fields{
			"account":  felt.Hex(a.Address()),
			"previous": previousKeyHex(previous),
			"err":      err,
		}).Error("change_guardian submission failed, local guardian key kept")
		return "", errors.Wrap(err, "change guardian")
	}
	return txHash, nil
}

func (a *ArgentAccount) messageHash(plan *multicall.Plan, nonce, maxFee, version *big.Int) (*big.Int, error) {
	return txhash.Argent(a.Address(), plan, nonce, maxFee, version, a.chainID), nil
}

func (a *ArgentAccount) signatures(msgHash *big.Int) ([]*big.Int, error) {
	r1, s1, err := a.keyPair.PrivateKey.Sign(msgHash)
	if err != nil {
		return nil, errors.Wrap(err, "signer signature")
	}
	sigs := []*big.Int{r1, s1}

	guardian := a.guardian.Load()
	if guardian == nil {
		return sigs, nil
	}
	r2, s2, err := guardian.PrivateKey.Sign(msgHash)
	if err != nil {
		return nil, errors.Wrap(err, "guardian signature")
	}
	return append(sigs, r2, s2), nil
}

func (a *ArgentAccount) executionFunctionName() string {
	return "__execute__"
}

func (a *ArgentAccount) hasRawOutput() bool {
	return true
}

func (a *ArgentAccount) canSignWrites() bool {
	return a.guardian.Load() != nil
}

func previousKeyHex(pair *crypto.KeyPair) string {
	if pair == nil {
		return "<none>"
	}
	return pair.PublicKey.String()
}
