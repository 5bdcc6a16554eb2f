package account

import (
	"context"
	"math/big"

	"github.com/pkg/errors"

	"github.com/starkmesh/stark-wallet/internal/contract"
	"github.com/starkmesh/stark-wallet/pkg/crypto"
	"github.com/starkmesh/stark-wallet/pkg/felt"
)

// DeployOpenZeppelin deploys an OpenZeppelin account contract bound to the
// given key pair and returns the live account.
func DeployOpenZeppelin(ctx context.Context, deployer contract.Deployer, artifactPath string, keyPair *crypto.KeyPair, chainID, maxFee *big.Int) (*OpenZeppelinAccount, error) {
	wallet, err := deployer.Deploy(ctx, artifactPath, map[string]any{
		"public_key": keyPair.PublicKey.X,
	})
	if err != nil {
		return nil, errors.Wrap(err, "deploy OpenZeppelin account contract")
	}
	return NewOpenZeppelinAccount(wallet, keyPair, chainID, maxFee), nil
}

// DeployArgent deploys an Argent account contract and runs its initialize
// entrypoint with the signer and guardian keys. A nil guardian initializes
// the guardian slot to zero; the resulting account can read but not write
// until SetGuardian seats one.
func DeployArgent(ctx context.Context, deployer contract.Deployer, artifactPath string, signer, guardian *crypto.KeyPair, chainID, maxFee *big.Int) (*ArgentAccount, error) {
	wallet, err := deployer.Deploy(ctx, artifactPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "deploy Argent account contract")
	}

	guardianKey := big.NewInt(0)
	if guardian != nil {
		guardianKey = guardian.PublicKey.X
	}
	if _, err := wallet.Invoke(ctx, "initialize", map[string]any{
		"signer":   signer.PublicKey.X,
		"guardian": guardianKey,
	}, contract.Options{MaxFee: maxFee}); err != nil {
		return nil, errors.Wrap(err, "initialize Argent account contract")
	}
	return NewArgentAccount(wallet, signer, guardian, chainID, maxFee), nil
}

// FromAddress rebinds a local key pair to an already deployed wallet. The
// on-chain key is read back and must match the local one; a mismatch means
// the caller holds the wrong key and every signature it would produce is
// unverifiable, so binding is refused.
func FromAddress(ctx context.Context, wallet contract.Invoker, variant Variant, keyPair *crypto.KeyPair, guardian *crypto.KeyPair, chainID, maxFee *big.Int) (Account, error) {
	switch variant {
	case VariantOpenZeppelin:
		if err := verifyOnChainKey(ctx, wallet, "get_public_key", keyPair); err != nil {
			return nil, err
		}
		return NewOpenZeppelinAccount(wallet, keyPair, chainID, maxFee), nil
	case VariantArgent:
		if err := verifyOnChainKey(ctx, wallet, "get_signer", keyPair); err != nil {
			return nil, err
		}
		return NewArgentAccount(wallet, keyPair, guardian, chainID, maxFee), nil
	default:
		return nil, errors.Errorf("unknown account variant %q", variant)
	}
}

func verifyOnChainKey(ctx context.Context, wallet contract.Invoker, entrypoint string, keyPair *crypto.KeyPair) error {
	out, err := wallet.Call(ctx, entrypoint, nil, contract.Options{})
	if err != nil {
		return errors.Wrapf(err, "read %s from account %s", entrypoint, felt.Hex(wallet.Address()))
	}
	if len(out) == 0 {
		return errors.Errorf("account %s returned empty %s response", felt.Hex(wallet.Address()), entrypoint)
	}
	onChain, err := felt.Encode(out[0])
	if err != nil {
		return errors.Wrapf(err, "parse %s response", entrypoint)
	}
	if onChain.Cmp(keyPair.PublicKey.X) != 0 {
		return errors.Wrapf(ErrKeyMismatch, "account %s holds key %s, local key is %s",
			felt.Hex(wallet.Address()), felt.Hex(onChain), felt.Hex(keyPair.PublicKey.X))
	}
	return nil
}
