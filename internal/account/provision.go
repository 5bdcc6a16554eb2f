package account

import (
	"context"
	"math/big"

	"github.com/coreos/go-semver/semver"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/starkmesh/stark-wallet/internal/artifact"
	"github.com/starkmesh/stark-wallet/internal/contract"
	"github.com/starkmesh/stark-wallet/internal/txhash"
	"github.com/starkmesh/stark-wallet/pkg/crypto"
	"github.com/starkmesh/stark-wallet/pkg/felt"
	"github.com/starkmesh/stark-wallet/pkg/loggers"
	"github.com/starkmesh/stark-wallet/pkg/repo"
)

// Artifact names inside the version-pinned tree, per variant.
const (
	openZeppelinArtifactDir  = "openzeppelin"
	openZeppelinArtifactName = "Account"
	argentArtifactDir        = "argent"
	argentArtifactName       = "ArgentAccount"
)

// Provisioner creates accounts end to end: resolve the pinned compiled
// artifact, generate fresh keys, deploy through the deployer collaborator
// and register the bound account.
type Provisioner struct {
	deployer contract.Deployer
	resolver *artifact.Resolver
	registry *Registry
	chainID  *big.Int
	maxFee   *big.Int

	openZeppelinVersion *semver.Version
	argentVersion       *semver.Version

	logger logrus.FieldLogger
}

// Provisioned bundles a freshly deployed account with the generated key
// material the caller must persist. Guardian is nil for OpenZeppelin.
type Provisioned struct {
	Account  Account
	Signer   *crypto.KeyPair
	Guardian *crypto.KeyPair
}

func NewProvisioner(cfg *repo.Config, deployer contract.Deployer, registry *Registry) (*Provisioner, error) {
	ozVersion, err := semver.NewVersion(cfg.Artifact.OpenZeppelinVersion)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid OpenZeppelin artifact version %q", cfg.Artifact.OpenZeppelinVersion)
	}
	argentVersion, err := semver.NewVersion(cfg.Artifact.ArgentVersion)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid Argent artifact version %q", cfg.Artifact.ArgentVersion)
	}

	return &Provisioner{
		deployer:            deployer,
		resolver:            artifact.NewResolver(cfg.Artifact.Path),
		registry:            registry,
		chainID:             txhash.ChainID(cfg.Network.ChainID),
		maxFee:              new(big.Int).SetUint64(cfg.Account.DefaultMaxFee),
		openZeppelinVersion: ozVersion,
		argentVersion:       argentVersion,
		logger:              loggers.Logger(loggers.Account),
	}, nil
}

// DeployFromABI deploys a fresh wallet of the given variant with newly
// generated keys and registers it.
func (p *Provisioner) DeployFromABI(ctx context.Context, variant Variant) (*Provisioned, error) {
	switch variant {
	case VariantOpenZeppelin:
		return p.deployOpenZeppelin(ctx)
	case VariantArgent:
		return p.deployArgent(ctx)
	default:
		return nil, errors.Errorf("unknown account variant %q", variant)
	}
}

func (p *Provisioner) deployOpenZeppelin(ctx context.Context) (*Provisioned, error) {
	art, err := p.resolver.Resolve(openZeppelinArtifactDir, openZeppelinArtifactName, p.openZeppelinVersion)
	if err != nil {
		return nil, err
	}
	signer, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, errors.Wrap(err, "generate signer key pair")
	}

	acct, err := DeployOpenZeppelin(ctx, p.deployer, art.ContractPath, signer, p.chainID, p.maxFee)
	if err != nil {
		return nil, err
	}
	p.registry.Put(acct)
	p.logDeployed(acct)
	return &Provisioned{Account: acct, Signer: signer}, nil
}

func (p *Provisioner) deployArgent(ctx context.Context) (*Provisioned, error) {
	art, err := p.resolver.Resolve(argentArtifactDir, argentArtifactName, p.argentVersion)
	if err != nil {
		return nil, err
	}
	signer, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, errors.Wrap(err, "generate signer key pair")
	}
	guardian, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, errors.Wrap(err, "generate guardian key pair")
	}

	acct, err := DeployArgent(ctx, p.deployer, art.ContractPath, signer, guardian, p.chainID, p.maxFee)
	if err != nil {
		return nil, err
	}
	p.registry.Put(acct)
	p.logDeployed(acct)
	return &Provisioned{Account: acct, Signer: signer, Guardian: guardian}, nil
}

// Bind attaches a key pair to an already deployed wallet, reusing the
// registered account when one exists for the address so concurrent callers
// share nonce tracking and guardian state.
func (p *Provisioner) Bind(ctx context.Context, wallet contract.Invoker, variant Variant, keyPair, guardian *crypto.KeyPair) (Account, error) {
	if existing, ok := p.registry.Get(wallet.Address()); ok {
		return existing, nil
	}

	acct, err := FromAddress(ctx, wallet, variant, keyPair, guardian, p.chainID, p.maxFee)
	if err != nil {
		return nil, err
	}
	p.registry.Put(acct)
	return acct, nil
}

func (p *Provisioner) logDeployed(acct Account) {
	p.logger.WithFields(logrus.Fields{
		"address": felt.Hex(acct.Address()),
		"variant": acct.Variant(),
	}).Info("account deployed")
}
