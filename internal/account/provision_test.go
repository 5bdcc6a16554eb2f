package account

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/starkmesh/stark-wallet/internal/contract"
	"github.com/starkmesh/stark-wallet/internal/contract/mock_contract"
	"github.com/starkmesh/stark-wallet/pkg/felt"
	"github.com/starkmesh/stark-wallet/pkg/repo"
)

const provisionContract = `{
	"program": {"data": ["0x1"]},
	"entry_points_by_type": {"EXTERNAL": []}
}`

const provisionABI = `[{"type": "function", "name": "get_public_key", "inputs": [], "outputs": []}]`

func seedArtifacts(t *testing.T, cfg *repo.Config) {
	t.Helper()
	for _, entry := range []struct {
		dir, version, name string
	}{
		{openZeppelinArtifactDir, cfg.Artifact.OpenZeppelinVersion, openZeppelinArtifactName},
		{argentArtifactDir, cfg.Artifact.ArgentVersion, argentArtifactName},
	} {
		dir := filepath.Join(cfg.Artifact.Path, entry.dir, entry.version)
		require.Nil(t, os.MkdirAll(dir, 0755))
		require.Nil(t, os.WriteFile(filepath.Join(dir, entry.name+".json"), []byte(provisionContract), 0644))
		require.Nil(t, os.WriteFile(filepath.Join(dir, entry.name+"_abi.json"), []byte(provisionABI), 0644))
	}
}

func newProvisioner(t *testing.T, ctrl *gomock.Controller) (*Provisioner, *mock_contract.MockDeployer, *Registry) {
	t.Helper()
	cfg := repo.DefaultConfig()
	cfg.Artifact.Path = t.TempDir()
	seedArtifacts(t, cfg)

	deployer := mock_contract.NewMockDeployer(ctrl)
	registry := NewRegistry()
	provisioner, err := NewProvisioner(cfg, deployer, registry)
	require.Nil(t, err)
	return provisioner, deployer, registry
}

func TestProvisionOpenZeppelin(t *testing.T) {
	ctrl := gomock.NewController(t)
	provisioner, deployer, registry := newProvisioner(t, ctrl)
	wallet := newWallet(t, ctrl, 0x2001)

	deployer.EXPECT().Deploy(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, artifactPath string, constructorArgs map[string]any) (contract.Invoker, error) {
			assert.True(t, strings.HasSuffix(artifactPath, filepath.Join("openzeppelin", "0.5.1", "Account.json")))
			assert.Contains(t, constructorArgs, "public_key")
			return wallet, nil
		})

	provisioned, err := provisioner.DeployFromABI(context.Background(), VariantOpenZeppelin)
	require.Nil(t, err)
	assert.Equal(t, VariantOpenZeppelin, provisioned.Account.Variant())
	assert.Nil(t, provisioned.Guardian)
	assert.Equal(t, provisioned.Signer.PublicKey.X, provisioned.Account.PublicKey().X)

	registered, ok := registry.Get(wallet.Address())
	require.True(t, ok)
	assert.Equal(t, felt.Hex(wallet.Address()), felt.Hex(registered.Address()))
}

func TestProvisionArgent(t *testing.T) {
	ctrl := gomock.NewController(t)
	provisioner, deployer, registry := newProvisioner(t, ctrl)
	wallet := newWallet(t, ctrl, 0x2002)

	deployer.EXPECT().Deploy(gomock.Any(), gomock.Any(), nil).Return(wallet, nil)
	wallet.EXPECT().Invoke(gomock.Any(), "initialize", gomock.Any(), gomock.Any()).Return("0x1", nil)

	provisioned, err := provisioner.DeployFromABI(context.Background(), VariantArgent)
	require.Nil(t, err)
	assert.Equal(t, VariantArgent, provisioned.Account.Variant())
	require.NotNil(t, provisioned.Guardian)
	assert.NotEqual(t, provisioned.Signer.PublicKey.X, provisioned.Guardian.PublicKey.X)
	assert.Equal(t, 1, registry.Count())
}

func TestProvisionUnresolvableArtifact(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := repo.DefaultConfig()
	cfg.Artifact.Path = t.TempDir() // empty tree, nothing resolvable

	provisioner, err := NewProvisioner(cfg, mock_contract.NewMockDeployer(ctrl), NewRegistry())
	require.Nil(t, err)

	_, err = provisioner.DeployFromABI(context.Background(), VariantOpenZeppelin)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "read contract artifact")
}

func TestProvisionRejectsBadVersionPin(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := repo.DefaultConfig()
	cfg.Artifact.OpenZeppelinVersion = "not-a-version"

	_, err := NewProvisioner(cfg, mock_contract.NewMockDeployer(ctrl), NewRegistry())
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "invalid OpenZeppelin artifact version")
}

func TestBindReturnsRegisteredAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	provisioner, _, registry := newProvisioner(t, ctrl)
	wallet := newWallet(t, ctrl, 0x2003)
	keyPair := mustKeyPair(t)

	existing := NewOpenZeppelinAccount(wallet, keyPair, testChainID, testMaxFee)
	registry.Put(existing)

	// no get_public_key expectation: a registered account skips the
	// on-chain key read-back entirely
	acct, err := provisioner.Bind(context.Background(), wallet, VariantOpenZeppelin, keyPair, nil)
	require.Nil(t, err)
	assert.Equal(t, felt.Hex(existing.Address()), felt.Hex(acct.Address()))
}

func TestBindVerifiesUnregisteredAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	provisioner, _, registry := newProvisioner(t, ctrl)
	wallet := newWallet(t, ctrl, 0x2004)
	keyPair := mustKeyPair(t)

	wallet.EXPECT().Call(gomock.Any(), "get_public_key", nil, contract.Options{}).
		Return([]string{felt.Hex(keyPair.PublicKey.X)}, nil)

	acct, err := provisioner.Bind(context.Background(), wallet, VariantOpenZeppelin, keyPair, nil)
	require.Nil(t, err)
	assert.Equal(t, VariantOpenZeppelin, acct.Variant())
	assert.Equal(t, 1, registry.Count())
}
