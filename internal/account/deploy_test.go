package account

import (
	"context"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/starkmesh/stark-wallet/internal/contract"
	"github.com/starkmesh/stark-wallet/internal/contract/mock_contract"
	"github.com/starkmesh/stark-wallet/pkg/felt"
)

func TestDeployOpenZeppelin(t *testing.T) {
	ctrl := gomock.NewController(t)
	wallet := newWallet(t, ctrl, 0x1001)
	keyPair := mustKeyPair(t)

	deployer := mock_contract.NewMockDeployer(ctrl)
	deployer.EXPECT().Deploy(gomock.Any(), "artifacts/openzeppelin/Account.json", map[string]any{
		"public_key": keyPair.PublicKey.X,
	}).Return(wallet, nil)

	acct, err := DeployOpenZeppelin(context.Background(), deployer, "artifacts/openzeppelin/Account.json", keyPair, testChainID, testMaxFee)
	require.Nil(t, err)
	assert.Equal(t, VariantOpenZeppelin, acct.Variant())
	assert.Equal(t, big.NewInt(0x1001), acct.Address())
	assert.Equal(t, keyPair.PublicKey.X, acct.PublicKey().X)
}

func TestDeployArgentInitializes(t *testing.T) {
	ctrl := gomock.NewController(t)
	wallet := newWallet(t, ctrl, 0x1002)
	signer := mustKeyPair(t)
	guardian := mustKeyPair(t)

	deployer := mock_contract.NewMockDeployer(ctrl)
	deployer.EXPECT().Deploy(gomock.Any(), "artifacts/argent/ArgentAccount.json", nil).Return(wallet, nil)
	wallet.EXPECT().Invoke(gomock.Any(), "initialize", map[string]any{
		"signer":   signer.PublicKey.X,
		"guardian": guardian.PublicKey.X,
	}, contract.Options{MaxFee: testMaxFee}).Return("0x1", nil)

	acct, err := DeployArgent(context.Background(), deployer, "artifacts/argent/ArgentAccount.json", signer, guardian, testChainID, testMaxFee)
	require.Nil(t, err)
	assert.Equal(t, VariantArgent, acct.Variant())
	assert.Equal(t, guardian.PublicKey.X, acct.GuardianPublicKey().X)
}

func TestDeployArgentWithoutGuardian(t *testing.T) {
	ctrl := gomock.NewController(t)
	wallet := newWallet(t, ctrl, 0x1003)
	signer := mustKeyPair(t)

	deployer := mock_contract.NewMockDeployer(ctrl)
	deployer.EXPECT().Deploy(gomock.Any(), gomock.Any(), nil).Return(wallet, nil)
	wallet.EXPECT().Invoke(gomock.Any(), "initialize", map[string]any{
		"signer":   signer.PublicKey.X,
		"guardian": big.NewInt(0),
	}, gomock.Any()).Return("0x1", nil)

	acct, err := DeployArgent(context.Background(), deployer, "artifacts/argent/ArgentAccount.json", signer, nil, testChainID, testMaxFee)
	require.Nil(t, err)
	assert.Nil(t, acct.GuardianPublicKey())
}

func TestFromAddressVerifiesKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	wallet := newWallet(t, ctrl, 0x1004)
	keyPair := mustKeyPair(t)

	wallet.EXPECT().Call(gomock.Any(), "get_public_key", nil, contract.Options{}).
		Return([]string{felt.Hex(keyPair.PublicKey.X)}, nil)

	acct, err := FromAddress(context.Background(), wallet, VariantOpenZeppelin, keyPair, nil, testChainID, testMaxFee)
	require.Nil(t, err)
	assert.Equal(t, VariantOpenZeppelin, acct.Variant())
}

func TestFromAddressRejectsForeignKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	wallet := newWallet(t, ctrl, 0x1005)
	localKey := mustKeyPair(t)
	onChainKey := mustKeyPair(t)

	wallet.EXPECT().Call(gomock.Any(), "get_public_key", nil, contract.Options{}).
		Return([]string{felt.Hex(onChainKey.PublicKey.X)}, nil)

	_, err := FromAddress(context.Background(), wallet, VariantOpenZeppelin, localKey, nil, testChainID, testMaxFee)
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrKeyMismatch))
}

func TestFromAddressArgentReadsSigner(t *testing.T) {
	ctrl := gomock.NewController(t)
	wallet := newWallet(t, ctrl, 0x1006)
	signer := mustKeyPair(t)
	guardian := mustKeyPair(t)

	wallet.EXPECT().Call(gomock.Any(), "get_signer", nil, contract.Options{}).
		Return([]string{felt.Hex(signer.PublicKey.X)}, nil)

	acct, err := FromAddress(context.Background(), wallet, VariantArgent, signer, guardian, testChainID, testMaxFee)
	require.Nil(t, err)
	assert.Equal(t, VariantArgent, acct.Variant())
}

func TestFromAddressUnknownVariant(t *testing.T) {
	ctrl := gomock.NewController(t)
	wallet := newWallet(t, ctrl, 0x1007)

	_, err := FromAddress(context.Background(), wallet, Variant("Braavos"), mustKeyPair(t), nil, testChainID, testMaxFee)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "unknown account variant")
}
