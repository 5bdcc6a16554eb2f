package crypto

import (
	"encoding/json"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	keystorev4 "github.com/wealdtech/go-eth2-wallet-encryptor-keystorev4"
)

// KeystoreInfo is the on-disk form of an encrypted Stark key.
type KeystoreInfo struct {
	KeyType     string            `json:"key_type"`
	PrivateKey  map[string]any    `json:"private_key"`
	PublicKey   string            `json:"public_key"`
	Version     uint              `json:"version"`
	Description string            `json:"description"`
	Extra       map[string]string `json:"extra"`
}

// Keystore holds a Stark key pair together with its persistence state. The
// private key stays encrypted until DecryptPrivateKey is called.
type Keystore struct {
	version             uint
	encryptedPrivateKey map[string]any

	Path        string
	Description string
	PrivateKey  *StarkPrivateKey
	PublicKey   *StarkPublicKey
	Password    string
	Extra       map[string]string
}

func ReadKeystoreInfo(path string) (*KeystoreInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read keystore %s", path)
	}
	var info KeystoreInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal keystore %s", path)
	}
	return &info, nil
}

func WriteKeystoreInfo(path string, info *KeystoreInfo) error {
	raw, err := json.MarshalIndent(info, "", "\t")
	if err != nil {
		return errors.Wrapf(err, "failed to marshal keystore %s", path)
	}

	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return errors.Wrapf(err, "failed to write keystore %s", path)
	}
	return nil
}

func ReadKeystore(path string) (*Keystore, error) {
	info, err := ReadKeystoreInfo(path)
	if err != nil {
		return nil, err
	}
	if info.KeyType != KeyTypeStark {
		return nil, errors.Errorf("keystore %s holds a %q key, want %q", path, info.KeyType, KeyTypeStark)
	}

	publicKey := &StarkPublicKey{}
	if err := publicKey.Unmarshal(hexutil.MustDecode(info.PublicKey)); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal public key in keystore %s", path)
	}

	return &Keystore{
		version:             info.Version,
		encryptedPrivateKey: info.PrivateKey,
		Path:                path,
		Description:         info.Description,
		PublicKey:           publicKey,
		Extra:               info.Extra,
	}, nil
}

func NewKeystore(path string, keyPair *KeyPair, password string) *Keystore {
	return &Keystore{
		Path:       path,
		PrivateKey: keyPair.PrivateKey,
		PublicKey:  keyPair.PublicKey,
		Password:   password,
	}
}

func (ks *Keystore) DecryptPrivateKey(password string) error {
	decoder := keystorev4.New()
	if ks.version != decoder.Version() {
		return errors.Errorf("keystore %s has invalid version %d, expected %d", ks.Path, ks.version, decoder.Version())
	}

	privateKeyBytes, err := decoder.Decrypt(ks.encryptedPrivateKey, password)
	if err != nil {
		return errors.Wrapf(err, "failed to decrypt private key in keystore %s", ks.Path)
	}
	privateKey := &StarkPrivateKey{}
	if err := privateKey.Unmarshal(privateKeyBytes); err != nil {
		return errors.Wrapf(err, "failed to unmarshal private key in keystore %s", ks.Path)
	}

	ks.PrivateKey = privateKey
	ks.Password = password
	return nil
}

func (ks *Keystore) KeyPair() (*KeyPair, error) {
	if ks.PrivateKey == nil {
		return nil, errors.Errorf("keystore %s is not decrypted", ks.Path)
	}
	return NewKeyPair(ks.PrivateKey)
}

func (ks *Keystore) Write() error {
	privateKeyBytes, err := ks.PrivateKey.Marshal()
	if err != nil {
		return errors.Wrapf(err, "failed to marshal private key in keystore %s", ks.Path)
	}
	publicKeyBytes, err := ks.PublicKey.Marshal()
	if err != nil {
		return errors.Wrapf(err, "failed to marshal public key in keystore %s", ks.Path)
	}

	encoder := keystorev4.New()
	encryptedPrivateKey, err := encoder.Encrypt(privateKeyBytes, ks.Password)
	if err != nil {
		return errors.Wrapf(err, "failed to encrypt private key in keystore %s", ks.Path)
	}
	return WriteKeystoreInfo(ks.Path, &KeystoreInfo{
		KeyType:     KeyTypeStark,
		PrivateKey:  encryptedPrivateKey,
		PublicKey:   hexutil.Encode(publicKeyBytes),
		Version:     encoder.Version(),
		Description: ks.Description,
		Extra:       ks.Extra,
	})
}
