package artifact

import (
	"os"
	"path/filepath"

	"github.com/coreos/go-semver/semver"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/starkmesh/stark-wallet/pkg/loggers"
)

// Compiled contract artifacts live in a version-pinned tree:
//
//	<root>/<variant>/<version>/<name>.json
//	<root>/<variant>/<version>/<name>_abi.json
//
// The resolver never compiles anything; it only locates and sanity-checks
// artifacts a build step produced earlier.
type Resolver struct {
	root   string
	logger logrus.FieldLogger
}

// Artifact is a resolved pair of compiled contract and ABI files.
type Artifact struct {
	ContractPath string
	ABIPath      string
	Version      *semver.Version
}

func NewResolver(root string) *Resolver {
	return &Resolver{
		root:   root,
		logger: loggers.Logger(loggers.Artifact),
	}
}

// Resolve locates the artifact pair for one contract at a pinned version
// and verifies both files carry the sections a gateway deployment needs.
func (r *Resolver) Resolve(variant, name string, version *semver.Version) (*Artifact, error) {
	dir := filepath.Join(r.root, variant, version.String())
	contractPath := filepath.Join(dir, name+".json")
	abiPath := filepath.Join(dir, name+"_abi.json")

	if err := r.checkContract(contractPath); err != nil {
		return nil, err
	}
	if err := r.checkABI(abiPath); err != nil {
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"variant": variant,
		"name":    name,
		"version": version.String(),
	}).Debug("artifact resolved")

	return &Artifact{
		ContractPath: contractPath,
		ABIPath:      abiPath,
		Version:      version,
	}, nil
}

func (r *Resolver) checkContract(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read contract artifact %s", path)
	}
	if !gjson.ValidBytes(raw) {
		return errors.Errorf("contract artifact %s is not valid JSON", path)
	}
	if !gjson.GetBytes(raw, "program").Exists() {
		return errors.Errorf("contract artifact %s has no program section", path)
	}
	if !gjson.GetBytes(raw, "entry_points_by_type").Exists() {
		return errors.Errorf("contract artifact %s has no entry points", path)
	}
	return nil
}

func (r *Resolver) checkABI(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read ABI %s", path)
	}
	if !gjson.ValidBytes(raw) {
		return errors.Errorf("ABI %s is not valid JSON", path)
	}
	abi := gjson.ParseBytes(raw)
	if !abi.IsArray() {
		return errors.Errorf("ABI %s is not a JSON array", path)
	}
	if len(abi.Array()) == 0 {
		return errors.Errorf("ABI %s declares no entries", path)
	}
	return nil
}
