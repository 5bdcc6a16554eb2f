package account

import (
	"github.com/pkg/errors"
)

var (
	// ErrUnsupportedOverride rejects caller-supplied signatures: signatures
	// are computed exclusively inside the account, before any network
	// interaction happens.
	ErrUnsupportedOverride = errors.New("signature cannot be supplied by the caller, accounts sign internally")

	// ErrGuardianUnavailable rejects write signing when the guardian key
	// pair is absent. An account rebound from an address without guardian
	// key material can only serve reads.
	ErrGuardianUnavailable = errors.New("guardian key pair is unavailable for signing")

	// ErrKeyMismatch is returned when the locally derived public key does
	// not equal the key the wallet contract stores on chain.
	ErrKeyMismatch = errors.New("derived public key does not match the on-chain public key")
)
