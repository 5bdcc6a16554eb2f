package account

import (
	"math/big"

	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/starkmesh/stark-wallet/pkg/felt"
)

// Registry keeps live accounts keyed by address so concurrent callers share
// one instance (and therefore one guardian key and nonce source) per wallet.
type Registry struct {
	accounts cmap.ConcurrentMap[string, Account]
}

func NewRegistry() *Registry {
	return &Registry{
		accounts: cmap.New[Account](),
	}
}

func (r *Registry) Put(account Account) {
	r.accounts.Set(felt.Hex(account.Address()), account)
}

func (r *Registry) Get(address *big.Int) (Account, bool) {
	return r.accounts.Get(felt.Hex(address))
}

func (r *Registry) Remove(address *big.Int) {
	r.accounts.Remove(felt.Hex(address))
}

func (r *Registry) Count() int {
	return r.accounts.Count()
}

func (r *Registry) Range(fn func(address string, account Account) bool) {
	for entry := range r.accounts.IterBuffered() {
		if !fn(entry.Key, entry.Val) {
			return
		}
	}
}
