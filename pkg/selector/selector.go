package selector

import (
	"math/big"
	"sync"

	"github.com/NethermindEth/starknet.go/utils"
	lru "github.com/hashicorp/golang-lru/v2"
)

const cacheSize = 256

var (
	initOnce sync.Once
	cache    *lru.Cache[string, *big.Int]
)

func getCache() *lru.Cache[string, *big.Int] {
	initOnce.Do(func() {
		// lru.New only fails on a non-positive size
		cache, _ = lru.New[string, *big.Int](cacheSize)
	})
	return cache
}

// Of derives the entrypoint selector for a function name. Derivation is a
// pure hash, so results are memoized; callers receive a private copy.
func Of(name string) *big.Int {
	c := getCache()
	if sel, ok := c.Get(name); ok {
		return new(big.Int).Set(sel)
	}
	sel := utils.GetSelectorFromName(name)
	c.Add(name, new(big.Int).Set(sel))
	return sel
}

// Cached reports whether a selector is already memoized.
func Cached(name string) bool {
	return getCache().Contains(name)
}
