package indexer

import (
	"github.com/defistate/magicswap-client-go/protocols/magicswap"
	"github.com/ethereum/go-ethereum/common"
)

var _ IndexedMagicswap = (*IndexableMagicswapSystem)(nil)

// Indexer is a concrete Magicswap pool indexer.
type Indexer struct{}

// New creates a new Indexer.
func New() *Indexer {
	return &Indexer{}
}

// Index creates an indexed Magicswap system from a raw slice of pools.
func (i *Indexer) Index(pools []magicswap.Pool) IndexedMagicswap {
	return NewIndexableMagicswapSystem(pools)
}

type pairKey struct {
	a, b common.Address
}

func newPairKey(x, y common.Address) pairKey {
	if x.Cmp(y) > 0 {
		x, y = y, x
	}
	return pairKey{a: x, b: y}
}

// IndexableMagicswapSystem provides fast, indexed access to Magicswap pool data.
// When the same pool address appears more than once, the first occurrence wins.
type IndexableMagicswapSystem struct {
	byAddress map[common.Address]magicswap.Pool
	byPair    map[pairKey]magicswap.Pool
	byToken   map[common.Address][]int
	all       []magicswap.Pool
}

// NewIndexableMagicswapSystem creates a new indexed Magicswap system.
func NewIndexableMagicswapSystem(pools []magicswap.Pool) *IndexableMagicswapSystem {
	s := &IndexableMagicswapSystem{
		byAddress: make(map[common.Address]magicswap.Pool, len(pools)),
		byPair:    make(map[pairKey]magicswap.Pool, len(pools)),
		byToken:   make(map[common.Address][]int),
		all:       make([]magicswap.Pool, 0, len(pools)),
	}

	for _, p := range pools {
		if _, ok := s.byAddress[p.Address]; ok {
			continue
		}
		idx := len(s.all)
		s.all = append(s.all, p)
		s.byAddress[p.Address] = p

		key := newPairKey(p.Token0.Address, p.Token1.Address)
		if _, ok := s.byPair[key]; !ok {
			s.byPair[key] = p
		}
		s.byToken[p.Token0.Address] = append(s.byToken[p.Token0.Address], idx)
		s.byToken[p.Token1.Address] = append(s.byToken[p.Token1.Address], idx)
	}
	return s
}

// GetByAddress retrieves a pool by its pair address.
func (s *IndexableMagicswapSystem) GetByAddress(address common.Address) (magicswap.Pool, bool) {
	p, ok := s.byAddress[address]
	return p, ok
}

// GetByPair retrieves the pool pairing two tokens, in either order.
func (s *IndexableMagicswapSystem) GetByPair(tokenA, tokenB common.Address) (magicswap.Pool, bool) {
	p, ok := s.byPair[newPairKey(tokenA, tokenB)]
	return p, ok
}

// PoolsForToken returns every pool containing token, in input order.
func (s *IndexableMagicswapSystem) PoolsForToken(token common.Address) []magicswap.Pool {
	idxs := s.byToken[token]
	out := make([]magicswap.Pool, len(idxs))
	for i, idx := range idxs {
		out[i] = s.all[idx]
	}
	return out
}

// All returns a copy of the slice of all pools.
func (s *IndexableMagicswapSystem) All() []magicswap.Pool {
	allCopy := make([]magicswap.Pool, len(s.all))
	copy(allCopy, s.all)
	return allCopy
}
