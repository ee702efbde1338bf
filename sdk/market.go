package sdk

import (
	"fmt"
	"sync"

	"github.com/defistate/magicswap-client-go/protocols/magicswap"
	poolindexer "github.com/defistate/magicswap-client-go/protocols/magicswap/indexer"
	"github.com/defistate/magicswap-client-go/protocols/tokenpoolregistry"
	"github.com/defistate/magicswap-client-go/protocols/tokenregistry"
	tokenindexer "github.com/defistate/magicswap-client-go/protocols/tokenregistry/indexer"
	"github.com/defistate/magicswap-client-go/router"
	"github.com/ethereum/go-ethereum/common"
)

// DefaultCompactionThreshold is the number of dangling graph edges tolerated before the
// market's token graph is compacted.
const DefaultCompactionThreshold = 64

// Market caches one pool snapshot with its indexes and routing graph. Refresh moves it
// to a newer snapshot by applying only what changed. Readers never observe a partially
// updated market.
type Market struct {
	mu sync.RWMutex

	pools     []magicswap.Pool
	tokenList []tokenregistry.Token
	system    *tokenpoolregistry.TokenPoolSystem
	graph     *router.Graph
	index     poolindexer.IndexedMagicswap
	tokens    tokenindexer.IndexedTokenSystem
}

// MarketDiff is what a Refresh changed.
type MarketDiff struct {
	Pools  magicswap.SystemDiff          `json:"pools"`
	Tokens tokenregistry.TokenSystemDiff `json:"tokens"`
}

// IsEmpty returns true if neither pools nor tokens changed.
func (d MarketDiff) IsEmpty() bool {
	return d.Pools.IsEmpty() && d.Tokens.IsEmpty()
}

// NewMarket builds a market from a snapshot. The market keeps its own copy of pools.
func NewMarket(pools []magicswap.Pool, compactionThreshold int) *Market {
	if compactionThreshold <= 0 {
		compactionThreshold = DefaultCompactionThreshold
	}
	owned := make([]magicswap.Pool, len(pools))
	for i, p := range pools {
		owned[i] = magicswap.ClonePool(p)
	}
	m := &Market{
		pools:     owned,
		tokenList: uniqueTokens(owned),
		system:    tokenpoolregistry.NewTokenPoolSystemFromPools(owned, compactionThreshold),
	}
	m.reindex()
	return m
}

// reindex rebuilds the read-side structures. Callers hold the write lock or own m.
func (m *Market) reindex() {
	m.graph = router.NewGraphFromView(m.system.View(), m.pools)
	m.index = poolindexer.New().Index(m.pools)
	m.tokens = tokenindexer.New().Index(m.tokenList)
}

// Refresh moves the market to next and returns what changed. Token metadata and
// prices are tracked separately from reserves, so a repriced token updates every pool
// that holds it.
func (m *Market) Refresh(next []magicswap.Pool) (MarketDiff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	diff := MarketDiff{
		Pools:  magicswap.Differ(m.pools, next),
		Tokens: tokenregistry.Differ(m.tokenList, uniqueTokens(next)),
	}
	if diff.IsEmpty() {
		return diff, nil
	}

	pools := m.pools
	if !diff.Pools.IsEmpty() {
		patched, err := magicswap.Patcher(m.pools, diff.Pools)
		if err != nil {
			return MarketDiff{}, fmt.Errorf("patch market pools: %w", err)
		}
		pools = patched
	}
	tokens := m.tokenList
	if !diff.Tokens.IsEmpty() {
		patched, err := tokenregistry.Patcher(m.tokenList, diff.Tokens)
		if err != nil {
			return MarketDiff{}, fmt.Errorf("patch market tokens: %w", err)
		}
		tokens = patched
		pools = withTokens(pools, tokens)
	}

	m.system.Apply(diff.Pools)
	m.pools = pools
	m.tokenList = tokens
	m.reindex()
	return diff, nil
}

// Graph returns the routing graph of the current snapshot.
func (m *Market) Graph() *router.Graph {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.graph
}

// Pools returns the current snapshot.
func (m *Market) Pools() []magicswap.Pool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.index.All()
}

// Pool returns the pool at address in the current snapshot.
func (m *Market) Pool(address common.Address) (magicswap.Pool, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.index.GetByAddress(address)
}

// PoolForPair returns the first pool pairing two tokens, in either order.
func (m *Market) PoolForPair(tokenA, tokenB common.Address) (magicswap.Pool, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.index.GetByPair(tokenA, tokenB)
}

// PoolsForToken lists the pools holding a token, drained ones included.
func (m *Market) PoolsForToken(token common.Address) []magicswap.Pool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.index.PoolsForToken(token)
}

// Token returns the token with the given address from the current snapshot.
func (m *Market) Token(address common.Address) (tokenregistry.Token, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tokens.GetByAddress(address)
}

// Tokens returns every token held by a pool of the current snapshot.
func (m *Market) Tokens() []tokenregistry.Token {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tokens.All()
}

func uniqueTokens(pools []magicswap.Pool) []tokenregistry.Token {
	seen := make(map[common.Address]struct{}, 2*len(pools))
	tokens := make([]tokenregistry.Token, 0, 2*len(pools))
	for _, p := range pools {
		for _, t := range [2]tokenregistry.Token{p.Token0, p.Token1} {
			if _, ok := seen[t.Address]; ok {
				continue
			}
			seen[t.Address] = struct{}{}
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// withTokens returns a copy of pools whose token metadata is taken from tokens.
func withTokens(pools []magicswap.Pool, tokens []tokenregistry.Token) []magicswap.Pool {
	byAddress := make(map[common.Address]tokenregistry.Token, len(tokens))
	for _, t := range tokens {
		byAddress[t.Address] = t
	}
	out := make([]magicswap.Pool, len(pools))
	for i, p := range pools {
		if t, ok := byAddress[p.Token0.Address]; ok {
			p.Token0 = t
		}
		if t, ok := byAddress[p.Token1.Address]; ok {
			p.Token1 = t
		}
		out[i] = p
	}
	return out
}
