package tokenpoolregistry

import (
	"sync"
	"sync/atomic"

	"github.com/defistate/magicswap-client-go/protocols/magicswap"
	"github.com/ethereum/go-ethereum/common"
)

// TokenPoolSystem is a concurrency-safe token graph over routable Magicswap pools.
// Writes take a mutex; View reads an atomically published snapshot.
type TokenPoolSystem struct {
	mu         sync.RWMutex
	registry   *TokenPoolRegistry
	cachedView atomic.Pointer[TokenPoolRegistryView]
}

// NewTokenPoolSystem creates an empty system. compactionThreshold bounds the number of
// emptied edges kept before the graph is rebuilt.
func NewTokenPoolSystem(compactionThreshold int) *TokenPoolSystem {
	s := &TokenPoolSystem{registry: NewTokenPoolRegistry(compactionThreshold)}
	s.cachedView.Store(s.registry.view())
	return s
}

// NewTokenPoolSystemFromView creates a system from a snapshot view.
func NewTokenPoolSystemFromView(view *TokenPoolRegistryView, compactionThreshold int) *TokenPoolSystem {
	s := &TokenPoolSystem{registry: NewTokenPoolRegistryFromView(view, compactionThreshold)}
	s.cachedView.Store(s.registry.view())
	return s
}

// NewTokenPoolSystemFromPools builds the graph of every routable pool.
func NewTokenPoolSystemFromPools(pools []magicswap.Pool, compactionThreshold int) *TokenPoolSystem {
	s := &TokenPoolSystem{registry: NewTokenPoolRegistry(compactionThreshold)}
	for _, p := range pools {
		if p.IsRoutable() {
			s.registry.add(p.Token0.Address, p.Token1.Address, p.Address)
		}
	}
	s.cachedView.Store(s.registry.view())
	return s
}

// updateCachedView MUST be called with s.mu held for writing.
func (s *TokenPoolSystem) updateCachedView() {
	s.cachedView.Store(s.registry.view())
}

// AddPool adds a single pool. Pools with an empty reserve are ignored.
func (s *TokenPoolSystem) AddPool(pool magicswap.Pool) {
	s.AddPools([]magicswap.Pool{pool})
}

// AddPools adds multiple pools and publishes a single new view.
func (s *TokenPoolSystem) AddPools(pools []magicswap.Pool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for _, p := range pools {
		if !p.IsRoutable() {
			continue
		}
		s.registry.add(p.Token0.Address, p.Token1.Address, p.Address)
		changed = true
	}
	if changed {
		s.updateCachedView()
	}
}

// RemovePool removes a single pool.
func (s *TokenPoolSystem) RemovePool(pool common.Address) {
	s.RemovePools([]common.Address{pool})
}

// RemovePools removes multiple pools and publishes a single new view.
func (s *TokenPoolSystem) RemovePools(pools []common.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(pools) == 0 {
		return
	}
	for _, pool := range pools {
		s.registry.removePool(pool)
	}
	s.updateCachedView()
}

// Apply brings the graph in line with a pool snapshot diff. Updated pools whose
// reserves were drained leave the graph; refilled pools rejoin it.
func (s *TokenPoolSystem) Apply(diff magicswap.SystemDiff) {
	if diff.IsEmpty() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, pool := range diff.Deletions {
		s.registry.removePool(pool)
	}
	for _, p := range diff.Updates {
		if p.IsRoutable() {
			s.registry.add(p.Token0.Address, p.Token1.Address, p.Address)
		} else {
			s.registry.removePool(p.Address)
		}
	}
	for _, p := range diff.Additions {
		if p.IsRoutable() {
			s.registry.add(p.Token0.Address, p.Token1.Address, p.Address)
		}
	}
	s.updateCachedView()
}

// PoolsForToken lists the routable pools touching a token, in registration order.
func (s *TokenPoolSystem) PoolsForToken(token common.Address) []common.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry.poolsForToken(token)
}

// View returns a deep copy of the latest published snapshot.
func (s *TokenPoolSystem) View() *TokenPoolRegistryView {
	cached := s.cachedView.Load()
	if cached == nil {
		return &TokenPoolRegistryView{}
	}
	return deepCopyView(cached)
}
