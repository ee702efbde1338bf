package tokenpoolregistry

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// TokenPoolRegistryView is a complete snapshot of the token graph. Tokens are nodes,
// each directed edge joins two tokens and lists every pool that trades the pair.
// Consumers that run their own traversal work directly on these slices.
type TokenPoolRegistryView struct {
	Tokens      []common.Address `json:"tokens"`
	Pools       []common.Address `json:"pools"`
	Adjacency   [][]int          `json:"adjacency"`
	EdgeTargets []int            `json:"edgeTargets"`
	EdgePools   [][]int          `json:"edgePools"`
}

// TokenIndex returns the node index of a token, or -1.
func (v *TokenPoolRegistryView) TokenIndex(token common.Address) int {
	for i, t := range v.Tokens {
		if t == token {
			return i
		}
	}
	return -1
}

// TokenPoolRegistry is the mutable adjacency behind a view. It is not safe for
// concurrent use; TokenPoolSystem adds the locking.
type TokenPoolRegistry struct {
	tokenToIndex map[common.Address]int
	poolToIndex  map[common.Address]int

	tokens              []common.Address
	pools               []common.Address
	adjacency           [][]int
	edgeTargets         []int
	edgePools           [][]int
	danglingEdgeCount   int
	compactionThreshold int
}

// NewTokenPoolRegistry returns an empty registry. Non-positive thresholds take the default.
func NewTokenPoolRegistry(compactionThreshold int) *TokenPoolRegistry {
	if compactionThreshold <= 0 {
		compactionThreshold = 1000
	}
	return &TokenPoolRegistry{
		tokenToIndex:        make(map[common.Address]int),
		poolToIndex:         make(map[common.Address]int),
		tokens:              make([]common.Address, 0),
		pools:               make([]common.Address, 0),
		adjacency:           make([][]int, 0),
		edgeTargets:         make([]int, 0),
		edgePools:           make([][]int, 0),
		compactionThreshold: compactionThreshold,
	}
}

// NewTokenPoolRegistryFromView reconstructs a registry from a view snapshot. The
// registry takes a deep copy and never shares memory with the view.
func NewTokenPoolRegistryFromView(view *TokenPoolRegistryView, compactionThreshold int) *TokenPoolRegistry {
	r := NewTokenPoolRegistry(compactionThreshold)
	if view == nil {
		return r
	}
	v := deepCopyView(view)
	for i, token := range v.Tokens {
		r.tokenToIndex[token] = i
	}
	for i, pool := range v.Pools {
		r.poolToIndex[pool] = i
	}
	r.tokens = v.Tokens
	r.pools = v.Pools
	r.adjacency = v.Adjacency
	r.edgeTargets = v.EdgeTargets
	r.edgePools = v.EdgePools
	// A snapshot may carry emptied edges from its source registry.
	for _, poolList := range r.edgePools {
		if len(poolList) == 0 {
			r.danglingEdgeCount++
		}
	}
	return r
}

func (r *TokenPoolRegistry) tokenIndex(token common.Address) int {
	idx, exists := r.tokenToIndex[token]
	if !exists {
		idx = len(r.tokens)
		r.tokens = append(r.tokens, token)
		r.tokenToIndex[token] = idx
		r.adjacency = append(r.adjacency, nil)
	}
	return idx
}

// addEdge creates or updates a directed edge from one token to another, associating
// it with the given pool.
func (r *TokenPoolRegistry) addEdge(from, to, pool common.Address) {
	fromIndex := r.tokenIndex(from)
	toIndex := r.tokenIndex(to)
	poolIndex, exists := r.poolToIndex[pool]
	if !exists {
		poolIndex = len(r.pools)
		r.pools = append(r.pools, pool)
		r.poolToIndex[pool] = poolIndex
	}

	for _, edgeIndex := range r.adjacency[fromIndex] {
		if r.edgeTargets[edgeIndex] != toIndex {
			continue
		}
		for _, existing := range r.edgePools[edgeIndex] {
			if existing == poolIndex {
				return
			}
		}
		if len(r.edgePools[edgeIndex]) == 0 {
			r.danglingEdgeCount--
		}
		r.edgePools[edgeIndex] = append(r.edgePools[edgeIndex], poolIndex)
		return
	}

	newEdgeIndex := len(r.edgeTargets)
	r.edgeTargets = append(r.edgeTargets, toIndex)
	r.edgePools = append(r.edgePools, []int{poolIndex})
	r.adjacency[fromIndex] = append(r.adjacency[fromIndex], newEdgeIndex)
}

// add connects the two tokens of a pair in both directions.
func (r *TokenPoolRegistry) add(token0, token1, pool common.Address) {
	r.addEdge(token0, token1, pool)
	r.addEdge(token1, token0, pool)
}

// removePool drops a pool from every edge it sits on. Edges left without pools stay in
// place as dangling until the next compaction.
func (r *TokenPoolRegistry) removePool(pool common.Address) {
	poolIndexToRemove, exists := r.poolToIndex[pool]
	if !exists {
		return
	}

	for edgeIndex, poolList := range r.edgePools {
		if len(poolList) == 0 {
			continue
		}
		newPoolList := poolList[:0]
		wasRemoved := false
		for _, pIndex := range poolList {
			if pIndex != poolIndexToRemove {
				newPoolList = append(newPoolList, pIndex)
			} else {
				wasRemoved = true
			}
		}
		if wasRemoved {
			r.edgePools[edgeIndex] = newPoolList
			if len(newPoolList) == 0 {
				r.danglingEdgeCount++
			}
		}
	}

	if r.danglingEdgeCount > r.compactionThreshold {
		r.compact()
	}
}

// compact renumbers tokens, pools and edges so that only live edges remain.
func (r *TokenPoolRegistry) compact() {
	if r.danglingEdgeCount == 0 {
		return
	}

	// Live edges first.
	oldToNewEdgeIndex := make(map[int]int, len(r.edgeTargets))
	newEdgeTargets := make([]int, 0, len(r.edgeTargets))
	newEdgePools := make([][]int, 0, len(r.edgePools))
	for readIdx, poolList := range r.edgePools {
		if len(poolList) > 0 {
			oldToNewEdgeIndex[readIdx] = len(newEdgeTargets)
			newEdgeTargets = append(newEdgeTargets, r.edgeTargets[readIdx])
			newEdgePools = append(newEdgePools, poolList)
		}
	}

	// Tokens and pools still referenced by a live edge.
	usedTokens := make(map[int]struct{})
	usedPools := make(map[int]struct{})
	for _, tokenIndex := range newEdgeTargets {
		usedTokens[tokenIndex] = struct{}{}
	}
	for i, adj := range r.adjacency {
		for _, oldEdgeIdx := range adj {
			if _, ok := oldToNewEdgeIndex[oldEdgeIdx]; ok {
				usedTokens[i] = struct{}{}
				break
			}
		}
	}
	for _, poolList := range newEdgePools {
		for _, poolIndex := range poolList {
			usedPools[poolIndex] = struct{}{}
		}
	}

	oldToNewTokenIndex := make(map[int]int, len(usedTokens))
	finalTokens := make([]common.Address, 0, len(usedTokens))
	finalTokenToIndex := make(map[common.Address]int, len(usedTokens))
	for oldIdx, token := range r.tokens {
		if _, ok := usedTokens[oldIdx]; ok {
			oldToNewTokenIndex[oldIdx] = len(finalTokens)
			finalTokenToIndex[token] = len(finalTokens)
			finalTokens = append(finalTokens, token)
		}
	}

	oldToNewPoolIndex := make(map[int]int, len(usedPools))
	finalPools := make([]common.Address, 0, len(usedPools))
	finalPoolToIndex := make(map[common.Address]int, len(usedPools))
	for oldIdx, pool := range r.pools {
		if _, ok := usedPools[oldIdx]; ok {
			oldToNewPoolIndex[oldIdx] = len(finalPools)
			finalPoolToIndex[pool] = len(finalPools)
			finalPools = append(finalPools, pool)
		}
	}

	for i := range newEdgeTargets {
		newEdgeTargets[i] = oldToNewTokenIndex[newEdgeTargets[i]]
	}
	for i, poolList := range newEdgePools {
		for j, oldPoolIdx := range poolList {
			newEdgePools[i][j] = oldToNewPoolIndex[oldPoolIdx]
		}
	}

	finalAdjacency := make([][]int, len(finalTokens))
	for oldTokenIdx, oldAdj := range r.adjacency {
		newTokenIdx, ok := oldToNewTokenIndex[oldTokenIdx]
		if !ok {
			continue
		}
		newAdj := make([]int, 0, len(oldAdj))
		for _, oldEdgeIdx := range oldAdj {
			if newEdgeIdx, ok := oldToNewEdgeIndex[oldEdgeIdx]; ok {
				newAdj = append(newAdj, newEdgeIdx)
			}
		}
		finalAdjacency[newTokenIdx] = newAdj
	}

	r.tokens = finalTokens
	r.tokenToIndex = finalTokenToIndex
	r.pools = finalPools
	r.poolToIndex = finalPoolToIndex
	r.edgeTargets = newEdgeTargets
	r.edgePools = newEdgePools
	r.adjacency = finalAdjacency
	r.danglingEdgeCount = 0
}

// poolsForToken lists the live pools touching a token, in registration order.
func (r *TokenPoolRegistry) poolsForToken(token common.Address) []common.Address {
	tokenIndex, exists := r.tokenToIndex[token]
	if !exists {
		return nil
	}

	seen := make(map[int]struct{})
	var indices []int
	for _, edgeIndex := range r.adjacency[tokenIndex] {
		for _, poolIndex := range r.edgePools[edgeIndex] {
			if _, ok := seen[poolIndex]; ok {
				continue
			}
			seen[poolIndex] = struct{}{}
			indices = append(indices, poolIndex)
		}
	}
	if len(indices) == 0 {
		return nil
	}

	// registration order == pool index order
	sort.Ints(indices)
	out := make([]common.Address, len(indices))
	for i, idx := range indices {
		out[i] = r.pools[idx]
	}
	return out
}

// view snapshots the registry. The result shares no memory with r.
func (r *TokenPoolRegistry) view() *TokenPoolRegistryView {
	return deepCopyView(&TokenPoolRegistryView{
		Tokens:      r.tokens,
		Pools:       r.pools,
		Adjacency:   r.adjacency,
		EdgeTargets: r.edgeTargets,
		EdgePools:   r.edgePools,
	})
}

// deepCopyView creates a new view with its own memory for all its slices.
func deepCopyView(v *TokenPoolRegistryView) *TokenPoolRegistryView {
	if v == nil {
		return nil
	}
	newV := &TokenPoolRegistryView{
		Tokens:      append(make([]common.Address, 0, len(v.Tokens)), v.Tokens...),
		Pools:       append(make([]common.Address, 0, len(v.Pools)), v.Pools...),
		EdgeTargets: append(make([]int, 0, len(v.EdgeTargets)), v.EdgeTargets...),
		Adjacency:   make([][]int, len(v.Adjacency)),
		EdgePools:   make([][]int, len(v.EdgePools)),
	}
	for i, inner := range v.Adjacency {
		newV.Adjacency[i] = append(make([]int, 0, len(inner)), inner...)
	}
	for i, inner := range v.EdgePools {
		newV.EdgePools[i] = append(make([]int, 0, len(inner)), inner...)
	}
	return newV
}
