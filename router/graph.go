package router

import (
	"bytes"
	"math/big"

	"github.com/defistate/magicswap-client-go/bitset"
	"github.com/defistate/magicswap-client-go/protocols/magicswap"
	"github.com/defistate/magicswap-client-go/protocols/magicswap/calculator"
	"github.com/defistate/magicswap-client-go/protocols/tokenpoolregistry"
	"github.com/defistate/magicswap-client-go/protocols/tokenregistry"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Graph is a read-only routing view over one pool snapshot.
type Graph struct {
	view *tokenpoolregistry.TokenPoolRegistryView

	tokenToIndex map[common.Address]int
	// pools is indexed like view.Pools; entries for unknown pools are nil.
	pools []*magicswap.Pool
	// known holds every token of every supplied pool, routable or not.
	known map[common.Address]tokenregistry.Token
}

// NewGraph builds the routing graph of a pool snapshot. Pools with an empty reserve
// stay known but are not traversed.
func NewGraph(pools []magicswap.Pool) *Graph {
	system := tokenpoolregistry.NewTokenPoolSystemFromPools(pools, 0)
	return NewGraphFromView(system.View(), pools)
}

// NewGraphFromView builds a routing graph from a prebuilt token graph and the pools
// it references. Pools missing from the slice, or without reserves, are skipped.
func NewGraphFromView(view *tokenpoolregistry.TokenPoolRegistryView, pools []magicswap.Pool) *Graph {
	g := &Graph{
		view:         view,
		tokenToIndex: make(map[common.Address]int, len(view.Tokens)),
		pools:        make([]*magicswap.Pool, len(view.Pools)),
		known:        make(map[common.Address]tokenregistry.Token, 2*len(pools)),
	}
	for i, t := range view.Tokens {
		g.tokenToIndex[t] = i
	}

	byAddress := make(map[common.Address]int, len(pools))
	for i := range pools {
		p := pools[i]
		if _, ok := g.known[p.Token0.Address]; !ok {
			g.known[p.Token0.Address] = p.Token0
		}
		if _, ok := g.known[p.Token1.Address]; !ok {
			g.known[p.Token1.Address] = p.Token1
		}
		if _, ok := byAddress[p.Address]; !ok {
			byAddress[p.Address] = i
		}
	}
	for i, addr := range view.Pools {
		idx, ok := byAddress[addr]
		if !ok || !pools[idx].IsRoutable() {
			continue
		}
		p := pools[idx]
		g.pools[i] = &p
	}
	return g
}

// Token returns a token known to the snapshot.
func (g *Graph) Token(addr common.Address) (tokenregistry.Token, bool) {
	t, ok := g.known[addr]
	return t, ok
}

// hop is one oriented pool traversal.
type hop struct {
	pool *magicswap.Pool
	from common.Address
	to   common.Address
}

// candidate is a simple path from tokenIn to tokenOut.
type candidate struct {
	hops  []hop
	pools bitset.BitSet // pool indices used
	spot  decimal.Decimal
}

// quoteOut returns the amount at every node of the path for a given input.
func (c *candidate) quoteOut(amountIn *big.Int) ([]*big.Int, error) {
	amounts := make([]*big.Int, len(c.hops)+1)
	amounts[0] = new(big.Int).Set(amountIn)
	for i, h := range c.hops {
		out, err := calculator.GetAmountOut(amounts[i], h.from, h.to, *h.pool)
		if err != nil {
			return nil, err
		}
		amounts[i+1] = out
	}
	return amounts, nil
}

// quoteIn returns the amount at every node of the path for a desired output.
func (c *candidate) quoteIn(amountOut *big.Int) ([]*big.Int, error) {
	amounts := make([]*big.Int, len(c.hops)+1)
	amounts[len(c.hops)] = new(big.Int).Set(amountOut)
	for i := len(c.hops) - 1; i >= 0; i-- {
		h := c.hops[i]
		in, err := calculator.GetAmountIn(amounts[i+1], h.from, h.to, *h.pool)
		if err != nil {
			return nil, err
		}
		amounts[i] = in
	}
	return amounts, nil
}

// compareLexical orders paths by their pool addresses, then by length.
func compareLexical(a, b *candidate) int {
	for i := 0; i < len(a.hops) && i < len(b.hops); i++ {
		if c := bytes.Compare(a.hops[i].pool.Address.Bytes(), b.hops[i].pool.Address.Bytes()); c != 0 {
			return c
		}
	}
	return len(a.hops) - len(b.hops)
}

// enumerate walks every simple path of at most maxHops pools from start to end. Each
// parallel pool on an edge yields its own candidate. Tokens are tracked in a bitset so a
// path never revisits one.
func (g *Graph) enumerate(start, end common.Address, maxHops, maxCandidates int) []*candidate {
	startIndex, ok := g.tokenToIndex[start]
	if !ok {
		return nil
	}
	endIndex, ok := g.tokenToIndex[end]
	if !ok {
		return nil
	}

	var (
		out     []*candidate
		stack   []hop
		visited = bitset.NewBitSet(len(g.view.Tokens))
		used    = bitset.NewBitSet(len(g.view.Pools))
	)

	var walk func(current int)
	walk = func(current int) {
		if len(out) >= maxCandidates {
			return
		}
		if current == endIndex {
			hops := make([]hop, len(stack))
			copy(hops, stack)
			out = append(out, &candidate{hops: hops, pools: used.Clone()})
			return
		}
		if len(stack) >= maxHops {
			return
		}

		visited.Set(current)
		defer visited.Unset(current)

		for _, edgeIndex := range g.view.Adjacency[current] {
			target := g.view.EdgeTargets[edgeIndex]
			if visited.IsSet(target) {
				continue
			}
			for _, poolIndex := range g.view.EdgePools[edgeIndex] {
				pool := g.pools[poolIndex]
				if pool == nil {
					continue
				}
				stack = append(stack, hop{pool: pool, from: g.view.Tokens[current], to: g.view.Tokens[target]})
				used.Set(poolIndex)
				walk(target)
				used.Unset(poolIndex)
				stack = stack[:len(stack)-1]
			}
		}
	}
	walk(startIndex)

	for _, c := range out {
		c.spot = pathSpot(c.hops)
	}
	return out
}

// pathSpot is the product of the fee-adjusted spot prices along a path.
func pathSpot(hops []hop) decimal.Decimal {
	spot := decimal.NewFromInt(1)
	for _, h := range hops {
		p, err := calculator.SpotPrice(h.from, h.to, *h.pool)
		if err != nil {
			return decimal.Zero
		}
		spot = spot.Mul(p)
	}
	return spot
}
