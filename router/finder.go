package router

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/defistate/magicswap-client-go/bitset"
	"github.com/defistate/magicswap-client-go/protocols/magicswap"
	"github.com/defistate/magicswap-client-go/protocols/magicswap/calculator"
	"github.com/defistate/magicswap-client-go/protocols/tokenregistry"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Finder computes routes over pool snapshots. It holds no state beyond its options and
// is safe for concurrent use.
type Finder struct {
	opts Options
}

// NewFinder creates a Finder. Zero option fields take their defaults.
func NewFinder(opts Options) *Finder {
	return &Finder{opts: opts.withDefaults()}
}

// Options returns the effective search bounds.
func (f *Finder) Options() Options {
	return f.opts
}

// FindRoute builds the graph of pools and routes amount from tokenIn to tokenOut.
func (f *Finder) FindRoute(pools []magicswap.Pool, tokenIn, tokenOut common.Address, amount *big.Int, exactOut bool) (*Route, error) {
	return f.Route(NewGraph(pools), tokenIn, tokenOut, amount, exactOut)
}

// Route routes over a prebuilt graph.
//
// A nil or non-positive amount yields a sample route: the best path by spot price with
// zero amounts. When no path connects the tokens the route is empty, not an error.
func (f *Finder) Route(g *Graph, tokenIn, tokenOut common.Address, amount *big.Int, exactOut bool) (*Route, error) {
	if tokenIn == tokenOut {
		return nil, fmt.Errorf("%w: %s", magicswap.ErrIdenticalTokens, tokenIn.Hex())
	}
	in, ok := g.Token(tokenIn)
	if !ok {
		return nil, fmt.Errorf("%w: tokenIn %s", magicswap.ErrTokenNotFound, tokenIn.Hex())
	}
	out, ok := g.Token(tokenOut)
	if !ok {
		return nil, fmt.Errorf("%w: tokenOut %s", magicswap.ErrTokenNotFound, tokenOut.Hex())
	}

	candidates := g.enumerate(tokenIn, tokenOut, f.opts.MaxHops, f.opts.MaxCandidates)
	if len(candidates) == 0 {
		return emptyRoute(in, out, exactOut), nil
	}

	if amount == nil || amount.Sign() <= 0 {
		rankBySpot(candidates)
		return sampleRoute(in, out, exactOut, candidates[0]), nil
	}

	var ranked []*candidate
	if exactOut {
		ranked = rankExactOut(candidates, amount)
	} else {
		ranked = rankExactIn(candidates, amount)
	}
	selected := selectDisjoint(ranked, f.opts.MaxPaths)

	var (
		allocs []allocation
		err    error
	)
	if exactOut {
		allocs, err = allocateExactOut(selected, amount, f.opts.Steps)
	} else {
		allocs, err = allocateExactIn(selected, amount, f.opts.Steps)
	}
	if err != nil {
		return nil, err
	}
	return buildRoute(in, out, exactOut, amount, allocs)
}

// rankBySpot orders candidates by best spot price, then lexically.
func rankBySpot(cs []*candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		if c := cs[i].spot.Cmp(cs[j].spot); c != 0 {
			return c > 0
		}
		return compareLexical(cs[i], cs[j]) < 0
	})
}

// rankExactIn orders candidates by the output of the full amount.
func rankExactIn(cs []*candidate, amount *big.Int) []*candidate {
	outputs := make(map[*candidate]*big.Int, len(cs))
	for _, c := range cs {
		amounts, err := c.quoteOut(amount)
		if err != nil {
			outputs[c] = new(big.Int)
			continue
		}
		outputs[c] = amounts[len(amounts)-1]
	}
	ranked := append([]*candidate(nil), cs...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if c := outputs[ranked[i]].Cmp(outputs[ranked[j]]); c != 0 {
			return c > 0
		}
		return compareLexical(ranked[i], ranked[j]) < 0
	})
	return ranked
}

// rankExactOut orders candidates by the input needed for the full amount. Paths that
// cannot deliver it on their own follow, by spot price.
func rankExactOut(cs []*candidate, amount *big.Int) []*candidate {
	inputs := make(map[*candidate]*big.Int, len(cs))
	for _, c := range cs {
		if amounts, err := c.quoteIn(amount); err == nil {
			inputs[c] = amounts[0]
		}
	}
	ranked := append([]*candidate(nil), cs...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, aok := inputs[ranked[i]]
		b, bok := inputs[ranked[j]]
		switch {
		case aok && bok:
			if c := a.Cmp(b); c != 0 {
				return c < 0
			}
		case aok != bok:
			return aok
		default:
			if c := ranked[i].spot.Cmp(ranked[j].spot); c != 0 {
				return c > 0
			}
		}
		return compareLexical(ranked[i], ranked[j]) < 0
	})
	return ranked
}

// selectDisjoint greedily keeps the best paths that share no pool with a kept path.
func selectDisjoint(ranked []*candidate, maxPaths int) []*candidate {
	if len(ranked) == 0 {
		return nil
	}
	taken := make(bitset.BitSet, len(ranked[0].pools))
	selected := make([]*candidate, 0, maxPaths)
	for _, c := range ranked {
		if len(selected) >= maxPaths {
			break
		}
		if taken.Intersects(c.pools) {
			continue
		}
		taken.Union(c.pools)
		selected = append(selected, c)
	}
	return selected
}

// allocation is the share of a trade carried by one path, with the amount at every node.
type allocation struct {
	path    *candidate
	amounts []*big.Int
}

func (a allocation) in() *big.Int  { return a.amounts[0] }
func (a allocation) out() *big.Int { return a.amounts[len(a.amounts)-1] }

// increments splits amount into steps integer parts that sum to amount exactly.
func increments(amount *big.Int, steps int) []*big.Int {
	if steps < 1 {
		steps = 1
	}
	n := big.NewInt(int64(steps))
	parts := make([]*big.Int, 0, steps)
	prev := new(big.Int)
	for k := 1; k <= steps; k++ {
		cur := new(big.Int).Mul(amount, big.NewInt(int64(k)))
		cur.Div(cur, n)
		if d := new(big.Int).Sub(cur, prev); d.Sign() > 0 {
			parts = append(parts, d)
		}
		prev = cur
	}
	return parts
}

// allocateExactIn gives each input increment to the path with the largest output gain.
func allocateExactIn(paths []*candidate, amount *big.Int, steps int) ([]allocation, error) {
	if len(paths) == 1 {
		amounts, err := paths[0].quoteOut(amount)
		if err != nil {
			return nil, err
		}
		return []allocation{{path: paths[0], amounts: amounts}}, nil
	}

	allocated := make([]*big.Int, len(paths))
	outputs := make([]*big.Int, len(paths))
	for i := range paths {
		allocated[i] = new(big.Int)
		outputs[i] = new(big.Int)
	}

	for _, inc := range increments(amount, steps) {
		best, bestGain, bestOut := -1, (*big.Int)(nil), (*big.Int)(nil)
		for i, p := range paths {
			next := new(big.Int).Add(allocated[i], inc)
			amounts, err := p.quoteOut(next)
			if err != nil {
				continue
			}
			out := amounts[len(amounts)-1]
			gain := new(big.Int).Sub(out, outputs[i])
			if best == -1 || betterGain(gain, bestGain, p, paths[best]) {
				best, bestGain, bestOut = i, gain, out
			}
		}
		if best == -1 {
			return nil, fmt.Errorf("%w: no path accepts further input", magicswap.ErrInsufficientLiquidity)
		}
		allocated[best].Add(allocated[best], inc)
		outputs[best] = bestOut
	}

	return finalize(paths, allocated, func(p *candidate, a *big.Int) ([]*big.Int, error) { return p.quoteOut(a) })
}

// allocateExactOut gives each output increment to the path with the smallest input cost.
func allocateExactOut(paths []*candidate, amount *big.Int, steps int) ([]allocation, error) {
	if len(paths) == 1 {
		amounts, err := paths[0].quoteIn(amount)
		if err != nil {
			return nil, insufficient(err)
		}
		return []allocation{{path: paths[0], amounts: amounts}}, nil
	}

	allocated := make([]*big.Int, len(paths))
	inputs := make([]*big.Int, len(paths))
	for i := range paths {
		allocated[i] = new(big.Int)
		inputs[i] = new(big.Int)
	}

	for _, inc := range increments(amount, steps) {
		best, bestCost, bestIn := -1, (*big.Int)(nil), (*big.Int)(nil)
		for i, p := range paths {
			next := new(big.Int).Add(allocated[i], inc)
			amounts, err := p.quoteIn(next)
			if err != nil {
				continue
			}
			cost := new(big.Int).Sub(amounts[0], inputs[i])
			if best == -1 || betterCost(cost, bestCost, p, paths[best]) {
				best, bestCost, bestIn = i, cost, amounts[0]
			}
		}
		if best == -1 {
			return nil, fmt.Errorf("%w: requested output exceeds what the available paths can deliver", magicswap.ErrInsufficientLiquidity)
		}
		allocated[best].Add(allocated[best], inc)
		inputs[best] = bestIn
	}

	return finalize(paths, allocated, func(p *candidate, a *big.Int) ([]*big.Int, error) { return p.quoteIn(a) })
}

func betterGain(gain, bestGain *big.Int, p, bestPath *candidate) bool {
	if c := gain.Cmp(bestGain); c != 0 {
		return c > 0
	}
	return compareLexical(p, bestPath) < 0
}

func betterCost(cost, bestCost *big.Int, p, bestPath *candidate) bool {
	if c := cost.Cmp(bestCost); c != 0 {
		return c < 0
	}
	return compareLexical(p, bestPath) < 0
}

// finalize re-quotes every used path on its total allocation and drops unused paths.
func finalize(paths []*candidate, allocated []*big.Int, quote func(*candidate, *big.Int) ([]*big.Int, error)) ([]allocation, error) {
	allocs := make([]allocation, 0, len(paths))
	for i, p := range paths {
		if allocated[i].Sign() == 0 {
			continue
		}
		amounts, err := quote(p, allocated[i])
		if err != nil {
			return nil, insufficient(err)
		}
		allocs = append(allocs, allocation{path: p, amounts: amounts})
	}
	return allocs, nil
}

func insufficient(err error) error {
	if errors.Is(err, magicswap.ErrInsufficientLiquidity) {
		return err
	}
	return fmt.Errorf("%w: %v", magicswap.ErrInsufficientLiquidity, err)
}

// sampleRoute previews the best path with zero amounts.
func sampleRoute(in, out tokenregistry.Token, exactOut bool, best *candidate) *Route {
	r := emptyRoute(in, out, exactOut)
	for _, h := range best.hops {
		from, _ := h.pool.Token(h.from)
		to, _ := h.pool.Token(h.to)
		r.Legs = append(r.Legs, Leg{
			Pool:             *h.pool,
			TokenFrom:        from,
			TokenTo:          to,
			AssumedAmountIn:  new(big.Int),
			AssumedAmountOut: new(big.Int),
			AbsolutePortion:  decimal.NewFromInt(1),
		})
	}
	fillSwapPortions(r.Legs)
	fillFees(r)
	r.DerivedValue = best.spot
	r.Path = chainPath(r.Legs)
	r.Paths = 1
	return r
}

// buildRoute aggregates path allocations into a route.
func buildRoute(in, out tokenregistry.Token, exactOut bool, amount *big.Int, allocs []allocation) (*Route, error) {
	r := emptyRoute(in, out, exactOut)
	if len(allocs) == 0 {
		return r, nil
	}

	total := decimal.NewFromBigInt(amount, 0)
	primary := 0
	for i, a := range allocs {
		share := a.in()
		if exactOut {
			share = a.out()
		}
		portion := decimal.NewFromBigInt(share, 0).Div(total)

		for j, h := range a.path.hops {
			from, _ := h.pool.Token(h.from)
			to, _ := h.pool.Token(h.to)
			r.Legs = append(r.Legs, Leg{
				Pool:             *h.pool,
				TokenFrom:        from,
				TokenTo:          to,
				AssumedAmountIn:  a.amounts[j],
				AssumedAmountOut: a.amounts[j+1],
				AbsolutePortion:  portion,
			})
		}
		r.AmountIn.Add(r.AmountIn, a.in())
		r.AmountOut.Add(r.AmountOut, a.out())

		if i > 0 && allocShare(a, exactOut).Cmp(allocShare(allocs[primary], exactOut)) > 0 {
			primary = i
		}
	}

	fillSwapPortions(r.Legs)
	fillFees(r)
	r.DerivedValue = allocs[primary].path.spot
	r.PriceImpact = priceImpact(in, out, r.AmountIn, r.AmountOut, bestSpot(allocs))
	r.Path = chainPath(r.Legs)
	r.Paths = len(allocs)
	return r, nil
}

func allocShare(a allocation, exactOut bool) *big.Int {
	if exactOut {
		return a.out()
	}
	return a.in()
}

func bestSpot(allocs []allocation) decimal.Decimal {
	best := decimal.Zero
	for _, a := range allocs {
		if a.path.spot.GreaterThan(best) {
			best = a.path.spot
		}
	}
	return best
}

// priceImpact is the percentage by which the realized price falls short of spot.
func priceImpact(in, out tokenregistry.Token, amountIn, amountOut *big.Int, spot decimal.Decimal) decimal.Decimal {
	if spot.Sign() <= 0 || amountIn.Sign() <= 0 {
		return decimal.Zero
	}
	realized := decimal.NewFromBigInt(amountOut, -int32(out.Decimals)).
		Div(decimal.NewFromBigInt(amountIn, -int32(in.Decimals)))
	impact := spot.Sub(realized).Div(spot).Mul(hundred)
	if impact.IsNegative() {
		return decimal.Zero
	}
	return impact.Round(4)
}

// Spot returns the fee-adjusted spot price of a single leg.
func (l Leg) Spot() (decimal.Decimal, error) {
	return calculator.SpotPrice(l.TokenFrom.Address, l.TokenTo.Address, l.Pool)
}
