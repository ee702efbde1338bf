package router

import (
	"math/big"

	"github.com/defistate/magicswap-client-go/protocols/magicswap"
	"github.com/defistate/magicswap-client-go/protocols/tokenregistry"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Leg is one pool traversal of a route.
type Leg struct {
	Pool             magicswap.Pool      `json:"pool"`
	TokenFrom        tokenregistry.Token `json:"tokenFrom"`
	TokenTo          tokenregistry.Token `json:"tokenTo"`
	AssumedAmountIn  *big.Int            `json:"assumedAmountIn"`
	AssumedAmountOut *big.Int            `json:"assumedAmountOut"`

	// SwapPortion is this leg's share of everything leaving TokenFrom across the route.
	SwapPortion decimal.Decimal `json:"swapPortion"`
	// AbsolutePortion is this leg's share of the requested amount.
	AbsolutePortion decimal.Decimal `json:"absolutePortion"`
}

// Route is the result of a route search. Legs are grouped by path, each path in
// traversal order. A route without legs means no liquidity connects the tokens.
type Route struct {
	TokenIn    tokenregistry.Token `json:"tokenIn"`
	TokenOut   tokenregistry.Token `json:"tokenOut"`
	AmountIn   *big.Int            `json:"amountIn"`
	AmountOut  *big.Int            `json:"amountOut"`
	IsExactOut bool                `json:"isExactOut"`

	// PriceImpact is a percentage, 0 for sample and empty routes.
	PriceImpact decimal.Decimal `json:"priceImpact"`
	// DerivedValue is the product of the primary path's leg spot prices.
	DerivedValue decimal.Decimal `json:"derivedValue"`

	LPFee        decimal.Decimal `json:"lpFee"`
	ProtocolFee  decimal.Decimal `json:"protocolFee"`
	RoyaltiesFee decimal.Decimal `json:"royaltiesFee"`

	// Path chains the tokens visited across all paths. It is an executable swap path
	// only when Paths == 1; split routes over different intermediates list tokens
	// that no pool connects.
	Path  []common.Address `json:"path"`
	Legs  []Leg            `json:"legs"`
	Paths int              `json:"paths"`
}

// IsEmpty reports whether no path was found.
func (r *Route) IsEmpty() bool {
	return len(r.Legs) == 0
}

// IsSample reports whether the route only previews price.
func (r *Route) IsSample() bool {
	return !r.IsEmpty() && r.AmountIn.Sign() == 0 && r.AmountOut.Sign() == 0
}

func emptyRoute(tokenIn, tokenOut tokenregistry.Token, exactOut bool) *Route {
	return &Route{
		TokenIn:      tokenIn,
		TokenOut:     tokenOut,
		AmountIn:     new(big.Int),
		AmountOut:    new(big.Int),
		IsExactOut:   exactOut,
		PriceImpact:  decimal.Zero,
		DerivedValue: decimal.Zero,
		LPFee:        decimal.Zero,
		ProtocolFee:  decimal.Zero,
		RoyaltiesFee: decimal.Zero,
		Path:         []common.Address{},
		Legs:         []Leg{},
	}
}

// chainPath lists every leg's TokenFrom plus the final leg's TokenTo, skipping repeats.
// With more than one path the result is a display chain, not a traversable one.
func chainPath(legs []Leg) []common.Address {
	path := make([]common.Address, 0, len(legs)+1)
	seen := make(map[common.Address]struct{}, len(legs)+1)
	push := func(a common.Address) {
		if _, ok := seen[a]; ok {
			return
		}
		seen[a] = struct{}{}
		path = append(path, a)
	}
	for _, leg := range legs {
		push(leg.TokenFrom.Address)
	}
	if len(legs) > 0 {
		push(legs[len(legs)-1].TokenTo.Address)
	}
	return path
}

// fillSwapPortions sets each leg's share among the legs leaving the same token.
func fillSwapPortions(legs []Leg) {
	totals := make(map[common.Address]decimal.Decimal)
	for _, leg := range legs {
		totals[leg.TokenFrom.Address] = totals[leg.TokenFrom.Address].Add(leg.AbsolutePortion)
	}
	for i := range legs {
		total := totals[legs[i].TokenFrom.Address]
		if total.IsZero() {
			legs[i].SwapPortion = decimal.Zero
			continue
		}
		legs[i].SwapPortion = legs[i].AbsolutePortion.Div(total)
	}
}

// fillFees sums each fee component weighted by the legs' absolute portions.
func fillFees(r *Route) {
	lp, protocol, royalties := decimal.Zero, decimal.Zero, decimal.Zero
	for _, leg := range r.Legs {
		lp = lp.Add(leg.Pool.Fees.LPFee().Mul(leg.AbsolutePortion))
		protocol = protocol.Add(leg.Pool.Fees.ProtocolFee().Mul(leg.AbsolutePortion))
		royalties = royalties.Add(leg.Pool.Fees.RoyaltiesFee().Mul(leg.AbsolutePortion))
	}
	r.LPFee, r.ProtocolFee, r.RoyaltiesFee = lp, protocol, royalties
}
