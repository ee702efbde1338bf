package operations

import (
	"fmt"
	"math/big"

	"github.com/defistate/magicswap-client-go/protocols/magicswap"
	"github.com/defistate/magicswap-client-go/router"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// BuildSwap turns a single-path route into the router call that executes it.
//
// nftsIn selects the NFTs sold when the input is a vault token and must be worth exactly
// route.AmountIn; nftsOut selects the NFTs bought when the output is one and must be
// worth exactly route.AmountOut.
func (b *Builder) BuildSwap(route *router.Route, to common.Address, slippage decimal.Decimal, nftsIn, nftsOut []NftUnit) (Descriptor, error) {
	if route == nil {
		return nil, fmt.Errorf("%w: route is nil", magicswap.ErrInvalidAmount)
	}
	in, out := route.TokenIn, route.TokenOut
	if in.IsNFT() && out.IsNFT() {
		return nil, fmt.Errorf("%w: cannot swap NFT vault %s for NFT vault %s", magicswap.ErrUnsupportedSwapShape, in.Symbol, out.Symbol)
	}
	if err := validateSlippage(slippage); err != nil {
		return nil, err
	}
	if route.Paths > 1 {
		return nil, fmt.Errorf("%w: %d paths", ErrSplitRoute, route.Paths)
	}
	if route.IsEmpty() || orZero(route.AmountIn).Sign() <= 0 || orZero(route.AmountOut).Sign() <= 0 {
		return nil, fmt.Errorf("%w: route carries no executable amounts", magicswap.ErrInvalidAmount)
	}

	base := SwapRoute{
		Path:      b.swapPath(route.Path),
		Recipient: to,
		Deadline:  b.deadline(),
	}

	switch {
	case in.IsNFT():
		nfts, err := resolveNFTs(in, nftsIn)
		if err != nil {
			return nil, err
		}
		if nfts.amount.Cmp(route.AmountIn) != 0 {
			return nil, fmt.Errorf("%w: selected NFTs are worth %s, route sells %s", magicswap.ErrInvalidAmount, nfts.amount, route.AmountIn)
		}
		minOut, _ := MinAmountOut(route.AmountOut, slippage)
		if out.IsNative() {
			return finish(SwapNftsForEth{Call: b.call(nil), NFTArrays: nfts.arrays(), AmountOutMin: minOut, SwapRoute: base})
		}
		return finish(SwapNftsForTokens{Call: b.call(nil), NFTArrays: nfts.arrays(), AmountOutMin: minOut, SwapRoute: base})

	case out.IsNFT():
		nfts, err := resolveNFTs(out, nftsOut)
		if err != nil {
			return nil, err
		}
		if nfts.amount.Cmp(route.AmountOut) != 0 {
			return nil, fmt.Errorf("%w: selected NFTs are worth %s, route buys %s", magicswap.ErrInvalidAmount, nfts.amount, route.AmountOut)
		}
		maxIn, _ := MaxAmountIn(route.AmountIn, slippage)
		if in.IsNative() {
			return finish(SwapEthForNfts{Call: b.call(maxIn), NFTArrays: nfts.arrays(), SwapRoute: base})
		}
		return finish(SwapTokensForNfts{Call: b.call(nil), NFTArrays: nfts.arrays(), AmountInMax: maxIn, SwapRoute: base})
	}

	if len(nftsIn) > 0 || len(nftsOut) > 0 {
		return nil, fmt.Errorf("%w: NFT selection given for a fungible swap", ErrInvalidNFT)
	}

	if !route.IsExactOut {
		amountIn := new(big.Int).Set(route.AmountIn)
		minOut, _ := MinAmountOut(route.AmountOut, slippage)
		switch {
		case in.IsNative():
			return finish(SwapExactEthForTokens{Call: b.call(amountIn), AmountOutMin: minOut, SwapRoute: base})
		case out.IsNative():
			return finish(SwapExactTokensForEth{Call: b.call(nil), AmountIn: amountIn, AmountOutMin: minOut, SwapRoute: base})
		default:
			return finish(SwapExactTokensForTokens{Call: b.call(nil), AmountIn: amountIn, AmountOutMin: minOut, SwapRoute: base})
		}
	}

	amountOut := new(big.Int).Set(route.AmountOut)
	maxIn, _ := MaxAmountIn(route.AmountIn, slippage)
	switch {
	case in.IsNative():
		return finish(SwapEthForExactTokens{Call: b.call(maxIn), AmountOut: amountOut, SwapRoute: base})
	case out.IsNative():
		return finish(SwapTokensForExactEth{Call: b.call(nil), AmountOut: amountOut, AmountInMax: maxIn, SwapRoute: base})
	default:
		return finish(SwapTokensForExactTokens{Call: b.call(nil), AmountOut: amountOut, AmountInMax: maxIn, SwapRoute: base})
	}
}

// swapPath replaces the native sentinel with the wrapped native token.
func (b *Builder) swapPath(path []common.Address) []common.Address {
	out := make([]common.Address, len(path))
	for i, a := range path {
		out[i] = b.chain.PathAddress(a)
	}
	return out
}

func (b *Builder) call(value *big.Int) Call {
	return Call{To: b.chain.Router, CallValue: value}
}
