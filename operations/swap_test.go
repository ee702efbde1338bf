package operations

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/defistate/magicswap-client-go/protocols/magicswap"
	"github.com/defistate/magicswap-client-go/protocols/tokenregistry"
	"github.com/defistate/magicswap-client-go/router"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var onePercent = decimal.RequireFromString("0.01")

// singlePath builds a one-leg route as the finder would report it.
func singlePath(in, out tokenregistry.Token, amountIn, amountOut *big.Int, exactOut bool) *router.Route {
	return &router.Route{
		TokenIn:    in,
		TokenOut:   out,
		AmountIn:   amountIn,
		AmountOut:  amountOut,
		IsExactOut: exactOut,
		Path:       []common.Address{in.Address, out.Address},
		Legs:       []router.Leg{{TokenFrom: in, TokenTo: out, AssumedAmountIn: amountIn, AssumedAmountOut: amountOut}},
		Paths:      1,
	}
}

func TestBuildSwap_Fungible(t *testing.T) {
	b := newTestBuilder(t)
	deadline := big.NewInt(testNow.Unix() + 1800)

	testCases := []struct {
		name         string
		route        *router.Route
		expected     Descriptor
		expectedPath []common.Address
	}{
		{
			name:  "exact tokens for tokens",
			route: singlePath(magic, usdc, big.NewInt(100), big.NewInt(181), false),
			expected: SwapExactTokensForTokens{
				Call:         Call{To: testChain.Router},
				AmountIn:     big.NewInt(100),
				AmountOutMin: big.NewInt(179),
				SwapRoute:    SwapRoute{Path: []common.Address{magic.Address, usdc.Address}, Recipient: recipient, Deadline: deadline},
			},
		},
		{
			name:  "tokens for exact tokens",
			route: singlePath(magic, usdc, big.NewInt(100), big.NewInt(181), true),
			expected: SwapTokensForExactTokens{
				Call:        Call{To: testChain.Router},
				AmountOut:   big.NewInt(181),
				AmountInMax: big.NewInt(101),
				SwapRoute:   SwapRoute{Path: []common.Address{magic.Address, usdc.Address}, Recipient: recipient, Deadline: deadline},
			},
		},
		{
			name:  "exact eth for tokens sends the input as value",
			route: singlePath(eth, magic, big.NewInt(100), big.NewInt(181), false),
			expected: SwapExactEthForTokens{
				Call:         Call{To: testChain.Router, CallValue: big.NewInt(100)},
				AmountOutMin: big.NewInt(179),
				SwapRoute:    SwapRoute{Path: []common.Address{testChain.WrappedNative, magic.Address}, Recipient: recipient, Deadline: deadline},
			},
		},
		{
			name:  "eth for exact tokens sends the maximum input as value",
			route: singlePath(eth, magic, big.NewInt(100), big.NewInt(181), true),
			expected: SwapEthForExactTokens{
				Call:      Call{To: testChain.Router, CallValue: big.NewInt(101)},
				AmountOut: big.NewInt(181),
				SwapRoute: SwapRoute{Path: []common.Address{testChain.WrappedNative, magic.Address}, Recipient: recipient, Deadline: deadline},
			},
		},
		{
			name:  "exact tokens for eth",
			route: singlePath(magic, eth, big.NewInt(100), big.NewInt(181), false),
			expected: SwapExactTokensForEth{
				Call:         Call{To: testChain.Router},
				AmountIn:     big.NewInt(100),
				AmountOutMin: big.NewInt(179),
				SwapRoute:    SwapRoute{Path: []common.Address{magic.Address, testChain.WrappedNative}, Recipient: recipient, Deadline: deadline},
			},
		},
		{
			name:  "tokens for exact eth",
			route: singlePath(magic, eth, big.NewInt(100), big.NewInt(181), true),
			expected: SwapTokensForExactEth{
				Call:        Call{To: testChain.Router},
				AmountOut:   big.NewInt(181),
				AmountInMax: big.NewInt(101),
				SwapRoute:   SwapRoute{Path: []common.Address{magic.Address, testChain.WrappedNative}, Recipient: recipient, Deadline: deadline},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := b.BuildSwap(tc.route, recipient, onePercent, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, d)
			assert.Equal(t, testChain.Router, d.Target())
			assert.Equal(t, tc.expected.Value().String(), d.Value().String())

			_, err = Calldata(d)
			assert.NoError(t, err)
		})
	}
}

func TestBuildSwap_NFT(t *testing.T) {
	b := newTestBuilder(t)

	t.Run("nfts for tokens", func(t *testing.T) {
		route := singlePath(vLegion, magic, units(2), units(5), false)
		d, err := b.BuildSwap(route, recipient, onePercent, []NftUnit{{ID: "7", Quantity: 2}}, nil)
		require.NoError(t, err)

		swap, ok := d.(SwapNftsForTokens)
		require.True(t, ok, "got %T", d)
		assert.Equal(t, []common.Address{legions.Address}, swap.Collection)
		assert.Equal(t, []*big.Int{big.NewInt(7)}, swap.TokenID)
		assert.Equal(t, []*big.Int{big.NewInt(2)}, swap.Quantity)
		assert.Equal(t, "4950000000000000000", swap.AmountOutMin.String())
		assert.Len(t, swap.Args(), 7)
		assert.Zero(t, swap.Value().Sign())
	})

	t.Run("nfts for eth", func(t *testing.T) {
		route := singlePath(vLegion, eth, units(1), units(5), false)
		d, err := b.BuildSwap(route, recipient, onePercent, []NftUnit{{ID: "7", Quantity: 1}}, nil)
		require.NoError(t, err)

		swap, ok := d.(SwapNftsForEth)
		require.True(t, ok, "got %T", d)
		assert.Equal(t, []common.Address{vLegion.Address, testChain.WrappedNative}, swap.Path)
	})

	t.Run("tokens for nfts", func(t *testing.T) {
		route := singlePath(magic, vLegion, units(3), units(1), true)
		d, err := b.BuildSwap(route, recipient, onePercent, nil, []NftUnit{{ID: "3", Quantity: 1}})
		require.NoError(t, err)

		swap, ok := d.(SwapTokensForNfts)
		require.True(t, ok, "got %T", d)
		assert.Equal(t, "3030000000000000000", swap.AmountInMax.String())
		assert.Equal(t, []*big.Int{big.NewInt(3)}, swap.TokenID)
		assert.Len(t, swap.Args(), 7)
	})

	t.Run("eth for nfts sends the maximum input as value", func(t *testing.T) {
		route := singlePath(eth, vMixed, units(3), units(2), true)
		d, err := b.BuildSwap(route, recipient, onePercent, nil, []NftUnit{
			{Collection: treasures.Address, ID: "1", Quantity: 1},
			{Collection: legions.Address, ID: "12", Quantity: 1},
		})
		require.NoError(t, err)

		swap, ok := d.(SwapEthForNfts)
		require.True(t, ok, "got %T", d)
		assert.Equal(t, "3030000000000000000", swap.Value().String())
		assert.Equal(t, []common.Address{treasures.Address, legions.Address}, swap.Collection)
		assert.Len(t, swap.Args(), 6)
	})
}

func TestBuildSwap_Errors(t *testing.T) {
	b := newTestBuilder(t)
	overflow := new(big.Int).Lsh(big.NewInt(1), 256)

	split := singlePath(magic, usdc, big.NewInt(100), big.NewInt(181), false)
	split.Paths = 2

	testCases := []struct {
		name     string
		route    *router.Route
		slippage decimal.Decimal
		nftsIn   []NftUnit
		nftsOut  []NftUnit
		expected error
	}{
		{
			name:     "nil route",
			slippage: onePercent,
			expected: magicswap.ErrInvalidAmount,
		},
		{
			name:     "nft to nft is rejected before anything else",
			route:    singlePath(vLegion, vMixed, units(1), units(1), false),
			slippage: decimal.NewFromInt(5),
			expected: magicswap.ErrUnsupportedSwapShape,
		},
		{
			name:     "slippage above one",
			route:    singlePath(magic, usdc, big.NewInt(100), big.NewInt(181), false),
			slippage: decimal.RequireFromString("1.5"),
			expected: ErrInvalidSlippage,
		},
		{
			name:     "negative slippage",
			route:    singlePath(magic, usdc, big.NewInt(100), big.NewInt(181), false),
			slippage: decimal.RequireFromString("-0.01"),
			expected: ErrInvalidSlippage,
		},
		{
			name:     "split route built by a multi-path search",
			route:    split,
			slippage: onePercent,
			expected: ErrSplitRoute,
		},
		{
			name:     "sample route",
			route:    singlePath(magic, usdc, new(big.Int), new(big.Int), false),
			slippage: onePercent,
			expected: magicswap.ErrInvalidAmount,
		},
		{
			name:     "empty route",
			route:    &router.Route{TokenIn: magic, TokenOut: usdc, AmountIn: new(big.Int), AmountOut: new(big.Int)},
			slippage: onePercent,
			expected: magicswap.ErrInvalidAmount,
		},
		{
			name:     "nft selection worth differs from the route",
			route:    singlePath(vLegion, magic, units(2), units(5), false),
			slippage: onePercent,
			nftsIn:   []NftUnit{{ID: "7", Quantity: 1}},
			expected: magicswap.ErrInvalidAmount,
		},
		{
			name:     "missing nft selection",
			route:    singlePath(magic, vLegion, units(3), units(1), true),
			slippage: onePercent,
			expected: magicswap.ErrInvalidAmount,
		},
		{
			name:     "non-numeric token id",
			route:    singlePath(vLegion, magic, units(1), units(5), false),
			slippage: onePercent,
			nftsIn:   []NftUnit{{ID: "seven", Quantity: 1}},
			expected: ErrInvalidNFT,
		},
		{
			name:     "zero quantity",
			route:    singlePath(vLegion, magic, units(1), units(5), false),
			slippage: onePercent,
			nftsIn:   []NftUnit{{ID: "7"}},
			expected: ErrInvalidNFT,
		},
		{
			name:     "composite vault needs a collection",
			route:    singlePath(vMixed, magic, units(1), units(5), false),
			slippage: onePercent,
			nftsIn:   []NftUnit{{ID: "1", Quantity: 1}},
			expected: ErrInvalidNFT,
		},
		{
			name:     "token id outside the vault's list",
			route:    singlePath(vMixed, magic, units(1), units(5), false),
			slippage: onePercent,
			nftsIn:   []NftUnit{{Collection: treasures.Address, ID: "3", Quantity: 1}},
			expected: ErrInvalidNFT,
		},
		{
			name:     "collection outside the vault",
			route:    singlePath(vLegion, magic, units(1), units(5), false),
			slippage: onePercent,
			nftsIn:   []NftUnit{{Collection: treasures.Address, ID: "1", Quantity: 1}},
			expected: ErrInvalidNFT,
		},
		{
			name:     "nft selection on a fungible swap",
			route:    singlePath(magic, usdc, big.NewInt(100), big.NewInt(181), false),
			slippage: onePercent,
			nftsOut:  []NftUnit{{ID: "1", Quantity: 1}},
			expected: ErrInvalidNFT,
		},
		{
			name:     "amount beyond uint256",
			route:    singlePath(magic, usdc, overflow, big.NewInt(181), false),
			slippage: onePercent,
			expected: magicswap.ErrArithmeticOverflow,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := b.BuildSwap(tc.route, recipient, tc.slippage, tc.nftsIn, tc.nftsOut)
			assert.ErrorIs(t, err, tc.expected)
			assert.Nil(t, d)
		})
	}
}

func TestBuildSwap_FromFinder(t *testing.T) {
	b := newTestBuilder(t)
	pool := magicswap.Pool{
		Address:     common.HexToAddress("0x0b01"),
		Token0:      magic,
		Token1:      usdc,
		Reserve0:    big.NewInt(1000),
		Reserve1:    big.NewInt(2000),
		TotalSupply: big.NewInt(1000),
	}

	route, err := router.NewFinder(router.Options{}).FindRoute([]magicswap.Pool{pool}, magic.Address, usdc.Address, big.NewInt(100), false)
	require.NoError(t, err)

	d, err := b.BuildSwap(route, recipient, onePercent, nil, nil)
	require.NoError(t, err)
	swap, ok := d.(SwapExactTokensForTokens)
	require.True(t, ok, "got %T", d)
	assert.Equal(t, int64(100), swap.AmountIn.Int64())
	assert.Equal(t, int64(179), swap.AmountOutMin.Int64())
	assert.Equal(t, []common.Address{magic.Address, usdc.Address}, swap.Path)
}

func TestBuildSwap_ParallelPools(t *testing.T) {
	b := newTestBuilder(t)
	fee := magicswap.Fees{LPBps: 30, TotalBps: 30}
	pools := []magicswap.Pool{
		{Address: common.HexToAddress("0x0100"), Token0: magic, Token1: usdc, Reserve0: big.NewInt(1_000_000), Reserve1: big.NewInt(2_000_000), TotalSupply: big.NewInt(1000), Fees: fee},
		{Address: common.HexToAddress("0x0200"), Token0: magic, Token1: usdc, Reserve0: big.NewInt(1_000_000), Reserve1: big.NewInt(2_000_000), TotalSupply: big.NewInt(1000), Fees: fee},
	}
	amount := big.NewInt(100_000)

	split, err := router.NewFinder(router.Options{}).FindRoute(pools, magic.Address, usdc.Address, amount, false)
	require.NoError(t, err)
	require.Equal(t, 2, split.Paths)
	_, err = b.BuildSwap(split, recipient, onePercent, nil, nil)
	assert.ErrorIs(t, err, ErrSplitRoute)

	for _, exactOut := range []bool{false, true} {
		t.Run(fmt.Sprintf("single path search, exact out %v", exactOut), func(t *testing.T) {
			route, err := router.NewFinder(router.Options{}.SinglePath()).FindRoute(pools, magic.Address, usdc.Address, amount, exactOut)
			require.NoError(t, err)
			assert.Equal(t, 1, route.Paths)

			d, err := b.BuildSwap(route, recipient, onePercent, nil, nil)
			require.NoError(t, err)
			if exactOut {
				swap, ok := d.(SwapTokensForExactTokens)
				require.True(t, ok, "got %T", d)
				assert.Equal(t, 0, swap.AmountOut.Cmp(amount))
				assert.Equal(t, []common.Address{magic.Address, usdc.Address}, swap.Path)
				return
			}
			swap, ok := d.(SwapExactTokensForTokens)
			require.True(t, ok, "got %T", d)
			assert.Equal(t, 0, swap.AmountIn.Cmp(amount))
			assert.Equal(t, []common.Address{magic.Address, usdc.Address}, swap.Path)
		})
	}
}
