package sdk

import (
	"errors"
	"math/big"

	"github.com/defistate/magicswap-client-go/chains"
	"github.com/defistate/magicswap-client-go/operations"
	"github.com/defistate/magicswap-client-go/protocols/magicswap"
	"github.com/defistate/magicswap-client-go/protocols/tokenregistry"
	"github.com/defistate/magicswap-client-go/router"
	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// SDK ties pool building, routing and operation building together and instruments
// every call. It is safe for concurrent use.
type SDK struct {
	chain       chains.ChainConfig
	logger      chains.Logger
	metrics     *Metrics
	poolBuilder *magicswap.Builder
	finder      *router.Finder
	swapFinder  *router.Finder
	ops         *operations.Builder
}

// New constructs an SDK from a configuration, returning an error if the config is invalid.
func New(cfg *Config) (*SDK, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	ops, err := operations.NewBuilder(&operations.Config{
		Chain:          cfg.Chain,
		Clock:          cfg.Clock,
		DeadlineWindow: cfg.DeadlineWindow,
	})
	if err != nil {
		return nil, err
	}

	return &SDK{
		chain:       cfg.Chain,
		logger:      cfg.Logger,
		metrics:     NewMetrics(cfg.Registry),
		poolBuilder: magicswap.NewBuilder(tokenregistry.NewClassifier(cfg.Chain), cfg.Clock),
		finder:      router.NewFinder(cfg.Router),
		swapFinder:  router.NewFinder(cfg.Router.SinglePath()),
		ops:         ops,
	}, nil
}

// Chain returns the chain the SDK was configured for.
func (s *SDK) Chain() chains.ChainConfig {
	return s.chain
}

// BuildPools classifies and assembles raw indexer records.
func (s *SDK) BuildPools(raws []magicswap.RawPool) ([]magicswap.Pool, error) {
	pools, err := s.poolBuilder.BuildAll(raws)
	if err != nil {
		return nil, s.fail("build_pools", err)
	}
	s.logger.Debug("pools built", "count", len(pools))
	return pools, nil
}

// FindRoute searches pools for the best conversion between two tokens.
func (s *SDK) FindRoute(pools []magicswap.Pool, tokenIn, tokenOut common.Address, amount *big.Int, exactOut bool) (*router.Route, error) {
	return s.route(routeMode(amount, exactOut), func() (*router.Route, error) {
		return s.finder.FindRoute(pools, tokenIn, tokenOut, amount, exactOut)
	})
}

// FindMarketRoute is FindRoute over a market's cached graph.
func (s *SDK) FindMarketRoute(m *Market, tokenIn, tokenOut common.Address, amount *big.Int, exactOut bool) (*router.Route, error) {
	return s.route(routeMode(amount, exactOut), func() (*router.Route, error) {
		return s.finder.Route(m.Graph(), tokenIn, tokenOut, amount, exactOut)
	})
}

// FindSwapRoute is FindRoute restricted to a single path, so the result can always be
// handed to BuildSwap.
func (s *SDK) FindSwapRoute(pools []magicswap.Pool, tokenIn, tokenOut common.Address, amount *big.Int, exactOut bool) (*router.Route, error) {
	return s.route(routeMode(amount, exactOut), func() (*router.Route, error) {
		return s.swapFinder.FindRoute(pools, tokenIn, tokenOut, amount, exactOut)
	})
}

// FindMarketSwapRoute is FindSwapRoute over a market's cached graph.
func (s *SDK) FindMarketSwapRoute(m *Market, tokenIn, tokenOut common.Address, amount *big.Int, exactOut bool) (*router.Route, error) {
	return s.route(routeMode(amount, exactOut), func() (*router.Route, error) {
		return s.swapFinder.Route(m.Graph(), tokenIn, tokenOut, amount, exactOut)
	})
}

func (s *SDK) route(mode string, find func() (*router.Route, error)) (*router.Route, error) {
	timer := prometheus.NewTimer(s.metrics.routeDuration.WithLabelValues(mode))
	route, err := find()
	timer.ObserveDuration()
	if err != nil {
		return nil, s.fail("find_route", err)
	}
	s.logger.Debug("route found",
		"mode", mode,
		"token_in", route.TokenIn.Address.Hex(),
		"token_out", route.TokenOut.Address.Hex(),
		"amount_in", route.AmountIn.String(),
		"amount_out", route.AmountOut.String(),
		"paths", route.Paths,
	)
	return route, nil
}

func routeMode(amount *big.Int, exactOut bool) string {
	switch {
	case amount == nil || amount.Sign() <= 0:
		return "sample"
	case exactOut:
		return "exact_out"
	default:
		return "exact_in"
	}
}

// BuildSwap turns a route into the router call that executes it. Routes split across
// several paths are rejected; search with FindSwapRoute to get an executable one.
func (s *SDK) BuildSwap(route *router.Route, to common.Address, slippage decimal.Decimal, nftsIn, nftsOut []operations.NftUnit) (operations.Descriptor, error) {
	d, err := s.ops.BuildSwap(route, to, slippage, nftsIn, nftsOut)
	return s.built("build_swap", d, err)
}

// BuildAddLiquidity builds the add-liquidity call for a pool.
func (s *SDK) BuildAddLiquidity(pool magicswap.Pool, to common.Address, amounts operations.AddAmounts, nfts0, nfts1 []operations.NftUnit) (operations.Descriptor, error) {
	d, err := s.ops.BuildAddLiquidity(pool, to, amounts, nfts0, nfts1)
	return s.built("build_add_liquidity", d, err)
}

// BuildRemoveLiquidity builds the remove-liquidity call for a pool.
func (s *SDK) BuildRemoveLiquidity(pool magicswap.Pool, to common.Address, amountLP *big.Int, mins operations.RemoveMins, swapLeftover bool, nfts0, nfts1 []operations.NftUnit) (operations.Descriptor, error) {
	d, err := s.ops.BuildRemoveLiquidity(pool, to, amountLP, mins, swapLeftover, nfts0, nfts1)
	return s.built("build_remove_liquidity", d, err)
}

func (s *SDK) built(operation string, d operations.Descriptor, err error) (operations.Descriptor, error) {
	if err != nil {
		return nil, s.fail(operation, err)
	}
	s.metrics.operations.WithLabelValues(d.Method()).Inc()
	s.logger.Debug("operation built", "operation", operation, "method", d.Method(), "value", d.Value().String())
	return d, nil
}

func (s *SDK) fail(operation string, err error) error {
	kind := ErrorKind(err)
	s.metrics.errors.WithLabelValues(operation, kind).Inc()
	s.logger.Warn("operation failed", "operation", operation, "kind", kind, "error", err)
	return err
}

var errorKinds = []struct {
	err  error
	kind string
}{
	{magicswap.ErrTokenNotFound, "token_not_found"},
	{magicswap.ErrUnsupportedSwapShape, "unsupported_swap_shape"},
	{magicswap.ErrArithmeticOverflow, "arithmetic_overflow"},
	{magicswap.ErrInsufficientLiquidity, "insufficient_liquidity"},
	{magicswap.ErrIdenticalTokens, "identical_tokens"},
	{magicswap.ErrFeeMismatch, "fee_mismatch"},
	{magicswap.ErrInvalidPool, "invalid_pool"},
	{magicswap.ErrInvalidAmount, "invalid_amount"},
	{tokenregistry.ErrInvalidToken, "invalid_token"},
	{operations.ErrInvalidSlippage, "invalid_slippage"},
	{operations.ErrInvalidNFT, "invalid_nft"},
	{operations.ErrSplitRoute, "split_route"},
}

// ErrorKind maps an error to a stable label. Unknown errors map to "internal".
func ErrorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "internal"
}
