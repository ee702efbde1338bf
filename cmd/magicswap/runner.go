package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"os"

	"github.com/defistate/magicswap-client-go/cmd/magicswap/config"
	"github.com/defistate/magicswap-client-go/operations"
	"github.com/defistate/magicswap-client-go/protocols/magicswap"
	"github.com/defistate/magicswap-client-go/router"
	"github.com/defistate/magicswap-client-go/sdk"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type runner struct {
	out      io.Writer
	registry prometheus.Registerer
}

// session is everything one command needs, loaded from the config and pools file.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	sdk    *sdk.SDK
	market *sdk.Market
}

func (r *runner) load(cmd *cobra.Command) (*session, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if pools, _ := cmd.Flags().GetString("pools"); pools != "" {
		cfg.PoolsFile = pools
	}
	if cfg.PoolsFile == "" {
		return nil, fmt.Errorf("pools file is required")
	}

	logger := newLogger(cfg.LogLevel)
	s, err := sdk.New(&sdk.Config{
		Chain:          cfg.Chain,
		Logger:         logger.With("component", "sdk"),
		Registry:       r.registry,
		Router:         cfg.Router,
		DeadlineWindow: cfg.DeadlineWindow,
	})
	if err != nil {
		return nil, fmt.Errorf("init sdk: %w", err)
	}

	raws, err := readPools(cfg.PoolsFile)
	if err != nil {
		return nil, err
	}
	pools, err := s.BuildPools(raws)
	if err != nil {
		return nil, err
	}
	market := sdk.NewMarket(pools, 0)
	logger.Info("market loaded", "pools", len(pools), "tokens", len(market.Tokens()), "file", cfg.PoolsFile)

	return &session{cfg: cfg, logger: logger, sdk: s, market: market}, nil
}

func readPools(path string) ([]magicswap.RawPool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pools %s: %w", path, err)
	}
	var raws []magicswap.RawPool
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode pools %s: %w", path, err)
	}
	return raws, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

type routeFunc func(m *sdk.Market, tokenIn, tokenOut common.Address, amount *big.Int, exactOut bool) (*router.Route, error)

func (r *runner) findRoute(cmd *cobra.Command, s *session, find routeFunc) (*router.Route, error) {
	in, err := addressFlag(cmd, "in", s.cfg.Chain)
	if err != nil {
		return nil, err
	}
	out, err := addressFlag(cmd, "out", s.cfg.Chain)
	if err != nil {
		return nil, err
	}
	amount, err := amountFlag(cmd, "amount")
	if err != nil {
		return nil, err
	}
	exactOut, _ := cmd.Flags().GetBool("exact-out")
	return find(s.market, in, out, amount, exactOut)
}

func (r *runner) runRoute(cmd *cobra.Command, _ []string) error {
	s, err := r.load(cmd)
	if err != nil {
		return err
	}
	route, err := r.findRoute(cmd, s, s.sdk.FindMarketRoute)
	if err != nil {
		return err
	}
	return r.print(route)
}

func (r *runner) runSwap(cmd *cobra.Command, _ []string) error {
	s, err := r.load(cmd)
	if err != nil {
		return err
	}
	to, err := addressFlag(cmd, "to", s.cfg.Chain)
	if err != nil {
		return err
	}
	slippage, err := s.cfg.SlippageTolerance()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("slippage"); v != "" {
		if slippage, err = parseSlippage(v); err != nil {
			return err
		}
	}
	nftsIn, err := nftFlag(cmd, "nfts-in")
	if err != nil {
		return err
	}
	nftsOut, err := nftFlag(cmd, "nfts-out")
	if err != nil {
		return err
	}

	route, err := r.findRoute(cmd, s, s.sdk.FindMarketSwapRoute)
	if err != nil {
		return err
	}
	d, err := s.sdk.BuildSwap(route, to, slippage, nftsIn, nftsOut)
	if err != nil {
		return err
	}
	op, err := describe(d)
	if err != nil {
		return err
	}
	return r.print(swapOutput{Route: route, Operation: op})
}

func (r *runner) liquidityPool(cmd *cobra.Command, s *session) (magicswap.Pool, common.Address, error) {
	addr, err := addressFlag(cmd, "pool", s.cfg.Chain)
	if err != nil {
		return magicswap.Pool{}, common.Address{}, err
	}
	pool, ok := s.market.Pool(addr)
	if !ok {
		return magicswap.Pool{}, common.Address{}, fmt.Errorf("pool %s is not in %s", addr.Hex(), s.cfg.PoolsFile)
	}
	to, err := addressFlag(cmd, "to", s.cfg.Chain)
	if err != nil {
		return magicswap.Pool{}, common.Address{}, err
	}
	return pool, to, nil
}

func (r *runner) runAddLiquidity(cmd *cobra.Command, _ []string) error {
	s, err := r.load(cmd)
	if err != nil {
		return err
	}
	pool, to, err := r.liquidityPool(cmd, s)
	if err != nil {
		return err
	}

	var amounts operations.AddAmounts
	for name, dst := range map[string]**big.Int{
		"amount0": &amounts.Amount0,
		"amount1": &amounts.Amount1,
		"min0":    &amounts.Amount0Min,
		"min1":    &amounts.Amount1Min,
	} {
		if *dst, err = amountFlag(cmd, name); err != nil {
			return err
		}
	}
	nfts0, nfts1, err := nftSides(cmd)
	if err != nil {
		return err
	}

	d, err := s.sdk.BuildAddLiquidity(pool, to, amounts, nfts0, nfts1)
	if err != nil {
		return err
	}
	op, err := describe(d)
	if err != nil {
		return err
	}

	output := liquidityOutput{Pool: pool.Address, Operation: op}
	if amounts.Amount0 != nil && amounts.Amount0.Sign() > 0 {
		est, err := operations.EstimateAddLiquidity(pool, pool.Token0.Address, amounts.Amount0)
		if err != nil {
			s.logger.Warn("add liquidity estimate unavailable", "pool", pool.Address.Hex(), "error", err)
		} else {
			output.Estimate = &est
		}
	}
	return r.print(output)
}

func (r *runner) runRemoveLiquidity(cmd *cobra.Command, _ []string) error {
	s, err := r.load(cmd)
	if err != nil {
		return err
	}
	pool, to, err := r.liquidityPool(cmd, s)
	if err != nil {
		return err
	}

	lp, err := amountFlag(cmd, "lp")
	if err != nil {
		return err
	}
	var mins operations.RemoveMins
	if mins.Amount0Min, err = amountFlag(cmd, "min0"); err != nil {
		return err
	}
	if mins.Amount1Min, err = amountFlag(cmd, "min1"); err != nil {
		return err
	}
	swapLeftover, _ := cmd.Flags().GetBool("swap-leftover")
	nfts0, nfts1, err := nftSides(cmd)
	if err != nil {
		return err
	}

	d, err := s.sdk.BuildRemoveLiquidity(pool, to, lp, mins, swapLeftover, nfts0, nfts1)
	if err != nil {
		return err
	}
	op, err := describe(d)
	if err != nil {
		return err
	}

	output := liquidityOutput{Pool: pool.Address, Operation: op}
	est, err := operations.EstimateRemoveLiquidity(pool, lp)
	if err != nil {
		s.logger.Warn("remove liquidity estimate unavailable", "pool", pool.Address.Hex(), "error", err)
	} else {
		output.Estimate = &est
	}
	return r.print(output)
}

func nftSides(cmd *cobra.Command) (nfts0, nfts1 []operations.NftUnit, err error) {
	if nfts0, err = nftFlag(cmd, "nfts0"); err != nil {
		return nil, nil, err
	}
	if nfts1, err = nftFlag(cmd, "nfts1"); err != nil {
		return nil, nil, err
	}
	return nfts0, nfts1, nil
}

// operationOutput is the printable form of a router call.
type operationOutput struct {
	Method   string         `json:"method"`
	To       common.Address `json:"to"`
	Value    string         `json:"value"`
	Args     []any          `json:"args"`
	Calldata string         `json:"calldata"`
}

type swapOutput struct {
	Route     *router.Route   `json:"route"`
	Operation operationOutput `json:"operation"`
}

type liquidityOutput struct {
	Pool      common.Address                `json:"pool"`
	Operation operationOutput               `json:"operation"`
	Estimate  *operations.LiquidityEstimate `json:"estimate,omitempty"`
}

func describe(d operations.Descriptor) (operationOutput, error) {
	data, err := operations.Calldata(d)
	if err != nil {
		return operationOutput{}, err
	}
	return operationOutput{
		Method:   d.Method(),
		To:       d.Target(),
		Value:    d.Value().String(),
		Args:     d.Args(),
		Calldata: hexutil.Encode(data),
	}, nil
}

func (r *runner) print(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
