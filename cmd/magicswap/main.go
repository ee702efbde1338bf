package main

import (
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd(os.Stdout, prometheus.DefaultRegisterer)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer, reg prometheus.Registerer) *cobra.Command {
	r := &runner{out: out, registry: reg}

	root := &cobra.Command{
		Use:          "magicswap",
		Short:        "Magicswap routing and router call builder",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "config.yaml", "config file path")
	root.PersistentFlags().String("pools", "", "pools JSON file, overrides poolsFile from the config")

	routeCmd := &cobra.Command{
		Use:   "route",
		Short: "Find the best route between two tokens",
		RunE:  r.runRoute,
	}
	addRouteFlags(routeCmd)
	root.AddCommand(routeCmd)

	swapCmd := &cobra.Command{
		Use:   "swap",
		Short: "Find a route and build the router call that executes it",
		RunE:  r.runSwap,
	}
	addRouteFlags(swapCmd)
	swapCmd.Flags().String("to", "", "recipient address")
	swapCmd.Flags().String("slippage", "", "slippage tolerance as a fraction, defaults to the config value")
	swapCmd.Flags().StringSlice("nfts-in", nil, "NFTs sold, as [collection:]id[:quantity]")
	swapCmd.Flags().StringSlice("nfts-out", nil, "NFTs bought, as [collection:]id[:quantity]")
	root.AddCommand(swapCmd)

	addCmd := &cobra.Command{
		Use:   "add-liquidity",
		Short: "Build an add-liquidity router call",
		RunE:  r.runAddLiquidity,
	}
	addLiquidityFlags(addCmd)
	addCmd.Flags().String("amount0", "", "desired token0 deposit")
	addCmd.Flags().String("amount1", "", "desired token1 deposit")
	root.AddCommand(addCmd)

	removeCmd := &cobra.Command{
		Use:   "remove-liquidity",
		Short: "Build a remove-liquidity router call",
		RunE:  r.runRemoveLiquidity,
	}
	addLiquidityFlags(removeCmd)
	removeCmd.Flags().String("lp", "", "liquidity tokens to burn")
	removeCmd.Flags().Bool("swap-leftover", true, "swap leftover vault tokens instead of returning them")
	root.AddCommand(removeCmd)

	return root
}

func addRouteFlags(cmd *cobra.Command) {
	cmd.Flags().String("in", "", "input token address, or \"native\"")
	cmd.Flags().String("out", "", "output token address, or \"native\"")
	cmd.Flags().String("amount", "", "amount in smallest units; empty or 0 previews price")
	cmd.Flags().Bool("exact-out", false, "treat amount as the desired output")
}

func addLiquidityFlags(cmd *cobra.Command) {
	cmd.Flags().String("pool", "", "pool address")
	cmd.Flags().String("to", "", "recipient address")
	cmd.Flags().String("min0", "", "minimum token0 amount")
	cmd.Flags().String("min1", "", "minimum token1 amount")
	cmd.Flags().StringSlice("nfts0", nil, "token0 side NFTs, as [collection:]id[:quantity]")
	cmd.Flags().StringSlice("nfts1", nil, "token1 side NFTs, as [collection:]id[:quantity]")
}
