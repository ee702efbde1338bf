package main

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/defistate/magicswap-client-go/chains"
	"github.com/defistate/magicswap-client-go/operations"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func addressFlag(cmd *cobra.Command, name string, chain chains.ChainConfig) (common.Address, error) {
	v, _ := cmd.Flags().GetString(name)
	addr, err := parseAddress(v, chain)
	if err != nil {
		return common.Address{}, fmt.Errorf("--%s: %w", name, err)
	}
	return addr, nil
}

// parseAddress accepts a hex address, or "native" or the native symbol for the chain's
// native sentinel.
func parseAddress(s string, chain chains.ChainConfig) (common.Address, error) {
	s = strings.TrimSpace(s)
	if s != "" && (strings.EqualFold(s, "native") || strings.EqualFold(s, chain.NativeSymbol)) {
		return chain.NativeAddress, nil
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%q is not an address", s)
	}
	return common.HexToAddress(s), nil
}

func amountFlag(cmd *cobra.Command, name string) (*big.Int, error) {
	v, _ := cmd.Flags().GetString(name)
	n, err := parseAmount(v)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return n, nil
}

// parseAmount reads a non-negative base-10 integer. An empty string is nil.
func parseAmount(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%q is not an integer", s)
	}
	if n.Sign() < 0 {
		return nil, fmt.Errorf("%q is negative", s)
	}
	return n, nil
}

func parseSlippage(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("--slippage %q: %w", s, err)
	}
	return d, nil
}

func nftFlag(cmd *cobra.Command, name string) ([]operations.NftUnit, error) {
	vs, _ := cmd.Flags().GetStringSlice(name)
	units, err := parseNftUnits(vs)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return units, nil
}

// parseNftUnits reads NFT selections written as id, id:quantity or
// collection:id:quantity. The quantity defaults to 1.
func parseNftUnits(vs []string) ([]operations.NftUnit, error) {
	if len(vs) == 0 {
		return nil, nil
	}
	units := make([]operations.NftUnit, 0, len(vs))
	for _, v := range vs {
		parts := strings.Split(strings.TrimSpace(v), ":")
		u := operations.NftUnit{Quantity: 1}
		switch len(parts) {
		case 1:
			u.ID = parts[0]
		case 2:
			u.ID = parts[0]
			q, err := strconv.ParseUint(parts[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%q: quantity: %w", v, err)
			}
			u.Quantity = q
		case 3:
			if !common.IsHexAddress(parts[0]) {
				return nil, fmt.Errorf("%q: %q is not a collection address", v, parts[0])
			}
			u.Collection = common.HexToAddress(parts[0])
			u.ID = parts[1]
			q, err := strconv.ParseUint(parts[2], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%q: quantity: %w", v, err)
			}
			u.Quantity = q
		default:
			return nil, fmt.Errorf("%q is not [collection:]id[:quantity]", v)
		}
		if u.ID == "" {
			return nil, fmt.Errorf("%q: missing token id", v)
		}
		units = append(units, u)
	}
	return units, nil
}
