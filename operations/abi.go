package operations

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// routerABIJSON covers the router entry points the builders emit.
const routerABIJSON = `[
  {
    "type": "function",
    "name": "swapNftsForTokens",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "collection", "type": "address[]"},
      {"name": "tokenId", "type": "uint256[]"},
      {"name": "quantity", "type": "uint256[]"},
      {"name": "amountOutMin", "type": "uint256"},
      {"name": "path", "type": "address[]"},
      {"name": "to", "type": "address"},
      {"name": "deadline", "type": "uint256"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "swapNftsForEth",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "collection", "type": "address[]"},
      {"name": "tokenId", "type": "uint256[]"},
      {"name": "quantity", "type": "uint256[]"},
      {"name": "amountOutMin", "type": "uint256"},
      {"name": "path", "type": "address[]"},
      {"name": "to", "type": "address"},
      {"name": "deadline", "type": "uint256"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "swapTokensForNfts",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "collection", "type": "address[]"},
      {"name": "tokenId", "type": "uint256[]"},
      {"name": "quantity", "type": "uint256[]"},
      {"name": "amountInMax", "type": "uint256"},
      {"name": "path", "type": "address[]"},
      {"name": "to", "type": "address"},
      {"name": "deadline", "type": "uint256"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "swapEthForNfts",
    "stateMutability": "payable",
    "inputs": [
      {"name": "collection", "type": "address[]"},
      {"name": "tokenId", "type": "uint256[]"},
      {"name": "quantity", "type": "uint256[]"},
      {"name": "path", "type": "address[]"},
      {"name": "to", "type": "address"},
      {"name": "deadline", "type": "uint256"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "swapExactTokensForTokens",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "amountIn", "type": "uint256"},
      {"name": "amountOutMin", "type": "uint256"},
      {"name": "path", "type": "address[]"},
      {"name": "to", "type": "address"},
      {"name": "deadline", "type": "uint256"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "swapTokensForExactTokens",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "amountOut", "type": "uint256"},
      {"name": "amountInMax", "type": "uint256"},
      {"name": "path", "type": "address[]"},
      {"name": "to", "type": "address"},
      {"name": "deadline", "type": "uint256"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "swapExactEthForTokens",
    "stateMutability": "payable",
    "inputs": [
      {"name": "amountOutMin", "type": "uint256"},
      {"name": "path", "type": "address[]"},
      {"name": "to", "type": "address"},
      {"name": "deadline", "type": "uint256"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "swapEthForExactTokens",
    "stateMutability": "payable",
    "inputs": [
      {"name": "amountOut", "type": "uint256"},
      {"name": "path", "type": "address[]"},
      {"name": "to", "type": "address"},
      {"name": "deadline", "type": "uint256"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "swapExactTokensForEth",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "amountIn", "type": "uint256"},
      {"name": "amountOutMin", "type": "uint256"},
      {"name": "path", "type": "address[]"},
      {"name": "to", "type": "address"},
      {"name": "deadline", "type": "uint256"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "swapTokensForExactEth",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "amountOut", "type": "uint256"},
      {"name": "amountInMax", "type": "uint256"},
      {"name": "path", "type": "address[]"},
      {"name": "to", "type": "address"},
      {"name": "deadline", "type": "uint256"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "addLiquidity",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "tokenA", "type": "address"},
      {"name": "tokenB", "type": "address"},
      {"name": "amountADesired", "type": "uint256"},
      {"name": "amountBDesired", "type": "uint256"},
      {"name": "amountAMin", "type": "uint256"},
      {"name": "amountBMin", "type": "uint256"},
      {"name": "to", "type": "address"},
      {"name": "deadline", "type": "uint256"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "addLiquidityETH",
    "stateMutability": "payable",
    "inputs": [
      {"name": "token", "type": "address"},
      {"name": "amountTokenDesired", "type": "uint256"},
      {"name": "amountTokenMin", "type": "uint256"},
      {"name": "amountETHMin", "type": "uint256"},
      {"name": "to", "type": "address"},
      {"name": "deadline", "type": "uint256"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "addLiquidityNFT",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "vault", "type": "tuple", "internalType": "struct NftVaultLiquidityData", "components": [
        {"name": "token", "type": "address"},
        {"name": "collection", "type": "address[]"},
        {"name": "tokenId", "type": "uint256[]"},
        {"name": "amount", "type": "uint256[]"}
      ]},
      {"name": "tokenB", "type": "address"},
      {"name": "amountBDesired", "type": "uint256"},
      {"name": "amountBMin", "type": "uint256"},
      {"name": "to", "type": "address"},
      {"name": "deadline", "type": "uint256"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "addLiquidityNFTETH",
    "stateMutability": "payable",
    "inputs": [
      {"name": "vault", "type": "tuple", "internalType": "struct NftVaultLiquidityData", "components": [
        {"name": "token", "type": "address"},
        {"name": "collection", "type": "address[]"},
        {"name": "tokenId", "type": "uint256[]"},
        {"name": "amount", "type": "uint256[]"}
      ]},
      {"name": "amountETHMin", "type": "uint256"},
      {"name": "to", "type": "address"},
      {"name": "deadline", "type": "uint256"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "addLiquidityNFTNFT",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "vaultA", "type": "tuple", "internalType": "struct NftVaultLiquidityData", "components": [
        {"name": "token", "type": "address"},
        {"name": "collection", "type": "address[]"},
        {"name": "tokenId", "type": "uint256[]"},
        {"name": "amount", "type": "uint256[]"}
      ]},
      {"name": "vaultB", "type": "tuple", "internalType": "struct NftVaultLiquidityData", "components": [
        {"name": "token", "type": "address"},
        {"name": "collection", "type": "address[]"},
        {"name": "tokenId", "type": "uint256[]"},
        {"name": "amount", "type": "uint256[]"}
      ]},
      {"name": "amountAMin", "type": "uint256"},
      {"name": "amountBMin", "type": "uint256"},
      {"name": "to", "type": "address"},
      {"name": "deadline", "type": "uint256"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "removeLiquidity",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "tokenA", "type": "address"},
      {"name": "tokenB", "type": "address"},
      {"name": "liquidity", "type": "uint256"},
      {"name": "amountAMin", "type": "uint256"},
      {"name": "amountBMin", "type": "uint256"},
      {"name": "to", "type": "address"},
      {"name": "deadline", "type": "uint256"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "removeLiquidityETH",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "token", "type": "address"},
      {"name": "liquidity", "type": "uint256"},
      {"name": "amountTokenMin", "type": "uint256"},
      {"name": "amountETHMin", "type": "uint256"},
      {"name": "to", "type": "address"},
      {"name": "deadline", "type": "uint256"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "removeLiquidityNFT",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "vault", "type": "tuple", "internalType": "struct NftVaultLiquidityData", "components": [
        {"name": "token", "type": "address"},
        {"name": "collection", "type": "address[]"},
        {"name": "tokenId", "type": "uint256[]"},
        {"name": "amount", "type": "uint256[]"}
      ]},
      {"name": "tokenB", "type": "address"},
      {"name": "lpAmount", "type": "uint256"},
      {"name": "amountAMin", "type": "uint256"},
      {"name": "amountBMin", "type": "uint256"},
      {"name": "to", "type": "address"},
      {"name": "deadline", "type": "uint256"},
      {"name": "swapLeftover", "type": "bool"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "removeLiquidityNFTETH",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "vault", "type": "tuple", "internalType": "struct NftVaultLiquidityData", "components": [
        {"name": "token", "type": "address"},
        {"name": "collection", "type": "address[]"},
        {"name": "tokenId", "type": "uint256[]"},
        {"name": "amount", "type": "uint256[]"}
      ]},
      {"name": "lpAmount", "type": "uint256"},
      {"name": "amountTokenMin", "type": "uint256"},
      {"name": "amountETHMin", "type": "uint256"},
      {"name": "to", "type": "address"},
      {"name": "deadline", "type": "uint256"},
      {"name": "swapLeftover", "type": "bool"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "removeLiquidityNFTNFT",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "vaultA", "type": "tuple", "internalType": "struct NftVaultLiquidityData", "components": [
        {"name": "token", "type": "address"},
        {"name": "collection", "type": "address[]"},
        {"name": "tokenId", "type": "uint256[]"},
        {"name": "amount", "type": "uint256[]"}
      ]},
      {"name": "vaultB", "type": "tuple", "internalType": "struct NftVaultLiquidityData", "components": [
        {"name": "token", "type": "address"},
        {"name": "collection", "type": "address[]"},
        {"name": "tokenId", "type": "uint256[]"},
        {"name": "amount", "type": "uint256[]"}
      ]},
      {"name": "lpAmount", "type": "uint256"},
      {"name": "amountAMin", "type": "uint256"},
      {"name": "amountBMin", "type": "uint256"},
      {"name": "to", "type": "address"},
      {"name": "deadline", "type": "uint256"},
      {"name": "swapLeftover", "type": "bool"}
    ],
    "outputs": []
  }
]`

var (
	routerABI     abi.ABI
	routerABIOnce sync.Once
	routerABIErr  error
)

// RouterABI returns the parsed router ABI.
func RouterABI() (abi.ABI, error) {
	routerABIOnce.Do(func() {
		routerABI, routerABIErr = abi.JSON(strings.NewReader(routerABIJSON))
	})
	return routerABI, routerABIErr
}

// Calldata ABI-encodes a descriptor, selector included.
func Calldata(d Descriptor) ([]byte, error) {
	parsed, err := RouterABI()
	if err != nil {
		return nil, fmt.Errorf("parse router abi: %w", err)
	}
	data, err := parsed.Pack(d.Method(), d.Args()...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", d.Method(), err)
	}
	return data, nil
}
