package indexer

import (
	"github.com/defistate/magicswap-client-go/protocols/magicswap"
	"github.com/ethereum/go-ethereum/common"
)

// IndexedMagicswap defines the methods for accessing indexed Magicswap pool data.
type IndexedMagicswap interface {
	GetByAddress(address common.Address) (magicswap.Pool, bool)
	GetByPair(tokenA, tokenB common.Address) (magicswap.Pool, bool)
	PoolsForToken(token common.Address) []magicswap.Pool
	All() []magicswap.Pool
}
