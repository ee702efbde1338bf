package chains

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// Chain IDs with a Magicswap deployment.
const (
	Arbitrum        uint64 = 42161
	ArbitrumSepolia uint64 = 421614
	TreasureTopaz   uint64 = 978658
	Treasure        uint64 = 61166
)

// Logger defines a standard interface for structured, leveled logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ChainConfig carries every chain-scoped constant the engine needs. It is always passed
// explicitly; no package keeps a global copy.
type ChainConfig struct {
	ChainID uint64 `yaml:"chainId" json:"chainId"`

	// Router is the Magicswap router every operation descriptor targets.
	Router common.Address `yaml:"router" json:"router"`

	// NativeAddress is the sentinel used by the indexer for the chain's native currency.
	// The zero address is the conventional value.
	NativeAddress common.Address `yaml:"nativeAddress" json:"nativeAddress"`

	// WrappedNative replaces NativeAddress inside on-chain swap paths.
	WrappedNative common.Address `yaml:"wrappedNative" json:"wrappedNative"`

	NativeName     string `yaml:"nativeName" json:"nativeName"`
	NativeSymbol   string `yaml:"nativeSymbol" json:"nativeSymbol"`
	NativeDecimals uint8  `yaml:"nativeDecimals" json:"nativeDecimals"`
}

// Validate checks the fields required to build operations.
func (c ChainConfig) Validate() error {
	if c.ChainID == 0 {
		return errors.New("chain config: chainId is required")
	}
	if c.Router == (common.Address{}) {
		return errors.New("chain config: router address is required")
	}
	if c.WrappedNative == (common.Address{}) {
		return errors.New("chain config: wrappedNative address is required")
	}
	if c.WrappedNative == c.NativeAddress {
		return errors.New("chain config: wrappedNative must differ from the native sentinel")
	}
	return nil
}

// IsNative reports whether addr is the chain's native-currency sentinel.
func (c ChainConfig) IsNative(addr common.Address) bool {
	return addr == c.NativeAddress
}

// PathAddress maps a token address to the address the router expects in a swap path.
func (c ChainConfig) PathAddress(addr common.Address) common.Address {
	if c.IsNative(addr) {
		return c.WrappedNative
	}
	return addr
}
