package tokenregistry

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Kind classifies how a token is held and moved on chain.
type Kind uint8

const (
	KindERC20 Kind = iota
	KindNative
	KindNFTVault
)

func (k Kind) String() string {
	switch k {
	case KindERC20:
		return "erc20"
	case KindNative:
		return "native"
	case KindNFTVault:
		return "nft-vault"
	default:
		return "unknown"
	}
}

// CollectionType is the token standard of an NFT collection held by a vault.
type CollectionType string

const (
	ERC721  CollectionType = "ERC721"
	ERC1155 CollectionType = "ERC1155"
)

// Collection is one NFT collection accepted by a vault. An empty TokenIDs list means
// every id of the collection is accepted.
type Collection struct {
	Address  common.Address `json:"address"`
	Type     CollectionType `json:"type"`
	Name     string         `json:"name"`
	Image    string         `json:"image,omitempty"`
	TokenIDs []string       `json:"tokenIds,omitempty"`
}

// Asset is optional display metadata for a single NFT id.
type Asset struct {
	Collection common.Address `json:"collection"`
	TokenID    string         `json:"tokenId"`
	Name       string         `json:"name"`
	Image      string         `json:"image,omitempty"`
	Type       string         `json:"type,omitempty"`
}

// Token is a classified, read-only view of a pool token.
type Token struct {
	Address     common.Address `json:"address"`
	Name        string         `json:"name"`
	Symbol      string         `json:"symbol"`
	Image       string         `json:"image,omitempty"`
	Decimals    uint8          `json:"decimals"`
	Kind        Kind           `json:"kind"`
	Collections []Collection   `json:"collections,omitempty"`
	Assets      []Asset        `json:"assets,omitempty"`

	// DerivedValue is the token's price expressed in the reference asset.
	DerivedValue decimal.Decimal `json:"derivedValue"`
}

func (t Token) IsNFT() bool    { return t.Kind == KindNFTVault }
func (t Token) IsNative() bool { return t.Kind == KindNative }

// IsComposite reports whether the vault aggregates more than one collection.
func (t Token) IsComposite() bool {
	return len(t.Collections) > 1
}

// TokenIDCount is the number of ids enumerated across all vault collections.
func (t Token) TokenIDCount() int {
	n := 0
	for _, c := range t.Collections {
		n += len(c.TokenIDs)
	}
	return n
}

// RawToken is a token record as returned by the indexer.
type RawToken struct {
	Address      common.Address `json:"id"`
	Name         string         `json:"name"`
	Symbol       string         `json:"symbol"`
	Decimals     uint8          `json:"decimals"`
	IsNFT        bool           `json:"isNFT"`
	Collections  []Collection   `json:"vaultCollections,omitempty"`
	Assets       []Asset        `json:"assets,omitempty"`
	DerivedValue string         `json:"derivedValue,omitempty"`
}
