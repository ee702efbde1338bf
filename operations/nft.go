package operations

import (
	"fmt"
	"math/big"

	"github.com/defistate/magicswap-client-go/protocols/tokenregistry"
	"github.com/ethereum/go-ethereum/common"
)

// NftUnit selects Quantity copies of one NFT. Collection may be left zero when the
// vault holds a single collection.
type NftUnit struct {
	Collection common.Address `json:"collection,omitempty" yaml:"collection,omitempty"`
	ID         string         `json:"id" yaml:"id"`
	Quantity   uint64         `json:"quantity" yaml:"quantity"`
}

// resolvedNFTs is a validated NFT selection for one vault.
type resolvedNFTs struct {
	collections []common.Address
	ids         []*big.Int
	quantities  []*big.Int
	// amount is the vault token amount the selection is worth.
	amount *big.Int
}

// resolveNFTs validates units against a vault and converts them to router arrays.
// Every NFT is worth 10^decimals vault tokens.
func resolveNFTs(vault tokenregistry.Token, units []NftUnit) (resolvedNFTs, error) {
	if !vault.IsNFT() {
		return resolvedNFTs{}, fmt.Errorf("%w: %s is not an NFT vault", ErrInvalidNFT, vault.Address.Hex())
	}

	out := resolvedNFTs{
		collections: make([]common.Address, 0, len(units)),
		ids:         make([]*big.Int, 0, len(units)),
		quantities:  make([]*big.Int, 0, len(units)),
		amount:      new(big.Int),
	}
	count := new(big.Int)
	for _, u := range units {
		collection, err := unitCollection(vault, u)
		if err != nil {
			return resolvedNFTs{}, err
		}
		id, ok := new(big.Int).SetString(u.ID, 10)
		if !ok || id.Sign() < 0 {
			return resolvedNFTs{}, fmt.Errorf("%w: token id %q is not a non-negative integer", ErrInvalidNFT, u.ID)
		}
		if u.Quantity == 0 {
			return resolvedNFTs{}, fmt.Errorf("%w: zero quantity for token id %s", ErrInvalidNFT, u.ID)
		}
		if !acceptsID(collection, u.ID) {
			return resolvedNFTs{}, fmt.Errorf("%w: vault %s does not accept %s #%s", ErrInvalidNFT, vault.Address.Hex(), collection.Address.Hex(), u.ID)
		}

		quantity := new(big.Int).SetUint64(u.Quantity)
		out.collections = append(out.collections, collection.Address)
		out.ids = append(out.ids, id)
		out.quantities = append(out.quantities, quantity)
		count.Add(count, quantity)
	}

	out.amount.Exp(big.NewInt(10), big.NewInt(int64(vault.Decimals)), nil)
	out.amount.Mul(out.amount, count)
	return out, nil
}

func (r resolvedNFTs) vaultData(vault common.Address) VaultData {
	return VaultData{
		Token:      vault,
		Collection: r.collections,
		TokenId:    r.ids,
		Amount:     r.quantities,
	}
}

func (r resolvedNFTs) arrays() NFTArrays {
	return NFTArrays{
		Collection: r.collections,
		TokenID:    r.ids,
		Quantity:   r.quantities,
	}
}

func unitCollection(vault tokenregistry.Token, u NftUnit) (tokenregistry.Collection, error) {
	if u.Collection == (common.Address{}) {
		if len(vault.Collections) != 1 {
			return tokenregistry.Collection{}, fmt.Errorf("%w: vault %s holds %d collections, the unit must name one", ErrInvalidNFT, vault.Address.Hex(), len(vault.Collections))
		}
		return vault.Collections[0], nil
	}
	for _, c := range vault.Collections {
		if c.Address == u.Collection {
			return c, nil
		}
	}
	return tokenregistry.Collection{}, fmt.Errorf("%w: collection %s is not held by vault %s", ErrInvalidNFT, u.Collection.Hex(), vault.Address.Hex())
}

// acceptsID reports whether a collection admits an id. Collections without an
// explicit id list admit all of them.
func acceptsID(c tokenregistry.Collection, id string) bool {
	if len(c.TokenIDs) == 0 {
		return true
	}
	for _, allowed := range c.TokenIDs {
		if allowed == id {
			return true
		}
	}
	return false
}
