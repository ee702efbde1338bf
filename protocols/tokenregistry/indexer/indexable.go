package indexer

import (
	tokenregistry "github.com/defistate/magicswap-client-go/protocols/tokenregistry"
	"github.com/ethereum/go-ethereum/common"
)

var _ IndexedTokenSystem = (*IndexableTokenSystem)(nil)

// Indexer is a concrete token indexer.
type Indexer struct{}

// New creates a new Indexer.
func New() *Indexer {
	return &Indexer{}
}

// Index creates an indexed token system from a raw slice of tokens.
func (i *Indexer) Index(tokens []tokenregistry.Token) IndexedTokenSystem {
	return NewIndexableTokenSystem(tokens)
}

// IndexableTokenSystem provides fast, indexed access to token data.
// When the same address appears more than once, the first occurrence wins.
type IndexableTokenSystem struct {
	byAddress map[common.Address]tokenregistry.Token
	all       []tokenregistry.Token
}

// NewIndexableTokenSystem creates a new indexed token system from a raw slice.
func NewIndexableTokenSystem(tokens []tokenregistry.Token) *IndexableTokenSystem {
	byAddress := make(map[common.Address]tokenregistry.Token, len(tokens))
	all := make([]tokenregistry.Token, 0, len(tokens))

	for _, t := range tokens {
		if _, ok := byAddress[t.Address]; ok {
			continue
		}
		byAddress[t.Address] = t
		all = append(all, t)
	}

	return &IndexableTokenSystem{
		byAddress: byAddress,
		all:       all,
	}
}

// GetByAddress retrieves a token by its contract address.
func (its *IndexableTokenSystem) GetByAddress(address common.Address) (tokenregistry.Token, bool) {
	t, ok := its.byAddress[address]
	return t, ok
}

// Contains reports whether the address is indexed.
func (its *IndexableTokenSystem) Contains(address common.Address) bool {
	_, ok := its.byAddress[address]
	return ok
}

// All returns a copy of the slice of all tokens in the system.
func (its *IndexableTokenSystem) All() []tokenregistry.Token {
	allCopy := make([]tokenregistry.Token, len(its.all))
	copy(allCopy, its.all)
	return allCopy
}
