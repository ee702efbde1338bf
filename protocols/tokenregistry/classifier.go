package tokenregistry

import (
	"errors"
	"fmt"

	"github.com/defistate/magicswap-client-go/chains"
	"github.com/shopspring/decimal"
)

// ErrInvalidToken is returned when a raw token record violates the token invariants.
var ErrInvalidToken = errors.New("invalid token")

// Classifier turns indexer token records into typed tokens for one chain.
type Classifier struct {
	chain chains.ChainConfig
}

// NewClassifier creates a classifier bound to the given chain constants.
func NewClassifier(chain chains.ChainConfig) *Classifier {
	return &Classifier{chain: chain}
}

// Classify converts a raw record into a Token. It is a pure function of its input.
func (c *Classifier) Classify(raw RawToken) (Token, error) {
	isNative := c.chain.IsNative(raw.Address)
	if raw.IsNFT && isNative {
		return Token{}, fmt.Errorf("%w: %s is both the native sentinel and an NFT vault", ErrInvalidToken, raw.Address.Hex())
	}

	derived := decimal.Zero
	if raw.DerivedValue != "" {
		d, err := decimal.NewFromString(raw.DerivedValue)
		if err != nil {
			return Token{}, fmt.Errorf("%w: derived value %q of %s: %v", ErrInvalidToken, raw.DerivedValue, raw.Address.Hex(), err)
		}
		if d.IsNegative() {
			return Token{}, fmt.Errorf("%w: negative derived value for %s", ErrInvalidToken, raw.Address.Hex())
		}
		derived = d
	}

	token := Token{
		Address:      raw.Address,
		Name:         raw.Name,
		Symbol:       raw.Symbol,
		Decimals:     raw.Decimals,
		Kind:         KindERC20,
		DerivedValue: derived,
	}

	switch {
	case isNative:
		token.Kind = KindNative
		if token.Name == "" {
			token.Name = c.chain.NativeName
		}
		if token.Symbol == "" {
			token.Symbol = c.chain.NativeSymbol
		}
		if token.Decimals == 0 {
			token.Decimals = c.chain.NativeDecimals
		}
	case raw.IsNFT:
		if len(raw.Collections) == 0 {
			return Token{}, fmt.Errorf("%w: NFT vault %s has no collections", ErrInvalidToken, raw.Address.Hex())
		}
		token.Kind = KindNFTVault
		token.Collections = cloneCollections(raw.Collections)
		token.Assets = append([]Asset(nil), raw.Assets...)
		token.Name, token.Image = ResolveDisplay(token.Collections, token.Assets)
	}

	return token, nil
}

// ClassifyAll classifies every record, stopping at the first failure.
func (c *Classifier) ClassifyAll(raws []RawToken) ([]Token, error) {
	tokens := make([]Token, 0, len(raws))
	for _, raw := range raws {
		t, err := c.Classify(raw)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

func cloneCollections(in []Collection) []Collection {
	out := make([]Collection, len(in))
	for i, c := range in {
		out[i] = c
		out[i].TokenIDs = append([]string(nil), c.TokenIDs...)
	}
	return out
}
