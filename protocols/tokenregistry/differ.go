package tokenregistry

import (
	"slices"

	"github.com/ethereum/go-ethereum/common"
)

// TokenSystemDiff is the change set between two token snapshots.
type TokenSystemDiff struct {
	Additions []Token          `json:"additions,omitempty"`
	Updates   []Token          `json:"updates,omitempty"`
	Deletions []common.Address `json:"deletions,omitempty"`
}

// IsEmpty returns true if the diff contains no changes.
func (d TokenSystemDiff) IsEmpty() bool {
	return len(d.Additions) == 0 && len(d.Updates) == 0 && len(d.Deletions) == 0
}

// Differ computes the change set between two token snapshots keyed by address.
// Output order follows the input order.
func Differ(old, new []Token) TokenSystemDiff {
	oldTokensMap := make(map[common.Address]Token, len(old))
	for _, token := range old {
		oldTokensMap[token.Address] = token
	}
	newTokensMap := make(map[common.Address]struct{}, len(new))

	var diff TokenSystemDiff
	for _, newToken := range new {
		newTokensMap[newToken.Address] = struct{}{}
		oldToken, exists := oldTokensMap[newToken.Address]
		if !exists {
			diff.Additions = append(diff.Additions, newToken)
			continue
		}
		if tokenChanged(oldToken, newToken) {
			diff.Updates = append(diff.Updates, newToken)
		}
	}

	for _, oldToken := range old {
		if _, exists := newTokensMap[oldToken.Address]; !exists {
			diff.Deletions = append(diff.Deletions, oldToken.Address)
		}
	}
	return diff
}

func tokenChanged(a, b Token) bool {
	return a.Name != b.Name ||
		a.Symbol != b.Symbol ||
		a.Image != b.Image ||
		a.Decimals != b.Decimals ||
		a.Kind != b.Kind ||
		!a.DerivedValue.Equal(b.DerivedValue) ||
		!slices.Equal(a.Assets, b.Assets) ||
		!slices.EqualFunc(a.Collections, b.Collections, collectionEqual)
}

func collectionEqual(a, b Collection) bool {
	return a.Address == b.Address &&
		a.Type == b.Type &&
		a.Name == b.Name &&
		a.Image == b.Image &&
		slices.Equal(a.TokenIDs, b.TokenIDs)
}
