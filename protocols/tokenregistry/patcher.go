package tokenregistry

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var ErrInconsistentDiff = errors.New("diff does not apply to the token snapshot")

// Patcher applies a diff to a previous token snapshot and returns the next one.
// Surviving tokens keep their position; additions are appended in diff order.
// prevState is never modified.
func Patcher(prevState []Token, diff TokenSystemDiff) ([]Token, error) {
	position := make(map[common.Address]int, len(prevState))
	for i, token := range prevState {
		position[token.Address] = i
	}

	next := make([]Token, len(prevState))
	copy(next, prevState)

	for _, updated := range diff.Updates {
		i, ok := position[updated.Address]
		if !ok {
			return nil, fmt.Errorf("%w: update of unknown token %s", ErrInconsistentDiff, updated.Address.Hex())
		}
		next[i] = updated
	}

	deleted := make(map[common.Address]struct{}, len(diff.Deletions))
	for _, addr := range diff.Deletions {
		if _, ok := position[addr]; !ok {
			return nil, fmt.Errorf("%w: deletion of unknown token %s", ErrInconsistentDiff, addr.Hex())
		}
		deleted[addr] = struct{}{}
	}

	finalState := make([]Token, 0, len(next)+len(diff.Additions))
	for _, token := range next {
		if _, ok := deleted[token.Address]; !ok {
			finalState = append(finalState, token)
		}
	}
	for _, added := range diff.Additions {
		if _, ok := position[added.Address]; ok {
			return nil, fmt.Errorf("%w: token %s added twice", ErrInconsistentDiff, added.Address.Hex())
		}
		finalState = append(finalState, added)
	}
	return finalState, nil
}
