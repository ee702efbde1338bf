package magicswap

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ClonePool returns a Pool that shares no *big.Int with p.
func ClonePool(p Pool) Pool {
	out := p
	out.Reserve0 = cloneBig(p.Reserve0)
	out.Reserve1 = cloneBig(p.Reserve1)
	out.TotalSupply = cloneBig(p.TotalSupply)
	if p.Fees.RoyaltiesBeneficiary != nil {
		beneficiary := *p.Fees.RoyaltiesBeneficiary
		out.Fees.RoyaltiesBeneficiary = &beneficiary
	}
	return out
}

// Patcher applies a diff to a previous snapshot and returns a new, independent snapshot.
// prevState is never mutated. Surviving pools keep their order; additions are appended.
func Patcher(prevState []Pool, diff SystemDiff) ([]Pool, error) {
	deleted := make(map[common.Address]struct{}, len(diff.Deletions))
	for _, addr := range diff.Deletions {
		deleted[addr] = struct{}{}
	}
	updated := make(map[common.Address]Pool, len(diff.Updates))
	for _, p := range diff.Updates {
		updated[p.Address] = p
	}

	finalState := make([]Pool, 0, len(prevState)+len(diff.Additions))
	present := make(map[common.Address]int, len(prevState)+len(diff.Additions))
	for _, pool := range prevState {
		if _, ok := deleted[pool.Address]; ok {
			continue
		}
		if u, ok := updated[pool.Address]; ok {
			pool = u
		}
		present[pool.Address] = len(finalState)
		finalState = append(finalState, ClonePool(pool))
	}

	for _, added := range diff.Additions {
		if i, ok := present[added.Address]; ok {
			finalState[i] = ClonePool(added)
			continue
		}
		present[added.Address] = len(finalState)
		finalState = append(finalState, ClonePool(added))
	}

	return finalState, nil
}

func cloneBig(x *big.Int) *big.Int {
	if x == nil {
		return nil
	}
	return new(big.Int).Set(x)
}

func cmpBig(a, b *big.Int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Cmp(b)
}
