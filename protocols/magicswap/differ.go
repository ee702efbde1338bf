package magicswap

import "github.com/ethereum/go-ethereum/common"

// SystemDiff is the change set between two pool snapshots.
type SystemDiff struct {
	Additions []Pool           `json:"additions,omitempty"`
	Updates   []Pool           `json:"updates,omitempty"`
	Deletions []common.Address `json:"deletions,omitempty"`
}

// IsEmpty returns true if the diff contains no changes.
func (d SystemDiff) IsEmpty() bool {
	return len(d.Additions) == 0 && len(d.Updates) == 0 && len(d.Deletions) == 0
}

// Differ computes the change set between two pool snapshots keyed by pool address.
// Only reserves, total supply and fees are compared; token metadata is assumed stable
// for a given pair. Output order follows the input order.
func Differ(old, new []Pool) SystemDiff {
	oldPoolsMap := make(map[common.Address]Pool, len(old))
	for _, pool := range old {
		oldPoolsMap[pool.Address] = pool
	}
	newPoolsMap := make(map[common.Address]struct{}, len(new))

	var diff SystemDiff
	for _, newPool := range new {
		newPoolsMap[newPool.Address] = struct{}{}
		oldPool, exists := oldPoolsMap[newPool.Address]
		if !exists {
			diff.Additions = append(diff.Additions, newPool)
			continue
		}
		if poolChanged(oldPool, newPool) {
			diff.Updates = append(diff.Updates, newPool)
		}
	}

	for _, oldPool := range old {
		if _, exists := newPoolsMap[oldPool.Address]; !exists {
			diff.Deletions = append(diff.Deletions, oldPool.Address)
		}
	}
	return diff
}

func poolChanged(a, b Pool) bool {
	return cmpBig(a.Reserve0, b.Reserve0) != 0 ||
		cmpBig(a.Reserve1, b.Reserve1) != 0 ||
		cmpBig(a.TotalSupply, b.TotalSupply) != 0 ||
		a.Fees.LPBps != b.Fees.LPBps ||
		a.Fees.ProtocolBps != b.Fees.ProtocolBps ||
		a.Fees.RoyaltiesBps != b.Fees.RoyaltiesBps
}
