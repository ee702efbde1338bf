package magicswap

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestDiffer(t *testing.T) {
	addr1 := common.HexToAddress("0x01")
	addr2 := common.HexToAddress("0x02")
	addr3 := common.HexToAddress("0x03")

	pool1 := Pool{Address: addr1, Reserve0: big.NewInt(1000), Reserve1: big.NewInt(5000), TotalSupply: big.NewInt(10)}
	pool2 := Pool{Address: addr2, Reserve0: big.NewInt(2000), Reserve1: big.NewInt(6000), TotalSupply: big.NewInt(20)}

	t.Run("should report no changes for identical snapshots", func(t *testing.T) {
		diff := Differ([]Pool{pool1, pool2}, []Pool{ClonePool(pool1), ClonePool(pool2)})
		assert.True(t, diff.IsEmpty())
	})

	t.Run("should detect additions updates and deletions", func(t *testing.T) {
		pool1Updated := ClonePool(pool1)
		pool1Updated.Reserve1 = big.NewInt(4999)
		pool3 := Pool{Address: addr3, Reserve0: big.NewInt(1), Reserve1: big.NewInt(1)}

		diff := Differ([]Pool{pool1, pool2}, []Pool{pool1Updated, pool3})

		assert.False(t, diff.IsEmpty())
		assert.Len(t, diff.Additions, 1)
		assert.Equal(t, addr3, diff.Additions[0].Address)
		assert.Len(t, diff.Updates, 1)
		assert.Equal(t, int64(4999), diff.Updates[0].Reserve1.Int64())
		assert.Equal(t, []common.Address{addr2}, diff.Deletions)
	})

	t.Run("should detect total supply and fee changes", func(t *testing.T) {
		supplyChanged := ClonePool(pool1)
		supplyChanged.TotalSupply = big.NewInt(11)
		feeChanged := ClonePool(pool2)
		feeChanged.Fees.LPBps = 30

		diff := Differ([]Pool{pool1, pool2}, []Pool{supplyChanged, feeChanged})
		assert.Len(t, diff.Updates, 2)
		assert.Empty(t, diff.Additions)
		assert.Empty(t, diff.Deletions)
	})

	t.Run("should treat nil and zero reserves as different", func(t *testing.T) {
		withNil := ClonePool(pool1)
		withNil.Reserve0 = nil
		diff := Differ([]Pool{pool1}, []Pool{withNil})
		assert.Len(t, diff.Updates, 1)
	})
}
