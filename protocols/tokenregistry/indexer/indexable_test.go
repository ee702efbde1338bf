package indexer

import (
	"testing"

	tokenregistry "github.com/defistate/magicswap-client-go/protocols/tokenregistry"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexableTokenSystem(t *testing.T) {
	magicAddress := common.HexToAddress("0x539bdE0d7Dbd336b79148AA742883198BBF60342")
	vaultAddress := common.HexToAddress("0x1111111111111111111111111111111111111111")
	nonExistentAddress := common.HexToAddress("0x2222222222222222222222222222222222222222")

	testTokens := []tokenregistry.Token{
		{Address: magicAddress, Name: "MAGIC", Symbol: "MAGIC", Decimals: 18},
		{Address: vaultAddress, Name: "Legions", Symbol: "LGN", Decimals: 18, Kind: tokenregistry.KindNFTVault},
		{Address: magicAddress, Name: "duplicate", Symbol: "DUP"},
	}

	indexer := New().Index(testTokens)
	require.NotNil(t, indexer)

	t.Run("Successful Lookups", func(t *testing.T) {
		magic, found := indexer.GetByAddress(magicAddress)
		assert.True(t, found)
		assert.Equal(t, "MAGIC", magic.Symbol, "first occurrence should win")

		vault, found := indexer.GetByAddress(vaultAddress)
		assert.True(t, found)
		assert.True(t, vault.IsNFT())
		assert.True(t, indexer.Contains(vaultAddress))
	})

	t.Run("Not Found Lookups", func(t *testing.T) {
		_, found := indexer.GetByAddress(nonExistentAddress)
		assert.False(t, found)
		assert.False(t, indexer.Contains(nonExistentAddress))
	})

	t.Run("All Method", func(t *testing.T) {
		allTokens := indexer.All()
		require.Len(t, allTokens, 2, "duplicates should be dropped")

		allTokens[0].Symbol = "MODIFIED"
		original, _ := indexer.GetByAddress(magicAddress)
		assert.Equal(t, "MAGIC", original.Symbol, "Modifying the returned slice should not affect the internal state")
	})

	t.Run("Edge Case - Nil Slice", func(t *testing.T) {
		nilIndexer := NewIndexableTokenSystem(nil)
		require.NotNil(t, nilIndexer)

		allTokens := nilIndexer.All()
		assert.Len(t, allTokens, 0)
		assert.NotNil(t, allTokens, "All() should return an empty slice, not nil")
	})
}
