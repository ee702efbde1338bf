package operations

import (
	"math/big"
	"testing"
	"time"

	"github.com/defistate/magicswap-client-go/chains"
	"github.com/defistate/magicswap-client-go/protocols/magicswap"
	"github.com/defistate/magicswap-client-go/protocols/tokenregistry"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testChain = chains.ChainConfig{
		ChainID:        chains.Arbitrum,
		Router:         common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		WrappedNative:  common.HexToAddress("0x82aF49447D8a07e3bd95BD0d56f35241523fBab1"),
		NativeName:     "Ether",
		NativeSymbol:   "ETH",
		NativeDecimals: 18,
	}
	testNow   = time.Unix(1_700_000_000, 0)
	recipient = common.HexToAddress("0x000000000000000000000000000000000000beef")

	legions   = tokenregistry.Collection{Address: common.HexToAddress("0x0c01"), Type: tokenregistry.ERC1155, Name: "Legions"}
	treasures = tokenregistry.Collection{Address: common.HexToAddress("0x0c02"), Type: tokenregistry.ERC1155, Name: "Treasures", TokenIDs: []string{"1", "2"}}

	magic = tokenregistry.Token{Address: common.HexToAddress("0x539bdE0d7Dbd336b79148AA742883198BBF60342"), Symbol: "MAGIC", Decimals: 18, Kind: tokenregistry.KindERC20}
	usdc  = tokenregistry.Token{Address: common.HexToAddress("0x0c05"), Symbol: "USDC", Decimals: 6, Kind: tokenregistry.KindERC20}
	eth   = tokenregistry.Token{Symbol: "ETH", Decimals: 18, Kind: tokenregistry.KindNative}

	vLegion = tokenregistry.Token{
		Address:     common.HexToAddress("0x0f01"),
		Symbol:      "vLEGION",
		Decimals:    18,
		Kind:        tokenregistry.KindNFTVault,
		Collections: []tokenregistry.Collection{legions},
	}
	vMixed = tokenregistry.Token{
		Address:     common.HexToAddress("0x0f02"),
		Symbol:      "vMIX",
		Decimals:    18,
		Kind:        tokenregistry.KindNFTVault,
		Collections: []tokenregistry.Collection{legions, treasures},
	}
)

// units returns n whole tokens of 18 decimals.
func units(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	b, err := NewBuilder(&Config{Chain: testChain, Clock: func() time.Time { return testNow }})
	require.NoError(t, err)
	return b
}

func testPool(t0, t1 tokenregistry.Token, r0, r1 *big.Int) magicswap.Pool {
	return magicswap.Pool{
		Address:     common.HexToAddress("0x0b01"),
		Token0:      t0,
		Token1:      t1,
		Reserve0:    r0,
		Reserve1:    r1,
		TotalSupply: big.NewInt(1_000_000),
		Fees:        magicswap.Fees{LPBps: 30, TotalBps: 30},
	}
}

func TestNewBuilder(t *testing.T) {
	testCases := []struct {
		name        string
		cfg         *Config
		expectError bool
	}{
		{name: "valid", cfg: &Config{Chain: testChain}},
		{name: "nil config", cfg: nil, expectError: true},
		{name: "missing router", cfg: &Config{Chain: chains.ChainConfig{ChainID: 1, WrappedNative: testChain.WrappedNative}}, expectError: true},
		{name: "negative window", cfg: &Config{Chain: testChain, DeadlineWindow: -time.Second}, expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := NewBuilder(tc.cfg)
			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testChain, b.Chain())
		})
	}

	t.Run("deadline defaults to thirty minutes from the clock", func(t *testing.T) {
		b := newTestBuilder(t)
		assert.Equal(t, testNow.Add(30*time.Minute).Unix(), b.deadline().Int64())
	})

	t.Run("custom deadline window", func(t *testing.T) {
		b, err := NewBuilder(&Config{Chain: testChain, Clock: func() time.Time { return testNow }, DeadlineWindow: time.Minute})
		require.NoError(t, err)
		assert.Equal(t, testNow.Unix()+60, b.deadline().Int64())
	})
}

func TestCheckUint256(t *testing.T) {
	maxUint := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	assert.NoError(t, checkUint256("x", big.NewInt(0)))
	assert.NoError(t, checkUint256("x", maxUint))
	assert.ErrorIs(t, checkUint256("x", new(big.Int).Add(maxUint, big.NewInt(1))), magicswap.ErrArithmeticOverflow)
	assert.ErrorIs(t, checkUint256("x", big.NewInt(-1)), magicswap.ErrArithmeticOverflow)
	assert.ErrorIs(t, checkUint256("x", nil), magicswap.ErrInvalidAmount)

	t.Run("vault arrays are checked element-wise", func(t *testing.T) {
		err := checkArg("vault", VaultData{
			Collection: []common.Address{legions.Address},
			TokenId:    []*big.Int{new(big.Int).Add(maxUint, big.NewInt(1))},
			Amount:     []*big.Int{big.NewInt(1)},
		})
		assert.ErrorIs(t, err, magicswap.ErrArithmeticOverflow)
	})

	t.Run("ragged vault arrays are rejected", func(t *testing.T) {
		err := checkArg("vault", VaultData{Collection: []common.Address{legions.Address}})
		assert.ErrorIs(t, err, ErrInvalidNFT)
	})
}
