package main

import (
	"testing"

	"github.com/defistate/magicswap-client-go/chains"
	"github.com/defistate/magicswap-client-go/operations"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNftUnits(t *testing.T) {
	legions := common.HexToAddress("0x0000000000000000000000000000000000000c01")

	testCases := []struct {
		name        string
		input       []string
		expected    []operations.NftUnit
		expectError bool
	}{
		{name: "empty", input: nil, expected: nil},
		{name: "id only", input: []string{"7"}, expected: []operations.NftUnit{{ID: "7", Quantity: 1}}},
		{name: "id and quantity", input: []string{"7:3"}, expected: []operations.NftUnit{{ID: "7", Quantity: 3}}},
		{
			name:     "collection, id and quantity",
			input:    []string{legions.Hex() + ":7:2", "8"},
			expected: []operations.NftUnit{{Collection: legions, ID: "7", Quantity: 2}, {ID: "8", Quantity: 1}},
		},
		{name: "bad quantity", input: []string{"7:x"}, expectError: true},
		{name: "bad collection", input: []string{"legions:7:1"}, expectError: true},
		{name: "missing id", input: []string{":2"}, expectError: true},
		{name: "too many parts", input: []string{"a:b:c:d"}, expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			units, err := parseNftUnits(tc.input)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, units)
		})
	}
}

func TestParseAmount(t *testing.T) {
	n, err := parseAmount("")
	require.NoError(t, err)
	assert.Nil(t, n)

	n, err = parseAmount(" 1000000000000000000000 ")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000000", n.String())

	_, err = parseAmount("-1")
	assert.Error(t, err)
	_, err = parseAmount("1e18")
	assert.Error(t, err)
}

func TestParseAddress(t *testing.T) {
	chain := chains.ChainConfig{NativeSymbol: "ETH"}

	for _, s := range []string{"native", "NATIVE", "eth"} {
		addr, err := parseAddress(s, chain)
		require.NoError(t, err, s)
		assert.Equal(t, chain.NativeAddress, addr)
	}

	addr, err := parseAddress("0x539bdE0d7Dbd336b79148AA742883198BBF60342", chain)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x539bdE0d7Dbd336b79148AA742883198BBF60342"), addr)

	_, err = parseAddress("", chain)
	assert.Error(t, err)
	_, err = parseAddress("0x1234", chain)
	assert.Error(t, err)
}
