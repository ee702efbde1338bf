package operations

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlippageBounds(t *testing.T) {
	testCases := []struct {
		name        string
		amount      int64
		slippage    string
		expectedMin int64
		expectedMax int64
	}{
		{name: "one percent rounds the tolerance up", amount: 181, slippage: "0.01", expectedMin: 179, expectedMax: 183},
		{name: "exact tolerance", amount: 100, slippage: "0.01", expectedMin: 99, expectedMax: 101},
		{name: "zero tolerance", amount: 100, slippage: "0", expectedMin: 100, expectedMax: 100},
		{name: "full tolerance", amount: 100, slippage: "1", expectedMin: 0, expectedMax: 200},
		{name: "dust still moves by one", amount: 1, slippage: "0.0001", expectedMin: 0, expectedMax: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := decimal.RequireFromString(tc.slippage)
			minOut, err := MinAmountOut(big.NewInt(tc.amount), s)
			require.NoError(t, err)
			maxIn, err := MaxAmountIn(big.NewInt(tc.amount), s)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedMin, minOut.Int64())
			assert.Equal(t, tc.expectedMax, maxIn.Int64())
		})
	}
}

func TestSlippageMonotonic(t *testing.T) {
	tolerances := []string{"0", "0.0001", "0.001", "0.005", "0.01", "0.1", "0.333", "0.5", "1"}
	amounts := []*big.Int{big.NewInt(1), big.NewInt(181), big.NewInt(999_999), units(12345)}

	for _, amount := range amounts {
		var prevMin, prevMax *big.Int
		for _, tol := range tolerances {
			s := decimal.RequireFromString(tol)
			minOut, err := MinAmountOut(amount, s)
			require.NoError(t, err)
			maxIn, err := MaxAmountIn(amount, s)
			require.NoError(t, err)

			if prevMin != nil {
				assert.LessOrEqual(t, minOut.Cmp(prevMin), 0, "min out grew at %s for %s", tol, amount)
				assert.GreaterOrEqual(t, maxIn.Cmp(prevMax), 0, "max in shrank at %s for %s", tol, amount)
			}
			assert.GreaterOrEqual(t, minOut.Sign(), 0)
			prevMin, prevMax = minOut, maxIn
		}
	}
}

func TestSlippageValidation(t *testing.T) {
	for _, s := range []string{"-0.01", "1.0001", "2"} {
		_, err := MinAmountOut(big.NewInt(100), decimal.RequireFromString(s))
		assert.ErrorIs(t, err, ErrInvalidSlippage, s)
		_, err = MaxAmountIn(big.NewInt(100), decimal.RequireFromString(s))
		assert.ErrorIs(t, err, ErrInvalidSlippage, s)
	}
}
