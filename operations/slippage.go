package operations

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

func validateSlippage(s decimal.Decimal) error {
	if s.IsNegative() || s.GreaterThan(one) {
		return fmt.Errorf("%w: got %s", ErrInvalidSlippage, s)
	}
	return nil
}

// MinAmountOut is amount - ceil(amount * slippage).
func MinAmountOut(amount *big.Int, slippage decimal.Decimal) (*big.Int, error) {
	if err := validateSlippage(slippage); err != nil {
		return nil, err
	}
	return new(big.Int).Sub(amount, slippageCeil(amount, slippage)), nil
}

// MaxAmountIn is amount + ceil(amount * slippage).
func MaxAmountIn(amount *big.Int, slippage decimal.Decimal) (*big.Int, error) {
	if err := validateSlippage(slippage); err != nil {
		return nil, err
	}
	return new(big.Int).Add(amount, slippageCeil(amount, slippage)), nil
}

// slippageCeil is ceil(amount * slippage) in exact decimal arithmetic.
func slippageCeil(amount *big.Int, slippage decimal.Decimal) *big.Int {
	return decimal.NewFromBigInt(amount, 0).Mul(slippage).Ceil().BigInt()
}
