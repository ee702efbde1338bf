package operations

import (
	"fmt"
	"math/big"

	"github.com/defistate/magicswap-client-go/protocols/magicswap"
	"github.com/defistate/magicswap-client-go/protocols/magicswap/calculator"
	"github.com/ethereum/go-ethereum/common"
)

// LiquidityEstimate is a pool-ordered preview of a liquidity operation.
type LiquidityEstimate struct {
	Amount0 *big.Int `json:"amount0"`
	Amount1 *big.Int `json:"amount1"`
	LP      *big.Int `json:"lp"`
}

// EstimateAddLiquidity matches amount of token with the other side at the current
// reserve ratio and returns the LP tokens the deposit would mint.
func EstimateAddLiquidity(pool magicswap.Pool, token common.Address, amount *big.Int) (LiquidityEstimate, error) {
	if amount == nil || amount.Sign() <= 0 {
		return LiquidityEstimate{}, fmt.Errorf("%w: deposit must be positive", magicswap.ErrInvalidAmount)
	}
	counterpart, err := calculator.Quote(amount, token, pool)
	if err != nil {
		return LiquidityEstimate{}, err
	}
	est := LiquidityEstimate{Amount0: new(big.Int).Set(amount), Amount1: counterpart}
	if token != pool.Token0.Address {
		est.Amount0, est.Amount1 = est.Amount1, est.Amount0
	}
	est.LP, err = calculator.LiquidityMinted(est.Amount0, est.Amount1, pool)
	if err != nil {
		return LiquidityEstimate{}, err
	}
	return est, nil
}

// EstimateRemoveLiquidity returns what burning amountLP would withdraw.
func EstimateRemoveLiquidity(pool magicswap.Pool, amountLP *big.Int) (LiquidityEstimate, error) {
	if amountLP == nil || amountLP.Sign() <= 0 {
		return LiquidityEstimate{}, fmt.Errorf("%w: liquidity to burn must be positive", magicswap.ErrInvalidAmount)
	}
	amount0, amount1, err := calculator.LiquidityBurned(amountLP, pool)
	if err != nil {
		return LiquidityEstimate{}, err
	}
	return LiquidityEstimate{Amount0: amount0, Amount1: amount1, LP: new(big.Int).Set(amountLP)}, nil
}
