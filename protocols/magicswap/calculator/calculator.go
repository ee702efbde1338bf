package calculator

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/defistate/magicswap-client-go/protocols/magicswap"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

var (
	// basisPointDivisor is a constant representing 100% in basis points (10000).
	basisPointDivisor = big.NewInt(magicswap.BasisPoints)

	// MinimumLiquidity is locked forever by the first deposit into a pool.
	MinimumLiquidity = big.NewInt(1000)

	one = big.NewInt(1)

	// ErrTokenMismatch is returned when the specified input/output tokens do not match the pool's tokens.
	ErrTokenMismatch = errors.New("token mismatch")
	// ErrInvalidState is returned for internal calculation errors, like division by zero.
	ErrInvalidState = errors.New("invalid internal state")
)

// Calculator holds reusable big.Int objects to avoid memory allocations during calculations.
// Instances are NOT safe for concurrent use by themselves; they are handed out by calculatorPool.
type Calculator struct {
	feeMultiplier   *big.Int
	amountInWithFee *big.Int
	numerator       *big.Int
	denominator     *big.Int
}

var calculatorPool = sync.Pool{
	New: func() any {
		return &Calculator{
			feeMultiplier:   new(big.Int),
			amountInWithFee: new(big.Int),
			numerator:       new(big.Int),
			denominator:     new(big.Int),
		}
	},
}

// GetAmountOut returns the output of swapping amountIn of tokenIn through pool, rounded down.
func GetAmountOut(amountIn *big.Int, tokenIn, tokenOut common.Address, pool magicswap.Pool) (*big.Int, error) {
	calc := calculatorPool.Get().(*Calculator)
	defer calculatorPool.Put(calc)
	return calc.getAmountOut(amountIn, tokenIn, tokenOut, pool)
}

// GetAmountIn returns the input needed to receive amountOut of tokenOut, rounded up.
func GetAmountIn(amountOut *big.Int, tokenIn, tokenOut common.Address, pool magicswap.Pool) (*big.Int, error) {
	calc := calculatorPool.Get().(*Calculator)
	defer calculatorPool.Put(calc)
	return calc.getAmountIn(amountOut, tokenIn, tokenOut, pool)
}

// SimulateSwap returns the output of a swap and the pool state after it.
func SimulateSwap(amountIn *big.Int, tokenIn, tokenOut common.Address, pool magicswap.Pool) (*big.Int, magicswap.Pool, error) {
	amountOut, err := GetAmountOut(amountIn, tokenIn, tokenOut, pool)
	if err != nil {
		return nil, magicswap.Pool{}, err
	}
	next := magicswap.ClonePool(pool)
	if tokenIn == pool.Token0.Address {
		next.Reserve0.Add(next.Reserve0, amountIn)
		next.Reserve1.Sub(next.Reserve1, amountOut)
	} else {
		next.Reserve1.Add(next.Reserve1, amountIn)
		next.Reserve0.Sub(next.Reserve0, amountOut)
	}
	return amountOut, next, nil
}

func (c *Calculator) getAmountOut(amountIn *big.Int, tokenIn, tokenOut common.Address, pool magicswap.Pool) (*big.Int, error) {
	if amountIn == nil || amountIn.Sign() < 0 {
		return nil, fmt.Errorf("%w: amountIn must be non-nil and non-negative", magicswap.ErrInvalidAmount)
	}
	reserveIn, reserveOut, err := GetReserves(tokenIn, tokenOut, pool)
	if err != nil {
		return nil, err
	}
	if reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		return new(big.Int), nil
	}

	c.feeMultiplier.SetInt64(int64(magicswap.BasisPoints - int(pool.Fees.TotalBps)))
	c.amountInWithFee.Mul(amountIn, c.feeMultiplier)
	c.numerator.Mul(reserveOut, c.amountInWithFee)
	c.denominator.Mul(reserveIn, basisPointDivisor)
	c.denominator.Add(c.denominator, c.amountInWithFee)
	if c.denominator.Sign() == 0 {
		return nil, fmt.Errorf("%w: pool denominator is zero", ErrInvalidState)
	}
	return new(big.Int).Div(c.numerator, c.denominator), nil
}

func (c *Calculator) getAmountIn(amountOut *big.Int, tokenIn, tokenOut common.Address, pool magicswap.Pool) (*big.Int, error) {
	if amountOut == nil || amountOut.Sign() < 0 {
		return nil, fmt.Errorf("%w: amountOut must be non-nil and non-negative", magicswap.ErrInvalidAmount)
	}
	reserveIn, reserveOut, err := GetReserves(tokenIn, tokenOut, pool)
	if err != nil {
		return nil, err
	}
	if reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 || amountOut.Cmp(reserveOut) >= 0 {
		return nil, fmt.Errorf("%w: requested amountOut (%s) is >= reserveOut (%s)", magicswap.ErrInsufficientLiquidity, amountOut, reserveOut)
	}

	// amountIn = reserveIn * amountOut * 10000 / ((reserveOut - amountOut) * (10000 - fee)) + 1
	c.numerator.Mul(reserveIn, amountOut)
	c.numerator.Mul(c.numerator, basisPointDivisor)
	c.feeMultiplier.SetInt64(int64(magicswap.BasisPoints - int(pool.Fees.TotalBps)))
	c.denominator.Sub(reserveOut, amountOut)
	c.denominator.Mul(c.denominator, c.feeMultiplier)
	if c.denominator.Sign() == 0 {
		return nil, fmt.Errorf("%w: pool denominator is zero", ErrInvalidState)
	}
	amountIn := new(big.Int).Div(c.numerator, c.denominator)
	return amountIn.Add(amountIn, one), nil
}

// GetReserves returns the reserves for the given token pair, oriented in swap direction.
func GetReserves(tokenIn, tokenOut common.Address, pool magicswap.Pool) (reserveIn, reserveOut *big.Int, err error) {
	switch {
	case tokenIn == pool.Token0.Address && tokenOut == pool.Token1.Address:
		return pool.Reserve0, pool.Reserve1, nil
	case tokenIn == pool.Token1.Address && tokenOut == pool.Token0.Address:
		return pool.Reserve1, pool.Reserve0, nil
	}
	return nil, nil, fmt.Errorf("%w: pool %s does not contain the pair %s -> %s", ErrTokenMismatch, pool.Address.Hex(), tokenIn.Hex(), tokenOut.Hex())
}

// SpotPrice is the fee-adjusted marginal price of tokenIn in units of tokenOut, both
// normalized by their decimals. A pool with an empty reserve has a zero price.
func SpotPrice(tokenIn, tokenOut common.Address, pool magicswap.Pool) (decimal.Decimal, error) {
	reserveIn, reserveOut, err := GetReserves(tokenIn, tokenOut, pool)
	if err != nil {
		return decimal.Zero, err
	}
	if reserveIn == nil || reserveOut == nil || reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		return decimal.Zero, nil
	}
	in, _ := pool.Token(tokenIn)
	out, _ := pool.Token(tokenOut)
	rIn := decimal.NewFromBigInt(reserveIn, -int32(in.Decimals))
	rOut := decimal.NewFromBigInt(reserveOut, -int32(out.Decimals))
	feeFactor := decimal.NewFromInt(1).Sub(pool.Fees.TotalFee())
	return rOut.Div(rIn).Mul(feeFactor), nil
}

// Quote returns the amount of the other token that matches amount of token at the
// current reserve ratio, rounded down.
func Quote(amount *big.Int, token common.Address, pool magicswap.Pool) (*big.Int, error) {
	if amount == nil || amount.Sign() < 0 {
		return nil, fmt.Errorf("%w: amount must be non-nil and non-negative", magicswap.ErrInvalidAmount)
	}
	other, ok := pool.Other(token)
	if !ok {
		return nil, fmt.Errorf("%w: pool %s does not contain %s", ErrTokenMismatch, pool.Address.Hex(), token.Hex())
	}
	reserveA, reserveB, _ := GetReserves(token, other.Address, pool)
	if reserveA.Sign() <= 0 || reserveB.Sign() <= 0 {
		return nil, fmt.Errorf("%w: pool %s has no reserves to quote against", magicswap.ErrInsufficientLiquidity, pool.Address.Hex())
	}
	q := new(big.Int).Mul(amount, reserveB)
	return q.Div(q, reserveA), nil
}

// LiquidityMinted returns the LP tokens minted for depositing amount0 and amount1.
func LiquidityMinted(amount0, amount1 *big.Int, pool magicswap.Pool) (*big.Int, error) {
	if amount0 == nil || amount1 == nil || amount0.Sign() < 0 || amount1.Sign() < 0 {
		return nil, fmt.Errorf("%w: deposit amounts must be non-nil and non-negative", magicswap.ErrInvalidAmount)
	}

	if pool.TotalSupply == nil || pool.TotalSupply.Sign() == 0 {
		liquidity := new(big.Int).Mul(amount0, amount1)
		liquidity.Sqrt(liquidity)
		liquidity.Sub(liquidity, MinimumLiquidity)
		if liquidity.Sign() <= 0 {
			return nil, fmt.Errorf("%w: first deposit does not exceed the minimum liquidity", magicswap.ErrInsufficientLiquidity)
		}
		return liquidity, nil
	}

	if pool.Reserve0.Sign() <= 0 || pool.Reserve1.Sign() <= 0 {
		return nil, fmt.Errorf("%w: pool %s has supply but no reserves", ErrInvalidState, pool.Address.Hex())
	}
	l0 := new(big.Int).Mul(amount0, pool.TotalSupply)
	l0.Div(l0, pool.Reserve0)
	l1 := new(big.Int).Mul(amount1, pool.TotalSupply)
	l1.Div(l1, pool.Reserve1)
	if l0.Cmp(l1) < 0 {
		return l0, nil
	}
	return l1, nil
}

// LiquidityBurned returns the reserves withdrawn when burning amountLP.
func LiquidityBurned(amountLP *big.Int, pool magicswap.Pool) (amount0, amount1 *big.Int, err error) {
	if amountLP == nil || amountLP.Sign() < 0 {
		return nil, nil, fmt.Errorf("%w: amountLP must be non-nil and non-negative", magicswap.ErrInvalidAmount)
	}
	if pool.TotalSupply == nil || pool.TotalSupply.Sign() == 0 {
		return nil, nil, fmt.Errorf("%w: pool %s has no liquidity", magicswap.ErrInsufficientLiquidity, pool.Address.Hex())
	}
	if amountLP.Cmp(pool.TotalSupply) > 0 {
		return nil, nil, fmt.Errorf("%w: burning %s exceeds total supply %s", magicswap.ErrInsufficientLiquidity, amountLP, pool.TotalSupply)
	}
	amount0 = new(big.Int).Mul(amountLP, pool.Reserve0)
	amount0.Div(amount0, pool.TotalSupply)
	amount1 = new(big.Int).Mul(amountLP, pool.Reserve1)
	amount1.Div(amount1, pool.TotalSupply)
	return amount0, amount1, nil
}
