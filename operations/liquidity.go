package operations

import (
	"fmt"
	"math/big"

	"github.com/defistate/magicswap-client-go/protocols/magicswap"
	"github.com/defistate/magicswap-client-go/protocols/tokenregistry"
	"github.com/ethereum/go-ethereum/common"
)

// AddAmounts are desired deposits and their minimums in pool order. The amount of an NFT
// side may be left zero; it is derived from the NFT selection.
type AddAmounts struct {
	Amount0    *big.Int `json:"amount0" yaml:"amount0"`
	Amount1    *big.Int `json:"amount1" yaml:"amount1"`
	Amount0Min *big.Int `json:"amount0Min" yaml:"amount0Min"`
	Amount1Min *big.Int `json:"amount1Min" yaml:"amount1Min"`
}

// RemoveMins are the minimum withdrawals in pool order.
type RemoveMins struct {
	Amount0Min *big.Int `json:"amount0Min" yaml:"amount0Min"`
	Amount1Min *big.Int `json:"amount1Min" yaml:"amount1Min"`
}

// Canonicalize orders a pool's tokens the way the router's liquidity entry points expect
// them. TokenA is the NFT vault of a mixed pool, else the native currency, else token1.
// aIsToken0 reports whether tokenA is the pool's token0.
func Canonicalize(pool magicswap.Pool) (tokenA, tokenB tokenregistry.Token, aIsToken0 bool) {
	t0, t1 := pool.Token0, pool.Token1
	switch {
	case !pool.IsNFTNFT() && t0.IsNFT():
		return t0, t1, true
	case !pool.IsNFTNFT() && t1.IsNFT():
		return t1, t0, false
	case t0.IsNative():
		return t0, t1, true
	default:
		return t1, t0, false
	}
}

// orient maps a pool-ordered pair onto (A, B).
func orient[T any](aIsToken0 bool, v0, v1 T) (a, b T) {
	if aIsToken0 {
		return v0, v1
	}
	return v1, v0
}

// side is one canonical side of a liquidity operation.
type side struct {
	token  tokenregistry.Token
	amount *big.Int
	min    *big.Int
	nfts   resolvedNFTs
}

func (s side) vault() VaultData {
	return s.nfts.vaultData(s.token.Address)
}

// resolveSide derives an NFT side's amount from its selection. A caller-supplied amount
// must either be zero or equal the selection's worth.
func resolveSide(token tokenregistry.Token, amount, min *big.Int, units []NftUnit) (side, error) {
	s := side{token: token, amount: orZero(amount), min: orZero(min)}
	if !token.IsNFT() {
		if len(units) > 0 {
			return side{}, fmt.Errorf("%w: %s is not an NFT vault", ErrInvalidNFT, token.Symbol)
		}
		return s, nil
	}
	if len(units) == 0 {
		return s, nil
	}
	nfts, err := resolveNFTs(token, units)
	if err != nil {
		return side{}, err
	}
	if s.amount.Sign() != 0 && s.amount.Cmp(nfts.amount) != 0 {
		return side{}, fmt.Errorf("%w: %s amount %s differs from the selected NFTs' worth %s", magicswap.ErrInvalidAmount, token.Symbol, s.amount, nfts.amount)
	}
	s.amount = nfts.amount
	s.nfts = nfts
	return s, nil
}

// BuildAddLiquidity emits the add-liquidity call matching the pool's shape. nfts0 and
// nfts1 select the NFTs deposited on the token0 and token1 sides.
func (b *Builder) BuildAddLiquidity(pool magicswap.Pool, to common.Address, amounts AddAmounts, nfts0, nfts1 []NftUnit) (Descriptor, error) {
	tokenA, tokenB, aIsToken0 := Canonicalize(pool)
	amountA, amountB := orient(aIsToken0, amounts.Amount0, amounts.Amount1)
	minA, minB := orient(aIsToken0, amounts.Amount0Min, amounts.Amount1Min)
	unitsA, unitsB := orient(aIsToken0, nfts0, nfts1)

	a, err := resolveSide(tokenA, amountA, minA, unitsA)
	if err != nil {
		return nil, err
	}
	bSide, err := resolveSide(tokenB, amountB, minB, unitsB)
	if err != nil {
		return nil, err
	}
	for _, s := range []side{a, bSide} {
		if s.token.IsNFT() && len(s.nfts.ids) == 0 {
			return nil, fmt.Errorf("%w: no NFTs selected for %s", magicswap.ErrInvalidAmount, s.token.Symbol)
		}
		if s.amount.Sign() <= 0 {
			return nil, fmt.Errorf("%w: deposit of %s must be positive", magicswap.ErrInvalidAmount, s.token.Symbol)
		}
		if s.min.Cmp(s.amount) > 0 {
			return nil, fmt.Errorf("%w: minimum %s of %s exceeds the deposit %s", magicswap.ErrInvalidAmount, s.min, s.token.Symbol, s.amount)
		}
	}

	deadline := b.deadline()
	switch {
	case pool.IsNFTNFT():
		return finish(AddLiquidityNFTNFT{
			Call:       b.call(nil),
			VaultA:     a.vault(),
			VaultB:     bSide.vault(),
			AmountAMin: a.min,
			AmountBMin: bSide.min,
			Recipient:  to,
			Deadline:   deadline,
		})
	case pool.HasNFT() && pool.HasNative():
		return finish(AddLiquidityNFTETH{
			Call:         b.call(bSide.amount),
			Vault:        a.vault(),
			AmountETHMin: bSide.min,
			Recipient:    to,
			Deadline:     deadline,
		})
	case pool.HasNFT():
		return finish(AddLiquidityNFT{
			Call:           b.call(nil),
			Vault:          a.vault(),
			TokenB:         bSide.token.Address,
			AmountBDesired: bSide.amount,
			AmountBMin:     bSide.min,
			Recipient:      to,
			Deadline:       deadline,
		})
	case pool.HasNative():
		return finish(AddLiquidityETH{
			Call:               b.call(a.amount),
			Token:              bSide.token.Address,
			AmountTokenDesired: bSide.amount,
			AmountTokenMin:     bSide.min,
			AmountETHMin:       a.min,
			Recipient:          to,
			Deadline:           deadline,
		})
	default:
		return finish(AddLiquidity{
			Call:           b.call(nil),
			TokenA:         a.token.Address,
			TokenB:         bSide.token.Address,
			AmountADesired: a.amount,
			AmountBDesired: bSide.amount,
			AmountAMin:     a.min,
			AmountBMin:     bSide.min,
			Recipient:      to,
			Deadline:       deadline,
		})
	}
}

// BuildRemoveLiquidity emits the remove-liquidity call matching the pool's shape.
// nfts0 and nfts1 select the NFTs withdrawn; a non-empty selection fixes that side's
// minimum to its worth. swapLeftover only reaches the NFT variants.
func (b *Builder) BuildRemoveLiquidity(pool magicswap.Pool, to common.Address, amountLP *big.Int, mins RemoveMins, swapLeftover bool, nfts0, nfts1 []NftUnit) (Descriptor, error) {
	if amountLP == nil || amountLP.Sign() <= 0 {
		return nil, fmt.Errorf("%w: liquidity to burn must be positive", magicswap.ErrInvalidAmount)
	}
	tokenA, tokenB, aIsToken0 := Canonicalize(pool)
	minA, minB := orient(aIsToken0, mins.Amount0Min, mins.Amount1Min)
	unitsA, unitsB := orient(aIsToken0, nfts0, nfts1)

	// On removal the selection bounds the withdrawal, so it is resolved against the minimum.
	a, err := resolveSide(tokenA, minA, nil, unitsA)
	if err != nil {
		return nil, err
	}
	bSide, err := resolveSide(tokenB, minB, nil, unitsB)
	if err != nil {
		return nil, err
	}
	amountAMin, amountBMin := a.amount, bSide.amount
	lp := new(big.Int).Set(amountLP)

	deadline := b.deadline()
	switch {
	case pool.IsNFTNFT():
		return finish(RemoveLiquidityNFTNFT{
			Call:         b.call(nil),
			VaultA:       a.vault(),
			VaultB:       bSide.vault(),
			LPAmount:     lp,
			AmountAMin:   amountAMin,
			AmountBMin:   amountBMin,
			Recipient:    to,
			Deadline:     deadline,
			SwapLeftover: swapLeftover,
		})
	case pool.HasNFT() && pool.HasNative():
		return finish(RemoveLiquidityNFTETH{
			Call:           b.call(nil),
			Vault:          a.vault(),
			LPAmount:       lp,
			AmountTokenMin: amountAMin,
			AmountETHMin:   amountBMin,
			Recipient:      to,
			Deadline:       deadline,
			SwapLeftover:   swapLeftover,
		})
	case pool.HasNFT():
		return finish(RemoveLiquidityNFT{
			Call:         b.call(nil),
			Vault:        a.vault(),
			TokenB:       bSide.token.Address,
			LPAmount:     lp,
			AmountAMin:   amountAMin,
			AmountBMin:   amountBMin,
			Recipient:    to,
			Deadline:     deadline,
			SwapLeftover: swapLeftover,
		})
	case pool.HasNative():
		return finish(RemoveLiquidityETH{
			Call:           b.call(nil),
			Token:          bSide.token.Address,
			Liquidity:      lp,
			AmountTokenMin: amountBMin,
			AmountETHMin:   amountAMin,
			Recipient:      to,
			Deadline:       deadline,
		})
	default:
		return finish(RemoveLiquidity{
			Call:       b.call(nil),
			TokenA:     a.token.Address,
			TokenB:     bSide.token.Address,
			Liquidity:  lp,
			AmountAMin: amountAMin,
			AmountBMin: amountBMin,
			Recipient:  to,
			Deadline:   deadline,
		})
	}
}
