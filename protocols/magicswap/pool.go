package magicswap

import (
	"math/big"

	tokenregistry "github.com/defistate/magicswap-client-go/protocols/tokenregistry"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// BasisPoints is the fee denominator: 10000 bps == 100%.
const BasisPoints = 10000

var basisPoints = decimal.NewFromInt(BasisPoints)

// Fees is the per-swap fee decomposition of a pool, in basis points.
type Fees struct {
	LPBps                uint16          `json:"lpFeeBps"`
	ProtocolBps          uint16          `json:"protocolFeeBps"`
	RoyaltiesBps         uint16          `json:"royaltiesFeeBps"`
	TotalBps             uint16          `json:"totalFeeBps"`
	RoyaltiesBeneficiary *common.Address `json:"royaltiesBeneficiary,omitempty"`
}

// Valid reports whether the components add up to the total and the total is below 100%.
func (f Fees) Valid() bool {
	sum := uint32(f.LPBps) + uint32(f.ProtocolBps) + uint32(f.RoyaltiesBps)
	return sum == uint32(f.TotalBps) && f.TotalBps < BasisPoints
}

func (f Fees) LPFee() decimal.Decimal        { return bpsToFraction(f.LPBps) }
func (f Fees) ProtocolFee() decimal.Decimal  { return bpsToFraction(f.ProtocolBps) }
func (f Fees) RoyaltiesFee() decimal.Decimal { return bpsToFraction(f.RoyaltiesBps) }
func (f Fees) TotalFee() decimal.Decimal     { return bpsToFraction(f.TotalBps) }

func bpsToFraction(bps uint16) decimal.Decimal {
	return decimal.NewFromInt(int64(bps)).Div(basisPoints)
}

// Stats holds display-only pool statistics. Routing never reads them.
type Stats struct {
	ReserveValue decimal.Decimal `json:"reserveValue"`
	Volume24h    decimal.Decimal `json:"volume24h"`
	Volume1w     decimal.Decimal `json:"volume1w"`
	APY          decimal.Decimal `json:"apy"`
}

// Pool is a read-only snapshot of a two-token Magicswap pair.
type Pool struct {
	Address     common.Address      `json:"address"`
	Token0      tokenregistry.Token `json:"token0"`
	Token1      tokenregistry.Token `json:"token1"`
	Reserve0    *big.Int            `json:"reserve0"`
	Reserve1    *big.Int            `json:"reserve1"`
	TotalSupply *big.Int            `json:"totalSupply"`
	Fees        Fees                `json:"fees"`
	Stats       Stats               `json:"stats"`
}

func (p Pool) HasNFT() bool    { return p.Token0.IsNFT() || p.Token1.IsNFT() }
func (p Pool) IsNFTNFT() bool  { return p.Token0.IsNFT() && p.Token1.IsNFT() }
func (p Pool) HasNative() bool { return p.Token0.IsNative() || p.Token1.IsNative() }

// IsRoutable reports whether both reserves are positive.
func (p Pool) IsRoutable() bool {
	return p.Reserve0 != nil && p.Reserve1 != nil && p.Reserve0.Sign() > 0 && p.Reserve1.Sign() > 0
}

// Contains reports whether addr is one of the pool's tokens.
func (p Pool) Contains(addr common.Address) bool {
	return p.Token0.Address == addr || p.Token1.Address == addr
}

// Token returns the pool token with the given address.
func (p Pool) Token(addr common.Address) (tokenregistry.Token, bool) {
	switch addr {
	case p.Token0.Address:
		return p.Token0, true
	case p.Token1.Address:
		return p.Token1, true
	}
	return tokenregistry.Token{}, false
}

// Other returns the pool token opposite to addr.
func (p Pool) Other(addr common.Address) (tokenregistry.Token, bool) {
	switch addr {
	case p.Token0.Address:
		return p.Token1, true
	case p.Token1.Address:
		return p.Token0, true
	}
	return tokenregistry.Token{}, false
}
