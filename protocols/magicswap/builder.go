package magicswap

import (
	"fmt"
	"math/big"
	"time"

	tokenregistry "github.com/defistate/magicswap-client-go/protocols/tokenregistry"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// RawDayData is one day bucket of pool activity, valued in the reference asset.
type RawDayData struct {
	Date         int64  `json:"date"` // unix seconds, start of day
	VolumeValue  string `json:"volumeValue"`
	ReserveValue string `json:"reserveValue,omitempty"`
}

// RawPool is a pair record as returned by the indexer. Amounts are base-10 integer strings
// in each token's smallest unit; fees are fractions such as "0.003".
type RawPool struct {
	Address              common.Address         `json:"id"`
	Token0               tokenregistry.RawToken `json:"token0"`
	Token1               tokenregistry.RawToken `json:"token1"`
	Reserve0             string                 `json:"reserve0"`
	Reserve1             string                 `json:"reserve1"`
	TotalSupply          string                 `json:"totalSupply"`
	LPFee                string                 `json:"lpFee"`
	ProtocolFee          string                 `json:"protocolFee"`
	RoyaltiesFee         string                 `json:"royaltiesFee"`
	TotalFee             string                 `json:"totalFee,omitempty"`
	RoyaltiesBeneficiary *common.Address        `json:"royaltiesBeneficiary,omitempty"`
	DayData              []RawDayData           `json:"dayData,omitempty"`
}

// Builder assembles Pools from raw pair records.
type Builder struct {
	classifier *tokenregistry.Classifier
	now        func() time.Time
}

// NewBuilder creates a pool builder. A nil clock defaults to time.Now; the clock only
// affects display statistics.
func NewBuilder(classifier *tokenregistry.Classifier, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{classifier: classifier, now: now}
}

// Build classifies both tokens and assembles a Pool with its derived statistics.
func (b *Builder) Build(raw RawPool) (Pool, error) {
	token0, err := b.classifier.Classify(raw.Token0)
	if err != nil {
		return Pool{}, fmt.Errorf("%w: pool %s token0: %w", ErrInvalidPool, raw.Address.Hex(), err)
	}
	token1, err := b.classifier.Classify(raw.Token1)
	if err != nil {
		return Pool{}, fmt.Errorf("%w: pool %s token1: %w", ErrInvalidPool, raw.Address.Hex(), err)
	}
	if token0.Address == token1.Address {
		return Pool{}, fmt.Errorf("%w: pool %s pairs %s with itself", ErrInvalidPool, raw.Address.Hex(), token0.Address.Hex())
	}

	reserve0, err := parseAmount("reserve0", raw.Reserve0)
	if err != nil {
		return Pool{}, fmt.Errorf("%w: pool %s: %v", ErrInvalidPool, raw.Address.Hex(), err)
	}
	reserve1, err := parseAmount("reserve1", raw.Reserve1)
	if err != nil {
		return Pool{}, fmt.Errorf("%w: pool %s: %v", ErrInvalidPool, raw.Address.Hex(), err)
	}
	totalSupply, err := parseAmount("totalSupply", raw.TotalSupply)
	if err != nil {
		return Pool{}, fmt.Errorf("%w: pool %s: %v", ErrInvalidPool, raw.Address.Hex(), err)
	}

	fees, err := parseFees(raw)
	if err != nil {
		return Pool{}, fmt.Errorf("pool %s: %w", raw.Address.Hex(), err)
	}

	pool := Pool{
		Address:     raw.Address,
		Token0:      token0,
		Token1:      token1,
		Reserve0:    reserve0,
		Reserve1:    reserve1,
		TotalSupply: totalSupply,
		Fees:        fees,
	}
	pool.Stats = computeStats(pool, raw.DayData, b.now())
	return pool, nil
}

// BuildAll builds every pool, stopping at the first failure.
func (b *Builder) BuildAll(raws []RawPool) ([]Pool, error) {
	pools := make([]Pool, 0, len(raws))
	for _, raw := range raws {
		p, err := b.Build(raw)
		if err != nil {
			return nil, err
		}
		pools = append(pools, p)
	}
	return pools, nil
}

// parseAmount reads a non-negative base-10 integer. Empty strings are zero.
func parseAmount(field, s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%s %q is not an integer", field, s)
	}
	if n.Sign() < 0 {
		return nil, fmt.Errorf("%s %q is negative", field, s)
	}
	return n, nil
}

func parseFees(raw RawPool) (Fees, error) {
	lp, err := fractionToBps("lpFee", raw.LPFee)
	if err != nil {
		return Fees{}, err
	}
	protocol, err := fractionToBps("protocolFee", raw.ProtocolFee)
	if err != nil {
		return Fees{}, err
	}
	royalties, err := fractionToBps("royaltiesFee", raw.RoyaltiesFee)
	if err != nil {
		return Fees{}, err
	}

	sum := lp + protocol + royalties
	total := sum
	if raw.TotalFee != "" {
		total, err = fractionToBps("totalFee", raw.TotalFee)
		if err != nil {
			return Fees{}, err
		}
	}
	if sum != total {
		return Fees{}, fmt.Errorf("%w: %d + %d + %d != %d bps", ErrFeeMismatch, lp, protocol, royalties, total)
	}
	if total >= BasisPoints {
		return Fees{}, fmt.Errorf("%w: total fee %d bps is not below 100%%", ErrInvalidPool, total)
	}

	fees := Fees{
		LPBps:        uint16(lp),
		ProtocolBps:  uint16(protocol),
		RoyaltiesBps: uint16(royalties),
		TotalBps:     uint16(total),
	}
	if raw.RoyaltiesBeneficiary != nil {
		beneficiary := *raw.RoyaltiesBeneficiary
		fees.RoyaltiesBeneficiary = &beneficiary
	}
	return fees, nil
}

// fractionToBps converts a fee fraction to whole basis points, rejecting fractions that
// are negative, at least 1, or finer than one basis point.
func fractionToBps(field, s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	f, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %v", ErrInvalidPool, field, s, err)
	}
	if f.IsNegative() || f.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return 0, fmt.Errorf("%w: %s %q out of range", ErrInvalidPool, field, s)
	}
	bps := f.Mul(basisPoints)
	if !bps.IsInteger() {
		return 0, fmt.Errorf("%w: %s %q is finer than one basis point", ErrInvalidPool, field, s)
	}
	return bps.IntPart(), nil
}
