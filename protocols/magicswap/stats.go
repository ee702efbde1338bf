package magicswap

import (
	"math/big"
	"time"

	tokenregistry "github.com/defistate/magicswap-client-go/protocols/tokenregistry"
	"github.com/shopspring/decimal"
)

var (
	daysPerYear = decimal.NewFromInt(365)
	daysPerWeek = decimal.NewFromInt(7)
	hundred     = decimal.NewFromInt(100)
)

// computeStats derives the display statistics of a pool. Malformed day buckets are skipped.
func computeStats(p Pool, days []RawDayData, now time.Time) Stats {
	stats := Stats{
		ReserveValue: ReserveValue(p),
		Volume24h:    decimal.Zero,
		Volume1w:     decimal.Zero,
		APY:          decimal.Zero,
	}

	dayAgo := now.Add(-24 * time.Hour).Unix()
	weekAgo := now.Add(-7 * 24 * time.Hour).Unix()
	for _, d := range days {
		if d.Date > now.Unix() || d.Date < weekAgo {
			continue
		}
		v, err := decimal.NewFromString(d.VolumeValue)
		if err != nil || v.IsNegative() {
			continue
		}
		stats.Volume1w = stats.Volume1w.Add(v)
		if d.Date >= dayAgo {
			stats.Volume24h = stats.Volume24h.Add(v)
		}
	}

	if stats.ReserveValue.IsPositive() {
		dailyFees := stats.Volume1w.Div(daysPerWeek).Mul(p.Fees.LPFee())
		stats.APY = dailyFees.Mul(daysPerYear).Div(stats.ReserveValue).Mul(hundred).Round(2)
	}
	return stats
}

// ReserveValue is the pool's liquidity valued in the reference asset.
func ReserveValue(p Pool) decimal.Decimal {
	return tokenValue(p.Reserve0, p.Token0).Add(tokenValue(p.Reserve1, p.Token1))
}

// tokenValue converts an amount in smallest units to reference-asset value.
func tokenValue(amount *big.Int, t tokenregistry.Token) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, -int32(t.Decimals)).Mul(t.DerivedValue)
}
