package order

import (
	"cryptoexchange/internal/config"
	"cryptoexchange/internal/domain"

	"github.com/shopspring/decimal"
)

// FeeSchedule computes the platform fee (a share of the amount) and the flat network fee
// charged in the source asset.
type FeeSchedule struct {
	PlatformRate      decimal.Decimal
	StableNetworkFee  decimal.Decimal
	DefaultNetworkFee decimal.Decimal
	NetworkFees       map[string]decimal.Decimal
}

func (f FeeSchedule) PlatformFee(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(f.PlatformRate)
}

func (f FeeSchedule) NetworkFee(cur domain.Currency) decimal.Decimal {
	if fee, ok := f.NetworkFees[cur.Code]; ok {
		return fee
	}
	switch {
	case cur.IsFiat():
		return decimal.Zero
	case cur.USDPegged:
		return f.StableNetworkFee
	default:
		return f.DefaultNetworkFee
	}
}

func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		PlatformRate:      decimal.RequireFromString("0.005"),
		StableNetworkFee:  decimal.NewFromInt(2),
		DefaultNetworkFee: decimal.RequireFromString("0.0001"),
	}
}

func NewFeeSchedule(cfg config.Pricing) FeeSchedule {
	networkFees := make(map[string]decimal.Decimal, len(cfg.NetworkFees))
	for code, fee := range cfg.NetworkFees {
		networkFees[code] = decimal.NewFromFloat(fee)
	}
	return FeeSchedule{
		PlatformRate:      decimal.NewFromFloat(cfg.PlatformFeePercent).Div(decimal.NewFromInt(100)),
		StableNetworkFee:  decimal.NewFromFloat(cfg.StableNetworkFee),
		DefaultNetworkFee: decimal.NewFromFloat(cfg.DefaultNetworkFee),
		NetworkFees:       networkFees,
	}
}
