package listing

import (
	"github.com/shopspring/decimal"
)

const pricePlaces = 3

var (
	MinPrice = decimal.RequireFromString("0.001")
	MaxPrice = decimal.RequireFromString("9999999")

	tier1      = decimal.RequireFromString("0.01")
	tier2      = decimal.RequireFromString("0.1")
	tier3      = decimal.NewFromInt(1)
	tier4      = decimal.NewFromInt(100)
	minimumFee = decimal.RequireFromString("0.0001")
	fixedFee   = decimal.RequireFromString("0.25")

	rate1 = decimal.RequireFromString("0.10")
	rate2 = decimal.RequireFromString("0.05")
	rate3 = decimal.RequireFromString("0.01")
	rate4 = decimal.RequireFromString("0.0025")
)

// Commission returns the platform share of price in the native asset.
// The result is exact; round only for display.
func Commission(price decimal.Decimal) decimal.Decimal {
	switch {
	case price.LessThan(tier1):
		return decimal.Max(price.Mul(rate1), minimumFee)
	case price.LessThan(tier2):
		return price.Mul(rate2)
	case price.LessThan(tier3):
		return price.Mul(rate3)
	case price.LessThanOrEqual(tier4):
		return price.Mul(rate4)
	default:
		return fixedFee
	}
}

// ValidatePrice checks the accepted price range and precision.
func ValidatePrice(price decimal.Decimal) error {
	if price.LessThan(MinPrice) || price.GreaterThan(MaxPrice) {
		return ErrPriceOutOfRange
	}
	if !price.Equal(price.Truncate(pricePlaces)) {
		return ErrPricePrecision
	}
	return nil
}

// ComputeFees returns the commission (nil for non native currencies) and the amount paid to the owner.
func ComputeFees(price decimal.Decimal, cur Currency) (*decimal.Decimal, decimal.Decimal, error) {
	if err := ValidatePrice(price); err != nil {
		return nil, decimal.Zero, err
	}
	if !cur.Native {
		return nil, price, nil
	}
	commission := Commission(price)
	net := price.Sub(commission)
	if !net.IsPositive() {
		return nil, decimal.Zero, ErrNetAmountNotPositive
	}
	return &commission, net, nil
}
