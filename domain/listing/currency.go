package listing

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/neonflick/goapi/domain"
)

type Currency struct {
	Ticker   string `json:"ticker"`
	Decimals int32  `json:"decimals"`
	// Native is the chain's own asset; only native prices carry a commission.
	Native bool `json:"native"`
	// Mint is the token mint address for non native currencies.
	Mint domain.Address `json:"mint,omitempty"`
}

var (
	CurrencySOL  = Currency{Ticker: "SOL", Decimals: 9, Native: true}
	CurrencyUSDC = Currency{Ticker: "USDC", Decimals: 6, Mint: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"}

	currencies = map[string]Currency{
		CurrencySOL.Ticker:  CurrencySOL,
		CurrencyUSDC.Ticker: CurrencyUSDC,
	}
)

func LookupCurrency(ticker string) (Currency, error) {
	cur, ok := currencies[strings.ToUpper(ticker)]
	if !ok {
		return Currency{}, domain.ErrInvalidCurrency
	}
	return cur, nil
}

// ToUnits converts amount to the smallest indivisible unit, truncating any remainder.
func (cur Currency) ToUnits(amount decimal.Decimal) (uint64, error) {
	if amount.IsNegative() {
		return 0, xerrors.Errorf("negative amount %s: %w", amount, domain.ErrInvalidNumberFormat)
	}
	units := amount.Shift(cur.Decimals).Truncate(0)
	if !units.BigInt().IsUint64() {
		return 0, xerrors.Errorf("amount %s overflows: %w", amount, domain.ErrInvalidNumberFormat)
	}
	return units.BigInt().Uint64(), nil
}

// FromUnits is the inverse of ToUnits.
func (cur Currency) FromUnits(units uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(units), -cur.Decimals)
}
