package domains

import (
	"math/big"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Price tiers in the network's native currency
var (
	priceThree   = decimal.RequireFromString("0.05")
	priceFour    = decimal.RequireFromString("0.03")
	priceShort   = decimal.RequireFromString("0.01")
	pricePerChar = decimal.RequireFromString("0.01")
)

// Price returns the mint price for name. Names of 3 and 4 characters are
// premium; anything up to 10 costs the base price and longer names pay
// per character.
func Price(name string) decimal.Decimal {
	n := utf8.RuneCountInString(name)
	switch {
	case n == 3:
		return priceThree
	case n == 4:
		return priceFour
	case n <= 10:
		return priceShort
	default:
		return pricePerChar.Mul(decimal.NewFromInt(int64(n)))
	}
}

// PriceWei is Price expressed in wei (18 decimals)
func PriceWei(name string) *big.Int {
	return Price(name).Shift(18).BigInt()
}
