package service

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// TaxBase is the fee base: rates are expressed in basis points of it.
const TaxBase = 10000

var taxBase = decimal.NewFromInt(TaxBase)

// NetFromGross backs the buy-side tax out of a gross payment:
// net = gross × BASE / (BASE + buyBp). Division truncates on big integers, so
// rounding always favors the treasury.
func NetFromGross(gross decimal.Decimal, buyBp int64) decimal.Decimal {
	num := gross.Mul(taxBase)
	den := big.NewInt(TaxBase + buyBp)
	return decimal.NewFromBigInt(new(big.Int).Quo(num.BigInt(), den), 0)
}

// FeeFromNet computes the sell-side fee taken out of a net price:
// fee = net × sellBp / BASE, truncating.
func FeeFromNet(net decimal.Decimal, sellBp int64) decimal.Decimal {
	num := net.Mul(decimal.NewFromInt(sellBp))
	return decimal.NewFromBigInt(new(big.Int).Quo(num.BigInt(), big.NewInt(TaxBase)), 0)
}

// isIntegral reports whether the amount is a whole number of base units.
func isIntegral(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(0))
}

// validAmount requires a strictly positive whole amount.
func validAmount(d decimal.Decimal) bool {
	return d.IsPositive() && isIntegral(d)
}
