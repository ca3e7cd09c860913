package allocation

import (
	"github.com/shopspring/decimal"

	"invoice-financing/internal/domain/financier"
)

var (
	half        = decimal.NewFromFloat(0.5)
	bankingYear = decimal.NewFromInt(financier.BankingYearDays)
	basisPoint  = decimal.New(1, -4)
)

// roundHalfUp rounds to the nearest integer, ties toward positive infinity (floor(x + 0.5)).
func roundHalfUp(d decimal.Decimal) int64 {
	return d.Add(half).Floor().IntPart()
}

// ProratedRate scales an annual rate in bps down to termDays of a 360-day year.
func ProratedRate(annualRateBps int, termDays int64) int64 {
	return roundHalfUp(decimal.NewFromInt(int64(annualRateBps)).
		Mul(decimal.NewFromInt(termDays)).
		Div(bankingYear))
}

// Interest is the financier's discount on faceValueCents at an already rounded rateBps.
func Interest(faceValueCents, rateBps int64) int64 {
	return roundHalfUp(decimal.NewFromInt(faceValueCents).
		Mul(decimal.NewFromInt(rateBps)).
		Mul(basisPoint))
}

// EarlyPayment is what the financier pays the issuer.
func EarlyPayment(faceValueCents, rateBps int64) int64 {
	return faceValueCents - Interest(faceValueCents, rateBps)
}
