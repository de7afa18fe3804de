// Package metrics computes the standard investment-return ratios for an
// analyzed property. Ratio functions whose denominator can legitimately be
// zero either return a neutral zero (GRM) or an explicit ErrZeroDenominator;
// a ratio over a zero base is meaningless and silently returning 0 would be
// misleading.
package metrics

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrZeroDenominator is returned when a ratio has no meaningful value
// because its base is zero.
var ErrZeroDenominator = errors.New("metrics: division by zero denominator")

var hundred = decimal.NewFromInt(100)

// NetOperatingIncome is annual income minus annual operating expenses,
// excluding debt service.
func NetOperatingIncome(annualIncome, annualExpenses decimal.Decimal) decimal.Decimal {
	return annualIncome.Sub(annualExpenses)
}

// CapRate is NOI over purchase price, as a percentage. A zero purchase
// price has no meaningful cap rate.
func CapRate(noi, purchasePrice decimal.Decimal) (float64, error) {
	if purchasePrice.IsZero() {
		return 0, ErrZeroDenominator
	}
	return noi.Div(purchasePrice).Mul(hundred).InexactFloat64(), nil
}

// CashOnCashReturn is annual cash flow over cash actually invested, as a
// percentage. A zero investment base has no meaningful return.
func CashOnCashReturn(annualCashFlow, cashInvested decimal.Decimal) (float64, error) {
	if cashInvested.IsZero() {
		return 0, ErrZeroDenominator
	}
	return annualCashFlow.Div(cashInvested).Mul(hundred).InexactFloat64(), nil
}

// GrossRentMultiplier is purchase price over gross annual income. Zero
// income yields 0, a meaningful neutral result for an un-rented property.
func GrossRentMultiplier(purchasePrice, annualIncome decimal.Decimal) float64 {
	if annualIncome.IsZero() {
		return 0
	}
	return purchasePrice.Div(annualIncome).InexactFloat64()
}

// DebtServiceCoverageRatio is NOI over annual debt service. A zero debt
// service (an all-cash deal) has no meaningful coverage ratio.
func DebtServiceCoverageRatio(noi, annualDebtService decimal.Decimal) (float64, error) {
	if annualDebtService.IsZero() {
		return 0, ErrZeroDenominator
	}
	return noi.Div(annualDebtService).InexactFloat64(), nil
}
