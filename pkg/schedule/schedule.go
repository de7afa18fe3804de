// Package schedule builds month-by-month amortization schedules, including
// optional extra monthly principal and one-off lump-sum payments.
package schedule

import (
	"github.com/shopspring/decimal"

	"dealsheet/pkg/models"
	"dealsheet/pkg/timevalue"
)

// paidOffTolerance is the residual balance below which the loan is
// considered retired; it absorbs the per-row cents rounding.
var paidOffTolerance = decimal.NewFromFloat(0.01)

// Options adjusts how a schedule is built beyond the base loan terms.
type Options struct {
	// ExtraMonthlyPrincipal is applied on top of every scheduled payment.
	ExtraMonthlyPrincipal decimal.Decimal
	// LumpSumPayments maps a month number (1-based) to a one-off principal
	// payment applied in that month.
	LumpSumPayments map[int]decimal.Decimal
}

// Build produces the full amortization schedule for a loan. The schedule is
// capped at the loan's term and terminates early once the balance drops to
// a cent or less. Every monetary field is rounded to cents per row; rows do
// not carry fractional cents forward.
//
// Callers that only need the balance at a single month should use
// timevalue.RemainingBalance instead of walking the schedule.
func Build(loan models.LoanTerms, opts Options) []models.PaymentBreakdown {
	totalMonths := loan.TotalPayments()
	if totalMonths <= 0 || loan.Principal.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	basePayment := decimal.NewFromFloat(timevalue.MonthlyPayment(
		loan.Principal.InexactFloat64(),
		loan.AnnualRatePercent/100.0,
		loan.TermYears,
	))
	monthlyRate := decimal.NewFromFloat(loan.MonthlyRate())

	rows := make([]models.PaymentBreakdown, 0, totalMonths)
	balance := loan.Principal.Round(2)

	for month := 1; month <= totalMonths; month++ {
		if balance.LessThanOrEqual(paidOffTolerance) {
			break
		}

		interest := balance.Mul(monthlyRate).Round(2)
		basePrincipal := basePayment.Sub(interest)

		extra := opts.ExtraMonthlyPrincipal
		if lump, ok := opts.LumpSumPayments[month]; ok {
			extra = extra.Add(lump)
		}
		extra = extra.Round(2)

		// Cap the final row so overpayment can never push the balance
		// negative: the base principal is clamped to what is left and any
		// extra for that month is dropped.
		if basePrincipal.Add(extra).GreaterThan(balance) {
			basePrincipal = balance
			extra = decimal.Zero
		}
		basePrincipal = basePrincipal.Round(2)

		balance = balance.Sub(basePrincipal).Sub(extra)
		rows = append(rows, models.PaymentBreakdown{
			Month:          month,
			Payment:        interest.Add(basePrincipal).Add(extra),
			Interest:       interest,
			Principal:      basePrincipal,
			ExtraPrincipal: extra,
			Balance:        balance,
		})
	}

	return rows
}
