// Package projection compounds a property's income, expenses, and value over
// a fixed 30-year horizon and reconciles each year against the loan's
// amortization to produce yearly cash-flow and equity snapshots.
package projection

import (
	"github.com/shopspring/decimal"

	"dealsheet/pkg/models"
	"dealsheet/pkg/timevalue"
)

// HorizonYears is the fixed projection length.
const HorizonYears = 30

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Inputs seeds a projection. Growth rates are annual percentages
// (3.0 means 3% per year).
type Inputs struct {
	PurchasePrice        decimal.Decimal  `json:"purchase_price"`
	Loan                 models.LoanTerms `json:"loan"`
	MonthlyIncome        decimal.Decimal  `json:"monthly_income"`
	MonthlyExpenses      decimal.Decimal  `json:"monthly_expenses"`
	IncomeGrowthPercent  float64          `json:"income_growth_percent"`
	ExpenseGrowthPercent float64          `json:"expense_growth_percent"`
	ValueGrowthPercent   float64          `json:"value_growth_percent"`
}

// growthMultiplier converts an annual percentage to a per-year multiplier.
func growthMultiplier(percent float64) decimal.Decimal {
	return decimal.NewFromFloat(percent).Div(hundred).Add(decimal.NewFromInt(1))
}

// Project generates exactly HorizonYears snapshots in ascending year order.
// Growth compounds before first use, so year 1 already reflects one year of
// growth over the seed values. Once the loan is retired the debt-service,
// principal, and interest contributions drop to zero and cash flow rises by
// the former payment amount.
func Project(in Inputs) []models.ProjectionYear {
	incomeGrowth := growthMultiplier(in.IncomeGrowthPercent)
	expenseGrowth := growthMultiplier(in.ExpenseGrowthPercent)
	valueGrowth := growthMultiplier(in.ValueGrowthPercent)

	monthlyPayment := timevalue.MonthlyPayment(
		in.Loan.Principal.InexactFloat64(),
		in.Loan.AnnualRatePercent/100.0,
		in.Loan.TermYears,
	)
	annualDebtService := decimal.NewFromFloat(monthlyPayment).Mul(twelve)

	income := in.MonthlyIncome.Mul(twelve)
	expenses := in.MonthlyExpenses.Mul(twelve)
	value := in.PurchasePrice
	prevBalance := in.Loan.Principal.Round(2)

	years := make([]models.ProjectionYear, 0, HorizonYears)
	for year := 1; year <= HorizonYears; year++ {
		income = income.Mul(incomeGrowth)
		expenses = expenses.Mul(expenseGrowth)
		prevValue := value
		value = value.Mul(valueGrowth)

		balance := decimal.NewFromFloat(timevalue.RemainingBalance(
			in.Loan.Principal.InexactFloat64(),
			in.Loan.MonthlyRate(),
			in.Loan.TotalPayments(),
			year*12,
		)).Round(2)

		// Debt service stops once the loan entered the year already retired.
		debtService := annualDebtService
		if prevBalance.LessThanOrEqual(decimal.Zero) {
			debtService = decimal.Zero
		}
		principalPaid := prevBalance.Sub(balance)
		interestPaid := debtService.Sub(principalPaid)

		// Record fields are derived from the rounded yearly figures so each
		// snapshot is internally consistent to the cent; the unrounded
		// running values keep compounding below.
		incomeR := income.Round(2)
		expensesR := expenses.Round(2)
		valueR := value.Round(2)

		years = append(years, models.ProjectionYear{
			Year:             year,
			AnnualIncome:     incomeR,
			AnnualExpenses:   expensesR,
			AnnualCashFlow:   incomeR.Sub(expensesR).Sub(debtService).Round(2),
			PropertyValue:    valueR,
			LoanBalance:      balance,
			Equity:           valueR.Sub(balance),
			PrincipalPayment: principalPaid,
			InterestPayment:  interestPaid.Round(2),
			Appreciation:     valueR.Sub(prevValue.Round(2)),
		})

		prevBalance = balance
	}

	return years
}
