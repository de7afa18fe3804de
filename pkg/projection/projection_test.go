package projection

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealsheet/pkg/models"
)

func sampleInputs() Inputs {
	return Inputs{
		PurchasePrice: decimal.NewFromInt(300000),
		Loan: models.LoanTerms{
			Principal:         decimal.NewFromInt(240000),
			AnnualRatePercent: 6.5,
			TermYears:         30,
		},
		MonthlyIncome:        decimal.NewFromInt(2500),
		MonthlyExpenses:      decimal.NewFromInt(1800),
		IncomeGrowthPercent:  3.0,
		ExpenseGrowthPercent: 2.5,
		ValueGrowthPercent:   4.0,
	}
}

func TestProject_ThirtyAscendingYears(t *testing.T) {
	years := Project(sampleInputs())
	require.Len(t, years, HorizonYears)
	for i, y := range years {
		assert.Equal(t, i+1, y.Year)
	}
}

func TestProject_CompoundedIncome(t *testing.T) {
	years := Project(sampleInputs())

	// Year 5 income is monthly rent * 12 compounded five times at 3%.
	want := 2500.0 * 12 * math.Pow(1.03, 5)
	got := years[4].AnnualIncome.InexactFloat64()
	assert.InDelta(t, want, got, 0.01)
}

func TestProject_EquityAndAppreciation(t *testing.T) {
	in := sampleInputs()
	years := Project(in)

	prevValue := in.PurchasePrice
	for _, y := range years {
		assert.True(t, y.Equity.Equal(y.PropertyValue.Sub(y.LoanBalance)),
			"year %d: equity %s != value - balance", y.Year, y.Equity)

		wantAppreciation := y.PropertyValue.Sub(prevValue)
		assert.True(t, y.Appreciation.Sub(wantAppreciation).Abs().LessThanOrEqual(decimal.NewFromFloat(0.01)),
			"year %d: appreciation %s != %s", y.Year, y.Appreciation, wantAppreciation)
		prevValue = y.PropertyValue
	}
}

func TestProject_BalanceDeclinesToZero(t *testing.T) {
	years := Project(sampleInputs())

	prev := decimal.NewFromInt(240000)
	for _, y := range years {
		assert.True(t, y.LoanBalance.LessThanOrEqual(prev),
			"year %d: balance %s rose above %s", y.Year, y.LoanBalance, prev)
		prev = y.LoanBalance
	}
	assert.True(t, years[HorizonYears-1].LoanBalance.Equal(decimal.Zero))
}

func TestProject_DebtServiceEndsWithLoan(t *testing.T) {
	in := sampleInputs()
	in.Loan.TermYears = 15
	years := Project(in)

	// Years after the 15-year payoff carry no principal or interest and the
	// cash flow is income minus expenses only.
	for _, y := range years[15:] {
		assert.True(t, y.PrincipalPayment.Equal(decimal.Zero), "year %d", y.Year)
		assert.True(t, y.InterestPayment.Equal(decimal.Zero), "year %d", y.Year)
		assert.True(t, y.AnnualCashFlow.Equal(y.AnnualIncome.Sub(y.AnnualExpenses)), "year %d", y.Year)
	}

	// The payoff year itself retires the remaining balance.
	assert.True(t, years[14].LoanBalance.Equal(decimal.Zero))
	assert.True(t, years[13].LoanBalance.GreaterThan(decimal.Zero))
}

func TestProject_PrincipalPlusInterestEqualsDebtService(t *testing.T) {
	in := sampleInputs()
	years := Project(in)

	monthly := decimal.NewFromFloat(1516.96) // PMT(240000, 6.5%, 30)
	annual := monthly.Mul(decimal.NewFromInt(12))
	for _, y := range years {
		sum := y.PrincipalPayment.Add(y.InterestPayment)
		assert.True(t, sum.Sub(annual).Abs().LessThanOrEqual(decimal.NewFromFloat(0.05)),
			"year %d: principal+interest %s != annual debt service %s", y.Year, sum, annual)
	}
}

func TestProject_AllCashPurchase(t *testing.T) {
	in := sampleInputs()
	in.Loan.Principal = decimal.Zero

	years := Project(in)
	require.Len(t, years, HorizonYears)
	for _, y := range years {
		assert.True(t, y.LoanBalance.Equal(decimal.Zero))
		assert.True(t, y.AnnualCashFlow.Equal(y.AnnualIncome.Sub(y.AnnualExpenses)))
		assert.True(t, y.Equity.Equal(y.PropertyValue))
	}
}
