package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanTerms describes a fixed-rate amortized loan. Monetary amounts are
// decimals rounded to cents; rates are plain percentages (6.5 means 6.5%).
type LoanTerms struct {
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent float64         `json:"annual_rate_percent"`
	TermYears         int             `json:"term_years"`
}

// MonthlyRate returns the periodic rate as a fraction (annual percent / 100 / 12).
func (l LoanTerms) MonthlyRate() float64 {
	return l.AnnualRatePercent / 100.0 / 12.0
}

// TotalPayments returns the number of scheduled payments over the full term.
func (l LoanTerms) TotalPayments() int {
	return l.TermYears * 12
}

// PaymentBreakdown is one row of an amortization schedule. All money values
// are rounded to cents independently per row; Payment always equals
// Interest + Principal + ExtraPrincipal.
type PaymentBreakdown struct {
	Month          int             `json:"month"`
	Payment        decimal.Decimal `json:"payment"`
	Interest       decimal.Decimal `json:"interest"`
	Principal      decimal.Decimal `json:"principal"`
	ExtraPrincipal decimal.Decimal `json:"extra_principal"`
	Balance        decimal.Decimal `json:"balance"`
}

// ProjectionYear is one year of the long-range cash-flow/equity projection.
type ProjectionYear struct {
	Year             int             `json:"year"`
	AnnualIncome     decimal.Decimal `json:"annual_income"`
	AnnualExpenses   decimal.Decimal `json:"annual_expenses"`
	AnnualCashFlow   decimal.Decimal `json:"annual_cash_flow"`
	PropertyValue    decimal.Decimal `json:"property_value"`
	LoanBalance      decimal.Decimal `json:"loan_balance"`
	Equity           decimal.Decimal `json:"equity"`
	PrincipalPayment decimal.Decimal `json:"principal_payment"`
	InterestPayment  decimal.Decimal `json:"interest_payment"`
	Appreciation     decimal.Decimal `json:"appreciation"`
}

// Deal is an analyzed investment scenario kept by the store for the API layer.
// The engine packages never see this type; it is assembled by cmd/api.
type Deal struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`

	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	DownPayment     decimal.Decimal `json:"down_payment"`
	Loan            LoanTerms       `json:"loan"`
	MonthlyRent     decimal.Decimal `json:"monthly_rent"`
	MonthlyExpenses decimal.Decimal `json:"monthly_expenses"`

	MonthlyPayment     decimal.Decimal  `json:"monthly_payment"`
	NetOperatingIncome decimal.Decimal  `json:"net_operating_income"`
	CapRatePercent     *float64         `json:"cap_rate_percent"`
	CashOnCashPercent  *float64         `json:"cash_on_cash_percent"`
	GrossRentMultiple  float64          `json:"gross_rent_multiplier"`
	InternalRate       *float64         `json:"internal_rate_of_return"`
	Projection         []ProjectionYear `json:"projection"`

	Warnings []string `json:"warnings,omitempty"`
}
