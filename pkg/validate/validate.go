// Package validate holds the advisory input predicates and the shared
// validation result record. Predicates never panic and never format
// user-facing messages; callers pair a failed predicate with their own
// field-specific message.
package validate

// Documented bounds for raw numeric inputs.
const (
	MaxPurchasePrice = 50_000_000.0
	MinInterestRate  = 0.1
	MaxInterestRate  = 15.0
	MaxMonthlyRent   = 100_000.0
	MaxGrowthRate    = 20.0
)

// Result carries hard errors and soft warnings for a scenario. Errors mark
// the scenario economically inconsistent; warnings flag unusual but possible
// inputs and never block calculation.
type Result struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// NewResult returns a valid, empty result.
func NewResult() Result {
	return Result{IsValid: true, Errors: []string{}, Warnings: []string{}}
}

// AddError records a hard error and marks the result invalid.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.IsValid = false
}

// AddWarning records a soft warning; validity is unaffected.
func (r *Result) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// PurchasePrice reports whether a purchase price is in (0, 50_000_000].
func PurchasePrice(v float64) bool {
	return v > 0 && v <= MaxPurchasePrice
}

// DownPayment reports whether a down payment is non-negative and no larger
// than the purchase price.
func DownPayment(dp, purchasePrice float64) bool {
	return dp >= 0 && dp <= purchasePrice
}

// InterestRate reports whether an annual rate percentage is in [0.1, 15.0].
func InterestRate(v float64) bool {
	return v >= MinInterestRate && v <= MaxInterestRate
}

// MonthlyRent reports whether a monthly rent is in (0, 100_000].
func MonthlyRent(v float64) bool {
	return v > 0 && v <= MaxMonthlyRent
}

// GrowthRate reports whether an annual growth percentage is in [0, 20].
func GrowthRate(v float64) bool {
	return v >= 0 && v <= MaxGrowthRate
}
