// Package timevalue implements the time-value-of-money primitives used by the
// rest of the engine: loan payment and remaining-balance closed forms, net
// present value, and internal rate of return via iterative root-finding.
//
// All functions are pure and total: degenerate inputs produce a documented
// fallback value (0 or NaN), never a panic.
package timevalue

import "math"

const (
	monthsPerYear = 12

	// IRR solver bounds.
	maxIterations    = 100
	convergenceTol   = 1e-7
	negligibleDenom  = 1e-12
	defaultGuess     = 0.1
	secantSpread     = 0.05
	bisectLowerBound = -0.99
	bisectUpperBound = 1.0
	bisectExpandStep = 0.5
	bisectExpandMax  = 10.0
)

// roundCents rounds a monetary amount to two decimal places.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// MonthlyPayment returns the fixed monthly payment (PMT) for an amortized
// loan. annualRate is a fraction (0.065 for 6.5%). Returns 0 when principal
// or years is non-positive. A zero-rate loan is paid down straight-line and
// the exact quotient is returned; only the amortized formula rounds to cents.
func MonthlyPayment(principal, annualRate float64, years int) float64 {
	if principal <= 0 || years <= 0 {
		return 0
	}

	n := float64(years * monthsPerYear)
	if annualRate == 0 {
		return principal / n
	}

	r := annualRate / monthsPerYear
	factor := math.Pow(1+r, n)
	return roundCents(principal * (r * factor) / (factor - 1))
}

// RemainingBalance returns the outstanding principal after paymentsMade
// scheduled payments, using the closed-form amortization balance formula.
// monthlyRate is a fraction per month. The balance is 0 once the term is
// exhausted and decreases linearly for a zero-rate loan.
func RemainingBalance(principal, monthlyRate float64, totalPayments, paymentsMade int) float64 {
	if principal <= 0 || paymentsMade >= totalPayments {
		return 0
	}
	if paymentsMade <= 0 {
		return principal
	}

	if monthlyRate == 0 {
		return principal - principal/float64(totalPayments)*float64(paymentsMade)
	}

	n := math.Pow(1+monthlyRate, float64(totalPayments))
	p := math.Pow(1+monthlyRate, float64(paymentsMade))
	return principal * (n - p) / (n - 1)
}

// PresentValue returns the NPV of a cashflow series at the given periodic
// discount rate. Index 0 is the initial (typically negative) outlay and is
// not discounted. An empty series has a present value of 0.
func PresentValue(discountRate float64, cashflows []float64) float64 {
	var pv float64
	for t, cf := range cashflows {
		pv += cf / math.Pow(1+discountRate, float64(t))
	}
	return pv
}

// InternalRateOfReturn solves for the rate at which the series' NPV is zero,
// starting from the default initial guess of 10%. It returns NaN when no
// real root exists in the search range; callers must check with math.IsNaN
// before displaying the result.
func InternalRateOfReturn(cashflows []float64) float64 {
	return InternalRateOfReturnFrom(cashflows, defaultGuess)
}

// InternalRateOfReturnFrom is InternalRateOfReturn with an explicit initial
// guess. Secant iteration is tried first; if it stalls or diverges the
// solver falls back to bisection, which converges whenever the NPV changes
// sign somewhere in [-0.99, 10.0].
func InternalRateOfReturnFrom(cashflows []float64, guess float64) float64 {
	if len(cashflows) == 0 {
		return math.NaN()
	}

	if rate, ok := secantIRR(cashflows, guess); ok {
		return rate
	}
	return bisectIRR(cashflows)
}

// secantIRR runs bounded secant iteration. The second return value is false
// when the method stalled (negligible NPV difference), produced a non-finite
// step, or ran out of iterations without converging.
func secantIRR(cashflows []float64, guess float64) (float64, bool) {
	x0, x1 := guess, guess+secantSpread
	f0 := PresentValue(x0, cashflows)

	for i := 0; i < maxIterations; i++ {
		f1 := PresentValue(x1, cashflows)
		denom := f1 - f0
		if math.Abs(denom) < negligibleDenom {
			return 0, false
		}

		x2 := x1 - f1*(x1-x0)/denom
		if math.IsNaN(x2) || math.IsInf(x2, 0) {
			return 0, false
		}
		if math.Abs(x2-x1) < convergenceTol {
			return x2, true
		}

		x0, f0 = x1, f1
		x1 = x2
	}
	return 0, false
}

// bisectIRR brackets a sign change of the NPV curve and bisects it. The
// upper bound is expanded in 0.5 steps up to 10.0 when the initial interval
// does not bracket a root; NaN signals that no bracketing interval exists.
func bisectIRR(cashflows []float64) float64 {
	lo, hi := bisectLowerBound, bisectUpperBound
	fLo := PresentValue(lo, cashflows)
	fHi := PresentValue(hi, cashflows)

	for fLo*fHi > 0 && hi < bisectExpandMax {
		hi += bisectExpandStep
		fHi = PresentValue(hi, cashflows)
	}
	if fLo*fHi > 0 {
		return math.NaN()
	}

	mid := lo
	for i := 0; i < maxIterations; i++ {
		mid = (lo + hi) / 2
		fMid := PresentValue(mid, cashflows)
		if math.Abs(fMid) < convergenceTol {
			return mid
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}
	return mid
}
