// Package amortization implements the fixed-payment loan formulas.
// Rates are annual percentages (3.5 means 3.5%) and terms are years.
package amortization

import "math"

// Periods returns the number of monthly installments for a term in years
func Periods(years float64) int {
	if years <= 0 || math.IsNaN(years) || math.IsInf(years, 0) {
		return 0
	}
	return int(math.Round(years * 12))
}

// MonthlyPayment calculates the fixed monthly installment of a loan.
// It returns 0 for a non-positive principal or term and degrades to an
// even split when the rate is zero.
func MonthlyPayment(principal, annualRate, years float64) float64 {
	n := Periods(years)
	if principal <= 0 || n <= 0 {
		return 0
	}

	r := annualRate / 100 / 12
	if r == 0 {
		return principal / float64(n)
	}

	return principal * r / (1 - math.Pow(1+r, -float64(n)))
}

// MaxPrincipalForPayment is the inverse of MonthlyPayment: the largest
// principal whose installment does not exceed payment.
func MaxPrincipalForPayment(payment, annualRate, years float64) float64 {
	n := Periods(years)
	if payment <= 0 || n <= 0 {
		return 0
	}

	r := annualRate / 100 / 12
	if r == 0 {
		return payment * float64(n)
	}

	return payment * (1 - math.Pow(1+r, -float64(n))) / r
}

// TotalPayment is the sum of all installments over the term
func TotalPayment(principal, annualRate, years float64) float64 {
	return MonthlyPayment(principal, annualRate, years) * float64(Periods(years))
}
