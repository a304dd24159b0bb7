package amortization

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one period of an amortization schedule
type Entry struct {
	Period           int             `json:"period"`
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// Schedule builds the month-by-month amortization table, rounding each
// amount to places decimals. The last period absorbs rounding so the
// balance reaches exactly zero. The first installment is due one month
// after start.
func Schedule(principal, annualRate, years float64, start time.Time, places int32) []Entry {
	n := Periods(years)
	if principal <= 0 || n <= 0 || math.IsNaN(principal) {
		return nil
	}

	payment := decimal.NewFromFloat(MonthlyPayment(principal, annualRate, years)).Round(places)
	monthlyRate := decimal.NewFromFloat(annualRate / 100 / 12)
	remaining := decimal.NewFromFloat(principal).Round(places)

	schedule := make([]Entry, 0, n)
	for period := 1; period <= n; period++ {
		interest := remaining.Mul(monthlyRate).Round(places)
		principalPart := payment.Sub(interest)

		if period == n || principalPart.GreaterThan(remaining) {
			principalPart = remaining
		}

		remaining = remaining.Sub(principalPart)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		schedule = append(schedule, Entry{
			Period:           period,
			DueDate:          start.AddDate(0, period, 0),
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})

		if remaining.IsZero() {
			break
		}
	}

	return schedule
}
