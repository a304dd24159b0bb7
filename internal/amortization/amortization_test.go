package amortization

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyPayment_30YearMortgage(t *testing.T) {
	// 100,000 at 5% for 30 years is approximately 536.82
	assert.InDelta(t, 536.82, MonthlyPayment(100_000, 5, 30), 0.01)
}

func TestMonthlyPayment_ZeroRate(t *testing.T) {
	assert.Equal(t, 100.0, MonthlyPayment(1200, 0, 1))
}

func TestMonthlyPayment_ZeroGuards(t *testing.T) {
	for _, rate := range []float64{0, 1.5, 3.5, 12} {
		for _, years := range []float64{1, 10, 25, 30} {
			assert.Zero(t, MonthlyPayment(0, rate, years))
			assert.Zero(t, MonthlyPayment(-5000, rate, years))
		}
		assert.Zero(t, MonthlyPayment(100_000, rate, 0))
		assert.Zero(t, MonthlyPayment(100_000, rate, -3))
	}
}

func TestMonthlyPayment_MonotoneInRate(t *testing.T) {
	prev := 0.0
	for rate := 0.0; rate <= 20; rate += 0.25 {
		p := MonthlyPayment(160_000, rate, 25)
		assert.GreaterOrEqual(t, p, prev, "rate %.2f", rate)
		prev = p
	}
}

func TestMonthlyPayment_MonotoneInTerm(t *testing.T) {
	for _, rate := range []float64{0, 2.6, 4.5, 13.5} {
		prev := MonthlyPayment(160_000, rate, 1)
		for years := 2.0; years <= 40; years++ {
			p := MonthlyPayment(160_000, rate, years)
			assert.LessOrEqual(t, p, prev, "rate %.2f years %.0f", rate, years)
			prev = p
		}
	}
}

func TestMonthlyPayment_RoundsPeriods(t *testing.T) {
	// 2.5 years is 30 installments
	assert.InDelta(t, 100.0, MonthlyPayment(3000, 0, 2.5), 1e-9)
}

func TestMaxPrincipalForPayment_InvertsPayment(t *testing.T) {
	cases := []struct {
		name      string
		principal float64
		rate      float64
		years     float64
	}{
		{"spain", 180_000, 3.5, 25},
		{"colombia", 120_000_000, 13.5, 20},
		{"zero rate", 50_000, 0, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payment := MonthlyPayment(tc.principal, tc.rate, tc.years)
			assert.InDelta(t, tc.principal, MaxPrincipalForPayment(payment, tc.rate, tc.years), tc.principal*1e-9)
		})
	}
}

func TestMaxPrincipalForPayment_ZeroGuards(t *testing.T) {
	assert.Zero(t, MaxPrincipalForPayment(0, 3.5, 25))
	assert.Zero(t, MaxPrincipalForPayment(-100, 3.5, 25))
	assert.Zero(t, MaxPrincipalForPayment(1000, 3.5, 0))
}

func TestTotalPayment(t *testing.T) {
	assert.InDelta(t, 1200.0, TotalPayment(1200, 0, 1), 1e-9)
	assert.Greater(t, TotalPayment(100_000, 5, 30), 100_000.0)
}

func TestSchedule_PaysOffPrincipal(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	schedule := Schedule(100_000, 5, 30, start, 2)

	require.NotEmpty(t, schedule)
	assert.InDelta(t, 360, len(schedule), 1)

	first := schedule[0]
	assert.Equal(t, 1, first.Period)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), first.DueDate)
	assert.True(t, first.Interest.Equal(decimal.NewFromFloat(416.67)), "first interest %s", first.Interest)

	last := schedule[len(schedule)-1]
	assert.True(t, last.RemainingBalance.IsZero(), "final balance %s", last.RemainingBalance)

	total := decimal.Zero
	for _, e := range schedule {
		total = total.Add(e.Principal)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(100_000)), "principal paid %s", total)
}

func TestSchedule_ZeroRate(t *testing.T) {
	schedule := Schedule(12_000, 0, 1, time.Now(), 2)
	require.Len(t, schedule, 12)
	for _, e := range schedule {
		assert.True(t, e.Interest.IsZero())
		assert.True(t, e.Principal.Equal(decimal.NewFromInt(1000)), "got %s", e.Principal)
	}
}

func TestSchedule_InvalidInputs(t *testing.T) {
	assert.Nil(t, Schedule(0, 5, 10, time.Now(), 2))
	assert.Nil(t, Schedule(-10, 5, 10, time.Now(), 2))
	assert.Nil(t, Schedule(1000, 5, 0, time.Now(), 2))
}
