package engine

import (
	"github.com/Dan9191/mortgage-service/internal/amortization"
	"github.com/Dan9191/mortgage-service/internal/models"
)

const (
	fixedPremium     = 0.5
	variableDiscount = 0.5
)

// Project computes fixed, mixed and variable payments for the normalized loan
func Project(a Assessment, s Strategy) models.Scenarios {
	base := a.Loan.EffectiveAnnualRate
	scenario := func(rate float64) models.Scenario {
		return models.Scenario{
			AnnualRate:     rate,
			MonthlyPayment: amortization.MonthlyPayment(a.Loan.Principal, rate, a.Loan.EffectiveTermYears),
		}
	}

	return models.Scenarios{
		Fixed:    scenario(base + fixedPremium),
		Mixed:    scenario(base),
		Variable: scenario(s.VariableRate(a)),
	}
}
