package engine

import "github.com/Dan9191/mortgage-service/internal/models"

// usa never scores age (ECOA); the FICO minimum is a common profile rule
type usa struct{ baseStrategy }

func (usa) RiskSignals(a Assessment) []models.ScoreFactor {
	return commonSignals(a, false)
}

func (usa) LenderAffinity(l models.LenderProfile, a Assessment) float64 {
	switch l.Name {
	case "Wells Fargo":
		c := housingCategory(a.Application)
		if c == "FHA" || c == "VA" {
			return 5
		}
	case "Chase":
		if bureauAtLeast(a.Application, a.Profile.BureauScale.Excellent) {
			return 5
		}
	case "Bank of America":
		if a.Application.MonthlyIncome >= 10_000 {
			return 3
		}
	case "Quicken Loans":
		if employment(a.Application) == models.EmploymentSelfEmployed {
			return -5
		}
	}
	return 0
}
