package engine

import "github.com/Dan9191/mortgage-service/internal/models"

type mexico struct{ baseStrategy }

func (mexico) Violations(a Assessment) []string {
	return tenureViolation(a)
}

func (mexico) LenderAffinity(l models.LenderProfile, a Assessment) float64 {
	switch l.Name {
	case "BBVA México":
		// Cofinavit
		if housingCategory(a.Application) == "INFONAVIT" {
			return 5
		}
	case "Banorte":
		if a.Loan.EffectiveTermYears <= 15 {
			return 3
		}
	case "Santander MX":
		if employment(a.Application) == models.EmploymentSelfEmployed {
			return 5
		}
	case "HSBC México":
		if bureauAtLeast(a.Application, a.Profile.BureauScale.Excellent) {
			return 3
		}
	}
	return 0
}
