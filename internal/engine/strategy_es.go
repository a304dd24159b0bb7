package engine

import "github.com/Dan9191/mortgage-service/internal/models"

// spain prices variable loans on Euribor 12M; VariableRate comes from the base
type spain struct{ baseStrategy }

func (spain) RiskSignals(a Assessment) []models.ScoreFactor {
	out := commonSignals(a, true)
	switch employment(a.Application) {
	case models.EmploymentCivilServant:
		out = append(out, models.ScoreFactor{Name: "employment", Points: 5})
	case models.EmploymentSelfEmployed:
		out = append(out, models.ScoreFactor{Name: "employment", Points: -5})
	}
	return out
}

func (spain) LenderAffinity(l models.LenderProfile, a Assessment) float64 {
	switch l.Name {
	case "Santander":
		// tolerates DTI up to 40%
		if a.DTI > a.Profile.MaxDTI && a.DTI <= 40 {
			return 8
		}
	case "BBVA":
		short := a.Application.JobTenureMonths != nil && *a.Application.JobTenureMonths < 12
		if employment(a.Application) == models.EmploymentSelfEmployed || short {
			return -5
		}
		if tenureAtLeast(a.Application, 24) {
			return 5
		}
	case "CaixaBank":
		if employment(a.Application) == models.EmploymentCivilServant {
			return 10
		}
	case "Sabadell":
		if a.LTV > a.Profile.MaxLTV {
			return 5
		}
	}
	return 0
}
