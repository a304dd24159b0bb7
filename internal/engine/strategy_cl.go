package engine

import "github.com/Dan9191/mortgage-service/internal/models"

type chile struct{ baseStrategy }

func (chile) LenderAffinity(l models.LenderProfile, a Assessment) float64 {
	switch l.Name {
	case "BancoEstado":
		c := housingCategory(a.Application)
		if a.Application.HasSubsidy || c == "DS1" || c == "DS19" {
			return 10
		}
	case "Banco de Chile":
		if bureauAtLeast(a.Application, a.Profile.BureauScale.Excellent) {
			return 5
		}
	}
	return 0
}
