package engine

import "github.com/Dan9191/mortgage-service/internal/models"

type peru struct{ baseStrategy }

func (peru) LenderAffinity(l models.LenderProfile, a Assessment) float64 {
	switch l.Name {
	case "BCP":
		if housingCategory(a.Application) == "MIVIVIENDA" {
			return 5
		}
	case "Interbank":
		if tenureAtLeast(a.Application, 24) {
			return 3
		}
	}
	return 0
}
