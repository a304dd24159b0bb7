package engine

import (
	"strings"

	"github.com/Dan9191/mortgage-service/internal/models"
)

// Colombian rate adjustments in percentage points
const (
	coAffordableHousingDiscount = -0.8
	coSubsidyDiscount           = -0.5
	coLeasingPremium            = 0.3
	coCityPremium               = 0.2
	// Ley 546: the first installment may not exceed 30% of household income
	coMaxInstallmentShare = 0.30
)

var coPremiumCities = map[string]bool{"medellin": true, "medellín": true, "cali": true}

type colombia struct{ baseStrategy }

func (colombia) Violations(a Assessment) []string {
	out := tenureViolation(a)

	income := a.Application.MonthlyIncome
	if income <= 0 {
		return out
	}

	if a.MonthlyPayment > income*coMaxInstallmentShare {
		out = append(out, ViolationInstallmentShare)
	}

	vital := a.Profile.MinimumVitalExpenses
	if a.Application.MinimumVitalExpenses != nil {
		vital = *a.Application.MinimumVitalExpenses
	}
	net := income*(1-a.Profile.IncomeWithholdingRate) - vital
	if net <= a.MonthlyPayment {
		out = append(out, ViolationPostTaxAffordability)
	}
	return out
}

func (colombia) RateAdjustment(a Assessment) float64 {
	adj := 0.0
	affordable := isAffordableHousing(a.Application)
	if affordable {
		adj += coAffordableHousingDiscount
		if a.Application.HasSubsidy {
			adj += coSubsidyDiscount
		}
	}
	if strings.EqualFold(a.Application.Modality, models.ModalityLeasing) {
		adj += coLeasingPremium
	}
	if coPremiumCities[strings.ToLower(strings.TrimSpace(a.Application.City))] {
		adj += coCityPremium
	}
	return adj
}

func (colombia) LenderAffinity(l models.LenderProfile, a Assessment) float64 {
	switch l.Name {
	case "Davivienda":
		points := 0.0
		if isAffordableHousing(a.Application) && a.Application.HasSubsidy {
			points += 8
		}
		if a.Loan.EffectiveTermYears >= 20 {
			points += 3
		}
		return points
	case "Bancolombia":
		if strings.EqualFold(a.Application.Modality, models.ModalityLeasing) {
			return 5
		}
	case "BBVA Colombia":
		if bureauAtLeast(a.Application, a.Profile.BureauScale.Good) {
			return 5
		}
	case "Banco de Bogotá":
		city := strings.ToLower(strings.TrimSpace(a.Application.City))
		if city != "" && city != "bogota" && city != "bogotá" && !coPremiumCities[city] {
			return 3
		}
	}
	return 0
}

func isAffordableHousing(app models.LoanApplication) bool {
	c := housingCategory(app)
	return c == "VIS" || c == "VIP"
}
