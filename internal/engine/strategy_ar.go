package engine

import (
	"strings"

	"github.com/Dan9191/mortgage-service/internal/models"
)

// UVA loans: the installment may not exceed 25% of income
const arMaxInstallmentShare = 0.25

type argentina struct{ baseStrategy }

func (argentina) Violations(a Assessment) []string {
	income := a.Application.MonthlyIncome
	if income > 0 && a.MonthlyPayment > income*arMaxInstallmentShare {
		return []string{ViolationInstallmentShare}
	}
	return nil
}

func (argentina) LenderAffinity(l models.LenderProfile, a Assessment) float64 {
	switch l.Name {
	case "Banco Nación":
		if housingCategory(a.Application) == "PROCREAR" || strings.EqualFold(a.Application.Modality, "uva") {
			return 5
		}
	case "Banco Provincia":
		if a.Application.HasSubsidy {
			return 8
		}
	case "BBVA Argentina":
		if a.Loan.EffectiveTermYears >= 15 {
			return 3
		}
	}
	return 0
}
