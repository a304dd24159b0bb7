package engine

import (
	"github.com/Dan9191/mortgage-service/internal/models"
)

// Violation codes
const (
	ViolationIncomeNotEvaluable   = "income_not_evaluable"
	ViolationBelowMinimumAge      = "applicant_below_minimum_age"
	ViolationAgePlusTerm          = "age_plus_term_exceeds_limit"
	ViolationDownPayment          = "down_payment_below_minimum"
	ViolationBureauScore          = "bureau_score_below_minimum"
	ViolationJobTenure            = "job_tenure_below_minimum"
	ViolationPostTaxAffordability = "post_tax_affordability"
	ViolationInstallmentShare     = "installment_above_income_share"
)

const ratioTolerance = 1e-9

// Compliance is the outcome of the legal gate. It never depends on the score.
type Compliance struct {
	Compliant  bool
	Violations []string
}

// CheckCompliance applies the common legal rules and the country vetoes
func CheckCompliance(a Assessment, s Strategy) Compliance {
	app, p := a.Application, a.Profile
	violations := []string{}

	if app.MonthlyIncome <= 0 {
		violations = append(violations, ViolationIncomeNotEvaluable)
	}

	if app.Age != nil {
		if p.MinimumAge > 0 && *app.Age < p.MinimumAge {
			violations = append(violations, ViolationBelowMinimumAge)
		}
		// Normalize clamps the term to the legal age, so this only fires for
		// assessments whose loan was resolved by a custom strategy or by hand.
		if p.LegalMaxAge > 0 && float64(*app.Age)+a.Loan.EffectiveTermYears > float64(p.LegalMaxAge) {
			violations = append(violations, ViolationAgePlusTerm)
		}
	}

	required := p.MinimumDownPaymentRatio
	if app.HasSubsidy && p.SubsidizedDownPaymentRatio > 0 {
		required = p.SubsidizedDownPaymentRatio
	}
	if a.LTV > (1-required)*100+ratioTolerance {
		violations = append(violations, ViolationDownPayment)
	}

	if p.MinBureauScore > 0 && app.CreditBureauScore != nil && *app.CreditBureauScore < p.MinBureauScore {
		violations = append(violations, ViolationBureauScore)
	}

	violations = append(violations, s.Violations(a)...)

	return Compliance{Compliant: len(violations) == 0, Violations: violations}
}

// Decide combines ratios, score and compliance into the approval status
func Decide(dti, score float64, c Compliance, p models.CountryProfile) (bool, string) {
	approved := dti > 0 && dti <= p.MaxDTI && score >= p.MinimumScore && c.Compliant
	switch {
	case approved:
		return true, models.StatusApproved
	case c.Compliant && score >= p.MinimumScore-20:
		return false, models.StatusReview
	default:
		return false, models.StatusRejected
	}
}
