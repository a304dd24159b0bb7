package engine

import (
	"math"
	"strings"

	"github.com/Dan9191/mortgage-service/internal/models"
)

// Assessment carries everything a country strategy may look at. Score and
// Approved are zero while the score itself is being computed.
type Assessment struct {
	Application    models.LoanApplication
	Profile        models.CountryProfile
	Loan           models.NormalizedLoan
	MonthlyPayment float64
	DTI            float64
	LTV            float64
	Score          float64
	Approved       bool
}

// Strategy holds the country specific part of the evaluation
type Strategy interface {
	// RiskSignals returns extra score factors; each one is capped to ±maxSignalPoints
	RiskSignals(a Assessment) []models.ScoreFactor
	// Violations returns country legal vetoes on top of the common rules
	Violations(a Assessment) []string
	// LenderAffinity returns probability points added for one lender
	LenderAffinity(l models.LenderProfile, a Assessment) float64
	// RateAdjustment returns percentage points added to every estimated lender rate
	RateAdjustment(a Assessment) float64
	// VariableRate returns the annual rate of the variable scenario
	VariableRate(a Assessment) float64
}

// StrategyFor returns the built-in strategy of a country
func StrategyFor(code models.CountryCode) Strategy {
	switch code {
	case models.Spain:
		return spain{}
	case models.Colombia:
		return colombia{}
	case models.Mexico:
		return mexico{}
	case models.Argentina:
		return argentina{}
	case models.Chile:
		return chile{}
	case models.Peru:
		return peru{}
	case models.USA:
		return usa{}
	default:
		return baseStrategy{}
	}
}

// baseStrategy applies the table driven rules of the profile
type baseStrategy struct{}

func (baseStrategy) RiskSignals(a Assessment) []models.ScoreFactor {
	return commonSignals(a, true)
}

func (baseStrategy) Violations(Assessment) []string {
	return nil
}

func (baseStrategy) LenderAffinity(models.LenderProfile, Assessment) float64 {
	return 0
}

func (baseStrategy) RateAdjustment(Assessment) float64 {
	return 0
}

func (baseStrategy) VariableRate(a Assessment) float64 {
	if a.Loan.ReferenceIndexRate != nil {
		spread := 0.0
		if a.Loan.Spread != nil {
			spread = *a.Loan.Spread
		}
		return math.Max(0, *a.Loan.ReferenceIndexRate+spread)
	}
	return math.Max(0, a.Loan.EffectiveAnnualRate-variableDiscount)
}

func commonSignals(a Assessment, withAge bool) []models.ScoreFactor {
	var out []models.ScoreFactor
	if f, ok := bureauSignal(a); ok {
		out = append(out, f)
	}
	if f, ok := tenureSignal(a); ok {
		out = append(out, f)
	}
	if withAge {
		if f, ok := ageSignal(a); ok {
			out = append(out, f)
		}
	}
	return append(out, housingSignals(a)...)
}

func bureauSignal(a Assessment) (models.ScoreFactor, bool) {
	scale := a.Profile.BureauScale
	if a.Application.CreditBureauScore == nil || scale.Name == "" {
		return models.ScoreFactor{}, false
	}

	s := *a.Application.CreditBureauScore
	points := -15.0
	switch {
	case s >= scale.Excellent:
		points = 10
	case s >= scale.Good:
		points = 5
	case s >= scale.Fair:
		points = 0
	}
	return models.ScoreFactor{Name: "bureau_score", Points: points}, true
}

func tenureSignal(a Assessment) (models.ScoreFactor, bool) {
	if a.Application.JobTenureMonths == nil {
		return models.ScoreFactor{}, false
	}

	m := *a.Application.JobTenureMonths
	points := 0.0
	switch {
	case m < a.Profile.MinJobTenureMonths:
		points = -10
	case m >= 60:
		points = 8
	case m >= 24:
		points = 5
	}
	return models.ScoreFactor{Name: "job_tenure", Points: points}, true
}

func ageSignal(a Assessment) (models.ScoreFactor, bool) {
	if a.Application.Age == nil {
		return models.ScoreFactor{}, false
	}

	age := *a.Application.Age
	points := 0.0
	switch {
	case age > 65:
		points = -8
	case age > 55:
		points = -3
	case age > 45:
		points = 2
	case age >= 25:
		points = 5
	}
	return models.ScoreFactor{Name: "age", Points: points}, true
}

func housingSignals(a Assessment) []models.ScoreFactor {
	var out []models.ScoreFactor
	if bonus, ok := a.Profile.HousingCategoryBonus[housingCategory(a.Application)]; ok {
		out = append(out, models.ScoreFactor{Name: "housing_category", Points: bonus})
	}
	if a.Application.HasSubsidy {
		out = append(out, models.ScoreFactor{Name: "subsidy", Points: 5})
	}
	return out
}

func housingCategory(app models.LoanApplication) string {
	return strings.ToUpper(strings.TrimSpace(app.HousingCategory))
}

func employment(app models.LoanApplication) string {
	return strings.ToLower(strings.TrimSpace(app.EmploymentType))
}

func tenureAtLeast(app models.LoanApplication, months int) bool {
	return app.JobTenureMonths != nil && *app.JobTenureMonths >= months
}

func bureauAtLeast(app models.LoanApplication, score int) bool {
	return app.CreditBureauScore != nil && score > 0 && *app.CreditBureauScore >= score
}

// tenureViolation vetoes applicants below the country minimum job tenure
func tenureViolation(a Assessment) []string {
	required := a.Profile.MinJobTenureMonths
	if required > 0 && a.Application.JobTenureMonths != nil && *a.Application.JobTenureMonths < required {
		return []string{ViolationJobTenure}
	}
	return nil
}
