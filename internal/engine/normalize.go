package engine

import (
	"math"

	"github.com/Dan9191/mortgage-service/internal/models"
)

// Rate sources recorded on a normalized loan
const (
	RateFromApplication = "annual"
	RateFromDefault     = "default"
	RateFromIndex       = "indexPlusSpread"
)

// Normalize resolves principal, term and rate of an application against a
// country profile.
func Normalize(app models.LoanApplication, p models.CountryProfile) (models.NormalizedLoan, error) {
	if err := validate(app); err != nil {
		return models.NormalizedLoan{}, err
	}

	term, clamped, err := resolveTerm(app, p)
	if err != nil {
		return models.NormalizedLoan{}, err
	}

	index, spread := resolveIndex(app, p)
	rate, source, err := resolveRate(app, p, index, spread)
	if err != nil {
		return models.NormalizedLoan{}, err
	}

	price := app.PropertyPrice
	down := 0.0
	if app.DownPayment != nil {
		down = *app.DownPayment
	}

	taxes := price * p.TaxesAndFeesRate
	totalCost := price + taxes
	financing := math.Max(0, totalCost-down)

	principal := financing
	explicit := false
	if app.RequestedLoanAmount != nil && *app.RequestedLoanAmount > 0 {
		principal = *app.RequestedLoanAmount
		explicit = true
	}

	switch {
	case !allFinite(taxes, totalCost, financing):
		return models.NormalizedLoan{}, invalid("property_price", "too large to evaluate")
	case !isFinite(principal):
		return models.NormalizedLoan{}, invalid("requested_loan_amount", "too large to evaluate")
	}

	return models.NormalizedLoan{
		PropertyPrice:          price,
		TotalCost:              totalCost,
		DownPayment:            down,
		FinancingNeeded:        financing,
		Principal:              principal,
		ExplicitPrincipal:      explicit,
		FinancedPropertyAmount: math.Min(principal, math.Max(0, price-down)),
		CashToClose:            down + taxes,
		RequestedTermYears:     app.TermYears,
		EffectiveTermYears:     term,
		TermClamped:            clamped,
		EffectiveAnnualRate:    rate,
		RateSource:             source,
		ReferenceIndexRate:     index,
		Spread:                 spread,
	}, nil
}

func resolveTerm(app models.LoanApplication, p models.CountryProfile) (float64, bool, error) {
	term := app.TermYears
	if p.MaxTermYears > 0 && term > p.MaxTermYears {
		term = p.MaxTermYears
	}

	if app.Age != nil && p.LegalMaxAge > 0 {
		remaining := float64(p.LegalMaxAge - *app.Age)
		if remaining <= 0 {
			return 0, false, invalid("age", "no term fits before the legal maximum age")
		}
		term = math.Min(term, remaining)
	}

	// A term shorter than one installment cannot be amortized.
	if term*12 < 0.5 {
		return 0, false, invalid("term_years", "effective term is shorter than one month")
	}

	return term, term < app.TermYears, nil
}

func resolveIndex(app models.LoanApplication, p models.CountryProfile) (*float64, *float64) {
	index := p.ReferenceIndexRate
	if app.ReferenceIndexRate != nil {
		index = app.ReferenceIndexRate
	}
	if index == nil {
		return nil, nil
	}

	spread := 0.0
	if p.DefaultSpread != nil {
		spread = *p.DefaultSpread
	}
	if app.Spread != nil {
		spread = *app.Spread
	}

	idx := *index
	return &idx, &spread
}

func resolveRate(app models.LoanApplication, p models.CountryProfile, index, spread *float64) (float64, string, error) {
	var (
		rate   float64
		source string
	)

	switch app.RateMode {
	case models.RateModeIndexPlusSpread:
		if index == nil {
			return 0, "", unresolvable("reference_index_rate", "no reference index for "+string(p.Code))
		}
		rate, source = *index+*spread, RateFromIndex
	case models.RateModeAnnual, "":
		if app.NominalAnnualRate != nil {
			rate, source = *app.NominalAnnualRate, RateFromApplication
		} else {
			rate, source = p.DefaultAnnualRate, RateFromDefault
		}
	}

	if rate <= 0 {
		return 0, "", unresolvable("annual_rate", "resolved rate is not positive")
	}
	return rate, source, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func allFinite(values ...float64) bool {
	for _, v := range values {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

func validate(app models.LoanApplication) error {
	switch {
	case !isFinite(app.PropertyPrice) || app.PropertyPrice <= 0:
		return invalid("property_price", "must be a positive number")
	case !isFinite(app.MonthlyIncome) || app.MonthlyIncome < 0:
		return invalid("monthly_income", "must be a non-negative number")
	case !isFinite(app.ExistingMonthlyDebts) || app.ExistingMonthlyDebts < 0:
		return invalid("existing_monthly_debts", "must be a non-negative number")
	case !isFinite(app.TermYears) || app.TermYears <= 0:
		return invalid("term_years", "must be a positive number")
	}

	optional := []struct {
		field    string
		value    *float64
		negative bool
	}{
		{"requested_loan_amount", app.RequestedLoanAmount, false},
		{"down_payment", app.DownPayment, false},
		{"nominal_annual_rate", app.NominalAnnualRate, false},
		{"minimum_vital_expenses", app.MinimumVitalExpenses, false},
		{"reference_index_rate", app.ReferenceIndexRate, true},
		{"spread", app.Spread, true},
	}
	for _, o := range optional {
		if o.value == nil {
			continue
		}
		if !isFinite(*o.value) {
			return invalid(o.field, "must be a number")
		}
		if !o.negative && *o.value < 0 {
			return invalid(o.field, "must not be negative")
		}
	}

	if app.Age != nil && (*app.Age < 0 || *app.Age > 120) {
		return invalid("age", "out of range")
	}
	if app.JobTenureMonths != nil && *app.JobTenureMonths < 0 {
		return invalid("job_tenure_months", "must not be negative")
	}
	if app.CreditBureauScore != nil && *app.CreditBureauScore < 0 {
		return invalid("credit_bureau_score", "must not be negative")
	}

	switch app.RateMode {
	case "", models.RateModeAnnual, models.RateModeIndexPlusSpread:
	default:
		return invalid("rate_mode", "unknown rate mode "+string(app.RateMode))
	}

	return nil
}
