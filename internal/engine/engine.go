package engine

import (
	"context"
	"fmt"

	"github.com/Dan9191/mortgage-service/internal/amortization"
	"github.com/Dan9191/mortgage-service/internal/models"
)

// Engine evaluates loan applications against country profiles. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	rates      RateBook
	strategies map[models.CountryCode]Strategy
}

// Option configures an Engine
type Option func(*Engine)

// WithRateBook sets the source of live lender quotes
func WithRateBook(r RateBook) Option {
	return func(e *Engine) {
		e.rates = r
	}
}

// WithStrategy replaces the strategy used for one country
func WithStrategy(code models.CountryCode, s Strategy) Option {
	return func(e *Engine) {
		e.strategies[code] = s
	}
}

// New initializes a new Engine
func New(opts ...Option) *Engine {
	e := &Engine{strategies: make(map[models.CountryCode]Strategy)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) strategy(code models.CountryCode) Strategy {
	if s, ok := e.strategies[code]; ok {
		return s
	}
	return StrategyFor(code)
}

// Evaluate runs the full pipeline for one application
func (e *Engine) Evaluate(ctx context.Context, app models.LoanApplication, profile models.CountryProfile) (models.CalculationResult, error) {
	loan, err := Normalize(app, profile)
	if err != nil {
		return models.CalculationResult{}, err
	}

	s := e.strategy(profile.Code)
	payment := amortization.MonthlyPayment(loan.Principal, loan.EffectiveAnnualRate, loan.EffectiveTermYears)

	a := Assessment{
		Application:    app,
		Profile:        profile,
		Loan:           loan,
		MonthlyPayment: payment,
		DTI:            DTI(payment, app.ExistingMonthlyDebts, app.MonthlyIncome),
		LTV:            LTV(loan.FinancedPropertyAmount, loan.PropertyPrice),
	}

	if !allFinite(payment, a.DTI) {
		return models.CalculationResult{}, invalid(principalField(loan), "monthly payment overflows")
	}

	score := Score(a, s)
	a.Score = score.Value

	compliance := CheckCompliance(a, s)
	approved, status := Decide(a.DTI, a.Score, compliance, profile)
	a.Approved = approved

	q, ratesFallback := e.quotes(ctx, profile.Code)

	total := amortization.TotalPayment(loan.Principal, loan.EffectiveAnnualRate, loan.EffectiveTermYears)
	maxPrincipal := amortization.MaxPrincipalForPayment(
		app.MonthlyIncome*profile.MaxDTI/100-app.ExistingMonthlyDebts,
		loan.EffectiveAnnualRate,
		loan.EffectiveTermYears,
	)
	maxPrice := 0.0
	if profile.MinimumDownPaymentRatio < 1 {
		maxPrice = maxPrincipal / (1 - profile.MinimumDownPaymentRatio)
	}

	result := models.CalculationResult{
		Country:                profile.Code,
		MonthlyPayment:         payment,
		TotalPayment:           total,
		TotalInterest:          total - loan.Principal,
		DTI:                    a.DTI,
		LTV:                    a.LTV,
		Score:                  a.Score,
		ScoreFactors:           score.Factors,
		LegallyCompliant:       compliance.Compliant,
		Violations:             compliance.Violations,
		Approved:               approved,
		Status:                 status,
		MaxAffordablePrincipal: maxPrincipal,
		MaxPurchasePrice:       maxPrice,
		CashToClose:            loan.CashToClose,
		LenderRankings:         rankLenders(a, s, q),
		Scenarios:              Project(a, s),
		RatesFallback:          ratesFallback,
		RequiredDocuments:      append([]string(nil), profile.RequiredDocuments...),
		Normalized:             loan,
	}
	sc := result.Scenarios
	switch {
	case !allFinite(total, sc.Fixed.MonthlyPayment, sc.Mixed.MonthlyPayment, sc.Variable.MonthlyPayment):
		return models.CalculationResult{}, invalid(principalField(loan), "total payment overflows")
	case !allFinite(maxPrincipal, maxPrice):
		return models.CalculationResult{}, invalid("monthly_income", "affordability figures overflow")
	}
	result.Warnings = warnings(a, result)

	return result, nil
}

// principalField names the input a principal was derived from
func principalField(loan models.NormalizedLoan) string {
	if loan.ExplicitPrincipal {
		return "requested_loan_amount"
	}
	return "property_price"
}

// quotes takes one snapshot of the rate book. Any failure degrades to the
// static table and is reported through the fallback flag.
func (e *Engine) quotes(ctx context.Context, country models.CountryCode) (quotes, bool) {
	q := quotes{fallback: FallbackRates[country]}
	if e.rates == nil {
		return q, true
	}

	live, err := e.rates.Rates(ctx, country)
	if err != nil || ValidateRates(live) != nil {
		return q, true
	}
	q.live = live
	return q, false
}

func warnings(a Assessment, r models.CalculationResult) []string {
	p := a.Profile
	out := []string{}

	if a.Application.MonthlyIncome > 0 && a.DTI > p.MaxDTI {
		out = append(out, fmt.Sprintf("DTI of %.1f%% exceeds the %.0f%% maximum", a.DTI, p.MaxDTI))
	}
	if a.LTV > p.MaxLTV+ratioTolerance {
		out = append(out, fmt.Sprintf("LTV of %.1f%% exceeds the %.0f%% maximum", a.LTV, p.MaxLTV))
	}
	if p.HighLiquidityThreshold > 0 && a.Loan.CashToClose > p.HighLiquidityThreshold {
		out = append(out, fmt.Sprintf("high liquidity required: %.0f %s at closing", a.Loan.CashToClose, p.Currency.Code))
	}
	if a.Loan.TermClamped {
		out = append(out, fmt.Sprintf("term reduced from %.0f to %.0f years", a.Loan.RequestedTermYears, a.Loan.EffectiveTermYears))
	}
	if r.RatesFallback {
		out = append(out, "live lender rates unavailable, showing estimated rates")
	}
	return out
}
