package models

// Approval statuses
const (
	StatusApproved = "approved"
	StatusReview   = "review"
	StatusRejected = "rejected"
)

// Rate sources shown next to each lender figure
const (
	RateSourceLive     = "live"
	RateSourceFallback = "fallback"
)

// ScoreFactor is one additive contribution to the eligibility score
type ScoreFactor struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}

// LenderRanking is the estimated approval probability at one lender
type LenderRanking struct {
	Name               string  `json:"name"`
	ProbabilityPercent float64 `json:"probability_percent"`
	RateAdjustment     float64 `json:"rate_adjustment"`
	Note               string  `json:"note"`
	QuotedRate         float64 `json:"quoted_rate"`
	RateSource         string  `json:"rate_source"`
	MaxLTV             float64 `json:"max_ltv,omitempty"`
}

// Scenario is the monthly payment under one rate assumption
type Scenario struct {
	AnnualRate     float64 `json:"annual_rate"`
	MonthlyPayment float64 `json:"monthly_payment"`
}

// Scenarios compares fixed, mixed and variable rate assumptions
type Scenarios struct {
	Fixed    Scenario `json:"fixed"`
	Mixed    Scenario `json:"mixed"`
	Variable Scenario `json:"variable"`
}

// CalculationResult represents the outcome of evaluating one application
type CalculationResult struct {
	Country                CountryCode     `json:"country"`
	MonthlyPayment         float64         `json:"monthly_payment"`
	TotalPayment           float64         `json:"total_payment"`
	TotalInterest          float64         `json:"total_interest"`
	DTI                    float64         `json:"dti"`
	LTV                    float64         `json:"ltv"`
	Score                  float64         `json:"score"`
	ScoreFactors           []ScoreFactor   `json:"score_factors"`
	LegallyCompliant       bool            `json:"legally_compliant"`
	Violations             []string        `json:"violations"`
	Approved               bool            `json:"approved"`
	Status                 string          `json:"status"`
	MaxAffordablePrincipal float64         `json:"max_affordable_principal"`
	MaxPurchasePrice       float64         `json:"max_purchase_price"`
	CashToClose            float64         `json:"cash_to_close"`
	LenderRankings         []LenderRanking `json:"lender_rankings"`
	Scenarios              Scenarios       `json:"scenarios"`
	RatesFallback          bool            `json:"rates_fallback"`
	ProfileFallback        bool            `json:"profile_fallback"`
	Warnings               []string        `json:"warnings"`
	RequiredDocuments      []string        `json:"required_documents"`
	Normalized             NormalizedLoan  `json:"normalized"`
}
