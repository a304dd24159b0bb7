package models

// CountryCode is an ISO 3166-1 alpha-2 country code
type CountryCode string

const (
	Spain     CountryCode = "ES"
	Colombia  CountryCode = "CO"
	Mexico    CountryCode = "MX"
	Argentina CountryCode = "AR"
	Chile     CountryCode = "CL"
	Peru      CountryCode = "PE"
	USA       CountryCode = "US"
)

// Currency describes how amounts are displayed for a country
type Currency struct {
	Code     string `json:"code"`
	Symbol   string `json:"symbol"`
	Locale   string `json:"locale"`
	Decimals int32  `json:"decimals"`
}

// LenderProfile represents a lender operating in a country
type LenderProfile struct {
	Name               string  `json:"name"`
	BaseAffinityWeight float64 `json:"base_affinity_weight"`
	Note               string  `json:"note"`
	RateAdjustment     float64 `json:"rate_adjustment"` // percentage points over the country base rate
}

// IncomeBracket grants Bonus points when monthly income is strictly above Above
type IncomeBracket struct {
	Above float64 `json:"above"`
	Bonus float64 `json:"bonus"`
}

// BureauScale holds the credit bureau score cut-offs of a country
type BureauScale struct {
	Name      string `json:"name"`
	Excellent int    `json:"excellent"`
	Good      int    `json:"good"`
	Fair      int    `json:"fair"`
}

// CountryProfile holds the static mortgage rules of a country
type CountryProfile struct {
	Code                       CountryCode        `json:"code"`
	Name                       string             `json:"name"`
	Currency                   Currency           `json:"currency"`
	TaxesAndFeesRate           float64            `json:"taxes_and_fees_rate"`
	MinimumDownPaymentRatio    float64            `json:"minimum_down_payment_ratio"`
	SubsidizedDownPaymentRatio float64            `json:"subsidized_down_payment_ratio,omitempty"`
	MaxDTI                     float64            `json:"max_dti"`
	MaxLTV                     float64            `json:"max_ltv"`
	IndexName                  string             `json:"index_name,omitempty"`
	ReferenceIndexRate         *float64           `json:"reference_index_rate,omitempty"`
	DefaultSpread              *float64           `json:"default_spread,omitempty"`
	DefaultAnnualRate          float64            `json:"default_annual_rate"`
	MaxTermYears               float64            `json:"max_term_years"`
	MinimumAge                 int                `json:"minimum_age"`
	LegalMaxAge                int                `json:"legal_max_age"`
	MinimumScore               float64            `json:"minimum_score"`
	MinJobTenureMonths         int                `json:"min_job_tenure_months"`
	MinBureauScore             int                `json:"min_bureau_score,omitempty"`
	BureauScale                BureauScale        `json:"bureau_scale"`
	IncomeBrackets             []IncomeBracket    `json:"income_brackets"`
	HousingCategoryBonus       map[string]float64 `json:"housing_category_bonus,omitempty"`
	IncomeWithholdingRate      float64            `json:"income_withholding_rate,omitempty"`
	MinimumVitalExpenses       float64            `json:"minimum_vital_expenses,omitempty"`
	HighLiquidityThreshold     float64            `json:"high_liquidity_threshold"`
	Lenders                    []LenderProfile    `json:"lenders"`
	RequiredDocuments          []string           `json:"required_documents"`
}

// HasIndex reports whether the country publishes a reference index for variable rates
func (p CountryProfile) HasIndex() bool {
	return p.ReferenceIndexRate != nil
}

// LenderIndex returns the position of a lender in the profile, or -1
func (p CountryProfile) LenderIndex(name string) int {
	for i, l := range p.Lenders {
		if l.Name == name {
			return i
		}
	}
	return -1
}
