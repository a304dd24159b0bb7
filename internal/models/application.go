package models

// RateMode selects where the annual rate of an application comes from
type RateMode string

const (
	RateModeAnnual          RateMode = "annual"
	RateModeIndexPlusSpread RateMode = "indexPlusSpread"
)

// LoanApplication represents the raw input of a mortgage pre-qualification.
// Optional fields are pointers so an explicit zero differs from an absent value.
type LoanApplication struct {
	Country              CountryCode `json:"country"`
	ApplicantID          string      `json:"applicant_id,omitempty"`
	PropertyPrice        float64     `json:"property_price"`
	MonthlyIncome        float64     `json:"monthly_income"`
	ExistingMonthlyDebts float64     `json:"existing_monthly_debts"`
	RequestedLoanAmount  *float64    `json:"requested_loan_amount,omitempty"`
	DownPayment          *float64    `json:"down_payment,omitempty"`
	TermYears            float64     `json:"term_years"`
	NominalAnnualRate    *float64    `json:"nominal_annual_rate,omitempty"`
	RateMode             RateMode    `json:"rate_mode,omitempty"`
	ReferenceIndexRate   *float64    `json:"reference_index_rate,omitempty"`
	Spread               *float64    `json:"spread,omitempty"`

	Age                  *int     `json:"age,omitempty"`
	CreditBureauScore    *int     `json:"credit_bureau_score,omitempty"`
	JobTenureMonths      *int     `json:"job_tenure_months,omitempty"`
	HousingCategory      string   `json:"housing_category,omitempty"`
	HasSubsidy           bool     `json:"has_subsidy,omitempty"`
	MinimumVitalExpenses *float64 `json:"minimum_vital_expenses,omitempty"`
	EmploymentType       string   `json:"employment_type,omitempty"`
	Modality             string   `json:"modality,omitempty"`
	City                 string   `json:"city,omitempty"`
}

// Employment types understood by the lender affinity rules
const (
	EmploymentSalaried     = "salaried"
	EmploymentSelfEmployed = "self_employed"
	EmploymentCivilServant = "civil_servant"
)

// Colombian credit modalities
const (
	ModalityPesos   = "credito_pesos"
	ModalityLeasing = "leasing"
	ModalityUVR     = "uvr"
)

// NormalizedLoan is the unambiguous loan derived from an application
type NormalizedLoan struct {
	PropertyPrice          float64  `json:"property_price"`
	TotalCost              float64  `json:"total_cost"`
	DownPayment            float64  `json:"down_payment"`
	FinancingNeeded        float64  `json:"financing_needed"`
	Principal              float64  `json:"principal"`
	ExplicitPrincipal      bool     `json:"explicit_principal"`
	FinancedPropertyAmount float64  `json:"financed_property_amount"`
	CashToClose            float64  `json:"cash_to_close"`
	RequestedTermYears     float64  `json:"requested_term_years"`
	EffectiveTermYears     float64  `json:"effective_term_years"`
	TermClamped            bool     `json:"term_clamped"`
	EffectiveAnnualRate    float64  `json:"effective_annual_rate"`
	RateSource             string   `json:"rate_source"`
	ReferenceIndexRate     *float64 `json:"reference_index_rate,omitempty"`
	Spread                 *float64 `json:"spread,omitempty"`
}
