package models

import "time"

// LenderRate is a mortgage rate quoted by a lender
type LenderRate struct {
	Lender          string    `json:"lender"`
	HousingCategory string    `json:"housing_category,omitempty"`
	Modality        string    `json:"modality,omitempty"`
	AnnualRate      float64   `json:"annual_rate"` // percent
	MaxLTV          float64   `json:"max_ltv"`     // fraction of the property price
	UpdatedAt       time.Time `json:"updated_at"`
}

// IndexRate is a published reference index observation
type IndexRate struct {
	Name        string    `json:"name"`
	Rate        float64   `json:"rate"`
	Period      string    `json:"period"`
	RetrievedAt time.Time `json:"retrieved_at"`
}

// BureauReport is a credit bureau lookup for one applicant
type BureauReport struct {
	ApplicantID string    `json:"applicant_id"`
	Score       int       `json:"score"`
	RiskLevel   string    `json:"risk_level"`
	ReportID    string    `json:"report_id"`
	ValidUntil  time.Time `json:"valid_until"`
}
