package models

import "time"

// Evaluation represents a stored pre-qualification
type Evaluation struct {
	ID          string            `json:"id"`
	Country     CountryCode       `json:"country"`
	Application LoanApplication   `json:"application"`
	Result      CalculationResult `json:"result"`
	CreatedAt   time.Time         `json:"created_at"`
}
