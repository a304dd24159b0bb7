package engine

import (
	"math"

	"github.com/Dan9191/mortgage-service/internal/models"
)

const (
	baseScore       = 50
	maxSignalPoints = 25
)

// ScoreResult is the eligibility score with the factors that produced it
type ScoreResult struct {
	Value   float64
	Factors []models.ScoreFactor
}

// Score computes the 0-100 eligibility score of an assessment
func Score(a Assessment, s Strategy) ScoreResult {
	income := a.Application.MonthlyIncome
	factors := []models.ScoreFactor{
		{Name: "base", Points: baseScore},
		{Name: "dti", Points: dtiPoints(a.DTI, income)},
		{Name: "income", Points: incomePoints(income, a.Profile.IncomeBrackets)},
		{Name: "existing_debt", Points: debtPoints(a.Application.ExistingMonthlyDebts, income)},
	}

	for _, f := range s.RiskSignals(a) {
		f.Points = math.Max(-maxSignalPoints, math.Min(maxSignalPoints, f.Points))
		factors = append(factors, f)
	}

	total := 0.0
	for _, f := range factors {
		total += f.Points
	}

	return ScoreResult{
		Value:   math.Round(math.Max(0, math.Min(100, total))),
		Factors: factors,
	}
}

func dtiPoints(dti, income float64) float64 {
	if income <= 0 {
		return -10
	}
	switch {
	case dti <= 20:
		return 40
	case dti <= 30:
		return 35
	case dti <= 35:
		return 25
	case dti <= 40:
		return 15
	case dti <= 50:
		return 5
	default:
		return -10
	}
}

// incomePoints expects brackets sorted by descending threshold
func incomePoints(income float64, brackets []models.IncomeBracket) float64 {
	for _, b := range brackets {
		if income > b.Above {
			return b.Bonus
		}
	}
	return 0
}

func debtPoints(debts, income float64) float64 {
	if debts == 0 {
		return 15
	}
	if income <= 0 {
		return -5
	}

	ratio := debts / income
	switch {
	case ratio < 0.2:
		return 10
	case ratio < 0.3:
		return 5
	default:
		return -5
	}
}
