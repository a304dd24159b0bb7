package engine

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Dan9191/mortgage-service/internal/models"
)

// RateBook supplies current lender quotes for a country
type RateBook interface {
	Rates(ctx context.Context, country models.CountryCode) ([]models.LenderRate, error)
}

// Housing category keys used by quotes
const (
	CategoryAffordable = "VIS"
	CategoryStandard   = "NO_VIS"
)

// FallbackRates is the static quote table used when no feed answers
var FallbackRates = map[models.CountryCode][]models.LenderRate{
	models.Colombia: {
		{Lender: "Bancolombia", HousingCategory: CategoryAffordable, Modality: models.ModalityPesos, AnnualRate: 13.2, MaxLTV: 0.90},
		{Lender: "Bancolombia", HousingCategory: CategoryStandard, Modality: models.ModalityPesos, AnnualRate: 13.8, MaxLTV: 0.70},
		{Lender: "Bancolombia", HousingCategory: CategoryStandard, Modality: models.ModalityLeasing, AnnualRate: 14.1, MaxLTV: 0.75},
		{Lender: "Davivienda", HousingCategory: CategoryAffordable, Modality: models.ModalityPesos, AnnualRate: 13.0, MaxLTV: 0.90},
		{Lender: "Davivienda", HousingCategory: CategoryStandard, Modality: models.ModalityPesos, AnnualRate: 13.7, MaxLTV: 0.70},
	},
}

// ValidateRates rejects quotes outside 0 < rate < 30 and 0 < maxLTV <= 1
func ValidateRates(rates []models.LenderRate) error {
	for _, r := range rates {
		if strings.TrimSpace(r.Lender) == "" {
			return fmt.Errorf("quote without lender")
		}
		if math.IsNaN(r.AnnualRate) || r.AnnualRate <= 0 || r.AnnualRate >= 30 {
			return fmt.Errorf("%s: annual rate %.2f out of range", r.Lender, r.AnnualRate)
		}
		if math.IsNaN(r.MaxLTV) || r.MaxLTV <= 0 || r.MaxLTV > 1 {
			return fmt.Errorf("%s: max LTV %.2f out of range", r.Lender, r.MaxLTV)
		}
	}
	return nil
}

func quoteCategory(app models.LoanApplication, country models.CountryCode) string {
	c := housingCategory(app)
	if country == models.Colombia {
		if c == "VIS" || c == "VIP" {
			return CategoryAffordable
		}
		return CategoryStandard
	}
	return c
}

// findQuote picks the quote of a lender that best matches the application.
// Empty category or modality on a quote matches anything.
func findQuote(rates []models.LenderRate, lender, category, modality string) (models.LenderRate, bool) {
	best, bestRank := models.LenderRate{}, -1
	for _, r := range rates {
		if !strings.EqualFold(r.Lender, lender) {
			continue
		}

		rank := 0
		switch {
		case r.HousingCategory == "":
		case strings.EqualFold(r.HousingCategory, category):
			rank += 2
		default:
			continue
		}
		switch {
		case r.Modality == "" || modality == "":
		case strings.EqualFold(r.Modality, modality):
			rank++
		default:
			continue
		}

		if rank > bestRank {
			best, bestRank = r, rank
		}
	}
	return best, bestRank >= 0
}
