package engine

import (
	"math"
	"sort"

	"github.com/Dan9191/mortgage-service/internal/models"
)

const (
	scoreWeight        = 0.9
	affinityWeight     = 0.1
	strongScore        = 85
	strongScoreBonus   = 5
	weakScore          = 40
	weakScorePenalty   = 10
	minProbability     = 10
	maxProbability     = 99
	notApprovedCeiling = 60
)

// quotes is the rate snapshot used for one evaluation
type quotes struct {
	live     []models.LenderRate
	fallback []models.LenderRate
}

// rankLenders estimates the approval probability at every lender of the
// profile, highest first. Lenders with equal probability keep profile order.
func rankLenders(a Assessment, s Strategy, q quotes) []models.LenderRanking {
	base := a.Loan.EffectiveAnnualRate
	adjustment := s.RateAdjustment(a)
	category := quoteCategory(a.Application, a.Profile.Code)

	rankings := make([]models.LenderRanking, 0, len(a.Profile.Lenders))
	for _, l := range a.Profile.Lenders {
		r := models.LenderRanking{
			Name:               l.Name,
			ProbabilityPercent: probability(l, a, s),
			Note:               l.Note,
			MaxLTV:             a.Profile.MaxLTV / 100,
		}

		if quote, ok := findQuote(q.live, l.Name, category, a.Application.Modality); ok {
			r.QuotedRate = quote.AnnualRate
			r.MaxLTV = quote.MaxLTV
			r.RateSource = models.RateSourceLive
		} else if quote, ok := findQuote(q.fallback, l.Name, category, a.Application.Modality); ok {
			r.QuotedRate = quote.AnnualRate
			r.MaxLTV = quote.MaxLTV
			r.RateSource = models.RateSourceFallback
		} else {
			r.QuotedRate = base + l.RateAdjustment + adjustment
			r.RateSource = models.RateSourceFallback
		}
		r.RateAdjustment = r.QuotedRate - base

		rankings = append(rankings, r)
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].ProbabilityPercent > rankings[j].ProbabilityPercent
	})
	return rankings
}

func probability(l models.LenderProfile, a Assessment, s Strategy) float64 {
	p := scoreWeight*a.Score + affinityWeight*l.BaseAffinityWeight
	switch {
	case a.Score >= strongScore:
		p += strongScoreBonus
	case a.Score < weakScore:
		p -= weakScorePenalty
	}
	p += s.LenderAffinity(l, a)

	if !a.Approved {
		p = math.Min(p, notApprovedCeiling)
	}
	return math.Round(math.Max(minProbability, math.Min(maxProbability, p)))
}
