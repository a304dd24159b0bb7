package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Dan9191/mortgage-service/internal/amortization"
	"github.com/Dan9191/mortgage-service/internal/engine"
	"github.com/Dan9191/mortgage-service/internal/models"
	"github.com/Dan9191/mortgage-service/internal/profiles"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// IndexKey is the cache key of the Euribor observation
const IndexKey = "euribor12m"

// Sources of the reference index shown by IndexRate
const (
	IndexSourceLive    = "live"
	IndexSourceProfile = "profile"
)

// Cache is the read side of a ratecache.Cache
type Cache[T any] interface {
	Get(ctx context.Context, key string) (T, error)
	Refresh(ctx context.Context, key string) error
}

// EvaluationRepository stores evaluations
type EvaluationRepository interface {
	CreateEvaluation(ctx context.Context, e *models.Evaluation) error
	FindEvaluationByID(ctx context.Context, id string) (*models.Evaluation, error)
}

// Observer receives evaluation outcomes
type Observer interface {
	ObserveEvaluation(country, status string, ratesFallback bool)
	ObserveEvaluationError(kind string)
}

// Service handles business logic
type Service struct {
	profiles      *profiles.Store
	engine        *engine.Engine
	repo          EvaluationRepository
	log           *logrus.Logger
	rates         Cache[[]models.LenderRate]
	index         Cache[models.IndexRate]
	bureau        Cache[models.BureauReport]
	observer      Observer
	allowFallback bool
	newID         func() string
}

// Option configures a Service
type Option func(*Service)

// WithRateCache sets the cached lender rate feed
func WithRateCache(c Cache[[]models.LenderRate]) Option {
	return func(s *Service) { s.rates = c }
}

// WithIndexCache sets the cached reference index feed
func WithIndexCache(c Cache[models.IndexRate]) Option {
	return func(s *Service) { s.index = c }
}

// WithBureauCache sets the cached credit bureau
func WithBureauCache(c Cache[models.BureauReport]) Option {
	return func(s *Service) { s.bureau = c }
}

// WithObserver sets the receiver of evaluation outcomes
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithCountryFallback evaluates unknown countries with the default profile
func WithCountryFallback(allow bool) Option {
	return func(s *Service) { s.allowFallback = allow }
}

// NewService initializes a new service
func NewService(store *profiles.Store, eng *engine.Engine, repo EvaluationRepository, log *logrus.Logger, opts ...Option) *Service {
	s := &Service{
		profiles: store,
		engine:   eng,
		repo:     repo,
		log:      log,
		observer: nopObserver{},
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate resolves the country profile, enriches the application from the
// external feeds and runs the engine.
func (s *Service) Evaluate(ctx context.Context, app models.LoanApplication) (models.CalculationResult, error) {
	profile, fellBack, err := s.profiles.Resolve(string(app.Country), s.allowFallback)
	if err != nil {
		s.observer.ObserveEvaluationError(engine.Kind(err))
		return models.CalculationResult{}, err
	}

	var notes []string
	if fellBack {
		notes = append(notes, fmt.Sprintf("no rules for country %q, evaluated with %s rules", app.Country, profile.Code))
		s.log.WithField("country", app.Country).Warn("Evaluating with fallback profile")
	}
	app.Country = profile.Code

	profile, note := s.withLiveIndex(ctx, profile)
	if note != "" {
		notes = append(notes, note)
	}

	app, note = s.withBureauScore(ctx, app)
	if note != "" {
		notes = append(notes, note)
	}

	result, err := s.engine.Evaluate(ctx, app, profile)
	if err != nil {
		s.observer.ObserveEvaluationError(engine.Kind(err))
		s.log.WithError(err).WithField("country", profile.Code).Info("Application rejected")
		return models.CalculationResult{}, err
	}

	result.ProfileFallback = fellBack
	result.Warnings = append(result.Warnings, notes...)
	s.observer.ObserveEvaluation(string(profile.Code), result.Status, result.RatesFallback)

	s.log.WithFields(logrus.Fields{
		"country":        profile.Code,
		"score":          result.Score,
		"status":         result.Status,
		"rates_fallback": result.RatesFallback,
	}).Info("Application evaluated")
	return result, nil
}

// SaveEvaluation evaluates an application and stores the outcome
func (s *Service) SaveEvaluation(ctx context.Context, app models.LoanApplication) (*models.Evaluation, error) {
	result, err := s.Evaluate(ctx, app)
	if err != nil {
		return nil, err
	}

	app.Country = result.Country
	e := &models.Evaluation{
		ID:          s.newID(),
		Country:     result.Country,
		Application: app,
		Result:      result,
	}
	if err := s.repo.CreateEvaluation(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to save evaluation: %w", err)
	}

	s.log.WithField("evaluation_id", e.ID).Info("Evaluation saved")
	return e, nil
}

// GetEvaluation returns a stored evaluation
func (s *Service) GetEvaluation(ctx context.Context, id string) (*models.Evaluation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, &engine.InputError{Field: "id", Reason: "not a valid uuid", Err: engine.ErrInvalidInput}
	}
	return s.repo.FindEvaluationByID(ctx, id)
}

// Countries returns every supported profile
func (s *Service) Countries() []models.CountryProfile {
	return s.profiles.All()
}

// Country returns one profile without falling back
func (s *Service) Country(code string) (models.CountryProfile, error) {
	p, _, err := s.profiles.Resolve(code, false)
	return p, err
}

// Rates returns the lender quotes of a country. When the feed cannot answer
// the static table is returned with fallback set.
func (s *Service) Rates(ctx context.Context, code string) ([]models.LenderRate, bool, error) {
	profile, err := s.Country(code)
	if err != nil {
		return nil, false, err
	}

	if s.rates != nil {
		live, err := s.rates.Get(ctx, string(profile.Code))
		if err == nil && engine.ValidateRates(live) == nil {
			return live, false, nil
		}
		s.log.WithError(err).WithField("country", profile.Code).Warn("Lender rates unavailable, using fallback table")
	}

	return append([]models.LenderRate(nil), engine.FallbackRates[profile.Code]...), true, nil
}

// IndexRate returns the current Euribor 12M and where it came from
func (s *Service) IndexRate(ctx context.Context) (models.IndexRate, string) {
	if s.index != nil {
		rate, err := s.index.Get(ctx, IndexKey)
		if err == nil {
			return rate, IndexSourceLive
		}
		s.log.WithError(err).Warn("Reference index unavailable, using profile default")
	}

	p, _, _ := s.profiles.Resolve(string(profiles.DefaultCountry), true)
	rate := models.IndexRate{Name: p.IndexName}
	if p.ReferenceIndexRate != nil {
		rate.Rate = *p.ReferenceIndexRate
	}
	return rate, IndexSourceProfile
}

// Schedule builds the amortization table of a loan, rounded to the currency
// of the country.
func (s *Service) Schedule(code string, principal, annualRate, years float64, start time.Time) ([]amortization.Entry, error) {
	profile, err := s.Country(code)
	if err != nil {
		return nil, err
	}

	switch {
	case math.IsNaN(principal) || principal <= 0:
		return nil, &engine.InputError{Field: "principal", Reason: "must be a positive number", Err: engine.ErrInvalidInput}
	case math.IsNaN(annualRate) || annualRate < 0 || annualRate >= 100:
		return nil, &engine.InputError{Field: "rate", Reason: "must be between 0 and 100", Err: engine.ErrInvalidInput}
	case math.IsNaN(years) || amortization.Periods(years) <= 0 || years > profile.MaxTermYears:
		return nil, &engine.InputError{Field: "years", Reason: fmt.Sprintf("must be between one month and %.0f years", profile.MaxTermYears), Err: engine.ErrInvalidInput}
	}

	return amortization.Schedule(principal, annualRate, years, start, profile.Currency.Decimals), nil
}

// WarmUp refreshes the cached feeds of every country
func (s *Service) WarmUp(ctx context.Context) error {
	var errs []error
	if s.index != nil {
		if err := s.index.Refresh(ctx, IndexKey); err != nil {
			errs = append(errs, err)
		}
	}
	if s.rates != nil {
		for _, code := range s.profiles.Codes() {
			if err := s.rates.Refresh(ctx, string(code)); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// withLiveIndex replaces the profile index with the published observation
// when the profile follows Euribor.
func (s *Service) withLiveIndex(ctx context.Context, p models.CountryProfile) (models.CountryProfile, string) {
	if s.index == nil || !p.HasIndex() || !strings.HasPrefix(p.IndexName, "Euribor") {
		return p, ""
	}

	rate, err := s.index.Get(ctx, IndexKey)
	if err != nil {
		s.log.WithError(err).Warn("Reference index unavailable, using profile default")
		return p, fmt.Sprintf("%s unavailable, using the reference value of %.2f%%", p.IndexName, *p.ReferenceIndexRate)
	}

	live := rate.Rate
	p.ReferenceIndexRate = &live
	return p, ""
}

// withBureauScore fills the bureau score of identified applicants that did
// not declare one.
func (s *Service) withBureauScore(ctx context.Context, app models.LoanApplication) (models.LoanApplication, string) {
	if s.bureau == nil || app.CreditBureauScore != nil || strings.TrimSpace(app.ApplicantID) == "" {
		return app, ""
	}

	report, err := s.bureau.Get(ctx, app.ApplicantID)
	if err != nil {
		s.log.WithError(err).Warn("Credit bureau unavailable")
		return app, "credit bureau unavailable, evaluated without bureau score"
	}

	score := report.Score
	app.CreditBureauScore = &score
	return app, ""
}

// RateBook adapts the lender rate cache to the engine
func RateBook(c Cache[[]models.LenderRate]) engine.RateBook {
	return rateBook{cache: c}
}

type rateBook struct {
	cache Cache[[]models.LenderRate]
}

func (r rateBook) Rates(ctx context.Context, country models.CountryCode) ([]models.LenderRate, error) {
	return r.cache.Get(ctx, string(country))
}

type nopObserver struct{}

func (nopObserver) ObserveEvaluation(string, string, bool) {}

func (nopObserver) ObserveEvaluationError(string) {}
