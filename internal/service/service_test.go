package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/Dan9191/mortgage-service/internal/engine"
	"github.com/Dan9191/mortgage-service/internal/models"
	"github.com/Dan9191/mortgage-service/internal/profiles"
	"github.com/Dan9191/mortgage-service/internal/repository"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache[T any] struct {
	mu        sync.Mutex
	values    map[string]T
	err       error
	refreshed []string
}

func (f *fakeCache[T]) Get(_ context.Context, key string) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero T
	if f.err != nil {
		return zero, f.err
	}
	v, ok := f.values[key]
	if !ok {
		return zero, engine.ErrExternalFeedUnavailable
	}
	return v, nil
}

func (f *fakeCache[T]) Refresh(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshed = append(f.refreshed, key)
	return f.err
}

type countingObserver struct {
	evaluations []string
	errors      []string
}

func (o *countingObserver) ObserveEvaluation(country, status string, _ bool) {
	o.evaluations = append(o.evaluations, country+":"+status)
}

func (o *countingObserver) ObserveEvaluationError(kind string) {
	o.errors = append(o.errors, kind)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func f64(v float64) *float64 { return &v }

func spainApplication() models.LoanApplication {
	return models.LoanApplication{
		Country:       models.Spain,
		PropertyPrice: 200_000,
		MonthlyIncome: 3_000,
		DownPayment:   f64(40_000),
		TermYears:     25,
		RateMode:      models.RateModeIndexPlusSpread,
	}
}

func newTestService(opts ...Option) *Service {
	return NewService(profiles.Default(), engine.New(), repository.NewMemoryRepository(), quietLogger(), opts...)
}

func TestEvaluate_UsesLiveIndex(t *testing.T) {
	index := &fakeCache[models.IndexRate]{values: map[string]models.IndexRate{
		IndexKey: {Name: "Euribor 12M", Rate: 2.2},
	}}
	obs := &countingObserver{}
	svc := newTestService(WithIndexCache(index), WithObserver(obs))

	result, err := svc.Evaluate(context.Background(), spainApplication())
	require.NoError(t, err)

	require.NotNil(t, result.Normalized.ReferenceIndexRate)
	assert.InDelta(t, 2.2, *result.Normalized.ReferenceIndexRate, 1e-9)
	assert.InDelta(t, 3.2, result.Normalized.EffectiveAnnualRate, 1e-9)
	assert.Len(t, obs.evaluations, 1)
}

func TestEvaluate_IndexUnavailable(t *testing.T) {
	index := &fakeCache[models.IndexRate]{err: engine.ErrExternalFeedUnavailable}
	svc := newTestService(WithIndexCache(index))

	result, err := svc.Evaluate(context.Background(), spainApplication())
	require.NoError(t, err)

	profile, _ := profiles.Default().Lookup("ES")
	assert.InDelta(t, *profile.ReferenceIndexRate+*profile.DefaultSpread, result.Normalized.EffectiveAnnualRate, 1e-9)
	assert.Contains(t, result.Warnings[len(result.Warnings)-1], "unavailable")
}

func TestEvaluate_CountryFallback(t *testing.T) {
	app := spainApplication()
	app.Country = "ZZ"

	obs := &countingObserver{}
	_, err := newTestService(WithObserver(obs)).Evaluate(context.Background(), app)
	assert.ErrorIs(t, err, engine.ErrUnsupportedCountry)
	assert.Equal(t, []string{engine.KindUnsupportedCountry}, obs.errors)

	result, err := newTestService(WithCountryFallback(true)).Evaluate(context.Background(), app)
	require.NoError(t, err)
	assert.True(t, result.ProfileFallback)
	assert.Equal(t, profiles.DefaultCountry, result.Country)
}

func TestEvaluate_BureauEnrichment(t *testing.T) {
	bureau := &fakeCache[models.BureauReport]{values: map[string]models.BureauReport{
		"1020304050": {ApplicantID: "1020304050", Score: 810},
	}}
	svc := newTestService(WithBureauCache(bureau))

	app := models.LoanApplication{
		Country:              models.Colombia,
		ApplicantID:          "1020304050",
		PropertyPrice:        150_000_000,
		MonthlyIncome:        4_000_000,
		ExistingMonthlyDebts: 1_500_000,
		DownPayment:          f64(45_000_000),
		TermYears:            20,
	}
	with, err := svc.Evaluate(context.Background(), app)
	require.NoError(t, err)

	app.ApplicantID = ""
	without, err := svc.Evaluate(context.Background(), app)
	require.NoError(t, err)

	assert.Greater(t, with.Score, without.Score)
}

func TestEvaluate_NoBureauIgnoresApplicantID(t *testing.T) {
	svc := newTestService()

	app := models.LoanApplication{
		Country:              models.Colombia,
		PropertyPrice:        150_000_000,
		MonthlyIncome:        4_000_000,
		ExistingMonthlyDebts: 1_500_000,
		DownPayment:          f64(45_000_000),
		TermYears:            20,
	}
	base, err := svc.Evaluate(context.Background(), app)
	require.NoError(t, err)

	for _, id := range []string{"CC-1000", "CC-1001", "CC-1002", "CC-1003", "CC-1004"} {
		t.Run(id, func(t *testing.T) {
			app.ApplicantID = id
			got, err := svc.Evaluate(context.Background(), app)
			require.NoError(t, err)
			assert.Equal(t, base.Approved, got.Approved)
			assert.Equal(t, base.Status, got.Status)
			assert.Equal(t, base.Score, got.Score)
			assert.Equal(t, base.Violations, got.Violations)
		})
	}
}

func TestEvaluate_BureauUnavailable(t *testing.T) {
	bureau := &fakeCache[models.BureauReport]{err: errors.New("timeout")}
	svc := newTestService(WithBureauCache(bureau))

	app := spainApplication()
	app.ApplicantID = "X1"
	result, err := svc.Evaluate(context.Background(), app)
	require.NoError(t, err)
	assert.Contains(t, result.Warnings, "credit bureau unavailable, evaluated without bureau score")
}

func TestEvaluate_InvalidInput(t *testing.T) {
	obs := &countingObserver{}
	app := spainApplication()
	app.PropertyPrice = -1

	_, err := newTestService(WithObserver(obs)).Evaluate(context.Background(), app)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
	assert.Equal(t, []string{engine.KindInvalidInput}, obs.errors)
}

func TestSaveAndGetEvaluation(t *testing.T) {
	svc := newTestService()

	saved, err := svc.SaveEvaluation(context.Background(), spainApplication())
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := svc.GetEvaluation(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Result.MonthlyPayment, got.Result.MonthlyPayment)

	_, err = svc.GetEvaluation(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, engine.ErrInvalidInput)

	_, err = svc.GetEvaluation(context.Background(), "6f1c2a3b-4d5e-4f60-8a7b-9c0d1e2f3a4b")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

type failingRepository struct{}

func (failingRepository) CreateEvaluation(context.Context, *models.Evaluation) error {
	return errors.New("connection refused")
}

func (failingRepository) FindEvaluationByID(context.Context, string) (*models.Evaluation, error) {
	return nil, errors.New("connection refused")
}

func TestSaveEvaluation_RepositoryFailure(t *testing.T) {
	svc := NewService(profiles.Default(), engine.New(), failingRepository{}, quietLogger())

	_, err := svc.SaveEvaluation(context.Background(), spainApplication())
	assert.ErrorContains(t, err, "failed to save evaluation")
}

func TestRates(t *testing.T) {
	live := []models.LenderRate{{Lender: "Bancolombia", AnnualRate: 12.5, MaxLTV: 0.8}}
	rates := &fakeCache[[]models.LenderRate]{values: map[string][]models.LenderRate{"CO": live}}
	svc := newTestService(WithRateCache(rates))

	got, fallback, err := svc.Rates(context.Background(), "co")
	require.NoError(t, err)
	assert.False(t, fallback)
	assert.Equal(t, live, got)

	rates.err = engine.ErrExternalFeedUnavailable
	got, fallback, err = svc.Rates(context.Background(), "CO")
	require.NoError(t, err)
	assert.True(t, fallback)
	assert.Equal(t, engine.FallbackRates[models.Colombia], got)

	_, _, err = svc.Rates(context.Background(), "ZZ")
	assert.ErrorIs(t, err, engine.ErrUnsupportedCountry)
}

func TestIndexRate(t *testing.T) {
	svc := newTestService()
	rate, source := svc.IndexRate(context.Background())
	assert.Equal(t, IndexSourceProfile, source)
	assert.Equal(t, "Euribor 12M", rate.Name)

	index := &fakeCache[models.IndexRate]{values: map[string]models.IndexRate{IndexKey: {Name: "Euribor 12M", Rate: 2.17}}}
	rate, source = newTestService(WithIndexCache(index)).IndexRate(context.Background())
	assert.Equal(t, IndexSourceLive, source)
	assert.InDelta(t, 2.17, rate.Rate, 1e-9)
}

func TestSchedule(t *testing.T) {
	svc := newTestService()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	entries, err := svc.Schedule("ES", 100_000, 3, 10, start)
	require.NoError(t, err)
	assert.Len(t, entries, 120)
	assert.True(t, entries[len(entries)-1].RemainingBalance.IsZero())

	_, err = svc.Schedule("ES", 0, 3, 10, start)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
	_, err = svc.Schedule("ES", 100_000, 3, 45, start)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
	_, err = svc.Schedule("ZZ", 100_000, 3, 10, start)
	assert.ErrorIs(t, err, engine.ErrUnsupportedCountry)
}

func TestWarmUp(t *testing.T) {
	rates := &fakeCache[[]models.LenderRate]{}
	index := &fakeCache[models.IndexRate]{}
	svc := newTestService(WithRateCache(rates), WithIndexCache(index))

	require.NoError(t, svc.WarmUp(context.Background()))
	assert.Equal(t, []string{IndexKey}, index.refreshed)
	assert.Len(t, rates.refreshed, len(profiles.Default().Codes()))

	rates.err = engine.ErrExternalFeedUnavailable
	assert.ErrorIs(t, svc.WarmUp(context.Background()), engine.ErrExternalFeedUnavailable)
}

func TestWarmUp_WithoutRateFeed(t *testing.T) {
	index := &fakeCache[models.IndexRate]{}
	svc := newTestService(WithIndexCache(index))

	require.NoError(t, svc.WarmUp(context.Background()))
	assert.Equal(t, []string{IndexKey}, index.refreshed)

	rates, fallback, err := svc.Rates(context.Background(), "CO")
	require.NoError(t, err)
	assert.True(t, fallback)
	assert.NotEmpty(t, rates)
}
