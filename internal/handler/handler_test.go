package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dan9191/mortgage-service/internal/engine"
	"github.com/Dan9191/mortgage-service/internal/models"
	"github.com/Dan9191/mortgage-service/internal/profiles"
	"github.com/Dan9191/mortgage-service/internal/repository"
	"github.com/Dan9191/mortgage-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spainBody = `{
	"country": "ES",
	"property_price": 200000,
	"monthly_income": 3000,
	"existing_monthly_debts": 0,
	"down_payment": 40000,
	"term_years": 25,
	"nominal_annual_rate": 3.5,
	"age": 35
}`

func newRouter(t *testing.T) *mux.Router {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	svc := service.NewService(profiles.Default(), engine.New(), repository.NewMemoryRepository(), log)
	r := mux.NewRouter()
	NewHandler(svc, log).Routes(r)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, reader))
	return w
}

func TestEvaluate_OK(t *testing.T) {
	w := do(newRouter(t), http.MethodPost, "/evaluate", spainBody)
	require.Equal(t, http.StatusOK, w.Code)

	var resp evaluateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Empty(t, resp.EvaluationID)
	assert.Equal(t, models.Spain, resp.Result.Country)
	assert.InDelta(t, 80.0, resp.Result.LTV, 0.01)
	assert.Len(t, resp.Result.LenderRankings, 4)

	cents := resp.Result.MonthlyPayment * 100
	assert.InDelta(t, cents, float64(int64(cents+0.5)), 1e-6)
}

func TestEvaluate_SaveAndFetch(t *testing.T) {
	r := newRouter(t)

	w := do(r, http.MethodPost, "/evaluate?save=true", spainBody)
	require.Equal(t, http.StatusOK, w.Code)

	var resp evaluateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.EvaluationID)

	w = do(r, http.MethodGet, "/evaluations/"+resp.EvaluationID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Evaluation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stored))
	assert.Equal(t, resp.EvaluationID, stored.ID)
	assert.Equal(t, resp.Result.MonthlyPayment, stored.Result.MonthlyPayment)
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		kind   string
	}{
		{"bad json", `{invalid-json}`, http.StatusBadRequest, kindBadRequest},
		{"negative price", `{"country": "ES", "property_price": -5, "monthly_income": 3000, "term_years": 25}`, http.StatusUnprocessableEntity, engine.KindInvalidInput},
		{"zero rate", `{"country": "ES", "property_price": 200000, "monthly_income": 3000, "term_years": 25, "nominal_annual_rate": 0}`, http.StatusUnprocessableEntity, engine.KindUnresolvableRate},
		{"index without profile index", `{"country": "CO", "property_price": 200000000, "monthly_income": 9000000, "term_years": 20, "rate_mode": "indexPlusSpread"}`, http.StatusUnprocessableEntity, engine.KindUnresolvableRate},
		{"overflowing price", `{"country": "ES", "property_price": 1.7e308, "monthly_income": 3000, "term_years": 25}`, http.StatusUnprocessableEntity, engine.KindInvalidInput},
		{"overflowing loan amount", `{"country": "ES", "property_price": 200000, "requested_loan_amount": 1.7e308, "monthly_income": 3000, "term_years": 25}`, http.StatusUnprocessableEntity, engine.KindInvalidInput},
		{"unknown country", `{"country": "ZZ", "property_price": 200000, "monthly_income": 3000, "term_years": 25}`, http.StatusNotFound, engine.KindUnsupportedCountry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(newRouter(t), http.MethodPost, "/evaluate", tt.body)
			assert.Equal(t, tt.status, w.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.kind, resp.Error)
		})
	}
}

func TestEvaluate_InvalidInputNamesField(t *testing.T) {
	w := do(newRouter(t), http.MethodPost, "/evaluate", `{"country": "ES", "property_price": 200000, "monthly_income": -1, "term_years": 25}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "monthly_income", resp.Field)
}

func TestEvaluate_MethodNotAllowed(t *testing.T) {
	w := do(newRouter(t), http.MethodGet, "/evaluate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestGetEvaluation_NotFound(t *testing.T) {
	r := newRouter(t)

	w := do(r, http.MethodGet, "/evaluations/6f1c2a3b-4d5e-4f60-8a7b-9c0d1e2f3a4b", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/evaluations/nope", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCountries(t *testing.T) {
	r := newRouter(t)

	w := do(r, http.MethodGet, "/countries", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.CountryProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, len(profiles.Default().Codes()))

	w = do(r, http.MethodGet, "/countries/co", "")
	require.Equal(t, http.StatusOK, w.Code)
	var p models.CountryProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, models.Colombia, p.Code)

	w = do(r, http.MethodGet, "/countries/ZZ", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRates_Fallback(t *testing.T) {
	w := do(newRouter(t), http.MethodGet, "/rates/CO", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ratesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Fallback)
	assert.Equal(t, models.RateSourceFallback, resp.Source)
	assert.Len(t, resp.Rates, len(engine.FallbackRates[models.Colombia]))
}

func TestGetIndexRate(t *testing.T) {
	w := do(newRouter(t), http.MethodGet, "/index-rate", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp indexResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, service.IndexSourceProfile, resp.Source)
	assert.Greater(t, resp.Rate, 0.0)
}

func TestGetAmortization(t *testing.T) {
	r := newRouter(t)

	w := do(r, http.MethodGet, "/amortization?principal=120000&rate=3&years=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	assert.Len(t, entries, 12)

	w = do(r, http.MethodGet, "/amortization?principal=abc&rate=3&years=1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/amortization?principal=120000&rate=3&years=0", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHealth(t *testing.T) {
	w := do(newRouter(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
