package handler

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/Dan9191/mortgage-service/internal/engine"
	"github.com/Dan9191/mortgage-service/internal/models"
	"github.com/Dan9191/mortgage-service/internal/repository"
	"github.com/Dan9191/mortgage-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const maxBodySize = 1 << 20

// Error kinds only produced by the HTTP layer
const (
	kindBadRequest = "bad_request"
	kindNotFound   = "not_found"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type evaluateResponse struct {
	EvaluationID string                   `json:"evaluation_id,omitempty"`
	Result       models.CalculationResult `json:"result"`
}

type ratesResponse struct {
	Country  models.CountryCode  `json:"country"`
	Source   string              `json:"source"`
	Fallback bool                `json:"fallback"`
	Rates    []models.LenderRate `json:"rates"`
}

type indexResponse struct {
	models.IndexRate
	Source string `json:"source"`
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Routes registers every endpoint on r
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/evaluate", h.Evaluate).Methods(http.MethodPost)
	r.HandleFunc("/evaluations/{id}", h.GetEvaluation).Methods(http.MethodGet)
	r.HandleFunc("/countries", h.ListCountries).Methods(http.MethodGet)
	r.HandleFunc("/countries/{code}", h.GetCountry).Methods(http.MethodGet)
	r.HandleFunc("/rates/{country}", h.GetRates).Methods(http.MethodGet)
	r.HandleFunc("/index-rate", h.GetIndexRate).Methods(http.MethodGet)
	r.HandleFunc("/amortization", h.GetAmortization).Methods(http.MethodGet)
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Evaluate handles a pre-qualification request. With save=true the
// evaluation is stored and its id returned.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var app models.LoanApplication
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(&app); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: kindBadRequest, Message: "invalid JSON body"})
		return
	}

	save, _ := strconv.ParseBool(r.URL.Query().Get("save"))
	var resp evaluateResponse
	if save {
		e, err := h.svc.SaveEvaluation(r.Context(), app)
		if err != nil {
			h.writeError(w, err)
			return
		}
		resp = evaluateResponse{EvaluationID: e.ID, Result: e.Result}
	} else {
		result, err := h.svc.Evaluate(r.Context(), app)
		if err != nil {
			h.writeError(w, err)
			return
		}
		resp = evaluateResponse{Result: result}
	}

	resp.Result = h.present(resp.Result)
	h.writeJSON(w, http.StatusOK, resp)
}

// GetEvaluation returns a stored evaluation
func (h *Handler) GetEvaluation(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.GetEvaluation(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	e.Result = h.present(e.Result)
	h.writeJSON(w, http.StatusOK, e)
}

// ListCountries returns every supported profile
func (h *Handler) ListCountries(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Countries())
}

// GetCountry returns one profile
func (h *Handler) GetCountry(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Country(mux.Vars(r)["code"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

// GetRates returns the lender quotes of a country
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	country := mux.Vars(r)["country"]
	rates, fallback, err := h.svc.Rates(r.Context(), country)
	if err != nil {
		h.writeError(w, err)
		return
	}

	p, _ := h.svc.Country(country)
	source := models.RateSourceLive
	if fallback {
		source = models.RateSourceFallback
	}
	if rates == nil {
		rates = []models.LenderRate{}
	}
	h.writeJSON(w, http.StatusOK, ratesResponse{Country: p.Code, Source: source, Fallback: fallback, Rates: rates})
}

// GetIndexRate returns the current reference index
func (h *Handler) GetIndexRate(w http.ResponseWriter, r *http.Request) {
	rate, source := h.svc.IndexRate(r.Context())
	h.writeJSON(w, http.StatusOK, indexResponse{IndexRate: rate, Source: source})
}

// GetAmortization returns the schedule of ?principal=&rate=&years=, in the
// currency of ?country= (default ES)
func (h *Handler) GetAmortization(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	country := q.Get("country")
	if country == "" {
		country = "ES"
	}

	values := make(map[string]float64, 3)
	for _, key := range []string{"principal", "rate", "years"} {
		v, err := strconv.ParseFloat(q.Get(key), 64)
		if err != nil {
			h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: kindBadRequest, Message: key + " must be a number", Field: key})
			return
		}
		values[key] = v
	}

	entries, err := h.svc.Schedule(country, values["principal"], values["rate"], values["years"], time.Now().UTC())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

// present rounds money to the currency of the result country
func (h *Handler) present(r models.CalculationResult) models.CalculationResult {
	p, err := h.svc.Country(string(r.Country))
	if err != nil {
		return r
	}
	places := p.Currency.Decimals

	round := func(v float64, places int32) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return v
		}
		return decimal.NewFromFloat(v).Round(places).InexactFloat64()
	}
	money := func(v float64) float64 { return round(v, places) }
	ratio := func(v float64) float64 { return round(v, 2) }

	r.MonthlyPayment = money(r.MonthlyPayment)
	r.TotalPayment = money(r.TotalPayment)
	r.TotalInterest = money(r.TotalInterest)
	r.MaxAffordablePrincipal = money(r.MaxAffordablePrincipal)
	r.MaxPurchasePrice = money(r.MaxPurchasePrice)
	r.CashToClose = money(r.CashToClose)
	r.DTI = ratio(r.DTI)
	r.LTV = ratio(r.LTV)
	r.Scenarios.Fixed.MonthlyPayment = money(r.Scenarios.Fixed.MonthlyPayment)
	r.Scenarios.Mixed.MonthlyPayment = money(r.Scenarios.Mixed.MonthlyPayment)
	r.Scenarios.Variable.MonthlyPayment = money(r.Scenarios.Variable.MonthlyPayment)

	rankings := make([]models.LenderRanking, len(r.LenderRankings))
	for i, l := range r.LenderRankings {
		l.QuotedRate = ratio(l.QuotedRate)
		l.RateAdjustment = ratio(l.RateAdjustment)
		rankings[i] = l
	}
	r.LenderRankings = rankings
	return r
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: engine.Kind(err), Message: err.Error()}
	var inputErr *engine.InputError
	if errors.As(err, &inputErr) {
		resp.Field = inputErr.Field
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status, resp.Error = http.StatusNotFound, kindNotFound
	case resp.Error == engine.KindInvalidInput, resp.Error == engine.KindUnresolvableRate:
		status = http.StatusUnprocessableEntity
	case resp.Error == engine.KindUnsupportedCountry:
		status = http.StatusNotFound
	case resp.Error == engine.KindFeedUnavailable:
		status = http.StatusServiceUnavailable
	default:
		h.log.WithError(err).Error("Request failed")
		resp.Message = "internal error"
	}
	h.writeJSON(w, status, resp)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.WithError(err).Warn("Failed to encode response")
	}
}
