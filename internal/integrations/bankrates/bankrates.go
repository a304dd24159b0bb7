package bankrates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Dan9191/mortgage-service/internal/engine"
	"github.com/Dan9191/mortgage-service/internal/models"
	"github.com/sirupsen/logrus"
)

// maxBodySize bounds the feed payload
const maxBodySize = 1 << 20

// Client handles integration with the lender rate aggregator
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *logrus.Logger
}

type quote struct {
	Lender          string  `json:"lender"`
	HousingCategory string  `json:"housing_category"`
	Modality        string  `json:"modality"`
	AnnualRate      float64 `json:"annual_rate"`
	MaxLTV          float64 `json:"max_ltv"`
}

type ratesResponse struct {
	Country   string    `json:"country"`
	Timestamp time.Time `json:"timestamp"`
	Rates     []quote   `json:"rates"`
}

// NewClient initializes a new rate feed client. An empty baseURL yields a
// client that always reports the feed as unavailable.
func NewClient(baseURL, apiKey string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetRates retrieves the current mortgage quotes of a country. Payloads
// failing validation are rejected as a whole.
func (c *Client) GetRates(ctx context.Context, country string) ([]models.LenderRate, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: rate feed not configured", engine.ErrExternalFeedUnavailable)
	}

	url := fmt.Sprintf("%s/v1/mortgages/rates?country=%s", c.baseURL, strings.ToUpper(country))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", engine.ErrExternalFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code: %d", engine.ErrExternalFeedUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var payload ratesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode rates: %v", engine.ErrExternalFeedUnavailable, err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("%w: no rates for %s", engine.ErrExternalFeedUnavailable, country)
	}

	updated := payload.Timestamp
	if updated.IsZero() {
		updated = time.Now().UTC()
	}
	rates := make([]models.LenderRate, 0, len(payload.Rates))
	for _, q := range payload.Rates {
		rates = append(rates, models.LenderRate{
			Lender:          q.Lender,
			HousingCategory: q.HousingCategory,
			Modality:        q.Modality,
			AnnualRate:      q.AnnualRate,
			MaxLTV:          q.MaxLTV,
			UpdatedAt:       updated,
		})
	}

	if err := engine.ValidateRates(rates); err != nil {
		c.log.WithError(err).WithField("country", country).Warn("Rejected invalid rate payload")
		return nil, fmt.Errorf("%w: %v", engine.ErrExternalFeedUnavailable, err)
	}

	c.log.WithField("country", country).Infof("Retrieved %d lender rates", len(rates))
	return rates, nil
}
