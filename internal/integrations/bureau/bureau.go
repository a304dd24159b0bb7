package bureau

import (
	"bytes"
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

// Risk levels reported with a bureau score
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Score range of the bureau scale
const (
	MinScore = 150
	MaxScore = 950
)

// reportValidity applies when the provider omits valid_until
const reportValidity = 24 * time.Hour

// Client handles credit bureau consultations
type Client struct {
	url    string
	apiKey string
	client *http.Client
	log    *logrus.Logger
}

type consultRequest struct {
	Identification string `json:"identification"`
	ConsultType    string `json:"consult_type"`
}

type consultResponse struct {
	Score      int       `json:"score"`
	ReportID   string    `json:"report_id"`
	ValidUntil time.Time `json:"valid_until"`
	RiskLevel  string    `json:"risk_level"`
}

// NewClient initializes a new bureau client
func NewClient(url, apiKey string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetReport consults the bureau score of one applicant
func (c *Client) GetReport(ctx context.Context, applicantID string) (models.BureauReport, error) {
	payload, err := json.Marshal(consultRequest{Identification: applicantID, ConsultType: "full_score"})
	if err != nil {
		return models.BureauReport{}, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return models.BureauReport{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return models.BureauReport{}, fmt.Errorf("%w: request failed: %v", engine.ErrExternalFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.BureauReport{}, fmt.Errorf("%w: unexpected status code: %d", engine.ErrExternalFeedUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.BureauReport{}, fmt.Errorf("failed to read response: %w", err)
	}

	var out consultResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return models.BureauReport{}, fmt.Errorf("%w: failed to decode report: %v", engine.ErrExternalFeedUnavailable, err)
	}
	if out.Score < MinScore || out.Score > MaxScore {
		return models.BureauReport{}, fmt.Errorf("%w: score %d out of range", engine.ErrExternalFeedUnavailable, out.Score)
	}

	risk := strings.ToLower(out.RiskLevel)
	if risk == "" {
		risk = RiskLevel(out.Score)
	}
	if out.ValidUntil.IsZero() {
		out.ValidUntil = time.Now().Add(reportValidity)
	}

	c.log.WithField("report_id", out.ReportID).Info("Retrieved bureau report")
	return models.BureauReport{
		ApplicantID: applicantID,
		Score:       out.Score,
		RiskLevel:   risk,
		ReportID:    out.ReportID,
		ValidUntil:  out.ValidUntil,
	}, nil
}

// RiskLevel classifies a bureau score
func RiskLevel(score int) string {
	switch {
	case score >= 720:
		return RiskLow
	case score >= 600:
		return RiskMedium
	default:
		return RiskHigh
	}
}
