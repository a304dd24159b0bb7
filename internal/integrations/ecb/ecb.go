package ecb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Dan9191/mortgage-service/internal/engine"
	"github.com/Dan9191/mortgage-service/internal/models"
	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

// IndexName is the reference index published by the series
const IndexName = "Euribor 12M"

// Client handles integration with the European Central Bank data portal
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
	now    func() time.Time
}

// NewClient initializes a new ECB client
func NewClient(url string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
		log: log,
		now: time.Now,
	}
}

// sendRequest asks for the last observations of the series in SDMX-ML
func (c *Client) sendRequest(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("lastNObservations", "1")
	q.Set("format", "genericdata")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/vnd.sdmx.genericdata+xml;version=2.1")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", engine.ErrExternalFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code: %d", engine.ErrExternalFeedUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debugf("ECB XML response: %s", string(body))

	return body, nil
}

// parseXMLResponse extracts the most recent observation of the series
func (c *Client) parseXMLResponse(rawBody []byte) (float64, string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return 0, "", fmt.Errorf("failed to parse XML: %w", err)
	}

	obs := doc.FindElements("//DataSet/Series/Obs")
	if len(obs) == 0 {
		return 0, "", fmt.Errorf("no observations found in XML")
	}

	// Observations are in chronological order
	latest := obs[len(obs)-1]
	valueElement := latest.FindElement("./ObsValue")
	if valueElement == nil {
		return 0, "", fmt.Errorf("observation value not found in XML")
	}
	rate, err := strconv.ParseFloat(valueElement.SelectAttrValue("value", ""), 64)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse rate: %w", err)
	}

	period := ""
	if dim := latest.FindElement("./ObsDimension"); dim != nil {
		period = dim.SelectAttrValue("value", "")
	}

	return rate, period, nil
}

// GetIndexRate retrieves the latest published Euribor 12M observation
func (c *Client) GetIndexRate(ctx context.Context) (models.IndexRate, error) {
	body, err := c.sendRequest(ctx)
	if err != nil {
		return models.IndexRate{}, err
	}

	rate, period, err := c.parseXMLResponse(body)
	if err != nil {
		return models.IndexRate{}, fmt.Errorf("%w: %v", engine.ErrExternalFeedUnavailable, err)
	}

	c.log.WithFields(logrus.Fields{"index": IndexName, "period": period}).
		Infof("Retrieved reference index: %.3f%%", rate)
	return models.IndexRate{
		Name:        IndexName,
		Rate:        rate,
		Period:      period,
		RetrievedAt: c.now(),
	}, nil
}
