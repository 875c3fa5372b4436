package flights

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"travelplanner/internal/modules/planning"
)

const (
	defaultBaseURL = "https://serpapi.com"
	// oneWayTrip is the google_flights "type" value for one-way searches.
	oneWayTrip = "2"
	// maxErrorBody bounds how much of a failed response ends up in the error message.
	maxErrorBody = 512
)

// ClientConfig configures the SerpAPI client. Zero values fall back to the upstream defaults.
type ClientConfig struct {
	APIKey   string
	BaseURL  string
	Currency string
	Language string
	Timeout  time.Duration
}

// SerpAPIClient queries the SerpAPI Google Flights engine.
type SerpAPIClient struct {
	apiKey     string
	baseURL    string
	currency   string
	language   string
	httpClient *http.Client
}

func NewSerpAPIClient(cfg ClientConfig) *SerpAPIClient {
	c := &SerpAPIClient{
		apiKey:   strings.TrimSpace(cfg.APIKey),
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		currency: cfg.Currency,
		language: cfg.Language,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.currency == "" {
		c.currency = "INR"
	}
	if c.language == "" {
		c.language = "en"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c.httpClient = &http.Client{Timeout: timeout}
	return c
}

// Configured reports whether an API key is present.
func (c *SerpAPIClient) Configured() bool {
	return c.apiKey != ""
}

// Search runs a one-way search for q.
func (c *SerpAPIClient) Search(ctx context.Context, q Query) (*SearchResult, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("departure_id", q.Origin)
	params.Set("arrival_id", q.Destination)
	params.Set("outbound_date", q.Date)
	params.Set("currency", c.currency)
	params.Set("hl", c.language)
	params.Set("type", oneWayTrip)
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("serpapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, upstream(fmt.Errorf("do request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, upstream(fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, upstream(fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var result SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, upstream(fmt.Errorf("unmarshal response: %w", err))
	}
	return &result, nil
}

func upstream(err error) error {
	return planning.UpstreamError{Service: "serpapi", Err: err}
}
