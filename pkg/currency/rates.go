package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// RateTable maps currency codes to units per EUR.
type RateTable map[string]float64

// FallbackRates is the static table substituted when the live lookup fails.
// The values are deliberately coarse; they only affect display accuracy.
var FallbackRates = RateTable{
	"EUR": 1.0,
	"USD": 1.09,
	"GBP": 0.85,
	"CHF": 0.94,
	"SEK": 11.30,
	"NOK": 11.65,
	"DKK": 7.46,
	"PLN": 4.30,
	"CZK": 25.20,
	"JPY": 170.0,
	"CAD": 1.48,
	"AUD": 1.65,
}

// DefaultEndpoint serves EUR-based reference rates.
const DefaultEndpoint = "https://api.frankfurter.app/latest?from=EUR"

const fetchTimeout = 5 * time.Second

// Client fetches display rates. The lookup is a convenience: every failure
// degrades silently to FallbackRates and is never surfaced as an error.
type Client struct {
	httpClient *http.Client
	endpoint   string
	logger     *zap.Logger
}

// NewClient constructs a rate client. An empty endpoint selects
// DefaultEndpoint; a nil logger is replaced with a no-op logger.
func NewClient(logger *zap.Logger, endpoint string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		httpClient: &http.Client{Timeout: fetchTimeout},
		endpoint:   endpoint,
		logger:     logger,
	}
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// FetchRates returns the current rate table. The second return value is true
// when the fallback table was substituted for a failed lookup.
func (c *Client) FetchRates(ctx context.Context) (RateTable, bool) {
	table, err := c.fetch(ctx)
	if err != nil {
		c.logger.Warn("currency rate lookup failed, using fallback table",
			zap.String("op", "currency.FetchRates"),
			zap.Error(err),
		)
		return FallbackRates, true
	}
	return table, false
}

func (c *Client) fetch(ctx context.Context) (RateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate endpoint returned status %d", resp.StatusCode)
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode rate response: %w", err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("rate response contained no rates")
	}

	table := make(RateTable, len(payload.Rates)+1)
	for code, rate := range payload.Rates {
		table[code] = rate
	}
	// The base currency is implied by the endpoint, not echoed back.
	table["EUR"] = 1.0
	return table, nil
}
