package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"equity_research/pkg/models"
)

const (
	userAgent      = "equity-research/1.0 research@example.com"
	requestTimeout = 60 * time.Second
	maxAttempts    = 3
	retryBackoff   = 2 * time.Second
)

// Client is an HTTP Provider against a JSON fundamentals API.
type Client struct {
	baseURL string
	http    *http.Client
	backoff time.Duration
}

var _ Provider = (*Client)(nil)

// NewClient builds a client for the given API base URL, e.g.
// "https://data.example.com/v1".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
		backoff: retryBackoff,
	}
}

// getJSON fetches path and decodes the body into out, retrying transient
// failures (network errors and 5xx) with a fixed backoff.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("server error %d for %s", resp.StatusCode, path)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return fmt.Errorf("request %s failed: status=%d body=%s", path, resp.StatusCode, string(body))
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to decode %s response: %w", path, err)
		}
		return nil
	}
	return fmt.Errorf("request %s failed after %d attempts: %w", path, maxAttempts, lastErr)
}

type profileResponse struct {
	Ticker            string   `json:"ticker"`
	Name              string   `json:"name"`
	Sector            string   `json:"sector"`
	Price             *float64 `json:"price"`
	SharesOutstanding *float64 `json:"shares_outstanding"`
}

// Profile fetches the company header data.
func (c *Client) Profile(ctx context.Context, ticker string) (models.CompanyProfile, error) {
	var resp profileResponse
	if err := c.getJSON(ctx, "/profile/"+url.PathEscape(ticker), &resp); err != nil {
		return models.CompanyProfile{}, err
	}

	profile := models.CompanyProfile{
		Ticker:            resp.Ticker,
		Name:              resp.Name,
		Sector:            resp.Sector,
		CurrentPrice:      resp.Price,
		SharesOutstanding: resp.SharesOutstanding,
	}
	if profile.Ticker == "" {
		profile.Ticker = ticker
	}
	if resp.Price != nil && resp.SharesOutstanding != nil {
		cap := *resp.Price * *resp.SharesOutstanding
		profile.MarketCap = &cap
	}
	return profile, nil
}

type statementResponse struct {
	Periods []string              `json:"periods"`
	Rows    map[string][]*float64 `json:"rows"`
}

// Statement fetches one raw financial statement. Vendor labels are kept as-is;
// resolution happens downstream.
func (c *Client) Statement(ctx context.Context, ticker string, kind models.StatementKind) (*models.StatementTable, error) {
	path := fmt.Sprintf("/statements/%s/%s", url.PathEscape(ticker), kind)
	var resp statementResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	if len(resp.Periods) == 0 {
		return nil, fmt.Errorf("no %s periods returned for %s", kind, ticker)
	}

	table := models.NewStatementTable(kind, resp.Periods)
	// Map iteration order is random; insert rows deterministically.
	labels := make([]string, 0, len(resp.Rows))
	for label := range resp.Rows {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		table.AddRow(label, resp.Rows[label])
	}
	return table, nil
}

type pricePointResponse struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// Prices fetches the daily close history for the last N years, oldest first.
func (c *Client) Prices(ctx context.Context, ticker string, years int) (*models.PriceSeries, error) {
	path := fmt.Sprintf("/prices/%s?years=%d", url.PathEscape(ticker), years)
	var resp []pricePointResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}

	points := make([]models.PricePoint, 0, len(resp))
	for _, p := range resp {
		date, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return nil, fmt.Errorf("bad price date %q for %s: %w", p.Date, ticker, err)
		}
		points = append(points, models.PricePoint{Date: date, Close: p.Close})
	}
	return models.NewPriceSeries(points)
}

type dividendResponse struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// Dividends fetches the cash dividend history for the last N years. An empty
// history is a valid result for non-payers.
func (c *Client) Dividends(ctx context.Context, ticker string, years int) (models.DividendSeries, error) {
	path := fmt.Sprintf("/dividends/%s?years=%d", url.PathEscape(ticker), years)
	var resp []dividendResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}

	var series models.DividendSeries
	for _, d := range resp {
		date, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			return nil, fmt.Errorf("bad dividend date %q for %s: %w", d.Date, ticker, err)
		}
		series = append(series, models.DividendPoint{Date: date, Amount: d.Amount})
	}
	return series, nil
}
