package models

import "time"

// Headline is one scraped news item attached to a report.
type Headline struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

// CompanyProfile is the descriptive header data for a report.
type CompanyProfile struct {
	Ticker            string   `json:"ticker"`
	Name              string   `json:"name,omitempty"`
	Sector            string   `json:"sector,omitempty"`
	CurrentPrice      *float64 `json:"current_price,omitempty"`
	SharesOutstanding *float64 `json:"shares_outstanding,omitempty"`
	MarketCap         *float64 `json:"market_cap,omitempty"`
}

// Report is the persisted output of one research run. The analytical
// sections are stored as raw JSON produced by their engines so the schema
// can evolve per section without a table migration.
type Report struct {
	RunID       string         `json:"run_id"`
	Profile     CompanyProfile `json:"profile"`
	GeneratedAt time.Time      `json:"generated_at"`

	Resolution map[StatementKind]any `json:"resolution,omitempty"`
	Ratios     any                   `json:"ratios,omitempty"`
	Risk       any                   `json:"risk,omitempty"`
	Capital    any                   `json:"capital,omitempty"`
	Valuations any                   `json:"valuations,omitempty"`
	Headlines  []Headline            `json:"headlines,omitempty"`

	NewsSummary string `json:"news_summary,omitempty"`
	Narrative   string `json:"narrative,omitempty"`
	Markdown    string `json:"markdown,omitempty"`
}
