// Package marketdata fetches company fundamentals and market history from a
// JSON data vendor and converts the wire formats into the model types the
// analysis engines consume.
package marketdata

import (
	"context"

	"equity_research/pkg/models"
)

// Provider is the data source the pipeline pulls from. Implementations must
// be safe for concurrent use.
type Provider interface {
	Profile(ctx context.Context, ticker string) (models.CompanyProfile, error)
	Statement(ctx context.Context, ticker string, kind models.StatementKind) (*models.StatementTable, error)
	Prices(ctx context.Context, ticker string, years int) (*models.PriceSeries, error)
	Dividends(ctx context.Context, ticker string, years int) (models.DividendSeries, error)
}
