// Package marketdata implements the market-data interface (spec §4.1): a
// single fetch(symbol, horizon_days) -> BarSeries operation, with a
// deterministic mock implementation and a live broker adapter.
package marketdata

import (
	"context"

	"TradeCoach/internal/series"
)

// Fetcher is the abstract market-data source. Both the mock generator and
// the live broker adapter implement it.
type Fetcher interface {
	// Fetch returns at most horizonDays consecutive trading-day bars ending
	// on or before today. Failures are *model.CoachError: data-source
	// failures carry Kind MarketDataError (see model.MarketDataErr and its
	// sub-kinds), a non-positive horizon is InvalidInput, a cancelled ctx is
	// Cancelled, and an undecodable live response is InternalError.
	Fetch(ctx context.Context, symbol string, horizonDays int) (*series.Series, error)
	Name() string
}
