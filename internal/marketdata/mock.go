package marketdata

import (
	"context"
	"hash/fnv"
	"math/rand"
	"time"

	"TradeCoach/internal/model"
	"TradeCoach/internal/series"
)

// MockFetcher generates deterministic, synthetic daily bars for development
// and testing, grounded on the original mock data generator: a geometric
// random walk seeded per (symbol, horizon_days) so repeated calls return an
// identical series (spec §4.1).
type MockFetcher struct {
	// BasePrice anchors the random walk. Zero selects a symbol-derived
	// default so different symbols still look distinct without caller input.
	BasePrice float64
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) Fetch(ctx context.Context, symbol string, horizonDays int) (*series.Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, model.Cancelled("mock fetch cancelled")
	}
	if horizonDays <= 0 {
		return nil, model.InvalidInputf("horizon_days must be positive, got %d", horizonDays)
	}

	base := m.BasePrice
	if base <= 0 {
		base = symbolBasePrice(symbol)
	}

	rng := rand.New(rand.NewSource(seedFor(symbol, horizonDays)))

	bars := make([]series.Bar, 0, horizonDays)
	price := base
	// Start horizonDays weekdays back so the series ends before today.
	date := time.Now().UTC()
	for n := 0; n < horizonDays; {
		date = date.AddDate(0, 0, -1)
		if date.Weekday() != time.Saturday && date.Weekday() != time.Sunday {
			n++
		}
	}

	for len(bars) < horizonDays {
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			date = date.AddDate(0, 0, 1)
			continue
		}

		dailyReturn := rng.NormFloat64()*0.02 + 0.001
		price = price * (1 + dailyReturn)
		if price < 0.01 {
			price = 0.01
		}
		vol := price * 0.015

		open := price + rng.NormFloat64()*vol*0.5
		close := price + rng.NormFloat64()*vol*0.5
		high := max(open, close) + absNorm(rng)*vol*0.3
		low := min(open, close) - absNorm(rng)*vol*0.3
		if low <= 0 {
			low = 0.01
		}
		if high < max(open, close) {
			high = max(open, close)
		}

		volume := int64(50_000_000 * (0.7 + rng.Float64()*0.6))

		bars = append(bars, series.Bar{
			Date:   time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(close),
			Volume: volume,
		})
		date = date.AddDate(0, 0, 1)
	}

	return series.New(bars)
}

// seedFor derives a stable PRNG seed from (symbol, horizon_days), mirroring
// the original's np.random.seed(hash(symbol) % 2**32) but using a portable
// hash so seeding is stable across processes and platforms.
func seedFor(symbol string, horizonDays int) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))
	return int64(h.Sum32())&0x7fffffff + int64(horizonDays)
}

func symbolBasePrice(symbol string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))
	return 50 + float64(h.Sum32()%20000)/100.0
}

func absNorm(rng *rand.Rand) float64 {
	v := rng.NormFloat64()
	if v < 0 {
		return -v
	}
	return v
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
