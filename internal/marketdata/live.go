package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"TradeCoach/internal/model"
	"TradeCoach/internal/series"
)

// LiveFetcher talks to a generic quote REST endpoint over HTTPS, grounded on
// the original Tiger Brokers client and the reference codebase's REST
// fetchers (spec §4.1). It authenticates using three opaque credentials
// read only from the environment, retries idempotent GETs on transport
// failure with exponential backoff, and rate-limits outbound requests so a
// single CLI invocation cannot burst the upstream API.
type LiveFetcher struct {
	BaseURL    string
	TigerID    string
	PrivateKey string
	Account    string

	HTTPClient *http.Client
	Limiter    *rate.Limiter
	MaxRetries uint64
}

// LiveFetcherOptions configures NewLiveFetcher.
type LiveFetcherOptions struct {
	BaseURL            string
	TigerID            string
	PrivateKey         string
	Account            string
	Timeout            time.Duration
	RequestsPerSecond  int
	MaxRetries         uint64
}

// NewLiveFetcher builds a LiveFetcher with sane defaults for timeout, rate
// limit, and retry budget.
func NewLiveFetcher(opts LiveFetcherOptions) *LiveFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RequestsPerSecond == 0 {
		opts.RequestsPerSecond = 3
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 2
	}
	return &LiveFetcher{
		BaseURL:    opts.BaseURL,
		TigerID:    opts.TigerID,
		PrivateKey: opts.PrivateKey,
		Account:    opts.Account,
		HTTPClient: &http.Client{Timeout: opts.Timeout},
		Limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.RequestsPerSecond),
		MaxRetries: opts.MaxRetries,
	}
}

func (f *LiveFetcher) Name() string { return "live" }

// quoteBar is the expected JSON shape of one bar from the quote endpoint.
type quoteBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
}

func (f *LiveFetcher) Fetch(ctx context.Context, symbol string, horizonDays int) (*series.Series, error) {
	if horizonDays <= 0 {
		return nil, model.InvalidInputf("horizon_days must be positive, got %d", horizonDays)
	}

	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&limit=%d", f.BaseURL, symbol, horizonDays)

	bars, err := f.fetchWithRetry(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, model.MarketDataErr(model.SubKindEmpty, fmt.Sprintf("no bars returned for %s", symbol), nil)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	if len(bars) > horizonDays {
		bars = bars[len(bars)-horizonDays:]
	}
	return series.New(bars)
}

func (f *LiveFetcher) fetchWithRetry(ctx context.Context, endpoint string) ([]series.Bar, error) {
	var bars []series.Bar

	operation := func() error {
		if err := f.Limiter.Wait(ctx); err != nil {
			return backoff.Permanent(model.Cancelled("rate limiter wait cancelled"))
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(model.Internal("build quote request", err))
		}
		req.Header.Set("Tiger-Id", f.TigerID)
		req.Header.Set("Tiger-Account", f.Account)
		req.Header.Set("Authorization", "Bearer "+f.PrivateKey)

		resp, err := f.HTTPClient.Do(req)
		if err != nil {
			return err // transient: retried
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return backoff.Permanent(model.MarketDataErr(model.SubKindAuth, "broker credentials rejected", nil))
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(model.MarketDataErr(model.SubKindNotFound, "symbol not found", nil))
		case resp.StatusCode != http.StatusOK:
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("quote endpoint status %d: %s", resp.StatusCode, string(body)) // transient: retried
		}

		var payload []quoteBar
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return backoff.Permanent(model.Internal("decode quote response", err))
		}

		bars = make([]series.Bar, len(payload))
		for i, qb := range payload {
			bars[i] = series.Bar{
				Date:   time.Unix(qb.Timestamp, 0).UTC(),
				Open:   qb.Open,
				High:   qb.High,
				Low:    qb.Low,
				Close:  qb.Close,
				Volume: qb.Volume,
			}
		}
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), f.MaxRetries)
	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		var coachErr *model.CoachError
		if errors.As(err, &coachErr) {
			return nil, coachErr
		}
		return nil, model.MarketDataErr(model.SubKindTransport, "quote endpoint unreachable", err)
	}
	return bars, nil
}
