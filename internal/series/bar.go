package series

import (
	"time"

	"TradeCoach/internal/model"
)

// Bar is a single daily OHLCV candle. Dates carry no time-of-day component;
// callers should normalize with time.Date(y, m, d, 0, 0, 0, 0, time.UTC).
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Validate checks the per-bar invariant from spec §3: low <= open,close <= high,
// low <= high, and all prices are positive reals.
func (b Bar) Validate() error {
	if b.Low <= 0 {
		return model.InvalidInputf("bar %s: low %.4f must be positive", b.Date.Format("2006-01-02"), b.Low)
	}
	if b.Low > b.High {
		return model.InvalidInputf("bar %s: low %.4f > high %.4f", b.Date.Format("2006-01-02"), b.Low, b.High)
	}
	if b.Open < b.Low || b.Open > b.High {
		return model.InvalidInputf("bar %s: open %.4f outside [low,high]", b.Date.Format("2006-01-02"), b.Open)
	}
	if b.Close < b.Low || b.Close > b.High {
		return model.InvalidInputf("bar %s: close %.4f outside [low,high]", b.Date.Format("2006-01-02"), b.Close)
	}
	if b.Volume < 0 {
		return model.InvalidInputf("bar %s: negative volume", b.Date.Format("2006-01-02"))
	}
	return nil
}
