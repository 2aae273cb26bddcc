package series

import (
	"sort"
	"time"

	"TradeCoach/internal/model"
)

// Series is an ordered, immutable-after-construction sequence of daily bars,
// strictly increasing by date (spec §3, "BarSeries").
type Series struct {
	bars []Bar
}

// New validates and wraps bars into a Series. Bars need not already be
// sorted; New sorts them and then checks strict monotonicity so out-of-order
// adapter output doesn't silently corrupt analysis.
func New(bars []Bar) (*Series, error) {
	cp := make([]Bar, len(bars))
	copy(cp, bars)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Date.Before(cp[j].Date) })

	for i, b := range cp {
		if err := b.Validate(); err != nil {
			return nil, err
		}
		if i > 0 && !cp[i-1].Date.Before(cp[i].Date) {
			return nil, model.InvalidInputf("duplicate or unsorted bar date %s", b.Date.Format("2006-01-02"))
		}
	}
	return &Series{bars: cp}, nil
}

// Len returns the number of bars.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bars)
}

// Bars returns the underlying bars in ascending date order. Callers must not
// mutate the returned slice.
func (s *Series) Bars() []Bar {
	if s == nil {
		return nil
	}
	return s.bars
}

// After returns the sub-series of bars strictly after the given date,
// truncated to at most maxDays entries. This is the "post-entry window" used
// by the timing analyzer (spec §4.2).
func (s *Series) After(date time.Time, maxDays int) *Series {
	if s == nil {
		return &Series{}
	}
	var window []Bar
	for _, b := range s.bars {
		if b.Date.After(date) {
			window = append(window, b)
			if maxDays > 0 && len(window) >= maxDays {
				break
			}
		}
	}
	return &Series{bars: window}
}

// MaxHigh returns the highest High across the series. The caller must ensure
// Len() > 0.
func (s *Series) MaxHigh() float64 {
	h := s.bars[0].High
	for _, b := range s.bars[1:] {
		if b.High > h {
			h = b.High
		}
	}
	return h
}

// MinLow returns the lowest Low across the series. The caller must ensure
// Len() > 0.
func (s *Series) MinLow() float64 {
	l := s.bars[0].Low
	for _, b := range s.bars[1:] {
		if b.Low < l {
			l = b.Low
		}
	}
	return l
}
