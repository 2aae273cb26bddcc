// Package coach implements the coaching orchestrator (spec §4.5): the single
// analyze(request) operation that ties the market-data interface, the
// timing and behavioral analyzers, and the store together.
package coach

import (
	"time"

	"TradeCoach/internal/model"
)

// Source names which MarketData adapter to use for a request.
type Source string

const (
	SourceLive Source = "live"
	SourceMock Source = "mock"
)

// Request is the orchestrator's input (spec §4.5).
type Request struct {
	Symbol       string
	EntryPrice   float64
	EntryDate    time.Time
	Horizon      int
	PositionSize *float64
	StockBeta    *float64
	Sector       *string
	Source       Source
	Save         bool
}

// Validate checks every field once, before any I/O, failing on the first
// invalid one (spec §7, "Validation is performed once, before I/O").
func (r *Request) Validate() error {
	if r.Symbol == "" {
		return model.InvalidInput("symbol must not be empty")
	}
	if r.EntryPrice <= 0 {
		return model.InvalidInputf("entry_price must be positive, got %.4f", r.EntryPrice)
	}
	if r.EntryDate.IsZero() {
		return model.InvalidInput("entry_date must be set")
	}
	if r.Horizon <= 0 {
		return model.InvalidInputf("horizon must be positive, got %d", r.Horizon)
	}
	if r.Source != SourceLive && r.Source != SourceMock {
		return model.InvalidInputf("source must be %q or %q, got %q", SourceLive, SourceMock, r.Source)
	}

	provided := 0
	if r.PositionSize != nil {
		provided++
	}
	if r.StockBeta != nil {
		provided++
	}
	if r.Sector != nil {
		provided++
	}
	if provided != 0 && provided != 3 {
		return model.InvalidInput("position_size, stock_beta, and sector must be supplied together or not at all")
	}
	if r.PositionSize != nil && *r.PositionSize < 0 {
		return model.InvalidInputf("position_size must be non-negative, got %.4f", *r.PositionSize)
	}
	if r.StockBeta != nil && *r.StockBeta < 0 {
		return model.InvalidInputf("stock_beta must be non-negative, got %.4f", *r.StockBeta)
	}
	if r.Sector != nil && *r.Sector == "" {
		return model.InvalidInput("sector must not be empty when supplied")
	}
	return nil
}

// behavioral builds the BehavioralAttributes for this request, or nil if the
// triple was not supplied.
func (r *Request) behavioral() *model.BehavioralAttributes {
	if r.PositionSize == nil {
		return nil
	}
	return &model.BehavioralAttributes{
		PositionSize: *r.PositionSize,
		StockBeta:    *r.StockBeta,
		Sector:       *r.Sector,
	}
}

// trade projects the request onto the persisted Trade shape.
func (r *Request) trade() *model.Trade {
	return &model.Trade{
		Symbol:     r.Symbol,
		EntryPrice: r.EntryPrice,
		EntryDate:  r.EntryDate,
		Horizon:    r.Horizon,
		Behavioral: r.behavioral(),
	}
}
