package coach

import (
	"context"
	"testing"
	"time"

	"TradeCoach/internal/marketdata"
	"TradeCoach/internal/model"
	"TradeCoach/internal/store"
)

func newTestOrchestrator() *Orchestrator {
	return NewOrchestrator(&marketdata.MockFetcher{}, &marketdata.MockFetcher{}, store.NewMemoryStore())
}

func ptr[T any](v T) *T { return &v }

func TestOrchestrator_HappyPathSaves(t *testing.T) {
	o := newTestOrchestrator()
	req := &Request{
		Symbol:       "AAPL",
		EntryPrice:   100,
		EntryDate:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Horizon:      30,
		PositionSize: ptr(10000.0),
		StockBeta:    ptr(1.1),
		Sector:       ptr("Technology"),
		Source:       SourceMock,
		Save:         true,
	}

	report, err := o.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.TradeID <= 0 {
		t.Errorf("expected positive trade id on save, got %d", report.TradeID)
	}
	if !report.PersistedAnalysis {
		t.Error("expected persisted_analysis = true")
	}
	if report.Timing == nil || report.Behavioral == nil {
		t.Fatal("expected both reports populated")
	}

	analyses, err := o.Store.GetAnalyses(context.Background(), report.TradeID)
	if err != nil {
		t.Fatalf("GetAnalyses: %v", err)
	}
	if len(analyses) != 2 {
		t.Errorf("expected 2 persisted analyses, got %d", len(analyses))
	}
}

func TestOrchestrator_UnsavedRequestUsesSentinelID(t *testing.T) {
	o := newTestOrchestrator()
	req := &Request{
		Symbol:     "AAPL",
		EntryPrice: 100,
		EntryDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Horizon:    30,
		Source:     SourceMock,
		Save:       false,
	}

	report, err := o.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.TradeID > 0 {
		t.Errorf("expected non-positive sentinel trade id, got %d", report.TradeID)
	}
}

func TestOrchestrator_UnsavedRequestStillQueriesHistory(t *testing.T) {
	st := store.NewMemoryStore()
	o := NewOrchestrator(&marketdata.MockFetcher{}, &marketdata.MockFetcher{}, st)

	for i := 0; i < 5; i++ {
		trade := &model.Trade{
			Symbol:     "AAPL",
			EntryPrice: 100,
			EntryDate:  time.Date(2025, 1, i+1, 0, 0, 0, 0, time.UTC),
			Horizon:    30,
			Behavioral: &model.BehavioralAttributes{PositionSize: 10000 + float64(i)*100, StockBeta: 1.0, Sector: "Technology"},
		}
		if _, err := st.SaveTrade(context.Background(), trade); err != nil {
			t.Fatalf("SaveTrade: %v", err)
		}
	}

	req := &Request{
		Symbol:       "AAPL",
		EntryPrice:   100,
		EntryDate:    time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Horizon:      30,
		PositionSize: ptr(100000.0),
		StockBeta:    ptr(1.0),
		Sector:       ptr("Technology"),
		Source:       SourceMock,
		Save:         false,
	}

	report, err := o.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !report.Behavioral.IsAnomaly {
		t.Error("expected behavioral anomaly using unsaved-request history lookup")
	}
}

func TestOrchestrator_ValidationRejectsPartialBehavioralFields(t *testing.T) {
	o := newTestOrchestrator()
	req := &Request{
		Symbol:       "AAPL",
		EntryPrice:   100,
		EntryDate:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Horizon:      30,
		PositionSize: ptr(10000.0),
		Source:       SourceMock,
		Save:         false,
	}
	if _, err := o.Analyze(context.Background(), req); err == nil {
		t.Fatal("expected validation error for partial behavioral triple")
	}
}

func TestOrchestrator_CancelledContextBeforeFetch(t *testing.T) {
	o := newTestOrchestrator()
	req := &Request{
		Symbol:     "AAPL",
		EntryPrice: 100,
		EntryDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Horizon:    30,
		Source:     SourceMock,
		Save:       false,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := o.Analyze(ctx, req); err == nil {
		t.Fatal("expected Cancelled error")
	}
}

func TestOrchestrator_InvalidEntryPriceRejectedBeforeIO(t *testing.T) {
	o := newTestOrchestrator()
	req := &Request{
		Symbol:     "AAPL",
		EntryPrice: -5,
		EntryDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Horizon:    30,
		Source:     SourceMock,
		Save:       true,
	}
	if _, err := o.Analyze(context.Background(), req); err == nil {
		t.Fatal("expected InvalidInput error")
	}
	trades, err := o.Store.GetLastNTrades(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetLastNTrades: %v", err)
	}
	if len(trades) != 0 {
		t.Error("expected no trade saved after validation failure")
	}
}
