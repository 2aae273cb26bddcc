package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"TradeCoach/internal/model"
)

func openTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coach.db")
	s, err := NewSQLiteStore(context.Background(), path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_SaveAndGetTradeRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLiteStore(t)

	trade := &model.Trade{
		Symbol:     "AAPL",
		EntryPrice: 189.34,
		EntryDate:  time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Horizon:    30,
		Behavioral: &model.BehavioralAttributes{
			PositionSize: 5000,
			StockBeta:    1.2,
			Sector:       "Technology",
		},
	}

	id, err := s.SaveTrade(ctx, trade)
	if err != nil {
		t.Fatalf("SaveTrade: %v", err)
	}
	if id <= 0 {
		t.Fatalf("SaveTrade returned non-positive id %d", id)
	}

	got, err := s.GetTrade(ctx, id)
	if err != nil {
		t.Fatalf("GetTrade: %v", err)
	}

	if got.ID != id {
		t.Errorf("ID = %d, want %d", got.ID, id)
	}
	if got.Symbol != trade.Symbol {
		t.Errorf("Symbol = %q, want %q", got.Symbol, trade.Symbol)
	}
	if got.EntryPrice != trade.EntryPrice {
		t.Errorf("EntryPrice = %v, want %v", got.EntryPrice, trade.EntryPrice)
	}
	if !got.EntryDate.Equal(trade.EntryDate) {
		t.Errorf("EntryDate = %v, want %v", got.EntryDate, trade.EntryDate)
	}
	if got.Horizon != trade.Horizon {
		t.Errorf("Horizon = %d, want %d", got.Horizon, trade.Horizon)
	}
	if got.Behavioral == nil {
		t.Fatal("Behavioral = nil, want full triple")
	}
	if *got.Behavioral != *trade.Behavioral {
		t.Errorf("Behavioral = %+v, want %+v", *got.Behavioral, *trade.Behavioral)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}
}

func TestSQLiteStore_SaveTradeAssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLiteStore(t)

	first, err := s.SaveTrade(ctx, tradeAt("AAPL", 1))
	if err != nil {
		t.Fatalf("SaveTrade: %v", err)
	}
	second, err := s.SaveTrade(ctx, tradeAt("MSFT", 2))
	if err != nil {
		t.Fatalf("SaveTrade: %v", err)
	}
	if second <= first {
		t.Errorf("second id %d did not increase past first id %d", second, first)
	}
}

func TestSQLiteStore_InitIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLiteStore(t)

	if _, err := s.SaveTrade(ctx, tradeAt("AAPL", 1)); err != nil {
		t.Fatalf("SaveTrade: %v", err)
	}

	before, err := s.GetLastNTrades(ctx, 10)
	if err != nil {
		t.Fatalf("GetLastNTrades: %v", err)
	}

	if err := s.Init(ctx); err != nil {
		t.Fatalf("second Init: %v", err)
	}

	after, err := s.GetLastNTrades(ctx, 10)
	if err != nil {
		t.Fatalf("GetLastNTrades after re-init: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("row count changed across re-Init: before=%d after=%d", len(before), len(after))
	}
}

func TestSQLiteStore_GetTradeUnknownID(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLiteStore(t)

	if _, err := s.GetTrade(ctx, 404); err == nil {
		t.Fatal("expected error for unknown trade id")
	}
}

func TestSQLiteStore_SaveAnalysisAndGetAnalyses(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLiteStore(t)

	id, err := s.SaveTrade(ctx, tradeAt("AAPL", 1))
	if err != nil {
		t.Fatalf("SaveTrade: %v", err)
	}

	payload, err := EncodeTiming(&model.TimingReport{Verdict: model.VerdictGood, MFEPercent: 5})
	if err != nil {
		t.Fatalf("EncodeTiming: %v", err)
	}
	if err := s.SaveAnalysis(ctx, id, model.AnalysisKindTiming, payload); err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}

	analyses, err := s.GetAnalyses(ctx, id)
	if err != nil {
		t.Fatalf("GetAnalyses: %v", err)
	}
	if len(analyses) != 1 || analyses[0].Kind != model.AnalysisKindTiming {
		t.Fatalf("got %+v", analyses)
	}
}

func TestSQLiteStore_GetTradesForBehavioralHistoryFiltersNulls(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLiteStore(t)

	withAttrs := tradeAt("AAPL", 1)
	withAttrs.Behavioral = &model.BehavioralAttributes{PositionSize: 1000, StockBeta: 1.0, Sector: "Technology"}
	withoutAttrs := tradeAt("TSLA", 2)

	if _, err := s.SaveTrade(ctx, withAttrs); err != nil {
		t.Fatalf("SaveTrade: %v", err)
	}
	if _, err := s.SaveTrade(ctx, withoutAttrs); err != nil {
		t.Fatalf("SaveTrade: %v", err)
	}

	history, err := s.GetTradesForBehavioralHistory(ctx)
	if err != nil {
		t.Fatalf("GetTradesForBehavioralHistory: %v", err)
	}
	if len(history) != 1 || history[0].Symbol != "AAPL" {
		t.Fatalf("expected only the fully-attributed trade, got %+v", history)
	}
}
