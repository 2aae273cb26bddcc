package marketdata

import (
	"context"
	"testing"
)

// Testable property 9: repeated calls with identical (symbol, horizon_days)
// produce identical series.
func TestMockFetcher_Deterministic(t *testing.T) {
	f := &MockFetcher{}
	ctx := context.Background()

	a, err := f.Fetch(ctx, "AAPL", 30)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	b, err := f.Fetch(ctx, "AAPL", 30)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if a.Len() != b.Len() {
		t.Fatalf("lengths differ: %d vs %d", a.Len(), b.Len())
	}
	for i, barA := range a.Bars() {
		barB := b.Bars()[i]
		if barA != barB {
			t.Fatalf("bar %d differs: %+v vs %+v", i, barA, barB)
		}
	}
}

func TestMockFetcher_DifferentSymbolsDiverge(t *testing.T) {
	f := &MockFetcher{}
	ctx := context.Background()

	a, err := f.Fetch(ctx, "AAPL", 30)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	b, err := f.Fetch(ctx, "TSLA", 30)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if a.Bars()[0] == b.Bars()[0] {
		t.Error("expected different symbols to diverge in generated series")
	}
}

func TestMockFetcher_RespectsHorizon(t *testing.T) {
	f := &MockFetcher{}
	ctx := context.Background()

	s, err := f.Fetch(ctx, "MSFT", 10)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if s.Len() != 10 {
		t.Errorf("Len() = %d, want 10", s.Len())
	}
	for _, b := range s.Bars() {
		if b.Date.Weekday().String() == "Saturday" || b.Date.Weekday().String() == "Sunday" {
			t.Errorf("unexpected weekend bar: %s", b.Date)
		}
	}
}

func TestMockFetcher_RejectsNonPositiveHorizon(t *testing.T) {
	f := &MockFetcher{}
	if _, err := f.Fetch(context.Background(), "AAPL", 0); err == nil {
		t.Fatal("expected error for zero horizon")
	}
}

func TestMockFetcher_CancelledContext(t *testing.T) {
	f := &MockFetcher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Fetch(ctx, "AAPL", 10); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
