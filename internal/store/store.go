// Package store implements the durable trade/analysis store (spec §4.4):
// two append-only tables (trades, analyses) behind a Store interface with a
// production SQLite backend and an in-memory implementation for tests and
// --no-save dry runs.
package store

import (
	"context"

	"TradeCoach/internal/model"
)

// Store is the durable persistence boundary for trades and their analyses.
type Store interface {
	// Init idempotently creates the schema.
	Init(ctx context.Context) error

	// SaveTrade inserts a trade and returns its assigned id.
	SaveTrade(ctx context.Context, trade *model.Trade) (int64, error)

	// SaveAnalysis inserts an analysis row against tradeID. payload must
	// already be serialized (see Encode/Decode helpers in this package).
	SaveAnalysis(ctx context.Context, tradeID int64, kind model.AnalysisKind, payload string) error

	// GetLastNTrades returns up to n trades ordered by created_at
	// descending, ties broken by id descending.
	GetLastNTrades(ctx context.Context, n int) ([]*model.Trade, error)

	// GetTradesForBehavioralHistory returns all trades carrying the full
	// behavioral triple, in a stable (but otherwise unspecified) order.
	GetTradesForBehavioralHistory(ctx context.Context) ([]*model.Trade, error)

	// GetTrade looks up a single trade by id.
	GetTrade(ctx context.Context, id int64) (*model.Trade, error)

	// GetAnalyses returns the analyses persisted against tradeID.
	GetAnalyses(ctx context.Context, tradeID int64) ([]*model.Analysis, error)

	Close() error
}
