package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"TradeCoach/internal/model"
)

// SQLiteStore persists trades and analyses to a local SQLite database file,
// grounded on the reference codebase's recorder: a pure-Go driver (no cgo),
// WAL journaling so an external reader is never blocked by the
// orchestrator's writes, and a process-local mutex serializing writes the
// driver itself does not guarantee under concurrent goroutines.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database at path and runs the
// idempotent schema migration.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, model.StoreErr("open sqlite database", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, model.StoreErr("set WAL mode", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.Init(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.Info().Str("path", path).Msg("sqlite store opened")
	return s, nil
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS trades (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol        TEXT NOT NULL,
			entry_price   REAL NOT NULL,
			entry_date    INTEGER NOT NULL,
			horizon       INTEGER NOT NULL,
			position_size REAL,
			stock_beta    REAL,
			sector        TEXT,
			created_at    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_entry_date ON trades(entry_date)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_created_at ON trades(created_at)`,

		`CREATE TABLE IF NOT EXISTS analyses (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			trade_id   INTEGER NOT NULL REFERENCES trades(id),
			kind       TEXT NOT NULL,
			payload    TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_trade_id ON analyses(trade_id)`,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return model.StoreErr(fmt.Sprintf("migrate: %s", stmt[:30]), err)
		}
	}
	return nil
}

func (s *SQLiteStore) SaveTrade(ctx context.Context, trade *model.Trade) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()

	var posSize, beta sql.NullFloat64
	var sector sql.NullString
	if b := trade.Behavioral; b != nil {
		posSize = sql.NullFloat64{Float64: b.PositionSize, Valid: true}
		beta = sql.NullFloat64{Float64: b.StockBeta, Valid: true}
		sector = sql.NullString{String: b.Sector, Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO trades
		(symbol, entry_price, entry_date, horizon, position_size, stock_beta, sector, created_at)
		VALUES (?,?,?,?,?,?,?,?)`,
		trade.Symbol, trade.EntryPrice, trade.EntryDate.Unix(), trade.Horizon,
		posSize, beta, sector, now.Unix(),
	)
	if err != nil {
		return 0, model.StoreErr("insert trade", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, model.StoreErr("read trade id", err)
	}
	return id, nil
}

func (s *SQLiteStore) SaveAnalysis(ctx context.Context, tradeID int64, kind model.AnalysisKind, payload string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `INSERT INTO analyses
		(trade_id, kind, payload, created_at) VALUES (?,?,?,?)`,
		tradeID, string(kind), payload, time.Now().UTC().Unix(),
	)
	if err != nil {
		return model.StoreErr("insert analysis", err)
	}
	return nil
}

func (s *SQLiteStore) GetLastNTrades(ctx context.Context, n int) ([]*model.Trade, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, symbol, entry_price, entry_date, horizon,
		position_size, stock_beta, sector, created_at
		FROM trades ORDER BY created_at DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, model.StoreErr("query last n trades", err)
	}
	defer rows.Close()
	return scanTrades(rows)
}

func (s *SQLiteStore) GetTradesForBehavioralHistory(ctx context.Context) ([]*model.Trade, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, symbol, entry_price, entry_date, horizon,
		position_size, stock_beta, sector, created_at
		FROM trades
		WHERE position_size IS NOT NULL AND stock_beta IS NOT NULL AND sector IS NOT NULL
		ORDER BY id ASC`)
	if err != nil {
		return nil, model.StoreErr("query behavioral history", err)
	}
	defer rows.Close()
	return scanTrades(rows)
}

func (s *SQLiteStore) GetTrade(ctx context.Context, id int64) (*model.Trade, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, symbol, entry_price, entry_date, horizon,
		position_size, stock_beta, sector, created_at FROM trades WHERE id = ?`, id)
	t, err := scanTradeRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.StoreErr(fmt.Sprintf("trade %d not found", id), err)
		}
		return nil, model.StoreErr("query trade", err)
	}
	return t, nil
}

func (s *SQLiteStore) GetAnalyses(ctx context.Context, tradeID int64) ([]*model.Analysis, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, trade_id, kind, payload, created_at
		FROM analyses WHERE trade_id = ? ORDER BY id ASC`, tradeID)
	if err != nil {
		return nil, model.StoreErr("query analyses", err)
	}
	defer rows.Close()

	var out []*model.Analysis
	for rows.Next() {
		var a model.Analysis
		var createdAt int64
		if err := rows.Scan(&a.ID, &a.TradeID, &a.Kind, &a.Payload, &createdAt); err != nil {
			return nil, model.StoreErr("scan analysis", err)
		}
		a.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	log.Info().Msg("closing sqlite store")
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTradeRow(row rowScanner) (*model.Trade, error) {
	var t model.Trade
	var entryDate, createdAt int64
	var posSize, beta sql.NullFloat64
	var sector sql.NullString

	if err := row.Scan(&t.ID, &t.Symbol, &t.EntryPrice, &entryDate, &t.Horizon,
		&posSize, &beta, &sector, &createdAt); err != nil {
		return nil, err
	}
	t.EntryDate = time.Unix(entryDate, 0).UTC()
	t.CreatedAt = time.Unix(createdAt, 0).UTC()
	if posSize.Valid && beta.Valid && sector.Valid {
		t.Behavioral = &model.BehavioralAttributes{
			PositionSize: posSize.Float64,
			StockBeta:    beta.Float64,
			Sector:       sector.String,
		}
	}
	return &t, nil
}

func scanTrades(rows *sql.Rows) ([]*model.Trade, error) {
	var out []*model.Trade
	for rows.Next() {
		t, err := scanTradeRow(rows)
		if err != nil {
			return nil, model.StoreErr("scan trade", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
