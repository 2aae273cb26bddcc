package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"TradeCoach/internal/model"
)

// MemoryStore is a functional in-memory Store, used for tests and
// --no-save dry runs that still need a history corpus to query. Unlike the
// teacher's NoopRecorder this one actually keeps the data, since the
// behavioral analyzer always queries history regardless of save.
type MemoryStore struct {
	mu        sync.Mutex
	trades    map[int64]*model.Trade
	analyses  map[int64][]*model.Analysis
	nextTrade int64
	nextAnal  int64
}

// NewMemoryStore returns an empty, ready-to-use store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		trades:   make(map[int64]*model.Trade),
		analyses: make(map[int64][]*model.Analysis),
	}
}

func (m *MemoryStore) Init(ctx context.Context) error { return nil }

func (m *MemoryStore) SaveTrade(ctx context.Context, trade *model.Trade) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextTrade++
	id := m.nextTrade

	cp := *trade
	cp.ID = id
	cp.CreatedAt = time.Now().UTC()
	if trade.Behavioral != nil {
		b := *trade.Behavioral
		cp.Behavioral = &b
	}
	m.trades[id] = &cp
	return id, nil
}

func (m *MemoryStore) SaveAnalysis(ctx context.Context, tradeID int64, kind model.AnalysisKind, payload string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.trades[tradeID]; !ok {
		return model.StoreErr("save analysis: unknown trade id", nil)
	}

	m.nextAnal++
	m.analyses[tradeID] = append(m.analyses[tradeID], &model.Analysis{
		ID:        m.nextAnal,
		TradeID:   tradeID,
		Kind:      kind,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (m *MemoryStore) GetLastNTrades(ctx context.Context, n int) ([]*model.Trade, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]*model.Trade, 0, len(m.trades))
	for _, t := range m.trades {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	if n < len(all) {
		all = all[:n]
	}
	return cloneTrades(all), nil
}

func (m *MemoryStore) GetTradesForBehavioralHistory(ctx context.Context) ([]*model.Trade, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*model.Trade
	for _, t := range m.trades {
		if t.Behavioral != nil {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return cloneTrades(out), nil
}

func (m *MemoryStore) GetTrade(ctx context.Context, id int64) (*model.Trade, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.trades[id]
	if !ok {
		return nil, model.StoreErr("trade not found", nil)
	}
	return cloneTrades([]*model.Trade{t})[0], nil
}

func (m *MemoryStore) GetAnalyses(ctx context.Context, tradeID int64) ([]*model.Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	src := m.analyses[tradeID]
	out := make([]*model.Analysis, len(src))
	for i, a := range src {
		cp := *a
		out[i] = &cp
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }

func cloneTrades(in []*model.Trade) []*model.Trade {
	out := make([]*model.Trade, len(in))
	for i, t := range in {
		cp := *t
		if t.Behavioral != nil {
			b := *t.Behavioral
			cp.Behavioral = &b
		}
		out[i] = &cp
	}
	return out
}
