package coach

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"TradeCoach/internal/behavior"
	"TradeCoach/internal/marketdata"
	"TradeCoach/internal/model"
	"TradeCoach/internal/store"
	"TradeCoach/internal/timing"
)

// sentinelTradeID is returned for unsaved requests, per spec §4.5 step 4
// ("synthetic sentinel ≤ 0 not persisted").
const sentinelTradeID int64 = 0

// Orchestrator wires a market-data source and a store together behind the
// single analyze(request) operation. Both are injected at construction time
// so tests can supply the mock adapter and an in-memory store (spec §9,
// "Global state").
type Orchestrator struct {
	Live  marketdata.Fetcher
	Mock  marketdata.Fetcher
	Store store.Store
}

// NewOrchestrator builds an Orchestrator from its three collaborators.
func NewOrchestrator(live, mock marketdata.Fetcher, st store.Store) *Orchestrator {
	return &Orchestrator{Live: live, Mock: mock, Store: st}
}

// Analyze runs the full coaching pipeline for one request (spec §4.5).
func (o *Orchestrator) Analyze(ctx context.Context, req *Request) (*model.CoachingReport, error) {
	requestID := uuid.NewString()
	logger := log.With().Str("request_id", requestID).Str("symbol", req.Symbol).Logger()

	// Step 1: validate before any I/O.
	if err := req.Validate(); err != nil {
		logger.Warn().Err(err).Msg("request failed validation")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, model.Cancelled("analyze cancelled before fetch")
	}

	// Step 2: acquire the adapter and fetch the bar window.
	fetcher := o.fetcherFor(req.Source)
	bars, err := fetcher.Fetch(ctx, req.Symbol, req.Horizon)
	if err != nil {
		logger.Error().Err(err).Str("source", string(req.Source)).Msg("market data fetch failed")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, model.Cancelled("analyze cancelled after fetch")
	}

	// Step 3: timing analysis over the post-entry window.
	window := bars.After(req.EntryDate, req.Horizon)
	timingReport, err := timing.Analyze(req.EntryPrice, window)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, model.Cancelled("analyze cancelled after timing analysis")
	}

	// Step 4: persist the trade, if requested.
	tradeID := sentinelTradeID
	candidate := req.trade()
	if req.Save {
		tradeID, err = o.Store.SaveTrade(ctx, candidate)
		if err != nil {
			logger.Error().Err(err).Msg("save trade failed")
			return nil, err
		}
		candidate.ID = tradeID
	}

	// Step 5: gather behavioral history unconditionally and analyze.
	history, err := o.Store.GetTradesForBehavioralHistory(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("load behavioral history failed")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, model.Cancelled("analyze cancelled after history load")
	}
	behavioralReport := behavior.Analyze(candidate, history)

	// Step 6: persist analyses, if the trade was saved.
	persisted := req.Save
	if req.Save {
		if err := o.persistAnalyses(ctx, tradeID, timingReport, behavioralReport); err != nil {
			logger.Warn().Err(err).Msg("trade persisted but analysis storage failed")
			persisted = false
		}
	}

	return &model.CoachingReport{
		TradeID:           tradeID,
		Trade:             candidate,
		Timing:            timingReport,
		Behavioral:        behavioralReport,
		Bars:              bars.Len(),
		PersistedAnalysis: persisted,
	}, nil
}

func (o *Orchestrator) fetcherFor(source Source) marketdata.Fetcher {
	if source == SourceLive {
		return o.Live
	}
	return o.Mock
}

func (o *Orchestrator) persistAnalyses(ctx context.Context, tradeID int64, t *model.TimingReport, b *model.BehavioralReport) error {
	timingPayload, err := store.EncodeTiming(t)
	if err != nil {
		return err
	}
	if err := o.Store.SaveAnalysis(ctx, tradeID, model.AnalysisKindTiming, timingPayload); err != nil {
		return err
	}

	behavioralPayload, err := store.EncodeBehavioral(b)
	if err != nil {
		return err
	}
	return o.Store.SaveAnalysis(ctx, tradeID, model.AnalysisKindBehavioral, behavioralPayload)
}
