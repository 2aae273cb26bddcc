// Package watch implements the supplemental periodic re-analysis runner
// (spec §4.9): it shares the orchestrator and store with the one-shot CLI
// path and introduces no new analytical rules, re-invoking analyze() on a
// cron schedule instead of a single synchronous call.
package watch

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"TradeCoach/internal/coach"
	"TradeCoach/internal/model"
)

// ReportHandler is invoked with each re-analysis result as it completes.
type ReportHandler func(*model.CoachingReport)

// Runner drives a cron-scheduled re-analysis of a single open position.
type Runner struct {
	cron         *cron.Cron
	orchestrator *coach.Orchestrator
	request      *coach.Request
	onReport     ReportHandler
}

// NewRunner builds a Runner for one request, re-analyzed on every tick of
// cronExpr. The reference codebase's scheduler always forces Save=true for
// its recurring tasks; watch does the same, since a position tracked over
// time has no use for an unsaved, synthetic trade id on every tick.
func NewRunner(orchestrator *coach.Orchestrator, request *coach.Request, cronExpr string, onReport ReportHandler) (*Runner, error) {
	req := *request
	req.Save = true

	r := &Runner{
		cron:         cron.New(cron.WithSeconds()),
		orchestrator: orchestrator,
		request:      &req,
		onReport:     onReport,
	}

	if _, err := r.cron.AddFunc(cronExpr, func() { r.tick(context.Background()) }); err != nil {
		return nil, model.Internal("register watch schedule", err)
	}
	return r, nil
}

// Start begins the cron scheduler. Non-blocking; call Run to block until
// the context is cancelled.
func (r *Runner) Start() {
	r.cron.Start()
	log.Info().Str("symbol", r.request.Symbol).Msg("watch runner started")
}

// Stop gracefully stops the cron scheduler, waiting for any in-flight tick.
func (r *Runner) Stop() {
	<-r.cron.Stop().Done()
	log.Info().Str("symbol", r.request.Symbol).Msg("watch runner stopped")
}

// Run starts the runner and blocks until ctx is cancelled, then stops
// cleanly, mirroring the reference codebase's top-level context wiring.
func (r *Runner) Run(ctx context.Context) {
	r.Start()
	<-ctx.Done()
	r.Stop()
}

func (r *Runner) tick(ctx context.Context) {
	report, err := r.orchestrator.Analyze(ctx, r.request)
	if err != nil {
		log.Error().Err(err).Str("symbol", r.request.Symbol).Msg("watch tick failed")
		return
	}
	if r.onReport != nil {
		r.onReport(report)
	}
}
