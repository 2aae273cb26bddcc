// Package timing implements the entry-timing efficiency analyzer (spec §4.2):
// a pure function from an entry price and a post-entry bar series to a
// TimingReport, plus the verdict policy over entry_timing_score.
package timing

import (
	"TradeCoach/internal/model"
	"TradeCoach/internal/series"
)

// Analyze computes MFE, MAE, ideal entry, timing score, missed profit
// potential, and verdict for the post-entry window. window should already be
// sliced to the bars strictly after entry_date and bounded by horizon (see
// series.Series.After); an empty window yields an UNKNOWN verdict with all
// excursion fields zeroed, per spec §4.2.
func Analyze(entryPrice float64, window *series.Series) (*model.TimingReport, error) {
	if entryPrice <= 0 {
		return nil, model.InvalidInputf("entry price must be positive, got %.4f", entryPrice)
	}

	if window.Len() == 0 {
		return &model.TimingReport{Verdict: model.VerdictUnknown}, nil
	}

	high := window.MaxHigh()
	low := window.MinLow()

	mfe := high - entryPrice
	mae := low - entryPrice
	idealEntry := low

	mfePercent := 100 * mfe / entryPrice
	maePercent := 100 * mae / entryPrice
	entryTimingScore := 100 * (idealEntry - entryPrice) / entryPrice

	missed := 0.0
	if idealEntry > 0 {
		missed = 100 * (high - idealEntry) / idealEntry
	}
	if missed < 0 {
		missed = 0
	}

	return &model.TimingReport{
		MFE:                   mfe,
		MAE:                   mae,
		MFEPercent:            mfePercent,
		MAEPercent:            maePercent,
		IdealEntry:            idealEntry,
		EntryTimingScore:      entryTimingScore,
		MissedProfitPotential: missed,
		Verdict:               verdict(entryTimingScore),
	}, nil
}

// verdict maps entry_timing_score onto the four-bucket scale from spec §4.2.
// Boundaries are lower-bound-inclusive: 0 is EXCELLENT, -5 is GOOD, -10 is FAIR.
func verdict(score float64) model.Verdict {
	switch {
	case score >= 0:
		return model.VerdictExcellent
	case score >= -5:
		return model.VerdictGood
	case score >= -10:
		return model.VerdictFair
	default:
		return model.VerdictPoor
	}
}
