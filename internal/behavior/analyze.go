// Package behavior implements the behavioral anomaly detector (spec §4.3):
// an online z-score model over the user's own trade history, with sector
// novelty detection and multi-factor aggregation.
package behavior

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"TradeCoach/internal/model"
)

// minSample is the minimum number of eligible historical trades required
// before z-scores are meaningful (spec §4.3, "Minimum-sample gate").
const minSample = 2

// zThreshold is the absolute z-score above which an Anomaly is raised.
const zThreshold = 2.0

// Analyze compares candidate against the eligible subset of history (trades
// carrying the full behavioral triple, excluding candidate.ID) and returns
// the behavioral report. Analyze never errors: an ineligible or
// history-starved candidate simply yields an empty report.
func Analyze(candidate *model.Trade, history []*model.Trade) *model.BehavioralReport {
	report := &model.BehavioralReport{}

	if candidate == nil || candidate.Behavioral == nil {
		return report
	}

	eligible := filterEligible(history, candidate.ID)
	if len(eligible) < minSample {
		return report
	}

	positionSizes := make([]float64, len(eligible))
	stockBetas := make([]float64, len(eligible))
	sectors := make([]string, len(eligible))
	for i, h := range eligible {
		positionSizes[i] = h.Behavioral.PositionSize
		stockBetas[i] = h.Behavioral.StockBeta
		sectors[i] = h.Behavioral.Sector
	}

	var anomalies []model.Anomaly

	if m, anomaly := evaluateAttribute(model.AnomalyPositionSize, candidate.Behavioral.PositionSize, positionSizes); m != nil {
		report.PositionSize = m
		if anomaly != nil {
			anomalies = append(anomalies, *anomaly)
		}
	}
	if m, anomaly := evaluateAttribute(model.AnomalyStockBeta, candidate.Behavioral.StockBeta, stockBetas); m != nil {
		report.StockBeta = m
		if anomaly != nil {
			anomalies = append(anomalies, *anomaly)
		}
	}
	report.Anomalies = anomalies
	report.IsAnomaly = len(anomalies) > 0

	if warning := sectorNovelty(candidate.Behavioral.Sector, sectors); warning != nil {
		report.Warnings = []model.SectorWarning{*warning}
	}

	return report
}

// filterEligible keeps history trades with the full behavioral triple,
// excluding the candidate's own id (spec §4.3, "History filter").
func filterEligible(history []*model.Trade, excludeID int64) []*model.Trade {
	var out []*model.Trade
	for _, h := range history {
		if h == nil || h.Behavioral == nil {
			continue
		}
		if h.ID == excludeID {
			continue
		}
		out = append(out, h)
	}
	return out
}

// evaluateAttribute computes mean/std/z-score for one numeric attribute and,
// if the breach threshold is crossed, the corresponding Anomaly. It always
// returns non-nil metrics once the sample gate has passed (mean is recorded
// even when std is zero, per spec step 3).
func evaluateAttribute(kind model.AnomalyType, current float64, sample []float64) (*model.AttributeMetrics, *model.Anomaly) {
	mean := meanOf(sample)
	std := sampleStd(sample, mean)

	metrics := &model.AttributeMetrics{Mean: mean, Std: std}
	if std == 0 {
		return metrics, nil
	}

	z := (current - mean) / std
	metrics.ZScore = z
	metrics.HasZ = true

	if math.Abs(z) < zThreshold {
		return metrics, nil
	}

	return metrics, &model.Anomaly{
		Type:           kind,
		Message:        anomalyMessage(kind, z, current, mean),
		CurrentValue:   current,
		HistoricalMean: mean,
		ZScore:         z,
	}
}

func anomalyMessage(kind model.AnomalyType, z, current, mean float64) string {
	multiplier := 0.0
	if mean != 0 {
		multiplier = current / mean
	}
	switch kind {
	case model.AnomalyPositionSize:
		direction := "larger"
		if z < 0 {
			direction = "smaller"
		}
		return fmt.Sprintf("Position size is %.2f standard deviations %s than usual (%.1fx the historical mean)", math.Abs(z), direction, multiplier)
	case model.AnomalyStockBeta:
		direction, risk := "higher", "riskier"
		if z < 0 {
			direction, risk = "lower", "less risky"
		}
		return fmt.Sprintf("Stock beta is %.2f standard deviations %s than usual (%s, %.1fx the historical mean)", math.Abs(z), direction, risk, multiplier)
	default:
		return fmt.Sprintf("%.2f standard deviations from usual", math.Abs(z))
	}
}

// sectorNovelty reports whether currentSector is absent from the eligible
// history's sector set, case-insensitively, preserving original case in the
// warning's fields (spec §4.3, "Sector novelty").
func sectorNovelty(currentSector string, historySectors []string) *model.SectorWarning {
	if currentSector == "" {
		return nil
	}
	known := make(map[string]string, len(historySectors)) // lower -> original
	for _, s := range historySectors {
		known[strings.ToLower(s)] = s
	}
	if _, seen := known[strings.ToLower(currentSector)]; seen {
		return nil
	}

	originals := make([]string, 0, len(known))
	for _, orig := range known {
		originals = append(originals, orig)
	}
	sort.Strings(originals)

	return &model.SectorWarning{
		Message:       fmt.Sprintf("New sector: %q is not in your trading history", currentSector),
		CurrentSector: currentSector,
		KnownSectors:  originals,
	}
}

func meanOf(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStd is the Bessel-corrected (N-1) sample standard deviation.
func sampleStd(xs []float64, mean float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	sumSq := 0.0
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)-1))
}
