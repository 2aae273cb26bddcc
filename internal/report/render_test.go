package report

import (
	"strings"
	"testing"
	"time"

	"TradeCoach/internal/model"
)

func sampleReport() *model.CoachingReport {
	return &model.CoachingReport{
		TradeID: 7,
		Trade: &model.Trade{
			Symbol:     "AAPL",
			EntryPrice: 12345.678,
			EntryDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			Horizon:    30,
		},
		Timing: &model.TimingReport{
			MFEPercent:            10,
			MAEPercent:            -5,
			IdealEntry:            95,
			EntryTimingScore:      -5,
			MissedProfitPotential: 2.5,
			Verdict:               model.VerdictFair,
		},
		Behavioral:        &model.BehavioralReport{},
		Bars:              7,
		PersistedAnalysis: true,
	}
}

func TestRender_ContainsAllSections(t *testing.T) {
	out := Render(sampleReport())
	for _, section := range []string{
		"=== TRADE SUMMARY ===",
		"=== TIMING EFFICIENCY ANALYSIS ===",
		"=== BEHAVIORAL PATTERN ANALYSIS ===",
		"=== COACHING ADVICE ===",
	} {
		if !strings.Contains(out, section) {
			t.Errorf("missing section %q in:\n%s", section, out)
		}
	}
}

func TestRender_ThousandsSeparatorOnEntryPrice(t *testing.T) {
	out := Render(sampleReport())
	if !strings.Contains(out, "$12,345.68") {
		t.Errorf("expected thousands-separated entry price, got:\n%s", out)
	}
}

func TestRender_UnsavedTradeIDPlaceholder(t *testing.T) {
	report := sampleReport()
	report.TradeID = 0
	out := Render(report)
	if !strings.Contains(out, "(not saved)") {
		t.Errorf("expected unsaved placeholder, got:\n%s", out)
	}
}

func TestRender_UnknownVerdictShortCircuits(t *testing.T) {
	report := sampleReport()
	report.Timing = &model.TimingReport{Verdict: model.VerdictUnknown}
	out := Render(report)
	if !strings.Contains(out, "UNKNOWN") {
		t.Errorf("expected UNKNOWN mention, got:\n%s", out)
	}
}

func TestRender_AnomalyAndWarningLines(t *testing.T) {
	report := sampleReport()
	report.Behavioral = &model.BehavioralReport{
		IsAnomaly: true,
		Anomalies: []model.Anomaly{{Message: "Position size is 3.00 standard deviations larger than usual (5.0x the historical mean)"}},
		Warnings:  []model.SectorWarning{{Message: `New sector: "Crypto" is not in your trading history`}},
	}
	out := Render(report)
	if !strings.Contains(out, "[ANOMALY]") || !strings.Contains(out, "[NOTE]") {
		t.Errorf("expected anomaly and note lines, got:\n%s", out)
	}
	if !strings.Contains(out, "review the anomalies above") {
		t.Errorf("expected coaching advice to flag the anomaly, got:\n%s", out)
	}
}
