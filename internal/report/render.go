// Package report renders a CoachingReport as CLI text, grounded on the
// reference codebase's string-builder formatter style (spec §6, "Report
// text format").
package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"TradeCoach/internal/model"
)

// Render formats report as the four-section CLI block: TRADE SUMMARY,
// TIMING EFFICIENCY ANALYSIS, BEHAVIORAL PATTERN ANALYSIS, COACHING ADVICE.
func Render(report *model.CoachingReport) string {
	var b strings.Builder

	writeTradeSummary(&b, report)
	writeTimingSection(&b, report.Timing)
	writeBehavioralSection(&b, report.Behavioral)
	writeCoachingAdvice(&b, report)

	return b.String()
}

func writeTradeSummary(b *strings.Builder, report *model.CoachingReport) {
	t := report.Trade
	b.WriteString("=== TRADE SUMMARY ===\n")
	b.WriteString(fmt.Sprintf("Symbol:       %s\n", t.Symbol))
	b.WriteString(fmt.Sprintf("Entry price:  $%s\n", humanize.FormatFloat("#,###.##", t.EntryPrice)))
	b.WriteString(fmt.Sprintf("Entry date:   %s\n", t.EntryDate.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Horizon:      %d days\n", t.Horizon))
	if !model.RecognizedHorizons[t.Horizon] {
		b.WriteString("              (non-standard horizon; recognized horizons are 7, 30 and 90 days)\n")
	}
	if report.TradeID > 0 {
		b.WriteString(fmt.Sprintf("Trade id:     %d\n", report.TradeID))
	} else {
		b.WriteString("Trade id:     (not saved)\n")
	}
	b.WriteString(fmt.Sprintf("Bars in window: %d\n\n", report.Bars))
}

func writeTimingSection(b *strings.Builder, t *model.TimingReport) {
	b.WriteString("=== TIMING EFFICIENCY ANALYSIS ===\n")
	if t.Verdict == model.VerdictUnknown {
		b.WriteString("No post-entry bars available yet; verdict UNKNOWN.\n\n")
		return
	}
	b.WriteString(fmt.Sprintf("Max favorable excursion:  %.2f%%\n", t.MFEPercent))
	b.WriteString(fmt.Sprintf("Max adverse excursion:    %.2f%%\n", t.MAEPercent))
	b.WriteString(fmt.Sprintf("Ideal entry:              $%s\n", humanize.FormatFloat("#,###.##", t.IdealEntry)))
	b.WriteString(fmt.Sprintf("Entry timing score:       %.2f%%\n", t.EntryTimingScore))
	b.WriteString(fmt.Sprintf("Missed profit potential:  %.2f%%\n", t.MissedProfitPotential))
	b.WriteString(fmt.Sprintf("Verdict:                  %s\n\n", t.Verdict))
}

func writeBehavioralSection(b *strings.Builder, r *model.BehavioralReport) {
	b.WriteString("=== BEHAVIORAL PATTERN ANALYSIS ===\n")
	if !r.IsAnomaly && len(r.Warnings) == 0 {
		b.WriteString("No anomalies detected.\n\n")
		return
	}
	for _, a := range r.Anomalies {
		b.WriteString(fmt.Sprintf("[ANOMALY] %s\n", a.Message))
	}
	for _, w := range r.Warnings {
		b.WriteString(fmt.Sprintf("[NOTE] %s\n", w.Message))
	}
	b.WriteString("\n")
}

func writeCoachingAdvice(b *strings.Builder, report *model.CoachingReport) {
	b.WriteString("=== COACHING ADVICE ===\n")

	switch report.Timing.Verdict {
	case model.VerdictExcellent, model.VerdictGood:
		b.WriteString("Entry timing was solid; no adjustment needed here.\n")
	case model.VerdictFair:
		b.WriteString("Entry timing was middling — consider scaling in on dips next time.\n")
	case model.VerdictPoor:
		b.WriteString("Entry chased strength; waiting for a pullback would likely have helped.\n")
	default:
		b.WriteString("Not enough post-entry data yet to grade timing.\n")
	}

	if report.Behavioral.IsAnomaly {
		b.WriteString("This trade deviates from your historical pattern — review the anomalies above before repeating it.\n")
	}
	if !report.PersistedAnalysis && report.TradeID > 0 {
		b.WriteString("Note: the trade was saved, but its analysis could not be persisted.\n")
	}
}
