package model

import "time"

// BehavioralAttributes bundles the three optional risk/position fields that
// are all-or-nothing for behavioral-history eligibility (spec §3). Modeling
// them as a single nested pointer, rather than three independently-nullable
// fields, makes that invariant structural instead of something every caller
// has to re-check.
type BehavioralAttributes struct {
	PositionSize float64
	StockBeta    float64
	Sector       string
}

// Trade is a persistent record of one executed entry. The analyses run
// against it are stored separately as Analysis rows keyed by its ID.
type Trade struct {
	ID         int64
	Symbol     string
	EntryPrice float64
	EntryDate  time.Time
	Horizon    int
	Behavioral *BehavioralAttributes
	CreatedAt  time.Time
}

// Eligible reports whether this trade carries the full behavioral triple and
// therefore counts toward the behavioral analyzer's history corpus.
func (t *Trade) Eligible() bool {
	return t.Behavioral != nil
}

// RecognizedHorizons are the horizon values §6 calls out as having display
// support; other positive values are still accepted by the orchestrator.
var RecognizedHorizons = map[int]bool{7: true, 30: true, 90: true}
