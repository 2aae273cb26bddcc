package model

import "time"

// Verdict is the timing analyzer's coarse-grained tag over entry_timing_score.
type Verdict string

const (
	VerdictExcellent Verdict = "EXCELLENT"
	VerdictGood      Verdict = "GOOD"
	VerdictFair      Verdict = "FAIR"
	VerdictPoor      Verdict = "POOR"
	VerdictUnknown   Verdict = "UNKNOWN"
)

// TimingReport is the output of the pure timing analyzer (spec §4.2).
type TimingReport struct {
	MFE                   float64 `json:"mfe"`
	MAE                   float64 `json:"mae"`
	MFEPercent            float64 `json:"mfe_percent"`
	MAEPercent            float64 `json:"mae_percent"`
	IdealEntry            float64 `json:"ideal_entry"`
	EntryTimingScore      float64 `json:"entry_timing_score"`
	MissedProfitPotential float64 `json:"missed_profit_potential"`
	Verdict               Verdict `json:"verdict"`
}

// AnomalyType names which numeric attribute an Anomaly was raised against.
type AnomalyType string

const (
	AnomalyPositionSize AnomalyType = "position_size"
	AnomalyStockBeta    AnomalyType = "stock_beta"
)

// Anomaly is a single z-score breach (spec §3).
type Anomaly struct {
	Type           AnomalyType `json:"type"`
	Message        string      `json:"message"`
	CurrentValue   float64     `json:"current_value"`
	HistoricalMean float64     `json:"historical_mean"`
	ZScore         float64     `json:"z_score"`
}

// SectorWarning flags a sector absent from the user's eligible history.
type SectorWarning struct {
	Message       string   `json:"message"`
	CurrentSector string   `json:"current_sector"`
	KnownSectors  []string `json:"known_sectors"`
}

// AttributeMetrics holds the mean/std/z-score triple for one numeric
// attribute, when a sample was large enough to compute it.
type AttributeMetrics struct {
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	ZScore float64 `json:"z_score,omitempty"`
	HasZ   bool    `json:"-"`
}

// BehavioralReport is the output of the pure behavioral analyzer (spec §4.3).
type BehavioralReport struct {
	IsAnomaly    bool              `json:"is_anomaly"`
	Anomalies    []Anomaly         `json:"anomalies"`
	Warnings     []SectorWarning   `json:"warnings"`
	PositionSize *AttributeMetrics `json:"position_size,omitempty"`
	StockBeta    *AttributeMetrics `json:"stock_beta,omitempty"`
}

// AnalysisKind tags a persisted analysis payload's shape.
type AnalysisKind string

const (
	AnalysisKindTiming     AnalysisKind = "timing"
	AnalysisKindBehavioral AnalysisKind = "behavioral"
)

// Analysis is one row of the analyses table: an opaque, kind-tagged payload.
type Analysis struct {
	ID        int64
	TradeID   int64
	Kind      AnalysisKind
	Payload   string // self-describing encoding (JSON) of TimingReport or BehavioralReport
	CreatedAt time.Time
}

// CoachingReport is the orchestrator's return value (spec §3, "Lifecycle").
type CoachingReport struct {
	TradeID           int64
	Trade             *Trade
	Timing            *TimingReport
	Behavioral        *BehavioralReport
	Bars              int // number of bars in the fetched window, for display
	PersistedAnalysis bool
}
