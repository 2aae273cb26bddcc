package store

import (
	"encoding/json"
	"fmt"

	"TradeCoach/internal/model"
)

// EncodeTiming serializes a TimingReport to the opaque payload format.
func EncodeTiming(r *model.TimingReport) (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", model.Internal("encode timing payload", err)
	}
	return string(b), nil
}

// DecodeTiming is the inverse of EncodeTiming.
func DecodeTiming(payload string) (*model.TimingReport, error) {
	var r model.TimingReport
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, model.Internal("decode timing payload", err)
	}
	return &r, nil
}

// EncodeBehavioral serializes a BehavioralReport to the opaque payload format.
func EncodeBehavioral(r *model.BehavioralReport) (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", model.Internal("encode behavioral payload", err)
	}
	return string(b), nil
}

// DecodeBehavioral is the inverse of EncodeBehavioral.
func DecodeBehavioral(payload string) (*model.BehavioralReport, error) {
	var r model.BehavioralReport
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, model.Internal("decode behavioral payload", err)
	}
	return &r, nil
}

// Decode dispatches on the analysis Kind, returning the underlying report as
// an interface{} (*model.TimingReport or *model.BehavioralReport).
func Decode(kind model.AnalysisKind, payload string) (interface{}, error) {
	switch kind {
	case model.AnalysisKindTiming:
		return DecodeTiming(payload)
	case model.AnalysisKindBehavioral:
		return DecodeBehavioral(payload)
	default:
		return nil, model.Internal(fmt.Sprintf("unknown analysis kind %q", kind), nil)
	}
}
