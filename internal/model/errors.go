package model

import "fmt"

// Kind classifies a CoachError so callers (chiefly the CLI) can map it onto
// an exit code without inspecting message text.
type Kind string

const (
	KindInvalidInput  Kind = "InvalidInput"
	KindMarketData    Kind = "MarketDataError"
	KindStore         Kind = "StoreError"
	KindCancelled     Kind = "Cancelled"
	KindInternalError Kind = "InternalError"
)

// MarketDataSubKind further classifies a KindMarketData error.
type MarketDataSubKind string

const (
	SubKindAuth      MarketDataSubKind = "Auth"
	SubKindNotFound  MarketDataSubKind = "NotFound"
	SubKindTransport MarketDataSubKind = "Transport"
	SubKindEmpty     MarketDataSubKind = "Empty"
)

// CoachError is the single error type returned across component boundaries.
// It wraps an underlying cause and carries the Kind needed for exit-code
// mapping at the CLI layer.
type CoachError struct {
	Kind    Kind
	SubKind MarketDataSubKind // only meaningful when Kind == KindMarketData
	Msg     string
	Cause   error
}

func (e *CoachError) Error() string {
	if e.SubKind != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s/%s: %s: %v", e.Kind, e.SubKind, e.Msg, e.Cause)
		}
		return fmt.Sprintf("%s/%s: %s", e.Kind, e.SubKind, e.Msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *CoachError) Unwrap() error { return e.Cause }

func InvalidInput(msg string) error {
	return &CoachError{Kind: KindInvalidInput, Msg: msg}
}

func InvalidInputf(format string, args ...interface{}) error {
	return &CoachError{Kind: KindInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

func MarketDataErr(sub MarketDataSubKind, msg string, cause error) error {
	return &CoachError{Kind: KindMarketData, SubKind: sub, Msg: msg, Cause: cause}
}

func StoreErr(msg string, cause error) error {
	return &CoachError{Kind: KindStore, Msg: msg, Cause: cause}
}

func Cancelled(msg string) error {
	return &CoachError{Kind: KindCancelled, Msg: msg}
}

func Internal(msg string, cause error) error {
	return &CoachError{Kind: KindInternalError, Msg: msg, Cause: cause}
}
