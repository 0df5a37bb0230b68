package model

import (
	"fmt"
	"strings"
)

// SignalType is the sentiment attached to a discovered ticker.
type SignalType string

const (
	SignalPositive SignalType = "positive"
	SignalNegative SignalType = "negative"
	SignalNeutral  SignalType = "neutral"
)

// UnknownName is used when the model does not name the company.
const UnknownName = "unknown"

// DefaultConfidence is applied when a signal carries no usable confidence.
const DefaultConfidence = 0.5

// ParseSignalType maps a free-text label onto a SignalType. Matching is
// case-insensitive; anything unrecognised (including "") is neutral.
func ParseSignalType(s string) SignalType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return SignalPositive
	case "negative":
		return SignalNegative
	default:
		return SignalNeutral
	}
}

// StockSignal is one discovered (ticker, sentiment, confidence, rationale)
// tuple. Values are built once and never mutated.
type StockSignal struct {
	Code       string     `json:"code"`
	Name       string     `json:"name"`
	Type       SignalType `json:"signal"`
	Reason     string     `json:"reason"`
	Source     string     `json:"source"`
	Confidence float64    `json:"confidence"`
	NewsTitle  string     `json:"news_title"`
}

// IsPositive reports whether the signal is a positive one.
func (s StockSignal) IsPositive() bool {
	return s.Type == SignalPositive
}

func (s StockSignal) String() string {
	return fmt.Sprintf("%s %s [%s] %.0f%%", s.Code, s.Name, s.Type, s.Confidence*100)
}

// Codes projects signals onto their ticker codes, preserving order.
func Codes(signals []StockSignal) []string {
	codes := make([]string, 0, len(signals))
	for _, s := range signals {
		codes = append(codes, s.Code)
	}
	return codes
}
