// Package signal turns a news headline into a crypto market signal by asking
// an LLM backend for a structured judgment and validating what comes back.
package signal

import (
	"fmt"
	"strings"

	"github.com/Paulescu/crypto-sentiment-with-llms/pkg/llm"
)

type Signal string

const (
	Bullish Signal = "bullish"
	Bearish Signal = "bearish"
	Neutral Signal = "neutral"
)

// Reasoning sentinels the model is told to use with a neutral signal.
const (
	ReasoningNonRelevant   = "non-relevant"
	ReasoningNotEnoughInfo = "non-enough-info"
)

var signals = []Signal{Bullish, Bearish, Neutral}

// ParseSignal accepts only the exact lowercase tags.
func ParseSignal(s string) (Signal, error) {
	for _, v := range signals {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: signal %q is not one of bullish, bearish, neutral", llm.ErrSchemaViolation, s)
}

func (s Signal) String() string { return string(s) }

// MarketSignal is the result of one extraction. It is returned by value and
// never shared, so callers own it outright.
type MarketSignal struct {
	Signal    Signal `json:"signal"`
	Reasoning string `json:"reasoning"`
}

func NewMarketSignal(signal, reasoning string) (MarketSignal, error) {
	s, err := ParseSignal(signal)
	if err != nil {
		return MarketSignal{}, err
	}
	if strings.TrimSpace(reasoning) == "" {
		return MarketSignal{}, fmt.Errorf("%w: reasoning is empty", llm.ErrSchemaViolation)
	}
	return MarketSignal{Signal: s, Reasoning: reasoning}, nil
}

// NonRelevant reports whether the model flagged the text as unrelated to crypto.
func (m MarketSignal) NonRelevant() bool {
	return m.Reasoning == ReasoningNonRelevant
}

// NotEnoughInfo reports whether the model flagged the text as too thin to judge.
func (m MarketSignal) NotEnoughInfo() bool {
	return m.Reasoning == ReasoningNotEnoughInfo
}

var marketSignalSchema = llm.Schema{
	Name:        "market_signal",
	Description: "Market signal of a news article about the crypto market",
	Properties: map[string]any{
		"signal": map[string]any{
			"type": "string",
			"enum": []string{string(Bullish), string(Bearish), string(Neutral)},
			"description": "The market signal of the news article about the crypto market. " +
				"Set it as neutral if the text is not related to crypto market, or not enough " +
				"information to determine the signal.",
		},
		"reasoning": map[string]any{
			"type": "string",
			"description": "The reasoning for the market signal. " +
				"Set it as non-relevant if the text is not related to crypto market. " +
				"Set it as non-enough-info if there is not enough information to determine the signal.",
		},
	},
	Required: []string{"signal", "reasoning"},
}
