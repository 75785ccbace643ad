package signal

import (
	"errors"
	"strings"
	"testing"

	"github.com/Paulescu/crypto-sentiment-with-llms/pkg/llm"
	"github.com/go-playground/assert/v2"
)

func TestParseSignal(t *testing.T) {
	tests := []struct {
		in      string
		want    Signal
		wantErr bool
	}{
		{in: "bullish", want: Bullish},
		{in: "bearish", want: Bearish},
		{in: "neutral", want: Neutral},
		{in: "NEUTRAL", wantErr: true},
		{in: " bullish", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSignal(tt.in)
			assert.Equal(t, tt.wantErr, errors.Is(err, llm.ErrSchemaViolation))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewMarketSignal(t *testing.T) {
	m, err := NewMarketSignal("bearish", "FED hikes")
	assert.Equal(t, nil, err)
	assert.Equal(t, MarketSignal{Signal: Bearish, Reasoning: "FED hikes"}, m)

	_, err = NewMarketSignal("bearish", "")
	assert.Equal(t, true, errors.Is(err, llm.ErrSchemaViolation))

	_, err = NewMarketSignal("bearish", " \t\n")
	assert.Equal(t, true, errors.Is(err, llm.ErrSchemaViolation))
}

func TestPromptRender(t *testing.T) {
	out, err := DefaultPrompt.Render("FED to increase interest rates")
	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.HasPrefix(out, "You are an expert at analyzing news articles"))
	assert.Equal(t, true, strings.HasSuffix(out, "Here is the news article:\nFED to increase interest rates\n"))

	// no HTML escaping
	out, err = DefaultPrompt.Render(`S&P <500> "rally"`)
	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.Contains(out, `S&P <500> "rally"`))

	out, err = DefaultPrompt.Render("")
	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.HasSuffix(out, "Here is the news article:\n\n"))
}

func TestNewPrompt_RequiresSlot(t *testing.T) {
	_, err := NewPrompt("Classify this headline.")
	assert.NotEqual(t, nil, err)

	_, err = NewPrompt("Headline: {{.Text}}\nAgain: {{.Text}}")
	assert.NotEqual(t, nil, err)

	p, err := NewPrompt("Headline: {{.Text}}")
	assert.Equal(t, nil, err)
	out, _ := p.Render("ETH breaks $4k")
	assert.Equal(t, "Headline: ETH breaks $4k", out)
}
