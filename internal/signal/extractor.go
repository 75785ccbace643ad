package signal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Paulescu/crypto-sentiment-with-llms/pkg/llm"
)

// Classifier is anything that can turn text into a MarketSignal.
type Classifier interface {
	GetSignal(ctx context.Context, text string) (MarketSignal, error)
}

// Extractor renders the prompt, makes a single backend call and validates
// the reply. It holds no per-call state. Concurrency safety depends on the
// backend client, so concurrent callers should serialize access or build one
// Extractor each.
type Extractor struct {
	client llm.StructuredClient
	prompt *Prompt
	schema llm.Schema
}

func NewExtractor(client llm.StructuredClient, prompt *Prompt) *Extractor {
	if prompt == nil {
		prompt = DefaultPrompt
	}
	return &Extractor{client: client, prompt: prompt, schema: marketSignalSchema}
}

// FromConfig builds an Extractor backed by the provider named in cfg.
func FromConfig(cfg llm.Config) (*Extractor, error) {
	client, err := llm.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return NewExtractor(client, DefaultPrompt), nil
}

func (e *Extractor) Backend() string {
	return e.client.Name()
}

func (e *Extractor) GetSignal(ctx context.Context, text string) (MarketSignal, error) {
	prompt, err := e.prompt.Render(text)
	if err != nil {
		return MarketSignal{}, err
	}

	raw, err := e.client.Generate(ctx, prompt, e.schema)
	if err != nil {
		return MarketSignal{}, err
	}

	return decodeMarketSignal(raw)
}

func decodeMarketSignal(raw json.RawMessage) (MarketSignal, error) {
	var parsed struct {
		Signal    *string `json:"signal"`
		Reasoning *string `json:"reasoning"`
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&parsed); err != nil {
		return MarketSignal{}, fmt.Errorf("%w: failed to parse response: %w, content: %s", llm.ErrSchemaViolation, err, raw)
	}
	if _, err := dec.Token(); err != io.EOF {
		return MarketSignal{}, fmt.Errorf("%w: trailing content after object, content: %s", llm.ErrSchemaViolation, raw)
	}

	if parsed.Signal == nil || parsed.Reasoning == nil {
		return MarketSignal{}, fmt.Errorf("%w: missing required field, content: %s", llm.ErrSchemaViolation, raw)
	}

	return NewMarketSignal(*parsed.Signal, *parsed.Reasoning)
}
