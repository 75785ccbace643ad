package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiClient asks for application/json with a response schema, so the
// enum on signal is enforced by the API rather than by prompt wording.
type GeminiClient struct {
	cli       *genai.Client
	model     string
	maxTokens int32
}

func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}

	cli, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("%w: gemini client: %w", ErrConfiguration, err)
	}

	model := defaultGeminiModel
	if cfg.Model != "" {
		model = cfg.Model
	}
	return &GeminiClient{cli: cli, model: model, maxTokens: int32(cfg.MaxTokens)}, nil
}

func (g *GeminiClient) Name() string { return ProviderGemini + ":" + g.model }

func (g *GeminiClient) Generate(ctx context.Context, prompt string, schema Schema) (json.RawMessage, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   toGenaiSchema(schema),
		MaxOutputTokens:  g.maxTokens,
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: gemini API error: %w", mapGeminiError(apiErr), err)
		}
		var apiErrPtr *genai.APIError
		if errors.As(err, &apiErrPtr) {
			return nil, fmt.Errorf("%w: gemini API error: %w", mapGeminiError(*apiErrPtr), err)
		}
		return nil, fmt.Errorf("%w: gemini request failed: %w", ErrBackendUnavailable, err)
	}

	content := cleanJSONResponse(resp.Text())
	if content == "" {
		return nil, fmt.Errorf("%w: empty content from gemini", ErrSchemaViolation)
	}
	return json.RawMessage(content), nil
}

func toGenaiSchema(s Schema) *genai.Schema {
	out := &genai.Schema{
		Type:        genai.TypeObject,
		Description: s.Description,
		Properties:  make(map[string]*genai.Schema, len(s.Properties)),
		Required:    s.Required,
	}
	for name, raw := range s.Properties {
		prop, _ := raw.(map[string]any)
		ps := &genai.Schema{Type: genai.TypeString}
		if d, ok := prop["description"].(string); ok {
			ps.Description = d
		}
		if enum := s.Enum(name); len(enum) > 0 {
			ps.Enum = enum
		}
		out.Properties[name] = ps
	}
	return out
}

// mapGeminiError also looks at the RPC status and error details because the
// Gemini API rejects a bad key with 400 INVALID_ARGUMENT / API_KEY_INVALID.
func mapGeminiError(e genai.APIError) error {
	switch e.Status {
	case "UNAUTHENTICATED", "PERMISSION_DENIED":
		return ErrAuth
	}
	for _, d := range e.Details {
		if reason, _ := d["reason"].(string); reason == "API_KEY_INVALID" {
			return ErrAuth
		}
	}
	return mapStatus(e.Code)
}
