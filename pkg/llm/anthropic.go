package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

func NewAnthropicClient(cfg Config) *AnthropicClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	model := anthropic.ModelClaudeHaiku4_5
	if cfg.Model != "" {
		model = anthropic.Model(cfg.Model)
	}

	client := anthropic.NewClient(opts...)
	return &AnthropicClient{
		client:    &client,
		model:     model,
		maxTokens: int64(cfg.MaxTokens),
	}
}

func (c *AnthropicClient) Name() string {
	return ProviderAnthropic + ":" + string(c.model)
}

// Generate forces the model to call a single tool whose input schema is the
// requested schema, and returns the tool input.
func (c *AnthropicClient) Generate(ctx context.Context, prompt string, schema Schema) (json.RawMessage, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Tools: []anthropic.ToolUnionParam{
			{OfTool: &anthropic.ToolParam{
				Name:        schema.Name,
				Description: anthropic.String(schema.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: schema.Properties,
					Required:   schema.Required,
				},
			}},
		},
		ToolChoice: anthropic.ToolChoiceParamOfTool(schema.Name),
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: anthropic API error: %w", mapStatus(apiErr.StatusCode), err)
		}
		return nil, fmt.Errorf("%w: anthropic request failed: %w", ErrBackendUnavailable, err)
	}

	for _, block := range resp.Content {
		switch block.Type {
		case "tool_use":
			if block.Name == schema.Name && len(block.Input) > 0 {
				return block.Input, nil
			}
		case "text":
			if content := cleanJSONResponse(block.Text); content != "" {
				return json.RawMessage(content), nil
			}
		}
	}

	return nil, fmt.Errorf("%w: no %s output from anthropic (stop reason %q)", ErrSchemaViolation, schema.Name, resp.StopReason)
}
