package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client    *openai.Client
	model     openai.ChatModel
	maxTokens int64
}

func NewOpenAIClient(cfg Config) *OpenAIClient {
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

	model := openai.ChatModelGPT4oMini
	if cfg.Model != "" {
		model = openai.ChatModel(cfg.Model)
	}

	client := openai.NewClient(opts...)
	return &OpenAIClient{
		client:    &client,
		model:     model,
		maxTokens: int64(cfg.MaxTokens),
	}
}

func (c *OpenAIClient) Name() string {
	return ProviderOpenAI + ":" + string(c.model)
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string, schema Schema) (json.RawMessage, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxCompletionTokens: openai.Int(c.maxTokens),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        schema.Name,
					Description: openai.String(schema.Description),
					Schema:      schema.JSON(),
					Strict:      openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: openai API error: %w", mapStatus(apiErr.StatusCode), err)
		}
		return nil, fmt.Errorf("%w: openai request failed: %w", ErrBackendUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no response from openai", ErrSchemaViolation)
	}

	msg := resp.Choices[0].Message
	if msg.Refusal != "" {
		return nil, fmt.Errorf("%w: openai refused: %s", ErrSchemaViolation, msg.Refusal)
	}

	content := cleanJSONResponse(msg.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: empty content from openai", ErrSchemaViolation)
	}
	return json.RawMessage(content), nil
}
