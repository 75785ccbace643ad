package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestOpenAIGenerate_JSONSchema(t *testing.T) {
	var req map[string]any
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &req)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1732233600,
			"model": "gpt-4o-mini",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "{\"signal\":\"bearish\",\"reasoning\":\"rate hikes drain liquidity\"}"}
			}]
		}`)
	}))
	defer srv.Close()

	client := NewOpenAIClient(Config{APIKey: "test-key", MaxTokens: 300, BaseURL: srv.URL})
	raw, err := client.Generate(context.Background(), "FED to increase interest rates", testSchema)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, `{"reasoning":"rate hikes drain liquidity","signal":"bearish"}`, compactJSON(t, raw))

	assert.Equal(t, "gpt-4o-mini", req["model"])
	assert.Equal(t, float64(300), req["max_completion_tokens"])
	format, _ := req["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	schema, _ := format["json_schema"].(map[string]any)
	assert.Equal(t, "market_signal", schema["name"])
	assert.Equal(t, true, schema["strict"])
}

func TestOpenAIGenerate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"chatcmpl-2","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[]}`)
	}))
	defer srv.Close()

	client := NewOpenAIClient(Config{APIKey: "test-key", MaxTokens: 300, BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), "x", testSchema)

	assert.Equal(t, true, errors.Is(err, ErrSchemaViolation))
}

func TestOpenAIGenerate_Unauthorized(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`)
	}))
	defer srv.Close()

	client := NewOpenAIClient(Config{APIKey: "bad-key", MaxTokens: 300, BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), "x", testSchema)

	assert.Equal(t, true, errors.Is(err, ErrAuth))
	assert.Equal(t, 1, calls)
}
