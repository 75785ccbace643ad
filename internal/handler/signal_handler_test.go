package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Paulescu/crypto-sentiment-with-llms/internal/signal"
	"github.com/Paulescu/crypto-sentiment-with-llms/pkg/llm"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeClassifier struct {
	result signal.MarketSignal
	err    error
	texts  []string
}

func (f *fakeClassifier) GetSignal(ctx context.Context, text string) (signal.MarketSignal, error) {
	f.texts = append(f.texts, text)
	return f.result, f.err
}

func newTestRouter(classifier signal.Classifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSignalHandler(classifier, "fake")
	r.POST("/signal", h.GetSignal)
	r.GET("/health", h.GetHealth)
	return r
}

func postSignal(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/signal", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestGetSignal_OK(t *testing.T) {
	classifier := &fakeClassifier{
		result: signal.MarketSignal{Signal: signal.Bullish, Reasoning: "pro-crypto SEC chair"},
	}
	r := newTestRouter(classifier)

	w := postSignal(r, `{"text":"Trump Said appoints Crypto Lawyer Teresa Goody Guillén to Lead SEC"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var res SignalResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "bullish", res.Signal)
	assert.Equal(t, "pro-crypto SEC chair", res.Reasoning)
	assert.Equal(t, []string{"Trump Said appoints Crypto Lawyer Teresa Goody Guillén to Lead SEC"}, classifier.texts)
}

func TestGetSignal_EmptyTextForwarded(t *testing.T) {
	classifier := &fakeClassifier{
		result: signal.MarketSignal{Signal: signal.Neutral, Reasoning: signal.ReasoningNotEnoughInfo},
	}
	r := newTestRouter(classifier)

	w := postSignal(r, `{"text":""}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{""}, classifier.texts)
}

func TestGetSignal_BadRequest(t *testing.T) {
	for _, body := range []string{`not json`, `{}`, `{"text":42}`} {
		t.Run(body, func(t *testing.T) {
			classifier := &fakeClassifier{}
			r := newTestRouter(classifier)

			w := postSignal(r, body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, 0, len(classifier.texts))
		})
	}
}

func TestGetSignal_BackendErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{llm.ErrBackendUnavailable, http.StatusServiceUnavailable},
		{llm.ErrSchemaViolation, http.StatusBadGateway},
		{llm.ErrAuth, http.StatusInternalServerError},
		{llm.ErrConfiguration, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			r := newTestRouter(&fakeClassifier{err: fmt.Errorf("%w: boom", tt.err)})

			w := postSignal(r, `{"text":"FED to increase interest rates"}`)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestGetHealth(t *testing.T) {
	r := newTestRouter(&fakeClassifier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "healthy", res["status"])
	assert.Equal(t, "fake", res["backend"])
}
