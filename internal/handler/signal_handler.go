package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Paulescu/crypto-sentiment-with-llms/internal/metrics"
	"github.com/Paulescu/crypto-sentiment-with-llms/internal/signal"
	"github.com/Paulescu/crypto-sentiment-with-llms/pkg/llm"
	"github.com/gin-gonic/gin"
)

type SignalHandler struct {
	classifier signal.Classifier
	backend    string
}

func NewSignalHandler(classifier signal.Classifier, backend string) *SignalHandler {
	return &SignalHandler{classifier: classifier, backend: backend}
}

// GetSignal classifies the posted text. Empty text is forwarded as is.
func (h *SignalHandler) GetSignal(c *gin.Context) {
	var req SignalRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body must be JSON with a text field"})
		return
	}

	result, err := h.classifier.GetSignal(c.Request.Context(), *req.Text)
	if err != nil {
		metrics.ObserveError(h.backend, err)
		slog.Error("error extracting signal", "error", err, "backend", h.backend)
		status, msg := errorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	metrics.ObserveSignal(h.backend, result.Signal.String())
	c.JSON(http.StatusOK, SignalResponse{
		Signal:    result.Signal.String(),
		Reasoning: result.Reasoning,
	})
}

func (h *SignalHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"backend": h.backend,
	})
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, llm.ErrBackendUnavailable):
		return http.StatusServiceUnavailable, "Model backend unavailable"
	case errors.Is(err, llm.ErrSchemaViolation):
		return http.StatusBadGateway, "Model returned an invalid signal"
	case errors.Is(err, llm.ErrAuth), errors.Is(err, llm.ErrConfiguration):
		return http.StatusInternalServerError, "Model backend misconfigured"
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}
