package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Paulescu/crypto-sentiment-with-llms/pkg/llm"
	"github.com/go-playground/assert/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: 401", llm.ErrAuth), "auth"},
		{fmt.Errorf("%w: 404", llm.ErrConfiguration), "configuration"},
		{fmt.Errorf("%w: dial", llm.ErrBackendUnavailable), "unavailable"},
		{fmt.Errorf("%w: enum", llm.ErrSchemaViolation), "schema"},
		{errors.New("???"), "other"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorKind(tt.err))
		})
	}
}

func TestObserve(t *testing.T) {
	ObserveSignal("fake", "bullish")
	ObserveSignal("fake", "bullish")
	ObserveError("fake", llm.ErrSchemaViolation)

	assert.Equal(t, float64(2), testutil.ToFloat64(SignalsTotal.WithLabelValues("fake", "bullish")))
	assert.Equal(t, float64(1), testutil.ToFloat64(SignalErrorsTotal.WithLabelValues("fake", "schema")))
}
