package metrics

import (
	"errors"
	"net/http"

	"github.com/Paulescu/crypto-sentiment-with-llms/pkg/llm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "signals_total", Help: "Market signals extracted"},
		[]string{"backend", "signal"},
	)
	SignalErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "signal_errors_total", Help: "Failed signal extractions by error kind"},
		[]string{"backend", "kind"},
	)
)

func init() {
	prometheus.MustRegister(SignalsTotal, SignalErrorsTotal)
}

// ErrorKind buckets an extraction error for the kind label.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, llm.ErrAuth):
		return "auth"
	case errors.Is(err, llm.ErrConfiguration):
		return "configuration"
	case errors.Is(err, llm.ErrBackendUnavailable):
		return "unavailable"
	case errors.Is(err, llm.ErrSchemaViolation):
		return "schema"
	default:
		return "other"
	}
}

func ObserveSignal(backend, signal string) {
	SignalsTotal.WithLabelValues(backend, signal).Inc()
}

func ObserveError(backend string, err error) {
	SignalErrorsTotal.WithLabelValues(backend, ErrorKind(err)).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
