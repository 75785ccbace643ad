package llm

import (
	"errors"
	"net/http"
)

var (
	ErrConfiguration      = errors.New("llm: configuration error")
	ErrAuth               = errors.New("llm: credentials rejected")
	ErrBackendUnavailable = errors.New("llm: backend unavailable")
	ErrSchemaViolation    = errors.New("llm: response does not match schema")
)

// mapStatus turns an HTTP status returned by a provider into one of the
// sentinel errors above. Anything that is not an auth or unknown-model
// rejection counts as the backend failing to serve the request.
func mapStatus(code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuth
	case http.StatusNotFound:
		// unknown model id surfaces here on first use
		return ErrConfiguration
	default:
		return ErrBackendUnavailable
	}
}
