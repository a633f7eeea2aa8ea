package tomorrowio

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Argument errors for RealtimeAndAllForecasts field selection.
var (
	ErrNoForecastFields = errors.New(
		"tomorrowio: either a uniform forecast field list or at least one per-resolution field list is required")
	ErrExclusiveForecastFields = errors.New(
		"tomorrowio: uniform and per-resolution forecast field lists are mutually exclusive")
)

// InvalidResolutionError reports a resolution outside the provider's fixed
// set. This is a programmer error rather than a provider condition, so it
// carries no response payload.
type InvalidResolutionError struct {
	Resolution time.Duration
}

func (e *InvalidResolutionError) Error() string {
	return fmt.Sprintf("tomorrowio: invalid resolution %s", e.Resolution)
}

// MalformedRequestError is returned when the provider rejects the request
// body (HTTP 400).
type MalformedRequestError struct {
	Body    json.RawMessage
	Headers http.Header
}

func (e *MalformedRequestError) Error() string {
	return "tomorrowio: provider rejected request as malformed: " + string(e.Body)
}

// InvalidCredentialError is returned when the API key is rejected
// (HTTP 401 or 403).
type InvalidCredentialError struct {
	Body    json.RawMessage
	Headers http.Header
}

func (e *InvalidCredentialError) Error() string {
	return "tomorrowio: invalid or unauthorized api key: " + string(e.Body)
}

// RateLimitedError is returned when the provider reports quota exhaustion
// (HTTP 429). The client's rate-limit snapshot is refreshed from the
// response headers before this error is returned.
type RateLimitedError struct {
	Body    json.RawMessage
	Headers http.Header
}

func (e *RateLimitedError) Error() string {
	return "tomorrowio: rate limited by provider: " + string(e.Body)
}

// UnknownProviderError is returned for any non-2xx status outside the
// enumerated set.
type UnknownProviderError struct {
	StatusCode int
	Body       json.RawMessage
	Headers    http.Header
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("tomorrowio: unexpected provider status %d: %s", e.StatusCode, e.Body)
}

// CannotConnectError is returned when no response was received at all:
// DNS failure, refused connection, or a connection dropped before the body
// was read. Calls failing this way are never retried.
type CannotConnectError struct {
	Err error
}

func (e *CannotConnectError) Error() string {
	return fmt.Sprintf("tomorrowio: cannot connect to provider: %v", e.Err)
}

func (e *CannotConnectError) Unwrap() error { return e.Err }

// UnknownResponseShapeError is returned when a 2xx response is missing the
// structure the client needs. The raw payload is preserved so nothing is
// silently dropped.
type UnknownResponseShapeError struct {
	Reason  string
	Payload json.RawMessage
}

func (e *UnknownResponseShapeError) Error() string {
	return "tomorrowio: unexpected response shape: " + e.Reason
}
