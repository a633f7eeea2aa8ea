package tomorrowio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// HTTPClient is the part of *http.Client the transport needs. Tests inject
// fakes through it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// transport sends one provider call at a time: serialize the envelope,
// classify the status code, refresh the rate-limit snapshot, and surface
// provider warnings. It never retries a failed call; the only wait it ever
// inserts is the proactive one-second pause when the snapshot shows the
// current per-second window is exhausted.
type transport struct {
	httpClient HTTPClient
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
	endpoint   string
	apikey     string

	rateLimits   *RateLimitSnapshot
	calls        int
	seenWarnings map[string]struct{}

	sleep func(ctx context.Context, d time.Duration) error
}

func newTransport(endpoint, apikey string, httpClient HTTPClient, breakerTimeout time.Duration, logger *zap.Logger) *transport {
	settings := gobreaker.Settings{
		Name:        "tomorrowio",
		MaxRequests: 1,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				zap.String("client", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &transport{
		httpClient:   httpClient,
		breaker:      gobreaker.NewCircuitBreaker(settings),
		logger:       logger,
		endpoint:     endpoint,
		apikey:       apikey,
		rateLimits:   newRateLimitSnapshot(),
		seenWarnings: make(map[string]struct{}),
		sleep:        sleepContext,
	}
}

func (t *transport) resetCalls() {
	t.calls = 0
}

// send issues exactly one provider call and returns the raw response body on
// a 200 or 206. Every response, success or failure, replaces the rate-limit
// snapshot before the status is classified.
func (t *transport) send(ctx context.Context, envelope *requestEnvelope) (json.RawMessage, error) {
	if err := t.backoffIfExhausted(ctx); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", t.apikey)

	result, err := t.breaker.Execute(func() (interface{}, error) {
		resp, err := t.httpClient.Do(req)
		if err != nil {
			return nil, &CannotConnectError{Err: err}
		}
		return resp, nil
	})
	if err != nil {
		var connErr *CannotConnectError
		if errors.As(err, &connErr) {
			return nil, connErr
		}
		// gobreaker refused the call without sending anything.
		return nil, &CannotConnectError{Err: err}
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &CannotConnectError{Err: err}
	}

	t.rateLimits.replace(resp.Header)

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusPartialContent:
		t.calls++
		t.logWarnings(body)
		return body, nil
	case resp.StatusCode == http.StatusBadRequest:
		return nil, &MalformedRequestError{Body: body, Headers: resp.Header}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &InvalidCredentialError{Body: body, Headers: resp.Header}
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RateLimitedError{Body: body, Headers: resp.Header}
	default:
		return nil, &UnknownProviderError{StatusCode: resp.StatusCode, Body: body, Headers: resp.Header}
	}
}

// backoffIfExhausted pauses for one second when the latest snapshot shows no
// remaining calls in the current one-second window. The call still proceeds
// exactly once afterwards.
func (t *transport) backoffIfExhausted(ctx context.Context) error {
	remaining, ok := t.rateLimits.RemainingPerSecond()
	if !ok || remaining > 0 {
		return nil
	}
	t.logger.Debug("Per-second rate-limit window exhausted, pausing before call",
		zap.Duration("pause", time.Second))
	return t.sleep(ctx, time.Second)
}

// logWarnings logs each distinct provider warning message at most once over
// the transport's lifetime.
func (t *transport) logWarnings(body json.RawMessage) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return
	}
	for _, warning := range resp.Warnings {
		if warning.Message == "" {
			continue
		}
		if _, seen := t.seenWarnings[warning.Message]; seen {
			continue
		}
		t.seenWarnings[warning.Message] = struct{}{}
		t.logger.Warn("Provider warning",
			zap.Int("code", warning.Code),
			zap.String("type", warning.Type),
			zap.String("message", warning.Message))
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
