package tomorrowio

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// RateLimitSnapshot holds the most recently observed provider rate-limit
// headers, keyed case-insensitively. It is replaced wholesale on every call
// that produced a response, including failed ones, so callers can inspect
// the current window even after a RateLimitedError.
type RateLimitSnapshot struct {
	mu      sync.RWMutex
	headers map[string]string
}

func newRateLimitSnapshot() *RateLimitSnapshot {
	return &RateLimitSnapshot{headers: make(map[string]string)}
}

// replace swaps in every response header whose name contains "ratelimit".
func (s *RateLimitSnapshot) replace(h http.Header) {
	headers := make(map[string]string)
	for name, values := range h {
		if len(values) == 0 {
			continue
		}
		if strings.Contains(strings.ToLower(name), "ratelimit") {
			headers[strings.ToLower(name)] = values[0]
		}
	}
	s.mu.Lock()
	s.headers = headers
	s.mu.Unlock()
}

// Get returns the snapshot value for a header name, case-insensitively.
func (s *RateLimitSnapshot) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.headers[strings.ToLower(name)]
	return v, ok
}

// Headers returns a copy of every captured header.
func (s *RateLimitSnapshot) Headers() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.headers))
	for k, v := range s.headers {
		out[k] = v
	}
	return out
}

func (s *RateLimitSnapshot) intValue(name string) (int, bool) {
	raw, ok := s.Get(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Per-window accessors for the provider's standard limit headers.

func (s *RateLimitSnapshot) LimitPerDay() (int, bool) {
	return s.intValue("x-ratelimit-limit-day")
}

func (s *RateLimitSnapshot) LimitPerHour() (int, bool) {
	return s.intValue("x-ratelimit-limit-hour")
}

func (s *RateLimitSnapshot) LimitPerSecond() (int, bool) {
	return s.intValue("x-ratelimit-limit-second")
}

func (s *RateLimitSnapshot) RemainingPerDay() (int, bool) {
	return s.intValue("x-ratelimit-remaining-day")
}

func (s *RateLimitSnapshot) RemainingPerHour() (int, bool) {
	return s.intValue("x-ratelimit-remaining-hour")
}

func (s *RateLimitSnapshot) RemainingPerSecond() (int, bool) {
	return s.intValue("x-ratelimit-remaining-second")
}
