// Package tomorrowio is a client for the Tomorrow.io v4 timelines API.
//
// The client validates requested fields against a static catalog, splits
// oversized field lists across several provider calls, merges the partial
// results back into one logical response, and maps provider failures to a
// small set of typed errors. One client instance serves one location and
// unit system; it is not safe for concurrent public operations.
package tomorrowio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultEndpoint = "https://api.tomorrow.io/v4/timelines"

// Config wires the credential, location, and collaborators for a Client.
type Config struct {
	// APIKey is the provider credential. Required.
	APIKey string

	Latitude  float64
	Longitude float64

	// UnitSystem is "metric" or "imperial" (default). The aliases "si" and
	// "us" are accepted.
	UnitSystem string

	// Endpoint overrides the provider URL, mainly for tests.
	Endpoint string

	// HTTPClient overrides the underlying transport. Timeouts and
	// cancellation are whatever the supplied client implements.
	HTTPClient HTTPClient

	Logger *zap.Logger

	// BreakerTimeout is how long the circuit breaker stays open after
	// tripping. Defaults to 30s.
	BreakerTimeout time.Duration
}

// Client queries the Tomorrow.io v4 timelines endpoint.
type Client struct {
	location  string
	units     string
	logger    *zap.Logger
	transport *transport
}

// NewClient validates the configuration and returns a ready-to-use Client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("tomorrowio: api key is required")
	}
	units := strings.ToLower(cfg.UnitSystem)
	switch units {
	case "", "us":
		units = "imperial"
	case "si":
		units = "metric"
	case "metric", "imperial":
	default:
		return nil, fmt.Errorf("tomorrowio: unit system must be metric or imperial, got %q", cfg.UnitSystem)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	breakerTimeout := cfg.BreakerTimeout
	if breakerTimeout == 0 {
		breakerTimeout = 30 * time.Second
	}

	return &Client{
		location:  formatLocation(cfg.Latitude, cfg.Longitude),
		units:     units,
		logger:    logger,
		transport: newTransport(endpoint, cfg.APIKey, httpClient, breakerTimeout, logger),
	}, nil
}

// RateLimits exposes the most recently observed provider rate-limit headers.
func (c *Client) RateLimits() *RateLimitSnapshot {
	return c.transport.rateLimits
}

// NumAPIRequests reports how many provider calls the most recent public
// operation issued, so callers can audit quota cost. The counter resets at
// the start of every public operation.
func (c *Client) NumAPIRequests() int {
	return c.transport.calls
}

// Realtime returns current conditions for the requested fields as one value
// map. Fields unknown to the catalog are dropped with a logged diagnostic.
func (c *Client) Realtime(ctx context.Context, fields []string) (map[string]any, error) {
	c.transport.resetCalls()
	eligible, err := c.filterByResolution(fields, ResolutionCurrent)
	if err != nil {
		return nil, err
	}
	return c.callRealtime(ctx, eligible)
}

// ForecastOptions narrows the forecast window. The zero value requests the
// provider's default window starting now.
type ForecastOptions struct {
	// StartTime defaults to the time of the call. Normalized to UTC.
	StartTime time.Time
	// Duration, when set, derives the end of the window from its start.
	Duration time.Duration
}

// Forecast fetches interval timelines for one or more resolutions in a
// single logical operation. Fields are filtered against the coarsest
// requested resolution, which guarantees eligibility at every finer one, and
// expanded into their measurement variants. The result maps each echoed
// timestep token ("1d", "1h", "5m", ...) to its interval sequence.
func (c *Client) Forecast(ctx context.Context, resolutions []time.Duration, fields []string, opts *ForecastOptions) (map[string][]Interval, error) {
	c.transport.resetCalls()
	return c.forecast(ctx, resolutions, fields, opts)
}

// ForecastDaily returns day-width intervals for the requested fields.
func (c *Client) ForecastDaily(ctx context.Context, fields []string, opts *ForecastOptions) ([]Interval, error) {
	c.transport.resetCalls()
	merged, err := c.forecast(ctx, []time.Duration{ResolutionDaily}, fields, opts)
	if err != nil {
		return nil, err
	}
	return merged[timestepDaily], nil
}

// ForecastHourly returns hour-width intervals for the requested fields.
func (c *Client) ForecastHourly(ctx context.Context, fields []string, opts *ForecastOptions) ([]Interval, error) {
	c.transport.resetCalls()
	merged, err := c.forecast(ctx, []time.Duration{ResolutionHourly}, fields, opts)
	if err != nil {
		return nil, err
	}
	return merged[timestepHourly], nil
}

// ForecastNowcast returns minute-resolution intervals. minutes must be
// 1, 5, 15 or 30.
func (c *Client) ForecastNowcast(ctx context.Context, fields []string, minutes int, opts *ForecastOptions) ([]Interval, error) {
	c.transport.resetCalls()
	resolution, err := nowcastResolution(minutes)
	if err != nil {
		return nil, err
	}
	merged, err := c.forecast(ctx, []time.Duration{resolution}, fields, opts)
	if err != nil {
		return nil, err
	}
	token, _ := timestepToken(resolution)
	return merged[token], nil
}

func (c *Client) forecast(ctx context.Context, resolutions []time.Duration, fields []string, opts *ForecastOptions) (map[string][]Interval, error) {
	if len(resolutions) == 0 {
		return nil, errors.New("tomorrowio: at least one resolution is required")
	}
	coarsest := resolutions[0]
	tokens := make([]string, 0, len(resolutions))
	for _, resolution := range resolutions {
		token, err := timestepToken(resolution)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
		if resolution > coarsest {
			coarsest = resolution
		}
	}

	eligible, err := c.filterByResolution(fields, coarsest)
	if err != nil {
		return nil, err
	}
	expanded := ConvertFieldsToMeasurements(eligible)

	if opts == nil {
		opts = &ForecastOptions{}
	}
	start := opts.StartTime
	if start.IsZero() {
		start = time.Now()
	}
	start = start.UTC().Truncate(time.Second)
	startTime := start.Format(time.RFC3339)
	endTime := ""
	if opts.Duration > 0 {
		endTime = start.Add(opts.Duration).Format(time.RFC3339)
	}

	return c.callTimelines(ctx, expanded, tokens, startTime, endTime)
}

// AggregateRequest selects fields for RealtimeAndAllForecasts.
// AllForecastsFields requests one uniform field list for the nowcast, hourly
// and daily resolutions in a single provider call; the per-resolution lists
// request each resolution separately. The two forms are mutually exclusive
// and at least one must be supplied.
type AggregateRequest struct {
	RealtimeFields     []string
	AllForecastsFields []string
	NowcastFields      []string
	HourlyFields       []string
	DailyFields        []string

	// NowcastMinutes is the nowcast interval width: 1, 5, 15 or 30.
	// Defaults to 5.
	NowcastMinutes int
}

// AggregateResult is the combined output of one aggregate fetch.
type AggregateResult struct {
	// Current holds realtime conditions.
	Current map[string]any
	// Forecasts is keyed by LabelNowcast, LabelHourly, and LabelDaily.
	Forecasts map[string][]Interval
}

// RealtimeAndAllForecasts fetches current conditions plus nowcast, hourly,
// and daily forecasts in one operation. Field-selection conflicts fail
// before any provider call. In per-resolution mode the sub-requests are
// issued sequentially with a one-second pause between them to avoid bursting
// the provider.
func (c *Client) RealtimeAndAllForecasts(ctx context.Context, req AggregateRequest) (*AggregateResult, error) {
	c.transport.resetCalls()

	uniform := len(req.AllForecastsFields) > 0
	perResolution := len(req.NowcastFields) > 0 || len(req.HourlyFields) > 0 || len(req.DailyFields) > 0
	if uniform && perResolution {
		return nil, ErrExclusiveForecastFields
	}
	if !uniform && !perResolution {
		return nil, ErrNoForecastFields
	}
	minutes := req.NowcastMinutes
	if minutes == 0 {
		minutes = 5
	}
	nowcast, err := nowcastResolution(minutes)
	if err != nil {
		return nil, err
	}

	realtimeFields, err := c.filterByResolution(req.RealtimeFields, ResolutionCurrent)
	if err != nil {
		return nil, err
	}
	current, err := c.callRealtime(ctx, realtimeFields)
	if err != nil {
		return nil, err
	}
	result := &AggregateResult{
		Current:   current,
		Forecasts: make(map[string][]Interval),
	}

	if uniform {
		merged, err := c.forecast(ctx, []time.Duration{nowcast, ResolutionHourly, ResolutionDaily}, req.AllForecastsFields, nil)
		if err != nil {
			return nil, err
		}
		for token, intervals := range merged {
			result.Forecasts[labelForTimestep(token)] = intervals
		}
		return result, nil
	}

	parts := []struct {
		fields     []string
		resolution time.Duration
		label      string
	}{
		{req.NowcastFields, nowcast, LabelNowcast},
		{req.HourlyFields, ResolutionHourly, LabelHourly},
		{req.DailyFields, ResolutionDaily, LabelDaily},
	}
	first := true
	for _, part := range parts {
		if len(part.fields) == 0 {
			continue
		}
		if !first {
			if err := c.transport.sleep(ctx, time.Second); err != nil {
				return nil, err
			}
		}
		first = false
		merged, err := c.forecast(ctx, []time.Duration{part.resolution}, part.fields, nil)
		if err != nil {
			return nil, err
		}
		token, _ := timestepToken(part.resolution)
		result.Forecasts[part.label] = merged[token]
	}
	return result, nil
}

func nowcastResolution(minutes int) (time.Duration, error) {
	switch minutes {
	case 1, 5, 15, 30:
		return time.Duration(minutes) * time.Minute, nil
	default:
		return 0, &InvalidResolutionError{Resolution: time.Duration(minutes) * time.Minute}
	}
}

func formatLocation(latitude, longitude float64) string {
	return strconv.FormatFloat(latitude, 'f', -1, 64) + "," + strconv.FormatFloat(longitude, 'f', -1, 64)
}
