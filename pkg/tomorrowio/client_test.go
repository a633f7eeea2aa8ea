package tomorrowio

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// providerStub records every decoded request envelope and delegates the
// response to a per-test handler.
type providerStub struct {
	mu        sync.Mutex
	envelopes []requestEnvelope
	handler   func(w http.ResponseWriter, r *http.Request, env requestEnvelope)
}

func (s *providerStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var env requestEnvelope
	_ = json.NewDecoder(r.Body).Decode(&env)
	s.mu.Lock()
	s.envelopes = append(s.envelopes, env)
	s.mu.Unlock()
	s.handler(w, r, env)
}

func (s *providerStub) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.envelopes)
}

func newStubClient(t *testing.T, stub *providerStub, logger *zap.Logger) *Client {
	t.Helper()
	server := httptest.NewServer(stub)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		APIKey:    "bogus_api_key",
		Latitude:  28.4195,
		Longitude: -81.5812,
		Endpoint:  server.URL,
		Logger:    logger,
	})
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// realtimeResponse builds a single-interval "current" timeline carrying one
// dummy value per requested field.
func realtimeResponse(fields []string) map[string]any {
	values := make(map[string]any, len(fields))
	for _, field := range fields {
		values[field] = 1.0
	}
	return map[string]any{
		"data": map[string]any{
			"timelines": []map[string]any{{
				"timestep": "current",
				"intervals": []map[string]any{{
					"startTime": "2023-05-01T12:00:00Z",
					"values":    values,
				}},
			}},
		},
	}
}

// timelinesResponse builds one timeline per requested timestep, each with
// `count` intervals carrying one dummy value per requested field.
func timelinesResponse(timesteps []string, fields []string, count int) map[string]any {
	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	timelines := make([]map[string]any, 0, len(timesteps))
	for _, timestep := range timesteps {
		intervals := make([]map[string]any, count)
		for i := range intervals {
			values := make(map[string]any, len(fields))
			for _, field := range fields {
				values[field] = 1.0
			}
			intervals[i] = map[string]any{
				"startTime": base.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
				"values":    values,
			}
		}
		timelines = append(timelines, map[string]any{
			"timestep":  timestep,
			"intervals": intervals,
		})
	}
	return map[string]any{"data": map[string]any{"timelines": timelines}}
}

func echoTimelines(count int) func(w http.ResponseWriter, r *http.Request, env requestEnvelope) {
	return func(w http.ResponseWriter, r *http.Request, env requestEnvelope) {
		if len(env.Timesteps) == 1 && env.Timesteps[0] == timestepCurrent {
			writeJSON(w, http.StatusOK, realtimeResponse(env.Fields))
			return
		}
		writeJSON(w, http.StatusOK, timelinesResponse(env.Timesteps, env.Fields, count))
	}
}

func TestNewClientUnitSystem(t *testing.T) {
	assert := assert.New(t)

	cases := map[string]string{
		"":         "imperial",
		"us":       "imperial",
		"imperial": "imperial",
		"si":       "metric",
		"METRIC":   "metric",
	}
	for input, want := range cases {
		client, err := NewClient(Config{APIKey: "k", UnitSystem: input})
		assert.NoError(err)
		assert.Equalf(want, client.units, "unit system %q", input)
	}

	_, err := NewClient(Config{APIKey: "k", UnitSystem: "kelvin"})
	assert.Error(err)

	_, err = NewClient(Config{})
	assert.Error(err, "api key is required")
}

func TestRealtimeRequestEnvelope(t *testing.T) {
	assert := assert.New(t)

	stub := &providerStub{}
	stub.handler = func(w http.ResponseWriter, r *http.Request, env requestEnvelope) {
		assert.Equal("bogus_api_key", r.Header.Get("apikey"))
		assert.Equal("application/json", r.Header.Get("Content-Type"))
		assert.Equal("28.4195,-81.5812", env.Location)
		assert.Equal("imperial", env.Units)
		assert.Equal([]string{"current"}, env.Timesteps)
		assert.Equal([]string{"temperature", "humidity"}, env.Fields)
		writeJSON(w, http.StatusOK, realtimeResponse(env.Fields))
	}
	client := newStubClient(t, stub, nil)

	// notAField never reaches the wire.
	values, err := client.Realtime(context.Background(), []string{"temperature", "humidity", "notAField"})
	assert.NoError(err)
	assert.Equal(map[string]any{"temperature": 1.0, "humidity": 1.0}, values)
	assert.Equal(1, stub.calls())
	assert.Equal(1, client.NumAPIRequests())
}

func TestForecastHourlyMergesChunks(t *testing.T) {
	assert := assert.New(t)

	available, err := AvailableFields(ResolutionHourly, []FieldCategory{CategoryWeather})
	require.NoError(t, err)
	expanded := ConvertFieldsToMeasurements(available)
	require.Greater(t, len(expanded), maxFieldsPerRequest, "scenario needs more than one chunk")

	stub := &providerStub{handler: echoTimelines(109)}
	client := newStubClient(t, stub, nil)

	intervals, err := client.ForecastHourly(context.Background(), available, nil)
	assert.NoError(err)
	assert.Len(intervals, 109, "chunking must not duplicate or drop intervals")

	want := make(map[string]struct{}, len(expanded))
	for _, field := range expanded {
		want[field] = struct{}{}
	}
	for _, interval := range intervals {
		assert.Len(interval.Values, len(want))
		for field := range want {
			assert.Contains(interval.Values, field)
		}
	}

	wantCalls := (len(expanded) + maxFieldsPerRequest - 1) / maxFieldsPerRequest
	assert.Equal(wantCalls, stub.calls())
	assert.Equal(wantCalls, client.NumAPIRequests())
}

func TestRealtimeMergeIsFlatUnion(t *testing.T) {
	assert := assert.New(t)

	stub := &providerStub{handler: echoTimelines(1)}
	client := newStubClient(t, stub, nil)

	// Drive the batcher directly with enough names for three chunks; the
	// public entry point would have filtered synthetic names away.
	fields := syntheticFields(109)
	values, err := client.callRealtime(context.Background(), fields)
	assert.NoError(err)
	assert.Len(values, 109)
	assert.Equal(3, stub.calls())
}

func TestForecastWindowEnvelope(t *testing.T) {
	assert := assert.New(t)

	stub := &providerStub{handler: echoTimelines(5)}
	client := newStubClient(t, stub, nil)

	start := time.Date(2023, 5, 1, 12, 0, 0, 123456789, time.FixedZone("CEST", 2*3600))
	_, err := client.ForecastDaily(context.Background(), []string{"temperature"}, &ForecastOptions{
		StartTime: start,
		Duration:  5 * 24 * time.Hour,
	})
	assert.NoError(err)

	require.Equal(t, 1, stub.calls())
	env := stub.envelopes[0]
	assert.Equal([]string{"1d"}, env.Timesteps)
	assert.Equal("2023-05-01T10:00:00Z", env.StartTime, "start time is normalized to UTC at second precision")
	assert.Equal("2023-05-06T10:00:00Z", env.EndTime)
	assert.Equal([]string{"temperatureMin", "temperatureMax", "temperatureAvg"}, env.Fields)
}

func TestForecastMultiResolutionFiltersAtCoarsest(t *testing.T) {
	assert := assert.New(t)

	stub := &providerStub{handler: echoTimelines(2)}
	client := newStubClient(t, stub, nil)

	// precipitationType tops out at hourly, so a request that also wants
	// daily intervals must not carry it.
	merged, err := client.Forecast(context.Background(),
		[]time.Duration{ResolutionHourly, ResolutionDaily},
		[]string{"temperature", "precipitationType"}, nil)
	assert.NoError(err)
	assert.Contains(merged, "1h")
	assert.Contains(merged, "1d")

	require.Equal(t, 1, stub.calls())
	assert.Equal([]string{"1h", "1d"}, stub.envelopes[0].Timesteps)
	assert.NotContains(stub.envelopes[0].Fields, "precipitationType")
}

func TestForecastNowcastRejectsUnsupportedWidth(t *testing.T) {
	stub := &providerStub{handler: echoTimelines(1)}
	client := newStubClient(t, stub, nil)

	_, err := client.ForecastNowcast(context.Background(), []string{"temperature"}, 7, nil)
	var invalid *InvalidResolutionError
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, 0, stub.calls())
}

func TestAggregateFieldListsAreMutuallyExclusive(t *testing.T) {
	assert := assert.New(t)

	stub := &providerStub{handler: echoTimelines(1)}
	client := newStubClient(t, stub, nil)

	_, err := client.RealtimeAndAllForecasts(context.Background(), AggregateRequest{
		RealtimeFields:     []string{"temperature"},
		AllForecastsFields: []string{"temperature"},
		HourlyFields:       []string{"humidity"},
	})
	assert.ErrorIs(err, ErrExclusiveForecastFields)

	_, err = client.RealtimeAndAllForecasts(context.Background(), AggregateRequest{
		RealtimeFields: []string{"temperature"},
	})
	assert.ErrorIs(err, ErrNoForecastFields)

	assert.Equal(0, stub.calls(), "argument validation must precede any provider call")
}

func TestAggregateUniformFieldList(t *testing.T) {
	assert := assert.New(t)

	stub := &providerStub{handler: echoTimelines(3)}
	client := newStubClient(t, stub, nil)

	result, err := client.RealtimeAndAllForecasts(context.Background(), AggregateRequest{
		RealtimeFields:     []string{"temperature", "weatherCode"},
		AllForecastsFields: []string{"temperature"},
	})
	assert.NoError(err)
	assert.Contains(result.Current, "temperature")
	assert.Len(result.Forecasts, 3)
	assert.Len(result.Forecasts[LabelNowcast], 3)
	assert.Len(result.Forecasts[LabelHourly], 3)
	assert.Len(result.Forecasts[LabelDaily], 3)

	// One realtime call plus one multi-timestep forecast call.
	assert.Equal(2, stub.calls())
	assert.Equal([]string{"5m", "1h", "1d"}, stub.envelopes[1].Timesteps)
}

func TestAggregatePerResolutionFieldLists(t *testing.T) {
	assert := assert.New(t)

	stub := &providerStub{handler: echoTimelines(2)}
	client := newStubClient(t, stub, nil)

	var pauses []time.Duration
	client.transport.sleep = func(ctx context.Context, d time.Duration) error {
		pauses = append(pauses, d)
		return nil
	}

	result, err := client.RealtimeAndAllForecasts(context.Background(), AggregateRequest{
		RealtimeFields: []string{"temperature"},
		NowcastFields:  []string{"precipitationIntensity"},
		DailyFields:    []string{"temperature"},
		NowcastMinutes: 1,
	})
	assert.NoError(err)
	assert.Contains(result.Forecasts, LabelNowcast)
	assert.Contains(result.Forecasts, LabelDaily)
	assert.NotContains(result.Forecasts, LabelHourly)

	assert.Equal(3, stub.calls())
	assert.Equal([]string{"1m"}, stub.envelopes[1].Timesteps)
	assert.Equal([]string{"1d"}, stub.envelopes[2].Timesteps)
	assert.Equal([]time.Duration{time.Second}, pauses, "one pause between successive sub-requests")
	assert.Equal(3, client.NumAPIRequests())
}

func TestBatchedOperationAbortsOnFirstFailure(t *testing.T) {
	assert := assert.New(t)

	stub := &providerStub{}
	stub.handler = func(w http.ResponseWriter, r *http.Request, env requestEnvelope) {
		if stub.calls() > 1 {
			writeJSON(w, http.StatusTooManyRequests, map[string]any{"code": 429001, "message": "too many requests"})
			return
		}
		writeJSON(w, http.StatusOK, realtimeResponse(env.Fields))
	}
	client := newStubClient(t, stub, nil)

	_, err := client.callRealtime(context.Background(), syntheticFields(120))
	var limited *RateLimitedError
	assert.True(errors.As(err, &limited))
	assert.Equal(2, stub.calls(), "no further chunks after the first failure")
}

func TestForecastChunkWithoutTimelinesContributesNothing(t *testing.T) {
	assert := assert.New(t)

	stub := &providerStub{}
	stub.handler = func(w http.ResponseWriter, r *http.Request, env requestEnvelope) {
		if stub.calls() == 1 {
			writeJSON(w, http.StatusOK, timelinesResponse(env.Timesteps, env.Fields, 4))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{}})
	}
	client := newStubClient(t, stub, nil)

	merged, err := client.callTimelines(context.Background(), syntheticFields(60), []string{"1h"}, "", "")
	assert.NoError(err)
	assert.Equal(2, stub.calls())
	assert.Len(merged["1h"], 4)
	for _, interval := range merged["1h"] {
		assert.Len(interval.Values, 50, "only the first chunk contributed values")
	}
}
