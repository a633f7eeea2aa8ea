package tomorrowio

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func syntheticFields(n int) []string {
	fields := make([]string, n)
	for i := range fields {
		fields[i] = fmt.Sprintf("field%03d", i)
	}
	return fields
}

func TestChunkFields(t *testing.T) {
	assert := assert.New(t)

	assert.Nil(chunkFields(nil, maxFieldsPerRequest))

	chunks := chunkFields(syntheticFields(50), 50)
	assert.Len(chunks, 1)

	chunks = chunkFields(syntheticFields(100), 50)
	assert.Len(chunks, 2)
	assert.Len(chunks[0], 50)
	assert.Len(chunks[1], 50)

	chunks = chunkFields(syntheticFields(109), 50)
	assert.Len(chunks, 3)
	assert.Len(chunks[2], 9)

	var total int
	for _, chunk := range chunks {
		total += len(chunk)
	}
	assert.Equal(109, total, "chunking must not duplicate or drop fields")
}

func TestMergeTimelinePositionalUnion(t *testing.T) {
	assert := assert.New(t)

	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	intervalsFor := func(key string, value any, n int) []Interval {
		intervals := make([]Interval, n)
		for i := range intervals {
			intervals[i] = Interval{
				StartTime: base.Add(time.Duration(i) * time.Hour),
				Values:    map[string]any{key: value},
			}
		}
		return intervals
	}

	acc := make(map[string][]Interval)
	mergeTimeline(acc, "1h", intervalsFor("temperature", 20.0, 3))
	mergeTimeline(acc, "1h", intervalsFor("humidity", 55.0, 3))

	assert.Len(acc["1h"], 3, "merging chunks must not change the interval count")
	for _, interval := range acc["1h"] {
		assert.Equal(map[string]any{"temperature": 20.0, "humidity": 55.0}, interval.Values)
	}

	// A later chunk repeating a key wins.
	mergeTimeline(acc, "1h", intervalsFor("temperature", 21.0, 3))
	assert.Equal(21.0, acc["1h"][0].Values["temperature"])

	// Separate timesteps accumulate independently.
	mergeTimeline(acc, "1d", intervalsFor("temperatureMax", 30.0, 2))
	assert.Len(acc["1d"], 2)
	assert.Len(acc["1h"], 3)
}

func TestParseResponseRejectsNonJSON(t *testing.T) {
	_, err := parseResponse(json.RawMessage("not json"))
	var shape *UnknownResponseShapeError
	assert.True(t, errors.As(err, &shape))
	assert.Equal(t, json.RawMessage("not json"), shape.Payload)
}

func TestDecodeIntervalsMalformedShapes(t *testing.T) {
	assert := assert.New(t)
	raw := json.RawMessage(`{}`)

	var shape *UnknownResponseShapeError

	_, err := decodeIntervals(apiTimeline{Timestep: "1h"}, raw)
	assert.True(errors.As(err, &shape), "timeline without intervals")

	_, err = decodeIntervals(apiTimeline{
		Timestep:  "1h",
		Intervals: []apiInterval{{StartTime: "2023-05-01T12:00:00Z"}},
	}, raw)
	assert.True(errors.As(err, &shape), "interval without values")

	_, err = decodeIntervals(apiTimeline{
		Timestep:  "1h",
		Intervals: []apiInterval{{StartTime: "yesterday", Values: map[string]any{"temperature": 1.0}}},
	}, raw)
	assert.True(errors.As(err, &shape), "interval with unparseable timestamp")
}

func TestDecodeRealtimeValuesMalformedShapes(t *testing.T) {
	assert := assert.New(t)

	var shape *UnknownResponseShapeError

	_, err := decodeRealtimeValues(json.RawMessage(`{"data": {}}`))
	assert.True(errors.As(err, &shape), "missing timelines")

	_, err = decodeRealtimeValues(json.RawMessage(`{"data": {"timelines": [{"timestep": "current", "intervals": []}]}}`))
	assert.True(errors.As(err, &shape), "timeline without intervals")

	values, err := decodeRealtimeValues(json.RawMessage(
		`{"data": {"timelines": [{"timestep": "current", "intervals": [{"startTime": "2023-05-01T12:00:00Z", "values": {"temperature": 71.2}}]}]}}`))
	assert.NoError(err)
	assert.Equal(71.2, values["temperature"])
}
