package tomorrowio

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// maxFieldsPerRequest is the provider's cap on requested fields per call.
// Larger field lists are split into consecutive chunks and the partial
// results merged back into one logical response.
const maxFieldsPerRequest = 50

func chunkFields(fields []string, size int) [][]string {
	var chunks [][]string
	for len(fields) > size {
		chunks = append(chunks, fields[:size])
		fields = fields[size:]
	}
	if len(fields) > 0 {
		chunks = append(chunks, fields)
	}
	return chunks
}

// callTimelines issues one provider call per field chunk, strictly in order,
// and merges the returned timelines keyed by their echoed timestep token.
// The first failing chunk aborts the whole operation; partial results are
// never returned.
func (c *Client) callTimelines(ctx context.Context, fields []string, timesteps []string, startTime, endTime string) (map[string][]Interval, error) {
	merged := make(map[string][]Interval)
	for _, chunk := range chunkFields(fields, maxFieldsPerRequest) {
		envelope := &requestEnvelope{
			Location:  c.location,
			Units:     c.units,
			Fields:    chunk,
			Timesteps: timesteps,
			StartTime: startTime,
			EndTime:   endTime,
		}
		raw, err := c.transport.send(ctx, envelope)
		if err != nil {
			return nil, err
		}
		resp, err := parseResponse(raw)
		if err != nil {
			return nil, err
		}
		if resp.Data == nil || resp.Data.Timelines == nil {
			// This chunk contributed no intervals.
			continue
		}
		for _, timeline := range resp.Data.Timelines {
			intervals, err := decodeIntervals(timeline, raw)
			if err != nil {
				return nil, err
			}
			mergeTimeline(merged, timeline.Timestep, intervals)
		}
	}
	return merged, nil
}

// callRealtime issues one provider call per field chunk against the
// "current" timestep and flat-merges the single-interval value maps. A later
// chunk repeating a key wins, though the provider is not expected to repeat
// keys across chunks.
func (c *Client) callRealtime(ctx context.Context, fields []string) (map[string]any, error) {
	values := make(map[string]any)
	for _, chunk := range chunkFields(fields, maxFieldsPerRequest) {
		envelope := &requestEnvelope{
			Location:  c.location,
			Units:     c.units,
			Fields:    chunk,
			Timesteps: []string{timestepCurrent},
		}
		raw, err := c.transport.send(ctx, envelope)
		if err != nil {
			return nil, err
		}
		chunkValues, err := decodeRealtimeValues(raw)
		if err != nil {
			return nil, err
		}
		for k, v := range chunkValues {
			values[k] = v
		}
	}
	return values, nil
}

func parseResponse(raw json.RawMessage) (*apiResponse, error) {
	var resp apiResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &UnknownResponseShapeError{Reason: "body is not a JSON object", Payload: raw}
	}
	return &resp, nil
}

func decodeIntervals(timeline apiTimeline, raw json.RawMessage) ([]Interval, error) {
	if timeline.Intervals == nil {
		return nil, &UnknownResponseShapeError{
			Reason:  fmt.Sprintf("timeline %q is missing intervals", timeline.Timestep),
			Payload: raw,
		}
	}
	intervals := make([]Interval, 0, len(timeline.Intervals))
	for _, interval := range timeline.Intervals {
		if interval.Values == nil {
			return nil, &UnknownResponseShapeError{
				Reason:  fmt.Sprintf("interval at %s is missing values", interval.StartTime),
				Payload: raw,
			}
		}
		start, err := time.Parse(time.RFC3339, interval.StartTime)
		if err != nil {
			return nil, &UnknownResponseShapeError{
				Reason:  fmt.Sprintf("interval startTime %q is not a timestamp", interval.StartTime),
				Payload: raw,
			}
		}
		intervals = append(intervals, Interval{StartTime: start, Values: interval.Values})
	}
	return intervals, nil
}

func decodeRealtimeValues(raw json.RawMessage) (map[string]any, error) {
	resp, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}
	if resp.Data == nil || len(resp.Data.Timelines) == 0 {
		return nil, &UnknownResponseShapeError{Reason: "realtime response is missing data.timelines", Payload: raw}
	}
	timeline := resp.Data.Timelines[0]
	if len(timeline.Intervals) == 0 {
		return nil, &UnknownResponseShapeError{Reason: "realtime timeline has no intervals", Payload: raw}
	}
	values := timeline.Intervals[0].Values
	if values == nil {
		return nil, &UnknownResponseShapeError{Reason: "realtime interval is missing values", Payload: raw}
	}
	return values, nil
}

// mergeTimeline folds a chunk's interval sequence into the accumulated
// sequence for the same timestep. Intervals are matched positionally; the
// provider guarantees an identical time grid per timestep across chunks of
// one logical call, so the grid is not re-validated here.
func mergeTimeline(acc map[string][]Interval, timestep string, intervals []Interval) {
	existing, ok := acc[timestep]
	if !ok {
		acc[timestep] = intervals
		return
	}
	for i, interval := range intervals {
		if i < len(existing) {
			for k, v := range interval.Values {
				existing[i].Values[k] = v
			}
		} else {
			existing = append(existing, interval)
		}
	}
	acc[timestep] = existing
}
