package tomorrowio

import "time"

// Interval is one timestamped value map within a timeline.
type Interval struct {
	StartTime time.Time      `json:"startTime"`
	Values    map[string]any `json:"values"`
}

// requestEnvelope is the JSON body of a single provider call.
type requestEnvelope struct {
	Location  string   `json:"location"`
	Units     string   `json:"units"`
	Fields    []string `json:"fields"`
	Timesteps []string `json:"timesteps"`
	StartTime string   `json:"startTime,omitempty"`
	EndTime   string   `json:"endTime,omitempty"`
}

// Wire shapes of the timelines response.

type apiResponse struct {
	Data     *apiData     `json:"data"`
	Warnings []apiWarning `json:"warnings"`
}

type apiData struct {
	Timelines []apiTimeline `json:"timelines"`
}

type apiTimeline struct {
	Timestep  string        `json:"timestep"`
	Intervals []apiInterval `json:"intervals"`
}

type apiInterval struct {
	StartTime string         `json:"startTime"`
	Values    map[string]any `json:"values"`
}

type apiWarning struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}
