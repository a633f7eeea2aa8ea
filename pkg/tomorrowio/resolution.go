package tomorrowio

import (
	"fmt"
	"time"
)

// Temporal resolutions accepted by the Tomorrow.io timelines endpoint.
// ResolutionCurrent is the zero-width "right now" bucket used by realtime
// queries; everything else is the width of the intervals returned.
const (
	ResolutionCurrent        time.Duration = 0
	ResolutionOneMinute                    = time.Minute
	ResolutionFiveMinutes                  = 5 * time.Minute
	ResolutionFifteenMinutes               = 15 * time.Minute
	ResolutionThirtyMinutes                = 30 * time.Minute
	ResolutionHourly                       = time.Hour
	ResolutionDaily                        = 24 * time.Hour
)

// Wire tokens for the `timesteps` request parameter.
const (
	timestepCurrent = "current"
	timestepHourly  = "1h"
	timestepDaily   = "1d"
)

// Labels used to key aggregate forecast results.
const (
	LabelNowcast = "nowcast"
	LabelHourly  = "hourly"
	LabelDaily   = "daily"
)

// validResolutions is the closed set of resolutions the provider understands.
var validResolutions = map[time.Duration]struct{}{
	ResolutionCurrent:        {},
	ResolutionOneMinute:      {},
	ResolutionFiveMinutes:    {},
	ResolutionFifteenMinutes: {},
	ResolutionThirtyMinutes:  {},
	ResolutionHourly:         {},
	ResolutionDaily:          {},
}

func isValidResolution(resolution time.Duration) bool {
	_, ok := validResolutions[resolution]
	return ok
}

// timestepToken converts a resolution into the provider's wire token.
func timestepToken(resolution time.Duration) (string, error) {
	switch resolution {
	case ResolutionCurrent:
		return timestepCurrent, nil
	case ResolutionHourly:
		return timestepHourly, nil
	case ResolutionDaily:
		return timestepDaily, nil
	case ResolutionOneMinute, ResolutionFiveMinutes, ResolutionFifteenMinutes, ResolutionThirtyMinutes:
		return fmt.Sprintf("%dm", int(resolution.Minutes())), nil
	default:
		return "", &InvalidResolutionError{Resolution: resolution}
	}
}

// labelForTimestep maps an echoed wire token to the label callers see in
// aggregate results. Minute-based tokens all belong to the nowcast.
func labelForTimestep(token string) string {
	switch token {
	case timestepDaily:
		return LabelDaily
	case timestepHourly:
		return LabelHourly
	case timestepCurrent:
		return timestepCurrent
	default:
		return LabelNowcast
	}
}
