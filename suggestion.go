package yore

import (
	"fmt"
	"strings"
)

// LocationKind describes where a photo location came from.
type LocationKind int

const (
	// LocationNone means the photo has no location and none could be suggested.
	LocationNone LocationKind = iota
	// LocationExisting means the photo already carries GPS coordinates.
	LocationExisting
	// LocationSuggested means the coordinates were suggested from the location history.
	LocationSuggested
)

func (k LocationKind) String() string {
	switch k {
	case LocationExisting:
		return "existing"
	case LocationSuggested:
		return "suggested"
	default:
		return "none"
	}
}

// PhotoLocation is the outcome of a suggestion for a single photo.
type PhotoLocation struct {
	Kind        LocationKind       `json:"kind"`
	Coordinates Coordinates        `json:"coordinates"`
	Accuracy    SuggestionAccuracy `json:"accuracy"` // only set for suggested locations
}

// SuggestionAccuracy describes how far a suggestion may be off.
type SuggestionAccuracy struct {
	// Space is the confidence radius in meters.
	Space uint16 `json:"space"`

	// Time is the difference in seconds between the fix used and the photo.
	Time int64 `json:"time"`
}

// String formats the accuracy as e.g. "18 metres, 1 minute, 30 seconds".
// Only the magnitude of Time is printed, whichever side of the photo the fix lies.
func (a SuggestionAccuracy) String() string {
	return fmt.Sprintf("%d metres, %s", a.Space, formatSeconds(a.Time))
}

func formatSeconds(seconds int64) string {
	if seconds == 0 {
		return "0 seconds"
	}
	if seconds < 0 {
		seconds = -seconds
	}

	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24
	weeks := days / 7

	var periods []string
	if weeks != 0 {
		periods = append(periods, formatPeriod(weeks, "week", "weeks"))
	}
	if shouldPrintPeriod(days, 7) {
		periods = append(periods, formatPeriod(days%7, "day", "days"))
	}
	if shouldPrintPeriod(hours, 24) {
		periods = append(periods, formatPeriod(hours%24, "hour", "hours"))
	}
	if shouldPrintPeriod(minutes, 60) {
		periods = append(periods, formatPeriod(minutes%60, "minute", "minutes"))
	}
	if shouldPrintPeriod(seconds, 60) {
		periods = append(periods, formatPeriod(seconds%60, "second", "seconds"))
	}

	return strings.Join(periods, ", ")
}

func shouldPrintPeriod(period, unit int64) bool {
	return period != 0 && period%unit != 0
}

func formatPeriod(period int64, singular, plural string) string {
	if period == 1 {
		return fmt.Sprintf("%d %s", period, singular)
	}
	return fmt.Sprintf("%d %s", period, plural)
}
