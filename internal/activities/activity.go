package activities

import "time"

// UnknownCategory is used when a raw record carries no activity type.
const UnknownCategory = "unknown"

type ActivityType struct {
	TypeKey string `json:"typeKey"`
}

// RawActivity is a single activity as returned by the activity source.
// Distance is in meters, Duration in seconds, StartTimeLocal is the
// local wall clock time as sent by the source (no zone conversion).
type RawActivity struct {
	ActivityID     int64         `json:"activityId,omitempty"`
	ActivityName   string        `json:"activityName,omitempty"`
	ActivityType   *ActivityType `json:"activityType"`
	Distance       float64       `json:"distance"`
	Duration       float64       `json:"duration"`
	Calories       float64       `json:"calories"`
	StartTimeLocal string        `json:"startTimeLocal"`
}

// NormalizedActivity is the typed fact derived from one RawActivity.
type NormalizedActivity struct {
	ActivityID      int64     `json:"activityId,omitempty"`
	Name            string    `json:"name,omitempty"`
	CategoryKey     string    `json:"categoryKey"`
	DisplayCategory string    `json:"displayCategory"`
	DurationMinutes int       `json:"durationMinutes"`
	DistanceMiles   float64   `json:"distanceMiles"`
	Calories        float64   `json:"calories"`
	StartTimeLocal  time.Time `json:"startTimeLocal"`
	WeekBucket      string    `json:"weekBucket"`
}
