package activities

import (
	"errors"
	"math"
	"strings"
	"time"

	"go.uber.org/multierr"
)

const metersPerMile = 1609.344

// accepted layouts for startTimeLocal, tried in order;
// fractional seconds are accepted by time.Parse after the seconds field
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04",
	"2006-01-02",
}

var errEmptyStartTime = errors.New("start time empty")

// Normalize converts one raw record into a NormalizedActivity.
// It fails only when the start time cannot be parsed.
func Normalize(raw RawActivity) (NormalizedActivity, error) {
	startTime, err := parseStartTimeLocal(raw.StartTimeLocal)
	if err != nil {
		return NormalizedActivity{}, &MalformedRecordError{
			ActivityID: raw.ActivityID,
			Value:      raw.StartTimeLocal,
			Err:        err,
		}
	}

	categoryKey := UnknownCategory
	if raw.ActivityType != nil && raw.ActivityType.TypeKey != "" {
		categoryKey = raw.ActivityType.TypeKey
	}

	return NormalizedActivity{
		ActivityID:      raw.ActivityID,
		Name:            raw.ActivityName,
		CategoryKey:     categoryKey,
		DisplayCategory: MapCategory(categoryKey),
		DurationMinutes: DurationMinutes(raw.Duration),
		DistanceMiles:   DistanceMiles(raw.Distance),
		Calories:        nonNegative(raw.Calories),
		StartTimeLocal:  startTime,
		WeekBucket:      WeekBucket(startTime),
	}, nil
}

// NormalizeAll normalizes a batch, skipping records that fail.
// The returned error combines one *MalformedRecordError per skipped record
// and is nil when nothing was skipped; the returned slice is usable either way.
func NormalizeAll(raw []RawActivity) ([]NormalizedActivity, error) {
	normalized := make([]NormalizedActivity, 0, len(raw))
	var errs error
	for i, r := range raw {
		n, err := Normalize(r)
		if err != nil {
			var malformedErr *MalformedRecordError
			if errors.As(err, &malformedErr) {
				malformedErr.Index = i
			}
			errs = multierr.Append(errs, err)
			continue
		}
		normalized = append(normalized, n)
	}
	return normalized, errs
}

// DurationMinutes keeps the reference rule: whole hours are dropped before
// converting to minutes, so 5400s gives 30, not 90.
func DurationMinutes(durationSeconds float64) int {
	secs := nonNegative(durationSeconds)
	return int(math.Floor(math.Mod(secs, 3600) / 60))
}

// DistanceMiles converts meters to miles, rounded half-to-even to one decimal.
func DistanceMiles(distanceMeters float64) float64 {
	miles := nonNegative(distanceMeters) / metersPerMile
	return math.RoundToEven(miles*10) / 10
}

func parseStartTimeLocal(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errEmptyStartTime
	}

	var lastErr error
	for _, layout := range startTimeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
