package activities

import (
	"errors"
	"time"
)

const (
	LabelCurrentWeek      = "This week"
	LabelShowingLastWeek  = "No activity yet this week, showing last week"
	LabelNoRecentActivity = "No activity this week or last week"
)

// WeeklyRollup holds the "this week vs last week" distance scalars.
// When the current week has no data yet, CurrentWeekTotalMiles carries the
// previous week's total and HasCurrentWeekData is false. DeltaMiles is
// always the real current week total minus the previous week total.
type WeeklyRollup struct {
	CurrentWeek            string  `json:"currentWeek"`
	PreviousWeek           string  `json:"previousWeek"`
	CurrentWeekTotalMiles  float64 `json:"currentWeekTotalMiles"`
	PreviousWeekTotalMiles float64 `json:"previousWeekTotalMiles"`
	DeltaMiles             float64 `json:"deltaMiles"`
	HasCurrentWeekData     bool    `json:"hasCurrentWeekData"`
	HasPreviousWeekData    bool    `json:"hasPreviousWeekData"`
	Label                  string  `json:"label"`
}

// Rollup computes the current and previous week distance totals relative to today.
// Missing weeks never fail: they are reported as zero with the matching flag unset.
func Rollup(distances WeeklyDistances, today time.Time) WeeklyRollup {
	currentWeek := WeekBucket(today)
	previousWeek := WeekBucket(today.AddDate(0, 0, -7))

	rollup := WeeklyRollup{
		CurrentWeek:  currentWeek,
		PreviousWeek: previousWeek,
	}

	previousTotal, err := distances.WeekTotal(previousWeek)
	rollup.HasPreviousWeekData = !isMissingRow(err)
	rollup.PreviousWeekTotalMiles = previousTotal

	currentTotal, err := distances.WeekTotal(currentWeek)
	switch {
	case !isMissingRow(err):
		rollup.CurrentWeekTotalMiles = currentTotal
		rollup.HasCurrentWeekData = true
		rollup.Label = LabelCurrentWeek
	case rollup.HasPreviousWeekData:
		rollup.CurrentWeekTotalMiles = previousTotal
		rollup.Label = LabelShowingLastWeek
	default:
		rollup.Label = LabelNoRecentActivity
	}

	// the delta always compares the real current week, not the fallback value
	var currentTenths int64
	if rollup.HasCurrentWeekData {
		currentTenths = toTenths(currentTotal)
	}
	rollup.DeltaMiles = fromTenths(currentTenths - toTenths(previousTotal))

	return rollup
}

func isMissingRow(err error) bool {
	var missingErr *MissingRollupRowError
	return errors.As(err, &missingErr)
}
