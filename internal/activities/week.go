package activities

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var weekBucketRegex = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// WeekBucket returns the ISO-8601 week key of t, e.g. "2024-W01".
// The year is the ISO year, which can differ from the calendar year
// in the first and last days of a year.
func WeekBucket(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// ParseWeekBucket is the inverse of WeekBucket. It rejects week numbers
// the given ISO year does not have.
func ParseWeekBucket(bucket string) (year, week int, err error) {
	m := weekBucketRegex.FindStringSubmatch(bucket)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid week bucket [%s], expected YYYY-Www", bucket)
	}

	year, _ = strconv.Atoi(m[1])
	week, _ = strconv.Atoi(m[2])
	if week < 1 || week > isoWeeksInYear(year) {
		return 0, 0, fmt.Errorf("invalid week bucket [%s]: year %d has no week %d", bucket, year, week)
	}

	return year, week, nil
}

// WeekStart returns the Monday 00:00 of the given ISO week, in loc.
func WeekStart(year, week int, loc *time.Location) time.Time {
	// Jan 4th is always in ISO week 1
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	week1Monday := jan4.AddDate(0, 0, 1-weekday)
	return week1Monday.AddDate(0, 0, (week-1)*7)
}

func isoWeeksInYear(year int) int {
	// Dec 28th is always in the last ISO week of its year
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}
