package activities

import (
	"math"
	"sort"
)

type weekCategory struct {
	week     string
	category string
}

// DistancePoint is one (week, activity) cell of the distance family,
// in the long format chart renderers consume.
type DistancePoint struct {
	Week     string  `json:"week"`
	Activity string  `json:"activity"`
	Distance float64 `json:"distance"`
}

// CaloriesPoint is the calories of a single activity, placed in its week.
type CaloriesPoint struct {
	Week     string  `json:"week"`
	Activity string  `json:"activity"`
	Name     string  `json:"name,omitempty"`
	Calories float64 `json:"calories"`
}

// Aggregate groups the activities by (week, display category), sums the
// minutes and the miles of each group and pivots them into a SummaryTable.
// A category observed in any week gets a zero cell in weeks it is absent from;
// weeks and categories never observed are not materialized.
func Aggregate(facts []NormalizedActivity) *SummaryTable {
	minutes := make(map[weekCategory]int64)
	// miles are kept as integer tenths so sums do not depend on input order
	distanceTenths := make(map[weekCategory]int64)
	weeksSet := make(map[string]struct{})
	categoriesSet := make(map[string]struct{})

	for _, f := range facts {
		key := weekCategory{week: f.WeekBucket, category: f.DisplayCategory}
		minutes[key] += int64(f.DurationMinutes)
		distanceTenths[key] += toTenths(f.DistanceMiles)
		weeksSet[f.WeekBucket] = struct{}{}
		categoriesSet[f.DisplayCategory] = struct{}{}
	}

	weeks := sortedKeys(weeksSet)
	categories := sortedKeys(categoriesSet)

	columns := make([]string, 0, 2*len(categories))
	for _, category := range categories {
		columns = append(columns, DurationColumn(category))
	}
	for _, category := range categories {
		columns = append(columns, DistanceColumn(category))
	}

	table := &SummaryTable{
		Rows:    weeks,
		Columns: columns,
		Cells:   make([][]float64, len(weeks)),
	}
	for i, week := range weeks {
		row := make([]float64, len(columns))
		for c, category := range categories {
			key := weekCategory{week: week, category: category}
			row[c] = float64(minutes[key])
			row[len(categories)+c] = fromTenths(distanceTenths[key])
		}
		table.Cells[i] = row
	}

	return table
}

// DistanceSeries melts the distance family of the table into one point per
// (week, category) cell, ordered by week and then activity.
func DistanceSeries(table *SummaryTable) []DistancePoint {
	distances := table.Distances()
	categories := table.Categories()

	points := make([]DistancePoint, 0, len(distances)*len(categories))
	for _, week := range table.Rows {
		for _, category := range categories {
			points = append(points, DistancePoint{
				Week:     week,
				Activity: category,
				Distance: distances[week][category],
			})
		}
	}
	return points
}

// CaloriesSeries returns one point per activity, ordered by start time.
func CaloriesSeries(facts []NormalizedActivity) []CaloriesPoint {
	sorted := make([]NormalizedActivity, len(facts))
	copy(sorted, facts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].StartTimeLocal.Equal(sorted[j].StartTimeLocal) {
			return sorted[i].StartTimeLocal.Before(sorted[j].StartTimeLocal)
		}
		if sorted[i].DisplayCategory != sorted[j].DisplayCategory {
			return sorted[i].DisplayCategory < sorted[j].DisplayCategory
		}
		return sorted[i].ActivityID < sorted[j].ActivityID
	})

	points := make([]CaloriesPoint, 0, len(sorted))
	for _, f := range sorted {
		points = append(points, CaloriesPoint{
			Week:     f.WeekBucket,
			Activity: f.DisplayCategory,
			Name:     f.Name,
			Calories: f.Calories,
		})
	}
	return points
}

func toTenths(miles float64) int64 {
	return int64(math.Round(miles * 10))
}

func fromTenths(tenths int64) float64 {
	return float64(tenths) / 10
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
