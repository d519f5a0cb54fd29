package activities

import (
	"errors"
	"slices"
	"sort"
	"strings"
)

const (
	DurationColumnSuffix = " (mins)"
	DistanceColumnSuffix = " (miles)"
)

var ErrColumnNotFound = errors.New("column not found")

// SummaryTable is the week by metric-column pivot of all activities.
// Rows are week buckets in ascending order, Cells[i][j] is the value of
// Rows[i] in Columns[j].
type SummaryTable struct {
	Rows    []string    `json:"rows"`
	Columns []string    `json:"columns"`
	Cells   [][]float64 `json:"cells"`
}

// WeeklyDistances is the distance family of the summary table:
// week bucket -> display category -> miles.
type WeeklyDistances map[string]map[string]float64

func DurationColumn(category string) string {
	return category + DurationColumnSuffix
}

func DistanceColumn(category string) string {
	return category + DistanceColumnSuffix
}

func (t *SummaryTable) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

func (t *SummaryTable) HasRow(week string) bool {
	return t.rowIndex(week) >= 0
}

// Cell returns the value at (week, column). The bool is false when
// either the row or the column is not part of the table.
func (t *SummaryTable) Cell(week, column string) (float64, bool) {
	i := t.rowIndex(week)
	if i < 0 {
		return 0, false
	}
	j := slices.Index(t.Columns, column)
	if j < 0 {
		return 0, false
	}
	return t.Cells[i][j], true
}

// Row returns the week's cells keyed by column label.
func (t *SummaryTable) Row(week string) (map[string]float64, error) {
	i := t.rowIndex(week)
	if i < 0 {
		return nil, &MissingRollupRowError{Week: week}
	}
	row := make(map[string]float64, len(t.Columns))
	for j, col := range t.Columns {
		row[col] = t.Cells[i][j]
	}
	return row, nil
}

// Column returns one column's values, in row order.
func (t *SummaryTable) Column(column string) ([]float64, error) {
	if t == nil {
		return nil, ErrColumnNotFound
	}
	j := slices.Index(t.Columns, column)
	if j < 0 {
		return nil, ErrColumnNotFound
	}
	values := make([]float64, len(t.Rows))
	for i := range t.Rows {
		values[i] = t.Cells[i][j]
	}
	return values, nil
}

// Categories returns the display categories present in the table, sorted.
func (t *SummaryTable) Categories() []string {
	if t == nil {
		return nil
	}
	var categories []string
	for _, col := range t.Columns {
		if category, ok := strings.CutSuffix(col, DistanceColumnSuffix); ok {
			categories = append(categories, category)
		}
	}
	sort.Strings(categories)
	return categories
}

// Distances extracts the distance family of the table.
func (t *SummaryTable) Distances() WeeklyDistances {
	distances := make(WeeklyDistances)
	if t == nil {
		return distances
	}
	for i, week := range t.Rows {
		perCategory := make(map[string]float64)
		for j, col := range t.Columns {
			if category, ok := strings.CutSuffix(col, DistanceColumnSuffix); ok {
				perCategory[category] = t.Cells[i][j]
			}
		}
		distances[week] = perCategory
	}
	return distances
}

// rows are sorted, so a binary search is enough
func (t *SummaryTable) rowIndex(week string) int {
	if t == nil {
		return -1
	}
	i, found := slices.BinarySearch(t.Rows, week)
	if !found {
		return -1
	}
	return i
}

// WeekTotal sums all categories of a week. It returns *MissingRollupRowError
// when the week has no row.
func (d WeeklyDistances) WeekTotal(week string) (float64, error) {
	perCategory, ok := d[week]
	if !ok {
		return 0, &MissingRollupRowError{Week: week}
	}
	var tenths int64
	for _, miles := range perCategory {
		tenths += toTenths(miles)
	}
	return fromTenths(tenths), nil
}
