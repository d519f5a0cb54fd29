package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/weeklyreport/internal/activities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) get(ctx context.Context, path string, target any) int {
	t := s.T()
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s%s", serverEndpoint, path), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if target != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.Unmarshal(respBytes, target))
	}
	return resp.StatusCode
}

func (s *IntegrationTestSuite) TestWeeklyReport() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	var report activities.Report
	require.Equal(t, http.StatusOK, s.get(ctx, "/report/weekly", &report))

	assert.Equal(t, 1, report.SkippedRecords)
	assert.Len(t, report.Activities, 3)
	assert.Equal(t, []string{"2024-W01", "2024-W02"}, report.Summary.Rows)
	assert.Equal(t, []string{"City Run", "Hike", "Road Bike"}, report.Summary.Categories())
	assert.Len(t, report.DistanceSeries, 6)
	assert.Len(t, report.CaloriesSeries, 3)

	assert.Equal(t, "2024-W02", report.Rollup.CurrentWeek)
	assert.Equal(t, 10.0, report.Rollup.CurrentWeekTotalMiles)
	assert.Equal(t, 7.0, report.Rollup.PreviousWeekTotalMiles)
	assert.Equal(t, 3.0, report.Rollup.DeltaMiles)

	// the built report is now in redis
	key := "weekly-report::2024-01-01::2024-01-10::2024-01-10"
	cached, err := s.redisClient.Get(ctx, key).Result()
	require.NoError(t, err)
	var cachedReport activities.Report
	require.NoError(t, json.Unmarshal([]byte(cached), &cachedReport))
	assert.Equal(t, report.Summary, cachedReport.Summary)

	var again activities.Report
	require.Equal(t, http.StatusOK, s.get(ctx, "/report/weekly", &again))
	assert.Equal(t, report.Rollup, again.Rollup)
}

func (s *IntegrationTestSuite) TestWeeklySummaryAndRollup() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	var summary activities.SummaryTable
	require.Equal(t, http.StatusOK, s.get(ctx, "/report/weekly/summary?start=2024-01-01&end=2024-01-10", &summary))
	hike, ok := summary.Cell("2024-W01", "Hike (miles)")
	require.True(t, ok)
	assert.Equal(t, 5.0, hike)
	hikeMins, ok := summary.Cell("2024-W01", "Hike (mins)")
	require.True(t, ok)
	// whole hours are dropped from the minutes
	assert.Equal(t, 0.0, hikeMins)

	var rollup activities.WeeklyRollup
	require.Equal(t, http.StatusOK, s.get(ctx, "/report/weekly/rollup", &rollup))
	assert.True(t, rollup.HasCurrentWeekData)
	assert.True(t, rollup.HasPreviousWeekData)
	assert.Equal(t, activities.LabelCurrentWeek, rollup.Label)
}

func (s *IntegrationTestSuite) TestWeeklyReport_Week() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	var row map[string]float64
	require.Equal(t, http.StatusOK, s.get(ctx, "/report/weekly/week/2024-W02", &row))
	assert.Equal(t, 10.0, row["Road Bike (miles)"])
	assert.Equal(t, 45.0, row["Road Bike (mins)"])
	assert.Equal(t, 0.0, row["City Run (miles)"])

	assert.Equal(t, http.StatusBadRequest, s.get(ctx, "/report/weekly/week/2024-W60", nil))
	assert.Equal(t, http.StatusBadRequest, s.get(ctx, "/report/weekly?start=2024-02-01&end=2024-01-01", nil))
}

func (s *IntegrationTestSuite) TestUnknownPath() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.Equal(s.T(), http.StatusNotFound, s.get(ctx, "/nope", nil))
}
