package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/weeklyreport/internal/activities"
	"github.com/2beens/weeklyreport/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=report_test

var ErrInvalidRange = errors.New("invalid date range")

type weeklyReporter interface {
	WeeklyReport(ctx context.Context, from, to time.Time) (*activities.Report, error)
	Today() time.Time
}

type reportCache interface {
	Get(ctx context.Context, key string) (*activities.Report, bool)
	Set(ctx context.Context, key string, report *activities.Report)
}

// Service builds weekly reports for the HTTP and MCP surfaces,
// serving repeated requests for the same range from the report cache.
type Service struct {
	reporter       weeklyReporter
	cache          reportCache
	defaultStart   time.Time
	metricsManager *metrics.Manager
}

// NewService creates the report service. cache may be nil.
func NewService(
	reporter weeklyReporter,
	cache reportCache,
	defaultStart time.Time,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		reporter:       reporter,
		cache:          cache,
		defaultStart:   defaultStart,
		metricsManager: metricsManager,
	}
}

// Report returns the report for [from, to]. A zero from means the configured
// default start, a zero to means today.
func (s *Service) Report(ctx context.Context, from, to time.Time) (*activities.Report, error) {
	today := s.reporter.Today()
	if from.IsZero() {
		from = s.defaultStart
	}
	if to.IsZero() {
		to = today
	}
	if from.After(to) {
		s.countReport(metrics.ReportOutcomeBadRequest)
		return nil, fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange, from.Format(time.DateOnly), to.Format(time.DateOnly))
	}

	key := CacheKey(from, to, today)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			s.countCache(metrics.CacheResultHit)
			s.countReport(metrics.ReportOutcomeOK)
			return cached, nil
		}
		s.countCache(metrics.CacheResultMiss)
	}

	report, err := s.reporter.WeeklyReport(ctx, from, to)
	if err != nil {
		log.Errorf("weekly report [%s, %s]: %s", from.Format(time.DateOnly), to.Format(time.DateOnly), err)
		var sourceErr *activities.SourceUnavailableError
		if errors.As(err, &sourceErr) {
			s.countReport(metrics.ReportOutcomeSourceUnavailable)
		} else {
			s.countReport(metrics.ReportOutcomeError)
		}
		return nil, err
	}

	s.countReport(metrics.ReportOutcomeOK)
	if s.metricsManager != nil && report.SkippedRecords > 0 {
		s.metricsManager.CounterSkippedRecords.Add(float64(report.SkippedRecords))
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, report)
	}

	return report, nil
}

// RecentRollup computes the rollup from the last two weeks of data only.
func (s *Service) RecentRollup(ctx context.Context) (activities.WeeklyRollup, error) {
	today := s.reporter.Today()
	year, week := today.AddDate(0, 0, -7).ISOWeek()
	from := activities.WeekStart(year, week, today.Location())

	report, err := s.Report(ctx, from, today)
	if err != nil {
		return activities.WeeklyRollup{}, err
	}
	return report.Rollup, nil
}

// WeekRow returns one week's summary row, column label -> value.
// It returns *activities.MissingRollupRowError when the week has no activities.
func (s *Service) WeekRow(ctx context.Context, week string) (map[string]float64, error) {
	year, weekNum, err := activities.ParseWeekBucket(week)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}

	from := activities.WeekStart(year, weekNum, time.Local)
	to := from.AddDate(0, 0, 6)

	report, err := s.Report(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return report.Summary.Row(week)
}

func (s *Service) countReport(outcome string) {
	if s.metricsManager == nil {
		return
	}
	s.metricsManager.CounterReports.WithLabelValues(outcome).Inc()
}

func (s *Service) countCache(result string) {
	if s.metricsManager == nil {
		return
	}
	s.metricsManager.CounterReportCache.WithLabelValues(result).Inc()
}

// CacheKey identifies a report; today is part of it because the rollup depends on it.
func CacheKey(from, to, today time.Time) string {
	return fmt.Sprintf(
		"weekly-report::%s::%s::%s",
		from.Format(time.DateOnly),
		to.Format(time.DateOnly),
		today.Format(time.DateOnly),
	)
}
