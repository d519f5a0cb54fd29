package activities

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/weeklyreport/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=activities_test

// Source fetches every raw activity started within [start, end].
// Implementations return *SourceUnavailableError when they cannot.
type Source interface {
	FetchActivities(ctx context.Context, start, end time.Time) ([]RawActivity, error)
}

// Clock provides "today" to the rollup, so it can be fixed in tests.
type Clock interface {
	Today() time.Time
}

type SystemClock struct{}

func (SystemClock) Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

type FixedClock struct {
	Date time.Time
}

func (c FixedClock) Today() time.Time {
	return c.Date
}

// Report is the outcome of one report cycle.
type Report struct {
	From           time.Time            `json:"from"`
	To             time.Time            `json:"to"`
	Today          time.Time            `json:"today"`
	Activities     []NormalizedActivity `json:"activities"`
	Summary        *SummaryTable        `json:"summary"`
	DistanceSeries []DistancePoint      `json:"distanceSeries"`
	CaloriesSeries []CaloriesPoint      `json:"caloriesSeries"`
	Rollup         WeeklyRollup         `json:"rollup"`
	SkippedRecords int                  `json:"skippedRecords"`
}

// BuildReport runs normalization, aggregation and rollup over an already
// fetched batch. Malformed records are skipped and counted, never fatal.
func BuildReport(raw []RawActivity, today time.Time) *Report {
	facts, normalizeErr := NormalizeAll(raw)
	skipped := multierr.Errors(normalizeErr)
	for _, err := range skipped {
		log.Warnf("weekly report: skipping record: %s", err)
	}

	summary := Aggregate(facts)
	return &Report{
		Today:          today,
		Activities:     facts,
		Summary:        summary,
		DistanceSeries: DistanceSeries(summary),
		CaloriesSeries: CaloriesSeries(facts),
		Rollup:         Rollup(summary.Distances(), today),
		SkippedRecords: len(skipped),
	}
}

type Reporter struct {
	source Source
	clock  Clock
}

func NewReporter(source Source, clock Clock) *Reporter {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Reporter{
		source: source,
		clock:  clock,
	}
}

func (r *Reporter) Today() time.Time {
	return r.clock.Today()
}

// WeeklyReport fetches the activities between from and to and builds the report.
// A zero to means today. Source failures are returned as *SourceUnavailableError.
func (r *Reporter) WeeklyReport(ctx context.Context, from, to time.Time) (_ *Report, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "activities.weeklyReport")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	today := r.clock.Today()
	if to.IsZero() {
		to = today
	}
	span.SetAttributes(
		attribute.String("from", from.Format(time.DateOnly)),
		attribute.String("to", to.Format(time.DateOnly)),
	)

	raw, err := r.source.FetchActivities(ctx, from, to)
	if err != nil {
		var sourceErr *SourceUnavailableError
		if errors.As(err, &sourceErr) {
			return nil, err
		}
		return nil, &SourceUnavailableError{Err: err}
	}

	log.Debugf("weekly report: fetched %d activities for [%s, %s]", len(raw), from.Format(time.DateOnly), to.Format(time.DateOnly))

	report := BuildReport(raw, today)
	report.From = from
	report.To = to

	span.SetAttributes(
		attribute.Int("activities", len(report.Activities)),
		attribute.Int("skipped", report.SkippedRecords),
		attribute.Int("weeks", len(report.Summary.Rows)),
	)

	return report, nil
}
