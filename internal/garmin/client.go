package garmin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/2beens/weeklyreport/internal/activities"
	"github.com/2beens/weeklyreport/internal/telemetry/metrics"
	"github.com/2beens/weeklyreport/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/attribute"
)

// example API call
// https://connectapi.garmin.com/activitylist-service/activities/search/activities?startDate=2024-01-01&endDate=2024-01-31&start=0&limit=100

const (
	DefaultBaseURL  = "https://connectapi.garmin.com"
	DefaultPageSize = 100
	DefaultCacheTTL = 10 * time.Minute
	// freecache rejects entries larger than 1/1024 of its size,
	// 64MB keeps a full page of 100 activities well below that
	DefaultCacheSize = 64 * 1024 * 1024

	activitiesPath = "/activitylist-service/activities/search/activities"
	dateLayout     = "2006-01-02"

	// a single report should never need more than this
	maxPages = 500
)

var ErrUnexpectedStatus = errors.New("unexpected status code")

type ClientParams struct {
	BaseURL    string
	Token      string
	PageSize   int
	CacheTTL   time.Duration
	HTTPClient *http.Client

	// size of the page cache, DefaultCacheSize when 0
	CacheSizeBytes int

	// breaker opens after this many consecutive failed fetches
	BreakerFailureThreshold uint32
	// how long the breaker stays open before letting a trial request through
	BreakerOpenTimeout time.Duration

	MetricsManager *metrics.Manager
}

// Client fetches activities from the Garmin Connect activity list service.
// It implements activities.Source.
type Client struct {
	baseURL        string
	token          string
	pageSize       int
	cacheTTLSec    int
	cache          *freecache.Cache
	httpClient     *http.Client
	breaker        *gobreaker.CircuitBreaker[[]activities.RawActivity]
	metricsManager *metrics.Manager
}

func NewClient(params ClientParams) *Client {
	if params.BaseURL == "" {
		params.BaseURL = DefaultBaseURL
	}
	if params.PageSize <= 0 {
		params.PageSize = DefaultPageSize
	}
	if params.CacheTTL <= 0 {
		params.CacheTTL = DefaultCacheTTL
	}
	if params.CacheSizeBytes <= 0 {
		params.CacheSizeBytes = DefaultCacheSize
	}
	if params.HTTPClient == nil {
		params.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if params.BreakerFailureThreshold == 0 {
		params.BreakerFailureThreshold = 5
	}
	if params.BreakerOpenTimeout <= 0 {
		params.BreakerOpenTimeout = 30 * time.Second
	}

	threshold := params.BreakerFailureThreshold
	breaker := gobreaker.NewCircuitBreaker[[]activities.RawActivity](gobreaker.Settings{
		Name:        "garmin-activities",
		MaxRequests: 1,
		Timeout:     params.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("garmin: circuit breaker [%s] state changed: %s -> %s", name, from, to)
		},
		// cancelled requests do not count as failures
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Client{
		baseURL:        params.BaseURL,
		token:          params.Token,
		pageSize:       params.PageSize,
		cacheTTLSec:    int(params.CacheTTL.Seconds()),
		cache:          freecache.NewCache(params.CacheSizeBytes),
		httpClient:     params.HTTPClient,
		breaker:        breaker,
		metricsManager: params.MetricsManager,
	}
}

// FetchActivities returns all activities started between start and end dates, inclusive.
// Every failure is reported as *activities.SourceUnavailableError.
func (c *Client) FetchActivities(ctx context.Context, start, end time.Time) (_ []activities.RawActivity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "garminClient.fetchActivities")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	startDate, endDate := start.Format(dateLayout), end.Format(dateLayout)
	span.SetAttributes(
		attribute.String("startDate", startDate),
		attribute.String("endDate", endDate),
	)

	fetchStart := time.Now()
	fetched, fromCache, err := c.fetchAllPages(ctx, startDate, endDate)
	c.observeFetch(fetchStart, fromCache)
	if err != nil {
		return nil, &activities.SourceUnavailableError{Err: err}
	}

	span.SetAttributes(
		attribute.Bool("cached", fromCache),
		attribute.Int("activities", len(fetched)),
	)

	return fetched, nil
}

// BreakerState returns the state of the circuit breaker guarding the activities api.
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

// fetchAllPages reads pages until a short one. Cached pages skip the api,
// fromCache is true when no page had to be fetched.
func (c *Client) fetchAllPages(ctx context.Context, startDate, endDate string) (_ []activities.RawActivity, fromCache bool, _ error) {
	all := make([]activities.RawActivity, 0, c.pageSize)
	fromCache = true
	for page := 0; page < maxPages; page++ {
		offset := page * c.pageSize
		pageActivities, cached := c.cachedPage(startDate, endDate, offset)
		if !cached {
			fromCache = false
			var err error
			pageActivities, err = c.breaker.Execute(func() ([]activities.RawActivity, error) {
				return c.fetchPage(ctx, startDate, endDate, offset)
			})
			if err != nil {
				return nil, false, err
			}
			c.cachePage(startDate, endDate, offset, pageActivities)
		}

		all = append(all, pageActivities...)
		if len(pageActivities) < c.pageSize {
			log.Debugf("garmin: got %d activities in %d page(s), from cache: %t", len(all), page+1, fromCache)
			return all, fromCache, nil
		}
	}
	return nil, false, fmt.Errorf("more than %d pages of activities for [%s, %s]", maxPages, startDate, endDate)
}

func pageCacheKey(startDate, endDate string, offset int) []byte {
	return []byte(fmt.Sprintf("activities::%s::%s::%d", startDate, endDate, offset))
}

func (c *Client) cachedPage(startDate, endDate string, offset int) ([]activities.RawActivity, bool) {
	cachedBytes, err := c.cache.Get(pageCacheKey(startDate, endDate, offset))
	if err != nil {
		log.Tracef("garmin: page [%s, %s]@%d not in cache: %s", startDate, endDate, offset, err)
		return nil, false
	}

	var cached []activities.RawActivity
	if err := json.Unmarshal(cachedBytes, &cached); err != nil {
		log.Errorf("garmin: failed to unmarshal cached page [%s, %s]@%d: %s", startDate, endDate, offset, err)
		return nil, false
	}
	return cached, true
}

func (c *Client) cachePage(startDate, endDate string, offset int, page []activities.RawActivity) {
	pageBytes, err := json.Marshal(page)
	if err != nil {
		log.Errorf("garmin: failed to marshal page for cache: %s", err)
		return
	}

	if err := c.cache.Set(pageCacheKey(startDate, endDate, offset), pageBytes, c.cacheTTLSec); err != nil {
		if errors.Is(err, freecache.ErrLargeEntry) {
			log.Warnf("garmin: page [%s, %s]@%d too large to cache (%d bytes)", startDate, endDate, offset, len(pageBytes))
			return
		}
		log.Errorf("garmin: failed to cache page [%s, %s]@%d: %s", startDate, endDate, offset, err)
	}
}

func (c *Client) fetchPage(ctx context.Context, startDate, endDate string, offset int) ([]activities.RawActivity, error) {
	query := url.Values{}
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)
	query.Set("start", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(c.pageSize))
	activitiesURL := c.baseURL + activitiesPath + "?" + query.Encode()

	log.Tracef("garmin: calling activities api: %s", activitiesURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, activitiesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read activities response bytes: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var pageActivities []activities.RawActivity
	if err := json.Unmarshal(respBytes, &pageActivities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal activities response bytes: %w", err)
	}

	return pageActivities, nil
}

func (c *Client) observeFetch(start time.Time, cached bool) {
	if c.metricsManager == nil {
		return
	}
	c.metricsManager.HistSourceFetchDuration.
		WithLabelValues(strconv.FormatBool(cached)).
		Observe(time.Since(start).Seconds())
}
