package report

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/2beens/weeklyreport/internal/activities"
	"github.com/2beens/weeklyreport/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// Cache keeps built reports in redis for a short TTL.
// Failures are logged and treated as misses, they never fail a report.
type Cache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewCache(redisClient *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func (c *Cache) Get(ctx context.Context, key string) (*activities.Report, bool) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "reportCache.get")
	defer span.End()

	cachedReport, err := c.redisClient.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Errorf("failed to get report from redis for [%s]: %s", key, err)
		} else {
			log.Debugf("report not found in redis for [%s]", key)
		}
		span.SetAttributes(attribute.Bool("report.from-cache", false))
		return nil, false
	}

	report := &activities.Report{}
	if err := json.Unmarshal([]byte(cachedReport), report); err != nil {
		log.Errorf("failed to unmarshal cached report for [%s]: %s", key, err)
		span.SetAttributes(attribute.Bool("report.from-cache", false))
		return nil, false
	}

	log.Tracef("found report for [%s] in redis cache", key)
	span.SetAttributes(attribute.Bool("report.from-cache", true))
	return report, true
}

func (c *Cache) Set(ctx context.Context, key string, report *activities.Report) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "reportCache.set")
	defer span.End()

	reportBytes, err := json.Marshal(report)
	if err != nil {
		log.Errorf("failed to marshal report for [%s]: %s", key, err)
		return
	}

	if err := c.redisClient.Set(ctx, key, string(reportBytes), c.ttl).Err(); err != nil {
		log.Errorf("failed to cache report in redis for [%s]: %s", key, err)
	} else {
		log.Debugf("report cache set in redis for: %s", key)
	}
}
