package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type purger interface {
	Purge() int
}

type refresher interface {
	Refresh(ctx context.Context) (int, error)
}

type cleaner interface {
	Cleanup(idle time.Duration) int
}

// CachePurgeJob drops expired entries from an in-memory result cache
func CachePurgeJob(schedule string, cache purger, logger *zap.Logger) Job {
	return Job{
		Name:     "cache_purge",
		Schedule: schedule,
		Run: func(context.Context) error {
			if removed := cache.Purge(); removed > 0 {
				logger.Debug("Purged expired cache entries", zap.Int("removed", removed))
			}
			return nil
		},
	}
}

// CatalogRefreshJob reloads the product catalog snapshot
func CatalogRefreshJob(schedule string, catalog refresher, logger *zap.Logger) Job {
	return Job{
		Name:     "catalog_refresh",
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			count, err := catalog.Refresh(ctx)
			if err != nil {
				return err
			}
			logger.Debug("Product catalog refreshed", zap.Int("products", count))
			return nil
		},
	}
}

// LimiterCleanupJob forgets rate limiter state of idle clients
func LimiterCleanupJob(schedule string, limiter cleaner, idle time.Duration) Job {
	return Job{
		Name:     "limiter_cleanup",
		Schedule: schedule,
		Run: func(context.Context) error {
			limiter.Cleanup(idle)
			return nil
		},
	}
}
