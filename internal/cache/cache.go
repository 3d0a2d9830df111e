// internal/cache/cache.go
//
// Redis-backed cache for the public approved-projects listing. The service
// degrades to direct database reads when Redis is unreachable.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/projektfabrik/pf-backend/internal/config"
)

const (
	approvedProjectsKey = "projects:approved"
	approvedProjectsTTL = 60 * time.Second
)

type Cache struct {
	client *redis.Client
}

// New connects to Redis. A nil-client Cache is returned when the connection
// fails; all operations on it are no-ops.
func New(cfg config.RedisConfig) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("Redis unavailable, continuing without cache")
		return &Cache{}
	}

	logrus.Info("Redis connection established successfully")
	return &Cache{client: client}
}

func (c *Cache) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// GetApprovedProjects returns the cached listing, or ok=false on miss.
func (c *Cache) GetApprovedProjects(ctx context.Context, dest interface{}) bool {
	if c.client == nil {
		return false
	}

	data, err := c.client.Get(ctx, approvedProjectsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).Warn("Failed to read approved projects from cache")
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logrus.WithError(err).Warn("Failed to decode cached approved projects")
		return false
	}
	return true
}

func (c *Cache) SetApprovedProjects(ctx context.Context, value interface{}) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		logrus.WithError(err).Warn("Failed to encode approved projects for cache")
		return
	}

	if err := c.client.Set(ctx, approvedProjectsKey, data, approvedProjectsTTL).Err(); err != nil {
		logrus.WithError(err).Warn("Failed to cache approved projects")
	}
}

// InvalidateApprovedProjects drops the cached listing after any transition
// that touches the approved set.
func (c *Cache) InvalidateApprovedProjects(ctx context.Context) {
	if c.client == nil {
		return
	}

	if err := c.client.Del(ctx, approvedProjectsKey).Err(); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate approved projects cache")
	}
}
