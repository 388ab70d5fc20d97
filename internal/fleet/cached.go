package fleet

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"bitbucket.org/crgw/booking-engine/internal/schema"
	"bitbucket.org/crgw/booking-engine/internal/tools/caching"
	"bitbucket.org/crgw/booking-engine/internal/tools/slowlog"
)

const requirementsCacheTTL = 5 * time.Minute

// CachedRepository is a read-through cache in front of another Repository.
// Requirements change rarely and the evaluate endpoint fires per keystroke,
// so a short TTL takes nearly all reads off the database.
type CachedRepository struct {
	inner   Repository
	cache   *caching.Cacher
	slowLog slowlog.Logger
}

func NewCachedRepository(inner Repository, redisClient *redis.Client, logger *zerolog.Logger) *CachedRepository {
	return &CachedRepository{
		inner:   inner,
		cache:   caching.NewRedisCache(redisClient),
		slowLog: slowlog.CreateLogger(logger),
	}
}

func cacheKey(vehicleId string) string {
	return fmt.Sprintf("requirements:%s", vehicleId)
}

func (r *CachedRepository) RequirementsFor(ctx context.Context, vehicleId string) (*schema.VehicleRequirements, error) {
	key := cacheKey(vehicleId)

	r.slowLog.Start("fleet:requirements:cache")
	var cached schema.VehicleRequirements
	hit := r.cache.Fetch(ctx, key, &cached)
	r.slowLog.Stop("fleet:requirements:cache")

	if hit {
		return &cached, nil
	}

	r.slowLog.Start("fleet:requirements:db")
	requirements, err := r.inner.RequirementsFor(ctx, vehicleId)
	r.slowLog.Stop("fleet:requirements:db")

	if err != nil {
		return nil, err
	}

	// a failed store only costs the next read a database trip
	_ = r.cache.Store(ctx, key, requirements, requirementsCacheTTL)

	return requirements, nil
}
