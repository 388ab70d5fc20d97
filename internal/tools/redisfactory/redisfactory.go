package redisfactory

import (
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// todo: clients can to be created on-demand, but got to figure out how to fail fast if URIs are missing

type Factory struct {
	requirementsCache *redis.Client
}

func New() *Factory {
	opt, err := redis.ParseURL(os.Getenv("REQUIREMENTS_CACHE_REDIS_URI"))
	if err != nil {
		panic(err)
	}

	opt.DialTimeout = 4 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	requirementsCache := redis.NewClient(opt)

	return &Factory{
		requirementsCache: requirementsCache,
	}
}

func (f *Factory) RequirementsCacheClient() *redis.Client {
	return f.requirementsCache
}
