package repository

import (
	"time"

	"github.com/neonflick/goapi/base/ctx"
	hcdomain "github.com/neonflick/goapi/domain/healthcheck"
	"github.com/neonflick/goapi/domain/keys"
	"github.com/neonflick/goapi/service/query"
	"github.com/neonflick/goapi/service/redis"
)

const pingTimeout = 2 * time.Second

type impl struct {
	mongo      query.Mongo
	redisCache redis.Service
}

// New creates new healthCheckRepo object representation of HealthCheckRepo interface
func New(
	mongo query.Mongo,
	redisCache redis.Service,
) hcdomain.HealthCheckRepo {
	return &impl{
		mongo:      mongo,
		redisCache: redisCache,
	}
}

func (im *impl) PingDB(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()
	if err := im.mongo.Ping(ctx); err != nil {
		context.WithField("err", err).Error("ping mongo error")
		return err
	}
	return nil
}

func (im *impl) PingCache(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()
	if err := im.redisCache.Set(ctx, keys.RedisKey(keys.PfxHealthCheck, "testset"), []byte("1"), 30*time.Second); err != nil {
		context.WithField("err", err).Error("test redis set failed")
		return err
	}
	return nil
}
