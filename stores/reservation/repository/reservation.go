package repository

import (
	"time"

	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/domain"
	"github.com/neonflick/goapi/domain/keys"
	"github.com/neonflick/goapi/service/redis"
)

type impl struct {
	redis redis.Service
}

// New keeps leases in redis as `reservation:<listingId>` with a ttl.
// A lease is a marker only, any buyer may refresh it.
func New(redis redis.Service) domain.ReservationRepo {
	return &impl{redis}
}

func (im *impl) Hold(c ctx.Ctx, listingId string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := im.redis.Set(c, key(listingId), []byte("1"), ttl); err != nil {
		c.WithField("err", err).WithField("listing", listingId).Error("redis.Set failed")
		return err
	}
	return nil
}

func (im *impl) IsHeld(c ctx.Ctx, listingId string) (bool, error) {
	held, err := im.redis.Exists(c, key(listingId))
	if err != nil {
		c.WithField("err", err).WithField("listing", listingId).Error("redis.Exists failed")
		return false, err
	}
	return held, nil
}

func (im *impl) Release(c ctx.Ctx, listingId string) error {
	if _, err := im.redis.Del(c, key(listingId)); err != nil {
		c.WithField("err", err).WithField("listing", listingId).Error("redis.Del failed")
		return err
	}
	return nil
}

func key(listingId string) string {
	return keys.RedisKey(keys.PfxReservation, listingId)
}
